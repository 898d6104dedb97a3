package service

import (
	"errors"
	"strings"

	"trivia_backend/internal/model"
	"trivia_backend/internal/repository"
	"trivia_backend/internal/util"

	"gorm.io/gorm"
)

type SectionService struct {
	SectionRepo *repository.SectionRepository
	EventRepo   *repository.EventRepository
}

func NewSectionService(sectionRepo *repository.SectionRepository, eventRepo *repository.EventRepository) *SectionService {
	return &SectionService{SectionRepo: sectionRepo, EventRepo: eventRepo}
}

type SectionCreateRequest struct {
	EventID uint   `json:"eventId" binding:"required"`
	Name    string `json:"name" binding:"required"`
}

type SectionUpdateRequest struct {
	Name string `json:"name" binding:"required"`
}

func (s *SectionService) CreateSection(req *SectionCreateRequest) (*model.Section, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, util.Validation("section name must not be empty")
	}

	if _, err := s.EventRepo.FindByID(req.EventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrEventNotFound
		}
		return nil, err
	}

	existing, err := s.SectionRepo.FindByEventAndName(req.EventID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, util.ErrSectionNameTaken
	}

	section := &model.Section{EventID: req.EventID, Name: name}
	if err := s.SectionRepo.Create(section); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, util.ErrSectionNameTaken
		}
		return nil, err
	}
	return section, nil
}

func (s *SectionService) UpdateSection(id uint, req *SectionUpdateRequest) (*model.Section, error) {
	section, err := s.GetSection(id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, util.Validation("section name must not be empty")
	}
	if name != section.Name {
		existing, err := s.SectionRepo.FindByEventAndName(section.EventID, name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, util.ErrSectionNameTaken
		}
		section.Name = name
	}

	if err := s.SectionRepo.Update(section); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, util.ErrSectionNameTaken
		}
		return nil, err
	}
	return section, nil
}

func (s *SectionService) GetSection(id uint) (*model.Section, error) {
	section, err := s.SectionRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSectionNotFound
	}
	if err != nil {
		return nil, err
	}
	return section, nil
}

func (s *SectionService) ListSections(eventID uint) ([]model.Section, error) {
	if eventID == 0 {
		return s.SectionRepo.List()
	}
	if _, err := s.EventRepo.FindByID(eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrEventNotFound
		}
		return nil, err
	}
	return s.SectionRepo.ListByEvent(eventID)
}

func (s *SectionService) DeleteSection(id uint) error {
	section, err := s.GetSection(id)
	if err != nil {
		return err
	}
	return s.SectionRepo.Delete(section)
}
