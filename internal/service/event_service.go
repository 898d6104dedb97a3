package service

import (
	"errors"
	"strings"

	"trivia_backend/internal/model"
	"trivia_backend/internal/repository"
	"trivia_backend/internal/util"

	"gorm.io/gorm"
)

type EventService struct {
	EventRepo *repository.EventRepository
}

func NewEventService(eventRepo *repository.EventRepository) *EventService {
	return &EventService{EventRepo: eventRepo}
}

type EventCreateRequest struct {
	Name string          `json:"name" binding:"required"`
	Kind model.EventKind `json:"kind"`
}

func (s *EventService) CreateEvent(req *EventCreateRequest) (*model.Event, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, util.Validation("event name must not be empty")
	}
	kind := req.Kind
	if kind == "" {
		kind = model.EventTrivia
	}
	if !kind.Valid() {
		return nil, util.Validation("event kind must be trivia or survey")
	}

	existing, err := s.EventRepo.FindByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, util.ErrEventNameTaken
	}

	event := &model.Event{Name: name, Kind: kind}
	if err := s.EventRepo.Create(event); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, util.ErrEventNameTaken
		}
		return nil, err
	}
	return event, nil
}

func (s *EventService) GetEvent(id uint) (*model.Event, error) {
	event, err := s.EventRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) ListEvents() ([]model.Event, error) {
	return s.EventRepo.List()
}

func (s *EventService) DeleteEvent(id uint) error {
	event, err := s.GetEvent(id)
	if err != nil {
		return err
	}
	return s.EventRepo.Delete(event)
}
