package repository

import (
	"errors"

	"trivia_backend/internal/model"

	"gorm.io/gorm"
)

type SectionRepository struct {
	DB *gorm.DB
}

func NewSectionRepository(db *gorm.DB) *SectionRepository {
	return &SectionRepository{DB: db}
}

func (r *SectionRepository) Create(section *model.Section) error {
	return r.DB.Create(section).Error
}

func (r *SectionRepository) Update(section *model.Section) error {
	return r.DB.Save(section).Error
}

func (r *SectionRepository) FindByID(id uint) (*model.Section, error) {
	var s model.Section
	if err := r.DB.First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SectionRepository) FindByEventAndName(eventID uint, name string) (*model.Section, error) {
	var s model.Section
	err := r.DB.Where("event_id = ? AND name = ?", eventID, name).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SectionRepository) List() ([]model.Section, error) {
	var sections []model.Section
	err := r.DB.Order("id").Find(&sections).Error
	return sections, err
}

func (r *SectionRepository) ListByEvent(eventID uint) ([]model.Section, error) {
	var sections []model.Section
	err := r.DB.Where("event_id = ?", eventID).Order("id").Find(&sections).Error
	return sections, err
}

func (r *SectionRepository) Delete(section *model.Section) error {
	return r.DB.Unscoped().Delete(section).Error
}
