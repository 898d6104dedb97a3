package repository

import (
	"errors"

	"trivia_backend/internal/model"

	"gorm.io/gorm"
)

type EventRepository struct {
	DB *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{DB: db}
}

func (r *EventRepository) Create(event *model.Event) error {
	return r.DB.Create(event).Error
}

func (r *EventRepository) FindByID(id uint) (*model.Event, error) {
	var e model.Event
	if err := r.DB.First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EventRepository) FindByName(name string) (*model.Event, error) {
	var e model.Event
	err := r.DB.Where("name = ?", name).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EventRepository) List() ([]model.Event, error) {
	var events []model.Event
	err := r.DB.Order("id").Find(&events).Error
	return events, err
}

// Delete removes the event and, through the FK constraints, its groups,
// sections, questions and attempts.
func (r *EventRepository) Delete(event *model.Event) error {
	return r.DB.Unscoped().Delete(event).Error
}
