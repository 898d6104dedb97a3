package repository

import (
	"errors"
	"time"

	"trivia_backend/internal/model"

	"gorm.io/gorm"
)

type GroupRepository struct {
	DB *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{DB: db}
}

func (r *GroupRepository) Create(group *model.Group) error {
	return r.DB.Create(group).Error
}

func (r *GroupRepository) Update(group *model.Group) error {
	return r.DB.Save(group).Error
}

func (r *GroupRepository) FindByID(id uint) (*model.Group, error) {
	var g model.Group
	if err := r.DB.First(&g, id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GroupRepository) FindByEventAndName(eventID uint, name string) (*model.Group, error) {
	var g model.Group
	err := r.DB.Where("event_id = ? AND name = ?", eventID, name).First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GroupRepository) List() ([]model.Group, error) {
	var groups []model.Group
	err := r.DB.Order("id").Find(&groups).Error
	return groups, err
}

func (r *GroupRepository) ListByEvent(eventID uint) ([]model.Group, error) {
	var groups []model.Group
	err := r.DB.Where("event_id = ?", eventID).Order("id").Find(&groups).Error
	return groups, err
}

// ListActive returns groups whose window contains the given instant.
func (r *GroupRepository) ListActive(at time.Time, eventID uint) ([]model.Group, error) {
	query := r.DB.Where("start_time <= ? AND close_time >= ?", at, at)
	if eventID > 0 {
		query = query.Where("event_id = ?", eventID)
	}
	var groups []model.Group
	err := query.Order("start_time").Find(&groups).Error
	return groups, err
}

func (r *GroupRepository) Delete(group *model.Group) error {
	return r.DB.Unscoped().Delete(group).Error
}
