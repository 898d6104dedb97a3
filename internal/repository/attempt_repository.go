package repository

import (
	"errors"

	"trivia_backend/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) FindByID(id uint) (*model.Attempt, error) {
	var a model.Attempt
	if err := r.DB.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// Latest returns the highest-numbered attempt for (user, group), or nil when
// the user has never joined the group.
func (r *AttemptRepository) Latest(db *gorm.DB, userID, groupID uint) (*model.Attempt, error) {
	var a model.Attempt
	err := db.Where("user_id = ? AND group_id = ?", userID, groupID).
		Order("attempt_number DESC").
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AttemptRepository) List() ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.DB.Preload("User").Order("started_at DESC").Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) ListByGroup(groupID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.DB.Preload("User").
		Where("group_id = ?", groupID).
		Order("started_at DESC").
		Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) ListByState(state model.AttemptState, eventID, groupID uint) ([]model.Attempt, error) {
	query := r.DB.Preload("User").Where("attempts.state = ?", state)
	if eventID > 0 {
		query = query.Joins("JOIN groups ON groups.id = attempts.group_id").
			Where("groups.event_id = ?", eventID)
	}
	if groupID > 0 {
		query = query.Where("attempts.group_id = ?", groupID)
	}
	var attempts []model.Attempt
	err := query.Order("attempts.id").Find(&attempts).Error
	return attempts, err
}

// Search filters by any combination of national ID, event and group.
func (r *AttemptRepository) Search(nationalID string, eventID, groupID uint) ([]model.Attempt, error) {
	query := r.DB.Preload("User")
	if nationalID != "" {
		query = query.Joins("JOIN users ON users.id = attempts.user_id").
			Where("users.national_id = ?", nationalID)
	}
	if eventID > 0 {
		query = query.Joins("JOIN groups ON groups.id = attempts.group_id").
			Where("groups.event_id = ?", eventID)
	}
	if groupID > 0 {
		query = query.Where("attempts.group_id = ?", groupID)
	}
	var attempts []model.Attempt
	err := query.Order("attempts.started_at DESC").Find(&attempts).Error
	return attempts, err
}

// Delete removes the attempt for good; the FK constraint takes its result with it.
func (r *AttemptRepository) Delete(attempt *model.Attempt) error {
	return r.DB.Unscoped().Delete(attempt).Error
}
