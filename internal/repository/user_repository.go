package repository

import (
	"errors"

	"trivia_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByNationalID(nationalID string) (*model.User, error) {
	var u model.User
	err := r.DB.Where("national_id = ?", nationalID).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) List() ([]model.User, error) {
	var users []model.User
	err := r.DB.Order("id").Find(&users).Error
	return users, err
}

func (r *UserRepository) Delete(user *model.User) error {
	return r.DB.Unscoped().Delete(user).Error
}

func (r *UserRepository) DeleteAll() error {
	return r.DB.Unscoped().Where("1 = 1").Delete(&model.User{}).Error
}
