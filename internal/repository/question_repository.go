package repository

import (
	"errors"

	"trivia_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func withOrderedOptions(db *gorm.DB) *gorm.DB {
	return db.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("option_order")
	})
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var q model.Question
	if err := withOrderedOptions(r.DB).First(&q, id).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuestionRepository) FindBySectionAndText(sectionID uint, text string) (*model.Question, error) {
	var q model.Question
	err := r.DB.Where("section_id = ? AND text = ?", sectionID, text).First(&q).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuestionRepository) List() ([]model.Question, error) {
	var questions []model.Question
	err := withOrderedOptions(r.DB).Order("id").Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) ListBySection(sectionID uint) ([]model.Question, error) {
	var questions []model.Question
	err := withOrderedOptions(r.DB).Where("section_id = ?", sectionID).Order("id").Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) ListByEvent(eventID uint) ([]model.Question, error) {
	var questions []model.Question
	err := withOrderedOptions(r.DB).
		Joins("JOIN sections ON sections.id = questions.section_id").
		Where("sections.event_id = ?", eventID).
		Order("questions.id").
		Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) ListByIDs(ids []uint) ([]model.Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var questions []model.Question
	err := r.DB.Where("id IN ?", ids).Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) Delete(question *model.Question) error {
	return r.DB.Unscoped().Delete(question).Error
}

func (r *QuestionRepository) DeleteOptions(questionID uint) error {
	return r.DB.Unscoped().Where("question_id = ?", questionID).Delete(&model.AnswerOption{}).Error
}
