package service

import (
	"errors"
	"sort"
	"strings"

	"trivia_backend/internal/model"
	"trivia_backend/internal/repository"
	"trivia_backend/internal/util"

	"gorm.io/gorm"
)

type QuestionService struct {
	QuestionRepo *repository.QuestionRepository
	SectionRepo  *repository.SectionRepository
	DB           *gorm.DB
}

func NewQuestionService(questionRepo *repository.QuestionRepository, sectionRepo *repository.SectionRepository, db *gorm.DB) *QuestionService {
	return &QuestionService{QuestionRepo: questionRepo, SectionRepo: sectionRepo, DB: db}
}

type OptionRequest struct {
	Order int    `json:"order" binding:"required"`
	Text  string `json:"text" binding:"required"`
}

type QuestionCreateRequest struct {
	SectionID     uint               `json:"sectionId" binding:"required"`
	Text          string             `json:"text" binding:"required"`
	Kind          model.QuestionKind `json:"kind" binding:"required"`
	CorrectOption *int               `json:"correctOption"`
	Options       []OptionRequest    `json:"options"`
}

type QuestionUpdateRequest struct {
	Text          string             `json:"text" binding:"required"`
	Kind          model.QuestionKind `json:"kind" binding:"required"`
	CorrectOption *int               `json:"correctOption"`
	Options       []OptionRequest    `json:"options"`
}

// validateQuestionShape enforces the rules shared by create and update:
// single-choice questions carry 2 to 4 options numbered 1..N without gaps and
// a correct option pointing at one of them; open questions carry neither.
func validateQuestionShape(kind model.QuestionKind, correctOption *int, options []OptionRequest) error {
	if !kind.Valid() {
		return util.Validation("question kind must be open or single_choice")
	}

	if kind == model.QuestionOpen {
		if correctOption != nil {
			return util.Validation("open questions cannot declare a correct option")
		}
		if len(options) > 0 {
			return util.Validation("open questions cannot carry answer options")
		}
		return nil
	}

	if len(options) < 2 {
		return util.Validation("single choice questions need at least 2 options")
	}
	if len(options) > model.MaxOptionsPerQuestion {
		return util.Validationf("single choice questions allow at most %d options", model.MaxOptionsPerQuestion)
	}

	orders := make([]int, 0, len(options))
	for _, o := range options {
		if strings.TrimSpace(o.Text) == "" {
			return util.Validation("option text must not be empty")
		}
		orders = append(orders, o.Order)
	}
	sort.Ints(orders)
	for i, order := range orders {
		if order != i+1 {
			return util.Validationf("option orders must be 1..%d without gaps or repeats", len(options))
		}
	}

	if correctOption == nil {
		return util.Validation("single choice questions need a correct option")
	}
	if *correctOption < 1 || *correctOption > len(options) {
		return util.Validation("correct option must reference one of the declared options")
	}
	return nil
}

func (s *QuestionService) CreateQuestion(req *QuestionCreateRequest) (*model.Question, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, util.Validation("question text must not be empty")
	}
	if err := validateQuestionShape(req.Kind, req.CorrectOption, req.Options); err != nil {
		return nil, err
	}

	if _, err := s.SectionRepo.FindByID(req.SectionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSectionNotFound
		}
		return nil, err
	}

	existing, err := s.QuestionRepo.FindBySectionAndText(req.SectionID, text)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, util.ErrQuestionTextTaken
	}

	question := &model.Question{
		SectionID:     req.SectionID,
		Text:          text,
		Kind:          req.Kind,
		CorrectOption: req.CorrectOption,
	}
	for _, o := range req.Options {
		question.Options = append(question.Options, model.AnswerOption{
			Order: o.Order,
			Text:  strings.TrimSpace(o.Text),
		})
	}

	if err := s.DB.Create(question).Error; err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, util.ErrQuestionTextTaken
		}
		return nil, err
	}
	return s.QuestionRepo.FindByID(question.ID)
}

// UpdateQuestion rewrites the question and replaces its options wholesale;
// partial option edits are not worth the ambiguity.
func (s *QuestionService) UpdateQuestion(id uint, req *QuestionUpdateRequest) (*model.Question, error) {
	question, err := s.GetQuestion(id)
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, util.Validation("question text must not be empty")
	}
	if err := validateQuestionShape(req.Kind, req.CorrectOption, req.Options); err != nil {
		return nil, err
	}

	if text != question.Text {
		existing, err := s.QuestionRepo.FindBySectionAndText(question.SectionID, text)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, util.ErrQuestionTextTaken
		}
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("question_id = ?", id).Delete(&model.AnswerOption{}).Error; err != nil {
			return err
		}
		updates := map[string]interface{}{
			"text":           text,
			"kind":           req.Kind,
			"correct_option": req.CorrectOption,
		}
		if err := tx.Model(&model.Question{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		for _, o := range req.Options {
			option := model.AnswerOption{
				QuestionID: id,
				Order:      o.Order,
				Text:       strings.TrimSpace(o.Text),
			}
			if err := tx.Create(&option).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, util.ErrQuestionTextTaken
		}
		return nil, err
	}
	return s.QuestionRepo.FindByID(id)
}

func (s *QuestionService) GetQuestion(id uint) (*model.Question, error) {
	question, err := s.QuestionRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuestionService) ListQuestions(eventID, sectionID uint) ([]model.Question, error) {
	switch {
	case sectionID > 0:
		if _, err := s.SectionRepo.FindByID(sectionID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrSectionNotFound
			}
			return nil, err
		}
		return s.QuestionRepo.ListBySection(sectionID)
	case eventID > 0:
		return s.QuestionRepo.ListByEvent(eventID)
	default:
		return s.QuestionRepo.List()
	}
}

func (s *QuestionService) DeleteQuestion(id uint) error {
	question, err := s.GetQuestion(id)
	if err != nil {
		return err
	}
	return s.QuestionRepo.Delete(question)
}
