package model

type QuestionKind string

const (
	QuestionOpen         QuestionKind = "open"
	QuestionSingleChoice QuestionKind = "single_choice"
)

func (k QuestionKind) Valid() bool {
	return k == QuestionOpen || k == QuestionSingleChoice
}

// MaxOptionsPerQuestion caps the answer options of a single-choice question.
// Option orders run 1..N contiguously.
const MaxOptionsPerQuestion = 4

// swagger:model Question
type Question struct {
	BaseModel

	SectionID uint         `gorm:"index;uniqueIndex:uq_section_question;type:bigint unsigned" json:"sectionId"`
	Text      string       `gorm:"size:512;uniqueIndex:uq_section_question" json:"text"`
	Kind      QuestionKind `gorm:"size:32" json:"kind"`

	// CorrectOption references the winning option order. Set iff Kind is single_choice.
	CorrectOption *int `gorm:"type:smallint" json:"correctOption,omitempty"`

	Options []AnswerOption `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"options,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// swagger:model AnswerOption
type AnswerOption struct {
	BaseModel

	QuestionID uint   `gorm:"index;uniqueIndex:uq_question_option_order;type:bigint unsigned" json:"questionId"`
	Order      int    `gorm:"column:option_order;uniqueIndex:uq_question_option_order" json:"order"`
	Text       string `gorm:"size:512" json:"text"`
}

func (AnswerOption) TableName() string {
	return "answer_options"
}
