package model

import "time"

type AttemptState string

const (
	AttemptPending  AttemptState = "pending"
	AttemptFinished AttemptState = "finished"
)

func (s AttemptState) Valid() bool {
	return s == AttemptPending || s == AttemptFinished
}

// Attempt is one participation session of a user within a group.
// Attempt numbers per (user, group) start at 1 and increase without gaps;
// at most one pending attempt may exist per (user, group) at a time.
//
// swagger:model Attempt
type Attempt struct {
	BaseModel

	UserID        uint `gorm:"index;uniqueIndex:uq_user_group_attempt;type:bigint unsigned" json:"userId"`
	GroupID       uint `gorm:"index;uniqueIndex:uq_user_group_attempt;type:bigint unsigned" json:"groupId"`
	AttemptNumber int  `gorm:"uniqueIndex:uq_user_group_attempt" json:"attemptNumber"`

	// ChoiceAnswers holds the single-choice answers as a JSON array of
	// {questionId, selectedOption}; OpenAnswers holds the free-text ones as
	// {questionId, openText}. Both are empty arrays until finalization.
	ChoiceAnswers string `gorm:"type:json" json:"choiceAnswers"`
	OpenAnswers   string `gorm:"type:json" json:"openAnswers"`

	State          AttemptState `gorm:"size:16;default:pending;index" json:"state"`
	StartedAt      time.Time    `json:"startedAt"`
	FinishedAt     *time.Time   `json:"finishedAt,omitempty"`
	ElapsedSeconds *int64       `json:"elapsedSeconds,omitempty"`

	User   User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Group  Group   `gorm:"foreignKey:GroupID" json:"-"`
	Result *Result `gorm:"foreignKey:AttemptID;constraint:OnDelete:CASCADE" json:"result,omitempty"`
}

func (Attempt) TableName() string {
	return "attempts"
}
