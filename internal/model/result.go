package model

// Result is the scoring summary derived from a finished attempt. It is
// written only by the finalization step, never by request payloads.
//
// swagger:model Result
type Result struct {
	BaseModel

	AttemptID      uint    `gorm:"uniqueIndex;type:bigint unsigned" json:"attemptId"`
	TotalQuestions int     `json:"totalQuestions"`
	Correct        int     `json:"correct"`
	Accuracy       float64 `gorm:"type:decimal(5,2)" json:"accuracy"`
	ElapsedSeconds int64   `json:"elapsedSeconds"`
}

func (Result) TableName() string {
	return "results"
}
