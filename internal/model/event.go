package model

type EventKind string

const (
	EventTrivia EventKind = "trivia"
	EventSurvey EventKind = "survey"
)

func (k EventKind) Valid() bool {
	return k == EventTrivia || k == EventSurvey
}

// swagger:model Event
type Event struct {
	BaseModel

	Name string    `gorm:"size:255;uniqueIndex" json:"name"`
	Kind EventKind `gorm:"size:32;default:trivia" json:"kind"`

	Groups   []Group   `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"groups,omitempty"`
	Sections []Section `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"sections,omitempty"`
}

func (Event) TableName() string {
	return "events"
}
