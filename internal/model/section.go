package model

// swagger:model Section
type Section struct {
	BaseModel

	EventID uint   `gorm:"index;uniqueIndex:uq_event_section;type:bigint unsigned" json:"eventId"`
	Name    string `gorm:"size:255;uniqueIndex:uq_event_section" json:"name"`

	Questions []Question `gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

func (Section) TableName() string {
	return "sections"
}
