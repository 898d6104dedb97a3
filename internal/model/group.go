package model

import "time"

// Group is a time-boxed instance of an event that participants join.
// Attempt limits and the cooldown between attempts are enforced per group.
//
// swagger:model Group
type Group struct {
	BaseModel

	EventID         uint      `gorm:"index;uniqueIndex:uq_event_group;type:bigint unsigned" json:"eventId"`
	Name            string    `gorm:"size:255;uniqueIndex:uq_event_group" json:"name"`
	StartTime       time.Time `json:"startTime"`
	CloseTime       time.Time `json:"closeTime"`
	MaxAttempts     int       `gorm:"default:1" json:"maxAttempts"`
	CooldownSeconds int64     `gorm:"not null" json:"cooldownSeconds"`

	Attempts []Attempt `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Group) TableName() string {
	return "groups"
}

func (g *Group) Cooldown() time.Duration {
	return time.Duration(g.CooldownSeconds) * time.Second
}

// OpenAt reports whether the group accepts participants at the given instant.
func (g *Group) OpenAt(t time.Time) bool {
	return !t.Before(g.StartTime) && !t.After(g.CloseTime)
}
