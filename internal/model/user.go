package model

// swagger:model User
type User struct {
	BaseModel

	NationalID string `gorm:"size:20;uniqueIndex" json:"nationalId"`
	Name       string `gorm:"size:255" json:"name"`

	Attempts []Attempt `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (User) TableName() string {
	return "users"
}
