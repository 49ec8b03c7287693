package models

import "time"

type Motorist struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ProfileID uint    `gorm:"uniqueIndex;not null" json:"profile_id"`
	Profile   Profile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name  string `gorm:"size:100" json:"name"`
	Phone string `gorm:"size:20" json:"phone"`
	City  string `gorm:"size:100" json:"city"`
	State string `gorm:"size:2" json:"state"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
