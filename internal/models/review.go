package models

import "time"

type Review struct {
	ID uint `gorm:"primaryKey" json:"id"`

	WorkshopID uint `gorm:"index;not null" json:"workshop_id"`

	MotoristID uint     `gorm:"index;not null" json:"motorist_id"`
	Motorist   Motorist `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"motorist"`

	Rating  int    `gorm:"not null" json:"rating"` // 1..5
	Comment string `gorm:"size:500" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
