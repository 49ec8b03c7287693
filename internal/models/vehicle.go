package models

import "time"

type Vehicle struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	WorkshopID uint `gorm:"index;not null" json:"workshop_id"`

	ClientID uint   `gorm:"index;not null" json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"client"`

	Plate string `gorm:"size:10;not null" json:"plate"`
	Brand string `gorm:"size:50" json:"brand"`
	Model string `gorm:"size:80" json:"model"`
	Year  string `gorm:"size:10" json:"year"`
	Color string `gorm:"size:30" json:"color"`
	Km    int    `json:"km"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
