package models

import "time"

type Transaction struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	WorkshopID uint `gorm:"index;not null" json:"workshop_id"`

	Type        string  `gorm:"size:10;not null" json:"type"` // receita | despesa
	Category    string  `gorm:"size:50" json:"category"`
	Description string  `gorm:"size:255" json:"description"`
	Amount      float64 `gorm:"not null" json:"amount"`

	ServiceOrderID *uint `json:"service_order_id"`

	Date time.Time `gorm:"not null" json:"date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
