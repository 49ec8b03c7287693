package models

import "time"

// Orçamento pedido por um motorista a uma oficina
type Quote struct {
	ID uint `gorm:"primaryKey" json:"id"`

	WorkshopID uint `gorm:"index;not null" json:"workshop_id"`

	MotoristID uint     `gorm:"index;not null" json:"motorist_id"`
	Motorist   Motorist `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"motorist"`

	MotoristVehicleID *uint `json:"motorist_vehicle_id"`

	VehicleDescription string `gorm:"size:150" json:"vehicle_description"`
	Plate              string `gorm:"size:10" json:"plate"`
	Description        string `gorm:"size:500;not null" json:"description"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	Amount  *float64 `json:"amount"`
	Message string   `gorm:"size:500" json:"message"`

	RespondedAt *time.Time `json:"responded_at"`
	DecidedAt   *time.Time `json:"decided_at"`
	ExpiresAt   *time.Time `json:"expires_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
