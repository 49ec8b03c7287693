package models

import "time"

// Diagnóstico gerado por IA. Os campos extraídos do texto livre
// são best-effort e podem ficar nulos.
type Diagnostic struct {
	ID uint `gorm:"primaryKey" json:"id"`

	WorkshopID *uint `gorm:"index" json:"workshop_id"`
	MotoristID *uint `gorm:"index" json:"motorist_id"`

	Symptoms    string `gorm:"size:1000;not null" json:"symptoms"`
	VehicleInfo string `gorm:"size:255" json:"vehicle_info"`
	Result      string `gorm:"type:text" json:"result"`

	Severity      *string `gorm:"size:20" json:"severity"`
	SafeToDrive   *bool   `json:"safe_to_drive"`
	EstimatedCost *string `gorm:"size:100" json:"estimated_cost"`
	Model         string  `gorm:"size:50" json:"model"`

	CreatedAt time.Time `json:"created_at"`
}
