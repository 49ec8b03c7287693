package models

import "time"

// Veículo do motorista, independente dos registros de oficina
type MotoristVehicle struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	MotoristID uint `gorm:"index;not null" json:"motorist_id"`

	Plate string `gorm:"size:10;not null" json:"plate"`
	Brand string `gorm:"size:50" json:"brand"`
	Model string `gorm:"size:80" json:"model"`
	Year  string `gorm:"size:10" json:"year"`
	Color string `gorm:"size:30" json:"color"`
	Km    int    `json:"km"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type MaintenanceHistory struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	MotoristID uint `gorm:"index;not null" json:"motorist_id"`

	MotoristVehicleID uint            `gorm:"index;not null" json:"motorist_vehicle_id"`
	MotoristVehicle   MotoristVehicle `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ServiceType  string    `gorm:"size:50" json:"service_type"`
	Description  string    `gorm:"size:500" json:"description"`
	WorkshopName string    `gorm:"size:100" json:"workshop_name"`
	ServiceDate  time.Time `json:"service_date"`
	Mileage      int       `json:"mileage"`
	Cost         float64   `json:"cost"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
