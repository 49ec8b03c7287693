package models

import "time"

type ServiceOrder struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	WorkshopID uint `gorm:"index;uniqueIndex:idx_service_orders_workshop_number;not null" json:"workshop_id"`

	ClientID uint   `gorm:"index;not null" json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	VehicleID uint    `gorm:"index;not null" json:"vehicle_id"`
	Vehicle   Vehicle `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"vehicle"`

	Number      string `gorm:"size:40;uniqueIndex:idx_service_orders_workshop_number;not null" json:"number"`
	Status      string `gorm:"size:20;default:'aberta'" json:"status"`
	Description string `gorm:"size:500" json:"description"`

	LaborCost float64 `json:"labor_cost"`
	Discount  float64 `json:"discount"`
	Total     float64 `json:"total"`

	Items []ServiceOrderItem `gorm:"foreignKey:ServiceOrderID" json:"items"`

	OpenedAt time.Time  `json:"opened_at"`
	ClosedAt *time.Time `json:"closed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ServiceOrderItem struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	ServiceOrderID uint `gorm:"index;not null" json:"service_order_id"`
	WorkshopID     uint `gorm:"index;not null" json:"workshop_id"`

	InventoryItemID *uint `json:"inventory_item_id"`

	Description string  `gorm:"size:255;not null" json:"description"`
	Quantity    int     `gorm:"default:1" json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
