package models

import "time"

type InventoryItem struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	WorkshopID uint `gorm:"index;not null" json:"workshop_id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	SKU         string `gorm:"size:50" json:"sku"`
	Description string `gorm:"size:255" json:"description"`
	Supplier    string `gorm:"size:100" json:"supplier"`

	Quantity    int     `gorm:"default:0" json:"quantity"`
	MinQuantity int     `gorm:"default:0" json:"min_quantity"`
	CostPrice   float64 `json:"cost_price"`
	SalePrice   float64 `json:"sale_price"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
