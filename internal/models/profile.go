package models

import "time"

// Tipos de perfil. O tipo é imutável depois de criado.
const (
	ProfileTypeWorkshop = "oficina"
	ProfileTypeMotorist = "motorista"
	ProfileTypeAdmin    = "admin"
)

type Profile struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Type  string `gorm:"size:20;not null" json:"type"`
	Name  string `gorm:"size:100" json:"name"`
	Email string `gorm:"size:100" json:"email"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
