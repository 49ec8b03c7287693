package models

import "time"

type Workshop struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ProfileID uint    `gorm:"uniqueIndex;not null" json:"profile_id"`
	Profile   Profile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name    string `gorm:"size:100;not null" json:"name"`
	Slug    string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Phone   string `gorm:"size:20" json:"phone"`
	Address string `gorm:"size:255" json:"address"`
	City    string `gorm:"size:100" json:"city"`
	State   string `gorm:"size:2" json:"state"`
	LogoURL string `gorm:"size:255" json:"logo_url"`

	PlanType       string     `gorm:"size:20;default:'free'" json:"plan_type"`
	TrialEndsAt    *time.Time `json:"trial_ends_at"`
	SubscriptionID string     `gorm:"size:100" json:"subscription_id"`

	PublicListed bool    `gorm:"default:true" json:"public_listed"`
	Rating       float64 `gorm:"default:0" json:"rating"`
	RatingCount  int     `gorm:"default:0" json:"rating_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
