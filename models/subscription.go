package models

import (
	"time"

	"gorm.io/gorm"
)

// Subscription mirrors the billing provider's view of a user. The provider
// plan reference maps to an internal tier on refresh.
type Subscription struct {
	gorm.Model
	UserID           uint      `gorm:"index;not null" json:"user_id"`
	Provider         string    `gorm:"size:20" json:"provider"`
	ProviderRef      string    `gorm:"size:191;index" json:"provider_ref"`
	Plan             string    `gorm:"size:50;default:'free'" json:"plan"`
	Status           string    `gorm:"size:20" json:"status"` // active | past_due | canceled
	CurrentPeriodEnd time.Time `json:"current_period_end"`
}
