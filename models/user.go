package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	TierFree    = "free"
	TierPremium = "premium"
)

type User struct {
	gorm.Model
	Email         string `gorm:"uniqueIndex;not null"`
	Password      string `gorm:"not null"`
	FullName      string
	Tier          string `gorm:"size:16;default:'free'"` // gates the favorites cap
	Disabled      bool
	ResetToken    string
	ResetTokenExp time.Time
}
