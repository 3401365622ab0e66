package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MealPlan holds one week of per-day, per-slot product id assignments, picked at
// random from the top-score pool. One plan per user per week.
type MealPlan struct {
	gorm.Model
	UserID    uint           `gorm:"index:ux_meal_plans_week,unique,priority:1;not null" json:"user_id"`
	WeekStart time.Time      `gorm:"index:ux_meal_plans_week,unique,priority:2;not null" json:"week_start"`
	Slots     datatypes.JSON `json:"slots"` // {"monday":{"breakfast":12,...},...}
}
