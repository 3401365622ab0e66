package services

import (
	"encoding/json"
	"errors"
	"math/rand"
	"time"

	"safebaby/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	planDays  = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
	planSlots = []string{"breakfast", "lunch", "dinner"}
)

var ErrEmptyPlanPool = errors.New("no products score high enough to build a plan")

type MealPlanService struct {
	db       *gorm.DB
	products *ProductService
}

func NewMealPlanService(db *gorm.DB, products *ProductService) *MealPlanService {
	return &MealPlanService{db: db, products: products}
}

// GenerateWeek assigns a random product from the top-score pool to every
// day and slot cell. It is a plain randomized assignment, no constraint solving;
// repeats across the week are fine. One plan per user per week (upsert).
func (s *MealPlanService) GenerateWeek(userID uint, weekStart time.Time) (*models.MealPlan, error) {
	pool, err := s.products.TopScored(50)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, ErrEmptyPlanPool
	}

	slots := make(map[string]map[string]uint, len(planDays))
	for _, day := range planDays {
		slots[day] = make(map[string]uint, len(planSlots))
		for _, slot := range planSlots {
			slots[day][slot] = pool[rand.Intn(len(pool))].ID
		}
	}

	blob, err := json.Marshal(slots)
	if err != nil {
		return nil, err
	}

	plan := &models.MealPlan{
		UserID:    userID,
		WeekStart: weekStart.Truncate(24 * time.Hour),
		Slots:     datatypes.JSON(blob),
	}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "week_start"}},
		DoUpdates: clause.AssignmentColumns([]string{"slots", "updated_at"}),
	}).Create(plan).Error
	if err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *MealPlanService) GetWeek(userID uint, weekStart time.Time) (*models.MealPlan, error) {
	var plan models.MealPlan
	err := s.db.
		Where("user_id = ? AND week_start = ?", userID, weekStart.Truncate(24*time.Hour)).
		First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}
