package controllers

import (
	"errors"
	"net/http"
	"time"

	"safebaby/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MealPlanController struct {
	Plans *services.MealPlanService
}

func NewMealPlanController(ms *services.MealPlanService) *MealPlanController {
	return &MealPlanController{Plans: ms}
}

func weekStartFrom(c *gin.Context) (time.Time, error) {
	raw := c.Query("week_start")
	if raw == "" {
		// default to the Monday of the current week
		now := time.Now().Truncate(24 * time.Hour)
		offset := (int(now.Weekday()) + 6) % 7
		return now.AddDate(0, 0, -offset), nil
	}
	return time.Parse("2006-01-02", raw)
}

// POST /user/meal-plan/generate?week_start=2026-08-24
func (mc *MealPlanController) Generate(c *gin.Context) {
	uid := c.GetUint("userID")

	weekStart, err := weekStartFrom(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "week_start must be YYYY-MM-DD"})
		return
	}

	plan, err := mc.Plans.GenerateWeek(uid, weekStart)
	if err != nil {
		if errors.Is(err, services.ErrEmptyPlanPool) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, plan)
}

// GET /user/meal-plan?week_start=2026-08-24
func (mc *MealPlanController) Get(c *gin.Context) {
	uid := c.GetUint("userID")

	weekStart, err := weekStartFrom(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "week_start must be YYYY-MM-DD"})
		return
	}

	plan, err := mc.Plans.GetWeek(uid, weekStart)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no plan for that week"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, plan)
}
