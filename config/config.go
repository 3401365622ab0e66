package config

import (
	"fmt"
	"os"

	"safebaby/logger"
	"safebaby/models"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	if err := godotenv.Load(); err != nil {
		logger.Warn("no .env file found, relying on environment", zap.Error(err))
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := Migrate(DB); err != nil {
		logger.Fatal("AutoMigrate failed", zap.Error(err))
	}
}

// Migrate is separated out so tests can run it against their own DB.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.LabResult{},
		&models.Contaminant{},
		&models.AIAnalyzedProduct{},
		&models.Recall{},
		&models.UserFavorite{},
		&models.Subscription{},
		&models.MealPlan{},
		&models.Alert{},
		&models.UserDevice{},
		&models.ContactMessage{},
	)
}
