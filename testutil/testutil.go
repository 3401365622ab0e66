package testutil

import (
	"testing"
	"time"

	"safebaby/config"
	"safebaby/models"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// DB opens a fresh in-memory database per test and migrates every model.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		tb.Fatalf("failed to open test db: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		tb.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

func SeedUser(tb testing.TB, db *gorm.DB, email, tier string) *models.User {
	tb.Helper()
	u := &models.User{
		Email:    email,
		Password: "x",
		FullName: "Test Parent",
		Tier:     tier,
	}
	if err := db.Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

// SeedLabTestedProduct creates a product with one verified lab result and a
// contaminant row per metal.
func SeedLabTestedProduct(tb testing.TB, db *gorm.DB, barcode string, score float64, metals map[string]float64) *models.Product {
	tb.Helper()

	p := &models.Product{
		Name:         "Organic Oatmeal Cereal",
		Brand:        "TestBrand",
		Category:     "cereal",
		Barcode:      barcode,
		OverallScore: score,
	}
	if err := db.Create(p).Error; err != nil {
		tb.Fatalf("seed product: %v", err)
	}

	lr := &models.LabResult{
		ProductID: p.ID,
		LabName:   "Eurofins",
		TestDate:  time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		ReportURL: "https://example.com/report.pdf",
		Verified:  true,
	}
	if err := db.Create(lr).Error; err != nil {
		tb.Fatalf("seed lab result: %v", err)
	}

	for metal, amount := range metals {
		row := &models.Contaminant{
			LabResultID: lr.ID,
			Name:        metal,
			Amount:      amount,
			Unit:        "ppb",
			SafetyLimit: 10,
		}
		if err := db.Create(row).Error; err != nil {
			tb.Fatalf("seed contaminant: %v", err)
		}
	}
	return p
}

func SeedCachedAnalysis(tb testing.TB, db *gorm.DB, barcode string) *models.AIAnalyzedProduct {
	tb.Helper()
	row := &models.AIAnalyzedProduct{
		Barcode:     barcode,
		ProductName: "Cached Puffs",
		Brand:       "CacheBrand",
		Ingredients: "rice flour, apple juice",
		Analysis:    datatypes.JSON(`{"summary":"ok"}`),
		SafetyScore: 80,
		Source:      "openfoodfacts",
	}
	if err := db.Create(row).Error; err != nil {
		tb.Fatalf("seed cached analysis: %v", err)
	}
	return row
}
