// Command importer seeds the catalog from a manufacturer disclosure file
// (AB 899-style JSON, produced by the scraping step). Run manually:
//
//	go run ./cmd/importer -file disclosures/gerber-2026-01.json
package main

import (
	"encoding/json"
	"flag"
	"os"
	"time"

	"safebaby/config"
	"safebaby/logger"
	"safebaby/models"
	"safebaby/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type disclosureFile struct {
	LabName   string            `json:"lab_name"`
	TestDate  string            `json:"test_date"` // YYYY-MM-DD
	ReportURL string            `json:"report_url"`
	Verified  bool              `json:"verified"`
	Products  []disclosureEntry `json:"products"`
}

type disclosureEntry struct {
	Name        string             `json:"name"`
	Brand       string             `json:"brand"`
	Category    string             `json:"category"`
	Barcode     string             `json:"barcode"`
	Description string             `json:"description"`
	ImageURL    string             `json:"image_url"`
	Metals      map[string]float64 `json:"metals_ppb"` // Lead/Arsenic/Cadmium/Mercury
	Limits      map[string]float64 `json:"limits_ppb"` // optional per-disclosure limits
}

// Static health-impact copy shown on product pages.
var healthImpacts = map[string]string{
	"Lead":    "Lead exposure can harm brain development and has no known safe level for infants.",
	"Arsenic": "Inorganic arsenic is linked to developmental and immune effects; rice-based foods absorb it readily.",
	"Cadmium": "Cadmium accumulates in the kidneys and can affect bone development over time.",
	"Mercury": "Mercury affects the developing nervous system; exposure mainly comes through contaminated water and soil.",
}

func main() {
	logger.Init()
	defer logger.Close()

	path := flag.String("file", "", "path to a disclosure JSON file")
	flag.Parse()
	if *path == "" {
		logger.Fatal("usage: importer -file <disclosure.json>")
	}

	raw, err := os.ReadFile(*path)
	if err != nil {
		logger.Fatal("read disclosure file", zap.Error(err))
	}
	var disclosure disclosureFile
	if err := json.Unmarshal(raw, &disclosure); err != nil {
		logger.Fatal("parse disclosure file", zap.Error(err))
	}

	testDate, err := time.Parse("2006-01-02", disclosure.TestDate)
	if err != nil {
		logger.Fatal("test_date must be YYYY-MM-DD", zap.Error(err))
	}

	config.InitDB()

	imported, skipped := 0, 0
	for _, entry := range disclosure.Products {
		if err := importEntry(config.DB, &disclosure, entry, testDate); err != nil {
			logger.Error("import failed, skipping entry",
				zap.String("barcode", entry.Barcode),
				zap.String("name", entry.Name),
				zap.Error(err))
			skipped++
			continue
		}
		imported++
	}

	logger.Info("import finished", zap.Int("imported", imported), zap.Int("skipped", skipped))
}

// importEntry writes one product with its lab result and contaminant rows in
// a single transaction, so a failure partway leaves no orphans. Re-running
// the same file upserts the product and adds the result set again only if
// the report URL is new.
func importEntry(db *gorm.DB, d *disclosureFile, entry disclosureEntry, testDate time.Time) error {
	barcode, err := utils.NormalizeBarcode(entry.Barcode)
	if err != nil {
		return err
	}

	limits := entry.Limits
	if len(limits) == 0 {
		limits = utils.DefaultLimits
	}
	score := utils.SafetyScore(entry.Metals, limits)

	return db.Transaction(func(tx *gorm.DB) error {
		product := models.Product{
			Name:         entry.Name,
			Brand:        entry.Brand,
			Category:     entry.Category,
			Barcode:      barcode,
			Description:  entry.Description,
			ImageURL:     entry.ImageURL,
			OverallScore: score,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "barcode"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "brand", "category", "description", "image_url", "overall_score", "updated_at"}),
		}).Create(&product).Error; err != nil {
			return err
		}
		if product.ID == 0 {
			// conflict path: fetch the surviving row's id
			if err := tx.Where("barcode = ?", barcode).First(&product).Error; err != nil {
				return err
			}
		}

		// idempotency on re-run: the same report for the same product is a no-op
		var existing int64
		if err := tx.Model(&models.LabResult{}).
			Where("product_id = ? AND report_url = ?", product.ID, d.ReportURL).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return nil
		}

		result := models.LabResult{
			ProductID: product.ID,
			LabName:   d.LabName,
			TestDate:  testDate,
			ReportURL: d.ReportURL,
			Verified:  d.Verified,
		}
		if err := tx.Create(&result).Error; err != nil {
			return err
		}

		for metal, amount := range entry.Metals {
			limit := limits[metal]
			row := models.Contaminant{
				LabResultID:  result.ID,
				Name:         metal,
				Amount:       amount,
				Unit:         "ppb",
				SafetyLimit:  limit,
				ExceedsLimit: limit > 0 && amount > limit,
				HealthImpact: healthImpacts[metal],
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
