package main

import (
	"testing"
	"time"

	"safebaby/models"
	"safebaby/testutil"
)

func disclosureFixture() *disclosureFile {
	return &disclosureFile{
		LabName:   "Eurofins",
		TestDate:  "2026-01-15",
		ReportURL: "https://example.com/gerber-2026-01.pdf",
		Verified:  true,
	}
}

func entryFixture() disclosureEntry {
	return disclosureEntry{
		Name:     "Rice Cereal",
		Brand:    "Gerber",
		Category: "cereal",
		Barcode:  "015000076115",
		Metals: map[string]float64{
			"Lead":    2,
			"Arsenic": 50,
			"Cadmium": 1,
			"Mercury": 0.5,
		},
	}
}

func TestImportEntryCreatesFullRecord(t *testing.T) {
	db := testutil.DB(t)
	d := disclosureFixture()
	testDate := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	if err := importEntry(db, d, entryFixture(), testDate); err != nil {
		t.Fatalf("import: %v", err)
	}

	var product models.Product
	if err := db.Preload("LabResults.Contaminants").
		Where("barcode = ?", "015000076115").
		First(&product).Error; err != nil {
		t.Fatalf("load product: %v", err)
	}
	if product.OverallScore != 72 {
		t.Fatalf("score = %v, want 72", product.OverallScore)
	}
	if len(product.LabResults) != 1 {
		t.Fatalf("lab results = %d, want 1", len(product.LabResults))
	}
	if got := len(product.LabResults[0].Contaminants); got != 4 {
		t.Fatalf("contaminants = %d, want 4", got)
	}
	for _, c := range product.LabResults[0].Contaminants {
		if c.ExceedsLimit {
			t.Fatalf("%s flagged over limit at %v ppb", c.Name, c.Amount)
		}
		if c.HealthImpact == "" {
			t.Fatalf("%s missing health impact copy", c.Name)
		}
	}
}

func TestImportEntryRerunIsIdempotent(t *testing.T) {
	db := testutil.DB(t)
	d := disclosureFixture()
	testDate := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	if err := importEntry(db, d, entryFixture(), testDate); err != nil {
		t.Fatalf("first import: %v", err)
	}
	if err := importEntry(db, d, entryFixture(), testDate); err != nil {
		t.Fatalf("re-import: %v", err)
	}

	var products, results int64
	db.Model(&models.Product{}).Count(&products)
	db.Model(&models.LabResult{}).Count(&results)
	if products != 1 || results != 1 {
		t.Fatalf("re-run duplicated rows: products=%d results=%d", products, results)
	}
}

func TestImportEntryNewReportAddsResult(t *testing.T) {
	db := testutil.DB(t)
	d := disclosureFixture()
	testDate := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	if err := importEntry(db, d, entryFixture(), testDate); err != nil {
		t.Fatalf("first import: %v", err)
	}

	later := disclosureFixture()
	later.ReportURL = "https://example.com/gerber-2026-04.pdf"
	entry := entryFixture()
	entry.Metals["Lead"] = 8 // worse batch
	if err := importEntry(db, later, entry, testDate.AddDate(0, 3, 0)); err != nil {
		t.Fatalf("second import: %v", err)
	}

	var products, results int64
	db.Model(&models.Product{}).Count(&products)
	db.Model(&models.LabResult{}).Count(&results)
	if products != 1 {
		t.Fatalf("products = %d, want the same row upserted", products)
	}
	if results != 2 {
		t.Fatalf("lab results = %d, want one per report", results)
	}

	var product models.Product
	if err := db.Where("barcode = ?", "015000076115").First(&product).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	// 8/10 lead at weight 0.35, arsenic 50%, cadmium 20%, mercury 25%.
	if product.OverallScore != 51 {
		t.Fatalf("score after worse batch = %v, want 51", product.OverallScore)
	}
}

func TestImportEntryRejectsBadBarcode(t *testing.T) {
	db := testutil.DB(t)
	entry := entryFixture()
	entry.Barcode = "abc"
	err := importEntry(db, disclosureFixture(), entry, time.Now())
	if err == nil {
		t.Fatal("expected error for invalid barcode")
	}

	var count int64
	db.Model(&models.Product{}).Count(&count)
	if count != 0 {
		t.Fatalf("bad entry left %d product rows", count)
	}
}
