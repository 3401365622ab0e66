package services

import "testing"

func TestParseLabelLinesFullLabel(t *testing.T) {
	out := &PhotoExtraction{}
	parseLabelLines(out, []string{
		"Happy Puffs",
		"HappyTot Organics",
		"INGREDIENTS: sweet potato,",
		"rice flour, apple juice",
		"0 36000 29145 2",
	})

	if out.ProductName != "Happy Puffs" {
		t.Fatalf("name = %q", out.ProductName)
	}
	if out.Brand != "HappyTot Organics" {
		t.Fatalf("brand = %q", out.Brand)
	}
	if out.Barcode != "036000291452" {
		t.Fatalf("barcode = %q", out.Barcode)
	}
	if out.Ingredients != "sweet potato, rice flour, apple juice" {
		t.Fatalf("ingredients = %q", out.Ingredients)
	}
}

func TestParseLabelLinesIgnoresShortDigitRuns(t *testing.T) {
	out := &PhotoExtraction{}
	parseLabelLines(out, []string{"4 oz", "STAGE 2"})
	if out.Barcode != "" {
		t.Fatalf("short digit runs must not become a barcode, got %q", out.Barcode)
	}
}

func TestLooksNumeric(t *testing.T) {
	if !looksNumeric("0 36000 29145 2") {
		t.Fatal("spaced digit run should look numeric")
	}
	if looksNumeric("Best before 2026") {
		t.Fatal("prose with a year should not look numeric")
	}
}
