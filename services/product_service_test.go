package services

import (
	"testing"

	"safebaby/testutil"
)

func TestSearchMatchesNameBrandCategoryCaseInsensitively(t *testing.T) {
	db := testutil.DB(t)
	testutil.SeedLabTestedProduct(t, db, "000000002001", 90, nil) // name "Organic Oatmeal Cereal", brand "TestBrand"
	svc := NewProductService(db)

	for _, q := range []string{"oatmeal", "OATMEAL", "testbrand", "cereal"} {
		got, err := svc.Search(q, 10)
		if err != nil {
			t.Fatalf("search %q: %v", q, err)
		}
		if len(got) != 1 {
			t.Fatalf("search %q returned %d products, want 1", q, len(got))
		}
	}

	got, err := svc.Search("spinach", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("search miss returned %d products, want 0", len(got))
	}
}

func TestGetByIDPreloadsDetailPayload(t *testing.T) {
	db := testutil.DB(t)
	p := testutil.SeedLabTestedProduct(t, db, "000000002101", 72, map[string]float64{"Lead": 2, "Arsenic": 50})
	svc := NewProductService(db)

	got, err := svc.GetByID(p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.LabResults) != 1 {
		t.Fatalf("lab results = %d, want 1", len(got.LabResults))
	}
	if len(got.LabResults[0].Contaminants) != 2 {
		t.Fatalf("contaminants = %d, want 2", len(got.LabResults[0].Contaminants))
	}
}

func TestTopScoredAppliesFloorAndOrder(t *testing.T) {
	db := testutil.DB(t)
	testutil.SeedLabTestedProduct(t, db, "000000002201", 95, nil)
	testutil.SeedLabTestedProduct(t, db, "000000002202", 70, nil) // floor is inclusive
	testutil.SeedLabTestedProduct(t, db, "000000002203", 69, nil)
	svc := NewProductService(db)

	got, err := svc.TopScored(0)
	if err != nil {
		t.Fatalf("top scored: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("pool size = %d, want 2", len(got))
	}
	if got[0].OverallScore < got[1].OverallScore {
		t.Fatal("pool must be ordered best first")
	}
}
