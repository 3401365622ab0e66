package services

import (
	"errors"
	"testing"

	"safebaby/models"
	"safebaby/testutil"
)

type stubFetcher struct {
	calls   int
	product *ExternalProduct
	err     error
}

func (s *stubFetcher) FetchByBarcode(barcode string) (*ExternalProduct, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.product, nil
}

type stubAnalyzer struct {
	calls    int
	analysis *IngredientAnalysis
	err      error
}

func (s *stubAnalyzer) Analyze(p *ExternalProduct) (*IngredientAnalysis, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.analysis, nil
}

func externalFixture(barcode string) *ExternalProduct {
	return &ExternalProduct{
		Barcode:     barcode,
		Name:        "Sweet Potato Puffs",
		Brand:       "HappyTot",
		Category:    "snacks",
		Ingredients: "sweet potato, rice flour",
		Source:      "openfoodfacts",
	}
}

func analysisFixture() *IngredientAnalysis {
	return &IngredientAnalysis{
		Summary:     "Rice-based snack, moderate arsenic exposure expected.",
		Concerns:    []string{"rice flour"},
		SafetyScore: 65,
	}
}

func TestLookupInvalidBarcodeShortCircuits(t *testing.T) {
	db := testutil.DB(t)
	fetcher := &stubFetcher{}
	analyzer := &stubAnalyzer{}
	svc := NewLookupService(db, fetcher, analyzer)

	res := svc.Lookup("not-a-barcode")
	if res.Type != LookupError {
		t.Fatalf("type = %q, want %q", res.Type, LookupError)
	}
	if fetcher.calls != 0 || analyzer.calls != 0 {
		t.Fatalf("invalid barcode must not reach external services (fetcher=%d analyzer=%d)", fetcher.calls, analyzer.calls)
	}
}

func TestLookupLabTestedWinsOverCache(t *testing.T) {
	db := testutil.DB(t)
	const barcode = "890180001894"
	testutil.SeedLabTestedProduct(t, db, barcode, 72, map[string]float64{"Lead": 2})
	// A stale cache row for the same barcode must lose to lab data.
	testutil.SeedCachedAnalysis(t, db, barcode)

	fetcher := &stubFetcher{}
	svc := NewLookupService(db, fetcher, &stubAnalyzer{})

	res := svc.Lookup(barcode)
	if res.Type != LookupLabTested {
		t.Fatalf("type = %q, want %q", res.Type, LookupLabTested)
	}
	if !res.HasLabResults {
		t.Fatal("expected has_lab_results to be set")
	}
	if res.Product == nil || res.Product.Barcode != barcode {
		t.Fatalf("product not returned for %s", barcode)
	}
	if len(res.Product.LabResults) != 1 || len(res.Product.LabResults[0].Contaminants) != 1 {
		t.Fatal("lab results and contaminants were not preloaded")
	}
	if fetcher.calls != 0 {
		t.Fatalf("lab-tested hit must not call external fetch, got %d calls", fetcher.calls)
	}
}

func TestLookupCachedAnalysisSkipsExternal(t *testing.T) {
	db := testutil.DB(t)
	const barcode = "041220787346"
	testutil.SeedCachedAnalysis(t, db, barcode)

	fetcher := &stubFetcher{}
	analyzer := &stubAnalyzer{}
	svc := NewLookupService(db, fetcher, analyzer)

	res := svc.Lookup(barcode)
	if res.Type != LookupAIAnalyzed {
		t.Fatalf("type = %q, want %q", res.Type, LookupAIAnalyzed)
	}
	if !res.Cached || res.IsNewAnalysis {
		t.Fatalf("cached hit flags wrong: cached=%v is_new=%v", res.Cached, res.IsNewAnalysis)
	}
	if fetcher.calls != 0 || analyzer.calls != 0 {
		t.Fatalf("cache hit must not reach external services (fetcher=%d analyzer=%d)", fetcher.calls, analyzer.calls)
	}
}

func TestLookupNotFoundSkipsAnalyzer(t *testing.T) {
	db := testutil.DB(t)
	fetcher := &stubFetcher{err: ErrProductNotFound}
	analyzer := &stubAnalyzer{}
	svc := NewLookupService(db, fetcher, analyzer)

	res := svc.Lookup("000000000000")
	if res.Type != LookupNotFound {
		t.Fatalf("type = %q, want %q", res.Type, LookupNotFound)
	}
	if res.Barcode != "000000000000" {
		t.Fatalf("barcode echoed as %q, want the normalized input", res.Barcode)
	}
	if res.Suggestion == "" {
		t.Fatal("not_found result must carry a suggestion")
	}
	if analyzer.calls != 0 {
		t.Fatalf("no product means no analysis, got %d analyzer calls", analyzer.calls)
	}
}

func TestLookupTransportErrorMapsToNotFound(t *testing.T) {
	db := testutil.DB(t)
	fetcher := &stubFetcher{err: errors.New("connection refused")}
	svc := NewLookupService(db, fetcher, &stubAnalyzer{})

	res := svc.Lookup("036000291452")
	if res.Type != LookupNotFound {
		t.Fatalf("type = %q, want %q on transport error", res.Type, LookupNotFound)
	}
}

func TestLookupAnalysisFailureDoesNotCache(t *testing.T) {
	db := testutil.DB(t)
	const barcode = "036000291452"
	fetcher := &stubFetcher{product: externalFixture(barcode)}
	analyzer := &stubAnalyzer{err: errors.New("model loading")}
	svc := NewLookupService(db, fetcher, analyzer)

	res := svc.Lookup(barcode)
	if res.Type != LookupAnalysisFailed {
		t.Fatalf("type = %q, want %q", res.Type, LookupAnalysisFailed)
	}

	var count int64
	db.Model(&models.AIAnalyzedProduct{}).Count(&count)
	if count != 0 {
		t.Fatalf("failed analysis must not write the cache, found %d rows", count)
	}
}

func TestLookupFreshAnalysisWritesCacheOnce(t *testing.T) {
	db := testutil.DB(t)
	const barcode = "036000291452"
	fetcher := &stubFetcher{product: externalFixture(barcode)}
	analyzer := &stubAnalyzer{analysis: analysisFixture()}
	svc := NewLookupService(db, fetcher, analyzer)

	res := svc.Lookup(barcode)
	if res.Type != LookupAIAnalyzed {
		t.Fatalf("type = %q, want %q", res.Type, LookupAIAnalyzed)
	}
	if !res.IsNewAnalysis || res.Cached {
		t.Fatalf("fresh analysis flags wrong: cached=%v is_new=%v", res.Cached, res.IsNewAnalysis)
	}
	if res.Analysis == nil || res.Analysis.SafetyScore != 65 {
		t.Fatalf("analysis row not returned with score, got %+v", res.Analysis)
	}

	var count int64
	db.Model(&models.AIAnalyzedProduct{}).Where("barcode = ?", barcode).Count(&count)
	if count != 1 {
		t.Fatalf("cache rows = %d, want exactly 1", count)
	}

	// Second lookup must hit the cache, not the external services.
	res2 := svc.Lookup(barcode)
	if res2.Type != LookupAIAnalyzed || !res2.Cached {
		t.Fatalf("second lookup: type=%q cached=%v, want cached ai_analyzed", res2.Type, res2.Cached)
	}
	if fetcher.calls != 1 || analyzer.calls != 1 {
		t.Fatalf("second lookup reached external services (fetcher=%d analyzer=%d)", fetcher.calls, analyzer.calls)
	}
}

func TestLookupCacheWriteUpsertsOnBarcode(t *testing.T) {
	db := testutil.DB(t)
	const barcode = "041220787346"
	// A row already exists, as when a concurrent first lookup for the same
	// barcode committed between this request's cache read and its write-back.
	testutil.SeedCachedAnalysis(t, db, barcode)

	svc := NewLookupService(db, &stubFetcher{}, &stubAnalyzer{})
	row := buildCacheRow(barcode, externalFixture(barcode), analysisFixture())
	if err := svc.writeCache(row); err != nil {
		t.Fatalf("write-back must upsert, not fail: %v", err)
	}

	var count int64
	db.Model(&models.AIAnalyzedProduct{}).Where("barcode = ?", barcode).Count(&count)
	if count != 1 {
		t.Fatalf("cache rows for %s = %d, want 1", barcode, count)
	}

	var got models.AIAnalyzedProduct
	if err := db.Where("barcode = ?", barcode).First(&got).Error; err != nil {
		t.Fatalf("reload cache row: %v", err)
	}
	if got.ProductName != "Sweet Potato Puffs" || got.SafetyScore != 65 {
		t.Fatalf("later analysis must win: got %q score %v", got.ProductName, got.SafetyScore)
	}
}
