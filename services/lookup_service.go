package services

import (
	"encoding/json"
	"errors"

	"safebaby/logger"
	"safebaby/models"
	"safebaby/utils"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Result type discriminators, in trust order. Lab-tested data always wins
// over anything AI-inferred, regardless of recency.
const (
	LookupLabTested      = "lab_tested"
	LookupAIAnalyzed     = "ai_analyzed"
	LookupNotFound       = "not_found"
	LookupAnalysisFailed = "analysis_failed"
	LookupError          = "error"
)

// LookupResult is the envelope every lookup returns; the page layer consumes
// it directly.
type LookupResult struct {
	Type          string                    `json:"type"`
	Barcode       string                    `json:"barcode"`
	Message       string                    `json:"message,omitempty"`
	Suggestion    string                    `json:"suggestion,omitempty"`
	Cached        bool                      `json:"cached,omitempty"`
	IsNewAnalysis bool                      `json:"is_new_analysis,omitempty"`
	HasLabResults bool                      `json:"has_lab_results,omitempty"`
	Product       *models.Product           `json:"product,omitempty"`
	Analysis      *models.AIAnalyzedProduct `json:"analysis,omitempty"`
}

type LookupService struct {
	db       *gorm.DB
	fetcher  ProductFetcher
	analyzer IngredientAnalyzer
}

func NewLookupService(db *gorm.DB, fetcher ProductFetcher, analyzer IngredientAnalyzer) *LookupService {
	return &LookupService{db: db, fetcher: fetcher, analyzer: analyzer}
}

// Lookup walks the tiers in order: local lab-tested products, the AI cache
// table, the external product databases, fresh AI analysis, cache write-back.
// Each tier's own failure is logged and falls through to the next; only
// invalid input aborts up front.
func (s *LookupService) Lookup(rawBarcode string) *LookupResult {
	barcode, err := utils.NormalizeBarcode(rawBarcode)
	if err != nil {
		return &LookupResult{
			Type:       LookupError,
			Barcode:    rawBarcode,
			Message:    err.Error(),
			Suggestion: "Check the number under the barcode and try again.",
		}
	}

	// Tier 1: lab-tested products.
	var product models.Product
	err = s.db.
		Preload("LabResults.Contaminants").
		Preload("Recalls", "active = ?", true).
		Where("barcode = ?", barcode).
		First(&product).Error
	if err == nil {
		return &LookupResult{
			Type:          LookupLabTested,
			Barcode:       barcode,
			Product:       &product,
			HasLabResults: len(product.LabResults) > 0,
		}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("lab-tested lookup failed, falling through", zap.String("barcode", barcode), zap.Error(err))
	}

	// Tier 2: previously analyzed cache.
	var cached models.AIAnalyzedProduct
	err = s.db.Where("barcode = ?", barcode).First(&cached).Error
	if err == nil {
		return &LookupResult{
			Type:     LookupAIAnalyzed,
			Barcode:  barcode,
			Cached:   true,
			Analysis: &cached,
		}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("analysis cache read failed, falling through", zap.String("barcode", barcode), zap.Error(err))
	}

	// Tier 3: external product databases.
	external, err := s.fetcher.FetchByBarcode(barcode)
	if err != nil {
		if !errors.Is(err, ErrProductNotFound) {
			logger.Warn("external product fetch failed", zap.String("barcode", barcode), zap.Error(err))
		}
		return &LookupResult{
			Type:       LookupNotFound,
			Barcode:    barcode,
			Message:    "We couldn't find this product in any database.",
			Suggestion: "Try searching by product name, or send us the label so we can add it.",
		}
	}

	// Tier 4: fresh AI analysis.
	analysis, err := s.analyzer.Analyze(external)
	if err != nil {
		logger.Warn("ingredient analysis failed", zap.String("barcode", barcode), zap.Error(err))
		return &LookupResult{
			Type:       LookupAnalysisFailed,
			Barcode:    barcode,
			Message:    "We found the product but couldn't analyze its ingredients right now.",
			Suggestion: "Try again in a minute. The product data itself is fine.",
		}
	}

	row := buildCacheRow(barcode, external, analysis)

	// Tier 5: best-effort write-back. A failed write is logged, never
	// surfaced; the lookup still succeeds.
	if err := s.writeCache(row); err != nil {
		logger.Error("analysis cache write failed", zap.String("barcode", barcode), zap.Error(err))
	}

	return &LookupResult{
		Type:          LookupAIAnalyzed,
		Barcode:       barcode,
		Cached:        false,
		IsNewAnalysis: true,
		Analysis:      row,
	}
}

// writeCache upserts on the barcode unique index so concurrent first lookups
// for the same product leave exactly one row, the later analysis winning.
func (s *LookupService) writeCache(row *models.AIAnalyzedProduct) error {
	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "barcode"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"product_name", "brand", "category", "ingredients", "analysis", "safety_score", "source", "updated_at",
		}),
	}).Create(row).Error
}

func buildCacheRow(barcode string, p *ExternalProduct, a *IngredientAnalysis) *models.AIAnalyzedProduct {
	blob, err := json.Marshal(a)
	if err != nil {
		blob = []byte("{}")
	}
	return &models.AIAnalyzedProduct{
		Barcode:     barcode,
		ProductName: p.Name,
		Brand:       p.Brand,
		Category:    p.Category,
		Ingredients: p.Ingredients,
		Analysis:    datatypes.JSON(blob),
		SafetyScore: a.SafetyScore,
		Source:      p.Source,
	}
}
