package models

import (
    "time"

    "gorm.io/gorm"
)

// Product is a lab-tested catalog entry. Barcode is the business key used by
// the lookup waterfall; rows come from the importer or are promoted manually.
type Product struct {
    gorm.Model
    Name         string  `gorm:"not null" json:"name"`
    Brand        string  `gorm:"index" json:"brand"`
    Category     string  `json:"category"`
    Barcode      string  `gorm:"type:varchar(14);uniqueIndex;not null" json:"barcode"`
    Description  string  `gorm:"type:text" json:"description"`
    ImageURL     string  `json:"image_url"`
    OverallScore float64 `json:"overall_score"` // 0..100, derived from contaminant rows

    LabResults []LabResult `json:"lab_results,omitempty"`
    Recalls    []Recall    `json:"recalls,omitempty"`
}

// LabResult is immutable once written; the importer never updates rows,
// a new disclosure produces a new result.
type LabResult struct {
    gorm.Model
    ProductID uint      `gorm:"index;not null" json:"product_id"`
    LabName   string    `gorm:"not null" json:"lab_name"`
    TestDate  time.Time `json:"test_date"`
    ReportURL string    `json:"report_url"`
    Verified  bool      `json:"verified"`

    Contaminants []Contaminant `json:"contaminants,omitempty"`
}

type Contaminant struct {
    gorm.Model
    LabResultID  uint    `gorm:"index;not null" json:"lab_result_id"`
    Name         string  `gorm:"size:20;not null" json:"name"` // Lead | Arsenic | Cadmium | Mercury
    Amount       float64 `json:"amount"`
    Unit         string  `gorm:"size:10;default:'ppb'" json:"unit"`
    SafetyLimit  float64 `json:"safety_limit"`
    ExceedsLimit bool    `json:"exceeds_limit"`
    HealthImpact string  `gorm:"type:text" json:"health_impact"`
}
