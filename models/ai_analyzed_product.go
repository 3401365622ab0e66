package models

import (
    "time"

    "gorm.io/datatypes"
)

// AIAnalyzedProduct caches one AI safety analysis per barcode so repeat
// lookups skip the external APIs. The unique index on Barcode plus an
// ON CONFLICT upsert keeps the at-most-one-row guarantee under concurrent
// first lookups for the same barcode.
type AIAnalyzedProduct struct {
    ID          uint           `gorm:"primaryKey" json:"id"`
    Barcode     string         `gorm:"type:varchar(14);uniqueIndex;not null" json:"barcode"`
    ProductName string         `json:"product_name"`
    Brand       string         `json:"brand"`
    Category    string         `json:"category"`
    Ingredients string         `gorm:"type:text" json:"ingredients"`
    Analysis    datatypes.JSON `json:"analysis"`
    SafetyScore float64        `json:"safety_score"`
    Source      string         `gorm:"size:32" json:"source"` // which external DB supplied the metadata
    CreatedAt   time.Time      `json:"created_at"`
    UpdatedAt   time.Time      `json:"updated_at"`
}
