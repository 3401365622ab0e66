package models

import (
    "time"

    "gorm.io/gorm"
)

type Recall struct {
    gorm.Model
    ProductID  uint      `gorm:"index;not null" json:"product_id"`
    Reason     string    `gorm:"type:text" json:"reason"`
    RiskClass  string    `gorm:"size:4" json:"risk_class"` // I | II | III
    RecallDate time.Time `json:"recall_date"`
    FDAURL     string    `json:"fda_url"`
    Active     bool      `gorm:"default:true;index" json:"active"`
}
