package services

import (
	"strings"

	"safebaby/models"

	"gorm.io/gorm"
)

type ProductService struct {
	db *gorm.DB
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

// Search matches name, brand or category, case-insensitively.
func (s *ProductService) Search(query string, limit int) ([]models.Product, error) {
	if limit <= 0 || limit > 100 {
		limit = 25
	}
	q := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"

	var products []models.Product
	err := s.db.
		Where("LOWER(name) LIKE ? OR LOWER(brand) LIKE ? OR LOWER(category) LIKE ?", q, q, q).
		Order("overall_score DESC").
		Limit(limit).
		Find(&products).Error
	return products, err
}

// GetByID loads the full detail page payload: lab results with contaminant
// rows, plus active recalls.
func (s *ProductService) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	err := s.db.
		Preload("LabResults.Contaminants").
		Preload("Recalls", "active = ?", true).
		First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// TopScored is the pre-filtered pool meal plans draw from.
func (s *ProductService) TopScored(limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = 50
	}
	var products []models.Product
	err := s.db.
		Where("overall_score >= ?", 70.0).
		Order("overall_score DESC").
		Limit(limit).
		Find(&products).Error
	return products, err
}
