package services

import (
	"fmt"
	"time"

	"safebaby/logger"
	"safebaby/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type RecallService struct {
	db   *gorm.DB
	favs *FavoriteService
}

func NewRecallService(db *gorm.DB, favs *FavoriteService) *RecallService {
	return &RecallService{db: db, favs: favs}
}

// Publish records a recall and alerts every user who favorited the product.
// Alert delivery is best-effort; the recall row is the source of truth.
func (s *RecallService) Publish(productID uint, reason, riskClass string, recallDate time.Time, fdaURL string) (*models.Recall, error) {
	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		return nil, err
	}

	recall := &models.Recall{
		ProductID:  productID,
		Reason:     reason,
		RiskClass:  riskClass,
		RecallDate: recallDate,
		FDAURL:     fdaURL,
		Active:     true,
	}
	if err := s.db.Create(recall).Error; err != nil {
		return nil, err
	}

	userIDs, err := s.favs.UsersWhoFavorited(productID)
	if err != nil {
		logger.Error("recall fan-out query failed", zap.Uint("product_id", productID), zap.Error(err))
		return recall, nil
	}
	msg := fmt.Sprintf("%s (%s) has been recalled: %s", product.Name, product.Brand, reason)
	for _, uid := range userIDs {
		EmitAlert(uid, "recall", msg)
	}

	return recall, nil
}

func (s *RecallService) Close(recallID uint) error {
	return s.db.Model(&models.Recall{}).
		Where("id = ?", recallID).
		Update("active", false).Error
}

func (s *RecallService) ListActive() ([]models.Recall, error) {
	var recalls []models.Recall
	err := s.db.
		Where("active = ?", true).
		Order("recall_date DESC").
		Find(&recalls).Error
	return recalls, err
}

func (s *RecallService) ListForProduct(productID uint) ([]models.Recall, error) {
	var recalls []models.Recall
	err := s.db.
		Where("product_id = ?", productID).
		Order("recall_date DESC").
		Find(&recalls).Error
	return recalls, err
}
