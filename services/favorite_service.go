package services

import (
	"errors"

	"safebaby/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FreeTierFavoriteLimit is the paywall gate: free accounts keep up to this
// many favorites, premium accounts are uncapped.
const FreeTierFavoriteLimit = 5

var ErrFavoriteLimit = errors.New("favorite limit reached, upgrade to premium to save more products")

type FavoriteService struct {
	db *gorm.DB
}

func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

func (s *FavoriteService) Add(userID, productID uint) (*models.UserFavorite, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, err
	}

	if user.Tier != models.TierPremium {
		var count int64
		if err := s.db.Model(&models.UserFavorite{}).
			Where("user_id = ?", userID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count >= FreeTierFavoriteLimit {
			return nil, ErrFavoriteLimit
		}
	}

	// Double-tap on the same product is a no-op, not an error.
	fav := &models.UserFavorite{UserID: userID, ProductID: productID}
	err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(fav).Error
	if err != nil {
		return nil, err
	}
	return fav, nil
}

func (s *FavoriteService) Remove(userID, productID uint) error {
	return s.db.
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.UserFavorite{}).Error
}

func (s *FavoriteService) List(userID uint) ([]models.UserFavorite, error) {
	var favs []models.UserFavorite
	err := s.db.
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favs).Error
	return favs, err
}

// UsersWhoFavorited feeds recall alert fan-out.
func (s *FavoriteService) UsersWhoFavorited(productID uint) ([]uint, error) {
	var userIDs []uint
	err := s.db.Model(&models.UserFavorite{}).
		Where("product_id = ?", productID).
		Pluck("user_id", &userIDs).Error
	return userIDs, err
}
