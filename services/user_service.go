package services

import (
	"errors"

	"safebaby/config"
	"safebaby/models"
)

type ProfileInput struct {
	FullName string `json:"full_name"`
}

func GetUserProfile(userID uint) (map[string]interface{}, error) {
	var user models.User
	if err := config.DB.Where("id = ? AND disabled = ?", userID, false).First(&user).Error; err != nil {
		return nil, errors.New("user not found or disabled")
	}

	var favoriteCount int64
	config.DB.Model(&models.UserFavorite{}).Where("user_id = ?", user.ID).Count(&favoriteCount)

	return map[string]interface{}{
		"id":             user.ID,
		"email":          user.Email,
		"full_name":      user.FullName,
		"tier":           user.Tier,
		"favorite_count": favoriteCount,
		"favorite_limit": favoriteLimitFor(user.Tier),
	}, nil
}

func favoriteLimitFor(tier string) interface{} {
	if tier == models.TierPremium {
		return nil // unlimited
	}
	return FreeTierFavoriteLimit
}

func UpdateUserProfile(userID uint, input ProfileInput) error {
	var user models.User
	if err := config.DB.Where("id = ? AND disabled = ?", userID, false).First(&user).Error; err != nil {
		return errors.New("user not found or disabled")
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}

	return config.DB.Save(&user).Error
}

// DeactivateUser soft-disables the account; rows stay for recall history.
func DeactivateUser(userID uint) error {
	return config.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("disabled", true).Error
}
