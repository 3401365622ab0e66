package models

import "gorm.io/gorm"

// UserFavorite is a bookmark. The free tier is capped at a handful of
// favorites; premium removes the cap.
type UserFavorite struct {
	gorm.Model
	UserID    uint `gorm:"index:ux_user_favorites,unique,priority:1;not null" json:"user_id"`
	ProductID uint `gorm:"index:ux_user_favorites,unique,priority:2;not null" json:"product_id"`

	Product Product `json:"product,omitempty"`
}
