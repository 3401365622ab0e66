package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"safebaby/services"

	"github.com/gin-gonic/gin"
)

type FavoriteController struct {
	Favorites *services.FavoriteService
}

func NewFavoriteController(fs *services.FavoriteService) *FavoriteController {
	return &FavoriteController{Favorites: fs}
}

// POST /user/favorites  { "product_id": 12 }
func (fc *FavoriteController) Add(c *gin.Context) {
	uid := c.GetUint("userID")

	var req struct {
		ProductID uint `json:"product_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	fav, err := fc.Favorites.Add(uid, req.ProductID)
	if err != nil {
		if errors.Is(err, services.ErrFavoriteLimit) {
			// 402 so the app can route straight to the upgrade screen.
			c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, fav)
}

// DELETE /user/favorites/:productId
func (fc *FavoriteController) Remove(c *gin.Context) {
	uid := c.GetUint("userID")

	pid, err := strconv.ParseUint(c.Param("productId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	if err := fc.Favorites.Remove(uid, uint(pid)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "removed"})
}

// GET /user/favorites
func (fc *FavoriteController) List(c *gin.Context) {
	uid := c.GetUint("userID")

	favs, err := fc.Favorites.List(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, favs)
}
