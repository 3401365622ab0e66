package controllers

import (
	"net/http"

	"safebaby/services"

	"github.com/gin-gonic/gin"
)

type SubscriptionController struct {
	Subs *services.SubscriptionService
}

func NewSubscriptionController(ss *services.SubscriptionService) *SubscriptionController {
	return &SubscriptionController{Subs: ss}
}

// POST /user/subscription/refresh re-syncs with the billing provider and
// re-derive the tier. The app calls this after checkout and on launch.
func (sc *SubscriptionController) Refresh(c *gin.Context) {
	uid := c.GetUint("userID")

	sub, err := sc.Subs.Refresh(uid)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sub)
}
