package controllers

import (
	"net/http"

	"safebaby/config"
	"safebaby/logger"
	"safebaby/models"
	"safebaby/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type contactReq struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// POST /contact stores the message and relays it to the support inbox.
func SubmitContactForm(c *gin.Context) {
	var req contactReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg := models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Body:    req.Message,
	}
	if err := config.DB.Create(&msg).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save message"})
		return
	}

	// The stored row is the record; a failed relay shouldn't bounce the form.
	if err := utils.SendContactEmail(req.Name, req.Email, req.Subject, req.Message); err != nil {
		logger.Warn("contact relay failed", zap.Uint("message_id", msg.ID), zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"message": "thanks, we'll get back to you"})
}
