package controllers

import (
	"net/http"
	"strconv"
	"time"

	"safebaby/services"

	"github.com/gin-gonic/gin"
)

type RecallController struct {
	Recalls *services.RecallService
}

func NewRecallController(rs *services.RecallService) *RecallController {
	return &RecallController{Recalls: rs}
}

// GET /recalls/active
func (rc *RecallController) ListActive(c *gin.Context) {
	recalls, err := rc.Recalls.ListActive()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, recalls)
}

type publishRecallReq struct {
	ProductID  uint   `json:"product_id" binding:"required"`
	Reason     string `json:"reason" binding:"required"`
	RiskClass  string `json:"risk_class" binding:"required,oneof=I II III"`
	RecallDate string `json:"recall_date"` // YYYY-MM-DD, defaults to today
	FDAURL     string `json:"fda_url"`
}

// POST /admin/recalls is ops-only: records an FDA recall and alerts everyone
// who favorited the product.
func (rc *RecallController) Publish(c *gin.Context) {
	var req publishRecallReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date := time.Now()
	if req.RecallDate != "" {
		parsed, err := time.Parse("2006-01-02", req.RecallDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "recall_date must be YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	recall, err := rc.Recalls.Publish(req.ProductID, req.Reason, req.RiskClass, date, req.FDAURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, recall)
}

// POST /admin/recalls/:id/close
func (rc *RecallController) Close(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recall id"})
		return
	}

	if err := rc.Recalls.Close(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "recall closed"})
}
