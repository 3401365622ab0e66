package controllers

import (
	"net/http"

	"safebaby/services"

	"github.com/gin-gonic/gin"
)

type ScanController struct {
	Scan *services.ScanService
}

func NewScanController(ss *services.ScanService) *ScanController {
	return &ScanController{Scan: ss}
}

// POST /scan/photo  { "image_base64": "data:image/jpeg;base64,..." }
func (sc *ScanController) Photo(c *gin.Context) {
	var req struct {
		ImageBase64 string `json:"image_base64" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	c.JSON(http.StatusOK, sc.Scan.ScanPhoto(req.ImageBase64))
}
