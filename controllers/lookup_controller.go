package controllers

import (
	"net/http"

	"safebaby/services"

	"github.com/gin-gonic/gin"
)

type LookupController struct {
	Lookup *services.LookupService
}

func NewLookupController(ls *services.LookupService) *LookupController {
	return &LookupController{Lookup: ls}
}

// GET /lookup/:barcode
//
// Always 200 with a typed envelope; downstream failures are part of the
// result, not HTTP errors. Only a malformed barcode is a client error.
func (lc *LookupController) ByBarcode(c *gin.Context) {
	result := lc.Lookup.Lookup(c.Param("barcode"))

	status := http.StatusOK
	if result.Type == services.LookupError {
		status = http.StatusBadRequest
	}
	c.JSON(status, result)
}
