package controllers

import (
	"net/http"
	"strconv"

	"safebaby/services"

	"github.com/gin-gonic/gin"
)

type ProductController struct {
	Products *services.ProductService
	Recalls  *services.RecallService
}

func NewProductController(ps *services.ProductService, rs *services.RecallService) *ProductController {
	return &ProductController{Products: ps, Recalls: rs}
}

// GET /products/search?q=oatmeal&limit=25
func (pc *ProductController) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "25"))

	products, err := pc.Products.Search(q, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, products)
}

// GET /products/:id
func (pc *ProductController) Detail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	product, err := pc.Products.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// GET /products/top?limit=20
func (pc *ProductController) Top(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	products, err := pc.Products.TopScored(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, products)
}

// GET /products/:id/recalls
func (pc *ProductController) ProductRecalls(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	recalls, err := pc.Recalls.ListForProduct(uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, recalls)
}
