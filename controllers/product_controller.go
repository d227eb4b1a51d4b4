package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/emmanuel7l7/chicken-farm/models"
	"github.com/emmanuel7l7/chicken-farm/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProductController struct {
	Products repository.ProductRepository
}

func NewProductController(products repository.ProductRepository) *ProductController {
	return &ProductController{Products: products}
}

type productRequest struct {
	Name        string `json:"name" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Price       int64  `json:"price" binding:"required,min=1"`
	Unit        string `json:"unit"`
	Description string `json:"description"`
	Image       string `json:"image"`
	IsActive    *bool  `json:"is_active"`
}

// GetProducts lists active products for the storefront.
func (pc *ProductController) GetProducts(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	perPage, err := strconv.Atoi(c.DefaultQuery("perPage", "20"))
	if err != nil || perPage <= 0 {
		perPage = 20
	}

	// Admin sees inactive products too
	activeOnly := c.Query("all") != "true"

	products, total, err := pc.Products.List(c, activeOnly, page, perPage)
	if err != nil {
		zap.L().Error("Error finding products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"meta": gin.H{
			"page":    page,
			"perPage": perPage,
			"total":   total,
		},
	})
}

func (pc *ProductController) GetProductByID(c *gin.Context) {
	product, err := pc.Products.FindByID(c, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		zap.L().Error("Error finding product", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// CreateProduct adds a catalog entry (admin).
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidCategory(req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	product := &models.Product{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Unit:        req.Unit,
		Description: req.Description,
		Image:       req.Image,
		IsActive:    isActive,
	}

	if err := pc.Products.Create(c, product); err != nil {
		zap.L().Error("Error creating product", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct replaces a catalog entry (admin).
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	id := c.Param("id")

	existing, err := pc.Products.FindByID(c, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		zap.L().Error("Error finding product", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidCategory(req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		return
	}

	existing.Name = req.Name
	existing.Category = req.Category
	existing.Price = req.Price
	existing.Unit = req.Unit
	existing.Description = req.Description
	existing.Image = req.Image
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	if err := pc.Products.Update(c, existing); err != nil {
		zap.L().Error("Error updating product", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}
	c.JSON(http.StatusOK, existing)
}

// DeleteProduct soft-deletes a catalog entry (admin).
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	if err := pc.Products.SoftDelete(c, c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		zap.L().Error("Error deleting product", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}
