package products

import (
	"net/http"

	"coursemarket-app/internal/domain/catalog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

func (h *Handler) ListProducts(c *gin.Context) {
	var products []catalog.Product
	err := h.db.WithContext(c.Request.Context()).
		Preload("ShippingOptions").
		Preload("Course").
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) GetProduct(c *gin.Context) {
	var product catalog.Product
	err := h.db.WithContext(c.Request.Context()).
		Preload("ShippingOptions").
		Preload("Course").
		First(&product, c.Param("id")).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

type productInput struct {
	Name            string  `json:"name" binding:"required"`
	Description     string  `json:"description"`
	Price           float64 `json:"price" binding:"required"`
	DiscountPercent float64 `json:"discount_percent"`
	CourseID        *uint   `json:"course_id"`

	ShippingOptions []struct {
		Label string  `json:"label"`
		Cost  float64 `json:"cost"`
	} `json:"shipping_options"`
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var input productInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Price < 0 || input.DiscountPercent < 0 || input.DiscountPercent > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price or discount"})
		return
	}

	product := catalog.Product{
		Name:            input.Name,
		Description:     input.Description,
		Price:           input.Price,
		DiscountPercent: input.DiscountPercent,
		CourseID:        input.CourseID,
	}
	for _, opt := range input.ShippingOptions {
		product.ShippingOptions = append(product.ShippingOptions, catalog.ShippingOption{
			Label: opt.Label,
			Cost:  opt.Cost,
		})
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct edits the catalog entry. Existing checkouts keep their
// frozen totals; price changes only affect future snapshots.
func (h *Handler) UpdateProduct(c *gin.Context) {
	var product catalog.Product
	ctx := c.Request.Context()
	if err := h.db.WithContext(ctx).First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var input struct {
		Name            *string  `json:"name"`
		Description     *string  `json:"description"`
		Price           *float64 `json:"price"`
		DiscountPercent *float64 `json:"discount_percent"`
		CourseID        *uint    `json:"course_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Price != nil {
		updates["price"] = *input.Price
	}
	if input.DiscountPercent != nil {
		updates["discount_percent"] = *input.DiscountPercent
	}
	if input.CourseID != nil {
		updates["course_id"] = *input.CourseID
	}

	if err := h.db.WithContext(ctx).Model(&product).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	res := h.db.WithContext(c.Request.Context()).Delete(&catalog.Product{}, c.Param("id"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
