// internal/interfaces/http/handlers/discount.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/biloop252/suuqsade-backend/internal/domain/discount"
	"github.com/gin-gonic/gin"
)

// DiscountHandler handles discount admin endpoints
type DiscountHandler struct {
	discountService *discount.Service
}

// NewDiscountHandler creates a new discount handler
func NewDiscountHandler(discountService *discount.Service) *DiscountHandler {
	return &DiscountHandler{
		discountService: discountService,
	}
}

// CreateDiscount handles POST /admin/discounts
func (h *DiscountHandler) CreateDiscount(c *gin.Context) {
	var req discount.CreateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	d, err := h.discountService.CreateDiscount(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Discount created successfully",
		"data":    d,
	})
}

// GetDiscounts handles GET /admin/discounts
func (h *DiscountHandler) GetDiscounts(c *gin.Context) {
	var vendorID *uint
	if vendorParam := c.Query("vendor_id"); vendorParam != "" {
		if id, err := strconv.ParseUint(vendorParam, 10, 32); err == nil {
			v := uint(id)
			vendorID = &v
		}
	}

	discounts, err := h.discountService.GetDiscounts(vendorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve discounts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": discounts})
}

// GetDiscount handles GET /admin/discounts/:id
func (h *DiscountHandler) GetDiscount(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid discount ID"})
		return
	}

	d, err := h.discountService.GetDiscount(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": d})
}

// DeactivateDiscount handles DELETE /admin/discounts/:id
func (h *DiscountHandler) DeactivateDiscount(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid discount ID"})
		return
	}

	if err := h.discountService.DeactivateDiscount(uint(id)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Discount deactivated"})
}

// GetAutomaticDiscount handles GET /discounts/automatic. It reports the
// order-level discount a given subtotal would currently earn.
func (h *DiscountHandler) GetAutomaticDiscount(c *gin.Context) {
	subtotal, err := strconv.ParseInt(c.Query("subtotal"), 10, 64)
	if err != nil || subtotal < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subtotal"})
		return
	}

	d, err := h.discountService.AutomaticDiscount(subtotal)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve automatic discount"})
		return
	}
	if d == nil {
		c.JSON(http.StatusOK, gin.H{"data": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"discount": d,
			"savings":  discount.Savings(d, subtotal),
		},
	})
}
