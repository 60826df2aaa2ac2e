// internal/interfaces/http/handlers/vendor.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/biloop252/suuqsade-backend/internal/domain/vendor"
	"github.com/gin-gonic/gin"
)

// VendorHandler handles vendor endpoints
type VendorHandler struct {
	vendorService *vendor.Service
}

// NewVendorHandler creates a new vendor handler
func NewVendorHandler(vendorService *vendor.Service) *VendorHandler {
	return &VendorHandler{
		vendorService: vendorService,
	}
}

// GetVendors handles GET /vendors
func (h *VendorHandler) GetVendors(c *gin.Context) {
	vendors, err := h.vendorService.GetVendors(true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve vendors"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": vendors})
}

// GetVendor handles GET /vendors/:id
func (h *VendorHandler) GetVendor(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vendor ID"})
		return
	}

	v, err := h.vendorService.GetVendor(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": v})
}

// CreateVendor handles POST /admin/vendors
func (h *VendorHandler) CreateVendor(c *gin.Context) {
	var req vendor.CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	v, err := h.vendorService.CreateVendor(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Vendor created successfully",
		"data":    v,
	})
}

// SetVendorStatus handles PUT /admin/vendors/:id/status
func (h *VendorHandler) SetVendorStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vendor ID"})
		return
	}

	var req struct {
		IsActive bool `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	if err := h.vendorService.SetVendorStatus(uint(id), req.IsActive); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vendor status updated"})
}
