// internal/interfaces/http/handlers/delivery.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/biloop252/suuqsade-backend/internal/domain/delivery"
	"github.com/gin-gonic/gin"
)

// DeliveryHandler handles delivery configuration endpoints
type DeliveryHandler struct {
	deliveryService *delivery.Service
}

// NewDeliveryHandler creates a new delivery handler
func NewDeliveryHandler(deliveryService *delivery.Service) *DeliveryHandler {
	return &DeliveryHandler{
		deliveryService: deliveryService,
	}
}

// CheckDeliverability handles GET /delivery/check
func (h *DeliveryHandler) CheckDeliverability(c *gin.Context) {
	country := c.Query("country")
	city := c.Query("city")
	if country == "" || city == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "country and city are required"})
		return
	}

	deliverable, err := h.deliveryService.Deliverable(country, city)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check delivery availability"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"country":     country,
			"city":        city,
			"deliverable": deliverable,
		},
	})
}

// GetZones handles GET /delivery/zones
func (h *DeliveryHandler) GetZones(c *gin.Context) {
	zones, err := h.deliveryService.GetZones()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve delivery zones"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": zones})
}

// CreateZone handles POST /admin/delivery/zones
func (h *DeliveryHandler) CreateZone(c *gin.Context) {
	var req delivery.CreateZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	zone, err := h.deliveryService.CreateZone(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Delivery zone created",
		"data":    zone,
	})
}

// CreateRate handles POST /admin/delivery/rates
func (h *DeliveryHandler) CreateRate(c *gin.Context) {
	var req delivery.CreateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	rate, err := h.deliveryService.CreateRate(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Delivery rate created",
		"data":    rate,
	})
}

// GetRates handles GET /admin/delivery/rates
func (h *DeliveryHandler) GetRates(c *gin.Context) {
	rates, err := h.deliveryService.GetRates()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve delivery rates"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rates})
}

// CreatePickupLocation handles POST /admin/delivery/pickup-locations
func (h *DeliveryHandler) CreatePickupLocation(c *gin.Context) {
	var req delivery.CreatePickupLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	loc, err := h.deliveryService.CreatePickupLocation(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Pickup location created",
		"data":    loc,
	})
}

// GetPickupLocations handles GET /admin/delivery/pickup-locations
func (h *DeliveryHandler) GetPickupLocations(c *gin.Context) {
	vendorID, err := strconv.ParseUint(c.Query("vendor_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "vendor_id is required"})
		return
	}

	locations, err := h.deliveryService.GetPickupLocations(uint(vendorID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve pickup locations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": locations})
}
