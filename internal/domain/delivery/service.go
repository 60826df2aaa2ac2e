// internal/domain/delivery/service.go
package delivery

import (
	"fmt"

	"github.com/biloop252/suuqsade-backend/internal/config"
	"gorm.io/gorm"
)

// Service handles delivery zones, pickup locations and shipping quotes
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new delivery service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// LineQuote is the shipping quote for one cart line
type LineQuote struct {
	VendorID  uint  `json:"vendor_id"`
	Price     int64 `json:"price"` // cents
	RateFound bool  `json:"rate_found"`
}

// Quote represents the shipping cost breakdown for a checkout
type Quote struct {
	Lines []LineQuote `json:"lines"`
	Total int64       `json:"total"` // cents
}

// Deliverable reports whether an active zone allows delivery to the destination
func (s *Service) Deliverable(country, city string) (bool, error) {
	var count int64
	err := s.db.Model(&Zone{}).
		Where("country = ? AND LOWER(city) = LOWER(?) AND is_active = ?", country, city, true).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check delivery zone: %w", err)
	}
	return count > 0, nil
}

// QuoteForLines prices shipping per cart line to the delivery city, summing
// across lines. Each line ships from its vendor's pickup locations via the
// cheapest priced lane; lines with no priced lane fall back to the flat rate,
// which is waived once the raw cart subtotal crosses the free shipping
// threshold.
func (s *Service) QuoteForLines(lineVendorIDs []uint, deliveryCity string, rawSubtotal int64) (*Quote, error) {
	quote := &Quote{Lines: []LineQuote{}}

	for _, vendorID := range lineVendorIDs {
		price, found, err := s.cheapestLane(vendorID, deliveryCity)
		if err != nil {
			return nil, err
		}

		lq := LineQuote{VendorID: vendorID, RateFound: found}
		if found {
			lq.Price = price
		} else {
			lq.Price = FallbackCost(rawSubtotal, s.config.Checkout.FallbackShippingCost, s.config.Checkout.FreeShippingThreshold)
		}

		quote.Lines = append(quote.Lines, lq)
		quote.Total += lq.Price
	}

	return quote, nil
}

// FallbackCost returns the flat shipping cost applied when no rate covers a
// lane. Orders at or above the free shipping threshold ship free.
func FallbackCost(rawSubtotal, flatCost, freeThreshold int64) int64 {
	if rawSubtotal >= freeThreshold {
		return 0
	}
	return flatCost
}

// CheapestRate picks the lowest-priced rate from candidates. Returns false
// when no candidate exists.
func CheapestRate(rates []Rate) (Rate, bool) {
	if len(rates) == 0 {
		return Rate{}, false
	}
	best := rates[0]
	for _, r := range rates[1:] {
		if r.Price < best.Price {
			best = r
		}
	}
	return best, true
}

// cheapestLane finds the cheapest active rate from any of the vendor's active
// pickup locations to the delivery city.
func (s *Service) cheapestLane(vendorID uint, deliveryCity string) (int64, bool, error) {
	var locations []PickupLocation
	if err := s.db.Where("vendor_id = ? AND is_active = ?", vendorID, true).
		Order("is_default DESC, id").
		Find(&locations).Error; err != nil {
		return 0, false, fmt.Errorf("failed to load pickup locations: %w", err)
	}
	if len(locations) == 0 {
		return 0, false, nil
	}

	cities := make([]string, 0, len(locations))
	for _, loc := range locations {
		cities = append(cities, loc.City)
	}

	var rates []Rate
	if err := s.db.Where("pickup_city IN ? AND LOWER(delivery_city) = LOWER(?) AND is_active = ?", cities, deliveryCity, true).
		Find(&rates).Error; err != nil {
		return 0, false, fmt.Errorf("failed to load delivery rates: %w", err)
	}

	best, ok := CheapestRate(rates)
	if !ok {
		return 0, false, nil
	}
	return best.Price, true, nil
}

// CreateZoneRequest represents delivery zone creation data
type CreateZoneRequest struct {
	Country string `json:"country" binding:"required,len=2"`
	City    string `json:"city" binding:"required"`
}

// CreateRateRequest represents delivery rate creation data
type CreateRateRequest struct {
	PickupCity    string `json:"pickup_city" binding:"required"`
	DeliveryCity  string `json:"delivery_city" binding:"required"`
	Price         int64  `json:"price" binding:"required,min=0"`
	EstimatedDays int    `json:"estimated_days,omitempty"`
}

// CreatePickupLocationRequest represents pickup location creation data
type CreatePickupLocationRequest struct {
	VendorID     uint   `json:"vendor_id" binding:"required"`
	Name         string `json:"name" binding:"required"`
	AddressLine1 string `json:"address_line1,omitempty"`
	City         string `json:"city" binding:"required"`
	Country      string `json:"country" binding:"required,len=2"`
	IsDefault    bool   `json:"is_default"`
}

// CreateZone adds a deliverable destination
func (s *Service) CreateZone(req *CreateZoneRequest) (*Zone, error) {
	zone := Zone{
		Country:  req.Country,
		City:     req.City,
		IsActive: true,
	}
	if err := s.db.Create(&zone).Error; err != nil {
		return nil, fmt.Errorf("failed to create delivery zone: %w", err)
	}
	return &zone, nil
}

// CreateRate adds a priced shipping lane
func (s *Service) CreateRate(req *CreateRateRequest) (*Rate, error) {
	rate := Rate{
		PickupCity:    req.PickupCity,
		DeliveryCity:  req.DeliveryCity,
		Price:         req.Price,
		EstimatedDays: req.EstimatedDays,
		IsActive:      true,
	}
	if rate.EstimatedDays <= 0 {
		rate.EstimatedDays = 3
	}
	if err := s.db.Create(&rate).Error; err != nil {
		return nil, fmt.Errorf("failed to create delivery rate: %w", err)
	}
	return &rate, nil
}

// CreatePickupLocation adds a vendor pickup location
func (s *Service) CreatePickupLocation(req *CreatePickupLocationRequest) (*PickupLocation, error) {
	loc := PickupLocation{
		VendorID:     req.VendorID,
		Name:         req.Name,
		AddressLine1: req.AddressLine1,
		City:         req.City,
		Country:      req.Country,
		IsDefault:    req.IsDefault,
		IsActive:     true,
	}

	if req.IsDefault {
		s.db.Model(&PickupLocation{}).
			Where("vendor_id = ?", req.VendorID).
			Update("is_default", false)
	}

	if err := s.db.Create(&loc).Error; err != nil {
		return nil, fmt.Errorf("failed to create pickup location: %w", err)
	}
	return &loc, nil
}

// GetZones lists active delivery zones
func (s *Service) GetZones() ([]Zone, error) {
	var zones []Zone
	if err := s.db.Where("is_active = ?", true).Order("country, city").Find(&zones).Error; err != nil {
		return nil, fmt.Errorf("failed to list delivery zones: %w", err)
	}
	return zones, nil
}

// GetRates lists active delivery rates
func (s *Service) GetRates() ([]Rate, error) {
	var rates []Rate
	if err := s.db.Where("is_active = ?", true).Order("pickup_city, delivery_city, price").Find(&rates).Error; err != nil {
		return nil, fmt.Errorf("failed to list delivery rates: %w", err)
	}
	return rates, nil
}

// GetPickupLocations lists a vendor's active pickup locations
func (s *Service) GetPickupLocations(vendorID uint) ([]PickupLocation, error) {
	var locations []PickupLocation
	if err := s.db.Where("vendor_id = ? AND is_active = ?", vendorID, true).
		Order("is_default DESC, created_at").
		Find(&locations).Error; err != nil {
		return nil, fmt.Errorf("failed to list pickup locations: %w", err)
	}
	return locations, nil
}
