// internal/domain/delivery/entity.go
package delivery

import (
	"time"

	"gorm.io/gorm"
)

// Zone represents a deliverable destination. Destinations are allow-listed:
// checkout refuses addresses with no matching active zone.
type Zone struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Country   string         `gorm:"size:2;not null;index:idx_zone_dest" json:"country"` // ISO 2-letter code
	City      string         `gorm:"size:100;not null;index:idx_zone_dest" json:"city"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// PickupLocation represents a vendor warehouse that orders ship from
type PickupLocation struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	VendorID     uint           `gorm:"not null;index" json:"vendor_id"`
	Name         string         `gorm:"not null;size:255" json:"name"`
	AddressLine1 string         `gorm:"size:255" json:"address_line1"`
	City         string         `gorm:"size:100;not null;index" json:"city"`
	Country      string         `gorm:"size:2;not null" json:"country"`
	IsDefault    bool           `gorm:"default:false" json:"is_default"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// Rate represents a shipping price for a pickup-city to delivery-city lane
type Rate struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	PickupCity    string         `gorm:"size:100;not null;index:idx_rate_lane" json:"pickup_city"`
	DeliveryCity  string         `gorm:"size:100;not null;index:idx_rate_lane" json:"delivery_city"`
	Price         int64          `gorm:"not null" json:"price"` // cents
	EstimatedDays int            `gorm:"default:3" json:"estimated_days"`
	IsActive      bool           `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides
func (Zone) TableName() string           { return "delivery_zones" }
func (PickupLocation) TableName() string { return "pickup_locations" }
func (Rate) TableName() string           { return "delivery_rates" }
