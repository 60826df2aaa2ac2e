// internal/domain/discount/entity.go
package discount

import (
	"time"

	"gorm.io/gorm"
)

// Type represents how a discount reduces a price
type Type string

const (
	TypePercentage   Type = "percentage"
	TypeFixedAmount  Type = "fixed_amount"
	TypeFreeShipping Type = "free_shipping"
)

// Status represents the discount lifecycle status
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusExpired  Status = "expired"
	StatusUsedUp   Status = "used_up"
)

// Discount represents a discount definition. A discount with a Code is a
// coupon redeemed manually at checkout; without one it is applied
// automatically. A discount is either marketplace-wide (IsGlobal) or scoped
// to products/categories/brands of a single vendor via Scopes.
type Discount struct {
	ID                    uint       `gorm:"primaryKey" json:"id"`
	Name                  string     `gorm:"not null;size:255" json:"name"`
	Code                  *string    `gorm:"uniqueIndex;size:50" json:"code,omitempty"`
	Type                  Type       `gorm:"not null;size:20" json:"type"`
	Value                 float64    `gorm:"not null" json:"value"` // percent for percentage, cents for fixed_amount
	MinimumOrderAmount    int64      `gorm:"default:0" json:"minimum_order_amount"`
	MaximumDiscountAmount *int64     `json:"maximum_discount_amount,omitempty"` // cap, percentage type only
	UsageLimit            *int       `json:"usage_limit,omitempty"`
	UsedCount             int        `gorm:"default:0" json:"used_count"`
	UsageLimitPerUser     *int       `json:"usage_limit_per_user,omitempty"`
	Status                Status     `gorm:"not null;default:'active';size:20" json:"status"`
	IsActive              bool       `gorm:"default:true" json:"is_active"`
	IsGlobal              bool       `gorm:"default:false" json:"is_global"`
	VendorID              *uint      `gorm:"index" json:"vendor_id,omitempty"`
	StartDate             time.Time  `gorm:"not null" json:"start_date"`
	EndDate               *time.Time `json:"end_date,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Scopes []Scope `gorm:"foreignKey:DiscountID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"scopes,omitempty"`
}

// Scope associates a non-global discount with a product, category or brand
// of the discount's vendor. Exactly one of the three references is set.
type Scope struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	DiscountID uint      `gorm:"not null;index" json:"discount_id"`
	ProductID  *uint     `gorm:"index" json:"product_id,omitempty"`
	CategoryID *uint     `gorm:"index" json:"category_id,omitempty"`
	BrandID    *uint     `gorm:"index" json:"brand_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Usage records one application of a discount to an order, used to enforce
// per-user usage limits.
type Usage struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	DiscountID uint      `gorm:"not null;index" json:"discount_id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	OrderID    uint      `gorm:"not null;index" json:"order_id"`
	Amount     int64     `gorm:"not null" json:"amount"` // cents saved
	CreatedAt  time.Time `json:"created_at"`
}

// TableName overrides
func (Discount) TableName() string { return "discounts" }
func (Scope) TableName() string    { return "discount_scopes" }
func (Usage) TableName() string    { return "discount_usages" }

// IsCoupon reports whether the discount requires manual code redemption
func (d *Discount) IsCoupon() bool {
	return d.Code != nil && *d.Code != ""
}

// IsCurrentlyValid reports whether the discount can be applied at the given
// time, ignoring any order-amount requirement.
func (d *Discount) IsCurrentlyValid(now time.Time) bool {
	if !d.IsActive || d.Status != StatusActive {
		return false
	}
	if now.Before(d.StartDate) {
		return false
	}
	if d.EndDate != nil && now.After(*d.EndDate) {
		return false
	}
	if d.UsageLimit != nil && d.UsedCount >= *d.UsageLimit {
		return false
	}
	return true
}
