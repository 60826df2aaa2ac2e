// internal/domain/discount/service.go
package discount

import (
	"fmt"
	"time"

	"github.com/biloop252/suuqsade-backend/internal/config"
	"gorm.io/gorm"
)

// Service handles discount business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new discount service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CouponApplication represents the result of applying a coupon code
type CouponApplication struct {
	Code           string  `json:"code"`
	DiscountID     uint    `json:"discount_id,omitempty"`
	Type           Type    `json:"type,omitempty"`
	Value          float64 `json:"value,omitempty"`
	DiscountAmount int64   `json:"discount_amount"` // cents
	MinOrderAmount int64   `json:"min_order_amount,omitempty"`
	Applied        bool    `json:"applied"`
	Message        string  `json:"message,omitempty"`
}

// CreateDiscountRequest represents admin discount creation data
type CreateDiscountRequest struct {
	Name                  string     `json:"name" binding:"required"`
	Code                  *string    `json:"code,omitempty"`
	Type                  Type       `json:"type" binding:"required,oneof=percentage fixed_amount free_shipping"`
	Value                 float64    `json:"value" binding:"required,min=0"`
	MinimumOrderAmount    int64      `json:"minimum_order_amount"`
	MaximumDiscountAmount *int64     `json:"maximum_discount_amount,omitempty"`
	UsageLimit            *int       `json:"usage_limit,omitempty"`
	UsageLimitPerUser     *int       `json:"usage_limit_per_user,omitempty"`
	IsGlobal              bool       `json:"is_global"`
	VendorID              *uint      `json:"vendor_id,omitempty"`
	StartDate             time.Time  `json:"start_date" binding:"required"`
	EndDate               *time.Time `json:"end_date,omitempty"`
	ProductIDs            []uint     `json:"product_ids,omitempty"`
	CategoryIDs           []uint     `json:"category_ids,omitempty"`
	BrandIDs              []uint     `json:"brand_ids,omitempty"`
}

// CurrentlyValid returns all discounts valid at the given time, with their
// scope associations preloaded. Ordered by creation so that equal-savings
// ties resolve deterministically downstream.
func (s *Service) CurrentlyValid(now time.Time) ([]Discount, error) {
	var discounts []Discount
	err := s.db.Preload("Scopes").
		Where("is_active = ? AND status = ?", true, StatusActive).
		Where("start_date <= ?", now).
		Where("end_date IS NULL OR end_date >= ?", now).
		Where("usage_limit IS NULL OR used_count < usage_limit").
		Order("created_at, id").
		Find(&discounts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load valid discounts: %w", err)
	}
	return discounts, nil
}

// GetByCode retrieves a coupon by its redemption code
func (s *Service) GetByCode(code string) (*Discount, error) {
	var d Discount
	result := s.db.Preload("Scopes").Where("code = ?", code).First(&d)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("coupon not found")
		}
		return nil, fmt.Errorf("failed to retrieve coupon: %w", result.Error)
	}
	return &d, nil
}

// ApplyCoupon validates a coupon code against an order amount and computes
// its discount. It never errors for business rejections; those come back as
// Applied=false with a message.
func (s *Service) ApplyCoupon(userID uint, code string, orderAmount int64) (*CouponApplication, error) {
	d, err := s.GetByCode(code)
	if err != nil {
		return &CouponApplication{Code: code, Applied: false, Message: "Invalid coupon code"}, nil
	}

	validity := CheckValidity(d, orderAmount, time.Now().UTC())
	if !validity.Valid {
		return &CouponApplication{
			Code:           code,
			MinOrderAmount: d.MinimumOrderAmount,
			Applied:        false,
			Message:        validity.Reason,
		}, nil
	}

	if d.UsageLimitPerUser != nil {
		var used int64
		if err := s.db.Model(&Usage{}).
			Where("discount_id = ? AND user_id = ?", d.ID, userID).
			Count(&used).Error; err != nil {
			return nil, fmt.Errorf("failed to count coupon usage: %w", err)
		}
		if used >= int64(*d.UsageLimitPerUser) {
			return &CouponApplication{
				Code:    code,
				Applied: false,
				Message: "You have already used this coupon",
			}, nil
		}
	}

	amount := Savings(d, orderAmount)
	return &CouponApplication{
		Code:           code,
		DiscountID:     d.ID,
		Type:           d.Type,
		Value:          d.Value,
		DiscountAmount: amount,
		MinOrderAmount: d.MinimumOrderAmount,
		Applied:        true,
		Message:        fmt.Sprintf("Coupon applied! You saved $%.2f", float64(amount)/100),
	}, nil
}

// AutomaticDiscount returns the automatic order-level discount for the given
// discounted subtotal: the globally-scoped, currently-valid, codeless
// discount whose minimum order amount is met, choosing the one with the
// greatest raw value field.
func (s *Service) AutomaticDiscount(subtotal int64) (*Discount, error) {
	now := time.Now().UTC()
	var d Discount
	result := s.db.
		Where("is_global = ? AND (code IS NULL OR code = '')", true).
		Where("is_active = ? AND status = ?", true, StatusActive).
		Where("start_date <= ?", now).
		Where("end_date IS NULL OR end_date >= ?", now).
		Where("usage_limit IS NULL OR used_count < usage_limit").
		Where("minimum_order_amount <= ?", subtotal).
		Order("value DESC").
		First(&d)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve automatic discount: %w", result.Error)
	}
	return &d, nil
}

// RecordUsage persists usage rows and bumps used_count for every discount
// applied to an order.
func (s *Service) RecordUsage(userID, orderID uint, applied map[uint]int64) error {
	for discountID, amount := range applied {
		usage := Usage{
			DiscountID: discountID,
			UserID:     userID,
			OrderID:    orderID,
			Amount:     amount,
		}
		if err := s.db.Create(&usage).Error; err != nil {
			return fmt.Errorf("failed to record discount usage: %w", err)
		}

		if err := s.db.Model(&Discount{}).
			Where("id = ?", discountID).
			UpdateColumn("used_count", gorm.Expr("used_count + ?", 1)).Error; err != nil {
			return fmt.Errorf("failed to increment used count: %w", err)
		}
	}
	return nil
}

// CreateDiscount creates a discount (or coupon) with its scope associations
func (s *Service) CreateDiscount(req *CreateDiscountRequest) (*Discount, error) {
	if !req.IsGlobal && req.VendorID == nil {
		return nil, fmt.Errorf("non-global discounts require a vendor")
	}

	d := Discount{
		Name:                  req.Name,
		Code:                  req.Code,
		Type:                  req.Type,
		Value:                 req.Value,
		MinimumOrderAmount:    req.MinimumOrderAmount,
		MaximumDiscountAmount: req.MaximumDiscountAmount,
		UsageLimit:            req.UsageLimit,
		UsageLimitPerUser:     req.UsageLimitPerUser,
		Status:                StatusActive,
		IsActive:              true,
		IsGlobal:              req.IsGlobal,
		VendorID:              req.VendorID,
		StartDate:             req.StartDate,
		EndDate:               req.EndDate,
	}

	for _, id := range req.ProductIDs {
		productID := id
		d.Scopes = append(d.Scopes, Scope{ProductID: &productID})
	}
	for _, id := range req.CategoryIDs {
		categoryID := id
		d.Scopes = append(d.Scopes, Scope{CategoryID: &categoryID})
	}
	for _, id := range req.BrandIDs {
		brandID := id
		d.Scopes = append(d.Scopes, Scope{BrandID: &brandID})
	}

	if err := s.db.Create(&d).Error; err != nil {
		return nil, fmt.Errorf("failed to create discount: %w", err)
	}
	return &d, nil
}

// GetDiscounts lists discounts, optionally filtered by vendor
func (s *Service) GetDiscounts(vendorID *uint) ([]Discount, error) {
	var discounts []Discount
	query := s.db.Preload("Scopes").Order("created_at DESC")
	if vendorID != nil {
		query = query.Where("vendor_id = ?", *vendorID)
	}
	if err := query.Find(&discounts).Error; err != nil {
		return nil, fmt.Errorf("failed to list discounts: %w", err)
	}
	return discounts, nil
}

// GetDiscount retrieves a single discount by ID
func (s *Service) GetDiscount(id uint) (*Discount, error) {
	var d Discount
	result := s.db.Preload("Scopes").First(&d, id)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("discount not found")
		}
		return nil, fmt.Errorf("failed to retrieve discount: %w", result.Error)
	}
	return &d, nil
}

// DeactivateDiscount marks a discount inactive without deleting it
func (s *Service) DeactivateDiscount(id uint) error {
	result := s.db.Model(&Discount{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_active": false,
		"status":    StatusInactive,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to deactivate discount: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("discount not found")
	}
	return nil
}
