// internal/domain/order/entity.go
package order

import (
	"time"

	"gorm.io/gorm"
)

// Order statuses
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// Payment statuses
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentFailed  = "failed"
)

// Order is an immutable snapshot of a completed checkout. All amounts are
// cents, captured at submission time; later price or discount changes never
// touch an existing order.
type Order struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	OrderNumber string `gorm:"uniqueIndex;not null;size:32" json:"order_number"`
	UserID      uint   `gorm:"not null;index" json:"user_id"`
	Status      string `gorm:"size:20;not null;default:'pending'" json:"status"`

	SubtotalAmount          int64 `gorm:"not null" json:"subtotal_amount"` // after product discounts
	TaxAmount               int64 `gorm:"not null" json:"tax_amount"`
	ShippingAmount          int64 `gorm:"not null" json:"shipping_amount"`
	DiscountAmount          int64 `gorm:"not null" json:"discount_amount"` // coupon
	ProductDiscountAmount   int64 `gorm:"not null" json:"product_discount_amount"`
	AutomaticDiscountAmount int64 `gorm:"not null" json:"automatic_discount_amount"`
	TotalAmount             int64 `gorm:"not null" json:"total_amount"`

	Currency   string  `gorm:"size:3;not null;default:'USD'" json:"currency"`
	CouponCode *string `gorm:"size:50" json:"coupon_code,omitempty"`

	ShippingAddressLine1 string `gorm:"size:255" json:"shipping_address_line1"`
	ShippingAddressLine2 string `gorm:"size:255" json:"shipping_address_line2"`
	ShippingCity         string `gorm:"size:100" json:"shipping_city"`
	ShippingState        string `gorm:"size:100" json:"shipping_state"`
	ShippingPostalCode   string `gorm:"size:20" json:"shipping_postal_code"`
	ShippingCountry      string `gorm:"size:2" json:"shipping_country"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Items         []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items,omitempty"`
	Payment       *Payment        `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"payment,omitempty"`
	Delivery      *Delivery       `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"delivery,omitempty"`
	StatusHistory []StatusHistory `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"status_history,omitempty"`
}

// OrderItem is one purchased line, priced at submission time
type OrderItem struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	OrderID             uint      `gorm:"not null;index" json:"order_id"`
	ProductID           uint      `gorm:"not null" json:"product_id"`
	ProductVariantID    *uint     `json:"product_variant_id,omitempty"`
	VendorID            uint      `gorm:"not null;index" json:"vendor_id"`
	ProductName         string    `gorm:"size:255;not null" json:"product_name"`
	SKU                 string    `gorm:"size:100" json:"sku"`
	Quantity            int       `gorm:"not null" json:"quantity"`
	UnitPrice           int64     `gorm:"not null" json:"unit_price"`            // cents, before discount
	DiscountedUnitPrice int64     `gorm:"not null" json:"discounted_unit_price"` // cents
	DiscountAmount      int64     `gorm:"not null" json:"discount_amount"`       // cents, per unit
	TotalPrice          int64     `gorm:"not null" json:"total_price"`           // cents, discounted x quantity
	CreatedAt           time.Time `json:"created_at"`
}

// Payment is the payment record attached to an order
type Payment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;uniqueIndex" json:"order_id"`
	Method    string    `gorm:"size:30;not null" json:"method"`
	Status    string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	Amount    int64     `gorm:"not null" json:"amount"` // cents
	Currency  string    `gorm:"size:3;not null;default:'USD'" json:"currency"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Delivery is the delivery record attached to an order
type Delivery struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	OrderID       uint       `gorm:"not null;uniqueIndex" json:"order_id"`
	City          string     `gorm:"size:100" json:"city"`
	Country       string     `gorm:"size:2" json:"country"`
	Cost          int64      `gorm:"not null" json:"cost"` // cents
	Status        string     `gorm:"size:20;not null;default:'pending'" json:"status"`
	EstimatedDays int        `gorm:"default:3" json:"estimated_days"`
	ShippedAt     *time.Time `json:"shipped_at,omitempty"`
	DeliveredAt   *time.Time `json:"delivered_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// StatusHistory records order status transitions
type StatusHistory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;index" json:"order_id"`
	Status    string    `gorm:"size:20;not null" json:"status"`
	Note      string    `gorm:"size:255" json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides
func (Order) TableName() string         { return "orders" }
func (OrderItem) TableName() string     { return "order_items" }
func (Payment) TableName() string       { return "payments" }
func (Delivery) TableName() string      { return "deliveries" }
func (StatusHistory) TableName() string { return "order_status_histories" }
