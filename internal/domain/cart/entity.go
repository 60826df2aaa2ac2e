// internal/domain/cart/entity.go
package cart

import (
	"time"

	"gorm.io/gorm"
)

// CartItem represents a cart item stored in database for authenticated users
type CartItem struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	UserID           *uint          `gorm:"index" json:"user_id"`
	ProductID        uint           `gorm:"not null;index" json:"product_id"`
	ProductVariantID *uint          `gorm:"index" json:"product_variant_id"`
	Quantity         int            `gorm:"not null;default:1" json:"quantity"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (CartItem) TableName() string {
	return "cart_items"
}

// SessionCart represents a cart session for guest users (stored in Redis)
type SessionCart struct {
	SessionID string            `json:"session_id"`
	Items     []SessionCartItem `json:"items"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// SessionCartItem represents a cart item for guest users
type SessionCartItem struct {
	ProductID        uint      `json:"product_id"`
	ProductVariantID *uint     `json:"product_variant_id,omitempty"`
	Quantity         int       `json:"quantity"`
	AddedAt          time.Time `json:"added_at"`
}

// Totals represents the raw cart totals before any discounts. Tax, shipping
// and discounts are resolved at checkout, not here; the cart is a lazily
// re-fetched snapshot, never an incrementally maintained structure.
type Totals struct {
	ItemCount     int   `json:"item_count"`     // number of distinct lines
	TotalQuantity int   `json:"total_quantity"` // sum of all quantities
	SubtotalRaw   int64 `json:"subtotal_raw"`   // cents, effective unit price x quantity
}
