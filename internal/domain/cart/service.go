// internal/domain/cart/service.go
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/biloop252/suuqsade-backend/internal/config"
	"github.com/biloop252/suuqsade-backend/internal/domain/discount"
	"github.com/biloop252/suuqsade-backend/internal/domain/product"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	guestCartKeyPrefix = "cart:session:"
	guestCartTTL       = 24 * time.Hour
)

// Service handles shopping cart business logic. Authenticated carts live in
// Postgres, guest carts live in Redis keyed by session ID.
type Service struct {
	db     *gorm.DB
	redis  *redis.Client
	config *config.Config
}

// NewService creates a new cart service
func NewService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		redis:  redisClient,
		config: cfg,
	}
}

// AddToCartRequest represents add to cart data
type AddToCartRequest struct {
	ProductID        uint  `json:"product_id" binding:"required"`
	ProductVariantID *uint `json:"product_variant_id,omitempty"`
	Quantity         int   `json:"quantity" binding:"required,min=1"`
}

// UpdateCartItemRequest represents cart item update data
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=0"`
}

// Line is a priced view of one cart entry, rebuilt from the catalog on every
// read so stale prices never survive in the cart.
type Line struct {
	ProductID        uint                `json:"product_id"`
	ProductVariantID *uint               `json:"product_variant_id,omitempty"`
	ProductName      string              `json:"product_name"`
	SKU              string              `json:"sku"`
	VendorID         uint                `json:"vendor_id"`
	Quantity         int                 `json:"quantity"`
	UnitPrice        int64               `json:"unit_price"` // cents
	LineTotal        int64               `json:"line_total"` // cents
	Ref              discount.ProductRef `json:"-"`
}

// CartResponse represents the cart with priced lines and raw totals
type CartResponse struct {
	Lines  []Line `json:"items"`
	Totals Totals `json:"totals"`
}

// AddItem adds a product to the user's cart, merging quantities on repeat adds
func (s *Service) AddItem(userID uint, req *AddToCartRequest) error {
	if _, _, err := s.lookupProduct(req.ProductID, req.ProductVariantID); err != nil {
		return err
	}

	var existing CartItem
	query := s.db.Where("user_id = ? AND product_id = ?", userID, req.ProductID)
	if req.ProductVariantID != nil {
		query = query.Where("product_variant_id = ?", *req.ProductVariantID)
	} else {
		query = query.Where("product_variant_id IS NULL")
	}

	if err := query.First(&existing).Error; err == nil {
		existing.Quantity += req.Quantity
		if err := s.db.Save(&existing).Error; err != nil {
			return fmt.Errorf("failed to update cart item: %w", err)
		}
		return nil
	}

	item := CartItem{
		UserID:           &userID,
		ProductID:        req.ProductID,
		ProductVariantID: req.ProductVariantID,
		Quantity:         req.Quantity,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return fmt.Errorf("failed to add item to cart: %w", err)
	}
	return nil
}

// UpdateItem changes a cart line's quantity; zero removes the line
func (s *Service) UpdateItem(userID, itemID uint, req *UpdateCartItemRequest) error {
	var item CartItem
	if err := s.db.Where("id = ? AND user_id = ?", itemID, userID).First(&item).Error; err != nil {
		return fmt.Errorf("cart item not found")
	}

	if req.Quantity == 0 {
		if err := s.db.Delete(&item).Error; err != nil {
			return fmt.Errorf("failed to remove cart item: %w", err)
		}
		return nil
	}

	item.Quantity = req.Quantity
	if err := s.db.Save(&item).Error; err != nil {
		return fmt.Errorf("failed to update cart item: %w", err)
	}
	return nil
}

// RemoveItem deletes a cart line
func (s *Service) RemoveItem(userID, itemID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", itemID, userID).Delete(&CartItem{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("cart item not found")
	}
	return nil
}

// ClearCart removes all cart lines for the user
func (s *Service) ClearCart(userID uint) error {
	if err := s.db.Where("user_id = ?", userID).Delete(&CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// GetCart returns the user's cart with current catalog prices
func (s *Service) GetCart(userID uint) (*CartResponse, error) {
	var items []CartItem
	if err := s.db.Where("user_id = ?", userID).Order("created_at").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve cart: %w", err)
	}
	return s.buildResponse(items)
}

// GetLines returns the user's priced cart lines for checkout
func (s *Service) GetLines(userID uint) ([]Line, error) {
	resp, err := s.GetCart(userID)
	if err != nil {
		return nil, err
	}
	return resp.Lines, nil
}

// AddGuestItem adds a product to a guest session cart in Redis
func (s *Service) AddGuestItem(ctx context.Context, sessionID string, req *AddToCartRequest) error {
	if _, _, err := s.lookupProduct(req.ProductID, req.ProductVariantID); err != nil {
		return err
	}

	sessionCart, err := s.loadGuestCart(ctx, sessionID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	merged := false
	for i := range sessionCart.Items {
		it := &sessionCart.Items[i]
		if it.ProductID == req.ProductID && equalVariant(it.ProductVariantID, req.ProductVariantID) {
			it.Quantity += req.Quantity
			merged = true
			break
		}
	}
	if !merged {
		sessionCart.Items = append(sessionCart.Items, SessionCartItem{
			ProductID:        req.ProductID,
			ProductVariantID: req.ProductVariantID,
			Quantity:         req.Quantity,
			AddedAt:          now,
		})
	}
	sessionCart.UpdatedAt = now

	return s.saveGuestCart(ctx, sessionCart)
}

// GetGuestCart returns a guest session cart with current catalog prices
func (s *Service) GetGuestCart(ctx context.Context, sessionID string) (*CartResponse, error) {
	sessionCart, err := s.loadGuestCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	items := make([]CartItem, 0, len(sessionCart.Items))
	for _, it := range sessionCart.Items {
		items = append(items, CartItem{
			ProductID:        it.ProductID,
			ProductVariantID: it.ProductVariantID,
			Quantity:         it.Quantity,
		})
	}
	return s.buildResponse(items)
}

// MergeGuestCart folds a guest session cart into the user's cart on login
// and removes the session cart.
func (s *Service) MergeGuestCart(ctx context.Context, sessionID string, userID uint) error {
	sessionCart, err := s.loadGuestCart(ctx, sessionID)
	if err != nil {
		return err
	}
	if len(sessionCart.Items) == 0 {
		return nil
	}

	for _, it := range sessionCart.Items {
		req := &AddToCartRequest{
			ProductID:        it.ProductID,
			ProductVariantID: it.ProductVariantID,
			Quantity:         it.Quantity,
		}
		if err := s.AddItem(userID, req); err != nil {
			// Products can vanish between guest browsing and login, skip those
			continue
		}
	}

	return s.redis.Del(ctx, guestCartKeyPrefix+sessionID).Err()
}

func (s *Service) buildResponse(items []CartItem) (*CartResponse, error) {
	resp := &CartResponse{Lines: []Line{}}

	for _, item := range items {
		p, variant, err := s.lookupProduct(item.ProductID, item.ProductVariantID)
		if err != nil {
			// Skip lines whose product was deactivated since it was added
			continue
		}

		unitPrice := p.EffectivePrice(variant)
		sku := p.SKU
		if variant != nil {
			sku = variant.SKU
		}

		line := Line{
			ProductID:        p.ID,
			ProductVariantID: item.ProductVariantID,
			ProductName:      p.Name,
			SKU:              sku,
			VendorID:         p.VendorID,
			Quantity:         item.Quantity,
			UnitPrice:        unitPrice,
			LineTotal:        unitPrice * int64(item.Quantity),
			Ref:              p.Ref(variant),
		}
		resp.Lines = append(resp.Lines, line)

		resp.Totals.ItemCount++
		resp.Totals.TotalQuantity += item.Quantity
		resp.Totals.SubtotalRaw += line.LineTotal
	}

	return resp, nil
}

func (s *Service) lookupProduct(productID uint, variantID *uint) (*product.Product, *product.ProductVariant, error) {
	var p product.Product
	if err := s.db.Where("id = ? AND is_active = ?", productID, true).First(&p).Error; err != nil {
		return nil, nil, fmt.Errorf("product not found")
	}

	var variant *product.ProductVariant
	if variantID != nil {
		var v product.ProductVariant
		if err := s.db.Where("id = ? AND product_id = ? AND is_active = ?", *variantID, productID, true).First(&v).Error; err != nil {
			return nil, nil, fmt.Errorf("product variant not found")
		}
		variant = &v
	}
	return &p, variant, nil
}

func (s *Service) loadGuestCart(ctx context.Context, sessionID string) (*SessionCart, error) {
	data, err := s.redis.Get(ctx, guestCartKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		now := time.Now().UTC()
		return &SessionCart{
			SessionID: sessionID,
			Items:     []SessionCartItem{},
			CreatedAt: now,
			UpdatedAt: now,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load guest cart: %w", err)
	}

	var sessionCart SessionCart
	if err := json.Unmarshal([]byte(data), &sessionCart); err != nil {
		return nil, fmt.Errorf("failed to decode guest cart: %w", err)
	}
	return &sessionCart, nil
}

func (s *Service) saveGuestCart(ctx context.Context, sessionCart *SessionCart) error {
	data, err := json.Marshal(sessionCart)
	if err != nil {
		return fmt.Errorf("failed to encode guest cart: %w", err)
	}
	if err := s.redis.Set(ctx, guestCartKeyPrefix+sessionCart.SessionID, data, guestCartTTL).Err(); err != nil {
		return fmt.Errorf("failed to save guest cart: %w", err)
	}
	return nil
}

func equalVariant(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
