// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/biloop252/suuqsade-backend/internal/config"
	"github.com/biloop252/suuqsade-backend/internal/domain/cart"
	"github.com/biloop252/suuqsade-backend/internal/domain/delivery"
	"github.com/biloop252/suuqsade-backend/internal/domain/discount"
	"github.com/biloop252/suuqsade-backend/internal/domain/user"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "checkout:session:"
	sessionTTL       = 1 * time.Hour
)

// PaymentMethods supported at checkout
var PaymentMethods = map[string]bool{
	"credit_card":      true,
	"bank_transfer":    true,
	"cash_on_delivery": true,
}

// Service orchestrates the checkout flow: session state in Redis, pricing
// over the cart, coupon application and shipping quotes.
type Service struct {
	redis       *redis.Client
	config      *config.Config
	cartSvc     *cart.Service
	discountSvc *discount.Service
	deliverySvc *delivery.Service
	userSvc     *user.Service
}

// NewService creates a new checkout service
func NewService(redisClient *redis.Client, cfg *config.Config, cartSvc *cart.Service, discountSvc *discount.Service, deliverySvc *delivery.Service, userSvc *user.Service) *Service {
	return &Service{
		redis:       redisClient,
		config:      cfg,
		cartSvc:     cartSvc,
		discountSvc: discountSvc,
		deliverySvc: deliverySvc,
		userSvc:     userSvc,
	}
}

// StartSession begins a checkout for the user, replacing any existing session.
// The cart must not be empty.
func (s *Service) StartSession(ctx context.Context, userID uint) (*Session, error) {
	lines, err := s.cartSvc.GetLines(userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}

	now := time.Now().UTC()
	session := Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		Stage:     StageAddress,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.saveSession(ctx, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// GetSession loads the user's active checkout session
func (s *Service) GetSession(ctx context.Context, userID uint) (*Session, error) {
	data, err := s.redis.Get(ctx, s.sessionKey(userID)).Result()
	if err == redis.Nil {
		return nil, fmt.Errorf("no active checkout session")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load checkout session: %w", err)
	}

	var session Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to decode checkout session: %w", err)
	}
	return &session, nil
}

// SelectAddress attaches one of the user's saved addresses to the session.
// The address must be complete and inside an active delivery zone.
func (s *Service) SelectAddress(ctx context.Context, userID, addressID uint) (*Session, error) {
	session, err := s.GetSession(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session.Stage != StageAddress {
		return nil, fmt.Errorf("address can only be changed in the address stage")
	}

	addr, err := s.userSvc.GetAddress(userID, addressID)
	if err != nil {
		return nil, err
	}
	if !addr.IsComplete() {
		return nil, fmt.Errorf("address is missing required fields")
	}

	deliverable, err := s.deliverySvc.Deliverable(addr.Country, addr.City)
	if err != nil {
		return nil, err
	}
	if !deliverable {
		return nil, fmt.Errorf("delivery is not available to %s, %s", addr.City, addr.Country)
	}

	updated := session.WithAddress(addr)
	if err := s.saveSession(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// SelectPaymentMethod records the chosen payment method on the session
func (s *Service) SelectPaymentMethod(ctx context.Context, userID uint, method string) (*Session, error) {
	session, err := s.GetSession(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session.Stage != StagePayment {
		return nil, fmt.Errorf("payment method can only be chosen in the payment stage")
	}
	if !PaymentMethods[method] {
		return nil, fmt.Errorf("unsupported payment method: %s", method)
	}

	updated := session.WithPaymentMethod(method)
	if err := s.saveSession(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// ApplyCoupon validates a coupon against the discounted subtotal and, when it
// applies, stores the code on the session. Rejections come back in the
// application result, not as errors.
func (s *Service) ApplyCoupon(ctx context.Context, userID uint, code string) (*discount.CouponApplication, error) {
	session, err := s.GetSession(ctx, userID)
	if err != nil {
		return nil, err
	}

	pricing, _, err := s.price(userID, session, "")
	if err != nil {
		return nil, err
	}

	application, err := s.discountSvc.ApplyCoupon(userID, code, pricing.Subtotal)
	if err != nil {
		return nil, err
	}
	if !application.Applied {
		return application, nil
	}

	updated := session.WithCoupon(code)
	if err := s.saveSession(ctx, &updated); err != nil {
		return nil, err
	}
	return application, nil
}

// RemoveCoupon clears the coupon from the session
func (s *Service) RemoveCoupon(ctx context.Context, userID uint) (*Session, error) {
	session, err := s.GetSession(ctx, userID)
	if err != nil {
		return nil, err
	}
	updated := session.WithCoupon("")
	if err := s.saveSession(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Advance moves the session to the next stage
func (s *Service) Advance(ctx context.Context, userID uint) (*Session, error) {
	session, err := s.GetSession(ctx, userID)
	if err != nil {
		return nil, err
	}
	updated, err := session.Advance()
	if err != nil {
		return nil, err
	}
	if err := s.saveSession(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Back moves the session from payment back to address
func (s *Service) Back(ctx context.Context, userID uint) (*Session, error) {
	session, err := s.GetSession(ctx, userID)
	if err != nil {
		return nil, err
	}
	updated, err := session.Back()
	if err != nil {
		return nil, err
	}
	if err := s.saveSession(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Quote prices the user's current checkout: cart lines, product discounts,
// automatic discount, coupon, tax and shipping.
func (s *Service) Quote(ctx context.Context, userID uint) (*Pricing, *discount.CouponApplication, error) {
	session, err := s.GetSession(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return s.price(userID, session, session.CouponCode)
}

// QuoteForSession prices a checkout against an explicit session value
func (s *Service) QuoteForSession(session *Session) (*Pricing, *discount.CouponApplication, error) {
	return s.price(session.UserID, session, session.CouponCode)
}

// Complete removes the session once the order has been placed
func (s *Service) Complete(ctx context.Context, userID uint) error {
	return s.redis.Del(ctx, s.sessionKey(userID)).Err()
}

// price runs the pricing fold twice when a coupon is present: once to learn
// the discounted subtotal the coupon validates against, then again with the
// coupon amount folded in.
func (s *Service) price(userID uint, session *Session, couponCode string) (*Pricing, *discount.CouponApplication, error) {
	lines, err := s.cartSvc.GetLines(userID)
	if err != nil {
		return nil, nil, err
	}
	if len(lines) == 0 {
		return nil, nil, fmt.Errorf("cart is empty")
	}

	now := time.Now().UTC()
	catalog, err := s.discountSvc.CurrentlyValid(now)
	if err != nil {
		return nil, nil, err
	}

	base := ComputePricing(lines, catalog, 0, 0, s.config.Checkout.TaxRate, now)

	var application *discount.CouponApplication
	couponDiscount := int64(0)
	if couponCode != "" {
		application, err = s.discountSvc.ApplyCoupon(userID, couponCode, base.Subtotal)
		if err != nil {
			return nil, nil, err
		}
		if application.Applied {
			couponDiscount = application.DiscountAmount
		}
	}

	shippingTotal := int64(0)
	if session.Address != nil {
		vendorIDs := make([]uint, len(lines))
		for i, line := range lines {
			vendorIDs[i] = line.VendorID
		}
		quote, err := s.deliverySvc.QuoteForLines(vendorIDs, session.Address.City, base.SubtotalRaw)
		if err != nil {
			return nil, nil, err
		}
		shippingTotal = quote.Total
	}

	pricing := ComputePricing(lines, catalog, couponDiscount, shippingTotal, s.config.Checkout.TaxRate, now)
	return pricing, application, nil
}

func (s *Service) sessionKey(userID uint) string {
	return fmt.Sprintf("%s%d", sessionKeyPrefix, userID)
}

func (s *Service) saveSession(ctx context.Context, session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode checkout session: %w", err)
	}
	if err := s.redis.Set(ctx, s.sessionKey(session.UserID), data, sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to save checkout session: %w", err)
	}
	return nil
}
