// internal/domain/checkout/session.go
package checkout

import (
	"fmt"
	"time"

	"github.com/biloop252/suuqsade-backend/internal/domain/user"
)

// Stage identifies a checkout stage
type Stage string

// Checkout stages, in order. Progression is strictly linear and the only
// backward transition is from payment to address.
const (
	StageAddress      Stage = "address"
	StagePayment      Stage = "payment"
	StageConfirmation Stage = "confirmation"
)

// Session is the checkout state for one user, kept in Redis between requests.
// Transitions return a new session value instead of mutating the receiver.
type Session struct {
	ID            string        `json:"id"`
	UserID        uint          `json:"user_id"`
	Stage         Stage         `json:"stage"`
	AddressID     *uint         `json:"address_id,omitempty"`
	Address       *user.Address `json:"address,omitempty"`
	PaymentMethod string        `json:"payment_method,omitempty"`
	CouponCode    string        `json:"coupon_code,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// WithAddress returns a copy of the session carrying the chosen address
func (s Session) WithAddress(addr *user.Address) Session {
	s.AddressID = &addr.ID
	s.Address = addr
	s.UpdatedAt = time.Now().UTC()
	return s
}

// WithPaymentMethod returns a copy of the session carrying the chosen payment method
func (s Session) WithPaymentMethod(method string) Session {
	s.PaymentMethod = method
	s.UpdatedAt = time.Now().UTC()
	return s
}

// WithCoupon returns a copy of the session carrying the coupon code
func (s Session) WithCoupon(code string) Session {
	s.CouponCode = code
	s.UpdatedAt = time.Now().UTC()
	return s
}

// Advance moves the session to the next stage. Each stage gates on its
// required fields, so stages cannot be skipped.
func (s Session) Advance() (Session, error) {
	switch s.Stage {
	case StageAddress:
		if s.Address == nil || !s.Address.IsComplete() {
			return s, fmt.Errorf("a complete shipping address is required")
		}
		s.Stage = StagePayment
	case StagePayment:
		if s.PaymentMethod == "" {
			return s, fmt.Errorf("a payment method is required")
		}
		s.Stage = StageConfirmation
	case StageConfirmation:
		return s, fmt.Errorf("checkout is already complete")
	default:
		return s, fmt.Errorf("unknown checkout stage: %s", s.Stage)
	}
	s.UpdatedAt = time.Now().UTC()
	return s, nil
}

// Back moves the session from payment back to address. No other backward
// transition exists.
func (s Session) Back() (Session, error) {
	if s.Stage != StagePayment {
		return s, fmt.Errorf("cannot go back from stage %s", s.Stage)
	}
	s.Stage = StageAddress
	s.UpdatedAt = time.Now().UTC()
	return s, nil
}
