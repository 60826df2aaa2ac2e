// internal/domain/discount/validity.go
package discount

import (
	"fmt"
	"time"
)

// Validity is the result of checking whether a discount or coupon is usable
// for a given order amount right now.
type Validity struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// CheckValidity evaluates whether the discount can be applied to an order of
// the given amount (cents) at the given time. Checks run in a fixed order and
// short-circuit on the first failure; each failure carries a distinct
// human-readable reason. The same predicate is used for automatic discount
// application and manual coupon redemption.
func CheckValidity(d *Discount, orderAmount int64, now time.Time) Validity {
	if orderAmount < d.MinimumOrderAmount {
		return Validity{
			Valid:  false,
			Reason: fmt.Sprintf("Minimum order amount of $%.2f required", float64(d.MinimumOrderAmount)/100),
		}
	}

	if !d.IsActive || d.Status != StatusActive {
		return Validity{Valid: false, Reason: "This discount is not active"}
	}

	if now.Before(d.StartDate) {
		return Validity{Valid: false, Reason: "This discount is not yet active"}
	}

	if d.EndDate != nil && now.After(*d.EndDate) {
		return Validity{Valid: false, Reason: "This discount has expired"}
	}

	if d.UsageLimit != nil && d.UsedCount >= *d.UsageLimit {
		return Validity{Valid: false, Reason: "This discount has reached its usage limit"}
	}

	return Validity{Valid: true}
}
