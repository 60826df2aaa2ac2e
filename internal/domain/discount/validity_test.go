// internal/domain/discount/validity_test.go
package discount

import (
	"strings"
	"testing"
	"time"
)

func TestCheckValidity(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)
	longPast := now.Add(-96 * time.Hour)

	base := func() Discount {
		end := future
		return Discount{
			ID:        1,
			Name:      "summer sale",
			Type:      TypePercentage,
			Value:     10,
			Status:    StatusActive,
			IsActive:  true,
			IsGlobal:  true,
			StartDate: past,
			EndDate:   &end,
		}
	}

	t.Run("valid discount passes", func(t *testing.T) {
		d := base()
		v := CheckValidity(&d, 5000, now)
		if !v.Valid {
			t.Fatalf("CheckValidity() = %+v, want valid", v)
		}
		if v.Reason != "" {
			t.Errorf("Reason = %q, want empty", v.Reason)
		}
	})

	t.Run("minimum order checked first", func(t *testing.T) {
		// Also expired, but the minimum order failure wins.
		d := base()
		d.MinimumOrderAmount = 10000
		d.EndDate = &longPast

		v := CheckValidity(&d, 8000, now)
		if v.Valid {
			t.Fatal("expected invalid")
		}
		if !strings.Contains(v.Reason, "$100.00") {
			t.Errorf("Reason = %q, want formatted minimum amount", v.Reason)
		}
		if !strings.Contains(v.Reason, "Minimum order amount") {
			t.Errorf("Reason = %q, want minimum order message", v.Reason)
		}
	})

	t.Run("inactive", func(t *testing.T) {
		d := base()
		d.IsActive = false

		v := CheckValidity(&d, 5000, now)
		if v.Valid || v.Reason != "This discount is not active" {
			t.Errorf("got %+v", v)
		}
	})

	t.Run("status not active", func(t *testing.T) {
		d := base()
		d.Status = StatusInactive

		v := CheckValidity(&d, 5000, now)
		if v.Valid || v.Reason != "This discount is not active" {
			t.Errorf("got %+v", v)
		}
	})

	t.Run("not yet started", func(t *testing.T) {
		d := base()
		d.StartDate = future

		v := CheckValidity(&d, 5000, now)
		if v.Valid || v.Reason != "This discount is not yet active" {
			t.Errorf("got %+v", v)
		}
	})

	t.Run("expired", func(t *testing.T) {
		d := base()
		d.EndDate = &longPast

		v := CheckValidity(&d, 5000, now)
		if v.Valid || v.Reason != "This discount has expired" {
			t.Errorf("got %+v", v)
		}
	})

	t.Run("usage limit reached", func(t *testing.T) {
		limit := 100
		d := base()
		d.UsageLimit = &limit
		d.UsedCount = 100

		v := CheckValidity(&d, 5000, now)
		if v.Valid || v.Reason != "This discount has reached its usage limit" {
			t.Errorf("got %+v", v)
		}
	})

	t.Run("usage below limit passes", func(t *testing.T) {
		limit := 100
		d := base()
		d.UsageLimit = &limit
		d.UsedCount = 99

		if v := CheckValidity(&d, 5000, now); !v.Valid {
			t.Errorf("got %+v, want valid", v)
		}
	})

	t.Run("order exactly at minimum passes", func(t *testing.T) {
		d := base()
		d.MinimumOrderAmount = 5000

		if v := CheckValidity(&d, 5000, now); !v.Valid {
			t.Errorf("got %+v, want valid", v)
		}
	})
}
