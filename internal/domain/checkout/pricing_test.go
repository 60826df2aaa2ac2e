// internal/domain/checkout/pricing_test.go
package checkout

import (
	"testing"
	"time"

	"github.com/biloop252/suuqsade-backend/internal/domain/cart"
	"github.com/biloop252/suuqsade-backend/internal/domain/discount"
)

var testNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func validWindow() (time.Time, *time.Time) {
	start := testNow.Add(-24 * time.Hour)
	end := testNow.Add(24 * time.Hour)
	return start, &end
}

func testLine(productID uint, vendorID uint, price int64, qty int) cart.Line {
	return cart.Line{
		ProductID: productID,
		VendorID:  vendorID,
		Quantity:  qty,
		UnitPrice: price,
		LineTotal: price * int64(qty),
		Ref:       discount.ProductRef{ID: productID, Price: price, VendorID: &vendorID},
	}
}

func vendorDiscount(id uint, vendorID uint, productID uint, dtype discount.Type, value float64) discount.Discount {
	start, end := validWindow()
	return discount.Discount{
		ID:        id,
		Name:      "vendor promo",
		Type:      dtype,
		Value:     value,
		Status:    discount.StatusActive,
		IsActive:  true,
		VendorID:  &vendorID,
		StartDate: start,
		EndDate:   end,
		Scopes:    []discount.Scope{{ProductID: &productID}},
	}
}

func globalDiscount(id uint, dtype discount.Type, value float64, minOrder int64) discount.Discount {
	start, end := validWindow()
	return discount.Discount{
		ID:                 id,
		Name:               "storewide promo",
		Type:               dtype,
		Value:              value,
		MinimumOrderAmount: minOrder,
		Status:             discount.StatusActive,
		IsActive:           true,
		IsGlobal:           true,
		StartDate:          start,
		EndDate:            end,
	}
}

func TestComputePricingTaxNetOfCoupon(t *testing.T) {
	// One $100 item with an 8% vendor discount and a $10 coupon: tax applies
	// to the discounted subtotal minus the coupon.
	lines := []cart.Line{testLine(1, 1, 10000, 1)}
	catalog := []discount.Discount{vendorDiscount(1, 1, 1, discount.TypePercentage, 8)}

	p := ComputePricing(lines, catalog, 1000, 999, 0.08, testNow)

	if p.SubtotalRaw != 10000 {
		t.Errorf("SubtotalRaw = %d, want 10000", p.SubtotalRaw)
	}
	if p.Subtotal != 9200 {
		t.Errorf("Subtotal = %d, want 9200", p.Subtotal)
	}
	if p.ProductDiscount != 800 {
		t.Errorf("ProductDiscount = %d, want 800", p.ProductDiscount)
	}
	if p.AutomaticDiscount != 0 {
		t.Errorf("AutomaticDiscount = %d, want 0", p.AutomaticDiscount)
	}
	if p.TaxAmount != 656 {
		t.Errorf("TaxAmount = %d, want 656", p.TaxAmount)
	}
	// 9200 + 656 + 999 - 1000
	if p.Total != 9855 {
		t.Errorf("Total = %d, want 9855", p.Total)
	}
}

func TestComputePricingAutomaticDiscount(t *testing.T) {
	// A single global codeless discount applies both per line and at the order
	// level, and comes off the total after tax.
	lines := []cart.Line{testLine(1, 1, 10000, 1)}
	catalog := []discount.Discount{globalDiscount(1, discount.TypePercentage, 10, 0)}

	p := ComputePricing(lines, catalog, 0, 0, 0.08, testNow)

	if p.Subtotal != 9000 {
		t.Errorf("Subtotal = %d, want 9000", p.Subtotal)
	}
	if p.AutomaticDiscountID == nil || *p.AutomaticDiscountID != 1 {
		t.Fatalf("AutomaticDiscountID = %v, want 1", p.AutomaticDiscountID)
	}
	if p.AutomaticDiscount != 900 {
		t.Errorf("AutomaticDiscount = %d, want 900", p.AutomaticDiscount)
	}
	if p.TaxAmount != 720 {
		t.Errorf("TaxAmount = %d, want 720", p.TaxAmount)
	}
	// 9000 + 720 + 0 - 0 - 900
	if p.Total != 8820 {
		t.Errorf("Total = %d, want 8820", p.Total)
	}
}

func TestComputePricingTotalNotFloored(t *testing.T) {
	lines := []cart.Line{testLine(1, 1, 1000, 1)}
	catalog := []discount.Discount{globalDiscount(1, discount.TypePercentage, 50, 0)}

	p := ComputePricing(lines, catalog, 600, 0, 0.08, testNow)

	// Subtotal 500, automatic 250, tax int64((500-600)*0.08) = -8.
	if p.TaxAmount != -8 {
		t.Errorf("TaxAmount = %d, want -8", p.TaxAmount)
	}
	if p.Total != -358 {
		t.Errorf("Total = %d, want -358", p.Total)
	}
}

func TestComputePricingMultipleLines(t *testing.T) {
	lines := []cart.Line{
		testLine(1, 1, 2500, 2), // 5000 raw
		testLine(2, 2, 1000, 3), // 3000 raw, no discount
	}
	catalog := []discount.Discount{vendorDiscount(1, 1, 1, discount.TypeFixedAmount, 500)}

	p := ComputePricing(lines, catalog, 0, 0, 0, testNow)

	if p.SubtotalRaw != 8000 {
		t.Errorf("SubtotalRaw = %d, want 8000", p.SubtotalRaw)
	}
	// Line 1 unit drops to 2000, times 2; line 2 untouched.
	if p.Subtotal != 7000 {
		t.Errorf("Subtotal = %d, want 7000", p.Subtotal)
	}
	if p.Lines[0].DiscountedUnitPrice != 2000 || p.Lines[0].LineTotal != 4000 {
		t.Errorf("line 0 = %+v, want unit 2000 total 4000", p.Lines[0])
	}
	if p.Lines[1].BestDiscountID != nil {
		t.Errorf("line 1 best = %v, want none", p.Lines[1].BestDiscountID)
	}
	if p.Total != 7000 {
		t.Errorf("Total = %d, want 7000", p.Total)
	}
}

func TestSelectAutomatic(t *testing.T) {
	code := "SAVE10"

	tests := []struct {
		name       string
		candidates []discount.Discount
		subtotal   int64
		wantID     uint // 0 means nil
	}{
		{
			name: "greatest raw value wins over computed saving",
			candidates: []discount.Discount{
				globalDiscount(1, discount.TypePercentage, 90, 0),  // would save 900 on 1000
				globalDiscount(2, discount.TypeFixedAmount, 500, 0), // saves 500
			},
			subtotal: 1000,
			wantID:   2, // 500 > 90 as a raw value
		},
		{
			name: "coupons excluded",
			candidates: []discount.Discount{
				func() discount.Discount {
					d := globalDiscount(1, discount.TypePercentage, 20, 0)
					d.Code = &code
					return d
				}(),
			},
			subtotal: 5000,
			wantID:   0,
		},
		{
			name: "non-global excluded",
			candidates: []discount.Discount{
				func() discount.Discount {
					d := globalDiscount(1, discount.TypePercentage, 20, 0)
					d.IsGlobal = false
					return d
				}(),
			},
			subtotal: 5000,
			wantID:   0,
		},
		{
			name: "minimum order not met",
			candidates: []discount.Discount{
				globalDiscount(1, discount.TypePercentage, 20, 6000),
			},
			subtotal: 5000,
			wantID:   0,
		},
		{
			name: "expired excluded",
			candidates: []discount.Discount{
				func() discount.Discount {
					d := globalDiscount(1, discount.TypePercentage, 20, 0)
					past := testNow.Add(-time.Hour)
					d.EndDate = &past
					return d
				}(),
				globalDiscount(2, discount.TypePercentage, 5, 0),
			},
			subtotal: 5000,
			wantID:   2,
		},
		{
			name: "equal values keep first",
			candidates: []discount.Discount{
				globalDiscount(1, discount.TypePercentage, 15, 0),
				globalDiscount(2, discount.TypeFixedAmount, 15, 0),
			},
			subtotal: 5000,
			wantID:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectAutomatic(tt.candidates, tt.subtotal, testNow)
			if tt.wantID == 0 {
				if got != nil {
					t.Errorf("SelectAutomatic() = %v, want nil", got.ID)
				}
				return
			}
			if got == nil || got.ID != tt.wantID {
				t.Errorf("SelectAutomatic() = %v, want %d", got, tt.wantID)
			}
		})
	}
}

func TestAppliedDiscounts(t *testing.T) {
	lineDiscountID := uint(1)
	autoID := uint(2)
	couponID := uint(3)

	p := &Pricing{
		Lines: []PricedLine{
			{Line: cart.Line{Quantity: 2}, DiscountAmount: 300, BestDiscountID: &lineDiscountID},
			{Line: cart.Line{Quantity: 1}, DiscountAmount: 0},
		},
		AutomaticDiscount:   400,
		AutomaticDiscountID: &autoID,
		CouponDiscount:      500,
	}

	applied := p.AppliedDiscounts(&couponID)

	if len(applied) != 3 {
		t.Fatalf("got %d entries, want 3: %v", len(applied), applied)
	}
	if applied[lineDiscountID] != 600 {
		t.Errorf("line discount = %d, want 600", applied[lineDiscountID])
	}
	if applied[autoID] != 400 {
		t.Errorf("automatic = %d, want 400", applied[autoID])
	}
	if applied[couponID] != 500 {
		t.Errorf("coupon = %d, want 500", applied[couponID])
	}
}
