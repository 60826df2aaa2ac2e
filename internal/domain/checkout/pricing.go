// internal/domain/checkout/pricing.go
package checkout

import (
	"time"

	"github.com/biloop252/suuqsade-backend/internal/domain/cart"
	"github.com/biloop252/suuqsade-backend/internal/domain/discount"
)

// PricedLine is a cart line with its resolved product discount
type PricedLine struct {
	cart.Line
	DiscountedUnitPrice int64 `json:"discounted_unit_price"` // cents
	DiscountAmount      int64 `json:"discount_amount"`       // cents, per unit
	BestDiscountID      *uint `json:"best_discount_id,omitempty"`
	LineTotal           int64 `json:"line_total"` // cents, discounted
}

// Pricing is the full cost breakdown of a checkout. All amounts are cents.
type Pricing struct {
	Lines               []PricedLine `json:"lines"`
	SubtotalRaw         int64        `json:"subtotal_raw"`
	Subtotal            int64        `json:"subtotal"` // after product discounts
	ProductDiscount     int64        `json:"product_discount"`
	AutomaticDiscount   int64        `json:"automatic_discount"`
	AutomaticDiscountID *uint        `json:"automatic_discount_id,omitempty"`
	CouponDiscount      int64        `json:"coupon_discount"`
	TaxAmount           int64        `json:"tax_amount"`
	ShippingAmount      int64        `json:"shipping_amount"`
	Total               int64        `json:"total"`
}

// AppliedDiscounts maps every discount that contributed to the pricing to the
// amount it saved, for usage tracking after order creation.
func (p *Pricing) AppliedDiscounts(couponID *uint) map[uint]int64 {
	applied := make(map[uint]int64)
	for _, line := range p.Lines {
		if line.BestDiscountID != nil {
			applied[*line.BestDiscountID] += line.DiscountAmount * int64(line.Quantity)
		}
	}
	if p.AutomaticDiscountID != nil {
		applied[*p.AutomaticDiscountID] += p.AutomaticDiscount
	}
	if couponID != nil && p.CouponDiscount > 0 {
		applied[*couponID] += p.CouponDiscount
	}
	return applied
}

// SelectAutomatic picks the automatic order-level discount from candidates:
// global, codeless, currently valid, with its minimum order amount satisfied
// by the discounted subtotal. Selection is by greatest raw value field, not
// greatest computed saving; ties keep the first encountered.
func SelectAutomatic(candidates []discount.Discount, subtotal int64, now time.Time) *discount.Discount {
	var best *discount.Discount
	for i := range candidates {
		d := &candidates[i]
		if !d.IsGlobal || d.IsCoupon() {
			continue
		}
		if !d.IsCurrentlyValid(now) {
			continue
		}
		if d.MinimumOrderAmount > subtotal {
			continue
		}
		if best == nil || d.Value > best.Value {
			best = d
		}
	}
	return best
}

// ComputePricing folds a cart into a payable total in a fixed evaluation
// order: raw subtotal, per-line best discounts, automatic order-level
// discount, coupon, tax, shipping. Tax is computed net of the coupon discount
// but not of the automatic discount, and the automatic discount comes off the
// final total after tax; this mirrors the storefront's observed arithmetic
// and changing it would shift customer-visible totals. The total is not
// floored at zero.
func ComputePricing(lines []cart.Line, catalog []discount.Discount, couponDiscount int64, shippingTotal int64, taxRate float64, now time.Time) *Pricing {
	p := &Pricing{Lines: make([]PricedLine, 0, len(lines)), CouponDiscount: couponDiscount}

	refs := make([]discount.ProductRef, len(lines))
	for i, line := range lines {
		refs[i] = line.Ref
	}
	resolutions := discount.ResolveBatch(refs, catalog)

	for i, line := range lines {
		res := resolutions[i]
		pl := PricedLine{
			Line:                line,
			DiscountedUnitPrice: res.FinalPrice,
			DiscountAmount:      res.DiscountAmount,
			LineTotal:           res.FinalPrice * int64(line.Quantity),
		}
		if res.Best != nil {
			id := res.Best.ID
			pl.BestDiscountID = &id
		}
		p.Lines = append(p.Lines, pl)

		p.SubtotalRaw += line.UnitPrice * int64(line.Quantity)
		p.Subtotal += pl.LineTotal
	}
	p.ProductDiscount = p.SubtotalRaw - p.Subtotal

	if auto := SelectAutomatic(catalog, p.Subtotal, now); auto != nil {
		id := auto.ID
		p.AutomaticDiscountID = &id
		p.AutomaticDiscount = discount.Savings(auto, p.Subtotal)
	}

	p.TaxAmount = int64(float64(p.Subtotal-p.CouponDiscount) * taxRate)
	p.ShippingAmount = shippingTotal
	p.Total = p.Subtotal + p.TaxAmount + p.ShippingAmount - p.CouponDiscount - p.AutomaticDiscount

	return p
}
