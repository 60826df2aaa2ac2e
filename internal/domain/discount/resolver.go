// internal/domain/discount/resolver.go
package discount

// ProductRef describes the attributes of a product (or cart line) that
// discount applicability depends on. Price is the effective unit price in
// cents: the variant price override when one is selected, else the product
// price.
type ProductRef struct {
	ID         uint  `json:"id"`
	Price      int64 `json:"price"`
	CategoryID *uint `json:"category_id,omitempty"`
	BrandID    *uint `json:"brand_id,omitempty"`
	VendorID   *uint `json:"vendor_id,omitempty"`
}

// Resolution is the outcome of resolving the best discount for one product
type Resolution struct {
	FinalPrice     int64     `json:"final_price"`
	DiscountAmount int64     `json:"discount_amount"`
	Best           *Discount `json:"best_discount,omitempty"`
}

// Applicable reports whether the discount applies to the product: either the
// discount is global, or it belongs to the product's vendor and at least one
// scope association matches the product, its category, or its brand.
func Applicable(d *Discount, p ProductRef) bool {
	if d.IsGlobal {
		return true
	}

	if d.VendorID == nil || p.VendorID == nil || *d.VendorID != *p.VendorID {
		return false
	}

	for _, scope := range d.Scopes {
		if scope.ProductID != nil && *scope.ProductID == p.ID {
			return true
		}
		if scope.CategoryID != nil && p.CategoryID != nil && *scope.CategoryID == *p.CategoryID {
			return true
		}
		if scope.BrandID != nil && p.BrandID != nil && *scope.BrandID == *p.BrandID {
			return true
		}
	}
	return false
}

// Savings computes the absolute saving in cents the discount yields on the
// given unit price. Percentage discounts are capped at the maximum discount
// amount when set; fixed-amount discounts never exceed the price itself.
// Free-shipping and unrecognized types contribute nothing here.
func Savings(d *Discount, price int64) int64 {
	switch d.Type {
	case TypePercentage:
		raw := int64(float64(price) * d.Value / 100)
		if d.MaximumDiscountAmount != nil && raw > *d.MaximumDiscountAmount {
			raw = *d.MaximumDiscountAmount
		}
		return raw
	case TypeFixedAmount:
		raw := int64(d.Value)
		if raw > price {
			raw = price
		}
		return raw
	default:
		return 0
	}
}

// BestDiscount selects the applicable discount with the strictly largest
// saving for the product. Candidates must already be filtered to currently
// valid discounts; ties keep the first encountered in candidate order.
func BestDiscount(p ProductRef, candidates []Discount) Resolution {
	res := Resolution{FinalPrice: p.Price}

	for i := range candidates {
		d := &candidates[i]
		if !Applicable(d, p) {
			continue
		}
		if saving := Savings(d, p.Price); saving > res.DiscountAmount {
			res.DiscountAmount = saving
			res.Best = d
		}
	}

	res.FinalPrice = p.Price - res.DiscountAmount
	if res.FinalPrice < 0 {
		res.FinalPrice = 0
	}
	return res
}

// ResolveBatch resolves the best discount for every product in a single pass
// over the catalog, instead of rescanning it per product. Selection is
// identical to calling BestDiscount once per product with the same catalog.
func ResolveBatch(products []ProductRef, catalog []Discount) []Resolution {
	results := make([]Resolution, len(products))
	for i, p := range products {
		results[i] = Resolution{FinalPrice: p.Price}
	}

	for i := range catalog {
		d := &catalog[i]
		for j, p := range products {
			if !Applicable(d, p) {
				continue
			}
			if saving := Savings(d, p.Price); saving > results[j].DiscountAmount {
				results[j].DiscountAmount = saving
				results[j].Best = d
			}
		}
	}

	for j, p := range products {
		results[j].FinalPrice = p.Price - results[j].DiscountAmount
		if results[j].FinalPrice < 0 {
			results[j].FinalPrice = 0
		}
	}
	return results
}
