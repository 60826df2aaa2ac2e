// internal/domain/discount/resolver_test.go
package discount

import (
	"testing"
	"time"
)

func activeWindow() (time.Time, *time.Time) {
	start := time.Now().UTC().Add(-24 * time.Hour)
	end := time.Now().UTC().Add(24 * time.Hour)
	return start, &end
}

func globalPercentage(id uint, value float64, cap *int64) Discount {
	start, end := activeWindow()
	return Discount{
		ID:                    id,
		Name:                  "test percentage",
		Type:                  TypePercentage,
		Value:                 value,
		MaximumDiscountAmount: cap,
		Status:                StatusActive,
		IsActive:              true,
		IsGlobal:              true,
		StartDate:             start,
		EndDate:               end,
	}
}

func globalFixed(id uint, value float64) Discount {
	start, end := activeWindow()
	return Discount{
		ID:        id,
		Name:      "test fixed",
		Type:      TypeFixedAmount,
		Value:     value,
		Status:    StatusActive,
		IsActive:  true,
		IsGlobal:  true,
		StartDate: start,
		EndDate:   end,
	}
}

func TestSavings(t *testing.T) {
	cap2500 := int64(2500)

	tests := []struct {
		name     string
		discount Discount
		price    int64
		want     int64
	}{
		{"percentage 20 of 10000", globalPercentage(1, 20, nil), 10000, 2000},
		{"percentage capped", globalPercentage(2, 50, &cap2500), 10000, 2500},
		{"percentage under cap", globalPercentage(3, 10, &cap2500), 10000, 1000},
		{"fixed amount", globalFixed(4, 1500), 10000, 1500},
		{"fixed amount capped at price", globalFixed(5, 7500), 5000, 5000},
		{"free shipping contributes nothing", func() Discount {
			d := globalFixed(6, 0)
			d.Type = TypeFreeShipping
			d.Value = 100
			return d
		}(), 10000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Savings(&tt.discount, tt.price); got != tt.want {
				t.Errorf("Savings() = %d, want %d", got, tt.want)
			}
			if got := Savings(&tt.discount, tt.price); got > tt.price {
				t.Errorf("Savings() = %d exceeds price %d", got, tt.price)
			}
		})
	}
}

func TestBestDiscount(t *testing.T) {
	t.Run("global percentage 20 on 10000", func(t *testing.T) {
		catalog := []Discount{globalPercentage(1, 20, nil)}
		res := BestDiscount(ProductRef{ID: 1, Price: 10000}, catalog)

		if res.FinalPrice != 8000 {
			t.Errorf("FinalPrice = %d, want 8000", res.FinalPrice)
		}
		if res.DiscountAmount != 2000 {
			t.Errorf("DiscountAmount = %d, want 2000", res.DiscountAmount)
		}
		if res.Best == nil || res.Best.ID != 1 {
			t.Errorf("Best = %v, want discount 1", res.Best)
		}
	})

	t.Run("fixed amount larger than price floors at zero", func(t *testing.T) {
		catalog := []Discount{globalFixed(1, 7500)}
		res := BestDiscount(ProductRef{ID: 1, Price: 5000}, catalog)

		if res.FinalPrice != 0 {
			t.Errorf("FinalPrice = %d, want 0", res.FinalPrice)
		}
		if res.DiscountAmount != 5000 {
			t.Errorf("DiscountAmount = %d, want 5000", res.DiscountAmount)
		}
	})

	t.Run("largest saving wins", func(t *testing.T) {
		catalog := []Discount{
			globalPercentage(1, 10, nil), // 1000
			globalFixed(2, 1500),         // 1500
			globalPercentage(3, 5, nil),  // 500
		}
		res := BestDiscount(ProductRef{ID: 1, Price: 10000}, catalog)

		if res.Best == nil || res.Best.ID != 2 {
			t.Fatalf("Best = %v, want discount 2", res.Best)
		}
	})

	t.Run("equal savings keep first encountered", func(t *testing.T) {
		catalog := []Discount{
			globalPercentage(1, 10, nil), // 1000
			globalFixed(2, 1000),         // 1000, same saving
		}
		res := BestDiscount(ProductRef{ID: 1, Price: 10000}, catalog)

		if res.Best == nil || res.Best.ID != 1 {
			t.Fatalf("Best = %v, want first-encountered discount 1", res.Best)
		}
	})

	t.Run("no applicable discount", func(t *testing.T) {
		vendorID := uint(7)
		d := globalPercentage(1, 20, nil)
		d.IsGlobal = false
		d.VendorID = &vendorID

		res := BestDiscount(ProductRef{ID: 1, Price: 10000}, []Discount{d})
		if res.Best != nil || res.DiscountAmount != 0 || res.FinalPrice != 10000 {
			t.Errorf("expected untouched price, got %+v", res)
		}
	})
}

func TestApplicable(t *testing.T) {
	vendorA := uint(1)
	vendorB := uint(2)
	categoryID := uint(10)
	brandID := uint(20)
	productID := uint(100)

	vendorScoped := func(scope Scope) Discount {
		d := globalPercentage(1, 10, nil)
		d.IsGlobal = false
		d.VendorID = &vendorA
		d.Scopes = []Scope{scope}
		return d
	}

	product := ProductRef{ID: productID, Price: 1000, CategoryID: &categoryID, BrandID: &brandID, VendorID: &vendorA}

	tests := []struct {
		name     string
		discount Discount
		product  ProductRef
		want     bool
	}{
		{"global applies to anything", globalPercentage(1, 10, nil), ProductRef{ID: 1, Price: 100}, true},
		{"product scope match", vendorScoped(Scope{ProductID: &productID}), product, true},
		{"category scope match", vendorScoped(Scope{CategoryID: &categoryID}), product, true},
		{"brand scope match", vendorScoped(Scope{BrandID: &brandID}), product, true},
		{"wrong vendor", func() Discount {
			d := vendorScoped(Scope{ProductID: &productID})
			d.VendorID = &vendorB
			return d
		}(), product, false},
		{"no scope match", vendorScoped(Scope{}), product, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Applicable(&tt.discount, tt.product); got != tt.want {
				t.Errorf("Applicable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveBatchMatchesSingleResolution(t *testing.T) {
	vendorA := uint(1)
	categoryID := uint(10)
	cap1200 := int64(1200)

	vendorScoped := globalPercentage(3, 25, nil)
	vendorScoped.IsGlobal = false
	vendorScoped.VendorID = &vendorA
	vendorScoped.Scopes = []Scope{{CategoryID: &categoryID}}

	catalog := []Discount{
		globalPercentage(1, 15, &cap1200),
		globalFixed(2, 900),
		vendorScoped,
	}

	products := []ProductRef{
		{ID: 1, Price: 10000, CategoryID: &categoryID, VendorID: &vendorA},
		{ID: 2, Price: 500},
		{ID: 3, Price: 25000, CategoryID: &categoryID, VendorID: &vendorA},
		{ID: 4, Price: 0},
	}

	batch := ResolveBatch(products, catalog)
	if len(batch) != len(products) {
		t.Fatalf("ResolveBatch returned %d results, want %d", len(batch), len(products))
	}

	for i, p := range products {
		single := BestDiscount(p, catalog)
		if batch[i].FinalPrice != single.FinalPrice || batch[i].DiscountAmount != single.DiscountAmount {
			t.Errorf("product %d: batch = %+v, single = %+v", p.ID, batch[i], single)
		}
		if (batch[i].Best == nil) != (single.Best == nil) {
			t.Errorf("product %d: batch best = %v, single best = %v", p.ID, batch[i].Best, single.Best)
			continue
		}
		if batch[i].Best != nil && batch[i].Best.ID != single.Best.ID {
			t.Errorf("product %d: batch picked %d, single picked %d", p.ID, batch[i].Best.ID, single.Best.ID)
		}
	}
}
