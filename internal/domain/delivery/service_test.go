// internal/domain/delivery/service_test.go
package delivery

import "testing"

func TestFallbackCost(t *testing.T) {
	tests := []struct {
		name          string
		rawSubtotal   int64
		flatCost      int64
		freeThreshold int64
		want          int64
	}{
		{"below threshold pays flat cost", 4000, 999, 5000, 999},
		{"at threshold ships free", 5000, 999, 5000, 0},
		{"above threshold ships free", 12000, 999, 5000, 0},
		{"one cent under threshold pays", 4999, 999, 5000, 999},
		{"empty cart pays flat cost", 0, 999, 5000, 999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FallbackCost(tt.rawSubtotal, tt.flatCost, tt.freeThreshold); got != tt.want {
				t.Errorf("FallbackCost(%d, %d, %d) = %d, want %d",
					tt.rawSubtotal, tt.flatCost, tt.freeThreshold, got, tt.want)
			}
		})
	}
}

func TestCheapestRate(t *testing.T) {
	t.Run("empty candidates", func(t *testing.T) {
		if _, ok := CheapestRate(nil); ok {
			t.Fatal("expected ok = false for no candidates")
		}
	})

	t.Run("picks lowest price", func(t *testing.T) {
		rates := []Rate{
			{ID: 1, PickupCity: "Chicago", DeliveryCity: "New York", Price: 1500},
			{ID: 2, PickupCity: "Boston", DeliveryCity: "New York", Price: 700},
			{ID: 3, PickupCity: "Newark", DeliveryCity: "New York", Price: 900},
		}

		best, ok := CheapestRate(rates)
		if !ok {
			t.Fatal("expected ok = true")
		}
		if best.ID != 2 || best.Price != 700 {
			t.Errorf("CheapestRate() = %+v, want rate 2 at 700", best)
		}
	})

	t.Run("equal prices keep first", func(t *testing.T) {
		rates := []Rate{
			{ID: 1, Price: 800},
			{ID: 2, Price: 800},
		}

		best, _ := CheapestRate(rates)
		if best.ID != 1 {
			t.Errorf("CheapestRate() picked %d, want first rate", best.ID)
		}
	})
}
