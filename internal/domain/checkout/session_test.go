// internal/domain/checkout/session_test.go
package checkout

import (
	"testing"

	"github.com/biloop252/suuqsade-backend/internal/domain/user"
)

func completeAddress() *user.Address {
	return &user.Address{
		ID:           1,
		UserID:       1,
		AddressLine1: "123 Main St",
		City:         "New York",
		Country:      "US",
	}
}

func TestSessionAdvance(t *testing.T) {
	t.Run("address stage requires an address", func(t *testing.T) {
		s := Session{Stage: StageAddress}
		if _, err := s.Advance(); err == nil {
			t.Fatal("expected error advancing without an address")
		}
	})

	t.Run("address stage rejects incomplete address", func(t *testing.T) {
		s := Session{Stage: StageAddress}.WithAddress(&user.Address{ID: 1, City: "New York"})
		if _, err := s.Advance(); err == nil {
			t.Fatal("expected error advancing with incomplete address")
		}
	})

	t.Run("complete address moves to payment", func(t *testing.T) {
		s := Session{Stage: StageAddress}.WithAddress(completeAddress())
		next, err := s.Advance()
		if err != nil {
			t.Fatalf("Advance() error = %v", err)
		}
		if next.Stage != StagePayment {
			t.Errorf("Stage = %s, want %s", next.Stage, StagePayment)
		}
	})

	t.Run("payment stage requires a method", func(t *testing.T) {
		s := Session{Stage: StagePayment}
		if _, err := s.Advance(); err == nil {
			t.Fatal("expected error advancing without a payment method")
		}
	})

	t.Run("payment method moves to confirmation", func(t *testing.T) {
		s := Session{Stage: StagePayment}.WithPaymentMethod("cash_on_delivery")
		next, err := s.Advance()
		if err != nil {
			t.Fatalf("Advance() error = %v", err)
		}
		if next.Stage != StageConfirmation {
			t.Errorf("Stage = %s, want %s", next.Stage, StageConfirmation)
		}
	})

	t.Run("cannot advance past confirmation", func(t *testing.T) {
		s := Session{Stage: StageConfirmation}
		if _, err := s.Advance(); err == nil {
			t.Fatal("expected error advancing from confirmation")
		}
	})

	t.Run("failed advance leaves stage unchanged", func(t *testing.T) {
		s := Session{Stage: StageAddress}
		next, _ := s.Advance()
		if next.Stage != StageAddress {
			t.Errorf("Stage = %s, want %s", next.Stage, StageAddress)
		}
	})
}

func TestSessionBack(t *testing.T) {
	t.Run("payment goes back to address", func(t *testing.T) {
		s := Session{Stage: StagePayment}
		next, err := s.Back()
		if err != nil {
			t.Fatalf("Back() error = %v", err)
		}
		if next.Stage != StageAddress {
			t.Errorf("Stage = %s, want %s", next.Stage, StageAddress)
		}
	})

	t.Run("address cannot go back", func(t *testing.T) {
		s := Session{Stage: StageAddress}
		if _, err := s.Back(); err == nil {
			t.Fatal("expected error going back from address")
		}
	})

	t.Run("confirmation cannot go back", func(t *testing.T) {
		s := Session{Stage: StageConfirmation}
		if _, err := s.Back(); err == nil {
			t.Fatal("expected error going back from confirmation")
		}
	})
}

func TestSessionTransitionsDoNotMutate(t *testing.T) {
	s := Session{Stage: StageAddress}

	withAddr := s.WithAddress(completeAddress())
	if s.Address != nil || s.AddressID != nil {
		t.Error("WithAddress mutated the original session")
	}
	if withAddr.Address == nil {
		t.Error("WithAddress did not carry the address")
	}

	advanced, err := withAddr.Advance()
	if err != nil {
		t.Fatalf("Advance() error = %v", err)
	}
	if withAddr.Stage != StageAddress {
		t.Error("Advance mutated the original session")
	}
	if advanced.Stage != StagePayment {
		t.Errorf("Stage = %s, want %s", advanced.Stage, StagePayment)
	}
}
