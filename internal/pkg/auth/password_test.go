// internal/pkg/auth/password_test.go
package auth

import (
	"strings"
	"testing"

	"github.com/biloop252/suuqsade-backend/internal/config"
)

func testPasswordManager() *PasswordManager {
	cfg := &config.Config{}
	cfg.Security.BcryptCost = 4 // min cost, keeps the test fast
	return NewPasswordManager(cfg)
}

func TestValidatePassword(t *testing.T) {
	pm := testPasswordManager()

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid password", "Secret123", false},
		{"too short", "Ab1", true},
		{"too long", strings.Repeat("Aa1", 50), true},
		{"missing uppercase", "secret123", true},
		{"missing lowercase", "SECRET123", true},
		{"missing number", "SecretPass", true},
		{"exactly eight characters", "Abcdefg1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pm.ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
			}
		})
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	pm := testPasswordManager()

	hash, err := pm.HashPassword("Secret123")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "Secret123" {
		t.Fatal("hash equals the plaintext password")
	}

	if err := pm.VerifyPassword("Secret123", hash); err != nil {
		t.Errorf("VerifyPassword() with correct password: %v", err)
	}
	if err := pm.VerifyPassword("Wrong1234", hash); err == nil {
		t.Error("VerifyPassword() accepted a wrong password")
	}
}

func TestHashPasswordRejectsWeakPassword(t *testing.T) {
	pm := testPasswordManager()

	if _, err := pm.HashPassword("weak"); err == nil {
		t.Fatal("expected error hashing a weak password")
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"bearer token", "Bearer abc.def.ghi", "abc.def.ghi"},
		{"missing prefix", "abc.def.ghi", ""},
		{"empty header", "", ""},
		{"wrong scheme", "Basic abc", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractTokenFromHeader(tt.header); got != tt.want {
				t.Errorf("ExtractTokenFromHeader(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}
