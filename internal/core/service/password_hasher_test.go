package service

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("correct-horse-battery-staple")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if !strings.HasPrefix(hash, "$2a$") {
		t.Errorf("expected bcrypt hash, got %q", hash)
	}
	if !h.Verify("correct-horse-battery-staple", hash) {
		t.Error("Verify() should return true for the correct password")
	}
	if h.Verify("wrong-password", hash) {
		t.Error("Verify() should return false for a wrong password")
	}
}

func TestBcryptHasher_UniqueSalts(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	a, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	b, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if a == b {
		t.Error("two hashes of the same password should differ")
	}
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	for _, hash := range []string{"", "plaintext", "$2a$04$short"} {
		if h.Verify("password", hash) {
			t.Errorf("Verify() accepted malformed hash %q", hash)
		}
	}
}

func TestNewBcryptHasher_ClampsCost(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, bcrypt.DefaultCost},
		{1, bcrypt.MinCost},
		{12, 12},
		{99, bcrypt.MaxCost},
	}
	for _, tt := range tests {
		if got := NewBcryptHasher(tt.in).cost; got != tt.want {
			t.Errorf("NewBcryptHasher(%d).cost = %d, want %d", tt.in, got, tt.want)
		}
	}
}
