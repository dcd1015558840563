package utils

import (
	"errors"
	"testing"
)

func TestCheckLength(t *testing.T) {
	if err := CheckLength(10, 100); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := CheckLength(-1, 100); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("expected ErrInvalidLength, got %v", err)
	}
	if err := CheckLength(101, 100); !errors.Is(err, ErrExceedsLimit) {
		t.Errorf("expected ErrExceedsLimit, got %v", err)
	}
}

func TestCheckExactLength(t *testing.T) {
	if err := CheckExactLength(make([]byte, 32), 32, "seed"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	err := CheckExactLength(make([]byte, 31), 32, "seed")
	if !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("expected ErrInvalidLength, got %v", err)
	}
	if got := err.Error(); got != "seed: invalid length: got 31 bytes, want 32" {
		t.Errorf("unexpected message %q", got)
	}
}
