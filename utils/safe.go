// Package utils provides shared helpers for ML-DSA.
// This file contains length checks applied at every decoding boundary.

package utils

import (
	"errors"
	"fmt"
)

const (
	// MaxInputFileSize bounds files read by the command-line tool.
	MaxInputFileSize = 100 * 1024 * 1024 // 100MB
)

var (
	// ErrExceedsLimit indicates a value exceeds the allowed limit.
	ErrExceedsLimit = errors.New("value exceeds allowed limit")

	// ErrInvalidLength indicates an invalid length value.
	ErrInvalidLength = errors.New("invalid length")
)

// CheckLength validates that length is within [0, maxAllowed].
func CheckLength(length, maxAllowed int) error {
	if length < 0 {
		return ErrInvalidLength
	}
	if length > maxAllowed {
		return ErrExceedsLimit
	}
	return nil
}

// CheckExactLength reports an ErrInvalidLength naming what when len(data) != want.
func CheckExactLength(data []byte, want int, what string) error {
	if len(data) != want {
		return fmt.Errorf("%s: %w: got %d bytes, want %d", what, ErrInvalidLength, len(data), want)
	}
	return nil
}
