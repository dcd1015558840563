package utils

import (
	"crypto/rand"
	"crypto/subtle"
	"io"
	"runtime"
)

// RandReader is the randomness source for key generation and hedged signing.
// Tests may replace it with a deterministic reader.
var RandReader io.Reader = rand.Reader

// SecureRandomBytes generates n cryptographically secure random bytes.
// It reads from RandReader, which defaults to the operating system's CSPRNG.
func SecureRandomBytes(n int) ([]byte, error) {
	return ReadRandom(RandReader, n)
}

// ReadRandom fills a fresh n-byte buffer from r, failing on short reads.
func ReadRandom(r io.Reader, n int) ([]byte, error) {
	if r == nil {
		r = RandReader
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// ConstantTimeEqual compares two byte slices in constant time.
// It returns true if the slices are equal, false otherwise.
// This function leaks only the length of the slices.
func ConstantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}

// Zeroize overwrites a byte slice with zeros.
// Uses runtime.KeepAlive to prevent compiler optimization from eliminating the stores.
func Zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

// ZeroizeUint32 overwrites a uint32 slice with zeros.
func ZeroizeUint32(s []uint32) {
	for i := range s {
		s[i] = 0
	}
	runtime.KeepAlive(s)
}
