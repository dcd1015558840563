package utils

import (
	"bytes"
	"errors"
	"testing"
)

func TestSecureRandomBytes_Coverage(t *testing.T) {
	bytes, err := SecureRandomBytes(32)
	if err != nil {
		t.Fatal(err)
	}
	if len(bytes) != 32 {
		t.Errorf("expected 32 bytes, got %d", len(bytes))
	}
}

func TestSecureRandomBytes_Zero(t *testing.T) {
	bytes, err := SecureRandomBytes(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(bytes) != 0 {
		t.Error("expected empty slice")
	}
}

func TestSecureRandomBytes_RandError(t *testing.T) {
	old := RandReader
	RandReader = &errorReader{}
	defer func() { RandReader = old }()

	_, err := SecureRandomBytes(32)
	if err == nil {
		t.Error("expected error from rand failure")
	}
}

func TestReadRandom_ShortRead(t *testing.T) {
	_, err := ReadRandom(bytes.NewReader(make([]byte, 10)), 32)
	if err == nil {
		t.Error("expected error on short read")
	}

	out, err := ReadRandom(bytes.NewReader([]byte{1, 2, 3, 4}), 4)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, []byte{1, 2, 3, 4}) {
		t.Errorf("unexpected bytes %x", out)
	}
}

func TestReadRandom_NilReaderUsesDefault(t *testing.T) {
	old := RandReader
	RandReader = bytes.NewReader(bytes.Repeat([]byte{0xAB}, 8))
	defer func() { RandReader = old }()

	out, err := ReadRandom(nil, 8)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, bytes.Repeat([]byte{0xAB}, 8)) {
		t.Errorf("nil reader did not fall back to RandReader: %x", out)
	}
}

type errorReader struct{}

func (e *errorReader) Read(p []byte) (n int, err error) {
	return 0, errors.New("simulated rand error")
}
