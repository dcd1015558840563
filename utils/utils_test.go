package utils

import (
	"bytes"
	"encoding/hex"
	"sync"
	"testing"
)

func TestShakeEmptyInput(t *testing.T) {
	want256, _ := hex.DecodeString("46b9dd2b0ba88d13233b3feb743eeb243fcd52ea62b81b82b50c27646ed5762f")
	if got := Shake256Concat(32); !bytes.Equal(got, want256) {
		t.Errorf("SHAKE256(\"\") = %x", got)
	}

	want128, _ := hex.DecodeString("7f9c2ba4e88f827d616045507605853ed73b8093f6efbc88eb1a6eacfa66ef26")
	h := AcquireShake128()
	got := make([]byte, 32)
	_, _ = h.Read(got)
	ReleaseShake128(h)
	if !bytes.Equal(got, want128) {
		t.Errorf("SHAKE128(\"\") = %x", got)
	}
}

func TestShake256ConcatMatchesSingleInput(t *testing.T) {
	a := []byte("hello ")
	b := []byte("world")
	joined := append(append([]byte{}, a...), b...)

	if !bytes.Equal(Shake256Concat(64, a, b), Shake256Concat(64, joined)) {
		t.Error("Shake256Concat must hash the plain concatenation")
	}

	out := make([]byte, 64)
	Shake256Into(out, a, nil, b)
	if !bytes.Equal(out, Shake256Concat(64, joined)) {
		t.Error("Shake256Into must ignore empty inputs")
	}
}

func TestShakePoolReset(t *testing.T) {
	// A released state must not leak absorbed input into the next user.
	h := AcquireShake256([]byte("secret"))
	ReleaseShake256(h)

	first := Shake256Concat(32, []byte("x"))
	second := Shake256Concat(32, []byte("x"))
	if !bytes.Equal(first, second) {
		t.Error("pooled SHAKE256 state was not reset")
	}
}

func TestShakeConcurrent(t *testing.T) {
	want := Shake256Concat(64, []byte("concurrent"))
	var wg sync.WaitGroup
	errs := make(chan struct{}, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if !bytes.Equal(Shake256Concat(64, []byte("concurrent")), want) {
				errs <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(errs)
	if len(errs) > 0 {
		t.Errorf("%d goroutines saw a different digest", len(errs))
	}
}

func TestConstantTimeEqual(t *testing.T) {
	a := []byte{1, 2, 3}
	b := []byte{1, 2, 3}
	c := []byte{1, 2, 4}

	if !ConstantTimeEqual(a, b) {
		t.Error("ConstantTimeEqual failed for equal slices")
	}
	if ConstantTimeEqual(a, c) {
		t.Error("ConstantTimeEqual passed for unequal slices")
	}
	if ConstantTimeEqual(a, a[:2]) {
		t.Error("ConstantTimeEqual passed for different lengths")
	}
	if !ConstantTimeEqual(nil, []byte{}) {
		t.Error("ConstantTimeEqual failed for empty slices")
	}
}

func TestZeroize(t *testing.T) {
	b := []byte{1, 2, 3}
	Zeroize(b)
	for _, v := range b {
		if v != 0 {
			t.Error("Zeroize failed")
		}
	}

	u := []uint32{1, 2, 3}
	ZeroizeUint32(u)
	for _, v := range u {
		if v != 0 {
			t.Error("ZeroizeUint32 failed")
		}
	}
}
