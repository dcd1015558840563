package sign

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/BackendStack21/ml-dsa-go/core"
)

var allPreHashes = []PreHash{
	PreHashSHA224, PreHashSHA256, PreHashSHA384, PreHashSHA512,
	PreHashSHA512_224, PreHashSHA512_256,
	PreHashSHA3_224, PreHashSHA3_256, PreHashSHA3_384, PreHashSHA3_512,
	PreHashSHAKE128, PreHashSHAKE256,
}

func TestPreHashOIDs(t *testing.T) {
	want := map[PreHash]string{
		PreHashSHA256:   "0609608648016503040201",
		PreHashSHA512:   "0609608648016503040203",
		PreHashSHA3_256: "0609608648016503040208",
		PreHashSHAKE128: "060960864801650304020b",
		PreHashSHAKE256: "060960864801650304020c",
	}
	for ph, oid := range want {
		if got := hex.EncodeToString(ph.OID()); got != oid {
			t.Errorf("%s OID = %s, want %s", ph, got, oid)
		}
	}
	if PreHashNone.OID() != nil {
		t.Error("PreHashNone has an OID")
	}
}

func TestPreHashDigest(t *testing.T) {
	msg := []byte("abc")
	for _, ph := range allPreHashes {
		d, err := ph.Digest(msg)
		if err != nil {
			t.Fatalf("%s: %v", ph, err)
		}
		if len(d) != ph.Size() {
			t.Errorf("%s: digest is %d bytes, want %d", ph, len(d), ph.Size())
		}
	}
	sum := sha256.Sum256(msg)
	d, _ := PreHashSHA256.Digest(msg)
	if !bytes.Equal(d, sum[:]) {
		t.Error("SHA2-256 digest mismatch")
	}
	if _, err := PreHashNone.Digest(msg); !errors.Is(err, ErrUnsupportedPreHash) {
		t.Errorf("expected ErrUnsupportedPreHash, got %v", err)
	}
}

func TestParsePreHash(t *testing.T) {
	for _, ph := range allPreHashes {
		got, err := ParsePreHash(ph.String())
		if err != nil || got != ph {
			t.Errorf("ParsePreHash(%q) = %v, %v", ph.String(), got, err)
		}
	}
	aliases := map[string]PreHash{
		"sha256":   PreHashSHA256,
		"SHA-512":  PreHashSHA512,
		"sha3_256": PreHashSHA3_256,
		"shake256": PreHashSHAKE256,
		"":         PreHashNone,
		"none":     PreHashNone,
	}
	for in, want := range aliases {
		if got, err := ParsePreHash(in); err != nil || got != want {
			t.Errorf("ParsePreHash(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParsePreHash("MD5"); !errors.Is(err, ErrUnsupportedPreHash) {
		t.Errorf("expected ErrUnsupportedPreHash, got %v", err)
	}
}

func TestPreHashSignVerify(t *testing.T) {
	kp := mustKeyPair(t, core.MLDSA44Params, 30)
	msg := []byte("pre-hashed message")
	ctx := []byte("hash ctx")

	for _, ph := range allPreHashes {
		opts := &Options{Context: ctx, PreHash: ph, Deterministic: true}
		sig, err := Sign(kp.SecretKey, msg, opts)
		if err != nil {
			t.Fatalf("%s: Sign failed: %v", ph, err)
		}
		if !Verify(kp.PublicKey, msg, sig, opts) {
			t.Errorf("%s: valid signature rejected", ph)
		}
		if Verify(kp.PublicKey, msg, sig, &Options{Context: ctx}) {
			t.Errorf("%s: pre-hash signature verified as pure", ph)
		}

		digest, _ := ph.Digest(msg)
		sig2, err := SignPreHashed(kp.SecretKey, digest, opts)
		if err != nil {
			t.Fatalf("%s: SignPreHashed failed: %v", ph, err)
		}
		if !bytes.Equal(sig, sig2) {
			t.Errorf("%s: SignPreHashed differs from Sign", ph)
		}
		if !VerifyPreHashed(kp.PublicKey, digest, sig, opts) {
			t.Errorf("%s: VerifyPreHashed rejected a valid signature", ph)
		}
	}

	// Pure and pre-hash signatures with other hashes must not cross-verify.
	opts256 := &Options{PreHash: PreHashSHA256, Deterministic: true}
	sig, _ := Sign(kp.SecretKey, msg, opts256)
	if Verify(kp.PublicKey, msg, sig, &Options{PreHash: PreHashSHA3_256}) {
		t.Error("SHA2-256 signature verified as SHA3-256")
	}
}

func TestSignPreHashedDigestSize(t *testing.T) {
	kp := mustKeyPair(t, core.MLDSA44Params, 31)
	_, err := SignPreHashed(kp.SecretKey, make([]byte, 31), &Options{PreHash: PreHashSHA256})
	if !errors.Is(err, ErrInvalidDigestSize) {
		t.Errorf("expected ErrInvalidDigestSize, got %v", err)
	}
	_, err = SignPreHashed(kp.SecretKey, make([]byte, 32), nil)
	if !errors.Is(err, ErrUnsupportedPreHash) {
		t.Errorf("expected ErrUnsupportedPreHash, got %v", err)
	}
}

func TestInternalAndExternalMu(t *testing.T) {
	kp := mustKeyPair(t, core.MLDSA65Params, 32)
	msg := []byte("formatted elsewhere")
	ctx := []byte("c")
	rnd := make([]byte, 32)

	// Sign_internal over M' = 0 || len(ctx) || ctx || M equals pure signing.
	mPrime := append([]byte{0, byte(len(ctx))}, ctx...)
	mPrime = append(mPrime, msg...)
	sigInternal, err := SignInternal(kp.SecretKey, mPrime, rnd)
	if err != nil {
		t.Fatal(err)
	}
	sigPure, _ := Sign(kp.SecretKey, msg, &Options{Context: ctx, Deterministic: true})
	if !bytes.Equal(sigInternal, sigPure) {
		t.Error("SignInternal over the pure M' differs from Sign")
	}
	if !VerifyInternal(kp.PublicKey, mPrime, sigPure) {
		t.Error("VerifyInternal rejected a pure signature")
	}

	// External mu.
	mu, err := ComputeMu(kp.PublicKey, msg, &Options{Context: ctx})
	if err != nil {
		t.Fatal(err)
	}
	sigMu, err := SignExternalMu(kp.SecretKey, mu, rnd)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(sigMu, sigPure) {
		t.Error("SignExternalMu differs from Sign")
	}
	if !VerifyExternalMu(kp.PublicKey, mu, sigPure) {
		t.Error("VerifyExternalMu rejected a valid signature")
	}
	if VerifyExternalMu(kp.PublicKey, mu[:63], sigPure) {
		t.Error("VerifyExternalMu accepted a short mu")
	}

	if _, err := SignExternalMu(kp.SecretKey, mu[:32], rnd); !errors.Is(err, ErrInvalidMuSize) {
		t.Errorf("expected ErrInvalidMuSize, got %v", err)
	}
	if _, err := SignInternal(kp.SecretKey, mPrime, rnd[:31]); !errors.Is(err, ErrInvalidRandomSize) {
		t.Errorf("expected ErrInvalidRandomSize, got %v", err)
	}
}
