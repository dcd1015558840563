package sign

import (
	"bytes"
	"testing"

	circlsign "github.com/cloudflare/circl/sign"
	"github.com/cloudflare/circl/sign/mldsa/mldsa44"
	"github.com/cloudflare/circl/sign/mldsa/mldsa65"
	"github.com/cloudflare/circl/sign/mldsa/mldsa87"

	mldsa "github.com/BackendStack21/ml-dsa-go"
	"github.com/BackendStack21/ml-dsa-go/core"
)

var circlSchemes = map[mldsa.SecurityLevel]circlsign.Scheme{
	mldsa.MLDSA44: mldsa44.Scheme(),
	mldsa.MLDSA65: mldsa65.Scheme(),
	mldsa.MLDSA87: mldsa87.Scheme(),
}

// TestCirclInterop checks byte-for-byte agreement with an independent
// FIPS 204 implementation: identical keys from the same seed, identical
// deterministic signatures, and mutual verification of hedged ones.
func TestCirclInterop(t *testing.T) {
	for _, level := range core.Levels {
		scheme := circlSchemes[level]
		params, _ := core.GetParams(level)

		t.Run(string(level), func(t *testing.T) {
			for i := byte(0); i < 3; i++ {
				seed := testSeed(40 + i)
				cpk, csk := scheme.DeriveKey(seed)
				cpkBytes, _ := cpk.MarshalBinary()
				cskBytes, _ := csk.MarshalBinary()

				kp, err := GenerateKeyPairFromSeed(params, seed)
				if err != nil {
					t.Fatal(err)
				}
				if !bytes.Equal(kp.PublicKey.Bytes(), cpkBytes) {
					t.Fatalf("seed %d: public key differs from circl", i)
				}
				if !bytes.Equal(kp.SecretKey.Bytes(), cskBytes) {
					t.Fatalf("seed %d: secret key differs from circl", i)
				}

				msg := bytes.Repeat([]byte{i}, 100*int(i)+1)
				ctx := "interop"
				opts := &Options{Context: []byte(ctx), Deterministic: true}

				want := scheme.Sign(csk, msg, &circlsign.SignatureOpts{Context: ctx})
				got, err := Sign(kp.SecretKey, msg, opts)
				if err != nil {
					t.Fatal(err)
				}
				if !bytes.Equal(got, want) {
					t.Fatalf("seed %d: deterministic signature differs from circl", i)
				}

				hedged, err := Sign(kp.SecretKey, msg, &Options{Context: []byte(ctx)})
				if err != nil {
					t.Fatal(err)
				}
				if !scheme.Verify(cpk, msg, hedged, &circlsign.SignatureOpts{Context: ctx}) {
					t.Errorf("seed %d: circl rejected our hedged signature", i)
				}
				if !Verify(kp.PublicKey, msg, want, opts) {
					t.Errorf("seed %d: circl signature rejected", i)
				}
			}
		})
	}
}
