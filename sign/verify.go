package sign

import (
	"errors"
	"fmt"

	mldsa "github.com/BackendStack21/ml-dsa-go"
	"github.com/BackendStack21/ml-dsa-go/encoding"
	"github.com/BackendStack21/ml-dsa-go/ring"
	"github.com/BackendStack21/ml-dsa-go/sample"
	"github.com/BackendStack21/ml-dsa-go/utils"
)

// checkSignatureSize runs before any message hashing.
func (pk *PublicKey) checkSignatureSize(signature []byte) error {
	if want := pk.params.SignatureSize(); len(signature) != want {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidSignatureSize, len(signature), want)
	}
	return nil
}

// verifyMu runs ML-DSA.Verify_internal for a precomputed mu.
func (pk *PublicKey) verifyMu(mu [mldsa.MuSize]byte, signature []byte) error {
	p := pk.params
	if err := pk.checkSignatureSize(signature); err != nil {
		return err
	}
	sig, err := encoding.DecodeSignature(p, signature)
	if err != nil {
		return errors.Join(ErrMalformedSignature, err)
	}
	if sig.Z.InfinityNorm() >= uint32(p.Gamma1()-p.Beta) {
		return ErrVerificationFailed
	}

	c := sample.SampleInBall(sig.CTilde, p.Tau)
	cHat := ring.NTT(&c)

	// w' = InvNTT(A*NTT(z) - NTT(c)*NTT(t1 * 2^d))
	az := pk.a.MulVec(sig.Z.NTT())
	ct1 := pk.t1Hat.ScalarMul(&cHat)
	wApprox := az.Sub(ct1).InvNTT()

	w1 := ring.UseHintVec(sig.H, wApprox, uint32(p.Gamma2))
	cTilde := utils.Shake256Concat(p.CTildeSize(), mu[:], encoding.EncodeW1(p, w1))

	if !utils.ConstantTimeEqual(sig.CTilde, cTilde) {
		return ErrVerificationFailed
	}
	return nil
}
