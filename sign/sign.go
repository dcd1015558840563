// Package sign implements ML-DSA key generation, signing and verification
// (FIPS 204) over the parameter sets defined in core.
package sign

import (
	"io"

	mldsa "github.com/BackendStack21/ml-dsa-go"
	"github.com/BackendStack21/ml-dsa-go/utils"
)

// Options controls message formatting and randomness for Sign and Verify.
// A nil *Options signs pure ML-DSA with an empty context, hedged.
type Options struct {
	// Context is the application context string, at most 255 bytes.
	Context []byte
	// PreHash selects HashML-DSA when not PreHashNone.
	PreHash PreHash
	// Deterministic replaces the 32-byte rnd with zeros.
	Deterministic bool
	// Rand overrides utils.RandReader for hedged signing.
	Rand io.Reader
}

var defaultOptions Options

func optionsOrDefault(opts *Options) *Options {
	if opts == nil {
		return &defaultOptions
	}
	return opts
}

func (o *Options) rnd() ([]byte, error) {
	if o.Deterministic {
		return make([]byte, mldsa.SeedSize), nil
	}
	return utils.ReadRandom(o.Rand, mldsa.SeedSize)
}

// Sign creates a signature over message.
func Sign(sk *SecretKey, message []byte, opts *Options) ([]byte, error) {
	sig, _, err := SignWithAttempts(sk, message, opts)
	return sig, err
}

// SignWithAttempts is Sign that also reports how many iterations of the
// rejection loop were needed.
func SignWithAttempts(sk *SecretKey, message []byte, opts *Options) ([]byte, int, error) {
	opts = optionsOrDefault(opts)
	mu, err := messageMu(sk.tr[:], message, opts)
	if err != nil {
		return nil, 0, err
	}
	rnd, err := opts.rnd()
	if err != nil {
		return nil, 0, err
	}
	return signMu(sk, mu, rnd)
}

// SignPreHashed creates a HashML-DSA signature over a digest the caller
// already computed with opts.PreHash.
func SignPreHashed(sk *SecretKey, digest []byte, opts *Options) ([]byte, error) {
	opts = optionsOrDefault(opts)
	mu, err := preHashMu(sk.tr[:], opts.Context, opts.PreHash, digest)
	if err != nil {
		return nil, err
	}
	rnd, err := opts.rnd()
	if err != nil {
		return nil, err
	}
	sig, _, err := signMu(sk, mu, rnd)
	return sig, err
}

// SignInternal runs ML-DSA.Sign_internal on an already formatted message
// M'. rnd must be 32 bytes; all zeros gives the deterministic variant. It
// applies no domain separation and is intended for conformance testing and
// protocols that format M' themselves.
func SignInternal(sk *SecretKey, mPrime, rnd []byte) ([]byte, error) {
	if len(rnd) != mldsa.SeedSize {
		return nil, ErrInvalidRandomSize
	}
	sig, _, err := signMu(sk, internalMu(sk.tr[:], mPrime), rnd)
	return sig, err
}

// SignExternalMu signs a caller-computed mu = H(tr || M', 64). This is a
// low-level entry point: the caller is responsible for binding mu to this
// key's tr and to a properly formatted M'.
func SignExternalMu(sk *SecretKey, mu, rnd []byte) ([]byte, error) {
	if len(mu) != mldsa.MuSize {
		return nil, ErrInvalidMuSize
	}
	if len(rnd) != mldsa.SeedSize {
		return nil, ErrInvalidRandomSize
	}
	var m [mldsa.MuSize]byte
	copy(m[:], mu)
	sig, _, err := signMu(sk, m, rnd)
	return sig, err
}

func signMu(sk *SecretKey, mu [mldsa.MuSize]byte, rnd []byte) ([]byte, int, error) {
	s := newSigner(sk, mu, rnd)
	defer s.release()
	sig, err := s.run()
	return sig, s.attempts, err
}

// Verify reports whether signature is a valid signature of message.
func Verify(pk *PublicKey, message, signature []byte, opts *Options) bool {
	return CheckSignature(pk, message, signature, opts) == nil
}

// CheckSignature verifies signature and explains a rejection. Malformed
// inputs return their input error; a well-formed signature that does not
// verify returns ErrVerificationFailed.
func CheckSignature(pk *PublicKey, message, signature []byte, opts *Options) error {
	if err := pk.checkSignatureSize(signature); err != nil {
		return err
	}
	opts = optionsOrDefault(opts)
	mu, err := messageMu(pk.tr[:], message, opts)
	if err != nil {
		return err
	}
	return pk.verifyMu(mu, signature)
}

// VerifyPreHashed verifies a HashML-DSA signature over a precomputed digest.
func VerifyPreHashed(pk *PublicKey, digest, signature []byte, opts *Options) bool {
	if pk.checkSignatureSize(signature) != nil {
		return false
	}
	opts = optionsOrDefault(opts)
	mu, err := preHashMu(pk.tr[:], opts.Context, opts.PreHash, digest)
	if err != nil {
		return false
	}
	return pk.verifyMu(mu, signature) == nil
}

// VerifyInternal runs ML-DSA.Verify_internal on an already formatted M'.
func VerifyInternal(pk *PublicKey, mPrime, signature []byte) bool {
	if pk.checkSignatureSize(signature) != nil {
		return false
	}
	return pk.verifyMu(internalMu(pk.tr[:], mPrime), signature) == nil
}

// VerifyExternalMu verifies a signature against a caller-computed mu.
func VerifyExternalMu(pk *PublicKey, mu, signature []byte) bool {
	if len(mu) != mldsa.MuSize || pk.checkSignatureSize(signature) != nil {
		return false
	}
	var m [mldsa.MuSize]byte
	copy(m[:], mu)
	return pk.verifyMu(m, signature) == nil
}

// ComputeMu returns H(tr || M', 64) for the pure or pre-hash formatting of
// message under opts, binding it to pk. Use it with SignExternalMu when the
// message is hashed away from the signing key.
func ComputeMu(pk *PublicKey, message []byte, opts *Options) ([]byte, error) {
	mu, err := messageMu(pk.tr[:], message, optionsOrDefault(opts))
	if err != nil {
		return nil, err
	}
	return mu[:], nil
}
