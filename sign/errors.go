package sign

import "errors"

// Malformed input. These are returned before any cryptographic work starts.
var (
	ErrInvalidSeedSize      = errors.New("seed must be exactly 32 bytes")
	ErrContextTooLong       = errors.New("context string exceeds 255 bytes")
	ErrInvalidSignatureSize = errors.New("signature has the wrong length for this parameter set")
	ErrInvalidDigestSize    = errors.New("pre-hash digest has the wrong length for its algorithm")
	ErrInvalidMuSize        = errors.New("mu must be exactly 64 bytes")
	ErrInvalidRandomSize    = errors.New("rnd must be exactly 32 bytes")
	ErrUnsupportedPreHash   = errors.New("unsupported pre-hash algorithm")
	ErrMalformedSignature   = errors.New("malformed signature encoding")
)

// ErrVerificationFailed reports a well-formed signature that does not verify.
var ErrVerificationFailed = errors.New("signature verification failed")

// ErrRetryExhausted reports that the rejection loop hit MaxSignAttempts. No
// signature is produced in that case.
var ErrRetryExhausted = errors.New("signing exceeded the maximum number of attempts")
