// Package mldsa implements the Module-Lattice-Based Digital Signature Algorithm
// (ML-DSA) standardised in FIPS 204.
//
// The root package holds the parameter descriptors shared by every layer. The
// arithmetic, sampling, encoding and signing pipelines live in sub-packages so
// they can be tested and reused independently.
package mldsa

// Version of the ML-DSA Go implementation.
const Version = "1.0.0"

// API summary:
//
// Key Generation:
//   - sign.GenerateKeyPair(level) - Generate a key pair from 32 bytes of CSPRNG output
//   - sign.GenerateKeyPairFromSeed(params, seed) - Deterministic key pair from a 32-byte seed
//   - sign.KeyGen(level, seed) - Byte-level key generation (encoded pk, sk)
//
// Signing:
//   - sign.Sign(sk, message, opts) - Pure or pre-hash ML-DSA, hedged unless opts.Deterministic
//   - sign.SignPreHashed(sk, digest, opts) - HashML-DSA over a caller-computed digest
//   - sign.SignInternal(sk, mPrime, rnd) - ML-DSA.Sign_internal over a formatted message
//   - sign.SignExternalMu(sk, mu, rnd) - Low-level signing over a caller-computed mu
//
// Verification:
//   - sign.Verify(pk, message, signature, opts) - Boolean verification
//   - sign.CheckSignature(pk, message, signature, opts) - Verification with a typed error
//   - sign.VerifyInternal / sign.VerifyExternalMu - Low-level counterparts
//
// Parameters:
//   - core.GetParams(level) - Get parameters for security level
//   - ML_DSA_44, ML_DSA_65, ML_DSA_87 - NIST security categories 2, 3 and 5
