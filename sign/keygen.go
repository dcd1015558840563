package sign

import (
	mldsa "github.com/BackendStack21/ml-dsa-go"
	"github.com/BackendStack21/ml-dsa-go/core"
	"github.com/BackendStack21/ml-dsa-go/encoding"
	"github.com/BackendStack21/ml-dsa-go/ring"
	"github.com/BackendStack21/ml-dsa-go/sample"
	"github.com/BackendStack21/ml-dsa-go/utils"
)

// GenerateKeyPair generates a signature key pair from fresh randomness.
func GenerateKeyPair(level mldsa.SecurityLevel) (*KeyPair, error) {
	params, err := core.GetParams(level)
	if err != nil {
		return nil, err
	}
	if err := core.ValidateParams(params); err != nil {
		return nil, err
	}

	seed, err := utils.SecureRandomBytes(mldsa.SeedSize)
	if err != nil {
		return nil, err
	}

	kp, err := GenerateKeyPairFromSeed(params, seed)
	utils.Zeroize(seed)
	return kp, err
}

// GenerateKeyPairFromSeed runs ML-DSA.KeyGen_internal on a 32-byte seed.
// The same seed and parameters always yield the same key pair.
func GenerateKeyPairFromSeed(params mldsa.Params, seed []byte) (*KeyPair, error) {
	if len(seed) != mldsa.SeedSize {
		return nil, ErrInvalidSeedSize
	}
	if err := core.ValidateParams(params); err != nil {
		return nil, err
	}

	// (rho, rho', K) = H(xi || k || l, 128)
	expanded := utils.Shake256Concat(2*mldsa.SeedSize+mldsa.RhoPrimeSize, seed, []byte{byte(params.K), byte(params.L)})
	defer utils.Zeroize(expanded)
	rho := expanded[:mldsa.SeedSize]
	rhoPrime := expanded[mldsa.SeedSize : mldsa.SeedSize+mldsa.RhoPrimeSize]
	key := expanded[mldsa.SeedSize+mldsa.RhoPrimeSize:]

	a := sample.ExpandA(rho, params.K, params.L)
	s1, s2 := sample.ExpandS(rhoPrime, params.Eta, params.K, params.L)

	t := a.MulVec(s1.NTT()).InvNTT().Add(s2)
	t1, t0 := ring.Power2RoundVec(t)
	t.Zeroize()

	pk := newPublicKey(params, rho, t1, a)

	dec := &encoding.SecretKey{Tr: pk.tr, S1: s1, S2: s2, T0: t0}
	copy(dec.Rho[:], rho)
	copy(dec.Key[:], key)
	sk := newSecretKey(params, dec, a)
	utils.Zeroize(dec.Key[:])

	return &KeyPair{PublicKey: pk, SecretKey: sk}, nil
}
