package sign

import (
	mldsa "github.com/BackendStack21/ml-dsa-go"
	"github.com/BackendStack21/ml-dsa-go/encoding"
	"github.com/BackendStack21/ml-dsa-go/ring"
	"github.com/BackendStack21/ml-dsa-go/sample"
	"github.com/BackendStack21/ml-dsa-go/utils"
)

// PublicKey is an ML-DSA verification key. It is immutable after
// construction and safe for concurrent use.
type PublicKey struct {
	params  mldsa.Params
	rho     [mldsa.SeedSize]byte
	t1      ring.Vec
	tr      [mldsa.TrSize]byte
	encoded []byte

	a     ring.Matrix // A-hat
	t1Hat ring.NTTVec // NTT(t1 * 2^d)
}

// SecretKey is an ML-DSA signing key. Call Destroy once it is no longer
// needed to scrub the secret vectors from memory.
type SecretKey struct {
	params mldsa.Params
	rho    [mldsa.SeedSize]byte
	key    [mldsa.SeedSize]byte
	tr     [mldsa.TrSize]byte
	s1     ring.Vec
	s2     ring.Vec
	t0     ring.Vec

	a     ring.Matrix
	s1Hat ring.NTTVec
	s2Hat ring.NTTVec
	t0Hat ring.NTTVec
}

// KeyPair contains both public and secret keys.
type KeyPair struct {
	PublicKey *PublicKey
	SecretKey *SecretKey
}

func newPublicKey(params mldsa.Params, rho []byte, t1 ring.Vec, a ring.Matrix) *PublicKey {
	pk := &PublicKey{params: params, t1: t1}
	copy(pk.rho[:], rho)
	pk.encoded = encoding.EncodePublicKey(params, &encoding.PublicKey{Rho: pk.rho, T1: t1})
	utils.Shake256Into(pk.tr[:], pk.encoded)
	if a == nil {
		a = sample.ExpandA(pk.rho[:], params.K, params.L)
	}
	pk.a = a
	pk.t1Hat = t1.ShiftLeft(mldsa.D).NTT()
	return pk
}

func newSecretKey(params mldsa.Params, dec *encoding.SecretKey, a ring.Matrix) *SecretKey {
	sk := &SecretKey{
		params: params,
		rho:    dec.Rho,
		key:    dec.Key,
		tr:     dec.Tr,
		s1:     dec.S1,
		s2:     dec.S2,
		t0:     dec.T0,
	}
	if a == nil {
		a = sample.ExpandA(sk.rho[:], params.K, params.L)
	}
	sk.a = a
	sk.s1Hat = sk.s1.NTT()
	sk.s2Hat = sk.s2.NTT()
	sk.t0Hat = sk.t0.NTT()
	return sk
}

// Params returns the parameter set of the key.
func (pk *PublicKey) Params() mldsa.Params {
	return pk.params
}

// Bytes returns the encoded public key rho || t1.
func (pk *PublicKey) Bytes() []byte {
	return append([]byte{}, pk.encoded...)
}

// Equal reports whether pk and other encode the same key.
func (pk *PublicKey) Equal(other *PublicKey) bool {
	return other != nil && pk.params == other.params && utils.ConstantTimeEqual(pk.encoded, other.encoded)
}

// Params returns the parameter set of the key.
func (sk *SecretKey) Params() mldsa.Params {
	return sk.params
}

// Bytes returns the encoded secret key.
func (sk *SecretKey) Bytes() []byte {
	return encoding.EncodeSecretKey(sk.params, sk.decoded())
}

func (sk *SecretKey) decoded() *encoding.SecretKey {
	return &encoding.SecretKey{
		Rho: sk.rho,
		Key: sk.key,
		Tr:  sk.tr,
		S1:  sk.s1,
		S2:  sk.s2,
		T0:  sk.t0,
	}
}

// Public recomputes the verification key: t = A*s1 + s2 rounded to t1.
func (sk *SecretKey) Public() *PublicKey {
	t := sk.a.MulVec(sk.s1Hat).InvNTT().Add(sk.s2)
	t1, t0 := ring.Power2RoundVec(t)
	t.Zeroize()
	t0.Zeroize()
	return newPublicKey(sk.params, sk.rho[:], t1, sk.a)
}

// Destroy overwrites K, s1, s2, t0 and their NTT forms with zeros. The key
// must not be used afterwards.
func (sk *SecretKey) Destroy() {
	utils.Zeroize(sk.key[:])
	sk.s1.Zeroize()
	sk.s2.Zeroize()
	sk.t0.Zeroize()
	sk.s1Hat.Zeroize()
	sk.s2Hat.Zeroize()
	sk.t0Hat.Zeroize()
}

// Destroy scrubs the secret key of the pair.
func (kp *KeyPair) Destroy() {
	if kp.SecretKey != nil {
		kp.SecretKey.Destroy()
	}
}
