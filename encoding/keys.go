package encoding

import (
	"fmt"

	mldsa "github.com/BackendStack21/ml-dsa-go"
	"github.com/BackendStack21/ml-dsa-go/ring"
	"github.com/BackendStack21/ml-dsa-go/utils"
)

const (
	t1Bits = 10
	t0Half = 1 << (mldsa.D - 1)
)

// PublicKey holds the decoded components rho || t1.
type PublicKey struct {
	Rho [mldsa.SeedSize]byte
	T1  ring.Vec
}

// SecretKey holds the decoded components rho || K || tr || s1 || s2 || t0.
type SecretKey struct {
	Rho [mldsa.SeedSize]byte
	Key [mldsa.SeedSize]byte
	Tr  [mldsa.TrSize]byte
	S1  ring.Vec
	S2  ring.Vec
	T0  ring.Vec
}

// Zeroize clears the secret components of sk.
func (sk *SecretKey) Zeroize() {
	utils.Zeroize(sk.Key[:])
	sk.S1.Zeroize()
	sk.S2.Zeroize()
	sk.T0.Zeroize()
}

// EncodePublicKey returns rho || SimpleBitPack(t1, 10).
func EncodePublicKey(params mldsa.Params, pk *PublicKey) []byte {
	out := make([]byte, params.PublicKeySize())
	copy(out, pk.Rho[:])
	off := mldsa.SeedSize
	for i := range pk.T1 {
		SimpleBitPack(out[off:], &pk.T1[i], t1Bits)
		off += PackedSize(t1Bits)
	}
	return out
}

// DecodePublicKey parses an encoded public key for params.
func DecodePublicKey(params mldsa.Params, data []byte) (*PublicKey, error) {
	if err := utils.CheckExactLength(data, params.PublicKeySize(), "public key"); err != nil {
		return nil, err
	}
	pk := &PublicKey{T1: ring.NewVec(params.K)}
	copy(pk.Rho[:], data)
	off := mldsa.SeedSize
	for i := range pk.T1 {
		pk.T1[i] = SimpleBitUnpack(data[off:], t1Bits)
		off += PackedSize(t1Bits)
	}
	return pk, nil
}

// EncodeSecretKey serialises sk for params.
func EncodeSecretKey(params mldsa.Params, sk *SecretKey) []byte {
	out := make([]byte, params.SecretKeySize())
	copy(out, sk.Rho[:])
	copy(out[mldsa.SeedSize:], sk.Key[:])
	copy(out[2*mldsa.SeedSize:], sk.Tr[:])
	off := 2*mldsa.SeedSize + mldsa.TrSize

	eta := uint32(params.Eta)
	etaBits := params.EtaBits()
	for _, v := range []ring.Vec{sk.S1, sk.S2} {
		for i := range v {
			BitPack(out[off:], &v[i], eta, eta, etaBits)
			off += PackedSize(etaBits)
		}
	}
	for i := range sk.T0 {
		BitPack(out[off:], &sk.T0[i], t0Half-1, t0Half, mldsa.D)
		off += PackedSize(mldsa.D)
	}
	return out
}

// DecodeSecretKey parses an encoded secret key for params. Secret
// coefficients outside [-eta, eta] are rejected.
func DecodeSecretKey(params mldsa.Params, data []byte) (*SecretKey, error) {
	if err := utils.CheckExactLength(data, params.SecretKeySize(), "secret key"); err != nil {
		return nil, err
	}
	sk := &SecretKey{
		S1: ring.NewVec(params.L),
		S2: ring.NewVec(params.K),
		T0: ring.NewVec(params.K),
	}
	copy(sk.Rho[:], data)
	copy(sk.Key[:], data[mldsa.SeedSize:])
	copy(sk.Tr[:], data[2*mldsa.SeedSize:])
	off := 2*mldsa.SeedSize + mldsa.TrSize

	eta := uint32(params.Eta)
	etaBits := params.EtaBits()
	for _, v := range []ring.Vec{sk.S1, sk.S2} {
		for i := range v {
			p, err := BitUnpack(data[off:], eta, eta, etaBits)
			if err != nil {
				sk.Zeroize()
				return nil, fmt.Errorf("secret key: %w", err)
			}
			v[i] = p
			off += PackedSize(etaBits)
		}
	}
	for i := range sk.T0 {
		p, err := BitUnpack(data[off:], t0Half-1, t0Half, mldsa.D)
		if err != nil {
			sk.Zeroize()
			return nil, fmt.Errorf("secret key: %w", err)
		}
		sk.T0[i] = p
		off += PackedSize(mldsa.D)
	}
	return sk, nil
}
