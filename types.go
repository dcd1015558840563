package mldsa

import "math/bits"

// SecurityLevel names an ML-DSA parameter set.
type SecurityLevel string

const (
	// MLDSA44 targets NIST security category 2.
	MLDSA44 SecurityLevel = "ML-DSA-44"
	// MLDSA65 targets NIST security category 3.
	MLDSA65 SecurityLevel = "ML-DSA-65"
	// MLDSA87 targets NIST security category 5.
	MLDSA87 SecurityLevel = "ML-DSA-87"
	// Aliases with underscore for convenience
	ML_DSA_44 SecurityLevel = MLDSA44
	ML_DSA_65 SecurityLevel = MLDSA65
	ML_DSA_87 SecurityLevel = MLDSA87
)

// =============================================================================
// Scheme Constants
// =============================================================================

const (
	// N is the degree of the ring Z_q[X]/(X^N + 1).
	N = 256
	// Q is the prime modulus 2^23 - 2^13 + 1.
	Q = 8380417
	// D is the number of bits dropped from t by Power2Round.
	D = 13

	SeedSize       = 32 // xi, rho, K and rnd
	RhoPrimeSize   = 64
	TrSize         = 64
	MuSize         = 64
	MaxContextSize = 255
)

// =============================================================================
// Parameter Types
// =============================================================================

// Params contains the complete parameter set for a security level.
type Params struct {
	Level      SecurityLevel `json:"level"`
	K          int           `json:"k"`           // Rows of A
	L          int           `json:"l"`           // Columns of A
	Eta        int           `json:"eta"`         // Secret coefficient bound
	Tau        int           `json:"tau"`         // Number of +-1 entries in c
	Beta       int           `json:"beta"`        // tau * eta
	Gamma1Bits int           `json:"gamma1_bits"` // log2 of the mask range gamma1
	Gamma2     int           `json:"gamma2"`      // Low-order rounding range
	Omega      int           `json:"omega"`       // Maximum number of hint ones
	Lambda     int           `json:"lambda"`      // Collision strength of c~ in bits
}

// Gamma1 returns the coefficient range of the masking vector y.
func (p Params) Gamma1() int {
	return 1 << p.Gamma1Bits
}

// EtaBits is the packed width of a secret coefficient, bitlen(2*eta).
func (p Params) EtaBits() int {
	return bits.Len(uint(2 * p.Eta))
}

// ZBits is the packed width of a response coefficient, 1 + bitlen(gamma1-1).
func (p Params) ZBits() int {
	return 1 + bits.Len(uint(p.Gamma1()-1))
}

// W1Bits is the packed width of a high-bits coefficient.
func (p Params) W1Bits() int {
	return bits.Len(uint((Q-1)/(2*p.Gamma2) - 1))
}

// CTildeSize is the byte length of the commitment hash c~.
func (p Params) CTildeSize() int {
	return p.Lambda / 4
}

// PublicKeySize is the encoded length of rho || t1.
func (p Params) PublicKeySize() int {
	return SeedSize + p.K*N*(bits.Len(Q-1)-D)/8
}

// SecretKeySize is the encoded length of rho || K || tr || s1 || s2 || t0.
func (p Params) SecretKeySize() int {
	return 2*SeedSize + TrSize + (p.K+p.L)*N*p.EtaBits()/8 + p.K*N*D/8
}

// SignatureSize is the encoded length of c~ || z || h.
func (p Params) SignatureSize() int {
	return p.CTildeSize() + p.L*N*p.ZBits()/8 + p.Omega + p.K
}

// W1Size is the length of the packed commitment w1 hashed into c~.
func (p Params) W1Size() int {
	return p.K * N * p.W1Bits() / 8
}
