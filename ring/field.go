// Package ring implements arithmetic in R_q = Z_q[X]/(X^256 + 1) for q = 8380417.
//
// Coefficients are stored as canonical representatives in [0, q). Products
// are computed with Montgomery reduction (R = 2^32) and every reduction ends
// in a branch-free conditional subtraction, so the running time of the field
// operations does not depend on the values involved.
package ring

import mldsa "github.com/BackendStack21/ml-dsa-go"

const (
	// N is the number of coefficients of a ring element.
	N = mldsa.N
	// Q is the field modulus.
	Q = mldsa.Q

	qNegInv = 4236238847 // -q^-1 mod 2^32
	montR   = 4193792    // 2^32 mod q
	montR2  = 2365951    // 2^64 mod q
)

// reduceOnce maps a value in [0, 2q) to [0, q).
func reduceOnce(a uint32) uint32 {
	x := a - Q
	return x + (Q & -(x >> 31))
}

func fieldAdd(a, b uint32) uint32 {
	return reduceOnce(a + b)
}

func fieldSub(a, b uint32) uint32 {
	return reduceOnce(a - b + Q)
}

// montReduce returns a * 2^-32 mod q for a < q * 2^32.
func montReduce(a uint64) uint32 {
	t := uint32(a) * qNegInv
	return reduceOnce(uint32((a + uint64(t)*Q) >> 32))
}

// fieldMul returns a * b * 2^-32 mod q. One operand is expected in Montgomery form.
func fieldMul(a, b uint32) uint32 {
	return montReduce(uint64(a) * uint64(b))
}

// toMont returns a * 2^32 mod q.
func toMont(a uint32) uint32 {
	return fieldMul(a, montR2)
}

// FromInt32 maps a signed value in (-q, q) to its canonical representative.
func FromInt32(x int32) uint32 {
	return uint32(x) + (Q & uint32(x>>31))
}

// Centered returns the representative of x in [-(q-1)/2, (q-1)/2].
func Centered(x uint32) int32 {
	v := int32(x)
	mask := ((Q-1)/2 - v) >> 31
	return v - (Q & mask)
}

// abs is branch-free |x| for x > math.MinInt32.
func abs(x int32) int32 {
	m := x >> 31
	return (x ^ m) - m
}

// ctMax is a branch-free max for non-negative values.
func ctMax(a, b int32) int32 {
	m := (a - b) >> 31
	return a ^ ((a ^ b) & m)
}
