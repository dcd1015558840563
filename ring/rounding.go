package ring

import mldsa "github.com/BackendStack21/ml-dsa-go"

// Power2Round splits r into r1*2^d + r0 with r0 in (-2^(d-1), 2^(d-1)].
func Power2Round(r uint32) (r1 uint32, r0 int32) {
	r1 = (r + (1 << (mldsa.D - 1)) - 1) >> mldsa.D
	r0 = int32(r) - int32(r1<<mldsa.D)
	return r1, r0
}

// Decompose splits r into r1*2*gamma2 + r0 with r0 in (-gamma2, gamma2],
// folding the top bucket r - r0 = q - 1 into r1 = 0. gamma2 must be
// (q-1)/88 or (q-1)/32.
func Decompose(r uint32, gamma2 uint32) (r1 uint32, r0 int32) {
	a := int32(r)
	a1 := (a + 127) >> 7
	if gamma2 == (Q-1)/32 {
		a1 = (a1*1025 + (1 << 21)) >> 22
		a1 &= 15
	} else {
		a1 = (a1*11275 + (1 << 23)) >> 24
		a1 ^= ((43 - a1) >> 31) & a1
	}
	a0 := a - a1*2*int32(gamma2)
	a0 -= (((Q-1)/2 - a0) >> 31) & Q
	return uint32(a1), a0
}

// HighBits returns r1 from Decompose.
func HighBits(r, gamma2 uint32) uint32 {
	r1, _ := Decompose(r, gamma2)
	return r1
}

// LowBits returns r0 from Decompose.
func LowBits(r, gamma2 uint32) int32 {
	_, r0 := Decompose(r, gamma2)
	return r0
}

// MakeHint returns 1 when adding z to r changes its high bits.
func MakeHint(z, r, gamma2 uint32) uint32 {
	r1 := HighBits(r, gamma2)
	v1 := HighBits(fieldAdd(r, z), gamma2)
	x := r1 ^ v1
	return (x | -x) >> 31
}

// UseHint recovers the high bits of r + z from r and the hint bit h.
func UseHint(h, r, gamma2 uint32) uint32 {
	m := (Q - 1) / (2 * gamma2)
	r1, r0 := Decompose(r, gamma2)
	if h == 0 {
		return r1
	}
	if r0 > 0 {
		return (r1 + 1) % m
	}
	return (r1 + m - 1) % m
}

// Power2RoundVec applies Power2Round coefficient-wise; t0 is returned mod q.
func Power2RoundVec(t Vec) (t1, t0 Vec) {
	t1 = NewVec(len(t))
	t0 = NewVec(len(t))
	for i := range t {
		for j, c := range t[i] {
			hi, lo := Power2Round(c)
			t1[i][j] = hi
			t0[i][j] = FromInt32(lo)
		}
	}
	return t1, t0
}

// HighBitsVec applies HighBits coefficient-wise.
func HighBitsVec(w Vec, gamma2 uint32) Vec {
	out := NewVec(len(w))
	for i := range w {
		for j, c := range w[i] {
			out[i][j] = HighBits(c, gamma2)
		}
	}
	return out
}

// LowBitsVec applies LowBits coefficient-wise; results are returned mod q.
func LowBitsVec(w Vec, gamma2 uint32) Vec {
	out := NewVec(len(w))
	for i := range w {
		for j, c := range w[i] {
			out[i][j] = FromInt32(LowBits(c, gamma2))
		}
	}
	return out
}

// MakeHintVec applies MakeHint coefficient-wise and returns the hint weight.
func MakeHintVec(z, r Vec, gamma2 uint32) (Vec, int) {
	h := NewVec(len(r))
	for i := range r {
		for j := range r[i] {
			h[i][j] = MakeHint(z[i][j], r[i][j], gamma2)
		}
	}
	return h, h.CountOnes()
}

// UseHintVec applies UseHint coefficient-wise.
func UseHintVec(h, r Vec, gamma2 uint32) Vec {
	out := NewVec(len(r))
	for i := range r {
		for j := range r[i] {
			out[i][j] = UseHint(h[i][j], r[i][j], gamma2)
		}
	}
	return out
}
