package ring

import "math/bits"

// zeta is the primitive 512-th root of unity mod q used by FIPS 204.
const zeta = 1753

// invNTTScale is 256^-1 in Montgomery form, 2^24 mod q.
const invNTTScale = 16382

// zetas[k] = zeta^bitrev8(k) * 2^32 mod q.
var zetas [N]uint32

func init() {
	var pow [N]uint64
	z := uint64(1)
	for i := range pow {
		pow[i] = z
		z = z * zeta % Q
	}
	for k := range zetas {
		zetas[k] = uint32((pow[bits.Reverse8(uint8(k))] << 32) % Q)
	}
}

// NTT returns the number-theoretic transform of p.
func NTT(p *Poly) NTTPoly {
	w := NTTPoly(*p)
	m := 0
	for length := 128; length >= 1; length >>= 1 {
		for start := 0; start < N; start += 2 * length {
			m++
			z := zetas[m]
			for j := start; j < start+length; j++ {
				t := fieldMul(z, w[j+length])
				w[j+length] = fieldSub(w[j], t)
				w[j] = fieldAdd(w[j], t)
			}
		}
	}
	return w
}

// InvNTT returns the inverse transform of w; InvNTT(NTT(p)) == p.
func InvNTT(w *NTTPoly) Poly {
	p := Poly(*w)
	m := N
	for length := 1; length < N; length <<= 1 {
		for start := 0; start < N; start += 2 * length {
			m--
			z := Q - zetas[m]
			for j := start; j < start+length; j++ {
				t := p[j]
				p[j] = fieldAdd(t, p[j+length])
				p[j+length] = fieldMul(z, fieldSub(t, p[j+length]))
			}
		}
	}
	for i := range p {
		p[i] = fieldMul(p[i], invNTTScale)
	}
	return p
}
