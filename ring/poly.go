package ring

import "github.com/BackendStack21/ml-dsa-go/utils"

// Poly is a ring element in the coefficient domain.
type Poly [N]uint32

// NTTPoly is a ring element in the NTT domain. Keeping it a distinct type
// means a Poly cannot be multiplied pointwise without going through NTT.
type NTTPoly [N]uint32

func addInto(out, a, b *[N]uint32) {
	for i := range out {
		out[i] = fieldAdd(a[i], b[i])
	}
}

func subInto(out, a, b *[N]uint32) {
	for i := range out {
		out[i] = fieldSub(a[i], b[i])
	}
}

// Add sets p = a + b and returns p.
func (p *Poly) Add(a, b *Poly) *Poly {
	addInto((*[N]uint32)(p), (*[N]uint32)(a), (*[N]uint32)(b))
	return p
}

// Sub sets p = a - b and returns p.
func (p *Poly) Sub(a, b *Poly) *Poly {
	subInto((*[N]uint32)(p), (*[N]uint32)(a), (*[N]uint32)(b))
	return p
}

// Neg sets p = -a and returns p.
func (p *Poly) Neg(a *Poly) *Poly {
	for i := range p {
		p[i] = fieldSub(0, a[i])
	}
	return p
}

// ShiftLeft sets p = a * 2^s. Coefficients of a must satisfy a[i] << s < q.
func (p *Poly) ShiftLeft(a *Poly, s uint) *Poly {
	for i := range p {
		p[i] = reduceOnce(a[i] << s)
	}
	return p
}

// InfinityNorm returns max |p[i]| over centered representatives. Every
// coefficient is visited regardless of the values seen so far.
func (p *Poly) InfinityNorm() uint32 {
	var m int32
	for _, c := range p {
		m = ctMax(m, abs(Centered(c)))
	}
	return uint32(m)
}

// Zeroize clears p.
func (p *Poly) Zeroize() {
	utils.ZeroizeUint32(p[:])
}

// Add sets w = a + b and returns w.
func (w *NTTPoly) Add(a, b *NTTPoly) *NTTPoly {
	addInto((*[N]uint32)(w), (*[N]uint32)(a), (*[N]uint32)(b))
	return w
}

// Sub sets w = a - b and returns w.
func (w *NTTPoly) Sub(a, b *NTTPoly) *NTTPoly {
	subInto((*[N]uint32)(w), (*[N]uint32)(a), (*[N]uint32)(b))
	return w
}

// MulNTT sets w to the pointwise product a∘b and returns w.
func (w *NTTPoly) MulNTT(a, b *NTTPoly) *NTTPoly {
	for i := range w {
		w[i] = fieldMul(fieldMul(a[i], b[i]), montR2)
	}
	return w
}

// mulAcc adds a∘b*2^-32 into w. With bMont in Montgomery form the sum is exact.
func (w *NTTPoly) mulAcc(a, bMont *NTTPoly) {
	for i := range w {
		w[i] = fieldAdd(w[i], fieldMul(a[i], bMont[i]))
	}
}

// Zeroize clears w.
func (w *NTTPoly) Zeroize() {
	utils.ZeroizeUint32(w[:])
}
