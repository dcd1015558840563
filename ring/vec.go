package ring

// Vec is a vector of ring elements in the coefficient domain.
type Vec []Poly

// NTTVec is a vector of ring elements in the NTT domain.
type NTTVec []NTTPoly

// Matrix is a k x l matrix of NTT-domain elements, indexed [row][column].
type Matrix [][]NTTPoly

// NewVec allocates a zero vector of length n.
func NewVec(n int) Vec {
	return make(Vec, n)
}

// NewMatrix allocates a zero k x l matrix.
func NewMatrix(k, l int) Matrix {
	m := make(Matrix, k)
	for i := range m {
		m[i] = make([]NTTPoly, l)
	}
	return m
}

// NTT transforms every element of v.
func (v Vec) NTT() NTTVec {
	out := make(NTTVec, len(v))
	for i := range v {
		out[i] = NTT(&v[i])
	}
	return out
}

// InvNTT transforms every element of v back to the coefficient domain.
func (v NTTVec) InvNTT() Vec {
	out := make(Vec, len(v))
	for i := range v {
		out[i] = InvNTT(&v[i])
	}
	return out
}

// Add returns v + u.
func (v Vec) Add(u Vec) Vec {
	out := make(Vec, len(v))
	for i := range v {
		out[i].Add(&v[i], &u[i])
	}
	return out
}

// Sub returns v - u.
func (v Vec) Sub(u Vec) Vec {
	out := make(Vec, len(v))
	for i := range v {
		out[i].Sub(&v[i], &u[i])
	}
	return out
}

// Neg returns -v.
func (v Vec) Neg() Vec {
	out := make(Vec, len(v))
	for i := range v {
		out[i].Neg(&v[i])
	}
	return out
}

// ShiftLeft returns v * 2^s.
func (v Vec) ShiftLeft(s uint) Vec {
	out := make(Vec, len(v))
	for i := range v {
		out[i].ShiftLeft(&v[i], s)
	}
	return out
}

// InfinityNorm returns the largest centered coefficient magnitude in v.
func (v Vec) InfinityNorm() uint32 {
	var m int32
	for i := range v {
		m = ctMax(m, int32(v[i].InfinityNorm()))
	}
	return uint32(m)
}

// CountOnes returns the number of nonzero coefficients, used as hint weight.
func (v Vec) CountOnes() int {
	n := 0
	for i := range v {
		for _, c := range v[i] {
			n += int((c | -c) >> 31)
		}
	}
	return n
}

// Equal reports whether v and u hold the same coefficients.
func (v Vec) Equal(u Vec) bool {
	if len(v) != len(u) {
		return false
	}
	for i := range v {
		if v[i] != u[i] {
			return false
		}
	}
	return true
}

// Zeroize clears every element of v.
func (v Vec) Zeroize() {
	for i := range v {
		v[i].Zeroize()
	}
}

// Sub returns v - u.
func (v NTTVec) Sub(u NTTVec) NTTVec {
	out := make(NTTVec, len(v))
	for i := range v {
		out[i].Sub(&v[i], &u[i])
	}
	return out
}

// ScalarMul returns c∘v[i] for every element.
func (v NTTVec) ScalarMul(c *NTTPoly) NTTVec {
	out := make(NTTVec, len(v))
	for i := range v {
		out[i].MulNTT(c, &v[i])
	}
	return out
}

// Zeroize clears every element of v.
func (v NTTVec) Zeroize() {
	for i := range v {
		v[i].Zeroize()
	}
}

// MulVec returns the matrix-vector product m∘v, with len(v) == columns.
func (m Matrix) MulVec(v NTTVec) NTTVec {
	vMont := make(NTTVec, len(v))
	for j := range v {
		for i := range v[j] {
			vMont[j][i] = toMont(v[j][i])
		}
	}
	out := make(NTTVec, len(m))
	for i, row := range m {
		for j := range row {
			out[i].mulAcc(&row[j], &vMont[j])
		}
	}
	vMont.Zeroize()
	return out
}
