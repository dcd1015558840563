// Package sample expands seeds into ring elements with SHAKE128 and SHAKE256.
// Every function here is a pure function of its inputs.
package sample

import (
	"encoding/binary"

	"github.com/BackendStack21/ml-dsa-go/encoding"
	"github.com/BackendStack21/ml-dsa-go/ring"
	"github.com/BackendStack21/ml-dsa-go/utils"
)

const (
	shake128Rate = 168
	shake256Rate = 136
)

// RejNTTPoly samples a uniform element of T_q from SHAKE128(rho || s || r),
// taking 23-bit little-endian candidates and rejecting those >= q.
func RejNTTPoly(rho []byte, s, r byte) ring.NTTPoly {
	h := utils.AcquireShake128(rho, []byte{s, r})
	defer utils.ReleaseShake128(h)

	var a ring.NTTPoly
	var buf [shake128Rate]byte
	j := 0
	for j < ring.N {
		_, _ = h.Read(buf[:])
		for i := 0; i < len(buf) && j < ring.N; i += 3 {
			v := uint32(buf[i]) | uint32(buf[i+1])<<8 | uint32(buf[i+2]&0x7f)<<16
			if v < ring.Q {
				a[j] = v
				j++
			}
		}
	}
	return a
}

// RejBoundedPoly samples a polynomial with coefficients in [-eta, eta] from
// SHAKE256(rho' || nonce), two candidate nibbles per byte, low nibble first.
func RejBoundedPoly(rhoPrime []byte, nonce uint16, eta int) ring.Poly {
	var n [2]byte
	binary.LittleEndian.PutUint16(n[:], nonce)
	h := utils.AcquireShake256(rhoPrime, n[:])
	defer utils.ReleaseShake256(h)

	var a ring.Poly
	var buf [shake256Rate]byte
	j := 0
	for j < ring.N {
		_, _ = h.Read(buf[:])
		for i := 0; i < len(buf) && j < ring.N; i++ {
			for _, z := range [2]uint32{uint32(buf[i] & 0x0f), uint32(buf[i] >> 4)} {
				if j == ring.N {
					break
				}
				if c, ok := coeffFromHalfByte(z, eta); ok {
					a[j] = c
					j++
				}
			}
		}
	}
	utils.Zeroize(buf[:])
	return a
}

func coeffFromHalfByte(z uint32, eta int) (uint32, bool) {
	if eta == 2 {
		if z >= 15 {
			return 0, false
		}
		mod5 := z - 5*((205*z)>>10)
		return ring.FromInt32(2 - int32(mod5)), true
	}
	if z >= 9 {
		return 0, false
	}
	return ring.FromInt32(4 - int32(z)), true
}

// ExpandMask derives the masking vector y for attempt counter kappa. Each of
// the l coefficients polynomials is unpacked from SHAKE256(rho'' || kappa+r)
// as gamma1 - x.
func ExpandMask(rhoPP []byte, kappa, l, gamma1Bits int) ring.Vec {
	bits := gamma1Bits + 1
	gamma1 := uint32(1) << gamma1Bits
	buf := make([]byte, encoding.PackedSize(bits))
	defer utils.Zeroize(buf)

	y := ring.NewVec(l)
	var n [2]byte
	for r := range y {
		binary.LittleEndian.PutUint16(n[:], uint16(kappa+r))
		utils.Shake256Into(buf, rhoPP, n[:])
		// Every bits-wide field lies in [0, 2*gamma1 - 1], so unpacking cannot fail.
		y[r], _ = encoding.BitUnpack(buf, gamma1-1, gamma1, bits)
	}
	return y
}

// SampleInBall derives the challenge polynomial c with exactly tau
// coefficients in {-1, 1} from the commitment hash cTilde.
func SampleInBall(cTilde []byte, tau int) ring.Poly {
	h := utils.AcquireShake256(cTilde)
	defer utils.ReleaseShake256(h)

	var s [8]byte
	_, _ = h.Read(s[:])
	signs := binary.LittleEndian.Uint64(s[:])

	var c ring.Poly
	var b [1]byte
	for i := ring.N - tau; i < ring.N; i++ {
		for {
			_, _ = h.Read(b[:])
			if int(b[0]) <= i {
				break
			}
		}
		j := b[0]
		c[i] = c[j]
		c[j] = 1 + (ring.Q-2)&uint32(-(signs & 1))
		signs >>= 1
	}
	return c
}

// ExpandA expands rho into the k x l matrix A-hat, entry (r, s) drawn from
// RejNTTPoly(rho, s, r).
func ExpandA(rho []byte, k, l int) ring.Matrix {
	a := ring.NewMatrix(k, l)
	for r := range a {
		for s := range a[r] {
			a[r][s] = RejNTTPoly(rho, byte(s), byte(r))
		}
	}
	return a
}

// ExpandS samples the secret vectors s1 (nonces 0..l-1) and s2 (nonces
// l..l+k-1) from rho'.
func ExpandS(rhoPrime []byte, eta, k, l int) (s1, s2 ring.Vec) {
	s1 = ring.NewVec(l)
	s2 = ring.NewVec(k)
	for r := range s1 {
		s1[r] = RejBoundedPoly(rhoPrime, uint16(r), eta)
	}
	for r := range s2 {
		s2[r] = RejBoundedPoly(rhoPrime, uint16(r+l), eta)
	}
	return s1, s2
}
