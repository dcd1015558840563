// Package encoding implements the fixed-width byte encodings of ML-DSA keys,
// signatures and commitments.
package encoding

import (
	"errors"
	"fmt"

	"github.com/BackendStack21/ml-dsa-go/ring"
	"github.com/BackendStack21/ml-dsa-go/utils"
)

var (
	// ErrInvalidLength indicates an encoded value of the wrong size.
	ErrInvalidLength = utils.ErrInvalidLength

	// ErrCoefficientRange indicates a packed field outside its legal range.
	ErrCoefficientRange = errors.New("coefficient out of range")

	// ErrMalformedHint indicates a hint encoding that is not canonical.
	ErrMalformedHint = errors.New("malformed hint encoding")
)

// PackedSize is the byte length of one polynomial packed at width bits.
func PackedSize(bits int) int {
	return ring.N * bits / 8
}

func packBits(dst []byte, vals *[ring.N]uint32, bits int) {
	var acc uint64
	n, o := 0, 0
	for _, v := range vals {
		acc |= uint64(v) << n
		n += bits
		for n >= 8 {
			dst[o] = byte(acc)
			o++
			acc >>= 8
			n -= 8
		}
	}
}

func unpackBits(src []byte, bits int) [ring.N]uint32 {
	var out [ring.N]uint32
	mask := uint64(1)<<bits - 1
	var acc uint64
	n, o := 0, 0
	for i := range out {
		for n < bits {
			acc |= uint64(src[o]) << n
			o++
			n += 8
		}
		out[i] = uint32(acc & mask)
		acc >>= bits
		n -= bits
	}
	return out
}

// SimpleBitPack writes p, whose coefficients lie in [0, 2^bits), into dst.
func SimpleBitPack(dst []byte, p *ring.Poly, bits int) {
	packBits(dst[:PackedSize(bits)], (*[ring.N]uint32)(p), bits)
}

// SimpleBitUnpack reads a polynomial packed with SimpleBitPack.
func SimpleBitUnpack(src []byte, bits int) ring.Poly {
	return ring.Poly(unpackBits(src[:PackedSize(bits)], bits))
}

// BitPack writes p, whose centered coefficients lie in [-a, b], storing b - x
// in bits-wide fields.
func BitPack(dst []byte, p *ring.Poly, a, b uint32, bits int) {
	var vals [ring.N]uint32
	for i, c := range p {
		vals[i] = uint32(int32(b) - ring.Centered(c))
	}
	packBits(dst[:PackedSize(bits)], &vals, bits)
	utils.ZeroizeUint32(vals[:])
}

// BitUnpack reverses BitPack and rejects fields above a + b.
func BitUnpack(src []byte, a, b uint32, bits int) (ring.Poly, error) {
	vals := unpackBits(src[:PackedSize(bits)], bits)
	defer utils.ZeroizeUint32(vals[:])

	var p ring.Poly
	bad := uint32(0)
	for i, v := range vals {
		bad |= (a + b - v) >> 31
		p[i] = ring.FromInt32(int32(b) - int32(v))
	}
	if bad != 0 {
		p.Zeroize()
		return ring.Poly{}, fmt.Errorf("%w: field exceeds %d", ErrCoefficientRange, a+b)
	}
	return p, nil
}
