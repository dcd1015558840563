package encoding

import (
	"errors"
	"fmt"

	mldsa "github.com/BackendStack21/ml-dsa-go"
	"github.com/BackendStack21/ml-dsa-go/ring"
	"github.com/BackendStack21/ml-dsa-go/utils"
)

// ErrHintWeight indicates a hint vector with more than omega ones.
var ErrHintWeight = errors.New("hint weight exceeds omega")

// Signature holds the decoded components c~ || z || h.
type Signature struct {
	CTilde []byte
	Z      ring.Vec
	H      ring.Vec
}

// EncodeSignature serialises sig for params.
func EncodeSignature(params mldsa.Params, sig *Signature) ([]byte, error) {
	out := make([]byte, params.SignatureSize())
	copy(out, sig.CTilde[:params.CTildeSize()])
	off := params.CTildeSize()

	gamma1 := uint32(params.Gamma1())
	zBits := params.ZBits()
	for i := range sig.Z {
		BitPack(out[off:], &sig.Z[i], gamma1-1, gamma1, zBits)
		off += PackedSize(zBits)
	}
	if err := HintBitPack(out[off:], sig.H, params.Omega); err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeSignature parses an encoded signature for params. The hint must be
// in canonical form; z is not range checked here.
func DecodeSignature(params mldsa.Params, data []byte) (*Signature, error) {
	if err := utils.CheckExactLength(data, params.SignatureSize(), "signature"); err != nil {
		return nil, err
	}
	sig := &Signature{
		CTilde: append([]byte{}, data[:params.CTildeSize()]...),
		Z:      ring.NewVec(params.L),
	}
	off := params.CTildeSize()

	gamma1 := uint32(params.Gamma1())
	zBits := params.ZBits()
	for i := range sig.Z {
		p, err := BitUnpack(data[off:], gamma1-1, gamma1, zBits)
		if err != nil {
			return nil, fmt.Errorf("signature: %w", err)
		}
		sig.Z[i] = p
		off += PackedSize(zBits)
	}

	h, err := HintBitUnpack(data[off:], params.K, params.Omega)
	if err != nil {
		return nil, fmt.Errorf("signature: %w", err)
	}
	sig.H = h
	return sig, nil
}

// EncodeW1 packs the high-bits vector hashed into the commitment c~.
func EncodeW1(params mldsa.Params, w1 ring.Vec) []byte {
	bits := params.W1Bits()
	out := make([]byte, params.W1Size())
	off := 0
	for i := range w1 {
		SimpleBitPack(out[off:], &w1[i], bits)
		off += PackedSize(bits)
	}
	return out
}

// HintBitPack writes the positions of the ones in h into the first omega
// bytes of dst and the running count per row into the last len(h) bytes.
func HintBitPack(dst []byte, h ring.Vec, omega int) error {
	if len(dst) < omega+len(h) {
		return ErrInvalidLength
	}
	if h.CountOnes() > omega {
		return ErrHintWeight
	}
	for i := range dst[:omega+len(h)] {
		dst[i] = 0
	}
	index := 0
	for i := range h {
		for j, c := range h[i] {
			if c != 0 {
				dst[index] = byte(j)
				index++
			}
		}
		dst[omega+i] = byte(index)
	}
	return nil
}

// HintBitUnpack reverses HintBitPack. It accepts only the canonical
// encoding: row counts never decrease nor exceed omega, positions within a
// row are strictly increasing, and unused position bytes are zero.
func HintBitUnpack(src []byte, k, omega int) (ring.Vec, error) {
	if len(src) != omega+k {
		return nil, ErrInvalidLength
	}
	h := ring.NewVec(k)
	index := 0
	for i := 0; i < k; i++ {
		limit := int(src[omega+i])
		if limit < index || limit > omega {
			return nil, fmt.Errorf("%w: row %d count %d", ErrMalformedHint, i, limit)
		}
		first := index
		for index < limit {
			if index > first && src[index-1] >= src[index] {
				return nil, fmt.Errorf("%w: row %d positions not increasing", ErrMalformedHint, i)
			}
			h[i][src[index]] = 1
			index++
		}
	}
	for ; index < omega; index++ {
		if src[index] != 0 {
			return nil, fmt.Errorf("%w: nonzero padding", ErrMalformedHint)
		}
	}
	return h, nil
}
