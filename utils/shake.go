package utils

import (
	"sync"

	"golang.org/x/crypto/sha3"
)

var shake128Pool = sync.Pool{
	New: func() interface{} {
		return sha3.NewShake128()
	},
}

var shake256Pool = sync.Pool{
	New: func() interface{} {
		return sha3.NewShake256()
	},
}

// AcquireShake128 returns a pooled SHAKE128 state that has absorbed the
// concatenation of inputs. Hand it back with ReleaseShake128 once drained.
func AcquireShake128(inputs ...[]byte) sha3.ShakeHash {
	h := shake128Pool.Get().(sha3.ShakeHash)
	for _, in := range inputs {
		h.Write(in)
	}
	return h
}

// ReleaseShake128 resets h and returns it to the pool.
func ReleaseShake128(h sha3.ShakeHash) {
	h.Reset()
	shake128Pool.Put(h)
}

// AcquireShake256 returns a pooled SHAKE256 state that has absorbed the
// concatenation of inputs. Hand it back with ReleaseShake256 once drained.
func AcquireShake256(inputs ...[]byte) sha3.ShakeHash {
	h := shake256Pool.Get().(sha3.ShakeHash)
	for _, in := range inputs {
		h.Write(in)
	}
	return h
}

// ReleaseShake256 resets h and returns it to the pool.
func ReleaseShake256(h sha3.ShakeHash) {
	h.Reset()
	shake256Pool.Put(h)
}

// Shake256Concat computes SHAKE256 over the plain concatenation of inputs.
// No length framing is added; callers own the encoding of their inputs.
func Shake256Concat(outputLen int, inputs ...[]byte) []byte {
	output := make([]byte, outputLen)
	Shake256Into(output, inputs...)
	return output
}

// Shake256Into computes SHAKE256 over inputs and fills output.
func Shake256Into(output []byte, inputs ...[]byte) {
	h := AcquireShake256(inputs...)
	defer ReleaseShake256(h)
	_, _ = h.Read(output)
}
