package sign

import (
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"strings"

	"golang.org/x/crypto/sha3"

	mldsa "github.com/BackendStack21/ml-dsa-go"
	"github.com/BackendStack21/ml-dsa-go/utils"
)

// PreHash selects the hash applied to the message in HashML-DSA.
// PreHashNone selects pure ML-DSA.
type PreHash int

const (
	PreHashNone PreHash = iota
	PreHashSHA224
	PreHashSHA256
	PreHashSHA384
	PreHashSHA512
	PreHashSHA512_224
	PreHashSHA512_256
	PreHashSHA3_224
	PreHashSHA3_256
	PreHashSHA3_384
	PreHashSHA3_512
	PreHashSHAKE128
	PreHashSHAKE256
)

// Domain separator bytes prepended to the context in M'.
const (
	domainPure    byte = 0
	domainPreHash byte = 1
)

type preHashInfo struct {
	name    string
	// Final arc of the DER OID 2.16.840.1.101.3.4.2.x.
	arc     byte
	size    int
	newHash func() hash.Hash
	xof     func() sha3.ShakeHash
}

var preHashes = map[PreHash]preHashInfo{
	PreHashSHA224:     {name: "SHA2-224", arc: 0x04, size: 28, newHash: sha256.New224},
	PreHashSHA256:     {name: "SHA2-256", arc: 0x01, size: 32, newHash: sha256.New},
	PreHashSHA384:     {name: "SHA2-384", arc: 0x02, size: 48, newHash: sha512.New384},
	PreHashSHA512:     {name: "SHA2-512", arc: 0x03, size: 64, newHash: sha512.New},
	PreHashSHA512_224: {name: "SHA2-512/224", arc: 0x05, size: 28, newHash: sha512.New512_224},
	PreHashSHA512_256: {name: "SHA2-512/256", arc: 0x06, size: 32, newHash: sha512.New512_256},
	PreHashSHA3_224:   {name: "SHA3-224", arc: 0x07, size: 28, newHash: sha3.New224},
	PreHashSHA3_256:   {name: "SHA3-256", arc: 0x08, size: 32, newHash: sha3.New256},
	PreHashSHA3_384:   {name: "SHA3-384", arc: 0x09, size: 48, newHash: sha3.New384},
	PreHashSHA3_512:   {name: "SHA3-512", arc: 0x0A, size: 64, newHash: sha3.New512},
	PreHashSHAKE128:   {name: "SHAKE-128", arc: 0x0B, size: 32, xof: sha3.NewShake128},
	PreHashSHAKE256:   {name: "SHAKE-256", arc: 0x0C, size: 64, xof: sha3.NewShake256},
}

// ParsePreHash resolves names such as "SHA2-256", "SHA3-512" or "SHAKE-128".
// "none" and the empty string select pure ML-DSA.
func ParsePreHash(name string) (PreHash, error) {
	norm := strings.ToUpper(strings.NewReplacer("-", "", "_", "").Replace(name))
	if norm == "" || norm == "NONE" || norm == "PURE" {
		return PreHashNone, nil
	}
	for ph, info := range preHashes {
		want := strings.ReplaceAll(info.name, "-", "")
		if norm == want || norm == strings.Replace(want, "SHA2", "SHA", 1) {
			return ph, nil
		}
	}
	return PreHashNone, fmt.Errorf("%w: %s", ErrUnsupportedPreHash, name)
}

func (ph PreHash) String() string {
	if ph == PreHashNone {
		return "none"
	}
	if info, ok := preHashes[ph]; ok {
		return info.name
	}
	return fmt.Sprintf("PreHash(%d)", int(ph))
}

// Size returns the digest length fed into HashML-DSA, or 0 for PreHashNone.
func (ph PreHash) Size() int {
	return preHashes[ph].size
}

// OID returns the DER encoding of the algorithm identifier.
func (ph PreHash) OID() []byte {
	info, ok := preHashes[ph]
	if !ok {
		return nil
	}
	return []byte{0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, info.arc}
}

// Digest hashes message with ph.
func (ph PreHash) Digest(message []byte) ([]byte, error) {
	info, ok := preHashes[ph]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPreHash, ph)
	}
	if info.xof != nil {
		h := info.xof()
		h.Write(message)
		out := make([]byte, info.size)
		_, _ = h.Read(out)
		return out, nil
	}
	h := info.newHash()
	h.Write(message)
	return h.Sum(nil), nil
}

// computeMu returns mu = H(tr || parts..., 64).
func computeMu(tr []byte, parts ...[]byte) [mldsa.MuSize]byte {
	var mu [mldsa.MuSize]byte
	utils.Shake256Into(mu[:], append([][]byte{tr}, parts...)...)
	return mu
}

// pureMu formats M' = 0 || len(ctx) || ctx || M.
func pureMu(tr, ctx, message []byte) ([mldsa.MuSize]byte, error) {
	if len(ctx) > mldsa.MaxContextSize {
		return [mldsa.MuSize]byte{}, ErrContextTooLong
	}
	return computeMu(tr, []byte{domainPure, byte(len(ctx))}, ctx, message), nil
}

// preHashMu formats M' = 1 || len(ctx) || ctx || OID || PH(M) from a digest.
func preHashMu(tr, ctx []byte, ph PreHash, digest []byte) ([mldsa.MuSize]byte, error) {
	if len(ctx) > mldsa.MaxContextSize {
		return [mldsa.MuSize]byte{}, ErrContextTooLong
	}
	if _, ok := preHashes[ph]; !ok {
		return [mldsa.MuSize]byte{}, fmt.Errorf("%w: %s", ErrUnsupportedPreHash, ph)
	}
	if len(digest) != ph.Size() {
		return [mldsa.MuSize]byte{}, fmt.Errorf("%w: %s wants %d bytes, got %d", ErrInvalidDigestSize, ph, ph.Size(), len(digest))
	}
	return computeMu(tr, []byte{domainPreHash, byte(len(ctx))}, ctx, ph.OID(), digest), nil
}

// internalMu hashes an already formatted M'.
func internalMu(tr, mPrime []byte) [mldsa.MuSize]byte {
	return computeMu(tr, mPrime)
}

// messageMu derives mu for Sign and Verify according to opts.
func messageMu(tr, message []byte, opts *Options) ([mldsa.MuSize]byte, error) {
	if opts.PreHash == PreHashNone {
		return pureMu(tr, opts.Context, message)
	}
	if len(opts.Context) > mldsa.MaxContextSize {
		return [mldsa.MuSize]byte{}, ErrContextTooLong
	}
	digest, err := opts.PreHash.Digest(message)
	if err != nil {
		return [mldsa.MuSize]byte{}, err
	}
	return preHashMu(tr, opts.Context, opts.PreHash, digest)
}
