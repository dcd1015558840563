package sign

import (
	"bytes"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/crypto/sha3"

	mldsa "github.com/BackendStack21/ml-dsa-go"
	"github.com/BackendStack21/ml-dsa-go/core"
	"github.com/BackendStack21/ml-dsa-go/kat"
)

// loadKAT reads testdata/ml_dsa_<NN>_<op>.acvp.kat. The files hold NIST
// ACVP vectors for the internal interface.
func loadKAT(t *testing.T, params mldsa.Params, op string) []kat.Vector {
	t.Helper()
	name := fmt.Sprintf("ml_dsa_%s_%s.acvp.kat", strings.TrimPrefix(string(params.Level), "ML-DSA-"), op)
	path := filepath.Join("testdata", name)
	vecs, err := kat.Load(path)
	if err != nil {
		t.Fatalf("loading %s: %v", path, err)
	}
	if len(vecs) == 0 {
		t.Fatalf("%s holds no vectors", path)
	}
	return vecs
}

func mustBytes(t *testing.T, v kat.Vector, key string) []byte {
	t.Helper()
	b, err := v.Bytes(key)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func forEachLevel(t *testing.T, fn func(t *testing.T, params mldsa.Params)) {
	for _, level := range core.Levels {
		params, _ := core.GetParams(level)
		t.Run(string(level), func(t *testing.T) { fn(t, params) })
	}
}

func TestKATKeyGen(t *testing.T) {
	forEachLevel(t, func(t *testing.T, params mldsa.Params) {
		for _, v := range loadKAT(t, params, "keygen") {
			kp, err := GenerateKeyPairFromSeed(params, mustBytes(t, v, "seed"))
			if err != nil {
				t.Fatalf("line %d: %v", v.Line, err)
			}
			if !bytes.Equal(kp.PublicKey.Bytes(), mustBytes(t, v, "pkey")) {
				t.Errorf("line %d: public key mismatch", v.Line)
			}
			if !bytes.Equal(kp.SecretKey.Bytes(), mustBytes(t, v, "skey")) {
				t.Errorf("line %d: secret key mismatch", v.Line)
			}
		}
	})
}

func TestKATSignInternal(t *testing.T) {
	forEachLevel(t, func(t *testing.T, params mldsa.Params) {
		for _, v := range loadKAT(t, params, "sign_internal") {
			sk, err := DeserializeSecretKey(params, mustBytes(t, v, "skey"))
			if err != nil {
				t.Fatalf("line %d: %v", v.Line, err)
			}
			var sig []byte
			if v.Has("mu") {
				sig, err = SignExternalMu(sk, mustBytes(t, v, "mu"), mustBytes(t, v, "rnd"))
			} else {
				sig, err = SignInternal(sk, mustBytes(t, v, "msg"), mustBytes(t, v, "rnd"))
			}
			if err != nil {
				t.Fatalf("line %d: %v", v.Line, err)
			}
			if !bytes.Equal(sig, mustBytes(t, v, "sig")) {
				t.Errorf("line %d: signature mismatch", v.Line)
			}
		}
	})
}

func TestKATVerifyInternal(t *testing.T) {
	forEachLevel(t, func(t *testing.T, params mldsa.Params) {
		for _, v := range loadKAT(t, params, "verify_internal") {
			want, err := v.Bool("testPassed")
			if err != nil {
				t.Fatal(err)
			}
			pk, err := DeserializePublicKey(params, mustBytes(t, v, "pkey"))
			if err != nil {
				if want {
					t.Errorf("line %d: %v", v.Line, err)
				}
				continue
			}
			var got bool
			if v.Has("mu") {
				got = VerifyExternalMu(pk, mustBytes(t, v, "mu"), mustBytes(t, v, "sig"))
			} else {
				got = VerifyInternal(pk, mustBytes(t, v, "msg"), mustBytes(t, v, "sig"))
			}
			if got != want {
				reason, _ := v.String("reason")
				t.Errorf("line %d: verify = %v, want %v (%s)", v.Line, got, want, reason)
			}
		}
	})
}

// formatPreHashed builds M' = 1 || len(ctx) || ctx || OID || PH(msg) with
// hashes computed here rather than through PreHash.Digest.
func formatPreHashed(ph PreHash, ctx, msg []byte) []byte {
	var arc byte
	var digest []byte
	switch ph {
	case PreHashSHA224:
		arc = 0x04
		d := sha256.Sum224(msg)
		digest = d[:]
	case PreHashSHA512:
		arc = 0x03
		d := sha512.Sum512(msg)
		digest = d[:]
	case PreHashSHA512_256:
		arc = 0x06
		d := sha512.Sum512_256(msg)
		digest = d[:]
	case PreHashSHA3_384:
		arc = 0x09
		d := sha3.Sum384(msg)
		digest = d[:]
	case PreHashSHAKE128:
		arc = 0x0b
		digest = make([]byte, 32)
		sha3.ShakeSum128(digest, msg)
	case PreHashSHAKE256:
		arc = 0x0c
		digest = make([]byte, 64)
		sha3.ShakeSum256(digest, msg)
	default:
		panic("formatPreHashed: unhandled " + ph.String())
	}
	m := []byte{1, byte(len(ctx))}
	m = append(m, ctx...)
	m = append(m, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, arc)
	return append(m, digest...)
}

var hashCases = []struct {
	ph  PreHash
	ctx []byte
}{
	{PreHashSHA224, nil},
	{PreHashSHA512, []byte("ctx")},
	{PreHashSHA512_256, bytes.Repeat([]byte{0xa5}, 255)},
	{PreHashSHA3_384, []byte{0}},
	{PreHashSHAKE128, nil},
	{PreHashSHAKE256, []byte("application")},
}

// TestKATHashSign signs with the ACVP secret keys and randomness in
// HashML-DSA mode and checks the result against Sign_internal over an
// independently formatted M'. Sign_internal is pinned by TestKATSignInternal.
func TestKATHashSign(t *testing.T) {
	forEachLevel(t, func(t *testing.T, params mldsa.Params) {
		for _, v := range loadKAT(t, params, "sign_internal") {
			sk, err := DeserializeSecretKey(params, mustBytes(t, v, "skey"))
			if err != nil {
				t.Fatalf("line %d: %v", v.Line, err)
			}
			msg, rnd := mustBytes(t, v, "msg"), mustBytes(t, v, "rnd")
			for _, tc := range hashCases {
				want, err := SignInternal(sk, formatPreHashed(tc.ph, tc.ctx, msg), rnd)
				if err != nil {
					t.Fatal(err)
				}
				got, err := Sign(sk, msg, &Options{Context: tc.ctx, PreHash: tc.ph, Rand: bytes.NewReader(rnd)})
				if err != nil {
					t.Fatalf("line %d %s: %v", v.Line, tc.ph, err)
				}
				if !bytes.Equal(got, want) {
					t.Errorf("line %d %s: signature differs from Sign_internal over M'", v.Line, tc.ph)
				}
				digest, _ := tc.ph.Digest(msg)
				pre, err := SignPreHashed(sk, digest, &Options{Context: tc.ctx, PreHash: tc.ph, Rand: bytes.NewReader(rnd)})
				if err != nil || !bytes.Equal(pre, want) {
					t.Errorf("line %d %s: SignPreHashed differs (%v)", v.Line, tc.ph, err)
				}
			}
		}
	})
}

// TestKATHashVerify checks acceptance and rejection of HashML-DSA
// signatures made with the ACVP secret keys.
func TestKATHashVerify(t *testing.T) {
	forEachLevel(t, func(t *testing.T, params mldsa.Params) {
		v := loadKAT(t, params, "sign_internal")[0]
		sk, err := DeserializeSecretKey(params, mustBytes(t, v, "skey"))
		if err != nil {
			t.Fatal(err)
		}
		pk := sk.Public()
		msg := mustBytes(t, v, "msg")

		for _, tc := range hashCases {
			opts := &Options{Context: tc.ctx, PreHash: tc.ph, Deterministic: true}
			sig, err := Sign(sk, msg, opts)
			if err != nil {
				t.Fatal(err)
			}
			if !Verify(pk, msg, sig, opts) {
				t.Errorf("%s: valid signature rejected", tc.ph)
			}
			if !VerifyInternal(pk, formatPreHashed(tc.ph, tc.ctx, msg), sig) {
				t.Errorf("%s: Verify_internal rejects the formatted message", tc.ph)
			}

			other := PreHashSHA512
			if tc.ph == PreHashSHA512 {
				other = PreHashSHA3_384
			}
			modified := append([]byte{}, msg...)
			modified[0] ^= 0x80
			badCTilde := append([]byte{}, sig...)
			badCTilde[0] ^= 1
			badZ := append([]byte{}, sig...)
			badZ[params.CTildeSize()+17] ^= 0x10
			badHint := append([]byte{}, sig...)
			badHint[len(badHint)-1] = byte(params.Omega + 1)

			rejects := []struct {
				name string
				msg  []byte
				sig  []byte
				opts *Options
			}{
				{"modified message", modified, sig, opts},
				{"other context", msg, sig, &Options{Context: []byte("other"), PreHash: tc.ph}},
				{"other hash", msg, sig, &Options{Context: tc.ctx, PreHash: other}},
				{"pure mode", msg, sig, &Options{Context: tc.ctx}},
				{"modified commitment hash", msg, badCTilde, opts},
				{"modified z", msg, badZ, opts},
				{"malformed hint", msg, badHint, opts},
			}
			for _, r := range rejects {
				if Verify(pk, r.msg, r.sig, r.opts) {
					t.Errorf("%s: %s accepted", tc.ph, r.name)
				}
			}
		}
	})
}
