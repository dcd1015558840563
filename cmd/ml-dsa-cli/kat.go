package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	mldsa "github.com/BackendStack21/ml-dsa-go"
	"github.com/BackendStack21/ml-dsa-go/core"
	"github.com/BackendStack21/ml-dsa-go/kat"
	"github.com/BackendStack21/ml-dsa-go/sign"
)

var katOps = []string{"keygen", "sign_internal", "verify_internal", "hash_sign", "hash_verify"}

// katTarget infers the level and operation from names such as
// ml_dsa_65_hash_sign.acvp.kat.
func katTarget(path string) (mldsa.SecurityLevel, string, bool) {
	base := strings.TrimSuffix(filepath.Base(path), ".acvp.kat")
	rest, ok := strings.CutPrefix(base, "ml_dsa_")
	if !ok || len(rest) < 4 || rest[2] != '_' {
		return "", "", false
	}
	level, err := core.ParseLevel(rest[:2])
	if err != nil {
		return "", "", false
	}
	return level, rest[3:], true
}

// fieldReader decodes hex fields from a vector, keeping the first error.
type fieldReader struct {
	v   kat.Vector
	err error
}

func (r *fieldReader) bytes(key string) []byte {
	if r.err != nil {
		return nil
	}
	b, err := r.v.Bytes(key)
	if err != nil {
		r.err = err
	}
	return b
}

// messageKey selects "mu" for external-mu vectors and "msg" otherwise.
func messageKey(v kat.Vector) string {
	if v.Has("mu") {
		return "mu"
	}
	return "msg"
}

// runKATVector reports whether one vector produced the expected answer.
func runKATVector(params mldsa.Params, op string, v kat.Vector) (bool, error) {
	r := &fieldReader{v: v}
	switch op {
	case "keygen":
		seed, wantPK, wantSK := r.bytes("seed"), r.bytes("pkey"), r.bytes("skey")
		if r.err != nil {
			return false, r.err
		}
		pk, sk, err := sign.KeyGen(params.Level, seed)
		if err != nil {
			return false, err
		}
		return bytes.Equal(pk, wantPK) && bytes.Equal(sk, wantSK), nil

	case "sign_internal", "hash_sign":
		skBytes, msg, rnd, want := r.bytes("skey"), r.bytes(messageKey(v)), r.bytes("rnd"), r.bytes("sig")
		if r.err != nil {
			return false, r.err
		}
		sk, err := sign.DeserializeSecretKey(params, skBytes)
		if err != nil {
			return false, err
		}
		defer sk.Destroy()
		var sig []byte
		switch {
		case op == "sign_internal" && v.Has("mu"):
			sig, err = sign.SignExternalMu(sk, msg, rnd)
		case op == "sign_internal":
			sig, err = sign.SignInternal(sk, msg, rnd)
		default:
			var o *sign.Options
			if o, err = katOptions(v); err != nil {
				return false, err
			}
			o.Rand = bytes.NewReader(rnd)
			sig, err = sign.Sign(sk, msg, o)
		}
		if err != nil {
			return false, err
		}
		return bytes.Equal(sig, want), nil

	case "verify_internal", "hash_verify":
		pkBytes, msg, sig := r.bytes("pkey"), r.bytes(messageKey(v)), r.bytes("sig")
		if r.err != nil {
			return false, r.err
		}
		want, err := v.Bool("testPassed")
		if err != nil {
			return false, err
		}
		pk, err := sign.DeserializePublicKey(params, pkBytes)
		if err != nil {
			// A key that does not decode cannot verify anything.
			return !want, nil
		}
		switch {
		case op == "verify_internal" && v.Has("mu"):
			return sign.VerifyExternalMu(pk, msg, sig) == want, nil
		case op == "verify_internal":
			return sign.VerifyInternal(pk, msg, sig) == want, nil
		}
		o, err := katOptions(v)
		if err != nil {
			return false, err
		}
		return sign.Verify(pk, msg, sig, o) == want, nil
	}
	return false, fmt.Errorf("unknown operation %q (want one of %s)", op, strings.Join(katOps, ", "))
}

func katOptions(v kat.Vector) (*sign.Options, error) {
	alg, err := v.String("hashAlg")
	if err != nil {
		return nil, err
	}
	ph, err := sign.ParsePreHash(alg)
	if err != nil {
		return nil, err
	}
	ctx, err := v.Bytes("ctx")
	if err != nil {
		return nil, err
	}
	return &sign.Options{Context: ctx, PreHash: ph}, nil
}

func cmdKAT(args []string) {
	config := parseConfig(args)
	file := getArg(args, "--file", "-F")
	op := getArg(args, "--op", "")
	if file == "" {
		fail("--file is required")
	}

	level := config.SecurityLevel
	if inferred, inferredOp, ok := katTarget(file); ok {
		if !config.LevelSet {
			level = inferred
		}
		if op == "" {
			op = inferredOp
		}
	}
	if op == "" {
		fail("--op is required when it cannot be inferred from the file name")
	}
	params, err := core.GetParams(level)
	if err != nil {
		fail("%v", err)
	}

	vecs, err := kat.Load(file)
	if err != nil {
		fail("loading %s: %v", file, err)
	}

	passed, failed := 0, 0
	for _, v := range vecs {
		ok, err := runKATVector(params, op, v)
		switch {
		case err != nil:
			failed++
			fmt.Fprintf(os.Stderr, "line %d: %v\n", v.Line, err)
		case !ok:
			failed++
			if config.Verbose {
				fmt.Fprintf(os.Stderr, "line %d: mismatch\n", v.Line)
			}
		default:
			passed++
		}
	}

	fmt.Printf("%s %s: %d passed, %d failed\n", level, op, passed, failed)
	if failed > 0 {
		os.Exit(1)
	}
}
