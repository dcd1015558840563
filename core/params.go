// Package core provides parameter sets and validation for ML-DSA.
package core

import (
	"errors"
	"fmt"
	"strings"

	mldsa "github.com/BackendStack21/ml-dsa-go"
)

// MLDSA44Params is the parameter set for NIST security category 2.
var MLDSA44Params = mldsa.Params{
	Level:      mldsa.MLDSA44,
	K:          4,
	L:          4,
	Eta:        2,
	Tau:        39,
	Beta:       78,
	Gamma1Bits: 17,
	Gamma2:     (mldsa.Q - 1) / 88,
	Omega:      80,
	Lambda:     128,
}

// MLDSA65Params is the parameter set for NIST security category 3.
var MLDSA65Params = mldsa.Params{
	Level:      mldsa.MLDSA65,
	K:          6,
	L:          5,
	Eta:        4,
	Tau:        49,
	Beta:       196,
	Gamma1Bits: 19,
	Gamma2:     (mldsa.Q - 1) / 32,
	Omega:      55,
	Lambda:     192,
}

// MLDSA87Params is the parameter set for NIST security category 5.
var MLDSA87Params = mldsa.Params{
	Level:      mldsa.MLDSA87,
	K:          8,
	L:          7,
	Eta:        2,
	Tau:        60,
	Beta:       120,
	Gamma1Bits: 19,
	Gamma2:     (mldsa.Q - 1) / 32,
	Omega:      75,
	Lambda:     256,
}

// Levels lists the supported security levels in increasing strength.
var Levels = []mldsa.SecurityLevel{mldsa.MLDSA44, mldsa.MLDSA65, mldsa.MLDSA87}

// GetParams returns the parameter set for the given security level.
func GetParams(level mldsa.SecurityLevel) (mldsa.Params, error) {
	switch level {
	case mldsa.MLDSA44:
		return MLDSA44Params, nil
	case mldsa.MLDSA65:
		return MLDSA65Params, nil
	case mldsa.MLDSA87:
		return MLDSA87Params, nil
	default:
		return mldsa.Params{}, fmt.Errorf("unknown security level: %s", level)
	}
}

// ParseLevel accepts "44", "ML-DSA-44", "mldsa44" and similar spellings.
func ParseLevel(s string) (mldsa.SecurityLevel, error) {
	norm := strings.ToUpper(strings.NewReplacer("-", "", "_", "", " ", "").Replace(s))
	norm = strings.TrimPrefix(norm, "MLDSA")
	switch norm {
	case "44":
		return mldsa.MLDSA44, nil
	case "65":
		return mldsa.MLDSA65, nil
	case "87":
		return mldsa.MLDSA87, nil
	default:
		return "", fmt.Errorf("unknown security level: %s", s)
	}
}

// ValidateParams validates the parameter set for internal consistency.
func ValidateParams(params mldsa.Params) error {
	if params.K <= 0 || params.L <= 0 || params.K > 8 || params.L > 7 {
		return errors.New("matrix dimensions must be in 1..8 x 1..7")
	}
	if params.Eta != 2 && params.Eta != 4 {
		return errors.New("eta must be 2 or 4")
	}
	if params.Beta != params.Tau*params.Eta {
		return errors.New("beta must equal tau * eta")
	}
	if params.Tau <= 0 || params.Tau > 64 {
		return errors.New("tau must be in 1..64")
	}
	if params.Gamma1Bits != 17 && params.Gamma1Bits != 19 {
		return errors.New("gamma1 must be 2^17 or 2^19")
	}
	if params.Gamma2 != (mldsa.Q-1)/88 && params.Gamma2 != (mldsa.Q-1)/32 {
		return errors.New("gamma2 must be (q-1)/88 or (q-1)/32")
	}
	if params.Beta >= params.Gamma2 || params.Beta >= params.Gamma1() {
		return errors.New("beta must be smaller than gamma1 and gamma2")
	}
	if params.Omega <= 0 || params.Omega+params.K > 255 {
		return errors.New("omega must be positive and omega + k must fit in a byte index")
	}
	if params.Lambda != 128 && params.Lambda != 192 && params.Lambda != 256 {
		return errors.New("lambda must be 128, 192 or 256")
	}
	return nil
}
