package sign

import (
	mldsa "github.com/BackendStack21/ml-dsa-go"
	"github.com/BackendStack21/ml-dsa-go/core"
	"github.com/BackendStack21/ml-dsa-go/encoding"
	"github.com/BackendStack21/ml-dsa-go/utils"
)

// SerializePublicKey returns the FIPS 204 encoding of pk.
func SerializePublicKey(pk *PublicKey) []byte {
	return pk.Bytes()
}

// DeserializePublicKey parses an encoded public key for params.
func DeserializePublicKey(params mldsa.Params, data []byte) (*PublicKey, error) {
	dec, err := encoding.DecodePublicKey(params, data)
	if err != nil {
		return nil, err
	}
	return newPublicKey(params, dec.Rho[:], dec.T1, nil), nil
}

// SerializeSecretKey returns the FIPS 204 encoding of sk.
func SerializeSecretKey(sk *SecretKey) []byte {
	return sk.Bytes()
}

// DeserializeSecretKey parses an encoded secret key for params.
func DeserializeSecretKey(params mldsa.Params, data []byte) (*SecretKey, error) {
	dec, err := encoding.DecodeSecretKey(params, data)
	if err != nil {
		return nil, err
	}
	return newSecretKey(params, dec, nil), nil
}

// KeyGen is the byte-level ML-DSA.KeyGen_internal: it returns the encoded
// public and secret keys derived from a 32-byte seed.
func KeyGen(level mldsa.SecurityLevel, seed []byte) (pk, sk []byte, err error) {
	params, err := core.GetParams(level)
	if err != nil {
		return nil, nil, err
	}
	kp, err := GenerateKeyPairFromSeed(params, seed)
	if err != nil {
		return nil, nil, err
	}
	defer kp.Destroy()
	return kp.PublicKey.Bytes(), kp.SecretKey.Bytes(), nil
}

// SignBytes signs message with an encoded secret key of the given level.
func SignBytes(level mldsa.SecurityLevel, sk, message []byte, opts *Options) ([]byte, error) {
	params, err := core.GetParams(level)
	if err != nil {
		return nil, err
	}
	key, err := DeserializeSecretKey(params, sk)
	if err != nil {
		return nil, err
	}
	defer key.Destroy()
	return Sign(key, message, opts)
}

// VerifyBytes verifies signature with an encoded public key of the given
// level. Buffers of the wrong size are rejected.
func VerifyBytes(level mldsa.SecurityLevel, pk, message, signature []byte, opts *Options) bool {
	params, err := core.GetParams(level)
	if err != nil {
		return false
	}
	if utils.CheckExactLength(signature, params.SignatureSize(), "signature") != nil {
		return false
	}
	key, err := DeserializePublicKey(params, pk)
	if err != nil {
		return false
	}
	return Verify(key, message, signature, opts)
}
