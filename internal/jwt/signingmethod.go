package jwt

import (
	"encoding/base64"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"github.com/kashguard/go-did-auth/internal/did"
	"github.com/kashguard/go-did-auth/internal/verifier"
)

// SigningMethodDID adapts the candidate-scanning verifier to golang-jwt's
// SigningMethod so callers using jwtlib.Parse directly can pass the issuer's
// verification methods ([]did.VerificationMethod) as the key.
type SigningMethodDID struct {
	alg verifier.Algorithm
}

var (
	SigningMethodES256K  = &SigningMethodDID{alg: verifier.AlgES256K}
	SigningMethodES256KR = &SigningMethodDID{alg: verifier.AlgES256KR}
)

// golang-jwt ships neither ES256K nor ES256K-R; EdDSA it already registers,
// so that one is left alone.
func init() {
	jwtlib.RegisterSigningMethod(SigningMethodES256K.Alg(), func() jwtlib.SigningMethod { return SigningMethodES256K })
	jwtlib.RegisterSigningMethod(SigningMethodES256KR.Alg(), func() jwtlib.SigningMethod { return SigningMethodES256KR })
}

func (m *SigningMethodDID) Alg() string {
	return string(m.alg)
}

// Verify re-encodes the signature golang-jwt already decoded and hands it to
// the dispatcher, preserving the encoded-length heuristic for recovery bytes.
func (m *SigningMethodDID) Verify(signingString string, sig []byte, key interface{}) error {
	candidates, ok := key.([]did.VerificationMethod)
	if !ok {
		return jwtlib.ErrInvalidKeyType
	}
	verify, err := verifier.Dispatch(m.alg)
	if err != nil {
		return err
	}
	_, err = verify(signingString, base64.RawURLEncoding.EncodeToString(sig), candidates, verifier.Options{})
	return err
}

// Sign is not supported through this adapter; token issuing goes through
// Sign with an explicit Signer.
func (m *SigningMethodDID) Sign(string, interface{}) ([]byte, error) {
	return nil, errors.Errorf("signing with %s requires an explicit Signer", m.alg)
}
