// Package verifier decides which, if any, of an identity's published
// verification methods produced the detached signature over a compact token's
// signing input. It supports non-recoverable ECDSA over secp256k1 (ES256K),
// recoverable ECDSA with account-address derivation (ES256K-R) and Ed25519.
//
// Everything in this package is a pure function over its inputs: no I/O, no
// shared state, safe for concurrent use. Malformed key material on one
// candidate never aborts the scan, it just fails to match.
package verifier

import (
	"github.com/pkg/errors"

	"github.com/kashguard/go-did-auth/internal/did"
)

// Algorithm names a supported signature scheme. The set is closed: Dispatch
// fails on anything but the constants below.
type Algorithm string

const (
	// AlgES256K is non-recoverable ECDSA over secp256k1, SHA-256 digest.
	AlgES256K Algorithm = "ES256K"
	// AlgES256KR is recoverable ECDSA over secp256k1. Candidates may be
	// published as full keys, compressed keys or derived account addresses.
	AlgES256KR Algorithm = "ES256K-R"
	// AlgEd25519 is EdDSA over the Ed25519 curve.
	AlgEd25519 Algorithm = "Ed25519"
	// AlgEdDSA is accepted as an alias for Ed25519. Only the Ed25519 curve is
	// implemented behind it; do not widen this without a compatibility flag,
	// existing issuers rely on the narrow meaning.
	AlgEdDSA Algorithm = "EdDSA"
)

// Options tunes a verification call. The zero value selects the plain SHA-256
// digest and the legacy recovery-byte convention.
type Options struct {
	// PersonalSign verifies against the prefixed keccak digest instead of
	// plain SHA-256. See SigningDigest.
	PersonalSign bool
	// ChainID, when non-zero, interprets the recovery byte of a 65-byte
	// signature as chain-bound (recid + 2*ChainID + 35).
	ChainID uint64
}

// VerifierFunc checks signature over signingInput against candidates in list
// order and returns the first matching method by identity, a pointer into the
// candidates slice. It fails with ErrSignatureInvalid when nothing matches and
// ErrWrongSignatureLength when the signature has the wrong size for the
// scheme.
type VerifierFunc func(signingInput, signature string, candidates []did.VerificationMethod, opts Options) (*did.VerificationMethod, error)

// Dispatch maps an algorithm name to its verifier. Unknown names fail closed
// with ErrUnsupportedAlgorithm.
func Dispatch(alg Algorithm) (VerifierFunc, error) {
	switch alg {
	case AlgES256K:
		return VerifyES256K, nil
	case AlgES256KR:
		return VerifyES256KR, nil
	case AlgEd25519, AlgEdDSA:
		return VerifyEd25519, nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedAlgorithm, "%q", alg)
	}
}
