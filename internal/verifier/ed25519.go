package verifier

import (
	"crypto/ed25519"
	"encoding/base64"

	"github.com/decred/dcrd/dcrec/edwards/v2"
	"github.com/pkg/errors"

	"github.com/kashguard/go-did-auth/internal/did"
)

// VerifyEd25519 verifies an Ed25519 signature over the UTF-8 bytes of the
// signing input. Only Ed25519Key candidates participate; other key cases are
// skipped. First matching candidate wins.
func VerifyEd25519(signingInput, signature string, candidates []did.VerificationMethod, _ Options) (*did.VerificationMethod, error) {
	raw, err := base64.RawURLEncoding.DecodeString(signature)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode base64url signature")
	}
	if len(raw) != ed25519.SignatureSize {
		return nil, errors.Wrapf(ErrWrongSignatureLength, "expected %d bytes, got %d", ed25519.SignatureSize, len(raw))
	}

	for i := range candidates {
		key, ok := candidates[i].Key.(did.Ed25519Key)
		if !ok || len(key) != ed25519.PublicKeySize {
			continue
		}
		// A candidate that does not decode to a curve point is "no match",
		// never a scan abort.
		if _, err := edwards.ParsePubKey(key); err != nil {
			continue
		}
		if ed25519.Verify(ed25519.PublicKey(key), []byte(signingInput), raw) {
			return &candidates[i], nil
		}
	}
	return nil, errors.Wrap(ErrSignatureInvalid, "Ed25519")
}
