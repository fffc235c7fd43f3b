package verifier

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	secpecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/pkg/errors"

	"github.com/kashguard/go-did-auth/internal/did"
)

// VerifyES256K verifies a non-recoverable secp256k1 signature. Key-bearing
// candidates (full or compressed points) are checked in list order first. If
// none of them matches and the list also carries address-only candidates, the
// signature is retried through key recovery with both parities: an identity
// published only as a derived address has no point to verify against directly.
// That fallback doubles the work for address-only lists; it is a deliberate
// compatibility behavior, not an accident.
func VerifyES256K(signingInput, signature string, candidates []did.VerificationMethod, opts Options) (*did.VerificationMethod, error) {
	sig, err := DecodeSignature(signature, false, 0)
	if err != nil {
		return nil, err
	}
	digest := SigningDigest([]byte(signingInput), opts.PersonalSign)

	hasAddressCandidate := false
	for i := range candidates {
		switch key := candidates[i].Key.(type) {
		case did.FullKey:
			if pointVerifies(key, digest, sig) {
				return &candidates[i], nil
			}
		case did.CompressedKey:
			if pointVerifies(key, digest, sig) {
				return &candidates[i], nil
			}
		case did.AddressKey:
			hasAddressCandidate = true
		}
	}

	if hasAddressCandidate {
		if match := recoverMatch(digest, bothParities(sig), candidates, isAddressKey); match != nil {
			return match, nil
		}
	}
	return nil, errors.Wrap(ErrSignatureInvalid, "ES256K")
}

// pointVerifies decodes one candidate point and checks (R, S) against the
// digest. Any failure, malformed point included, means this candidate does not
// match; it never aborts the surrounding scan.
func pointVerifies(encoded []byte, digest [32]byte, sig SignatureObject) bool {
	pub, err := btcec.ParsePubKey(encoded)
	if err != nil {
		return false
	}
	var r, s secp256k1.ModNScalar
	if overflow := r.SetByteSlice(sig.R[:]); overflow {
		return false
	}
	if overflow := s.SetByteSlice(sig.S[:]); overflow {
		return false
	}
	return secpecdsa.NewSignature(&r, &s).Verify(digest[:], pub)
}

func isAddressKey(key did.KeyMaterial) bool {
	_, ok := key.(did.AddressKey)
	return ok
}
