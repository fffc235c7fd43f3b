package verifier

import (
	"encoding/base64"

	"github.com/pkg/errors"
)

const (
	// sigLen is the byte count of a non-recoverable compact signature (R||S).
	sigLen = 64
	// recoverableSigLen adds the trailing recovery byte.
	recoverableSigLen = 65
)

// SignatureObject carries the components of a decoded compact signature.
// R and S are always exactly 32 bytes each. RecoveryID is only set on
// recoverable flows and is always 0 or 1 regardless of the raw encoding
// convention the signature arrived in.
type SignatureObject struct {
	R          [32]byte
	S          [32]byte
	RecoveryID *byte
}

// DecodeSignature decodes a base64url (unpadded) compact signature into its
// components. Non-recoverable signatures must be exactly 64 bytes, recoverable
// ones exactly 65; anything else fails with ErrWrongSignatureLength.
func DecodeSignature(signature string, recoverable bool, chainID uint64) (SignatureObject, error) {
	raw, err := base64.RawURLEncoding.DecodeString(signature)
	if err != nil {
		return SignatureObject{}, errors.Wrap(err, "failed to decode base64url signature")
	}

	want := sigLen
	if recoverable {
		want = recoverableSigLen
	}
	if len(raw) != want {
		return SignatureObject{}, errors.Wrapf(ErrWrongSignatureLength, "expected %d bytes, got %d", want, len(raw))
	}

	var sig SignatureObject
	copy(sig.R[:], raw[0:32])
	copy(sig.S[:], raw[32:64])

	if recoverable {
		rec, err := normalizeRecoveryID(raw[64], chainID)
		if err != nil {
			return SignatureObject{}, err
		}
		sig.RecoveryID = &rec
	}
	return sig, nil
}

// normalizeRecoveryID folds the raw recovery byte into a plain 0/1 id.
// Values below 27 are already plain. The legacy convention encodes 27+recid;
// the chain-bound convention encodes recid + 2*chainID + 35 so that the byte
// also commits to the network the signature was made for.
func normalizeRecoveryID(raw byte, chainID uint64) (byte, error) {
	v := uint64(raw)
	switch {
	case v < 27:
	case chainID != 0:
		v -= 2*chainID + 35
	default:
		v -= 27
	}
	if v > 1 {
		return 0, errors.Errorf("invalid recovery byte %d", raw)
	}
	return byte(v), nil
}
