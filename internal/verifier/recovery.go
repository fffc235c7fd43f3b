package verifier

import (
	"bytes"
	"encoding/hex"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	secpecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github.com/kashguard/go-did-auth/internal/did"
)

// encodedSigLen is the base64url length of a 64-byte signature. Anything
// longer carries an explicit recovery byte.
const encodedSigLen = 86

// VerifyES256KR verifies a recoverable secp256k1 signature by reconstructing
// the signing key and matching it against the candidates' published forms:
// uncompressed point, compressed point or derived account address.
//
// A signature longer than 86 encoded characters carries its recovery byte and
// is decoded once, honoring opts.ChainID. A 64-byte signature has ambiguous
// parity, so both recovery ids are tried, 0 before 1. A recovery failure on
// one attempt contributes no matches and the remaining attempts still run.
func VerifyES256KR(signingInput, signature string, candidates []did.VerificationMethod, opts Options) (*did.VerificationMethod, error) {
	var attempts []SignatureObject
	if len(signature) > encodedSigLen {
		sig, err := DecodeSignature(signature, true, opts.ChainID)
		if err != nil {
			return nil, err
		}
		attempts = []SignatureObject{sig}
	} else {
		sig, err := DecodeSignature(signature, false, 0)
		if err != nil {
			return nil, err
		}
		attempts = bothParities(sig)
	}

	digest := SigningDigest([]byte(signingInput), opts.PersonalSign)
	if match := recoverMatch(digest, attempts, candidates, nil); match != nil {
		return match, nil
	}
	return nil, errors.Wrap(ErrSignatureInvalid, "ES256K-R")
}

// bothParities expands a parity-less signature into the two recoverable
// attempts, recovery id 0 first.
func bothParities(sig SignatureObject) []SignatureObject {
	attempts := make([]SignatureObject, 2)
	for i := range attempts {
		rec := byte(i)
		attempts[i] = sig
		attempts[i].RecoveryID = &rec
	}
	return attempts
}

// recoverMatch recovers the signing key for each attempt in order and scans
// candidates for one that published it in any encoding. The returned pointer
// aliases the candidates slice so callers get the matching entry by identity.
// keep filters which candidates participate; nil keeps all of them.
func recoverMatch(digest [32]byte, attempts []SignatureObject, candidates []did.VerificationMethod, keep func(did.KeyMaterial) bool) *did.VerificationMethod {
	for _, sig := range attempts {
		pub, err := recoverPublicKey(digest, sig)
		if err != nil {
			// Malformed point for this parity; the other attempt may still
			// recover fine.
			continue
		}

		uncompressed := pub.SerializeUncompressed()
		compressed := pub.SerializeCompressed()
		address := DeriveAddress(uncompressed)

		for i := range candidates {
			if keep != nil && !keep(candidates[i].Key) {
				continue
			}
			switch key := candidates[i].Key.(type) {
			case did.FullKey:
				if bytes.Equal(key, uncompressed) {
					return &candidates[i]
				}
			case did.CompressedKey:
				if bytes.Equal(key, compressed) {
					return &candidates[i]
				}
			case did.AddressKey:
				if strings.EqualFold(string(key), address) {
					return &candidates[i]
				}
			}
		}
	}
	return nil
}

// recoverPublicKey rebuilds the signing key from (digest, R, S, recovery id)
// via the compact encoding RecoverCompact expects: header byte 27+recid
// followed by R and S.
func recoverPublicKey(digest [32]byte, sig SignatureObject) (*secp256k1.PublicKey, error) {
	if sig.RecoveryID == nil {
		return nil, errors.New("signature carries no recovery id")
	}
	compact := make([]byte, recoverableSigLen)
	compact[0] = 27 + *sig.RecoveryID
	copy(compact[1:33], sig.R[:])
	copy(compact[33:65], sig.S[:])

	pub, _, err := secpecdsa.RecoverCompact(compact, digest[:])
	if err != nil {
		return nil, errors.Wrap(err, "failed to recover public key")
	}
	return pub, nil
}

// DeriveAddress returns the 0x-prefixed account address of an uncompressed
// secp256k1 point: the final 20 bytes of the keccak256 of the 64-byte point.
func DeriveAddress(uncompressed []byte) string {
	hash := ethcrypto.Keccak256(uncompressed[1:])
	return "0x" + hex.EncodeToString(hash[12:])
}
