package jwt

import (
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	secpecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"github.com/kashguard/go-did-auth/internal/verifier"
)

// Signer produces the base64url signature for a signing input. Implementations
// wrap whatever holds the private key: a raw key here, a KMS or an MPC quorum
// elsewhere.
type Signer func(signingInput string) (string, error)

// Sign builds and signs a compact token.
func Sign(claims jwtlib.Claims, alg verifier.Algorithm, sign Signer) (string, error) {
	headerJSON, err := json.Marshal(map[string]string{"alg": string(alg), "typ": "JWT"})
	if err != nil {
		return "", errors.Wrap(err, "failed to encode header")
	}
	claimsJSON, err := json.Marshal(claims)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode claims")
	}

	signingInput := base64.RawURLEncoding.EncodeToString(headerJSON) + "." + base64.RawURLEncoding.EncodeToString(claimsJSON)
	signature, err := sign(signingInput)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}
	return signingInput + "." + signature, nil
}

// ES256KSigner signs the SHA-256 (or personal keccak) digest of the signing
// input, emitting the 64-byte R||S form.
func ES256KSigner(key *secp256k1.PrivateKey, personal bool) Signer {
	return func(signingInput string) (string, error) {
		digest := verifier.SigningDigest([]byte(signingInput), personal)
		compact := secpecdsa.SignCompact(key, digest[:], false)
		return base64.RawURLEncoding.EncodeToString(compact[1:]), nil
	}
}

// ES256KRSigner emits the 65-byte recoverable form with a plain 0/1 recovery
// byte.
func ES256KRSigner(key *secp256k1.PrivateKey, personal bool) Signer {
	return func(signingInput string) (string, error) {
		digest := verifier.SigningDigest([]byte(signingInput), personal)
		compact := secpecdsa.SignCompact(key, digest[:], false)

		sig := make([]byte, 65)
		copy(sig[:64], compact[1:])
		sig[64] = compact[0] - 27
		return base64.RawURLEncoding.EncodeToString(sig), nil
	}
}

// Ed25519Signer signs the raw UTF-8 bytes of the signing input.
func Ed25519Signer(key ed25519.PrivateKey) Signer {
	return func(signingInput string) (string, error) {
		sig := ed25519.Sign(key, []byte(signingInput))
		return base64.RawURLEncoding.EncodeToString(sig), nil
	}
}
