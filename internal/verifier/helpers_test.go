package verifier_test

import (
	"encoding/base64"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	secpecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/stretchr/testify/require"

	"github.com/kashguard/go-did-auth/internal/did"
	"github.com/kashguard/go-did-auth/internal/verifier"
)

const testSigningInput = "eyJhbGciOiJFUzI1NksifQ.eyJibGEiOiJibGEifQ"

func newSecpKey(t *testing.T) *secp256k1.PrivateKey {
	t.Helper()
	key, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	return key
}

// signCompact signs the digest of input and returns the full 65-byte compact
// signature with its 27/28-style header byte.
func signCompact(t *testing.T, key *secp256k1.PrivateKey, input string, personal bool) []byte {
	t.Helper()
	digest := verifier.SigningDigest([]byte(input), personal)
	return secpecdsa.SignCompact(key, digest[:], false)
}

// signES256K returns the encoded 64-byte R||S signature.
func signES256K(t *testing.T, key *secp256k1.PrivateKey, input string, personal bool) string {
	t.Helper()
	compact := signCompact(t, key, input, personal)
	return base64.RawURLEncoding.EncodeToString(compact[1:])
}

// signES256KR returns the encoded 65-byte signature with a plain 0/1 recovery
// byte.
func signES256KR(t *testing.T, key *secp256k1.PrivateKey, input string, personal bool) string {
	t.Helper()
	compact := signCompact(t, key, input, personal)
	sig := make([]byte, 65)
	copy(sig[:64], compact[1:])
	sig[64] = compact[0] - 27
	return base64.RawURLEncoding.EncodeToString(sig)
}

func fullKeyMethod(id string, key *secp256k1.PrivateKey) did.VerificationMethod {
	return did.VerificationMethod{
		ID:         id,
		Type:       "EcdsaSecp256k1VerificationKey2019",
		Controller: id,
		Key:        did.FullKey(key.PubKey().SerializeUncompressed()),
	}
}

func compressedKeyMethod(id string, key *secp256k1.PrivateKey) did.VerificationMethod {
	return did.VerificationMethod{
		ID:         id,
		Type:       "EcdsaSecp256k1VerificationKey2019",
		Controller: id,
		Key:        did.CompressedKey(key.PubKey().SerializeCompressed()),
	}
}

func addressMethod(id string, key *secp256k1.PrivateKey) did.VerificationMethod {
	return did.VerificationMethod{
		ID:         id,
		Type:       "EcdsaSecp256k1RecoveryMethod2020",
		Controller: id,
		Key:        did.AddressKey(verifier.DeriveAddress(key.PubKey().SerializeUncompressed())),
	}
}

// corruptSignature flips one bit in the middle of an encoded signature while
// keeping it valid base64url of the same length.
func corruptSignature(t *testing.T, encoded string) string {
	t.Helper()
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	require.NoError(t, err)
	raw[16] ^= 0x01
	return base64.RawURLEncoding.EncodeToString(raw)
}
