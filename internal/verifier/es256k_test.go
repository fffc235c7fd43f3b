package verifier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kashguard/go-did-auth/internal/did"
	"github.com/kashguard/go-did-auth/internal/verifier"
)

func TestVerifyES256KPicksSigningKey(t *testing.T) {
	signer := newSecpKey(t)
	other := newSecpKey(t)
	sig := signES256K(t, signer, testSigningInput, false)

	candidates := []did.VerificationMethod{
		fullKeyMethod("did:example:other#keys-1", other),
		fullKeyMethod("did:example:signer#keys-1", signer),
	}

	match, err := verifier.VerifyES256K(testSigningInput, sig, candidates, verifier.Options{})
	require.NoError(t, err)
	assert.Same(t, &candidates[1], match)
}

func TestVerifyES256KCompressedCandidate(t *testing.T) {
	signer := newSecpKey(t)
	sig := signES256K(t, signer, testSigningInput, false)

	candidates := []did.VerificationMethod{
		compressedKeyMethod("did:example:signer#keys-1", signer),
	}

	match, err := verifier.VerifyES256K(testSigningInput, sig, candidates, verifier.Options{})
	require.NoError(t, err)
	assert.Same(t, &candidates[0], match)
}

func TestVerifyES256KCorruptedSignature(t *testing.T) {
	signer := newSecpKey(t)
	sig := corruptSignature(t, signES256K(t, signer, testSigningInput, false))

	candidates := []did.VerificationMethod{fullKeyMethod("did:example:signer#keys-1", signer)}

	_, err := verifier.VerifyES256K(testSigningInput, sig, candidates, verifier.Options{})
	assert.ErrorIs(t, err, verifier.ErrSignatureInvalid)
}

func TestVerifyES256KAlteredInput(t *testing.T) {
	signer := newSecpKey(t)
	sig := signES256K(t, signer, testSigningInput, false)

	candidates := []did.VerificationMethod{fullKeyMethod("did:example:signer#keys-1", signer)}

	_, err := verifier.VerifyES256K(testSigningInput+"x", sig, candidates, verifier.Options{})
	assert.ErrorIs(t, err, verifier.ErrSignatureInvalid)
}

func TestVerifyES256KExtraCharactersFailLength(t *testing.T) {
	signer := newSecpKey(t)
	sig := signES256K(t, signer, testSigningInput, false)

	candidates := []did.VerificationMethod{fullKeyMethod("did:example:signer#keys-1", signer)}

	_, err := verifier.VerifyES256K(testSigningInput, sig+"aa", candidates, verifier.Options{})
	assert.ErrorIs(t, err, verifier.ErrWrongSignatureLength)
}

func TestVerifyES256KMalformedCandidatesDoNotAbortScan(t *testing.T) {
	signer := newSecpKey(t)
	sig := signES256K(t, signer, testSigningInput, false)

	candidates := []did.VerificationMethod{
		{ID: "did:example:bad#garbage", Key: did.FullKey([]byte("not a point at all"))},
		{ID: "did:example:bad#zero", Key: did.CompressedKey(make([]byte, 33))},
		{ID: "did:example:bad#short", Key: did.FullKey([]byte{0x04})},
		fullKeyMethod("did:example:signer#keys-1", signer),
	}

	match, err := verifier.VerifyES256K(testSigningInput, sig, candidates, verifier.Options{})
	require.NoError(t, err)
	assert.Same(t, &candidates[3], match)
}

func TestVerifyES256KAddressOnlyFallback(t *testing.T) {
	signer := newSecpKey(t)
	sig := signES256K(t, signer, testSigningInput, false)

	// No key-bearing candidate at all: the verifier must fall back into
	// recovery to honor identities published only as addresses.
	candidates := []did.VerificationMethod{
		addressMethod("did:example:signer#controller", signer),
	}

	match, err := verifier.VerifyES256K(testSigningInput, sig, candidates, verifier.Options{})
	require.NoError(t, err)
	assert.Same(t, &candidates[0], match)
}

func TestVerifyES256KAddressFallbackKeepsPrecedence(t *testing.T) {
	signer := newSecpKey(t)
	other := newSecpKey(t)
	sig := signES256K(t, signer, testSigningInput, false)

	candidates := []did.VerificationMethod{
		fullKeyMethod("did:example:other#keys-1", other),
		addressMethod("did:example:signer#controller", signer),
	}

	match, err := verifier.VerifyES256K(testSigningInput, sig, candidates, verifier.Options{})
	require.NoError(t, err)
	assert.Same(t, &candidates[1], match)
}

func TestVerifyES256KPersonalDigest(t *testing.T) {
	signer := newSecpKey(t)
	sig := signES256K(t, signer, testSigningInput, true)

	candidates := []did.VerificationMethod{fullKeyMethod("did:example:signer#keys-1", signer)}

	match, err := verifier.VerifyES256K(testSigningInput, sig, candidates, verifier.Options{PersonalSign: true})
	require.NoError(t, err)
	assert.Same(t, &candidates[0], match)

	// The same signature must not verify under the plain digest.
	_, err = verifier.VerifyES256K(testSigningInput, sig, candidates, verifier.Options{})
	assert.ErrorIs(t, err, verifier.ErrSignatureInvalid)
}
