// Package jwt glues the compact token envelope to the signature verifier:
// it splits header.payload.signature, resolves the issuer's DID document and
// scans its verification methods for the one that produced the signature.
// Claim validation (expiry, audience) is deliberately left to the caller.
package jwt

import (
	"context"
	"strings"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"github.com/kashguard/go-did-auth/internal/did"
	"github.com/kashguard/go-did-auth/internal/verifier"
)

// Token is a decoded but not yet verified compact token.
type Token struct {
	Raw          string
	Algorithm    verifier.Algorithm
	Issuer       string
	Claims       jwtlib.MapClaims
	SigningInput string
	Signature    string
}

// Decode splits a compact token into its parts without verifying anything.
// An unknown alg is kept as-is; Dispatch rejects it at verification time.
func Decode(raw string) (*Token, error) {
	claims := jwtlib.MapClaims{}
	tok, parts, err := jwtlib.NewParser().ParseUnverified(raw, claims)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse compact token")
	}

	alg, _ := tok.Header["alg"].(string)
	issuer, _ := claims.GetIssuer()

	return &Token{
		Raw:          raw,
		Algorithm:    verifier.Algorithm(alg),
		Issuer:       issuer,
		Claims:       claims,
		SigningInput: strings.Join(parts[0:2], "."),
		Signature:    parts[2],
	}, nil
}

// VerifyOptions tunes verification; the zero value is the common case.
type VerifyOptions struct {
	// PersonalSign selects the prefixed keccak digest for ES256K/ES256K-R.
	PersonalSign bool
	// ChainID interprets chain-bound recovery bytes on ES256K-R signatures.
	ChainID uint64
}

// Result is a successful verification: the token, the resolved document and
// the verification method that validated the signature. Method points into
// Document.VerificationMethods.
type Result struct {
	Token    *Token
	Document *did.Document
	Method   *did.VerificationMethod
}

// Verify resolves the token issuer's DID document and checks the signature
// against its verification methods in published order.
func Verify(ctx context.Context, raw string, resolver did.Resolver, opts VerifyOptions) (*Result, error) {
	tok, err := Decode(raw)
	if err != nil {
		return nil, err
	}

	verify, err := verifier.Dispatch(tok.Algorithm)
	if err != nil {
		return nil, err
	}

	if tok.Issuer == "" {
		return nil, errors.New("token carries no issuer to resolve")
	}
	doc, err := resolver.Resolve(ctx, tok.Issuer)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve %s", tok.Issuer)
	}

	method, err := verify(tok.SigningInput, tok.Signature, doc.VerificationMethods, verifier.Options{
		PersonalSign: opts.PersonalSign,
		ChainID:      opts.ChainID,
	})
	if err != nil {
		return nil, err
	}

	return &Result{Token: tok, Document: doc, Method: method}, nil
}
