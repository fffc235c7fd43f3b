package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kashguard/go-did-auth/internal/did"
	"github.com/kashguard/go-did-auth/internal/jwt"
	"github.com/kashguard/go-did-auth/internal/verifier"
)

// newIssueCmd issues a token under a freshly generated key and prints both the
// token and a DID document that verifies it. Meant for fixtures and smoke
// tests, not for production key handling.
func newIssueCmd() *cobra.Command {
	var (
		issuer   string
		alg      string
		subject  string
		ttl      time.Duration
		personal bool
	)

	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Issue a test token and a matching DID document under a throwaway key",
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := time.Now()
			claims := jwtlib.RegisteredClaims{
				Issuer:    issuer,
				Subject:   subject,
				IssuedAt:  jwtlib.NewNumericDate(now),
				ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
			}

			doc := did.Document{ID: issuer}
			var sign jwt.Signer

			switch verifier.Algorithm(alg) {
			case verifier.AlgES256K, verifier.AlgES256KR:
				key, err := secp256k1.GeneratePrivateKey()
				if err != nil {
					return errors.Wrap(err, "failed to generate secp256k1 key")
				}
				doc.VerificationMethods = []did.VerificationMethod{{
					ID:         issuer + "#keys-1",
					Type:       "EcdsaSecp256k1VerificationKey2019",
					Controller: issuer,
					Key:        did.FullKey(key.PubKey().SerializeUncompressed()),
				}}
				if verifier.Algorithm(alg) == verifier.AlgES256K {
					sign = jwt.ES256KSigner(key, personal)
				} else {
					sign = jwt.ES256KRSigner(key, personal)
				}
				log.Debug().Str("public_key", hex.EncodeToString(key.PubKey().SerializeCompressed())).Msg("Generated secp256k1 key")
			case verifier.AlgEd25519, verifier.AlgEdDSA:
				pub, priv, err := ed25519.GenerateKey(rand.Reader)
				if err != nil {
					return errors.Wrap(err, "failed to generate ed25519 key")
				}
				doc.VerificationMethods = []did.VerificationMethod{{
					ID:         issuer + "#keys-1",
					Type:       "Ed25519VerificationKey2018",
					Controller: issuer,
					Key:        did.Ed25519Key(pub),
				}}
				sign = jwt.Ed25519Signer(priv)
			default:
				return errors.Errorf("cannot issue tokens for algorithm %q", alg)
			}

			token, err := jwt.Sign(claims, verifier.Algorithm(alg), sign)
			if err != nil {
				return err
			}

			docJSON, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return err
			}

			fmt.Fprintln(os.Stdout, token)
			fmt.Fprintln(os.Stdout, string(docJSON))
			return nil
		},
	}

	cmd.Flags().StringVar(&issuer, "issuer", "did:ethr:0x0000000000000000000000000000000000000000", "Issuer DID")
	cmd.Flags().StringVar(&subject, "subject", "system-test", "Subject claim")
	cmd.Flags().StringVar(&alg, "alg", string(verifier.AlgES256K), "Signature algorithm: ES256K, ES256K-R, Ed25519")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	cmd.Flags().BoolVar(&personal, "personal", false, "Sign the personal-message keccak digest")

	return cmd
}
