package main

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kashguard/go-did-auth/internal/did"
	"github.com/kashguard/go-did-auth/internal/jwt"
)

func newVerifyCmd() *cobra.Command {
	var (
		docPath  string
		personal bool
		chainID  uint64
	)

	cmd := &cobra.Command{
		Use:   "verify <token>",
		Short: "Verify a compact token against a DID document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(docPath)
			if err != nil {
				return errors.Wrap(err, "failed to read DID document")
			}
			var doc did.Document
			if err := json.Unmarshal(raw, &doc); err != nil {
				return err
			}

			result, err := jwt.Verify(cmd.Context(), args[0], did.NewStaticResolver(&doc), jwt.VerifyOptions{
				PersonalSign: personal,
				ChainID:      chainID,
			})
			if err != nil {
				return err
			}

			log.Info().
				Str("issuer", result.Token.Issuer).
				Str("algorithm", string(result.Token.Algorithm)).
				Str("key_id", result.Method.ID).
				Msg("Token signature verified")

			return json.NewEncoder(os.Stdout).Encode(result.Token.Claims)
		},
	}

	cmd.Flags().StringVar(&docPath, "doc", "", "Path to the issuer's DID document (JSON)")
	cmd.Flags().BoolVar(&personal, "personal", false, "Verify against the personal-message keccak digest")
	cmd.Flags().Uint64Var(&chainID, "chain-id", 0, "Chain id for chain-bound recovery bytes")
	_ = cmd.MarkFlagRequired("doc")

	return cmd
}
