package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kashguard/go-did-auth/internal/util/command"
)

const verboseFlag = "verbose"

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	root := command.NewSubcommandGroup("didauth", "DID token verification tooling",
		newVerifyCmd(),
		newIssueCmd(),
	)
	root.PersistentFlags().Bool(verboseFlag, false, "Enable verbose logging")
	root.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if verbose, _ := cmd.Root().PersistentFlags().GetBool(verboseFlag); verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
	}

	if err := root.Execute(); err != nil {
		log.Fatal().Err(err).Msg("Command failed")
	}
}
