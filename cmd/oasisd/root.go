package main

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/oasisdoc/version"
)

type rootFlags struct {
	configFile string
	envFile    string
}

func newRootCmd() *cobra.Command {
	var flags rootFlags
	root := &cobra.Command{
		Use:   "oasisd",
		Short: "OASIS-E1 visit documentation from clinician/patient transcripts",
		Long: `oasisd extracts OASIS-E1 documentation elements from a home-health visit
transcript with a chat completion model, one element at a time in dependency
order. It runs as an HTTP service or as a one-shot command.`,
		Version:       version.GetShortVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
	}
	root.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "path to config.yml")
	root.PersistentFlags().StringVar(&flags.envFile, "env-file", "", "path to a .env file")

	root.AddCommand(
		newServeCmd(&flags),
		newGenerateCmd(&flags),
		newElementsCmd(),
		newVersionCmd(),
	)
	return root
}
