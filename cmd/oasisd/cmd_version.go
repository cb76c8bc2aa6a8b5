package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/oasisdoc/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), serviceName, version.GetFullVersion())
			return err
		},
	}
}
