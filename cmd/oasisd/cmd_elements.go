package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kbukum/oasisdoc/oasis"
)

func newElementsCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "elements",
		Short: "List documentation elements in extraction order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := oasis.DefaultRegistry()
			if err != nil {
				return err
			}
			elements := registry.Elements()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(elements)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tDISPLAY\tDEPENDS ON")
			for _, el := range elements {
				deps := strings.Join(el.DependsOn, ",")
				if deps == "" {
					deps = "-"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", el.ID, el.Name, el.Display.Type, deps)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full catalogue as JSON")
	return cmd
}
