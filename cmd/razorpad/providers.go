package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newProvidersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List registered model providers",
		Long: `List the model providers registered from configuration and the
built-in catalogue, in registration order.

Examples:
  razorpad providers
  razorpad providers --config razorpad.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.registry()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, e := range r.Providers() {
				marker := ""
				if e.Factory == r.Default() {
					marker = " (default)"
				}
				fmt.Fprintf(out, "%-16s %s%s\n", e.Key, e.TypeName, marker)
			}
			return nil
		},
	}
}
