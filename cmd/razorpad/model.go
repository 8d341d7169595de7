package main

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cecil-the-coder/razorpad-kit/pkg/config"
	"github.com/cecil-the-coder/razorpad-kit/pkg/types"
)

func newModelCmd(a *app) *cobra.Command {
	var (
		provider string
		file     string
	)

	cmd := &cobra.Command{
		Use:   "model",
		Short: "Resolve a model provider and print its model as JSON",
		Long: `Resolve a model provider by name and print the model it produces.

Unknown names fall back to the default provider. With --file the named
built-in provider reads its document from that file.

Examples:
  razorpad model --provider json --file model.json
  razorpad model --provider orders`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var extra []config.ProviderEntry
			if file != "" {
				kind := types.ProviderType(strings.ToLower(provider))
				if !slices.Contains(fileProviderTypes, kind) {
					return fmt.Errorf("--file needs --provider to be one of %s, got %q", joinTypes(fileProviderTypes), provider)
				}
				extra = append(extra, config.ProviderEntry{Type: kind, File: file})
			}
			r, err := a.registry(extra...)
			if err != nil {
				return err
			}

			model, err := getModel(cmd, r.Create(provider))
			if err != nil {
				return err
			}
			return printJSON(cmd, model)
		},
	}

	cmd.Flags().StringVarP(&provider, "provider", "p", string(types.ProviderTypeJSON), "provider name")
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the model document from this file")
	return cmd
}

// fileProviderTypes are the built-in types that can read a model file.
var fileProviderTypes = []types.ProviderType{types.ProviderTypeJSON, types.ProviderTypeXML, types.ProviderTypeYAML}

func joinTypes(ts []types.ProviderType) string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

func getModel(cmd *cobra.Command, p types.ModelProvider) (any, error) {
	if cp, ok := p.(types.ContextModelProvider); ok {
		return cp.GetModelContext(cmd.Context())
	}
	return p.GetModel()
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding model: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
