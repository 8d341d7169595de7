package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cecil-the-coder/razorpad-kit/pkg/document"
)

func newInspectCmd(a *app) *cobra.Command {
	var (
		provider string
		meta     []string
		refs     []string
	)

	cmd := &cobra.Command{
		Use:   "inspect <template-file>",
		Short: "Show how a template document would be compiled",
		Long: `Load a template file into a document and print its kind, base class,
references, metadata and model.

Examples:
  razorpad inspect views/Index.cshtml --provider json
  razorpad inspect page.tmpl --meta author=ada --ref System.Core`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			template, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading template: %w", err)
			}

			metadata, err := parseMetadata(meta)
			if err != nil {
				return err
			}

			opts := []document.Option{
				document.WithFilename(args[0]),
				document.WithReferences(refs...),
				document.WithMetadata(metadata),
			}
			if provider != "" {
				r, err := a.registry()
				if err != nil {
					return err
				}
				opts = append(opts, document.WithModelProvider(r.Create(provider)))
			}
			doc := document.New(string(template), opts...)

			model, err := doc.GetModelContext(cmd.Context())
			if err != nil {
				return fmt.Errorf("loading model: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "filename:   %s\n", doc.Filename)
			fmt.Fprintf(out, "kind:       %s\n", doc.DocumentKind())
			fmt.Fprintf(out, "base class: %s\n", doc.TemplateBaseClassName)
			fmt.Fprintf(out, "references: %s\n", strings.Join(doc.References, ", "))
			fmt.Fprintf(out, "template:   %d bytes\n", len(doc.Template))

			md := doc.Metadata()
			keys := make([]string, 0, len(md))
			for k := range md {
				keys = append(keys, k)
			}
			slices.Sort(keys)
			fmt.Fprintln(out, "metadata:")
			for _, k := range keys {
				fmt.Fprintf(out, "  %s=%s\n", k, md[k])
			}

			fmt.Fprint(out, "model: ")
			return printJSON(cmd, model)
		},
	}

	cmd.Flags().StringVarP(&provider, "provider", "p", "", "model provider name")
	cmd.Flags().StringArrayVarP(&meta, "meta", "m", nil, "metadata entry key=value (repeatable)")
	cmd.Flags().StringArrayVarP(&refs, "ref", "r", nil, "assembly reference (repeatable)")
	return cmd
}

func parseMetadata(pairs []string) (map[string]string, error) {
	md := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid metadata %q, expected key=value", pair)
		}
		md[k] = v
	}
	return md, nil
}
