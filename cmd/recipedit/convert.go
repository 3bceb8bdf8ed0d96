package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/recipedit/internal/document"
)

func newConvertCmd() *cobra.Command {
	var to, output string
	cmd := &cobra.Command{
		Use:   "convert FILE",
		Short: "Re-encode a recipe document as JSON or YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := document.ParseFormat(to)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			out, err := convertDocument(data, document.DetectFormat(args[0], data), format)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
			return os.WriteFile(output, out, 0o644)
		},
	}
	cmd.Flags().StringVar(&to, "to", "yaml", "target format: json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

// convertDocument validates data and renders it in the target format.
// Documents without a recipe id are converted as drafts.
func convertDocument(data []byte, from, to document.Format) ([]byte, error) {
	if r, err := document.ParseRecipe(data, from); err == nil {
		return document.Marshal(r, to)
	}
	d, err := document.ParseDraft(data, from)
	if err != nil {
		return nil, err
	}
	return document.MarshalDraft(*d, to)
}
