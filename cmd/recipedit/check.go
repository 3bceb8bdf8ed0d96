package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/recipedit/internal/document"
	"github.com/hammamikhairi/recipedit/internal/domain"
)

func newCheckCmd() *cobra.Command {
	var draft bool
	cmd := &cobra.Command{
		Use:   "check FILE...",
		Short: "Validate recipe documents",
		Long: `Run recipe documents through the same checks an import uses and
report every failing field. Without --draft a document must carry its id.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bad := 0
			for _, path := range args {
				if !checkFile(cmd.OutOrStdout(), path, draft) {
					bad++
				}
			}
			if bad > 0 {
				return fmt.Errorf("%d of %d documents invalid", bad, len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&draft, "draft", false, "accept documents without a recipe id")
	return cmd
}

// checkFile reports on one document and returns whether it passed.
func checkFile(out io.Writer, path string, draft bool) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", path, err)
		return false
	}
	format := document.DetectFormat(path, data)

	var steps int
	if draft {
		d, perr := document.ParseDraft(data, format)
		err = perr
		if d != nil {
			steps = len(d.Steps)
		}
	} else {
		r, perr := document.ParseRecipe(data, format)
		err = perr
		if r != nil {
			steps = len(r.Steps)
		}
	}
	if err != nil {
		fmt.Fprintf(out, "%s: invalid\n", path)
		var fe domain.FieldErrors
		if errors.As(err, &fe) {
			for _, e := range fe {
				fmt.Fprintf(out, "  %s\n", e.Error())
			}
		} else {
			fmt.Fprintf(out, "  %v\n", err)
		}
		return false
	}
	fmt.Fprintf(out, "%s: ok (%s)\n", path, pluralize(steps, "step"))
	return true
}
