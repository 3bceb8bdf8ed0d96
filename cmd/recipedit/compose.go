package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/recipedit/internal/display"
	"github.com/hammamikhairi/recipedit/internal/document"
	"github.com/hammamikhairi/recipedit/internal/domain"
	"github.com/hammamikhairi/recipedit/internal/engine"
	"github.com/hammamikhairi/recipedit/internal/recipe"
)

func newComposeCmd(env *runtimeEnv) *cobra.Command {
	var from, formatArg string
	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Build a recipe with a guided form and export it",
		Long: `Walk through the recipe form one step at a time. Coordinates are asked
for only when the chosen scope or mode needs them. The finished recipe is
written to the export directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := env.log

			opts := []engine.Option{engine.WithExportFormat(env.cfg.ExportFormat)}
			if formatArg != "" {
				f, err := document.ParseFormat(formatArg)
				if err != nil {
					return err
				}
				opts = append(opts, engine.WithExportFormat(f))
			}
			eng := engine.New(recipe.NewMemoryStore(log), display.NewHuhConfirmer(nil), log, opts...)

			if err := eng.StartCreate(); err != nil {
				return err
			}
			if from != "" {
				data, err := os.ReadFile(from)
				if err != nil {
					return err
				}
				if err := eng.ImportDraft(data, document.DetectFormat(from, data)); err != nil {
					return fmt.Errorf("%s: %w", from, err)
				}
			}

			if err := display.NewComposer(eng.Form(), nil).Run(ctx); err != nil {
				if errors.Is(err, display.ErrComposeAborted) {
					fmt.Fprintln(cmd.ErrOrStderr(), "Recipe discarded.")
					return nil
				}
				return err
			}

			r, err := eng.Submit(ctx)
			if errors.Is(err, domain.ErrInvalidDraft) {
				for _, fe := range eng.Form().Errors() {
					fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", fe.Error())
				}
				return errors.New("recipe not saved")
			}
			if err != nil {
				return err
			}

			data, name, err := eng.Export(ctx, r.ID, "")
			if err != nil {
				return err
			}
			path, err := writeExport(env.cfg.ExportDir, name, data)
			if err != nil {
				return err
			}
			log.Info("composed recipe %d written to %s", r.ID, path)
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %q (%s) to %s\n", r.Name, pluralize(len(r.Steps), "step"), path)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "start from an existing recipe document")
	cmd.Flags().StringVar(&formatArg, "format", "", "export format (default from config)")
	return cmd
}
