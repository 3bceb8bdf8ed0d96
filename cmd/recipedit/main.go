// recipedit edits disassembly recipes: ordered lists of image-capture and
// unscrewing steps for a battery cell robot.
//
// Usage:
//
//	recipedit [--config FILE] [--log-level LEVEL]   interactive editor
//	recipedit check FILE...                         validate documents
//	recipedit compose                               guided recipe form
//	recipedit convert FILE --to yaml|json           re-encode a document
package main

import (
	"context"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hammamikhairi/recipedit/internal/config"
	"github.com/hammamikhairi/recipedit/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, &runtimeEnv{}, os.Args[1:])
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// run executes the root command and releases the log file however the
// command ends. Cobra skips post-run hooks when RunE fails.
func run(ctx context.Context, env *runtimeEnv, args []string) error {
	defer env.close()

	root := newRootCmd(env)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// runtimeEnv is what every subcommand gets after configuration.
type runtimeEnv struct {
	cfg     *config.Config
	log     *logger.Logger
	logFile *os.File
}

func (e *runtimeEnv) close() {
	if e.logFile != nil {
		e.logFile.Close()
	}
}

func newRootCmd(env *runtimeEnv) *cobra.Command {
	var cfgFile string
	v := config.New()

	root := &cobra.Command{
		Use:          "recipedit",
		Short:        "Edit battery disassembly recipes",
		Long:         "Create, edit, validate and export recipes made of TakeImage and Unscrewing steps.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}
			env.cfg = cfg
			env.log, env.logFile = openLog(cfg)
			if cfg.File != "" {
				env.log.Info("config loaded from %s", cfg.File)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(cmd.Context(), env)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.recipedit.yaml)")
	flags.String("log-level", "normal", "log verbosity: off, normal or verbose")
	flags.String("log-file", "recipedit.log", "file to write logs to (\"stderr\" logs to the console)")
	flags.String("export-dir", ".", "directory exported recipes are written to")
	flags.String("export-format", "json", "default export format: json or yaml")
	flags.String("inbox", "", "directory watched for recipe documents to import")
	bindFlags(v, root, map[string]string{
		config.KeyLogLevel:     "log-level",
		config.KeyLogFile:      "log-file",
		config.KeyExportDir:    "export-dir",
		config.KeyExportFormat: "export-format",
		config.KeyInboxDir:     "inbox",
	})

	root.AddCommand(
		newCheckCmd(),
		newComposeCmd(env),
		newConvertCmd(),
	)
	return root
}

func bindFlags(v *viper.Viper, cmd *cobra.Command, keys map[string]string) {
	for key, flag := range keys {
		if err := v.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", flag, err))
		}
	}
}

// openLog directs logs to a file by default so the REPL stays clean.
// The returned file is nil when logging to stderr.
func openLog(cfg *config.Config) (*logger.Logger, *os.File) {
	var out io.Writer = os.Stderr
	var file *os.File

	if cfg.LogFile != "" && cfg.LogFile != "stderr" {
		if dir := filepath.Dir(cfg.LogFile); dir != "" && dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", cfg.LogFile, err)
		} else {
			out = f
			file = f
		}
	}

	// Third-party libraries that use the std log package go to the same place.
	stdlog.SetOutput(out)
	stdlog.SetFlags(stdlog.Ltime)

	return logger.New(cfg.LogLevel, out), file
}
