// Package config loads recipedit settings from a config file, the
// environment and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/hammamikhairi/recipedit/internal/document"
	"github.com/hammamikhairi/recipedit/internal/logger"
)

// Keys understood in config files, as RECIPEDIT_* env vars and as flags.
const (
	KeyLogLevel     = "log_level"
	KeyLogFile      = "log_file"
	KeyExportDir    = "export_dir"
	KeyExportFormat = "export_format"
	KeyInboxDir     = "inbox_dir"
)

// EnvPrefix is prepended to keys when reading the environment.
const EnvPrefix = "RECIPEDIT"

// DefaultFileName is looked up in the home directory when no --config
// flag is given.
const DefaultFileName = ".recipedit"

// Config is the resolved application configuration.
type Config struct {
	LogLevel     logger.Level
	LogFile      string
	ExportDir    string
	ExportFormat document.Format
	InboxDir     string
	// File is the config file that was read, or "" when none was found.
	File string
}

// New returns a viper instance with defaults and env binding applied.
// Callers bind flags on it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyLogLevel, "normal")
	v.SetDefault(KeyLogFile, "recipedit.log")
	v.SetDefault(KeyExportDir, ".")
	v.SetDefault(KeyExportFormat, string(document.FormatJSON))
	v.SetDefault(KeyInboxDir, "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads .env (if present) and the config file, then resolves every
// key on v. An explicit cfgFile must exist; the default one is optional.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	// A missing .env is normal.
	_ = godotenv.Load()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigType("yaml")
		v.SetConfigName(DefaultFileName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	level, err := logger.ParseLevel(v.GetString(KeyLogLevel))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", KeyLogLevel, err)
	}
	format, err := document.ParseFormat(v.GetString(KeyExportFormat))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", KeyExportFormat, err)
	}

	return &Config{
		LogLevel:     level,
		LogFile:      v.GetString(KeyLogFile),
		ExportDir:    filepath.Clean(v.GetString(KeyExportDir)),
		ExportFormat: format,
		InboxDir:     v.GetString(KeyInboxDir),
		File:         v.ConfigFileUsed(),
	}, nil
}
