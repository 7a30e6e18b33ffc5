package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/stackfield/agentstudio"
	"github.com/stackfield/agentstudio/logging"
)

var (
	cfgFile  string
	logLevel string

	// loaded by the root command's PersistentPreRunE
	settings Settings
	log      logging.Logger
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agentstudio",
		Short: "Agent Studio: catalog-driven LLM agents and step workflows",
		Long: "Agent Studio runs catalog-defined LLM agents one at a time or as " +
			"human-gated step pipelines, routing each call to the provider that " +
			"serves the chosen model.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			settings, err = LoadSettings(cfgFile)
			if err != nil {
				return err
			}
			if logLevel != "" {
				settings.LogLevel = logLevel
			}
			log = newLogger(settings.LogLevel)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./agentstudio.yaml or ~/.agentstudio/agentstudio.yaml)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newCatalogCmd())
	cmd.AddCommand(newKeysCmd())
	cmd.AddCommand(newHistoryCmd())

	return cmd
}

func newLogger(level string) logging.Logger {
	lvl := slog.LevelWarn
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "error":
		lvl = slog.LevelError
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	return logging.NewSlogAdapter(slog.New(handler))
}

// newWorkspace builds a workspace from the loaded settings, merging an
// on-disk catalog over the builtins when one is configured.
func newWorkspace() (*agentstudio.Workspace, error) {
	var doc []byte
	if settings.Catalog != "" {
		data, err := os.ReadFile(settings.Catalog)
		if err != nil {
			return nil, err
		}
		doc = data
	}
	return agentstudio.New(func(o *agentstudio.Options) {
		o.CatalogDocument = doc
		o.DefaultModel = settings.Model
		o.DefaultMaxTokens = settings.MaxTokens
		o.Temperature = settings.Temperature
		o.Logger = log
	}), nil
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}
