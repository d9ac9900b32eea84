// Package cli wires the application commands: an interactive chat TUI, a
// one-shot ask, and a retrieval inspector.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"chatassist/internal/config"
	"chatassist/internal/logging"
)

var (
	cfgFile    string
	verbose    bool
	currentCfg *config.AppConfig
	logger     = logging.NewNop()
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:           "chatassist",
	Short:         "chatassist — chat with a local model over your own documents",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env may carry API keys for the OpenAI-compatible embedder.
		_ = godotenv.Load()

		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger = logging.New(logging.Config{Level: level})

		if cfgFile != "" {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			currentCfg = cfg
			return nil
		}
		cfg, path, err := config.LoadDefault()
		if err != nil {
			return err
		}
		currentCfg = cfg
		logger.Debug("config loaded", "path", path)
		return nil
	},
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ./config.yaml, then ~/.config/chatassist/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
