// Package cmd implements the helpdock command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/linanwx/helpdock/config"
	"github.com/linanwx/helpdock/logger"
	"github.com/spf13/cobra"
)

var (
	configDirFlag string
	logLevelFlag  string

	// appConfig is loaded once before any subcommand runs.
	appConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "helpdock",
	Short: "A terminal chat widget for your site assistant",
	Long: `helpdock puts a floating chat panel over your terminal and connects it to
the site assistant service. Drag the panel by its header, resize it from any
corner, and toggle it with the configured shortcut.

Examples:
  helpdock                         # Open the widget (same as 'helpdock run')
  helpdock ask "how do I export?"  # One question, one answer
  helpdock health --wait           # Wait until the service is ready`,
	SilenceUsage:      true,
	PersistentPreRunE: loadRuntime,
	PersistentPostRun: func(*cobra.Command, []string) {
		_ = logger.Close()
	},
	RunE: runWidget,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config-dir", "", "Config directory (default ~/.helpdock)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Override the configured log level")
	rootCmd.AddGroup(
		&cobra.Group{ID: "widget", Title: "Widget Commands:"},
		&cobra.Group{ID: "service", Title: "Service Commands:"},
	)
	addRunFlags(rootCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadRuntime(cmd *cobra.Command, _ []string) error {
	config.SetConfigDir(configDirFlag)
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	appConfig = cfg

	dir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.BuildLoggerConfig(), dir); err != nil {
		fmt.Fprintln(os.Stderr, "logger init error:", err)
	}
	if logLevelFlag != "" {
		logger.SetLevel(logLevelFlag)
	}
	logger.Debug("config loaded", "command", cmd.Name(), "baseUrl", cfg.Service.BaseURL)
	return nil
}
