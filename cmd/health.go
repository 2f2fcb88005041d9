package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/linanwx/helpdock/assistant"
	"github.com/linanwx/helpdock/config"
	"github.com/linanwx/helpdock/internal/health"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var healthCmd = &cobra.Command{
	Use:     "health",
	Short:   "Check whether the assistant service is ready",
	GroupID: "service",
	RunE:    runHealth,
}

var (
	healthFormat  string
	healthWait    bool
	healthTimeout time.Duration
)

func init() {
	healthCmd.Flags().StringVar(&healthFormat, "format", "yaml", "Output format: yaml or json")
	healthCmd.Flags().BoolVar(&healthWait, "wait", false, "Poll until the service reports ready")
	healthCmd.Flags().DurationVar(&healthTimeout, "timeout", 2*time.Minute, "Give up waiting after this long")
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, _ []string) error {
	cfg := appConfig
	client := assistant.New(cfg.Service.BaseURL, cfg.ClientOptions()...)
	ctx := cmd.Context()

	if healthWait {
		wctx, cancel := context.WithTimeout(ctx, healthTimeout)
		defer cancel()
		poller := health.NewPoller(client, health.PollerOptions{
			NotReadyDelay: cfg.Health.NotReadyDelay,
			FailureDelay:  cfg.Health.FailureDelay,
			OnStatus: func(s health.Status) {
				switch {
				case s.Err != nil:
					fmt.Fprintf(cmd.ErrOrStderr(), "unreachable: %v\n", s.Err)
				case !s.Ready:
					fmt.Fprintf(cmd.ErrOrStderr(), "not ready: %s\n", s.Message)
				}
			},
		})
		if err := poller.Run(wctx); err != nil {
			return fmt.Errorf("service not ready after %s: %w", healthTimeout, err)
		}
	}

	configFile, _ := config.ConfigPath()
	snap := health.Collect(ctx, health.Options{
		BaseURL:    client.BaseURL(),
		Checker:    client,
		ConfigFile: configFile,
		LogFile:    cfg.Logging.File,
	})

	var (
		data []byte
		err  error
	)
	switch healthFormat {
	case "json":
		data, err = json.MarshalIndent(snap, "", "  ")
		data = append(data, '\n')
	case "yaml":
		data, err = yaml.Marshal(snap)
	default:
		return fmt.Errorf("unknown format %q", healthFormat)
	}
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if _, err := cmd.OutOrStdout().Write(data); err != nil {
		return err
	}
	if snap.Status == "unreachable" {
		return fmt.Errorf("assistant service at %s is unreachable", client.BaseURL())
	}
	return nil
}
