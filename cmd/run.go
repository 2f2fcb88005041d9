package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/linanwx/helpdock/assistant"
	"github.com/linanwx/helpdock/channel"
	"github.com/linanwx/helpdock/channel/tui"
	"github.com/linanwx/helpdock/chatmd"
	"github.com/linanwx/helpdock/config"
	"github.com/linanwx/helpdock/internal/health"
	"github.com/linanwx/helpdock/logger"
	"github.com/linanwx/helpdock/widget"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:     "run",
	Short:   "Open the chat widget",
	GroupID: "widget",
	Long: `Open the chat widget. On a terminal the widget is a floating panel over the
log view; toggle it with the configured shortcut (ctrl+@ by default, which is
what most terminals send for ctrl+backtick). When stdin is not a terminal,
each input line is sent as a message and the reply is printed.

Plain mode commands:
  /reset   start a new conversation
  /quit    exit`,
	RunE: runWidget,
}

var (
	runPlain bool
	runOpen  bool
)

func init() {
	addRunFlags(runCmd)
	rootCmd.AddCommand(runCmd)
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&runPlain, "plain", false, "Use the line-oriented host even on a terminal")
	cmd.Flags().BoolVar(&runOpen, "open", false, "Start with the panel open")
}

func runWidget(_ *cobra.Command, _ []string) error {
	cfg := appConfig
	client := assistant.New(cfg.Service.BaseURL, cfg.ClientOptions()...)
	ctrl := widget.New(client, cfg.WidgetOptions())
	if runOpen {
		ctrl.Toggle()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			logger.Info("shutdown signal received")
			cancel()
		case <-ctx.Done():
		}
	}()

	if !cfg.Health.Disabled {
		poller := health.NewPoller(client, health.PollerOptions{
			NotReadyDelay: cfg.Health.NotReadyDelay,
			FailureDelay:  cfg.Health.FailureDelay,
		})
		go func() {
			if err := poller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("health poller stopped", "err", err)
			}
		}()
	}

	host := channel.NewHost(ctrl, hostOptions(cfg))
	logger.Info("helpdock started", "host", host.Name(), "baseUrl", client.BaseURL())
	err := host.Run(ctx)
	logger.Info("helpdock stopped")
	return err
}

func hostOptions(cfg *config.Config) channel.Options {
	theme := chatmd.DefaultTheme()
	theme.Labels = cfg.Labels()
	opts := channel.Options{
		Theme: theme,
		TUI: tui.Options{
			Title:     cfg.Widget.Title,
			ToggleKey: cfg.Widget.ToggleKey,
			PanelSize: cfg.PanelSize(),
			Limits:    cfg.PanelLimits(),
			Theme:     theme,
		},
	}
	if runPlain {
		opts.In, opts.Out = os.Stdin, os.Stdout
	}
	return opts
}
