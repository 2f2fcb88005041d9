package cmd

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/linanwx/helpdock/assistant"
	"github.com/linanwx/helpdock/config"
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Create the helpdock configuration",
	Long:  `Create the helpdock configuration directory and config file interactively.`,
	RunE:  runOnboard,
}

var onboardForce bool

func init() {
	onboardCmd.Flags().BoolVar(&onboardForce, "force", false, "Overwrite an existing config file")
	rootCmd.AddCommand(onboardCmd)
}

// toggleKeys are the suggested shortcuts, in bubbletea key notation.
var toggleKeys = []huh.Option[string]{
	huh.NewOption("ctrl+` (sent as ctrl+@) [Recommended]", "ctrl+@"),
	huh.NewOption("F2", "f2"),
	huh.NewOption("ctrl+o", "ctrl+o"),
	huh.NewOption("alt+h", "alt+h"),
}

func runOnboard(_ *cobra.Command, _ []string) error {
	configPath, err := config.ConfigPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(configPath); err == nil && !onboardForce {
		fmt.Println("Config already exists at:", configPath)
		fmt.Println("To reconfigure, edit the file directly or run 'helpdock onboard --force'.")
		return nil
	}

	cfg := config.DefaultConfig()
	var (
		baseURL     = cfg.Service.BaseURL
		toggleKey   = cfg.Widget.ToggleKey
		maxMessages = strconv.Itoa(cfg.Widget.MaxMessages)
		logLevel    = cfg.Logging.Level
	)

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Assistant service URL").
				Description("Base URL of the assistant API, default "+assistant.DefaultBaseURL).
				Validate(validateBaseURL).
				Value(&baseURL),
			huh.NewSelect[string]().
				Title("Toggle shortcut").
				Description("Opens and hides the chat panel from anywhere.").
				Options(toggleKeys...).
				Value(&toggleKey),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Transcript limit").
				Description("Oldest messages are dropped beyond this many. 0 keeps everything.").
				Validate(func(s string) error {
					if n, err := strconv.Atoi(strings.TrimSpace(s)); err != nil || n < 0 {
						return fmt.Errorf("enter a whole number, 0 or more")
					}
					return nil
				}).
				Value(&maxMessages),
			huh.NewSelect[string]().
				Title("Log level").
				Options(huh.NewOptions("debug", "info", "warn", "error")...).
				Value(&logLevel),
		),
	).Run()
	if err != nil {
		return err
	}

	cfg.Service.BaseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	cfg.Widget.ToggleKey = toggleKey
	cfg.Widget.MaxMessages, _ = strconv.Atoi(strings.TrimSpace(maxMessages))
	cfg.Logging.Level = logLevel

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("helpdock initialized successfully!")
	fmt.Println()
	fmt.Println("  Config:", configPath)
	fmt.Println("  Service:", cfg.Service.BaseURL)
	fmt.Println("  Toggle:", cfg.Widget.ToggleKey)
	fmt.Println()
	fmt.Println("Run 'helpdock' to open the widget.")
	return nil
}

func validateBaseURL(s string) error {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL must start with http:// or https://")
	}
	if u.Host == "" {
		return fmt.Errorf("URL needs a host")
	}
	return nil
}
