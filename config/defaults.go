package config

import (
	"strings"
	"time"

	"github.com/linanwx/helpdock/assistant"
	"github.com/linanwx/helpdock/chatmd"
	"github.com/linanwx/helpdock/logger"
	"github.com/linanwx/helpdock/panel"
	"github.com/linanwx/helpdock/widget"
)

const (
	defaultTitle         = "Assistant"
	defaultMaxMessages   = 200
	defaultToggleKey     = "ctrl+@"
	defaultNotReadyDelay = 5 * time.Second
	defaultFailureDelay  = 10 * time.Second

	// Terminal cells rather than pixels.
	defaultPanelWidth     = 48
	defaultPanelHeight    = 20
	defaultMinWidth       = 30
	defaultMinHeight      = 10
	defaultViewportMargin = 2
	defaultAnchorInset    = 1
)

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Service: ServiceConfig{
			BaseURL: assistant.DefaultBaseURL,
		},
		Health: HealthConfig{
			NotReadyDelay: defaultNotReadyDelay,
			FailureDelay:  defaultFailureDelay,
		},
		Widget: WidgetConfig{
			Title:       defaultTitle,
			MaxMessages: defaultMaxMessages,
			ToggleKey:   defaultToggleKey,
		},
		Panel:   defaultPanelConfig(),
		Logging: defaultLoggingConfig(),
	}
}

func defaultPanelConfig() PanelConfig {
	return PanelConfig{
		Width:          defaultPanelWidth,
		Height:         defaultPanelHeight,
		MinWidth:       defaultMinWidth,
		MinHeight:      defaultMinHeight,
		ViewportMargin: defaultViewportMargin,
		AnchorInset:    defaultAnchorInset,
	}
}

func defaultLoggingConfig() LoggingConfig {
	enabled := true
	return LoggingConfig{
		Enabled: &enabled,
		Level:   "info",
		Format:  "text",
		File:    "logs/helpdock.log",
	}
}

func (c *Config) applyDefaults() {
	c.Service.BaseURL = strings.TrimRight(strings.TrimSpace(c.Service.BaseURL), "/")
	if c.Service.BaseURL == "" {
		c.Service.BaseURL = assistant.DefaultBaseURL
	}
	if c.Service.Timeout < 0 {
		c.Service.Timeout = 0
	}

	if c.Health.NotReadyDelay <= 0 {
		c.Health.NotReadyDelay = defaultNotReadyDelay
	}
	if c.Health.FailureDelay <= 0 {
		c.Health.FailureDelay = defaultFailureDelay
	}

	if strings.TrimSpace(c.Widget.Title) == "" {
		c.Widget.Title = defaultTitle
	}
	if c.Widget.MaxMessages < 0 {
		c.Widget.MaxMessages = 0
	}
	if strings.TrimSpace(c.Widget.ToggleKey) == "" {
		c.Widget.ToggleKey = defaultToggleKey
	}

	def := defaultPanelConfig()
	p := &c.Panel
	if p.MinWidth <= 0 {
		p.MinWidth = def.MinWidth
	}
	if p.MinHeight <= 0 {
		p.MinHeight = def.MinHeight
	}
	if p.ViewportMargin < 0 {
		p.ViewportMargin = def.ViewportMargin
	}
	if p.AnchorInset < 0 {
		p.AnchorInset = def.AnchorInset
	}
	if p.Width < p.MinWidth {
		p.Width = max(def.Width, p.MinWidth)
	}
	if p.Height < p.MinHeight {
		p.Height = max(def.Height, p.MinHeight)
	}

	logDef := defaultLoggingConfig()
	if c.Logging.Enabled == nil {
		c.Logging.Enabled = logDef.Enabled
	}
	if c.Logging.Level == "" {
		c.Logging.Level = logDef.Level
	}
	if c.Logging.Format == "" {
		c.Logging.Format = logDef.Format
	}
	if !c.Logging.Stdout && c.Logging.File == "" {
		c.Logging.File = logDef.File
	}
}

// BuildLoggerConfig converts the logging section for logger.Init.
func (c *Config) BuildLoggerConfig() logger.Config {
	enabled := c.Logging.Enabled == nil || *c.Logging.Enabled
	return logger.Config{
		Enabled: enabled,
		Level:   c.Logging.Level,
		Format:  c.Logging.Format,
		Stdout:  c.Logging.Stdout,
		File:    c.Logging.File,
	}
}

// PanelLimits returns the geometry limits for the panel.
func (c *Config) PanelLimits() panel.Limits {
	return panel.Limits{
		MinWidth:       c.Panel.MinWidth,
		MinHeight:      c.Panel.MinHeight,
		ViewportMargin: c.Panel.ViewportMargin,
		AnchorInset:    c.Panel.AnchorInset,
	}
}

// PanelSize returns the initial panel size.
func (c *Config) PanelSize() panel.Size {
	return panel.Size{Width: c.Panel.Width, Height: c.Panel.Height}
}

// WidgetOptions builds the controller options. Unset texts keep the
// built-in strings.
func (c *Config) WidgetOptions() widget.Options {
	return widget.Options{
		Texts: widget.Texts{
			Greeting:      c.Texts.Greeting,
			ResetGreeting: c.Texts.ResetGreeting,
			Pending:       c.Texts.Pending,
			Unreachable:   c.Texts.Unreachable,
			ErrorPrefix:   c.Texts.ErrorPrefix,
			ServiceFailed: c.Texts.ServiceFailed,
		},
		MaxMessages: c.Widget.MaxMessages,
	}
}

// Labels returns the video card labels.
func (c *Config) Labels() chatmd.Labels {
	l := chatmd.DefaultLabels()
	if c.Texts.WatchVideo != "" {
		l.Watch = c.Texts.WatchVideo
	}
	if c.Texts.VideoAlt != "" {
		l.VideoAlt = c.Texts.VideoAlt
	}
	return l
}

// ClientOptions returns the assistant client options.
func (c *Config) ClientOptions() []assistant.Option {
	if c.Service.Timeout <= 0 {
		return nil
	}
	return []assistant.Option{assistant.WithTimeout(c.Service.Timeout)}
}
