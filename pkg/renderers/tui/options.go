package tui

import (
	"io"

	"go.uber.org/zap"
)

// Theme captures the prefixes the prompter puts in front of messages.
type Theme struct {
	InfoPrefix    string
	ErrorPrefix   string
	SuccessPrefix string
}

// DefaultTheme is used when WithTheme is not given.
var DefaultTheme = Theme{InfoPrefix: "ℹ ", ErrorPrefix: "✗ ", SuccessPrefix: "✓ "}

// Option configures the Prompter.
type Option func(*Prompter)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(p *Prompter) {
		if driver != nil {
			p.driver = driver
		}
	}
}

// WithOutput sets where the default survey driver prints messages.
func WithOutput(w io.Writer) Option {
	return func(p *Prompter) {
		if w != nil {
			p.out = w
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(p *Prompter) {
		p.theme = theme
	}
}

// WithMaxRounds bounds how many times an invalid form is re-prompted and
// resubmitted. Values below one are ignored.
func WithMaxRounds(n int) Option {
	return func(p *Prompter) {
		if n > 0 {
			p.maxRounds = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Prompter) {
		if logger != nil {
			p.logger = logger
		}
	}
}
