package main

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	theme "github.com/goliatone/go-theme"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/goliatone/go-dynform/internal/logging"
	"github.com/goliatone/go-dynform/pkg/orchestrator"
)

// Config is the merged result of defaults, config file, DYNFORM_* env vars
// and flags.
type Config struct {
	LogLevel string            `mapstructure:"log_level"`
	Locale   string            `mapstructure:"locale"`
	Endpoint string            `mapstructure:"endpoint"`
	BaseURL  string            `mapstructure:"base_url"`
	DryRun   bool              `mapstructure:"dry_run"`
	Timeout  time.Duration     `mapstructure:"timeout"`
	Headers  map[string]string `mapstructure:"headers"`
	Addr     string            `mapstructure:"addr"`
	Theme    ThemeConfig       `mapstructure:"theme"`
	Messages MessagesConfig    `mapstructure:"messages"`
}

// ThemeConfig overrides renderer tokens.
type ThemeConfig struct {
	Name    string            `mapstructure:"name"`
	Variant string            `mapstructure:"variant"`
	Tokens  map[string]string `mapstructure:"tokens"`
}

// MessagesConfig carries the banner messages.
type MessagesConfig struct {
	Success string `mapstructure:"success"`
	Error   string `mapstructure:"error"`
}

type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     Config
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "dynform",
		Short:         "Fill, render and serve declarative forms",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initConfig()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "config file (default: ./.dynform.yaml or ~/.config/dynform/config.yaml)")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	flags.String("locale", "tr", "locale for built-in messages (tr, en)")
	_ = a.v.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("locale", flags.Lookup("locale"))

	root.AddCommand(newFillCmd(a), newRenderCmd(a), newServeCmd(a))
	return root
}

func (a *app) initConfig() error {
	v := a.v
	v.SetDefault("log_level", "warn")
	v.SetDefault("locale", "tr")
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("addr", ":8080")

	v.SetEnvPrefix("DYNFORM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if a.cfgFile != "" {
		v.SetConfigFile(a.cfgFile)
	} else if _, err := os.Stat(".dynform.yaml"); err == nil {
		v.SetConfigFile(".dynform.yaml")
	} else {
		home, _ := os.UserHomeDir()
		v.AddConfigPath(filepath.Join(home, ".config", "dynform"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(&a.cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	a.logger = logging.New(a.cfg.LogLevel)
	a.logger.Debug("config loaded", zap.String("file", v.ConfigFileUsed()), zap.String("locale", a.cfg.Locale))
	return nil
}

// formOptions turns the configuration into orchestrator options. The
// document endpoint is resolved against base_url when it is relative.
func (a *app) formOptions(docEndpoint string) ([]orchestrator.Option, error) {
	opts := []orchestrator.Option{
		orchestrator.WithLogger(a.logger),
		orchestrator.WithLocale(a.cfg.Locale),
		orchestrator.WithDryRun(a.cfg.DryRun),
		orchestrator.WithHTTPClient(&http.Client{Timeout: a.cfg.Timeout}),
	}
	for k, v := range a.cfg.Headers {
		opts = append(opts, orchestrator.WithHeader(k, v))
	}
	if a.cfg.Messages.Success != "" {
		opts = append(opts, orchestrator.WithSuccessMessage(a.cfg.Messages.Success))
	}
	if a.cfg.Messages.Error != "" {
		opts = append(opts, orchestrator.WithCustomErrorMessage(a.cfg.Messages.Error))
	}

	endpoint := a.cfg.Endpoint
	if endpoint == "" {
		endpoint = docEndpoint
	}
	if endpoint != "" && a.cfg.BaseURL != "" {
		resolved, err := resolveEndpoint(a.cfg.BaseURL, endpoint)
		if err != nil {
			return nil, err
		}
		endpoint = resolved
	}
	if endpoint != "" {
		opts = append(opts, orchestrator.WithEndpoint(endpoint))
	}
	return opts, nil
}

func resolveEndpoint(base, endpoint string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base_url %q: %w", base, err)
	}
	e, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	return b.ResolveReference(e).String(), nil
}

// configSelector serves the theme declared in the config file.
type configSelector struct {
	cfg ThemeConfig
}

func (s configSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if name == "" {
		name = s.cfg.Name
	}
	if name != s.cfg.Name {
		return nil, fmt.Errorf("theme %q is not configured", name)
	}
	return &theme.Selection{
		Theme:   name,
		Variant: variant,
		Manifest: &theme.Manifest{
			Name:   name,
			Tokens: s.cfg.Tokens,
		},
	}, nil
}
