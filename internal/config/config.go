// Package config loads the portfolio server configuration from the
// environment, with command-line flags taking precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/pflag"
)

// Config holds every externally settable option of the server.
type Config struct {
	Port         string   `env:"PORT" envDefault:"8080"`
	DatabasePath string   `env:"DATABASE_PATH" envDefault:"portfolio.db"`
	ContentPath  string   `env:"CONTENT_PATH"`
	ImageDomains []string `env:"IMAGE_DOMAINS" envSeparator:"," envDefault:"images.unsplash.com"`
	ImageFormats []string `env:"IMAGE_FORMATS" envSeparator:"," envDefault:"image/avif,image/webp"`
	Theme        string   `env:"THEME" envDefault:"light"`

	SMTPHost  string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort  string `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser  string `env:"SMTP_USER"`
	SMTPPass  string `env:"SMTP_PASS"`
	// ContactTo falls back to TO_EMAIL, the older name for this setting.
	ContactTo string `env:"CONTACT_TO"`

	ContactTimeout time.Duration `env:"CONTACT_TIMEOUT" envDefault:"15s"`
	StubDelay      time.Duration `env:"STUB_DELAY" envDefault:"1s"`

	AdminUsername string `env:"ADMIN_USERNAME"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

// SMTPConfigured reports whether real mail delivery is possible.
func (c Config) SMTPConfigured() bool {
	return c.SMTPUser != "" && c.SMTPPass != "" && c.ContactTo != ""
}

// AdminEnabled reports whether admin credentials were supplied.
func (c Config) AdminEnabled() bool {
	return c.AdminUsername != "" && c.AdminPassword != ""
}

// Load parses the environment and then the given command-line arguments.
func Load(args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.ContactTo == "" {
		cfg.ContactTo = os.Getenv("TO_EMAIL")
	}

	flags := pflag.NewFlagSet("portfolio", pflag.ContinueOnError)
	flags.StringVarP(&cfg.Port, "port", "p", cfg.Port, "HTTP listen port")
	flags.StringVar(&cfg.DatabasePath, "db", cfg.DatabasePath, "SQLite database file")
	flags.StringVar(&cfg.ContentPath, "content", cfg.ContentPath, "YAML content file overriding the built-in content")
	flags.StringVar(&cfg.Theme, "theme", cfg.Theme, "default theme (light or dark)")
	if err := flags.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values the environment parser cannot express.
func (c Config) Validate() error {
	if c.Theme != "light" && c.Theme != "dark" {
		return fmt.Errorf("invalid theme %q: want light or dark", c.Theme)
	}
	if len(c.ImageFormats) != 2 {
		return fmt.Errorf("IMAGE_FORMATS must list exactly two encodings, got %d", len(c.ImageFormats))
	}
	for _, format := range c.ImageFormats {
		if !strings.HasPrefix(format, "image/") {
			return fmt.Errorf("invalid image format %q", format)
		}
	}
	if len(c.ImageDomains) == 0 {
		return errors.New("IMAGE_DOMAINS must not be empty")
	}
	if c.ContactTimeout <= 0 {
		return errors.New("CONTACT_TIMEOUT must be positive")
	}
	return nil
}
