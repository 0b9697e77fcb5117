package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Config holds the configuration for the chronology service.
// Environment variables are automatically parsed from the COURTPREP_ prefix.
type Config struct {
	// Build target selects the high-level environment: local, cloud
	BuildTarget string `envconfig:"BUILD_TARGET" default:"local"`

	// Derived or override driver
	DBDriver string `envconfig:"DB_DRIVER" default:"auto"`

	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Postgres Configuration
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`

	// SQLite Configuration
	SQLitePath string `envconfig:"SQLITE_PATH" default:"data/courtprep.db"`

	// Session tokens are minted by the identity provider and verified here
	// with the shared signing key.
	SessionSigningKey string `envconfig:"SESSION_SIGNING_KEY" default:""`

	// Shared secret for the chronology unlock gate. Deliberately not
	// per-user; an empty value disables unlocking entirely.
	ChronologyPassword string `envconfig:"CHRONOLOGY_PASSWORD" default:""`

	// Wall-clock zone used to interpret hearing datetimes entered in forms.
	HearingTimeZone string `envconfig:"HEARING_TIME_ZONE" default:"Europe/London"`

	// Court-register lookup
	CourtSearchURL string `envconfig:"COURT_SEARCH_URL" default:"https://www.find-court-tribunal.service.gov.uk/search/results.json"`

	// Enquiry relay: "log" records enquiries server-side, "smtp" forwards them.
	MailMode     string `envconfig:"MAIL_MODE" default:"log"`
	SMTPHost     string `envconfig:"SMTP_HOST" default:""`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"SMTP_USERNAME" default:""`
	SMTPPassword string `envconfig:"SMTP_PASSWORD" default:""`
	MailFrom     string `envconfig:"MAIL_FROM" default:""`
	MailTo       string `envconfig:"MAIL_TO" default:""`
}

// ResolveDefaults validates BuildTarget and derives DBDriver when set to
// "auto" or empty. It also enforces the mail-relay configuration contract:
// smtp mode without a complete SMTP block is a hard startup failure.
func (c *Config) ResolveDefaults() error {
	var defaultDB string

	switch c.BuildTarget {
	case "local":
		defaultDB = "sqlite"
	case "cloud":
		defaultDB = "postgres"
	default:
		return fmt.Errorf("unsupported BUILD_TARGET: %s", c.BuildTarget)
	}

	if c.DBDriver == "" || c.DBDriver == "auto" {
		c.DBDriver = defaultDB
	}

	allowedDB := map[string]bool{"postgres": true, "sqlite": true}
	if !allowedDB[c.DBDriver] {
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}

	switch c.MailMode {
	case "log":
	case "smtp":
		if c.SMTPHost == "" || c.MailFrom == "" || c.MailTo == "" {
			return fmt.Errorf("MAIL_MODE=smtp requires SMTP_HOST, MAIL_FROM and MAIL_TO")
		}
	default:
		return fmt.Errorf("unsupported MAIL_MODE: %s", c.MailMode)
	}

	return nil
}

// New creates a new Config by parsing environment variables.
// Environment variables should be prefixed with COURTPREP_
// Example: COURTPREP_HTTP_PORT, COURTPREP_POSTGRES_DSN
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("COURTPREP", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("build_target", cfg.BuildTarget).
		Str("db_driver", cfg.DBDriver).
		Str("environment", string(cfg.Environment)).
		Int("port", cfg.HTTPPort).
		Str("mail_mode", cfg.MailMode).
		Bool("unlock_configured", cfg.ChronologyPassword != "").
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config specifically for testing.
func NewForTesting() *Config {
	return &Config{
		BuildTarget:        "local",
		DBDriver:           "sqlite",
		Environment:        EnvTesting,
		HTTPPort:           8080,
		SQLitePath:         "",
		SessionSigningKey:  "test-signing-key",
		ChronologyPassword: "test-unlock",
		HearingTimeZone:    "Europe/London",
		MailMode:           "log",
	}
}

// IsTesting returns true if the environment is set to testing
func (c *Config) IsTesting() bool {
	return c.Environment == EnvTesting
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
