package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the credentials and endpoints for the two upstream
// services plus the session/cookie settings.
type Config struct {
	ForgeClientID     string `envconfig:"FORGE_CLIENT_ID" required:"true"`
	ForgeClientSecret string `envconfig:"FORGE_CLIENT_SECRET" required:"true"`
	ForgeBaseURL      string `envconfig:"FORGE_BASE_URL" default:"https://developer.api.autodesk.com"`

	BoxClientID     string `envconfig:"BOX_CLIENT_ID" required:"true"`
	BoxClientSecret string `envconfig:"BOX_CLIENT_SECRET" required:"true"`
	BoxAPIBaseURL   string `envconfig:"BOX_API_BASE_URL" default:"https://api.box.com/2.0"`
	BoxAuthURL      string `envconfig:"BOX_AUTH_URL" default:"https://account.box.com/api/oauth2/authorize"`
	BoxTokenURL     string `envconfig:"BOX_TOKEN_URL" default:"https://api.box.com/oauth2/token"`
	BoxCallbackURL  string `envconfig:"BOX_CALLBACK_URL" default:"http://localhost:3000/box/callback"`

	SessionCookieName   string `envconfig:"SESSION_COOKIE_NAME" default:"forgebox_session"`
	SessionCookieSecure bool   `envconfig:"SESSION_COOKIE_SECURE" default:"false"`
	SessionTTLMinutes   int    `envconfig:"SESSION_TTL_MINUTES" default:"60"`

	WebDir string `envconfig:"WEB_DIR" default:"www"`
}

// Load reads configuration from the environment, optionally seeded from
// a .env file. A missing .env file is not an error.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		_ = godotenv.Load(envFile)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.ForgeClientID) == "" {
		return fmt.Errorf("FORGE_CLIENT_ID is required")
	}
	if strings.TrimSpace(c.ForgeClientSecret) == "" {
		return fmt.Errorf("FORGE_CLIENT_SECRET is required")
	}
	if strings.TrimSpace(c.BoxClientID) == "" {
		return fmt.Errorf("BOX_CLIENT_ID is required")
	}
	if strings.TrimSpace(c.BoxClientSecret) == "" {
		return fmt.Errorf("BOX_CLIENT_SECRET is required")
	}
	if c.SessionTTLMinutes < 1 {
		return fmt.Errorf("SESSION_TTL_MINUTES must be >= 1")
	}
	return nil
}
