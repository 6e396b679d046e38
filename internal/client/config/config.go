package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/dmitrijs2005/helpdesk/internal/common"
)

// Config holds runtime settings for the helpdesk CLI.
type Config struct {
	// APIURL is the backend base URL; endpoint paths are appended to it.
	APIURL         string
	RequestTimeout time.Duration
	// SessionCookie names the cookie carrying the session token.
	SessionCookie string
	LogLevel      string
	// Admin selects the administrator login and dashboard flows.
	Admin bool
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.APIURL = "http://localhost:5000"
	c.RequestTimeout = 15 * time.Second
	c.SessionCookie = common.DefaultSessionCookieName
	c.LogLevel = "info"
	c.Admin = false
}

// Validate checks the merged configuration.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api url %q: scheme must be http or https", c.APIURL)
	}
	if u.Host == "" {
		return fmt.Errorf("api url %q: missing host", c.APIURL)
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request timeout must be positive")
	}
	if c.SessionCookie == "" {
		return errors.New("session cookie name must not be empty")
	}
	return nil
}

// Load builds a Config from defaults, the optional config file, .env and
// the environment, and finally the given command-line args (without the
// program name).
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, ".env", os.LookupEnv); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
