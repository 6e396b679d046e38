package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/helpdesk/internal/flagx"
	"github.com/dmitrijs2005/helpdesk/internal/timex"
	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape. Pointer fields distinguish "not set"
// from zero values so a partial file only overrides what it names.
type fileConfig struct {
	APIURL         *string         `json:"api_url" yaml:"api_url"`
	RequestTimeout *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	SessionCookie  *string         `json:"session_cookie" yaml:"session_cookie"`
	LogLevel       *string         `json:"log_level" yaml:"log_level"`
	Admin          *bool           `json:"admin" yaml:"admin"`
}

// parseFile overlays cfg with the file named by -c/-config, if any.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc fileConfig) apply(cfg *Config) {
	if fc.APIURL != nil {
		cfg.APIURL = *fc.APIURL
	}
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.SessionCookie != nil {
		cfg.SessionCookie = *fc.SessionCookie
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.Admin != nil {
		cfg.Admin = *fc.Admin
	}
}
