package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	envAPIURL        = "HELPDESK_API_URL"
	envTimeout       = "HELPDESK_TIMEOUT"
	envLogLevel      = "HELPDESK_LOG_LEVEL"
	envSessionCookie = "HELPDESK_SESSION_COOKIE"
	envAdmin         = "HELPDESK_ADMIN"
)

// parseEnv overlays cfg with values from envFile (read without touching the
// process environment) and from lookup. lookup wins over the file. A
// missing envFile is not an error.
func parseEnv(cfg *Config, envFile string, lookup func(string) (string, bool)) error {
	fileVals, err := godotenv.Read(envFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read %s: %w", envFile, err)
		}
		fileVals = map[string]string{}
	}

	get := func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := fileVals[key]
		return v, ok
	}

	if v, ok := get(envAPIURL); ok {
		cfg.APIURL = v
	}
	if v, ok := get(envTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envTimeout, err)
		}
		cfg.RequestTimeout = d
	}
	if v, ok := get(envLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := get(envSessionCookie); ok {
		cfg.SessionCookie = v
	}
	if v, ok := get(envAdmin); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envAdmin, err)
		}
		cfg.Admin = b
	}
	return nil
}
