// Package config loads runtime configuration for the helpdesk CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. Files ending in
//     .yaml or .yml are read with yaml.v3, anything else as JSON.
//  3. A .env file in the working directory and the process environment
//     (the environment wins over .env).
//  4. Command-line flags.
//
// Supported flags
//
//	-a string   base URL of the helpdesk API
//	-t int      request timeout (seconds)
//	-l string   log level: debug, info, warn, error
//	-admin      start in administrator mode
//
// Environment
//
//	HELPDESK_API_URL, HELPDESK_TIMEOUT ("15s"), HELPDESK_LOG_LEVEL,
//	HELPDESK_SESSION_COOKIE
//
// # File schema
//
//	{
//	  "api_url": "https://helpdesk.example.com",
//	  "request_timeout": "15s",
//	  "session_cookie": "jwt",
//	  "log_level": "info",
//	  "admin": false
//	}
package config
