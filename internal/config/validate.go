package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.API.WSURL == "" {
		return fmt.Errorf("api.ws_url is required")
	}
	u, err := url.Parse(c.API.WSURL)
	if err != nil {
		return fmt.Errorf("api.ws_url is not a valid URL: %w", err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return fmt.Errorf("api.ws_url scheme must be ws or wss, got %q", u.Scheme)
	}

	if c.API.RequestTimeout <= 0 {
		return fmt.Errorf("api.request_timeout must be > 0")
	}
	if c.API.ReconnectInterval <= 0 {
		return fmt.Errorf("api.reconnect_interval must be > 0")
	}
	if c.API.HandshakeTimeout <= 0 {
		return fmt.Errorf("api.handshake_timeout must be > 0")
	}
	if c.API.WriteTimeout <= 0 {
		return fmt.Errorf("api.write_timeout must be > 0")
	}
	if c.API.BufferSize < 1 {
		return fmt.Errorf("api.buffer_size must be >= 1")
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error; got %q", c.Log.Level)
	}

	return nil
}
