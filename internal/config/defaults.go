package config

import (
	"time"

	"keepapush/internal/connection"
)

// Default values for optional configuration fields.
const (
	DefaultRequestTimeout    = 30 * time.Second
	DefaultReconnectInterval = 5 * time.Second
	DefaultHandshakeTimeout  = 10 * time.Second
	DefaultWriteTimeout      = 5 * time.Second
	DefaultBufferSize        = 100
	DefaultLogLevel          = "info"
	DefaultLogMaxSizeMB      = 100
	DefaultLogMaxBackups     = 3
)

func (c *Config) applyDefaults() {
	if c.API.WSURL == "" {
		c.API.WSURL = connection.DefaultURL
	}
	if c.API.UserAgent == "" {
		c.API.UserAgent = connection.DefaultUserAgent
	}
	if c.API.RequestTimeout == 0 {
		c.API.RequestTimeout = DefaultRequestTimeout
	}
	if c.API.ReconnectInterval == 0 {
		c.API.ReconnectInterval = DefaultReconnectInterval
	}
	if c.API.HandshakeTimeout == 0 {
		c.API.HandshakeTimeout = DefaultHandshakeTimeout
	}
	if c.API.WriteTimeout == 0 {
		c.API.WriteTimeout = DefaultWriteTimeout
	}
	if c.API.BufferSize == 0 {
		c.API.BufferSize = DefaultBufferSize
	}

	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = DefaultLogMaxSizeMB
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = DefaultLogMaxBackups
	}
}

// ManagerConfig converts the API section into the connection package's
// configuration.
func (c *Config) ManagerConfig() connection.ManagerConfig {
	mc := connection.DefaultManagerConfig()
	mc.URL = c.API.WSURL
	mc.UserAgent = c.API.UserAgent
	mc.RequestTimeout = c.API.RequestTimeout
	mc.ReconnectInterval = c.API.ReconnectInterval
	mc.HandshakeTimeout = c.API.HandshakeTimeout
	mc.WriteTimeout = c.API.WriteTimeout
	mc.BufferSize = c.API.BufferSize
	return mc
}
