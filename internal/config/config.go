package config

import "time"

// Config is the root configuration for the fetcher.
type Config struct {
	API APIConfig `yaml:"api"`
	Log LogConfig `yaml:"log"`
}

// APIConfig holds push service connection settings.
type APIConfig struct {
	WSURL             string        `yaml:"ws_url"`
	UserAgent         string        `yaml:"user_agent"`
	RequestTimeout    time.Duration `yaml:"request_timeout"`
	ReconnectInterval time.Duration `yaml:"reconnect_interval"`
	HandshakeTimeout  time.Duration `yaml:"handshake_timeout"`
	WriteTimeout      time.Duration `yaml:"write_timeout"`
	BufferSize        int           `yaml:"buffer_size"`
}

// LogConfig holds logging settings. An empty File sends output to stderr;
// otherwise the file is size-rotated.
type LogConfig struct {
	Level      string `yaml:"level"` // debug|info|warn|error
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}
