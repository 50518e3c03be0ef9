package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"keepapush/internal/connection"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fetcher.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	yaml := `
api:
  ws_url: wss://push2.keepa.com/apps/cloud/
  user_agent: custom-agent/2.0
  request_timeout: 10s
log:
  level: debug
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.API.WSURL != "wss://push2.keepa.com/apps/cloud/" {
		t.Errorf("API.WSURL = %q", cfg.API.WSURL)
	}
	if cfg.API.UserAgent != "custom-agent/2.0" {
		t.Errorf("API.UserAgent = %q, want custom-agent/2.0", cfg.API.UserAgent)
	}
	if cfg.API.RequestTimeout != 10*time.Second {
		t.Errorf("API.RequestTimeout = %v, want 10s", cfg.API.RequestTimeout)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_USER_AGENT", "agent-from-env/1.0")

	yaml := `
api:
  user_agent: ${TEST_USER_AGENT}
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.API.UserAgent != "agent-from-env/1.0" {
		t.Errorf("API.UserAgent = %q, want agent-from-env/1.0", cfg.API.UserAgent)
	}
}

func TestLoadWithDefaults(t *testing.T) {
	path := writeTempFile(t, "api: {}\n")

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}

	if cfg.API.WSURL != connection.DefaultURL {
		t.Errorf("API.WSURL = %q, want default %q", cfg.API.WSURL, connection.DefaultURL)
	}
	if cfg.API.UserAgent != connection.DefaultUserAgent {
		t.Errorf("API.UserAgent = %q, want default", cfg.API.UserAgent)
	}
	if cfg.API.RequestTimeout != DefaultRequestTimeout {
		t.Errorf("API.RequestTimeout = %v, want default %v", cfg.API.RequestTimeout, DefaultRequestTimeout)
	}
	if cfg.API.ReconnectInterval != DefaultReconnectInterval {
		t.Errorf("API.ReconnectInterval = %v, want default %v", cfg.API.ReconnectInterval, DefaultReconnectInterval)
	}
	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("Log.Level = %q, want default %q", cfg.Log.Level, DefaultLogLevel)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid defaults",
			mutate: func(c *Config) {},
		},
		{
			name:    "bad scheme",
			mutate:  func(c *Config) { c.API.WSURL = "https://push2.keepa.com/" },
			wantErr: "scheme",
		},
		{
			name:    "missing url",
			mutate:  func(c *Config) { c.API.WSURL = "" },
			wantErr: "ws_url is required",
		},
		{
			name:    "zero request timeout",
			mutate:  func(c *Config) { c.API.RequestTimeout = 0 },
			wantErr: "request_timeout",
		},
		{
			name:    "negative reconnect interval",
			mutate:  func(c *Config) { c.API.ReconnectInterval = -time.Second },
			wantErr: "reconnect_interval",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Log.Level = "verbose" },
			wantErr: "log.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate failed: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestManagerConfig(t *testing.T) {
	cfg := Default()
	cfg.API.RequestTimeout = 42 * time.Second

	mc := cfg.ManagerConfig()
	if mc.URL != cfg.API.WSURL {
		t.Errorf("URL = %q, want %q", mc.URL, cfg.API.WSURL)
	}
	if mc.RequestTimeout != 42*time.Second {
		t.Errorf("RequestTimeout = %v, want 42s", mc.RequestTimeout)
	}
}
