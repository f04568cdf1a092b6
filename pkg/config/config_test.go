package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save current env and restore after test
	originalEnv := os.Environ()
	defer func() {
		os.Clearenv()
		for _, env := range originalEnv {
			if len(env) > 0 {
				for i := 0; i < len(env); i++ {
					if env[i] == '=' {
						os.Setenv(env[:i], env[i+1:])
						break
					}
				}
			}
		}
	}()

	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "defaults",
			env:  map[string]string{},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, "localhost", cfg.Redis.Host)
				assert.Equal(t, "http://localhost:9090", cfg.Facility.BaseURL)
				assert.Equal(t, 30*time.Minute, cfg.Session.IdleTTL)
				assert.Equal(t, 5*time.Minute, cfg.Cache.ReferenceTTL)
			},
		},
		{
			name: "custom values",
			env: map[string]string{
				"SERVER_PORT":       "9000",
				"FACILITY_BASE_URL": "https://facility.example.com",
				"FACILITY_TIMEOUT":  "10s",
				"REDIS_HOST":        "redis.example.com",
				"REDIS_PORT":        "6380",
				"SESSION_IDLE_TTL":  "15m",
				"LOG_LEVEL":         "debug",
				"APP_ENV":           "production",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9000, cfg.Server.Port)
				assert.Equal(t, "https://facility.example.com", cfg.Facility.BaseURL)
				assert.Equal(t, 10*time.Second, cfg.Facility.Timeout)
				assert.Equal(t, "redis.example.com", cfg.Redis.Host)
				assert.Equal(t, 6380, cfg.Redis.Port)
				assert.Equal(t, 15*time.Minute, cfg.Session.IdleTTL)
				assert.Equal(t, "debug", cfg.Logger.Level)
				assert.Equal(t, "production", cfg.App.Environment)
			},
		},
		{
			name: "invalid port",
			env: map[string]string{
				"SERVER_PORT": "99999",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			for k, v := range tt.env {
				os.Setenv(k, v)
			}

			cfg, err := Load()

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)

			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: 8080},
			Redis:    RedisConfig{Host: "localhost"},
			Facility: FacilityConfig{BaseURL: "http://localhost:9090"},
			Session:  SessionConfig{IdleTTL: time.Minute},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "invalid port",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "invalid server port",
		},
		{
			name:    "missing facility base URL",
			mutate:  func(c *Config) { c.Facility.BaseURL = "" },
			wantErr: "facility base URL is required",
		},
		{
			name:    "missing redis host",
			mutate:  func(c *Config) { c.Redis.Host = "" },
			wantErr: "redis host is required",
		},
		{
			name:    "non-positive session TTL",
			mutate:  func(c *Config) { c.Session.IdleTTL = 0 },
			wantErr: "session idle TTL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
