package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		envVars     map[string]string
		expectError bool
		errorMsg    string
	}{
		{
			name: "Success with minimal required config",
			envVars: map[string]string{
				"JWT_SECRET": "test-secret",
			},
			expectError: false,
		},
		{
			name: "Success with all config specified",
			envVars: map[string]string{
				"SERVER_HOST":             "localhost",
				"SERVER_PORT":             "9090",
				"MONGODB_URI":             "mongodb://db.example.com:27017",
				"MONGODB_DATABASE":        "shoptest",
				"MONGODB_CONNECT_TIMEOUT": "5",
				"LOG_LEVEL":               "debug",
				"LOG_FORMAT":              "console",
				"JWT_SECRET":              "test-secret",
				"JWT_EXPIRE_HOURS":        "48",
				"STRIPE_SECRET_KEY":       "sk_test_123",
				"STRIPE_WEBHOOK_SECRET":   "whsec_123",
			},
			expectError: false,
		},
		{
			name: "Error - missing JWT secret",
			envVars: map[string]string{
				"JWT_SECRET": "",
			},
			expectError: true,
			errorMsg:    "JWT secret is required",
		},
		{
			name: "Error - invalid server port",
			envVars: map[string]string{
				"SERVER_PORT": "99999",
				"JWT_SECRET":  "test-secret",
			},
			expectError: true,
			errorMsg:    "invalid server port",
		},
		{
			name: "Error - invalid log level",
			envVars: map[string]string{
				"LOG_LEVEL":  "verbose",
				"JWT_SECRET": "test-secret",
			},
			expectError: true,
			errorMsg:    "invalid log level",
		},
		{
			name: "Error - invalid log format",
			envVars: map[string]string{
				"LOG_FORMAT": "xml",
				"JWT_SECRET": "test-secret",
			},
			expectError: true,
			errorMsg:    "invalid log format",
		},
		{
			name: "Error - zero token TTL",
			envVars: map[string]string{
				"JWT_SECRET":       "test-secret",
				"JWT_EXPIRE_HOURS": "0",
			},
			expectError: true,
			errorMsg:    "token TTL must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				assert.Nil(t, cfg)
			} else {
				require.NoError(t, err)
				require.NotNil(t, cfg)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	os.Clearenv()
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Address())
	assert.Equal(t, "mongodb://localhost:27017", cfg.Database.URI)
	assert.Equal(t, "storefront", cfg.Database.Database)
	assert.Equal(t, 10*time.Second, cfg.Database.ConnectTimeout)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
}

func TestServerAddress(t *testing.T) {
	cfg := ServerConfig{Host: "127.0.0.1", Port: 3000}
	assert.Equal(t, "127.0.0.1:3000", cfg.Address())
}
