package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "thisisasecretkeythatis32charslong!!"

// setupEnv sets up environment variables for testing
func setupEnv(t *testing.T, envVars map[string]string) func() {
	originalValues := make(map[string]string)
	for name := range envVars {
		originalValues[name] = os.Getenv(name)
	}

	for name, value := range envVars {
		err := os.Setenv(name, value)
		require.NoError(t, err, "Failed to set environment variable %s", name)
	}

	return func() {
		for name, value := range originalValues {
			if value == "" {
				os.Unsetenv(name)
			} else {
				os.Setenv(name, value)
			}
		}
	}
}

// TestLoadDefaults verifies the defaults applied when only the secret is provided.
func TestLoadDefaults(t *testing.T) {
	cleanup := setupEnv(t, map[string]string{
		"KANBAN_AUTH_JWT_SECRET":  testSecret,
		"KANBAN_SERVER_PORT":      "",
		"KANBAN_SERVER_LOG_LEVEL": "",
		"KANBAN_DATABASE_DRIVER":  "",
		"KANBAN_DATABASE_URL":     "",
	})
	defer cleanup()

	cfg, err := Load()

	require.NoError(t, err, "Load() should not return an error with default values")
	require.NotNil(t, cfg)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, 10, cfg.Server.ShutdownTimeoutSeconds)
	assert.Equal(t, "memory", cfg.Database.Driver)
	assert.False(t, cfg.Database.UsesSQL())
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, 168, cfg.Auth.TokenLifetimeHours, "tokens should live for 7 days by default")
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 30, cfg.RateLimit.AuthRequestsPerMinute)
}

// TestLoadFromEnv verifies that the Load function correctly reads values from environment variables.
func TestLoadFromEnv(t *testing.T) {
	cleanup := setupEnv(t, map[string]string{
		"KANBAN_SERVER_PORT":               "9090",
		"KANBAN_SERVER_LOG_LEVEL":          "debug",
		"KANBAN_DATABASE_DRIVER":           "sqlite3",
		"KANBAN_DATABASE_URL":              "file:kanban.db",
		"KANBAN_AUTH_JWT_SECRET":           testSecret,
		"KANBAN_AUTH_TOKEN_LIFETIME_HOURS": "1",
		"KANBAN_CORS_ALLOWED_ORIGINS":      "http://localhost:3000,https://kanban.example.com",
	})
	defer cleanup()

	cfg, err := Load()

	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "sqlite3", cfg.Database.Driver)
	assert.Equal(t, "file:kanban.db", cfg.Database.URL)
	assert.True(t, cfg.Database.UsesSQL())
	assert.Equal(t, testSecret, cfg.Auth.JWTSecret)
	assert.Equal(t, 1, cfg.Auth.TokenLifetimeHours)
	assert.Equal(t,
		[]string{"http://localhost:3000", "https://kanban.example.com"},
		cfg.CORS.AllowedOrigins)
}

// TestLoadValidationErrors verifies that the Load function correctly validates the configuration.
func TestLoadValidationErrors(t *testing.T) {
	testCases := []struct {
		name    string
		envVars map[string]string
	}{
		{
			name: "Missing JWT secret",
			envVars: map[string]string{
				"KANBAN_SERVER_PORT":     "9090",
				"KANBAN_AUTH_JWT_SECRET": "",
			},
		},
		{
			name: "Invalid port number",
			envVars: map[string]string{
				"KANBAN_SERVER_PORT":     "999999",
				"KANBAN_AUTH_JWT_SECRET": testSecret,
			},
		},
		{
			name: "Invalid log level",
			envVars: map[string]string{
				"KANBAN_SERVER_LOG_LEVEL": "invalid-level",
				"KANBAN_AUTH_JWT_SECRET":  testSecret,
			},
		},
		{
			name: "Short JWT secret",
			envVars: map[string]string{
				"KANBAN_AUTH_JWT_SECRET": "tooshort",
			},
		},
		{
			name: "Unknown database driver",
			envVars: map[string]string{
				"KANBAN_AUTH_JWT_SECRET": testSecret,
				"KANBAN_DATABASE_DRIVER": "mysql",
			},
		},
		{
			name: "SQL driver without URL",
			envVars: map[string]string{
				"KANBAN_AUTH_JWT_SECRET": testSecret,
				"KANBAN_DATABASE_DRIVER": "pgx",
				"KANBAN_DATABASE_URL":    "",
			},
		},
		{
			name: "Bcrypt cost out of range",
			envVars: map[string]string{
				"KANBAN_AUTH_JWT_SECRET":  testSecret,
				"KANBAN_AUTH_BCRYPT_COST": "2",
			},
		},
	}

	for _, tc := range testCases {

		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			cleanup := setupEnv(t, tc.envVars)
			defer cleanup()

			cfg, err := Load()

			require.Error(t, err, "Load() should return an error with invalid configuration")
			assert.Contains(t, err.Error(), "validation failed")
			assert.Nil(t, cfg, "Config should be nil when an error occurs")
		})
	}
}
