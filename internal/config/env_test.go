// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_VERSION":          "1.2.3",
		"APP_LOG_LEVEL":        "debug",
		"APP_DEFAULT_PROVIDER": "webhook",

		"RELAY_URL":             "wss://relay.example.org/sink",
		"RELAY_AUTH_TOKEN":      "relay_secret",
		"RELAY_JOB_TIMEOUT":     "30s",
		"RELAY_RECONNECT_DELAY": "3s",

		"CONSUMER_URL":             "https://consumer.local",
		"CONSUMER_AUTH_TOKEN":      "consumer_secret",
		"CONSUMER_REQUEST_TIMEOUT": "15s",

		"BATCH_MODE":               "auto_send",
		"BATCH_MAX_CHARS":          "4000",
		"BATCH_READY_TIMEOUT":      "15s",
		"BATCH_BUSY_READY_TIMEOUT": "2m",
		"BATCH_ACCEPT_TIMEOUT":     "30s",
		"BATCH_POLL_INTERVAL":      "150ms",

		"DIAG_ADDRESS": "127.0.0.1:8990",

		"WORKERS_STATUS_INTERVAL": "1m",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)

	assert.Equal(t, "1.2.3", cfg.App.Version)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, "webhook", cfg.App.DefaultProvider)

	assert.Equal(t, "wss://relay.example.org/sink", cfg.Relay.URL)
	assert.Equal(t, "relay_secret", cfg.Relay.AuthToken)
	assert.Equal(t, 30*time.Second, cfg.Relay.JobTimeout)
	assert.Equal(t, 3*time.Second, cfg.Relay.ReconnectDelay)

	assert.Equal(t, "https://consumer.local", cfg.Consumer.URL)
	assert.Equal(t, "consumer_secret", cfg.Consumer.AuthToken)
	assert.Equal(t, 15*time.Second, cfg.Consumer.RequestTimeout)

	assert.Equal(t, "auto_send", cfg.Batch.Mode)
	assert.Equal(t, 4000, cfg.Batch.MaxChars)
	assert.Equal(t, 15*time.Second, cfg.Batch.ReadyTimeout)
	assert.Equal(t, 2*time.Minute, cfg.Batch.BusyReadyTimeout)
	assert.Equal(t, 30*time.Second, cfg.Batch.AcceptTimeout)
	assert.Equal(t, 150*time.Millisecond, cfg.Batch.PollInterval)

	assert.Equal(t, "127.0.0.1:8990", cfg.Diag.Address)

	assert.Equal(t, time.Minute, cfg.Workers.StatusInterval)
}

func TestParseEnv_PartialFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"RELAY_URL":    "wss://relay.example.org/sink",
		"DIAG_ADDRESS": "localhost:8990",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	// Relay partially filled
	assert.Equal(t, "wss://relay.example.org/sink", cfg.Relay.URL)
	assert.Empty(t, cfg.Relay.AuthToken)
	assert.Zero(t, cfg.Relay.JobTimeout)

	assert.Equal(t, "localhost:8990", cfg.Diag.Address)

	// Untouched sections stay zero
	assert.Empty(t, cfg.App.Version)
	assert.Empty(t, cfg.Consumer.URL)
	assert.Zero(t, cfg.Batch.MaxChars)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseEnv_EmptyEnv(t *testing.T) {
	// Arrange
	clearEnvVars(t)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, StructuredConfig{}, *cfg)
}

func TestParseEnv_OnlyConsumer(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"CONSUMER_URL": "http://localhost:4400",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:4400", cfg.Consumer.URL)
	assert.Empty(t, cfg.Relay.URL)
}

func TestParseEnv_OnlyBatch(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"BATCH_MODE":      "assisted",
		"BATCH_MAX_CHARS": "6000",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "assisted", cfg.Batch.Mode)
	assert.Equal(t, 6000, cfg.Batch.MaxChars)
	assert.Empty(t, cfg.Consumer.URL)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"RELAY_JOB_TIMEOUT": "invalid_duration",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.Error(t, err)
	// Error wording may vary depending on parseEnv internals; assert loosely.
	assert.Contains(t, err.Error(), "env")
}

func TestParseEnv_InvalidInt(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"BATCH_MAX_CHARS": "a-lot",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "env")
}

func TestParseEnv_DurationFormats(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected time.Duration
	}{
		{"hours", "2h", 2 * time.Hour},
		{"minutes", "45m", 45 * time.Minute},
		{"seconds", "30s", 30 * time.Second},
		{"combined", "1h30m", 90 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			envVars := map[string]string{
				"CONSUMER_REQUEST_TIMEOUT": tt.envValue,
			}
			setEnvVars(t, envVars)

			// Act
			cfg := &StructuredConfig{}
			err := parseEnv(cfg)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg.Consumer.RequestTimeout)
		})
	}
}

// Helpers

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	clearEnvVars(t)
	for k, v := range vars {
		require.NoError(t, os.Setenv(k, v))
		t.Cleanup(func() { _ = os.Unsetenv(k) })
	}
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	keys := []string{
		"CONFIG",

		"APP_VERSION",
		"APP_LOG_LEVEL",
		"APP_DEFAULT_PROVIDER",

		"RELAY_URL",
		"RELAY_AUTH_TOKEN",
		"RELAY_JOB_TIMEOUT",
		"RELAY_RECONNECT_DELAY",

		"CONSUMER_URL",
		"CONSUMER_AUTH_TOKEN",
		"CONSUMER_REQUEST_TIMEOUT",

		"BATCH_MODE",
		"BATCH_MAX_CHARS",
		"BATCH_READY_TIMEOUT",
		"BATCH_BUSY_READY_TIMEOUT",
		"BATCH_ACCEPT_TIMEOUT",
		"BATCH_POLL_INTERVAL",

		"DIAG_ADDRESS",

		"WORKERS_STATUS_INTERVAL",
	}
	for _, k := range keys {
		_ = os.Unsetenv(k)
	}
}
