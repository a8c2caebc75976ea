// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-snip-sink daemon. It aggregates all sub-configurations and is populated
// by merging values from environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds daemon-level settings such as the reported version, the
	// log level, and the default insert provider.
	App App `envPrefix:"APP_"`

	// Relay holds the websocket connection settings for the snippet relay:
	// endpoint URL, auth token, and job/reconnect timing.
	Relay Relay `envPrefix:"RELAY_"`

	// Consumer holds the HTTP settings for the downstream consumer that
	// receives webhook inserts and batch deliveries.
	Consumer Consumer `envPrefix:"CONSUMER_"`

	// Batch holds chunking and pacing settings for batch text delivery.
	Batch Batch `envPrefix:"BATCH_"`

	// Diag holds the listen address of the local diagnostic HTTP API.
	Diag Diag `envPrefix:"DIAG_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged behind the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds daemon-level configuration values.
type App struct {
	// Version is the semantic version string of the running daemon
	// (e.g. "1.2.3"). Reported to the relay on registration and exposed
	// via the /api/version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel is the zerolog level name the daemon logs at
	// (e.g. "debug", "info", "warn"). Re-applied at runtime when the
	// JSON config file changes.
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// DefaultProvider is the insert provider used for jobs that do not
	// name a target (e.g. "clipboard", "webhook").
	// Env: APP_DEFAULT_PROVIDER
	DefaultProvider string `env:"DEFAULT_PROVIDER"`
}

// Relay holds connection settings for the snippet relay websocket.
type Relay struct {
	// URL is the relay websocket endpoint. The scheme must be "ws" or
	// "wss" (e.g. "wss://relay.example.org/sink").
	// Env: RELAY_URL
	URL string `env:"URL"`

	// AuthToken is the bearer token presented to the relay during the
	// websocket handshake. Must be kept confidential.
	// Env: RELAY_AUTH_TOKEN
	AuthToken string `env:"AUTH_TOKEN"`

	// JobTimeout is the maximum duration an insert job may run before the
	// daemon fails it (e.g. "30s").
	// Env: RELAY_JOB_TIMEOUT
	JobTimeout time.Duration `env:"JOB_TIMEOUT"`

	// ReconnectDelay is the pause between reconnect attempts after the
	// relay connection drops (e.g. "3s").
	// Env: RELAY_RECONNECT_DELAY
	ReconnectDelay time.Duration `env:"RECONNECT_DELAY"`
}

// Consumer holds HTTP settings for the downstream consumer endpoint.
type Consumer struct {
	// URL is the base URL of the consumer webhook API. When empty, the
	// webhook provider is not registered and only the clipboard provider
	// is available.
	// Env: CONSUMER_URL
	URL string `env:"URL"`

	// AuthToken is the bearer token sent with every consumer request.
	// Env: CONSUMER_AUTH_TOKEN
	AuthToken string `env:"AUTH_TOKEN"`

	// RequestTimeout is the per-request timeout for consumer calls
	// (e.g. "15s").
	// Env: CONSUMER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Batch holds chunking and pacing settings for batch text delivery.
type Batch struct {
	// Mode selects the batch delivery mode: "assisted" waits for the
	// composer between parts, "auto_send" submits each part itself.
	// Env: BATCH_MODE
	Mode string `env:"MODE"`

	// MaxChars is the maximum character count of a single batch part.
	// Zero selects the built-in default.
	// Env: BATCH_MAX_CHARS
	MaxChars int `env:"MAX_CHARS"`

	// ReadyTimeout bounds the wait for the composer to become ready
	// before a part is placed (e.g. "15s").
	// Env: BATCH_READY_TIMEOUT
	ReadyTimeout time.Duration `env:"READY_TIMEOUT"`

	// BusyReadyTimeout bounds the wait when the composer reports busy,
	// typically longer than ReadyTimeout (e.g. "2m").
	// Env: BATCH_BUSY_READY_TIMEOUT
	BusyReadyTimeout time.Duration `env:"BUSY_READY_TIMEOUT"`

	// AcceptTimeout bounds the wait for the consumer to accept a
	// submitted part in auto_send mode (e.g. "30s").
	// Env: BATCH_ACCEPT_TIMEOUT
	AcceptTimeout time.Duration `env:"ACCEPT_TIMEOUT"`

	// PollInterval is the pause between composer state polls
	// (e.g. "150ms").
	// Env: BATCH_POLL_INTERVAL
	PollInterval time.Duration `env:"POLL_INTERVAL"`
}

// Diag holds settings for the local diagnostic HTTP API.
type Diag struct {
	// Address is the TCP address the diagnostic API listens on, in
	// "host:port" format. Should stay on a loopback interface; the API
	// carries no authentication. Empty selects the built-in default.
	// Env: DIAG_ADDRESS
	Address string `env:"ADDRESS"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// StatusInterval defines how often the status worker writes a state
	// snapshot to the log. Zero disables the worker.
	// Env: WORKERS_STATUS_INTERVAL
	StatusInterval time.Duration `env:"STATUS_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the daemon configuration
// from all available sources in the following priority order (earlier sources
// win; later sources only fill fields still unset):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
