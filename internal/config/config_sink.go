package config

import (
	"fmt"
	"time"
)

// SinkApp holds daemon-level settings derived from the shared structured
// config.
type SinkApp struct {
	// Version is the daemon version reported to the relay and the
	// diagnostic API.
	Version string
	// LogLevel is the zerolog level name the daemon starts with.
	LogLevel string
	// DefaultProvider is the insert provider used when a job names none.
	DefaultProvider string
}

// SinkRelay holds the relay websocket connection settings.
type SinkRelay struct {
	// URL is the relay websocket endpoint (ws:// or wss://).
	URL string
	// AuthToken is the bearer token for the relay handshake.
	AuthToken string
	// JobTimeout bounds a single insert job.
	JobTimeout time.Duration
	// ReconnectDelay is the pause between reconnect attempts.
	ReconnectDelay time.Duration
}

// SinkConsumer holds the downstream consumer HTTP settings.
type SinkConsumer struct {
	// URL is the consumer webhook base URL; empty disables the webhook
	// provider.
	URL string
	// AuthToken is the bearer token for consumer requests.
	AuthToken string
	// RequestTimeout is the per-request timeout for consumer calls.
	RequestTimeout time.Duration
}

// SinkBatch holds batch chunking and pacing settings.
type SinkBatch struct {
	// Mode is the batch delivery mode ("assisted" or "auto_send").
	Mode string
	// MaxChars is the maximum character count per batch part.
	MaxChars int
	// ReadyTimeout bounds the wait for composer readiness.
	ReadyTimeout time.Duration
	// BusyReadyTimeout bounds the wait when the composer is busy.
	BusyReadyTimeout time.Duration
	// AcceptTimeout bounds the wait for part acceptance in auto_send mode.
	AcceptTimeout time.Duration
	// PollInterval is the pause between composer state polls.
	PollInterval time.Duration
}

// SinkDiag holds the diagnostic API listen settings.
type SinkDiag struct {
	// Address is the host:port the diagnostic API listens on.
	Address string
}

// SinkWorkers contains background worker settings.
type SinkWorkers struct {
	// StatusInterval defines how often the status worker logs a snapshot.
	StatusInterval time.Duration
}

// SinkConfig is the top-level daemon configuration assembled from
// [StructuredConfig].
type SinkConfig struct {
	// App contains daemon-level settings.
	App SinkApp
	// Relay contains relay websocket settings.
	Relay SinkRelay
	// Consumer contains downstream consumer settings.
	Consumer SinkConsumer
	// Batch contains batch delivery settings.
	Batch SinkBatch
	// Diag contains diagnostic API settings.
	Diag SinkDiag
	// Workers contains background job settings.
	Workers SinkWorkers

	// ConfigFile is the JSON config path the daemon watches for runtime
	// changes. Empty when no JSON file was given.
	ConfigFile string
}

// GetSinkConfig builds and validates the daemon config view from the merged
// structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps the fields
// relevant to the sink runtime, and validates the resulting [SinkConfig].
func GetSinkConfig() (*SinkConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	sinkCfg := &SinkConfig{
		App: SinkApp{
			Version:         cfg.App.Version,
			LogLevel:        cfg.App.LogLevel,
			DefaultProvider: cfg.App.DefaultProvider,
		},
		Relay: SinkRelay{
			URL:            cfg.Relay.URL,
			AuthToken:      cfg.Relay.AuthToken,
			JobTimeout:     cfg.Relay.JobTimeout,
			ReconnectDelay: cfg.Relay.ReconnectDelay,
		},
		Consumer: SinkConsumer{
			URL:            cfg.Consumer.URL,
			AuthToken:      cfg.Consumer.AuthToken,
			RequestTimeout: cfg.Consumer.RequestTimeout,
		},
		Batch: SinkBatch{
			Mode:             cfg.Batch.Mode,
			MaxChars:         cfg.Batch.MaxChars,
			ReadyTimeout:     cfg.Batch.ReadyTimeout,
			BusyReadyTimeout: cfg.Batch.BusyReadyTimeout,
			AcceptTimeout:    cfg.Batch.AcceptTimeout,
			PollInterval:     cfg.Batch.PollInterval,
		},
		Diag:       SinkDiag{Address: cfg.Diag.Address},
		Workers:    SinkWorkers{StatusInterval: cfg.Workers.StatusInterval},
		ConfigFile: cfg.JSONFilePath,
	}

	return sinkCfg, sinkCfg.validate()
}
