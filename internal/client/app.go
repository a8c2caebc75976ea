package client

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/go-snip-sink/internal/adapter"
	"github.com/MKhiriev/go-snip-sink/internal/batch"
	"github.com/MKhiriev/go-snip-sink/internal/chunk"
	"github.com/MKhiriev/go-snip-sink/internal/config"
	myHTTP "github.com/MKhiriev/go-snip-sink/internal/handler/http"
	"github.com/MKhiriev/go-snip-sink/internal/logger"
	"github.com/MKhiriev/go-snip-sink/internal/server"
	"github.com/MKhiriev/go-snip-sink/internal/sink"
	"github.com/MKhiriev/go-snip-sink/internal/transport"
	"github.com/MKhiriev/go-snip-sink/internal/utils"
	"github.com/MKhiriev/go-snip-sink/internal/workers"
)

const (
	defaultProviderName = "clipboard"
	defaultVersion      = "dev"

	// tokenExpiryWarning is how close to expiry the relay token may get
	// before startup logs a warning instead of an info line.
	tokenExpiryWarning = 48 * time.Hour
)

// App is the assembled sink daemon: relay client, batch sender, diagnostic
// server, and background workers sharing one lifecycle.
type App struct {
	client  *sink.Client
	sender  *batch.Sender
	server  server.Server
	workers *workers.Workers
	logger  *logger.Logger
}

// NewApp wires every daemon component from the validated config.
func NewApp(cfg *config.SinkConfig, log *logger.Logger) (*App, error) {
	version := cfg.App.Version
	if version == "" {
		version = defaultVersion
	}

	inspectRelayToken(cfg.Relay.AuthToken, log)

	relayTransport, err := transport.New(transport.Config{
		URL:       cfg.Relay.URL,
		AuthToken: cfg.Relay.AuthToken,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("create relay transport: %w", err)
	}

	routing, err := buildProviders(cfg, log)
	if err != nil {
		return nil, err
	}

	sinkClient, err := sink.NewClient(relayTransport, routing, sink.Config{
		Version:        version,
		Providers:      routing.Providers(),
		JobTimeout:     cfg.Relay.JobTimeout,
		ReconnectDelay: cfg.Relay.ReconnectDelay,
		OnStateChange: func(change sink.Change) {
			log.Info().
				Str("from", change.From.String()).
				Str("to", change.To.String()).
				Msg("sink state changed")
		},
	}, log)
	if err != nil {
		return nil, fmt.Errorf("create sink client: %w", err)
	}

	sender, err := buildSender(cfg, log)
	if err != nil {
		return nil, err
	}

	batchDefaults := batch.Settings{
		Mode:     batch.Mode(cfg.Batch.Mode),
		Chunking: chunk.Options{MaxChars: cfg.Batch.MaxChars},
	}
	if batchDefaults.Mode == "" {
		batchDefaults.Mode = batch.ModeAssisted
	}

	handlers := myHTTP.NewHandler(sinkClient, sender, batchDefaults, version, log)

	srv, err := server.NewServer(handlers.Init(), cfg.Diag, log)
	if err != nil {
		return nil, fmt.Errorf("create diag server: %w", err)
	}

	return &App{
		client:  sinkClient,
		sender:  sender,
		server:  srv,
		workers: buildWorkers(cfg, sinkClient, sender, log),
		logger:  log,
	}, nil
}

// Run starts every component, then blocks until a termination signal
// arrives and the shutdown sequence completes.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	a.client.Start()
	go a.server.RunServer()
	a.workers.Run(ctx)

	a.logger.Info().Msg("sink daemon started")

	<-ctx.Done()
	a.logger.Info().Msg("shutdown signal received")

	// Stop the inbound surface first, then the outbound machinery.
	a.server.Shutdown()
	a.sender.Cancel()
	a.client.Stop()
	a.workers.Wait()

	a.logger.Info().Msg("sink daemon stopped")

	return nil
}

func buildProviders(cfg *config.SinkConfig, log *logger.Logger) (*adapter.RoutingExecutor, error) {
	fallback := cfg.App.DefaultProvider
	if fallback == "" {
		fallback = defaultProviderName
	}

	routing := adapter.NewRoutingExecutor(fallback, log)
	routing.Register("clipboard", adapter.NewClipboardExecutor(log))

	if cfg.Consumer.URL != "" {
		webhook, err := adapter.NewWebhookExecutor(consumerConfig(cfg), log)
		if err != nil {
			return nil, fmt.Errorf("create webhook executor: %w", err)
		}
		routing.Register("webhook", webhook)
	}

	return routing, nil
}

func buildSender(cfg *config.SinkConfig, log *logger.Logger) (*batch.Sender, error) {
	var provider batch.ComposerProvider
	if cfg.Consumer.URL != "" {
		composer, err := adapter.NewWebhookComposer(consumerConfig(cfg), log)
		if err != nil {
			return nil, fmt.Errorf("create webhook composer: %w", err)
		}
		provider = adapter.NewStaticComposerProvider(composer)
	}

	batchCfg := batch.Config{
		ReadyTimeout:     cfg.Batch.ReadyTimeout,
		BusyReadyTimeout: cfg.Batch.BusyReadyTimeout,
		AcceptTimeout:    cfg.Batch.AcceptTimeout,
		PollInterval:     cfg.Batch.PollInterval,
	}

	return batch.NewSender(provider, adapter.SystemClipboard{}, adapter.NewLogProgress(log), batchCfg, log), nil
}

func buildWorkers(cfg *config.SinkConfig, sinkClient *sink.Client, sender *batch.Sender, log *logger.Logger) *workers.Workers {
	daemonWorkers := make([]workers.Worker, 0, 2)

	if cfg.Workers.StatusInterval > 0 {
		daemonWorkers = append(daemonWorkers, workers.NewStatusWorker(sinkClient, sender, cfg.Workers.StatusInterval, log))
	}

	if cfg.ConfigFile != "" {
		daemonWorkers = append(daemonWorkers, workers.NewConfigWatcher(cfg.ConfigFile, func(updated *config.StructuredConfig) {
			applyRuntimeConfig(updated, log)
		}, log))
	}

	return workers.NewWorkers(daemonWorkers...)
}

func consumerConfig(cfg *config.SinkConfig) adapter.WebhookConfig {
	return adapter.WebhookConfig{
		BaseURL:        cfg.Consumer.URL,
		AuthToken:      cfg.Consumer.AuthToken,
		RequestTimeout: cfg.Consumer.RequestTimeout,
	}
}

// applyRuntimeConfig applies the settings that may change while the daemon
// runs. Today that is only the log level.
func applyRuntimeConfig(cfg *config.StructuredConfig, log *logger.Logger) {
	if cfg.App.LogLevel == "" {
		return
	}

	if err := logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Warn().Err(err).Msg("ignoring log level from config file")
		return
	}

	log.Info().Str("level", cfg.App.LogLevel).Msg("log level updated")
}

// inspectRelayToken logs what can be read from the configured relay token
// without verifying it. The sink holds no key material, so this never
// gates startup; it only helps diagnose a relay that rejects the handshake.
func inspectRelayToken(token string, log *logger.Logger) {
	if token == "" {
		log.Warn().Msg("no relay auth token configured")
		return
	}

	info, err := utils.InspectToken(token)
	if err != nil {
		// Opaque tokens are fine; only JWTs can be inspected.
		log.Debug().Msg("relay token is not a readable JWT")
		return
	}

	switch {
	case info.ExpiresAt.IsZero():
		log.Info().Str("subject", info.Subject).Str("issuer", info.Issuer).
			Msg("relay token has no expiry")
	case time.Until(info.ExpiresAt) <= 0:
		log.Warn().Str("subject", info.Subject).Time("expired_at", info.ExpiresAt).
			Msg("relay token is expired")
	case time.Until(info.ExpiresAt) < tokenExpiryWarning:
		log.Warn().Str("subject", info.Subject).Time("expires_at", info.ExpiresAt).
			Msg("relay token expires soon")
	default:
		log.Info().Str("subject", info.Subject).Str("issuer", info.Issuer).
			Time("expires_at", info.ExpiresAt).Msg("relay token inspected")
	}
}
