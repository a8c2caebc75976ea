package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/go-snip-sink/internal/batch"
	"github.com/MKhiriev/go-snip-sink/internal/logger"
	"github.com/MKhiriev/go-snip-sink/internal/utils"
	"github.com/MKhiriev/go-snip-sink/models"
)

// DefaultWebhookTimeout bounds a single consumer request when the config
// does not set one.
const DefaultWebhookTimeout = 15 * time.Second

// WebhookConfig configures HTTP delivery to a local consumer application.
type WebhookConfig struct {
	// BaseURL is the consumer's API root, e.g. "http://127.0.0.1:9234".
	// A missing scheme defaults to http.
	BaseURL string

	// AuthToken, when set, is sent as a bearer token on every request.
	AuthToken string

	// RequestTimeout bounds each HTTP request.
	RequestTimeout time.Duration
}

// WebhookExecutor forwards insert jobs to a consumer application over HTTP.
// One job is one POST /api/insert; any 2xx status acknowledges delivery.
type WebhookExecutor struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// insertRequest is the consumer-facing body of POST /api/insert.
type insertRequest struct {
	ID        string        `json:"id"`
	Text      string        `json:"text"`
	Placement string        `json:"placement,omitempty"`
	Source    models.Source `json:"source"`
}

// NewWebhookExecutor constructs a [WebhookExecutor]. It normalises and
// validates cfg.BaseURL and configures the underlying HTTP client with the
// resolved base URL, request timeout and bearer token.
//
// Returns an error if cfg.BaseURL is empty or cannot be parsed as a valid
// URL.
func NewWebhookExecutor(cfg WebhookConfig, logger *logger.Logger) (*WebhookExecutor, error) {
	client, err := newConsumerClient(cfg)
	if err != nil {
		return nil, err
	}

	return &WebhookExecutor{client: client, logger: logger}, nil
}

// Execute implements [sink.Executor]. It POSTs the job text to
// POST /api/insert. Returns an error if the request fails or the consumer
// answers with a non-2xx status, mapped to this package's sentinel errors.
func (e *WebhookExecutor) Execute(ctx context.Context, job models.InsertTextFrame) error {
	body := insertRequest{
		ID:     job.ID,
		Text:   job.Payload.Text,
		Source: job.Payload.Source,
	}
	if p := job.Payload.Placement; p != nil {
		body.Placement = string(p.Type)
	}

	resp, err := e.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post("/api/insert")
	if err != nil {
		return fmt.Errorf("insert request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	e.logger.Debug().Str("job_id", job.ID).Msg("snippet delivered to consumer")
	return nil
}

// WebhookComposer drives a composer surface hosted by the consumer
// application over HTTP, so multi-part batch sends can walk it one part at
// a time. The consumer is expected to expose:
//
//	GET  /api/composer          -> {"present":bool,"can_send":bool}
//	GET  /api/composer/ready    -> {"ready":bool}
//	POST /api/composer/focus
//	PUT  /api/composer/text     <- {"text":string}
//	POST /api/composer/send
//	GET  /api/composer/accepted -> {"accepted":bool}
type WebhookComposer struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

type composerState struct {
	Present bool `json:"present"`
	CanSend bool `json:"can_send"`
}

type composerReady struct {
	Ready bool `json:"ready"`
}

type composerAccepted struct {
	Accepted bool `json:"accepted"`
}

type composerText struct {
	Text string `json:"text"`
}

// NewWebhookComposer constructs a [WebhookComposer] against the same
// consumer API as [NewWebhookExecutor].
func NewWebhookComposer(cfg WebhookConfig, logger *logger.Logger) (*WebhookComposer, error) {
	client, err := newConsumerClient(cfg)
	if err != nil {
		return nil, err
	}

	return &WebhookComposer{client: client, logger: logger}, nil
}

// CanSend implements [batch.Composer]. The probe is best-effort: any
// transport error or non-2xx status reads as "cannot send", which makes the
// batch layer fall back to clipboard delivery.
func (c *WebhookComposer) CanSend() bool {
	var state composerState

	resp, err := c.client.R().
		SetHeader("Accept", "application/json").
		SetResult(&state).
		Get("/api/composer")
	if err != nil {
		c.logger.Debug().Err(err).Msg("composer probe failed")
		return false
	}
	if err = mapHTTPError(resp); err != nil {
		return false
	}

	return state.Present && state.CanSend
}

// Ready implements [batch.Composer].
func (c *WebhookComposer) Ready(ctx context.Context) (bool, error) {
	var state composerReady

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetResult(&state).
		Get("/api/composer/ready")
	if err != nil {
		return false, fmt.Errorf("ready request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return false, err
	}

	return state.Ready, nil
}

// Focus implements [batch.Composer].
func (c *WebhookComposer) Focus(ctx context.Context) error {
	resp, err := c.client.R().
		SetContext(ctx).
		Post("/api/composer/focus")
	if err != nil {
		return fmt.Errorf("focus request: %w", err)
	}

	return mapHTTPError(resp)
}

// SetText implements [batch.Composer].
func (c *WebhookComposer) SetText(ctx context.Context, text string) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(composerText{Text: text}).
		Put("/api/composer/text")
	if err != nil {
		return fmt.Errorf("set text request: %w", err)
	}

	return mapHTTPError(resp)
}

// Send implements [batch.Composer].
func (c *WebhookComposer) Send(ctx context.Context) error {
	resp, err := c.client.R().
		SetContext(ctx).
		Post("/api/composer/send")
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}

	return mapHTTPError(resp)
}

// Accepted implements [batch.Composer].
func (c *WebhookComposer) Accepted(ctx context.Context) (bool, error) {
	var state composerAccepted

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetResult(&state).
		Get("/api/composer/accepted")
	if err != nil {
		return false, fmt.Errorf("accepted request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return false, err
	}

	return state.Accepted, nil
}

// StaticComposerProvider always offers the same composer. Availability is
// gated by the composer's own CanSend probe, not by the provider.
type StaticComposerProvider struct {
	composer batch.Composer
}

// NewStaticComposerProvider constructs a [StaticComposerProvider].
func NewStaticComposerProvider(composer batch.Composer) *StaticComposerProvider {
	return &StaticComposerProvider{composer: composer}
}

// ActiveComposer implements [batch.ComposerProvider].
func (p *StaticComposerProvider) ActiveComposer() batch.Composer {
	return p.composer
}

func newConsumerClient(cfg WebhookConfig) (*utils.HTTPClient, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid consumer base url: %w", err)
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultWebhookTimeout
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(timeout)
	if cfg.AuthToken != "" {
		client.SetAuthToken(cfg.AuthToken)
	}

	return client, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}
