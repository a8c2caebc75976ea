// Package adapter implements the delivery side of go-snip-sink: the executors
// that put relay-sent snippet text onto a local surface.
//
// The central type is [RoutingExecutor], which fans insert jobs out to the
// named providers configured on the sink; [ClipboardExecutor] stores text on
// the system clipboard and [WebhookExecutor] forwards it to a consumer
// application over HTTP. [WebhookComposer] exposes the same consumer as a
// composer surface so multi-part batch sends can walk it part by part.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrTextRejected] for 422, [ErrConsumerBusy] for 429).
package adapter

import (
	"context"
	"fmt"
	"sort"

	"github.com/MKhiriev/go-snip-sink/internal/logger"
	"github.com/MKhiriev/go-snip-sink/internal/sink"
	"github.com/MKhiriev/go-snip-sink/models"
)

// RoutingExecutor fans insert jobs out to named delivery providers.
//
// A job addressed to target.provider runs on the matching registered
// executor; a job without a target runs on the default provider. Providers
// are registered during wiring, before any job arrives; the routing table
// is read-only afterwards, so Execute takes no lock.
type RoutingExecutor struct {
	providers map[string]sink.Executor
	fallback  string

	logger *logger.Logger
}

// NewRoutingExecutor constructs an empty routing table with the given
// default provider name.
func NewRoutingExecutor(fallback string, logger *logger.Logger) *RoutingExecutor {
	return &RoutingExecutor{
		providers: make(map[string]sink.Executor),
		fallback:  fallback,
		logger:    logger,
	}
}

// Register adds a named provider to the routing table. It must be called
// during wiring, before the first job is executed.
func (r *RoutingExecutor) Register(name string, executor sink.Executor) {
	r.providers[name] = executor
}

// Providers returns the registered provider names in sorted order. The
// client advertises this list to the relay on registration.
func (r *RoutingExecutor) Providers() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Execute implements [sink.Executor]. It resolves the job's provider and
// delegates to it. Returns [ErrUnknownProvider] (wrapped) when the job
// names a provider that is not registered, or when the job carries no
// target and no default provider is configured.
func (r *RoutingExecutor) Execute(ctx context.Context, job models.InsertTextFrame) error {
	name := r.fallback
	if target := job.Payload.Target; target != nil && target.Provider != "" {
		name = target.Provider
	}

	executor, ok := r.providers[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}

	r.logger.Debug().Str("job_id", job.ID).Str("provider", name).Msg("routing insert job")
	return executor.Execute(ctx, job)
}
