package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-snip-sink/internal/logger"
	"github.com/MKhiriev/go-snip-sink/internal/sink"
)

// ClientStatus is the view of the relay client the status worker reports on.
type ClientStatus interface {
	State() sink.State
	IsRegistered() bool
	JobCounts() (outstanding int, completed int)
}

// SenderStatus is the view of the batch sender the status worker reports on.
type SenderStatus interface {
	IsSending() bool
}

// StatusWorker periodically writes a snapshot of the daemon state to the
// log. It exists so that an operator tailing the log can tell a quiet
// healthy sink from a stuck one.
type StatusWorker struct {
	client   ClientStatus
	sender   SenderStatus
	interval time.Duration
	logger   *logger.Logger
}

// NewStatusWorker creates a status worker. A non-positive interval disables
// it: Run returns immediately.
func NewStatusWorker(client ClientStatus, sender SenderStatus, interval time.Duration, logger *logger.Logger) *StatusWorker {
	return &StatusWorker{
		client:   client,
		sender:   sender,
		interval: interval,
		logger:   logger,
	}
}

// Run logs a snapshot every interval until ctx is cancelled.
func (w *StatusWorker) Run(ctx context.Context) {
	if w.interval <= 0 {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			outstanding, completed := w.client.JobCounts()
			w.logger.Info().
				Str("state", w.client.State().String()).
				Bool("registered", w.client.IsRegistered()).
				Int("outstanding_jobs", outstanding).
				Int("completed_jobs", completed).
				Bool("batch_sending", w.sender.IsSending()).
				Msg("sink status")
		}
	}
}
