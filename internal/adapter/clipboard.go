package adapter

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/MKhiriev/go-snip-sink/internal/logger"
	"github.com/MKhiriev/go-snip-sink/models"
	"github.com/atotto/clipboard"
)

// ClipboardExecutor delivers insert jobs to the system clipboard. Placement
// is ignored: a clipboard has no notion of position, so the job succeeds as
// soon as the text is stored.
type ClipboardExecutor struct {
	logger *logger.Logger
}

// NewClipboardExecutor constructs a [ClipboardExecutor].
func NewClipboardExecutor(logger *logger.Logger) *ClipboardExecutor {
	return &ClipboardExecutor{logger: logger}
}

// Execute implements [sink.Executor].
func (e *ClipboardExecutor) Execute(_ context.Context, job models.InsertTextFrame) error {
	if err := clipboard.WriteAll(job.Payload.Text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}

	e.logger.Debug().
		Str("job_id", job.ID).
		Int("chars", utf8.RuneCountInString(job.Payload.Text)).
		Msg("snippet stored on clipboard")
	return nil
}

// SystemClipboard exposes the system clipboard as a [batch.ClipboardSink]
// so undelivered batch parts can be recovered by the user with a paste.
type SystemClipboard struct{}

// SetText implements [batch.ClipboardSink].
func (SystemClipboard) SetText(text string) error {
	return clipboard.WriteAll(text)
}
