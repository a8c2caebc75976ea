package batch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-snip-sink/internal/chunk"
	"github.com/MKhiriev/go-snip-sink/internal/logger"
)

const (
	// DefaultReadyTimeout bounds the readiness wait for the first part.
	DefaultReadyTimeout = 15 * time.Second

	// DefaultBusyReadyTimeout bounds readiness for parts after the first;
	// the surface may still be digesting the previous part, so the wait
	// is much longer.
	DefaultBusyReadyTimeout = 2 * time.Minute

	// DefaultAcceptTimeout bounds the acceptance wait per part.
	DefaultAcceptTimeout = 30 * time.Second

	// DefaultPollInterval is the readiness/acceptance polling period.
	DefaultPollInterval = 150 * time.Millisecond
)

// Mode selects who submits each part.
type Mode string

const (
	// ModeAssisted writes each part and waits for the user to submit it.
	ModeAssisted Mode = "assisted"

	// ModeAutoSend submits each part programmatically.
	ModeAutoSend Mode = "auto_send"
)

// Settings parameterizes one send.
type Settings struct {
	Mode     Mode
	Chunking chunk.Options
}

// Config tunes the session timing.
type Config struct {
	ReadyTimeout     time.Duration
	BusyReadyTimeout time.Duration
	AcceptTimeout    time.Duration
	PollInterval     time.Duration
}

// Sender runs at most one batch session at a time. The recovery index
// tracks the first part whose delivery is not yet confirmed; on any abort
// everything from that index onward lands in the clipboard.
type Sender struct {
	provider  ComposerProvider
	clipboard ClipboardSink
	progress  ProgressSink
	cfg       Config
	log       *logger.Logger

	mu      sync.Mutex
	sending bool
	cancel  context.CancelFunc
}

// NewSender wires a Sender. A nil clipboard or progress sink is replaced
// with a no-op; zero config fields take the package defaults.
func NewSender(provider ComposerProvider, clipboard ClipboardSink, progress ProgressSink, cfg Config, log *logger.Logger) *Sender {
	if clipboard == nil {
		clipboard = nopClipboard{}
	}
	if progress == nil {
		progress = nopProgress{}
	}
	if cfg.ReadyTimeout <= 0 {
		cfg.ReadyTimeout = DefaultReadyTimeout
	}
	if cfg.BusyReadyTimeout <= 0 {
		cfg.BusyReadyTimeout = DefaultBusyReadyTimeout
	}
	if cfg.AcceptTimeout <= 0 {
		cfg.AcceptTimeout = DefaultAcceptTimeout
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}

	return &Sender{
		provider:  provider,
		clipboard: clipboard,
		progress:  progress,
		cfg:       cfg,
		log:       log,
	}
}

// Send chunks text and delivers it through the active composer. Without a
// capable composer the full text goes to the clipboard and the send counts
// as successful. A single-part result is written directly, skipping the
// session machinery.
func (s *Sender) Send(ctx context.Context, text string, settings Settings) error {
	s.mu.Lock()
	if s.sending {
		s.mu.Unlock()
		return ErrSendInProgress
	}
	sessCtx, cancel := context.WithCancel(ctx)
	s.sending = true
	s.cancel = cancel
	s.mu.Unlock()

	defer func() {
		cancel()
		s.mu.Lock()
		s.sending = false
		s.cancel = nil
		s.mu.Unlock()
	}()

	composer := s.activeComposer()
	if composer == nil {
		if err := s.clipboard.SetText(text); err != nil {
			return fmt.Errorf("clipboard fallback: %w", err)
		}
		s.log.Info().Int("chars", len(text)).Msg("no composer available, full text copied to clipboard")
		return nil
	}

	parts, err := chunk.Split(text, settings.Chunking)
	if err != nil {
		return fmt.Errorf("chunk text: %w", err)
	}

	if len(parts) == 1 {
		if err := s.write(sessCtx, composer, parts[0]); err != nil {
			s.recover(parts, 0)
			return fmt.Errorf("single part delivery: %w", err)
		}
		return nil
	}

	return s.runSession(sessCtx, composer, parts, settings.Mode)
}

// Cancel aborts the active session, if any. Every wait observes the signal
// and no composer mutation happens after it.
func (s *Sender) Cancel() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		s.log.Info().Msg("batch send cancellation requested")
		cancel()
	}
}

// IsSending reports whether a session is active.
func (s *Sender) IsSending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sending
}

func (s *Sender) activeComposer() Composer {
	if s.provider == nil {
		return nil
	}
	composer := s.provider.ActiveComposer()
	if composer == nil || !composer.CanSend() {
		return nil
	}

	return composer
}

func (s *Sender) runSession(ctx context.Context, composer Composer, parts []string, mode Mode) error {
	total := len(parts)
	recoveryIndex := 0

	s.log.Info().Int("parts", total).Str("mode", string(mode)).Msg("batch session started")
	s.progress.BatchStarted(total)

	for i, part := range parts {
		s.reportPart(i, total, PartWaitingReady)
		readyTimeout := s.cfg.ReadyTimeout
		if i > 0 {
			readyTimeout = s.cfg.BusyReadyTimeout
		}
		if err := s.poll(ctx, readyTimeout, composer.Ready, ErrComposerNotReady); err != nil {
			return s.abort(parts, recoveryIndex, err)
		}

		s.reportPart(i, total, PartSending)
		if err := s.write(ctx, composer, part); err != nil {
			return s.abort(parts, recoveryIndex, err)
		}

		if mode == ModeAutoSend {
			if err := ctx.Err(); err != nil {
				return s.abort(parts, recoveryIndex, err)
			}
			if err := composer.Send(ctx); err != nil {
				return s.abort(parts, recoveryIndex, fmt.Errorf("submit part: %w", err))
			}
			// Submitted text has left the entry surface; it is no
			// longer recoverable even if acceptance never confirms.
			recoveryIndex = i + 1

			s.reportPart(i, total, PartWaitingAccepted)
			if err := s.poll(ctx, s.cfg.AcceptTimeout, composer.Accepted, ErrNotAccepted); err != nil {
				return s.abort(parts, recoveryIndex, err)
			}
			continue
		}

		// Assisted: the user submits; the part stays recoverable until
		// the surface confirms it was taken over.
		s.reportPart(i, total, PartWaitingAccepted)
		if err := s.poll(ctx, s.cfg.AcceptTimeout, composer.Accepted, ErrNotAccepted); err != nil {
			return s.abort(parts, recoveryIndex, err)
		}
		recoveryIndex = i + 1
	}

	s.log.Info().Int("parts", total).Msg("batch session completed")
	s.progress.BatchFinished(OutcomeCompleted, 0, nil)

	return nil
}

// write performs the two composer mutations for one part. The cancellation
// signal is re-checked first: once set, no mutation may happen, even if a
// wait predicate resolved after it.
func (s *Sender) write(ctx context.Context, composer Composer, part string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := composer.Focus(ctx); err != nil {
		return fmt.Errorf("focus composer: %w", err)
	}
	if err := composer.SetText(ctx, part); err != nil {
		return fmt.Errorf("set composer text: %w", err)
	}

	return nil
}

// poll evaluates predicate until it holds, the timeout elapses (timeoutErr)
// or ctx is done.
func (s *Sender) poll(ctx context.Context, timeout time.Duration, predicate func(context.Context) (bool, error), timeoutErr error) error {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for {
		ok, err := predicate(ctx)
		if err != nil {
			return fmt.Errorf("composer poll: %w", err)
		}
		if ok {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			return timeoutErr
		case <-ticker.C:
		}
	}
}

// abort runs clipboard recovery for everything past the recovery index,
// reports the outcome and wraps the cause.
func (s *Sender) abort(parts []string, recoveryIndex int, cause error) error {
	recovered := s.recover(parts, recoveryIndex)

	outcome := OutcomeFailed
	if errors.Is(cause, context.Canceled) {
		outcome = OutcomeCancelled
	}

	s.log.Warn().
		Err(cause).
		Str("outcome", string(outcome)).
		Int("recovered_parts", recovered).
		Msg("batch session aborted")
	s.progress.BatchFinished(outcome, recovered, cause)

	return fmt.Errorf("batch send: %w", cause)
}

func (s *Sender) recover(parts []string, recoveryIndex int) int {
	if recoveryIndex >= len(parts) {
		return 0
	}

	rest := parts[recoveryIndex:]
	if err := s.clipboard.SetText(strings.Join(rest, "\n")); err != nil {
		s.log.Error().Err(err).Msg("clipboard recovery failed")
		return len(rest)
	}

	s.log.Info().Int("parts", len(rest)).Msg("undelivered parts copied to clipboard")
	return len(rest)
}

func (s *Sender) reportPart(index, total int, state PartState) {
	s.log.Debug().
		Int("part", index+1).
		Int("total", total).
		Str("state", string(state)).
		Msg("batch part")
	s.progress.PartState(index, total, state)
}

type nopClipboard struct{}

func (nopClipboard) SetText(string) error { return nil }

type nopProgress struct{}

func (nopProgress) BatchStarted(int)                  {}
func (nopProgress) PartState(int, int, PartState)     {}
func (nopProgress) BatchFinished(Outcome, int, error) {}
