// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package batch walks multi-part text through an external composer surface,
// one part at a time, with clipboard recovery for everything not yet
// confirmed delivered.
package batch

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/batch_mock.go -package=mock

// Composer is the external text-entry surface parts are written into.
type Composer interface {
	// CanSend reports whether the surface accepts programmatic delivery
	// at all; a false value routes the whole text to the clipboard.
	CanSend() bool

	// Ready reports whether the surface can take the next part.
	Ready(ctx context.Context) (bool, error)

	// Focus brings the entry surface into focus.
	Focus(ctx context.Context) error

	// SetText replaces the surface content with text.
	SetText(ctx context.Context, text string) error

	// Send submits the current surface content. Only auto-send sessions
	// call it; in assisted mode the user submits.
	Send(ctx context.Context) error

	// Accepted reports whether the last submitted part has been taken
	// over by the surface.
	Accepted(ctx context.Context) (bool, error)
}

// ComposerProvider resolves the composer for the current context. A nil
// composer means no surface is available right now.
type ComposerProvider interface {
	ActiveComposer() Composer
}

// ClipboardSink receives full-text fallbacks and recovery text.
type ClipboardSink interface {
	SetText(text string) error
}

// PartState is one step of a part's delivery.
type PartState string

const (
	// PartWaitingReady means the session waits for composer readiness.
	PartWaitingReady PartState = "waiting_ready"

	// PartSending means the part is being written into the composer.
	PartSending PartState = "sending"

	// PartWaitingAccepted means the part waits to be taken over.
	PartWaitingAccepted PartState = "waiting_accepted"
)

// Outcome is the terminal result of a batch session.
type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeCancelled Outcome = "cancelled"
	OutcomeFailed    Outcome = "failed"
)

// ProgressSink observes a batch session. index is zero-based.
type ProgressSink interface {
	BatchStarted(total int)
	PartState(index, total int, state PartState)
	BatchFinished(outcome Outcome, recovered int, err error)
}
