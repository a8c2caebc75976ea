package batch

import "errors"

var (
	// ErrSendInProgress rejects a send while another session is active.
	ErrSendInProgress = errors.New("batch send already in progress")

	// ErrComposerNotReady indicates the composer never became ready
	// within the readiness timeout.
	ErrComposerNotReady = errors.New("composer not ready in time")

	// ErrNotAccepted indicates a submitted part was never taken over
	// within the acceptance timeout.
	ErrNotAccepted = errors.New("part not accepted in time")
)
