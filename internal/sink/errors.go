package sink

import "errors"

// Construction errors returned by [NewClient] when required collaborators
// are missing.
var (
	// ErrNoTransport indicates a nil Transport.
	ErrNoTransport = errors.New("no transport provided")
	// ErrNoExecutor indicates a nil Executor.
	ErrNoExecutor = errors.New("no executor provided")
)
