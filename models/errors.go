package models

import "errors"

// Decoding errors returned by [ParseFrame] and [InsertTextFrame.Validate].
// The sink logs these and drops the offending message; the connection stays
// open.
var (
	// ErrMalformedFrame indicates a message that is not valid JSON or does
	// not decode into its declared frame type.
	ErrMalformedFrame = errors.New("malformed frame")
	// ErrUnknownFrameType indicates a syntactically valid frame whose type
	// the sink does not handle.
	ErrUnknownFrameType = errors.New("unknown frame type")
	// ErrInvalidInsertFrame indicates an insert_text frame that decoded but
	// cannot be dispatched as a job.
	ErrInvalidInsertFrame = errors.New("invalid insert_text frame")
)
