package chunk

import "errors"

// Validation errors returned by [Split] before any chunking happens.
var (
	// ErrMaxCharsTooSmall indicates a MaxChars value that leaves no room
	// for chunk content once the part header and framing text are reserved.
	ErrMaxCharsTooSmall = errors.New("max chars leaves no room for chunk content")
	// ErrUnknownContentType indicates a content type outside auto/text/markdown.
	ErrUnknownContentType = errors.New("unknown content type")
	// ErrUnknownFramingMode indicates a framing mode outside ack/silent.
	ErrUnknownFramingMode = errors.New("unknown framing mode")
	// ErrTooManyParts indicates a text that splits into more parts than the
	// fixed-width part header can number.
	ErrTooManyParts = errors.New("text splits into too many parts")
)
