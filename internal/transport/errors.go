package transport

import "errors"

// ErrInvalidRelayURL indicates a relay URL whose scheme is not ws or wss.
var ErrInvalidRelayURL = errors.New("invalid relay url")
