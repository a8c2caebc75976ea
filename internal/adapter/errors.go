package adapter

import "errors"

var (
	// ErrUnknownProvider marks an insert job addressed to a delivery
	// provider this sink has not configured.
	ErrUnknownProvider = errors.New("unknown provider")

	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("sink unauthorized")
	ErrNotFound            = errors.New("not found")
	ErrTextRejected        = errors.New("consumer rejected text")
	ErrConsumerBusy        = errors.New("consumer busy")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")
)
