package config

import "errors"

// Validation errors returned by [SinkConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidRelayConfigs indicates invalid relay settings (for
	// example, a missing URL or a scheme other than ws/wss).
	ErrInvalidRelayConfigs = errors.New("invalid relay configuration")
	// ErrInvalidConsumerConfigs indicates invalid consumer settings
	// (for example, a negative request timeout).
	ErrInvalidConsumerConfigs = errors.New("invalid consumer configuration")
	// ErrInvalidBatchConfigs indicates invalid batch settings (for
	// example, an unknown mode or a negative part size).
	ErrInvalidBatchConfigs = errors.New("invalid batch configuration")
	// ErrInvalidDiagConfigs indicates an invalid diagnostic API address.
	ErrInvalidDiagConfigs = errors.New("invalid diag configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, a negative status interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
