package server

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-snip-sink/internal/config"
	"github.com/MKhiriev/go-snip-sink/internal/logger"
)

// DefaultAddress is the diagnostic API listen address used when the
// configuration leaves it empty. Loopback on purpose: the API carries no
// authentication.
const DefaultAddress = "127.0.0.1:8990"

const readHeaderTimeout = 5 * time.Second

// NewServer creates the diagnostic HTTP server around the given handler.
// An empty cfg.Address falls back to [DefaultAddress].
func NewServer(handler http.Handler, cfg config.SinkDiag, logger *logger.Logger) (Server, error) {
	if handler == nil {
		return nil, errNoHandlerProvided
	}

	address := cfg.Address
	if address == "" {
		address = DefaultAddress
	}

	logger.Info().Str("address", address).Msg("creating diag server")

	return &httpServer{
		server: &http.Server{
			Addr:              address,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		logger: logger,
	}, nil
}
