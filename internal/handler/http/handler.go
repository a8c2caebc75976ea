package http

import (
	"github.com/MKhiriev/go-snip-sink/internal/batch"
	"github.com/MKhiriev/go-snip-sink/internal/logger"
	"github.com/MKhiriev/go-snip-sink/internal/sink"
	"github.com/MKhiriev/go-snip-sink/internal/utils"
)

type Handler struct {
	client *sink.Client
	sender *batch.Sender

	// batchDefaults seeds the settings of a triggered batch send; the
	// request body may override the mode.
	batchDefaults batch.Settings

	version string
	ids     *utils.UUIDGenerator

	logger *logger.Logger
}

func NewHandler(client *sink.Client, sender *batch.Sender, batchDefaults batch.Settings, version string, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		client:        client,
		sender:        sender,
		batchDefaults: batchDefaults,
		version:       version,
		ids:           utils.NewUUIDGenerator(),
		logger:        logger,
	}
}
