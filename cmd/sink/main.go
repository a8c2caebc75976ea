package main

import (
	"fmt"

	"github.com/MKhiriev/go-snip-sink/internal/client"
	"github.com/MKhiriev/go-snip-sink/internal/config"
	"github.com/MKhiriev/go-snip-sink/internal/logger"
	"github.com/MKhiriev/go-snip-sink/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(buildInfo)

	log := logger.NewLogger("go-snip-sink")
	cfg, err := config.GetSinkConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if cfg.App.LogLevel != "" {
		if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
			log.Fatal().Err(err).Msg("error applying log level")
		}
	}

	// The linker-injected version serves as a fallback for the register frame.
	if cfg.App.Version == "" && buildInfo.BuildVersion() != "N/A" {
		cfg.App.Version = buildInfo.BuildVersion()
	}

	log.Debug().
		Str("relay_url", cfg.Relay.URL).
		Str("diag_address", cfg.Diag.Address).
		Str("batch_mode", cfg.Batch.Mode).
		Str("default_provider", cfg.App.DefaultProvider).
		Msg("received configs")

	app, err := client.NewApp(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init sink app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("sink run error")
	}
}
