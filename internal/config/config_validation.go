// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"net/url"
	"strings"
)

// validate checks the merged [StructuredConfig] for cross-source consistency.
//
// Deliberately permissive: a merged config may legitimately be sparse (the
// daemon applies defaults at wiring time), so the strict startup checks live
// on [SinkConfig.validate] instead.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	return nil
}

func (cfg *SinkConfig) validate() error {
	u, err := url.Parse(cfg.Relay.URL)
	if cfg.Relay.URL == "" || err != nil || u.Host == "" || (u.Scheme != "ws" && u.Scheme != "wss") {
		return ErrInvalidRelayConfigs
	}

	if cfg.Relay.JobTimeout < 0 || cfg.Relay.ReconnectDelay < 0 {
		return ErrInvalidRelayConfigs
	}

	if cfg.Consumer.RequestTimeout < 0 {
		return ErrInvalidConsumerConfigs
	}

	switch cfg.Batch.Mode {
	case "", "assisted", "auto_send":
	default:
		return ErrInvalidBatchConfigs
	}

	if cfg.Batch.MaxChars < 0 {
		return ErrInvalidBatchConfigs
	}

	if cfg.Batch.ReadyTimeout < 0 || cfg.Batch.BusyReadyTimeout < 0 ||
		cfg.Batch.AcceptTimeout < 0 || cfg.Batch.PollInterval < 0 {
		return ErrInvalidBatchConfigs
	}

	if cfg.Diag.Address != "" && !strings.Contains(cfg.Diag.Address, ":") {
		return ErrInvalidDiagConfigs
	}

	if cfg.Workers.StatusInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
