// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"github.com/MKhiriev/go-snip-sink/internal/batch"
	"github.com/MKhiriev/go-snip-sink/internal/logger"
)

// LogProgress reports batch delivery progress to the structured log. It is
// the default [batch.ProgressSink] when no other surface is attached.
type LogProgress struct {
	logger *logger.Logger
}

// NewLogProgress constructs a [LogProgress].
func NewLogProgress(logger *logger.Logger) *LogProgress {
	return &LogProgress{logger: logger}
}

// BatchStarted implements [batch.ProgressSink].
func (p *LogProgress) BatchStarted(total int) {
	p.logger.Info().Int("parts", total).Msg("batch send started")
}

// PartState implements [batch.ProgressSink].
func (p *LogProgress) PartState(index, total int, state batch.PartState) {
	p.logger.Debug().
		Int("part", index+1).
		Int("total", total).
		Str("state", string(state)).
		Msg("batch part")
}

// BatchFinished implements [batch.ProgressSink].
func (p *LogProgress) BatchFinished(outcome batch.Outcome, recovered int, err error) {
	event := p.logger.Info()
	if outcome == batch.OutcomeFailed {
		event = p.logger.Error().Err(err)
	}

	event.
		Str("outcome", string(outcome)).
		Int("recovered_parts", recovered).
		Msg("batch send finished")
}
