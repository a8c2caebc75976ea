// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"

	"github.com/fsnotify/fsnotify"

	"github.com/MKhiriev/go-snip-sink/internal/config"
	"github.com/MKhiriev/go-snip-sink/internal/logger"
)

// ConfigWatcher monitors the JSON config file and calls onChange with the
// newly parsed config each time the file is written. A reload that fails to
// parse is logged and skipped; the previous settings stay active.
type ConfigWatcher struct {
	path     string
	onChange func(cfg *config.StructuredConfig)
	logger   *logger.Logger
}

// NewConfigWatcher creates a watcher for the config file at path.
func NewConfigWatcher(path string, onChange func(cfg *config.StructuredConfig), logger *logger.Logger) *ConfigWatcher {
	return &ConfigWatcher{
		path:     path,
		onChange: onChange,
		logger:   logger,
	}
}

// Run watches the file until ctx is cancelled.
func (w *ConfigWatcher) Run(ctx context.Context) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.logger.Error().Err(err).Msg("create config watcher")
		return
	}
	defer watcher.Close()

	if err := watcher.Add(w.path); err != nil {
		w.logger.Error().Err(err).Str("path", w.path).Msg("watch config file")
		return
	}

	w.logger.Info().Str("path", w.path).Msg("watching config file")

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			// Editors often save via rename, which arrives as Create.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			cfg, err := config.ParseJSONFile(w.path)
			if err != nil {
				w.logger.Error().Err(err).Str("path", w.path).Msg("config reload failed, keeping previous settings")
				continue
			}

			w.logger.Info().Str("path", w.path).Msg("config file reloaded")
			w.onChange(cfg)

			// An atomic save replaces the inode; re-add the path.
			_ = watcher.Add(w.path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error().Err(err).Msg("config watcher error")
		}
	}
}
