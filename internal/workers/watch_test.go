package workers

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MKhiriev/go-snip-sink/internal/config"
	"github.com/MKhiriev/go-snip-sink/internal/logger"
)

func writeConfigFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
}

// startWatcher runs w until the test finishes and returns a channel closed
// when Run has returned.
func startWatcher(t *testing.T, w *ConfigWatcher) (context.CancelFunc, chan struct{}) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()
	return cancel, done
}

func TestConfigWatcher_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	writeConfigFile(t, path, `{"app":{"log_level":"info"}}`)

	changes := make(chan *config.StructuredConfig, 4)
	w := NewConfigWatcher(path, func(cfg *config.StructuredConfig) {
		changes <- cfg
	}, logger.Nop())

	cancel, done := startWatcher(t, w)
	defer cancel()

	// The first write can land before the watch is registered, so keep
	// rewriting until an event comes through.
	deadline := time.After(3 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()

	for {
		select {
		case cfg := <-changes:
			if cfg.App.LogLevel != "debug" {
				t.Fatalf("expected reloaded log level %q, got %q", "debug", cfg.App.LogLevel)
			}
			cancel()
			<-done
			return
		case <-tick.C:
			writeConfigFile(t, path, `{"app":{"log_level":"debug"}}`)
		case <-deadline:
			t.Fatal("no reload observed")
		}
	}
}

func TestConfigWatcher_SkipsInvalidPayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	writeConfigFile(t, path, `{"app":{"log_level":"info"}}`)

	changes := make(chan *config.StructuredConfig, 4)
	w := NewConfigWatcher(path, func(cfg *config.StructuredConfig) {
		changes <- cfg
	}, logger.Nop())

	cancel, done := startWatcher(t, w)
	defer cancel()

	// Alternate garbage and valid content. A callback can only come from a
	// successful parse, so whatever arrives must carry the valid payload.
	deadline := time.After(3 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()

	for {
		select {
		case cfg := <-changes:
			if cfg.App.LogLevel != "warn" {
				t.Fatalf("expected log level %q from valid payload, got %q", "warn", cfg.App.LogLevel)
			}
			cancel()
			<-done
			return
		case <-tick.C:
			writeConfigFile(t, path, `{not json at all`)
			writeConfigFile(t, path, `{"app":{"log_level":"warn"}}`)
		case <-deadline:
			t.Fatal("no reload observed")
		}
	}
}

func TestConfigWatcher_MissingFile(t *testing.T) {
	w := NewConfigWatcher(filepath.Join(t.TempDir(), "absent.json"), func(cfg *config.StructuredConfig) {
		t.Error("onChange must not fire for a missing file")
	}, logger.Nop())

	done := make(chan struct{})
	go func() {
		w.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return for a missing file")
	}
}

func TestConfigWatcher_StopsOnCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	writeConfigFile(t, path, `{}`)

	w := NewConfigWatcher(path, func(cfg *config.StructuredConfig) {}, logger.Nop())

	cancel, done := startWatcher(t, w)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
