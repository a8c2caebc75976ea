package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with json tags and
// [Duration] fields so that timeouts can be written as "30s" in the file.
type StructuredJSONConfig struct {
	App struct {
		Version         string `json:"version"`
		LogLevel        string `json:"log_level"`
		DefaultProvider string `json:"default_provider"`
	} `json:"app,omitempty"`

	Relay struct {
		URL            string   `json:"url"`
		AuthToken      string   `json:"auth_token"`
		JobTimeout     Duration `json:"job_timeout"`
		ReconnectDelay Duration `json:"reconnect_delay"`
	} `json:"relay,omitempty"`

	Consumer struct {
		URL            string   `json:"url"`
		AuthToken      string   `json:"auth_token"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"consumer,omitempty"`

	Batch struct {
		Mode             string   `json:"mode"`
		MaxChars         int      `json:"max_chars"`
		ReadyTimeout     Duration `json:"ready_timeout"`
		BusyReadyTimeout Duration `json:"busy_ready_timeout"`
		AcceptTimeout    Duration `json:"accept_timeout"`
		PollInterval     Duration `json:"poll_interval"`
	} `json:"batch,omitempty"`

	Diag struct {
		Address string `json:"address"`
	} `json:"diag,omitempty"`

	Workers struct {
		StatusInterval Duration `json:"status_interval"`
	} `json:"workers,omitempty"`
}

// ParseJSONFile loads a [StructuredConfig] from the JSON file at path.
// Used by the config watcher to re-read settings at runtime.
func ParseJSONFile(path string) (*StructuredConfig, error) {
	return parseJSON(path)
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Version:         jsonCfg.App.Version,
			LogLevel:        jsonCfg.App.LogLevel,
			DefaultProvider: jsonCfg.App.DefaultProvider,
		},
		Relay: Relay{
			URL:            jsonCfg.Relay.URL,
			AuthToken:      jsonCfg.Relay.AuthToken,
			JobTimeout:     time.Duration(jsonCfg.Relay.JobTimeout),
			ReconnectDelay: time.Duration(jsonCfg.Relay.ReconnectDelay),
		},
		Consumer: Consumer{
			URL:            jsonCfg.Consumer.URL,
			AuthToken:      jsonCfg.Consumer.AuthToken,
			RequestTimeout: time.Duration(jsonCfg.Consumer.RequestTimeout),
		},
		Batch: Batch{
			Mode:             jsonCfg.Batch.Mode,
			MaxChars:         jsonCfg.Batch.MaxChars,
			ReadyTimeout:     time.Duration(jsonCfg.Batch.ReadyTimeout),
			BusyReadyTimeout: time.Duration(jsonCfg.Batch.BusyReadyTimeout),
			AcceptTimeout:    time.Duration(jsonCfg.Batch.AcceptTimeout),
			PollInterval:     time.Duration(jsonCfg.Batch.PollInterval),
		},
		Diag: Diag{
			Address: jsonCfg.Diag.Address,
		},
		Workers: Workers{
			StatusInterval: time.Duration(jsonCfg.Workers.StatusInterval),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
