package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly durations for file-based configuration.
type StructuredJSONConfig struct {
	App struct {
		Version string `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DataFilePath string `json:"data_file"`
		StaticDir    string `json:"static_dir"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Agent struct {
		ServerURL      string   `json:"server_url"`
		RequestTimeout Duration `json:"request_timeout"`
		StatePath      string   `json:"state_file"`
	} `json:"agent,omitempty"`

	Workers struct {
		ResyncInterval    Duration `json:"resync_interval"`
		ReconnectMinDelay Duration `json:"reconnect_min_delay"`
		ReconnectMaxDelay Duration `json:"reconnect_max_delay"`
	} `json:"workers,omitempty"`
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
			Version: jsonCfg.App.Version,
		},
		Storage: Storage{
			DataFilePath: jsonCfg.Storage.DataFilePath,
			StaticDir:    jsonCfg.Storage.StaticDir,
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Agent: Agent{
			ServerURL:      jsonCfg.Agent.ServerURL,
			RequestTimeout: time.Duration(jsonCfg.Agent.RequestTimeout),
			StatePath:      jsonCfg.Agent.StatePath,
		},
		Workers: Workers{
			ResyncInterval:    time.Duration(jsonCfg.Workers.ResyncInterval),
			ReconnectMinDelay: time.Duration(jsonCfg.Workers.ReconnectMinDelay),
			ReconnectMaxDelay: time.Duration(jsonCfg.Workers.ReconnectMaxDelay),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as raw nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value, err)
		}
		*d = Duration(parsed)
		return nil
	default:
		return errors.New("invalid duration: expected string or number")
	}
}
