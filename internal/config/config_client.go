package config

import (
	"fmt"
	"time"
)

// ClientAgent holds network settings used by the agent transport layer.
type ClientAgent struct {
	// ServerURL is the sync server base URL. Empty means Offline mode.
	ServerURL string
	// RequestTimeout is the default timeout for outbound requests and the
	// WebSocket handshake.
	RequestTimeout time.Duration
}

// ClientStorage groups agent storage settings.
type ClientStorage struct {
	// StatePath is the local state file path, ":memory:" for none.
	StatePath string
}

// ClientWorkers contains background job settings for the agent.
type ClientWorkers struct {
	// ResyncInterval defines how often the Connected agent refreshes.
	ResyncInterval time.Duration
	// ReconnectMinDelay / ReconnectMaxDelay bound the reconnect backoff.
	ReconnectMinDelay time.Duration
	ReconnectMaxDelay time.Duration
}

// ClientConfig is the agent-facing configuration view assembled from
// [StructuredConfig].
type ClientConfig struct {
	// Agent contains transport settings.
	Agent ClientAgent
	// Storage contains local state settings.
	Storage ClientStorage
	// Workers contains background job settings.
	Workers ClientWorkers
}

// GetClientConfig builds and validates the agent-specific config view from
// the merged structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Agent: ClientAgent{
			ServerURL:      cfg.Agent.ServerURL,
			RequestTimeout: cfg.Agent.RequestTimeout,
		},
		Storage: ClientStorage{
			StatePath: cfg.Agent.StatePath,
		},
		Workers: ClientWorkers{
			ResyncInterval:    cfg.Workers.ResyncInterval,
			ReconnectMinDelay: cfg.Workers.ReconnectMinDelay,
			ReconnectMaxDelay: cfg.Workers.ReconnectMaxDelay,
		},
	}

	return clientCfg, clientCfg.validate()
}
