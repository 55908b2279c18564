// SPDX-License-Identifier: Apache-2.0

package config

import (
	"time"
)

// Defaults applied when no other source sets a value. The port and data
// file name match what the dashboard clients expect out of the box.
const (
	DefaultHTTPAddress    = ":8780"
	DefaultDataFilePath   = "chore-data.json"
	DefaultStatePath      = "chore-state.json"
	DefaultRequestTimeout = 15 * time.Second
	DefaultResyncInterval = 5 * time.Minute
	DefaultReconnectMin   = time.Second
	DefaultReconnectMax   = 30 * time.Second
)

// StructuredConfig is the top-level configuration container for chore-sync.
// It aggregates all sub-configurations and is populated by merging values
// from environment variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the reported version.
	App App `envPrefix:"APP_"`

	// Storage holds the server-side document file and static asset settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Agent holds settings for the client sync agent.
	Agent Agent `envPrefix:"AGENT_"`

	// Workers holds background job settings (resync interval, reconnect
	// backoff bounds).
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file,
	// merged on top of env and flag values when non-empty.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration.
type App struct {
	// Version is the application version string reported by GET /version.
	// Usually injected at build time via ldflags.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the server-side persistence and static asset settings.
type Storage struct {
	// DataFilePath is the path of the JSON file holding the shared
	// Document. When set to ":memory:" the server keeps the Document in
	// process memory only.
	// Env: STORAGE_DATA_FILE
	DataFilePath string `env:"DATA_FILE"`

	// StaticDir is the directory served for unmatched GET paths (the
	// dashboard's index.html, fonts, icons). Empty disables static serving.
	// Env: STORAGE_STATIC_DIR
	StaticDir string `env:"STATIC_DIR"`
}

// Server holds network and timeout settings for the inbound HTTP transport,
// which carries both the REST API and the WebSocket broadcast channel.
type Server struct {
	// HTTPAddress is the TCP address the server listens on, in
	// "host:port" format (e.g. "0.0.0.0:8780").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single inbound REST request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Agent holds the client sync agent settings.
type Agent struct {
	// ServerURL is the base URL of the sync server (e.g.
	// "http://192.168.1.10:8780"). Empty means the agent runs Offline,
	// against local storage only.
	// Env: AGENT_SERVER_URL
	ServerURL string `env:"SERVER_URL"`

	// RequestTimeout bounds each outbound PUT/GET and the WebSocket
	// handshake. A round trip exceeding it counts as a connection failure.
	// Env: AGENT_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// StatePath is the path of the local state file holding the last known
	// Document and the per-device fields. ":memory:" keeps state in memory.
	// Env: AGENT_STATE_FILE
	StatePath string `env:"STATE_FILE"`
}

// Workers holds background job settings for the agent.
type Workers struct {
	// ResyncInterval is how often a Connected agent refreshes its Document
	// from the server even without a change notification.
	// Env: WORKERS_RESYNC_INTERVAL
	ResyncInterval time.Duration `env:"RESYNC_INTERVAL"`

	// ReconnectMinDelay and ReconnectMaxDelay bound the exponential backoff
	// between reconnection attempts after a connection loss.
	// Env: WORKERS_RECONNECT_MIN_DELAY / WORKERS_RECONNECT_MAX_DELAY
	ReconnectMinDelay time.Duration `env:"RECONNECT_MIN_DELAY"`
	ReconnectMaxDelay time.Duration `env:"RECONNECT_MAX_DELAY"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (first source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
