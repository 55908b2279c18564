package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

func TestBuild_EmptyBuilderFailsValidation(t *testing.T) {
	// Without any source there is no listen address, so validation rejects.
	_, err := newConfigBuilder().build()
	assert.ErrorIs(t, err, ErrInvalidServerConfigs)
}

func TestBuild_DefaultsAlone(t *testing.T) {
	cfg, err := newConfigBuilder().withDefaults().build()

	require.NoError(t, err)
	assert.Equal(t, DefaultHTTPAddress, cfg.Server.HTTPAddress)
	assert.Equal(t, DefaultDataFilePath, cfg.Storage.DataFilePath)
	assert.Equal(t, DefaultRequestTimeout, cfg.Server.RequestTimeout)
	assert.Equal(t, DefaultResyncInterval, cfg.Workers.ResyncInterval)
}

func TestBuild_FirstSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Server: Server{HTTPAddress: ":9000"}},
		&StructuredConfig{Server: Server{HTTPAddress: ":8000", RequestTimeout: 5 * time.Second}},
	)
	b.withDefaults()

	cfg, err := b.build()

	require.NoError(t, err)
	// The earlier source keeps its address; the later one only fills the
	// timeout it alone provides.
	assert.Equal(t, ":9000", cfg.Server.HTTPAddress)
	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = errors.New("boom")

	cfg, err := b.build()

	assert.Nil(t, cfg)
	assert.ErrorContains(t, err, "boom")
}

func TestWithJSON_UsesPathFromEarlierSource(t *testing.T) {
	path := writeTempJSONConfig(t, `{"server": {"http_address": ":7777"}}`)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON().withDefaults()

	cfg, err := b.build()

	require.NoError(t, err)
	assert.Equal(t, ":7777", cfg.Server.HTTPAddress)
}

func TestWithJSON_NoPathConfigured(t *testing.T) {
	b := newConfigBuilder().withJSON()
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

func TestWithJSON_BadPathSetsError(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/no/such/file.json"})
	b.withJSON()

	assert.Error(t, b.err)
}

func TestClientConfig_Validate(t *testing.T) {
	valid := func() *ClientConfig {
		return &ClientConfig{
			Agent: ClientAgent{RequestTimeout: 10 * time.Second},
			Workers: ClientWorkers{
				ResyncInterval:    time.Minute,
				ReconnectMinDelay: time.Second,
				ReconnectMaxDelay: 30 * time.Second,
			},
		}
	}

	t.Run("valid offline config", func(t *testing.T) {
		assert.NoError(t, valid().validate())
	})

	t.Run("zero request timeout", func(t *testing.T) {
		cfg := valid()
		cfg.Agent.RequestTimeout = 0
		assert.ErrorIs(t, cfg.validate(), ErrInvalidAgentConfigs)
	})

	t.Run("zero resync interval", func(t *testing.T) {
		cfg := valid()
		cfg.Workers.ResyncInterval = 0
		assert.ErrorIs(t, cfg.validate(), ErrInvalidWorkerConfigs)
	})

	t.Run("inverted backoff bounds", func(t *testing.T) {
		cfg := valid()
		cfg.Workers.ReconnectMinDelay = time.Minute
		cfg.Workers.ReconnectMaxDelay = time.Second
		assert.ErrorIs(t, cfg.validate(), ErrInvalidWorkerConfigs)
	})
}
