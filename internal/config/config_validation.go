// SPDX-License-Identifier: Apache-2.0

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// server invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Agent.RequestTimeout <= 0 {
		return ErrInvalidAgentConfigs
	}

	// An empty ServerURL is valid: the agent runs Offline.

	if cfg.Workers.ResyncInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.Workers.ReconnectMinDelay <= 0 ||
		cfg.Workers.ReconnectMaxDelay < cfg.Workers.ReconnectMinDelay {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
