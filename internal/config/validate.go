package config

import (
	"fmt"

	"github.com/probekit/speechprobe/internal/provider"
)

func (c *Config) Validate() error {
	p := provider.Get(c.Probe.Provider)
	if p == nil {
		return fmt.Errorf("invalid probe.provider: %s (known: %v)", c.Probe.Provider, provider.List())
	}

	if c.Probe.Timeout <= 0 {
		return fmt.Errorf("invalid probe.timeout: %v", c.Probe.Timeout)
	}

	if c.Probe.Live && p.LiveEndpoint() == nil {
		return fmt.Errorf("probe.live not supported by provider %s", c.Probe.Provider)
	}

	if p.RequiresAPIKey() {
		key := c.APIKeyForProvider(c.Probe.Provider)
		if key == "" {
			return fmt.Errorf("%s API key required: not found in config (providers.%s.api_key) or environment variable (%s)",
				c.Probe.Provider, c.Probe.Provider, provider.EnvVarForProvider(c.Probe.Provider))
		}
	}

	validModes := map[string]bool{"console": true, "log": true, "none": true}
	if !validModes[c.Report.Mode] {
		return fmt.Errorf("invalid report.mode: %s (must be console, log, or none)", c.Report.Mode)
	}

	if c.Daemon.Interval <= 0 {
		return fmt.Errorf("invalid daemon.interval: %v", c.Daemon.Interval)
	}

	return nil
}
