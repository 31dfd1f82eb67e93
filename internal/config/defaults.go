package config

import (
	"time"

	"github.com/probekit/speechprobe/internal/probe"
	"github.com/probekit/speechprobe/internal/provider"
)

// DefaultConfig returns the initial configuration written on first run.
func DefaultConfig() *Config {
	return &Config{
		Probe: ProbeConfig{
			Provider: provider.ProviderGoogle,
			Language: probe.DefaultLanguage,
			Timeout:  probe.DefaultTimeout,
			Live:     false,
		},
		Google: GoogleConfig{
			CredentialsFile: "",
			SampleURI:       probe.DefaultSampleURI,
			SampleURL:       probe.DefaultSampleURL,
		},
		Providers: make(map[string]ProviderConfig),
		Report: ReportConfig{
			Mode:    "console",
			NoColor: false,
		},
		Daemon: DaemonConfig{
			Interval: 15 * time.Minute,
		},
	}
}
