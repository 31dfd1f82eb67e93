package config

import "time"

type Config struct {
	Probe     ProbeConfig               `toml:"probe"`
	Google    GoogleConfig              `toml:"google"`
	Providers map[string]ProviderConfig `toml:"providers"`
	Report    ReportConfig              `toml:"report"`
	Daemon    DaemonConfig              `toml:"daemon"`
}

// ProbeConfig selects what a probe run verifies
type ProbeConfig struct {
	Provider string        `toml:"provider"`
	Model    string        `toml:"model"`
	Language string        `toml:"language"`
	Timeout  time.Duration `toml:"timeout"`
	Live     bool          `toml:"live"` // probe the streaming endpoint where the provider has one
}

// GoogleConfig holds the service-account side of authentication
type GoogleConfig struct {
	CredentialsFile string `toml:"credentials_file"`
	SampleURI       string `toml:"sample_uri"`
	SampleURL       string `toml:"sample_url"`
}

// ProviderConfig holds the API key for a key-authenticated provider
type ProviderConfig struct {
	APIKey string `toml:"api_key"`
}

// ReportConfig controls how outcomes are printed
type ReportConfig struct {
	Mode    string `toml:"mode"` // "console", "log", "none"
	NoColor bool   `toml:"no_color"`
}

// DaemonConfig controls the serve loop
type DaemonConfig struct {
	Interval time.Duration `toml:"interval"` // how often the daemon re-probes
}
