package config

import (
	"os"

	"github.com/probekit/speechprobe/internal/credential"
	"github.com/probekit/speechprobe/internal/probe"
	"github.com/probekit/speechprobe/internal/provider"
)

// ToProbeConfig builds the probe configuration for a single provider
func (c *Config) ToProbeConfig(providerName string) probe.Config {
	return probe.Config{
		Provider:  providerName,
		APIKey:    c.APIKeyForProvider(providerName),
		KeyFile:   c.Google.CredentialsFile,
		Model:     c.modelForProvider(providerName),
		Language:  c.Probe.Language,
		SampleURI: c.Google.SampleURI,
		SampleURL: c.Google.SampleURL,
		Timeout:   c.Probe.Timeout,
		Live:      c.Probe.Live,
	}
}

// modelForProvider applies the configured model only to the provider the run
// was configured for; everyone else keeps their default
func (c *Config) modelForProvider(providerName string) string {
	if providerName == c.Probe.Provider {
		return c.Probe.Model
	}
	return ""
}

// APIKeyForProvider returns the API key for a provider, config first then
// environment
func (c *Config) APIKeyForProvider(providerName string) string {
	if c.Providers != nil {
		if pc, ok := c.Providers[providerName]; ok && pc.APIKey != "" {
			return pc.APIKey
		}
	}

	if envVar := provider.EnvVarForProvider(providerName); envVar != "" && providerName != provider.ProviderGoogle {
		return os.Getenv(envVar)
	}

	return ""
}

// ConfiguredProviders lists the providers this config can actually probe:
// google whenever a key file is resolvable, the rest when an API key is
// present in the config or the environment.
func (c *Config) ConfiguredProviders() []string {
	var names []string
	for _, name := range []string{
		provider.ProviderGoogle,
		provider.ProviderDeepgram,
		provider.ProviderOpenAI,
		provider.ProviderGroq,
		provider.ProviderElevenLabs,
	} {
		p := provider.Get(name)
		if p == nil {
			continue
		}
		if p.RequiresKeyFile() {
			path := credential.ResolvePath(c.Google.CredentialsFile)
			if _, err := os.Stat(path); err == nil {
				names = append(names, name)
			}
			continue
		}
		if c.APIKeyForProvider(name) != "" {
			names = append(names, name)
		}
	}
	return names
}
