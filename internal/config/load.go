package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}

	probeDir := filepath.Join(configDir, "speechprobe")
	if err := os.MkdirAll(probeDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(probeDir, "config.toml"), nil
}

func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	// If config file doesn't exist, create it with defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Printf("Config: no config file found at %s, creating with defaults", configPath)
		if err := Save(DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	log.Printf("Config: loading configuration from %s", configPath)
	var config Config
	if _, err := toml.DecodeFile(configPath, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	if config.Providers == nil {
		config.Providers = make(map[string]ProviderConfig)
	}
	config.applyDefaults()

	log.Printf("Config: configuration loaded successfully")
	return &config, nil
}

// applyDefaults fills the fields an edited file may have dropped
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Probe.Provider == "" {
		c.Probe.Provider = def.Probe.Provider
	}
	if c.Probe.Language == "" {
		c.Probe.Language = def.Probe.Language
	}
	if c.Probe.Timeout == 0 {
		c.Probe.Timeout = def.Probe.Timeout
	}
	if c.Google.SampleURI == "" {
		c.Google.SampleURI = def.Google.SampleURI
	}
	if c.Google.SampleURL == "" {
		c.Google.SampleURL = def.Google.SampleURL
	}
	if c.Report.Mode == "" {
		c.Report.Mode = def.Report.Mode
	}
	if c.Daemon.Interval == 0 {
		c.Daemon.Interval = def.Daemon.Interval
	}
}

func Save(config *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	log.Printf("Config: configuration saved to %s", configPath)
	return nil
}
