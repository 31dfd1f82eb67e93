package tui

import (
	"strings"
	"testing"

	"github.com/probekit/speechprobe/internal/config"
)

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{"short key fully masked", "sk-1234", "***"},
		{"empty key", "", "***"},
		{"long key keeps edges", "sk-abcdefghijklmnop", "sk-abcd...mnop"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := maskAPIKey(tt.key); got != tt.want {
				t.Errorf("maskAPIKey(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestMenuLabels(t *testing.T) {
	cfg := config.DefaultConfig()

	if got := formatGoogleLabel(cfg); got != "Google credentials" {
		t.Errorf("formatGoogleLabel = %q", got)
	}
	cfg.Google.CredentialsFile = "assets/google_speech.json"
	if got := formatGoogleLabel(cfg); got != "Google credentials (set)" {
		t.Errorf("formatGoogleLabel with file = %q", got)
	}

	if got := formatAPIKeysLabel(cfg); got != "Provider API keys" {
		t.Errorf("formatAPIKeysLabel = %q", got)
	}
	cfg.Providers = map[string]config.ProviderConfig{
		"openai": {APIKey: "sk-test"},
		"groq":   {APIKey: "gsk_test"},
	}
	if got := formatAPIKeysLabel(cfg); got != "Provider API keys (2 configured)" {
		t.Errorf("formatAPIKeysLabel with keys = %q", got)
	}

	if got := formatProbeLabel(cfg); !strings.Contains(got, cfg.Probe.Provider) {
		t.Errorf("formatProbeLabel = %q, want provider name included", got)
	}
	if got := formatReportLabel(cfg); !strings.Contains(got, cfg.Report.Mode) {
		t.Errorf("formatReportLabel = %q, want mode included", got)
	}
}

func TestLogoNotEmpty(t *testing.T) {
	if Logo() == "" {
		t.Error("Logo() returned empty string")
	}
}
