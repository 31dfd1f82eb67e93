package probe

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/probekit/speechprobe/internal/provider"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Provider != provider.ProviderGoogle {
		t.Errorf("default provider = %q, want google", cfg.Provider)
	}
	if cfg.SampleURI != "gs://cloud-samples-tests/speech/brooklyn.flac" {
		t.Errorf("default sample URI = %q", cfg.SampleURI)
	}
	if cfg.Language != "en-US" {
		t.Errorf("default language = %q, want en-US", cfg.Language)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("default timeout = %v, want 30s", cfg.Timeout)
	}
}

func TestNewUnsupportedProvider(t *testing.T) {
	_, err := New(Config{Provider: "nonexistent"})
	if err == nil {
		t.Fatal("New() should fail for unknown provider")
	}
	if !strings.Contains(err.Error(), "unsupported provider") {
		t.Errorf("error = %v, want mention of unsupported provider", err)
	}
}

func TestNewRequiresAPIKey(t *testing.T) {
	for _, name := range []string{
		provider.ProviderDeepgram,
		provider.ProviderOpenAI,
		provider.ProviderGroq,
		provider.ProviderElevenLabs,
	} {
		t.Run(name, func(t *testing.T) {
			t.Setenv(provider.EnvVarForProvider(name), "")

			_, err := New(Config{Provider: name})
			if err == nil {
				t.Fatal("New() should fail without an API key")
			}
			if !strings.Contains(err.Error(), "API key required") {
				t.Errorf("error = %v, want mention of API key", err)
			}
		})
	}
}

func TestNewAPIKeyFromEnv(t *testing.T) {
	t.Setenv("DEEPGRAM_API_KEY", "env-key")

	p, err := New(Config{Provider: provider.ProviderDeepgram})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	dg, ok := p.(*DeepgramProber)
	if !ok {
		t.Fatalf("New() = %T, want *DeepgramProber", p)
	}
	if dg.apiKey != "env-key" {
		t.Errorf("apiKey = %q, want env-key", dg.apiKey)
	}
}

func TestNewProberTypes(t *testing.T) {
	tests := []struct {
		cfg      Config
		wantType string
	}{
		{Config{Provider: provider.ProviderGoogle}, "*probe.GoogleProber"},
		{Config{Provider: provider.ProviderDeepgram, APIKey: "k"}, "*probe.DeepgramProber"},
		{Config{Provider: provider.ProviderDeepgram, APIKey: "k", Live: true}, "*probe.DeepgramLiveProber"},
		{Config{Provider: provider.ProviderOpenAI, APIKey: "sk-k"}, "*probe.OpenAIProber"},
		{Config{Provider: provider.ProviderGroq, APIKey: "gsk_k"}, "*probe.OpenAIProber"},
		{Config{Provider: provider.ProviderElevenLabs, APIKey: "k"}, "*probe.ElevenLabsProber"},
	}

	for _, tt := range tests {
		t.Run(tt.cfg.Provider, func(t *testing.T) {
			p, err := New(tt.cfg)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if got := fmt.Sprintf("%T", p); got != tt.wantType {
				t.Errorf("New() = %s, want %s", got, tt.wantType)
			}
		})
	}
}

func TestNewAppliesDefaultModel(t *testing.T) {
	p, err := New(Config{Provider: provider.ProviderDeepgram, APIKey: "k"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if model := p.(*DeepgramProber).model; model != "nova-3" {
		t.Errorf("model = %q, want nova-3", model)
	}
}

func TestGoogleProberCarriesModel(t *testing.T) {
	// a model override must reach the recognition request
	p, err := New(Config{Provider: provider.ProviderGoogle, Model: "latest_long"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if model := p.(*GoogleProber).model; model != "latest_long" {
		t.Errorf("model = %q, want latest_long", model)
	}

	p, err = New(Config{Provider: provider.ProviderGoogle})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if model := p.(*GoogleProber).model; model != "default" {
		t.Errorf("model without override = %q, want the provider default", model)
	}
}

func TestConfirmedMapping(t *testing.T) {
	out := confirmed("brooklyn bridge")
	if out.Status != Confirmed || out.Transcript != "brooklyn bridge" {
		t.Errorf("confirmed(text) = %+v", out)
	}

	out = confirmed("")
	if out.Status != NoSpeech {
		t.Errorf("confirmed(\"\") status = %d, want NoSpeech", out.Status)
	}
}

func TestRunNeverReturnsError(t *testing.T) {
	// constructor failure must surface as a denial, not a panic or error
	out := Run(context.Background(), Config{Provider: "nonexistent"})
	if out.Status != Denied {
		t.Fatalf("status = %d, want Denied", out.Status)
	}
	if out.Err == nil {
		t.Fatal("denied outcome must carry an error")
	}
	if !IsDenialError(out.Err) {
		t.Errorf("error %v should be a DenialError", out.Err)
	}
	if out.Provider != "nonexistent" {
		t.Errorf("provider = %q", out.Provider)
	}
}

func TestGoogleProbeMissingKeyFile(t *testing.T) {
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")
	missing := filepath.Join(t.TempDir(), "missing.json")

	out := Run(context.Background(), Config{Provider: provider.ProviderGoogle, KeyFile: missing})
	if out.Status != Denied {
		t.Fatalf("status = %d, want Denied", out.Status)
	}
	if !strings.Contains(out.Err.Error(), "not found") {
		t.Errorf("error %q should indicate the key file was not found", out.Err)
	}
}

func TestDenialError(t *testing.T) {
	base := errors.New("boom")
	err := NewDenialError(base)

	if !IsDenialError(err) {
		t.Error("IsDenialError() = false for a DenialError")
	}
	if !errors.Is(err, base) {
		t.Error("DenialError should unwrap to the base error")
	}
	if err.Error() != "boom" {
		t.Errorf("Error() = %q, want boom", err.Error())
	}

	if NewDenialError(nil) != nil {
		t.Error("NewDenialError(nil) should be nil")
	}
	if IsDenialError(errors.New("plain")) {
		t.Error("IsDenialError() = true for a plain error")
	}
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{Confirmed, "confirmed"},
		{NoSpeech, "no-speech"},
		{Denied, "denied"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", int(tt.status), got, tt.want)
		}
	}
}
