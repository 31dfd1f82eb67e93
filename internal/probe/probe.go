package probe

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/probekit/speechprobe/internal/provider"
)

// Status is the terminal outcome of a single verification attempt.
type Status int

const (
	// Denied means something in the chain failed: missing credential,
	// malformed key file, network failure, auth rejection, quota.
	Denied Status = iota
	// Confirmed means the call succeeded and the service returned at least
	// one transcript.
	Confirmed
	// NoSpeech means the call succeeded but the service heard nothing in the
	// sample. Access is still proven.
	NoSpeech
)

func (s Status) String() string {
	switch s {
	case Confirmed:
		return "confirmed"
	case NoSpeech:
		return "no-speech"
	default:
		return "denied"
	}
}

// Outcome is the result of one probe. Err is only set when Status is Denied.
type Outcome struct {
	Provider   string
	Status     Status
	Transcript string
	Err        error
	Elapsed    time.Duration
}

// Prober performs one authenticated call against a speech-to-text service.
// A prober makes a single attempt: no retries, no partial recovery.
type Prober interface {
	Name() string
	Probe(ctx context.Context) Outcome
}

// Config selects and parameterizes a prober
type Config struct {
	Provider  string
	APIKey    string
	KeyFile   string // google service-account key file
	Model     string
	Language  string
	SampleURI string // object-storage URI for the google probe
	SampleURL string // https mirror of the sample for url-based probes
	Timeout   time.Duration
	Live      bool // probe the streaming endpoint where the provider has one
}

const (
	// Google's public sample clip, the fixed audio reference every run
	// recognizes against.
	DefaultSampleURI = "gs://cloud-samples-tests/speech/brooklyn.flac"
	DefaultSampleURL = "https://storage.googleapis.com/cloud-samples-tests/speech/brooklyn.flac"

	DefaultLanguage = "en-US"
	DefaultTimeout  = 30 * time.Second
)

func DefaultConfig() Config {
	return Config{
		Provider:  provider.ProviderGoogle,
		Language:  DefaultLanguage,
		SampleURI: DefaultSampleURI,
		SampleURL: DefaultSampleURL,
		Timeout:   DefaultTimeout,
	}
}

// New creates a prober for the configured provider
func New(cfg Config) (Prober, error) {
	cfg = withDefaults(cfg)

	p := provider.Get(cfg.Provider)
	if p == nil {
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}

	if cfg.Model == "" {
		cfg.Model = p.DefaultModel()
	}

	if p.RequiresAPIKey() {
		cfg.APIKey = resolveAPIKey(cfg.Provider, cfg.APIKey)
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%s API key required: not found in config or %s", cfg.Provider, provider.EnvVarForProvider(cfg.Provider))
		}
	}

	switch cfg.Provider {
	case provider.ProviderGoogle:
		return NewGoogleProber(cfg), nil

	case provider.ProviderDeepgram:
		if cfg.Live {
			return NewDeepgramLiveProber(p.LiveEndpoint(), cfg), nil
		}
		return NewDeepgramProber(p.Endpoint(), cfg), nil

	case provider.ProviderOpenAI:
		return NewOpenAIProber(cfg), nil

	case provider.ProviderGroq:
		return NewGroqProber(cfg), nil

	case provider.ProviderElevenLabs:
		return NewElevenLabsProber(p.Endpoint(), cfg), nil

	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
}

// Run performs one verification for the configured provider. It never returns
// an error: every failure, including prober construction, collapses into a
// Denied outcome carrying the raw error text.
func Run(ctx context.Context, cfg Config) Outcome {
	cfg = withDefaults(cfg)

	p, err := New(cfg)
	if err != nil {
		return Outcome{Provider: cfg.Provider, Status: Denied, Err: NewDenialError(err)}
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	out := p.Probe(ctx)
	out.Provider = cfg.Provider
	out.Elapsed = time.Since(start)

	log.Printf("probe: %s finished in %v, status=%s", cfg.Provider, out.Elapsed, out.Status)
	return out
}

func withDefaults(cfg Config) Config {
	def := DefaultConfig()
	if cfg.Provider == "" {
		cfg.Provider = def.Provider
	}
	if cfg.Language == "" {
		cfg.Language = def.Language
	}
	if cfg.SampleURI == "" {
		cfg.SampleURI = def.SampleURI
	}
	if cfg.SampleURL == "" {
		cfg.SampleURL = def.SampleURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = def.Timeout
	}
	return cfg
}

// resolveAPIKey falls back to the provider's environment variable when the
// config carries no key
func resolveAPIKey(providerName, configured string) string {
	if configured != "" {
		return configured
	}
	if env := provider.EnvVarForProvider(providerName); env != "" {
		return os.Getenv(env)
	}
	return ""
}

// confirmed builds the success outcome for a non-empty transcript, NoSpeech
// otherwise
func confirmed(transcript string) Outcome {
	if transcript == "" {
		return Outcome{Status: NoSpeech}
	}
	return Outcome{Status: Confirmed, Transcript: transcript}
}

func denied(err error) Outcome {
	return Outcome{Status: Denied, Err: NewDenialError(err)}
}
