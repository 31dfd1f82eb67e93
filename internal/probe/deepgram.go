package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"

	"github.com/probekit/speechprobe/internal/provider"
)

// DeepgramProber verifies access to Deepgram's pre-recorded API by pointing
// it at the public https mirror of the sample clip.
type DeepgramProber struct {
	client    *http.Client
	endpoint  *provider.EndpointConfig
	apiKey    string
	model     string
	language  string
	sampleURL string
}

// deepgramResponse is the pre-recorded API response
type deepgramResponse struct {
	Results *deepgramResults `json:"results,omitempty"`
	Error   *deepgramError   `json:"error,omitempty"`
}

type deepgramResults struct {
	Channels []deepgramChannel `json:"channels,omitempty"`
}

type deepgramChannel struct {
	Alternatives []deepgramAlternative `json:"alternatives,omitempty"`
}

type deepgramAlternative struct {
	Transcript string  `json:"transcript"`
	Confidence float64 `json:"confidence"`
}

type deepgramError struct {
	Type        string `json:"err_code,omitempty"`
	Message     string `json:"err_msg,omitempty"`
	Description string `json:"description,omitempty"`
}

func NewDeepgramProber(endpoint *provider.EndpointConfig, cfg Config) *DeepgramProber {
	return &DeepgramProber{
		client:    &http.Client{Timeout: cfg.Timeout},
		endpoint:  endpoint,
		apiKey:    cfg.APIKey,
		model:     cfg.Model,
		language:  cfg.Language,
		sampleURL: cfg.SampleURL,
	}
}

func (p *DeepgramProber) Name() string {
	return provider.ProviderDeepgram
}

func (p *DeepgramProber) Probe(ctx context.Context) Outcome {
	apiURL, err := p.buildURL()
	if err != nil {
		return denied(fmt.Errorf("build url: %w", err))
	}

	payload, err := json.Marshal(map[string]string{"url": p.sampleURL})
	if err != nil {
		return denied(fmt.Errorf("marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, "POST", apiURL, bytes.NewReader(payload))
	if err != nil {
		return denied(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Authorization", "Token "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return denied(fmt.Errorf("http request: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return denied(fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		return denied(fmt.Errorf("deepgram api error (status %d): %s", resp.StatusCode, string(body)))
	}

	var result deepgramResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return denied(fmt.Errorf("parse response: %w", err))
	}
	if result.Error != nil {
		return denied(fmt.Errorf("deepgram error: %s", result.Error.Message))
	}

	if result.Results == nil || len(result.Results.Channels) == 0 {
		return Outcome{Status: NoSpeech}
	}
	if len(result.Results.Channels[0].Alternatives) == 0 {
		return Outcome{Status: NoSpeech}
	}

	transcript := result.Results.Channels[0].Alternatives[0].Transcript
	log.Printf("deepgram-probe: transcript %q", transcript)
	return confirmed(transcript)
}

// buildURL constructs the API URL with query parameters
func (p *DeepgramProber) buildURL() (string, error) {
	u, err := url.Parse(p.endpoint.BaseURL + p.endpoint.Path)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}

	q := u.Query()
	q.Set("model", p.model)
	q.Set("smart_format", "true")
	if p.language != "" {
		q.Set("language", p.language)
	}

	u.RawQuery = q.Encode()
	return u.String(), nil
}
