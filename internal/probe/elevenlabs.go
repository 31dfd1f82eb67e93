package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/probekit/speechprobe/internal/audio"
	"github.com/probekit/speechprobe/internal/provider"
)

// ElevenLabsProber verifies access to the ElevenLabs Scribe API with a
// multipart upload of the silent probe clip.
type ElevenLabsProber struct {
	client   *http.Client
	endpoint *provider.EndpointConfig
	apiKey   string
	model    string
}

// elevenLabsResponse is the Scribe API response
type elevenLabsResponse struct {
	Text string `json:"text"`
}

func NewElevenLabsProber(endpoint *provider.EndpointConfig, cfg Config) *ElevenLabsProber {
	return &ElevenLabsProber{
		client:   &http.Client{Timeout: cfg.Timeout},
		endpoint: endpoint,
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
	}
}

func (p *ElevenLabsProber) Name() string {
	return provider.ProviderElevenLabs
}

func (p *ElevenLabsProber) Probe(ctx context.Context) Outcome {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", "probe.wav")
	if err != nil {
		return denied(fmt.Errorf("create form file: %w", err))
	}
	if _, err := io.Copy(part, bytes.NewReader(audio.ProbeClip())); err != nil {
		return denied(fmt.Errorf("copy audio data: %w", err))
	}
	if err := writer.WriteField("model_id", p.model); err != nil {
		return denied(fmt.Errorf("write model_id: %w", err))
	}
	if err := writer.Close(); err != nil {
		return denied(fmt.Errorf("close writer: %w", err))
	}

	url := p.endpoint.BaseURL + p.endpoint.Path
	req, err := http.NewRequestWithContext(ctx, "POST", url, &body)
	if err != nil {
		return denied(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("xi-api-key", p.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		return denied(fmt.Errorf("http request: %w", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return denied(fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		return denied(fmt.Errorf("elevenlabs api error (status %d): %s", resp.StatusCode, string(respBody)))
	}

	var result elevenLabsResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return denied(fmt.Errorf("parse response: %w", err))
	}

	log.Printf("elevenlabs-probe: call completed in %v: %q", time.Since(start), result.Text)
	return confirmed(result.Text)
}
