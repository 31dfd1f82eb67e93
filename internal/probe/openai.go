package probe

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/probekit/speechprobe/internal/audio"
	"github.com/probekit/speechprobe/internal/provider"
)

// OpenAIProber verifies access to the OpenAI Whisper API by uploading a short
// synthesized silent clip. The expected healthy outcome for silence is
// NoSpeech.
type OpenAIProber struct {
	client *openai.Client
	name   string
	model  string
}

func NewOpenAIProber(cfg Config) *OpenAIProber {
	return &OpenAIProber{
		client: openai.NewClient(cfg.APIKey),
		name:   provider.ProviderOpenAI,
		model:  cfg.Model,
	}
}

func (p *OpenAIProber) Name() string {
	return p.name
}

func (p *OpenAIProber) Probe(ctx context.Context) Outcome {
	req := openai.AudioRequest{
		Model:    p.model,
		Reader:   bytes.NewReader(audio.ProbeClip()),
		FilePath: "probe.wav",
	}

	start := time.Now()
	resp, err := p.client.CreateTranscription(ctx, req)
	if err != nil {
		log.Printf("%s-probe: API call failed after %v: %v", p.name, time.Since(start), err)
		return denied(fmt.Errorf("%s transcription: %w", p.name, err))
	}

	log.Printf("%s-probe: call completed in %v: %q", p.name, time.Since(start), resp.Text)
	return confirmed(resp.Text)
}
