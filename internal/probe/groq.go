package probe

import (
	"github.com/sashabaranov/go-openai"

	"github.com/probekit/speechprobe/internal/provider"
)

// NewGroqProber verifies access to Groq's OpenAI-compatible Whisper API. The
// probe itself is the OpenAI one pointed at Groq's base URL.
func NewGroqProber(cfg Config) *OpenAIProber {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = "https://api.groq.com/openai/v1"

	return &OpenAIProber{
		client: openai.NewClientWithConfig(clientConfig),
		name:   provider.ProviderGroq,
		model:  cfg.Model,
	}
}
