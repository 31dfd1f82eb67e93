package provider

import "strings"

// GroqProvider implements Provider for Groq's OpenAI-compatible Whisper API
type GroqProvider struct{}

func (p *GroqProvider) Name() string {
	return ProviderGroq
}

func (p *GroqProvider) DisplayName() string {
	return "Groq"
}

func (p *GroqProvider) RequiresAPIKey() bool {
	return true
}

func (p *GroqProvider) RequiresKeyFile() bool {
	return false
}

func (p *GroqProvider) ValidateAPIKey(key string) bool {
	return strings.HasPrefix(key, "gsk_")
}

func (p *GroqProvider) Endpoint() *EndpointConfig {
	return &EndpointConfig{BaseURL: "https://api.groq.com/openai/v1", Path: "/audio/transcriptions"}
}

func (p *GroqProvider) LiveEndpoint() *EndpointConfig {
	return nil
}

func (p *GroqProvider) DefaultModel() string {
	return "whisper-large-v3-turbo"
}
