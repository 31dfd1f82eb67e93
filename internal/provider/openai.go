package provider

import "strings"

// OpenAIProvider implements Provider for the OpenAI Whisper API
type OpenAIProvider struct{}

func (p *OpenAIProvider) Name() string {
	return ProviderOpenAI
}

func (p *OpenAIProvider) DisplayName() string {
	return "OpenAI"
}

func (p *OpenAIProvider) RequiresAPIKey() bool {
	return true
}

func (p *OpenAIProvider) RequiresKeyFile() bool {
	return false
}

func (p *OpenAIProvider) ValidateAPIKey(key string) bool {
	return strings.HasPrefix(key, "sk-")
}

func (p *OpenAIProvider) Endpoint() *EndpointConfig {
	// go-openai manages the endpoint, kept here for display only
	return &EndpointConfig{BaseURL: "https://api.openai.com", Path: "/v1/audio/transcriptions"}
}

func (p *OpenAIProvider) LiveEndpoint() *EndpointConfig {
	return nil
}

func (p *OpenAIProvider) DefaultModel() string {
	return "whisper-1"
}
