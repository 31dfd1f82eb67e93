package provider

// DeepgramProvider implements Provider for Deepgram transcription services
type DeepgramProvider struct{}

func (p *DeepgramProvider) Name() string {
	return ProviderDeepgram
}

func (p *DeepgramProvider) DisplayName() string {
	return "Deepgram"
}

func (p *DeepgramProvider) RequiresAPIKey() bool {
	return true
}

func (p *DeepgramProvider) RequiresKeyFile() bool {
	return false
}

func (p *DeepgramProvider) ValidateAPIKey(key string) bool {
	// Deepgram API keys are alphanumeric, just check non-empty
	return len(key) > 0
}

func (p *DeepgramProvider) Endpoint() *EndpointConfig {
	return &EndpointConfig{BaseURL: "https://api.deepgram.com", Path: "/v1/listen"}
}

func (p *DeepgramProvider) LiveEndpoint() *EndpointConfig {
	return &EndpointConfig{BaseURL: "wss://api.deepgram.com", Path: "/v1/listen"}
}

func (p *DeepgramProvider) DefaultModel() string {
	return "nova-3"
}
