package provider

// ElevenLabsProvider implements Provider for the ElevenLabs Scribe API
type ElevenLabsProvider struct{}

func (p *ElevenLabsProvider) Name() string {
	return ProviderElevenLabs
}

func (p *ElevenLabsProvider) DisplayName() string {
	return "ElevenLabs"
}

func (p *ElevenLabsProvider) RequiresAPIKey() bool {
	return true
}

func (p *ElevenLabsProvider) RequiresKeyFile() bool {
	return false
}

func (p *ElevenLabsProvider) ValidateAPIKey(key string) bool {
	// ElevenLabs API keys don't have a consistent prefix, just check non-empty
	return len(key) > 0
}

func (p *ElevenLabsProvider) Endpoint() *EndpointConfig {
	return &EndpointConfig{BaseURL: "https://api.elevenlabs.io", Path: "/v1/speech-to-text"}
}

func (p *ElevenLabsProvider) LiveEndpoint() *EndpointConfig {
	return nil
}

func (p *ElevenLabsProvider) DefaultModel() string {
	return "scribe_v1"
}
