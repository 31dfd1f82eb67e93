package provider

// GoogleProvider implements Provider for Google Cloud Speech-to-Text.
// Authentication goes through a service-account key file, not an API key.
type GoogleProvider struct{}

func (p *GoogleProvider) Name() string {
	return ProviderGoogle
}

func (p *GoogleProvider) DisplayName() string {
	return "Google Cloud Speech-to-Text"
}

func (p *GoogleProvider) RequiresAPIKey() bool {
	return false
}

func (p *GoogleProvider) RequiresKeyFile() bool {
	return true
}

func (p *GoogleProvider) ValidateAPIKey(key string) bool {
	// google authenticates with a key file, any api key is rejected
	return false
}

func (p *GoogleProvider) Endpoint() *EndpointConfig {
	// the cloud client library resolves speech.googleapis.com itself
	return nil
}

func (p *GoogleProvider) LiveEndpoint() *EndpointConfig {
	return nil
}

func (p *GoogleProvider) DefaultModel() string {
	return "default"
}
