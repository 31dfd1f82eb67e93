package provider

import "sort"

// Provider describes a speech-to-text service that speechprobe can verify
// access against.
type Provider interface {
	Name() string
	DisplayName() string

	// RequiresAPIKey reports whether the provider authenticates with a
	// bearer/API key. RequiresKeyFile reports whether it authenticates with
	// a service-account key file instead.
	RequiresAPIKey() bool
	RequiresKeyFile() bool
	ValidateAPIKey(key string) bool

	// Endpoint is the batch recognition endpoint, nil when the probe goes
	// through an SDK that manages its own endpoint.
	Endpoint() *EndpointConfig

	// LiveEndpoint is the realtime/streaming endpoint, nil when the provider
	// has no streaming surface worth probing.
	LiveEndpoint() *EndpointConfig

	DefaultModel() string
}

// EndpointConfig holds HTTP/WebSocket endpoint configuration
type EndpointConfig struct {
	BaseURL string // e.g., "https://api.deepgram.com" or "wss://api.deepgram.com"
	Path    string // e.g., "/v1/listen"
}

var registry = make(map[string]Provider)

func init() {
	Register(&GoogleProvider{})
	Register(&DeepgramProvider{})
	Register(&OpenAIProvider{})
	Register(&GroqProvider{})
	Register(&ElevenLabsProvider{})
}

// Register adds a provider to the registry
func Register(p Provider) {
	registry[p.Name()] = p
}

// Get returns a provider by name, or nil if not found
func Get(name string) Provider {
	return registry[name]
}

// List returns all registered provider names, sorted
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListWithLiveEndpoint returns providers that expose a streaming endpoint
func ListWithLiveEndpoint() []string {
	var names []string
	for name, p := range registry {
		if p.LiveEndpoint() != nil {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
