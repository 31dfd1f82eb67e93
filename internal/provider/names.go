package provider

// Provider name constants for config and registry
const (
	ProviderGoogle     = "google"
	ProviderDeepgram   = "deepgram"
	ProviderOpenAI     = "openai"
	ProviderGroq       = "groq"
	ProviderElevenLabs = "elevenlabs"
)

// Environment variable names for credentials
const (
	EnvGoogleCredentials = "GOOGLE_APPLICATION_CREDENTIALS"
	EnvDeepgramKey       = "DEEPGRAM_API_KEY"
	EnvOpenAIKey         = "OPENAI_API_KEY"
	EnvGroqKey           = "GROQ_API_KEY"
	EnvElevenLabsKey     = "ELEVENLABS_API_KEY"
)

// EnvVarForProvider returns the environment variable holding a provider's
// credential (API key, or key-file path for google)
func EnvVarForProvider(name string) string {
	switch name {
	case ProviderGoogle:
		return EnvGoogleCredentials
	case ProviderDeepgram:
		return EnvDeepgramKey
	case ProviderOpenAI:
		return EnvOpenAIKey
	case ProviderGroq:
		return EnvGroqKey
	case ProviderElevenLabs:
		return EnvElevenLabsKey
	default:
		return ""
	}
}
