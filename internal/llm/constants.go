package llm

// Provider constants
const (
	// DefaultProvider is the default LLM provider. The coach runs on the
	// same Gemini key as the assessment.
	DefaultProvider = ProviderGemini

	ProviderOpenAI    Provider = "openai"
	ProviderOllama    Provider = "ollama"
	ProviderAnthropic Provider = "anthropic"
	ProviderGemini    Provider = "gemini"
)

// DefaultOllamaURL is the default URL for Ollama server
const DefaultOllamaURL = "http://localhost:11434"

// Default chat models per provider.
const (
	DefaultGeminiChatModel    = "gemini-3-pro-preview"
	DefaultOpenAIChatModel    = "gpt-5-mini-2025-08-07"
	DefaultAnthropicChatModel = "claude-sonnet-4-5"
	DefaultOllamaChatModel    = "llama3.2"
)

// DefaultModelForProvider returns the default chat model for a provider.
func DefaultModelForProvider(p Provider) string {
	switch p {
	case ProviderGemini:
		return DefaultGeminiChatModel
	case ProviderOpenAI:
		return DefaultOpenAIChatModel
	case ProviderAnthropic:
		return DefaultAnthropicChatModel
	case ProviderOllama:
		return DefaultOllamaChatModel
	default:
		return ""
	}
}
