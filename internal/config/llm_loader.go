package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/josephgoksu/kai/internal/llm"
)

// LoadLLMConfig loads the chat coach configuration from Viper and environment variables.
// Precedence: explicit Viper config > environment variables > defaults.
func LoadLLMConfig() (llm.Config, error) {
	provider := viper.GetString("llm.provider")
	if provider == "" {
		provider = string(llm.DefaultProvider)
	}

	llmProvider, err := llm.ValidateProvider(provider)
	if err != nil {
		return llm.Config{}, fmt.Errorf("invalid provider: %w", err)
	}

	model := viper.GetString("llm.model")
	if model == "" {
		model = llm.DefaultModelForProvider(llmProvider)
	}

	baseURL := viper.GetString("llm.baseURL")
	if baseURL == "" && llmProvider == llm.ProviderOllama {
		baseURL = llm.DefaultOllamaURL
	}

	return llm.Config{
		Provider: llmProvider,
		Model:    model,
		APIKey:   ResolveAPIKey(llmProvider),
		BaseURL:  baseURL,
	}, nil
}

// ResolveAPIKey returns the best API key for the given provider using
// per-provider config keys, then provider-specific env vars.
func ResolveAPIKey(provider llm.Provider) string {
	if key := keyFromViper(fmt.Sprintf("llm.apiKeys.%s", provider)); key != "" {
		return key
	}
	if provider == llm.ProviderGemini {
		return ResolveGeminiAPIKey()
	}
	return providerEnvKey(provider)
}

// ResolveGeminiAPIKey finds the key used for assessment, speech and voice:
// gemini.apiKey, then GEMINI_API_KEY, GOOGLE_API_KEY and API_KEY.
func ResolveGeminiAPIKey() string {
	if key := keyFromViper("gemini.apiKey"); key != "" {
		return key
	}
	return providerEnvKey(llm.ProviderGemini)
}

func keyFromViper(path string) string {
	if viper.IsSet(path) {
		return strings.TrimSpace(viper.GetString(path))
	}
	return ""
}

func providerEnvKey(provider llm.Provider) string {
	switch provider {
	case llm.ProviderOpenAI:
		return strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	case llm.ProviderAnthropic:
		return strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
	case llm.ProviderGemini:
		for _, name := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY", "API_KEY"} {
			if key := strings.TrimSpace(os.Getenv(name)); key != "" {
				return key
			}
		}
		return ""
	default:
		return ""
	}
}
