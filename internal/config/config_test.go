package config

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephgoksu/kai/internal/llm"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	for _, name := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY", "API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "XDG_DATA_HOME"} {
		t.Setenv(name, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	resetViper(t)
	SetDefaults()
	viper.Set("storage.path", "/tmp/kai-data")

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "en", s.Locale)
	assert.Equal(t, StorageFile, s.Storage.Backend)
	assert.Equal(t, "/tmp/kai-data", s.Storage.Path)
	assert.Equal(t, DefaultSpeechModel, s.Gemini.Models.Speech)
	assert.Equal(t, DefaultLiveVoice, s.Gemini.Voices.Live)
	assert.Empty(t, s.Gemini.APIKey)
}

func TestLoad_NormalizesLocale(t *testing.T) {
	resetViper(t)
	SetDefaults()
	viper.Set("locale", "nl-BE")

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "nl", s.Locale)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  any
	}{
		{name: "unsupported locale", key: "locale", val: "ja"},
		{name: "unknown backend", key: "storage.backend", val: "postgres"},
		{name: "empty model", key: "gemini.models.report", val: ""},
		{name: "bad telemetry endpoint", key: "telemetry.endpoint", val: "not a url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)
			SetDefaults()
			viper.Set(tt.key, tt.val)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestResolveGeminiAPIKey(t *testing.T) {
	resetViper(t)

	assert.Empty(t, ResolveGeminiAPIKey())

	t.Setenv("API_KEY", "generic")
	assert.Equal(t, "generic", ResolveGeminiAPIKey())

	t.Setenv("GOOGLE_API_KEY", "google")
	assert.Equal(t, "google", ResolveGeminiAPIKey())

	t.Setenv("GEMINI_API_KEY", " gemini ")
	assert.Equal(t, "gemini", ResolveGeminiAPIKey())

	viper.Set("gemini.apiKey", "from-config")
	assert.Equal(t, "from-config", ResolveGeminiAPIKey())
}

func TestLoadLLMConfig(t *testing.T) {
	resetViper(t)
	SetDefaults()
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg, err := LoadLLMConfig()
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderGemini, cfg.Provider)
	assert.Equal(t, llm.DefaultGeminiChatModel, cfg.Model)
	assert.Equal(t, "g-key", cfg.APIKey)

	viper.Set("llm.provider", "ollama")
	cfg, err = LoadLLMConfig()
	require.NoError(t, err)
	assert.Equal(t, llm.DefaultOllamaURL, cfg.BaseURL)
	assert.Empty(t, cfg.APIKey)

	viper.Set("llm.provider", "openai")
	viper.Set("llm.apiKeys.openai", "per-provider")
	t.Setenv("OPENAI_API_KEY", "env")
	cfg, err = LoadLLMConfig()
	require.NoError(t, err)
	assert.Equal(t, "per-provider", cfg.APIKey)

	viper.Set("llm.provider", "mystery")
	_, err = LoadLLMConfig()
	assert.Error(t, err)
}

func TestGetDataPath(t *testing.T) {
	resetViper(t)
	t.Chdir(t.TempDir())

	home := t.TempDir()
	orig := GetGlobalConfigDir
	GetGlobalConfigDir = func() (string, error) { return filepath.Join(home, ".kai"), nil }
	t.Cleanup(func() { GetGlobalConfigDir = orig })

	assert.Equal(t, filepath.Join(home, ".kai", "data"), GetDataPath())

	t.Setenv("XDG_DATA_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", "kai"), GetDataPath())

	viper.Set("storage.path", "/explicit")
	assert.Equal(t, "/explicit", GetDataPath())
}
