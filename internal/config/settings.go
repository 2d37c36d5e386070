package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/josephgoksu/kai/internal/locale"
)

// Settings is the typed view of the kai configuration.
type Settings struct {
	Locale    string          `mapstructure:"locale" validate:"oneof=en nl"`
	Verbose   bool            `mapstructure:"verbose"`
	JSON      bool            `mapstructure:"json"`
	Storage   StorageSettings `mapstructure:"storage"`
	Gemini    GeminiSettings  `mapstructure:"gemini"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// StorageSettings selects where saved profiles live.
type StorageSettings struct {
	Backend string `mapstructure:"backend" validate:"oneof=file sqlite memory"`
	Path    string `mapstructure:"path"`
}

// GeminiSettings configures the assessment models.
type GeminiSettings struct {
	APIKey string       `mapstructure:"apiKey"`
	Models GeminiModels `mapstructure:"models"`
	Voices GeminiVoices `mapstructure:"voices"`
}

// GeminiModels names the model used for each AI operation.
type GeminiModels struct {
	Suggest string `mapstructure:"suggest" validate:"required"`
	Assess  string `mapstructure:"assess" validate:"required"`
	Report  string `mapstructure:"report" validate:"required"`
	Speech  string `mapstructure:"speech" validate:"required"`
	Live    string `mapstructure:"live" validate:"required"`
}

// GeminiVoices names the prebuilt voices for speech and live audio.
type GeminiVoices struct {
	Speech string `mapstructure:"speech" validate:"required"`
	Live   string `mapstructure:"live" validate:"required"`
}

// TelemetryConfig holds the PostHog project settings.
type TelemetryConfig struct {
	APIKey   string `mapstructure:"apiKey"`
	Endpoint string `mapstructure:"endpoint" validate:"omitempty,url"`
}

var validate = validator.New()

// Load unmarshals the current viper state into Settings and validates it.
// Defaults must already be registered (see SetDefaults).
func Load() (Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("unmarshal config: %w", err)
	}
	loc, err := locale.Parse(s.Locale)
	if err != nil {
		return Settings{}, fmt.Errorf("invalid config: %w", err)
	}
	s.Locale = loc.String()
	s.Storage.Backend = strings.ToLower(strings.TrimSpace(s.Storage.Backend))
	if s.Storage.Path == "" {
		s.Storage.Path = GetDataPath()
	}
	if s.Gemini.APIKey == "" {
		s.Gemini.APIKey = ResolveGeminiAPIKey()
	}

	if err := validate.Struct(&s); err != nil {
		return Settings{}, fmt.Errorf("invalid config: %w", err)
	}
	return s, nil
}
