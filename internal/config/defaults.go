// Package config provides centralized configuration for kai.
// All default values should be defined here to ensure a single source of truth.
package config

import "github.com/spf13/viper"

// Storage backends for the profile repository.
const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

// Gemini model assignment per operation.
const (
	DefaultSuggestModel = "gemini-2.5-flash"
	DefaultAssessModel  = "gemini-2.5-flash"
	DefaultReportModel  = "gemini-2.5-flash"
	DefaultSpeechModel  = "gemini-2.5-flash-preview-tts"
	DefaultLiveModel    = "gemini-2.5-flash-native-audio-preview-09-2025"

	DefaultSpeechVoice = "Puck"
	DefaultLiveVoice   = "Zephyr"
)

// DefaultTelemetryEndpoint is the PostHog ingestion host.
const DefaultTelemetryEndpoint = "https://eu.i.posthog.com"

// SetDefaults registers every default with viper.
func SetDefaults() {
	viper.SetDefault("locale", "en")
	viper.SetDefault("storage.backend", StorageFile)

	viper.SetDefault("gemini.models.suggest", DefaultSuggestModel)
	viper.SetDefault("gemini.models.assess", DefaultAssessModel)
	viper.SetDefault("gemini.models.report", DefaultReportModel)
	viper.SetDefault("gemini.models.speech", DefaultSpeechModel)
	viper.SetDefault("gemini.models.live", DefaultLiveModel)
	viper.SetDefault("gemini.voices.speech", DefaultSpeechVoice)
	viper.SetDefault("gemini.voices.live", DefaultLiveVoice)

	viper.SetDefault("llm.provider", "gemini")

	viper.SetDefault("telemetry.endpoint", DefaultTelemetryEndpoint)
}
