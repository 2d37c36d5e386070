/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"google.golang.org/genai"

	"github.com/josephgoksu/kai/internal/app"
	"github.com/josephgoksu/kai/internal/config"
	"github.com/josephgoksu/kai/internal/gateway"
	"github.com/josephgoksu/kai/internal/llm"
	"github.com/josephgoksu/kai/internal/locale"
	"github.com/josephgoksu/kai/internal/profile"
	"github.com/josephgoksu/kai/internal/telemetry"
)

func isJSON() bool {
	return viper.GetBool("json")
}

func isVerbose() bool {
	return viper.GetBool("verbose")
}

func printJSON(w io.Writer, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

// env is everything a command needs, built from the configuration.
type env struct {
	settings config.Settings
	locale   locale.Locale
	repo     *profile.Repository
	genai    *genai.Client // nil without an API key
	gateway  gateway.Gateway
	tel      telemetry.Client
	shell    *app.Shell
	closers  []func() error
}

// newEnv loads settings and opens storage. withAI also builds the Gemini
// gateway; a missing API key is not an error here, AI operations then
// fall back or report app.ErrNoGateway.
func newEnv(ctx context.Context, withAI bool) (*env, error) {
	s, err := loadSettings()
	if err != nil {
		return nil, err
	}
	e := &env{settings: s, locale: locale.MustParse(s.Locale)}

	slot, closeSlot, err := openSlot(s.Storage)
	if err != nil {
		return nil, err
	}
	if closeSlot != nil {
		e.closers = append(e.closers, closeSlot)
	}
	e.repo = profile.NewRepository(slot)

	e.tel = telemetry.New(s.Telemetry.APIKey, s.Telemetry.Endpoint, GetVersion())
	e.closers = append(e.closers, e.tel.Close)

	if withAI {
		e.gateway, e.genai = newGateway(ctx, s)
	}
	e.shell = app.NewShell(app.NewContext(e.gateway, e.repo, e.tel, e.locale))
	return e, nil
}

// Close releases storage and flushes telemetry.
func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i](); err != nil {
			slog.Debug("close failed", "error", err)
		}
	}
}

func openSlot(s config.StorageSettings) (profile.Slot, func() error, error) {
	switch s.Backend {
	case config.StorageMemory:
		return profile.NewMemorySlot(), nil, nil
	case config.StorageSQLite:
		slot, err := profile.NewSQLiteSlot(s.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open profile database: %w", err)
		}
		return slot, slot.Close, nil
	default:
		return profile.NewOsFileSlot(s.Path), nil, nil
	}
}

// newGateway builds the Gemini gateway. The chat coach is optional and may
// run on another provider (llm.provider).
func newGateway(ctx context.Context, s config.Settings) (gateway.Gateway, *genai.Client) {
	client, err := llm.NewGenaiClient(ctx, s.Gemini.APIKey)
	if err != nil {
		slog.Debug("gemini unavailable, AI features will fall back", "error", err)
		return nil, nil
	}

	models := gateway.Models{
		Suggest:     s.Gemini.Models.Suggest,
		Assess:      s.Gemini.Models.Assess,
		Report:      s.Gemini.Models.Report,
		Speech:      s.Gemini.Models.Speech,
		SpeechVoice: s.Gemini.Voices.Speech,
	}

	llmCfg, err := config.LoadLLMConfig()
	if err != nil {
		slog.Warn("chat coach disabled", "error", err)
		return gateway.NewGemini(client, nil, models), client
	}
	chat, err := llm.NewChatModel(ctx, llmCfg)
	if err != nil {
		slog.Warn("chat coach disabled", "provider", llmCfg.Provider, "error", err)
		return gateway.NewGemini(client, nil, models), client
	}
	return gateway.NewGemini(client, chat, models), client
}

// readLines reads non-empty trimmed lines until EOF.
func readLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			out = append(out, line)
		}
	}
	return out, sc.Err()
}

func confirmOrAbort(in io.Reader, out io.Writer, prompt string) bool {
	if isJSON() {
		return true
	}
	fmt.Fprint(out, prompt)
	reader := bufio.NewReader(in)
	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))
	if response != "y" && response != "yes" {
		fmt.Fprintln(out, "Cancelled.")
		return false
	}
	return true
}

// writeAudio stores raw 24 kHz mono PCM16 from speech synthesis.
func writeAudio(path string, pcm []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create audio directory: %w", err)
		}
	}
	if err := os.WriteFile(path, pcm, 0644); err != nil {
		return fmt.Errorf("write audio: %w", err)
	}
	return nil
}
