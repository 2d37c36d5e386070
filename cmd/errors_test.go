package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"github.com/josephgoksu/kai/internal/app"
	"github.com/josephgoksu/kai/internal/profile"
	"github.com/josephgoksu/kai/internal/ui"
)

func TestPrintError(t *testing.T) {
	originalStderr := os.Stderr
	defer func() { os.Stderr = originalStderr }()

	tests := []struct {
		name         string
		userMsg      string
		technicalErr error
		verbose      bool
		expectedOut  string
	}{
		{"normal mode without error", "User friendly message", nil, false, "User friendly message"},
		{"verbose mode with error", "User friendly message", errors.New("technical details"), true, "Error: technical details"},
		{"normal mode hides technical error", "User friendly message", errors.New("technical details"), false, "User friendly message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Set("verbose", tt.verbose)
			defer viper.Set("verbose", false)

			r, w, _ := os.Pipe()
			os.Stderr = w

			PrintError(tt.userMsg, tt.technicalErr)

			_ = w.Close()
			var buf bytes.Buffer
			_, _ = buf.ReadFrom(r)
			os.Stderr = originalStderr

			out := strings.TrimSpace(buf.String())
			if out != tt.expectedOut {
				t.Errorf("PrintError() output = %q, want %q", out, tt.expectedOut)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	assert.Contains(t, userMessage(fmt.Errorf("x: %w", app.ErrNoGateway)), "GEMINI_API_KEY")
	assert.Contains(t, userMessage(fmt.Errorf("%w: disk full", profile.ErrSaveFailed)), "not lost")
	assert.Contains(t, userMessage(profile.ErrAmbiguousID), "several")
	assert.Equal(t, "Cancelled.", userMessage(ui.ErrCancelled))
	assert.Equal(t, "Error: boom", userMessage(errors.New("boom")))
}
