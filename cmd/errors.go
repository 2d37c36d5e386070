package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/josephgoksu/kai/internal/app"
	"github.com/josephgoksu/kai/internal/gateway"
	"github.com/josephgoksu/kai/internal/profile"
	"github.com/josephgoksu/kai/internal/ui"
	"github.com/josephgoksu/kai/internal/workflow"
)

// PrintError prints a user-friendly message, or the full technical error
// when --verbose is set.
func PrintError(userMsg string, technicalErr error) {
	if viper.GetBool("verbose") && technicalErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", technicalErr)
	} else {
		fmt.Fprintln(os.Stderr, userMsg)
	}
}

// userMessage maps known failures to something a user can act on.
func userMessage(err error) string {
	switch {
	case errors.Is(err, app.ErrNoGateway):
		return "No Gemini API key configured. Set GEMINI_API_KEY or gemini.apiKey in .kai.yaml."
	case errors.Is(err, gateway.ErrChatUnavailable):
		return "The career coach is not configured. Check llm.provider and its API key."
	case errors.Is(err, profile.ErrSaveFailed):
		return "Could not save the assessment. Your results were not lost; try again with --verbose for details."
	case errors.Is(err, profile.ErrAmbiguousID):
		return "That ID prefix matches several profiles. Use more characters."
	case errors.Is(err, profile.ErrNotFound):
		return "No saved profile with that ID. Run 'kai profiles list' to see them."
	case errors.Is(err, workflow.ErrEmptyJobTitle):
		return "A job title is required."
	case errors.Is(err, workflow.ErrNoTasks):
		return "At least one task is required."
	case errors.Is(err, ui.ErrCancelled):
		return "Cancelled."
	default:
		return "Error: " + err.Error()
	}
}
