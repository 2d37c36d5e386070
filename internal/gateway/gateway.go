// Package gateway is the boundary to the generative-AI service. The core
// never builds AI clients itself; it is handed a Gateway.
package gateway

import (
	"context"
	"errors"

	"github.com/josephgoksu/kai/internal/assessment"
	"github.com/josephgoksu/kai/internal/locale"
)

// ErrEmptyResponse is returned when the model answers with no usable content.
var ErrEmptyResponse = errors.New("empty response from model")

// Gateway is the set of AI operations the assessment consumes.
type Gateway interface {
	SuggestRoleDetails(ctx context.Context, jobTitle string, loc locale.Locale) (RoleDetails, error)
	AssessTasks(ctx context.Context, jobTitle string, tasks []string, loc locale.Locale) ([]assessment.Task, error)
	GenerateReport(ctx context.Context, req ReportRequest) (assessment.AnalysisResult, error)
	// SynthesizeSpeech returns raw 24 kHz PCM16 audio, or nil when the
	// model produced none.
	SynthesizeSpeech(ctx context.Context, text string) ([]byte, error)
	SendChatMessage(ctx context.Context, history []ChatMessage, message string, loc locale.Locale) (string, error)
}

// RoleDetails are the AI's suggestions for a job title.
type RoleDetails struct {
	Tasks      []string `json:"tasks"`
	HardSkills []string `json:"hardSkills"`
	SoftSkills []string `json:"softSkills"`
}

// ReportRequest carries everything the strategy report is based on.
type ReportRequest struct {
	JobTitle   string
	Tasks      []assessment.Task
	HardSkills []string
	SoftSkills []string
	Locale     locale.Locale
}

// ChatRole is the author of a chat turn.
type ChatRole string

const (
	RoleUser  ChatRole = "user"
	RoleModel ChatRole = "model"
)

// ChatMessage is one turn of the coach conversation.
type ChatMessage struct {
	Role ChatRole `json:"role"`
	Text string   `json:"text"`
}
