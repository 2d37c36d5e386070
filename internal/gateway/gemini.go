package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"google.golang.org/genai"

	"github.com/josephgoksu/kai/internal/assessment"
	"github.com/josephgoksu/kai/internal/locale"
	"github.com/josephgoksu/kai/internal/utils"
)

// contentGenerator is the part of *genai.Models the gateway uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Models names the model behind each operation.
type Models struct {
	Suggest     string
	Assess      string
	Report      string
	Speech      string
	SpeechVoice string
}

// Gemini implements Gateway on the Gemini API. Chat goes through an Eino
// chat model so the coach can run on any configured provider.
type Gemini struct {
	gen    contentGenerator
	chat   model.BaseChatModel
	models Models
}

var _ Gateway = (*Gemini)(nil)

// NewGemini builds a gateway on a genai client. chat may be nil, in which
// case SendChatMessage fails.
func NewGemini(client *genai.Client, chat model.BaseChatModel, models Models) *Gemini {
	return newGemini(client.Models, chat, models)
}

func newGemini(gen contentGenerator, chat model.BaseChatModel, models Models) *Gemini {
	return &Gemini{gen: gen, chat: chat, models: models}
}

// SuggestRoleDetails proposes tasks and skills for a job title.
func (g *Gemini) SuggestRoleDetails(ctx context.Context, jobTitle string, loc locale.Locale) (RoleDetails, error) {
	text, err := g.generateJSON(ctx, g.models.Suggest, buildSuggestPrompt(jobTitle, loc), roleDetailsSchema)
	if err != nil {
		return RoleDetails{}, fmt.Errorf("suggest role details: %w", err)
	}
	details, err := utils.ExtractAndParseJSON[RoleDetails](text)
	if err != nil {
		return RoleDetails{}, fmt.Errorf("suggest role details: %w", err)
	}
	details.Tasks = compact(details.Tasks)
	details.HardSkills = compact(details.HardSkills)
	details.SoftSkills = compact(details.SoftSkills)
	return details, nil
}

// assessedTask is the model's view of a task. Its category is advisory
// and only used for logging disagreement with the classifier.
type assessedTask struct {
	Description        string  `json:"description"`
	PatternRecognition float64 `json:"patternRecognition"`
	HumanInteraction   float64 `json:"humanInteraction"`
	Complexity         float64 `json:"complexity"`
	Creativity         float64 `json:"creativity"`
	DataAccessibility  float64 `json:"dataAccessibility"`
	Category           string  `json:"category"`
}

// AssessTasks rates each task on the five axes. Ratings are clamped to the
// scale; categories are re-derived locally.
func (g *Gemini) AssessTasks(ctx context.Context, jobTitle string, tasks []string, loc locale.Locale) ([]assessment.Task, error) {
	text, err := g.generateJSON(ctx, g.models.Assess, buildAssessPrompt(jobTitle, tasks, loc), assessedTasksSchema)
	if err != nil {
		return nil, fmt.Errorf("assess tasks: %w", err)
	}
	raw, err := utils.ExtractAndParseJSON[[]assessedTask](text)
	if err != nil {
		return nil, fmt.Errorf("assess tasks: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("assess tasks: %w", ErrEmptyResponse)
	}

	out := make([]assessment.Task, 0, len(raw))
	for i, r := range raw {
		desc := strings.TrimSpace(r.Description)
		if desc == "" && i < len(tasks) {
			desc = tasks[i]
		}
		ratings := assessment.Ratings{
			PatternRecognition: r.PatternRecognition,
			HumanInteraction:   r.HumanInteraction,
			Complexity:         r.Complexity,
			Creativity:         r.Creativity,
			DataAccessibility:  r.DataAccessibility,
		}.Clamp()
		task := assessment.NewTask(fmt.Sprintf("task-%d", i), desc, ratings)
		if r.Category != "" && !strings.EqualFold(r.Category, string(task.Category())) {
			slog.Debug("model category overridden by classifier",
				"task", task.ID, "model", r.Category, "classified", task.Category())
		}
		out = append(out, task)
	}
	return out, nil
}

// GenerateReport produces the strategy report for a rated role.
func (g *Gemini) GenerateReport(ctx context.Context, req ReportRequest) (assessment.AnalysisResult, error) {
	text, err := g.generateJSON(ctx, g.models.Report, buildReportPrompt(req), analysisSchema)
	if err != nil {
		return assessment.AnalysisResult{}, fmt.Errorf("generate report: %w", err)
	}
	result, err := utils.ExtractAndParseJSON[assessment.AnalysisResult](text)
	if err != nil {
		return assessment.AnalysisResult{}, fmt.Errorf("generate report: %w", err)
	}
	for i := range result.Timeline {
		result.Timeline[i].ImpactLevel = assessment.NormalizeImpact(string(result.Timeline[i].ImpactLevel))
	}
	if err := result.Validate(); err != nil {
		return assessment.AnalysisResult{}, fmt.Errorf("generate report: %w", err)
	}
	return result, nil
}

// SynthesizeSpeech reads text aloud with the configured prebuilt voice.
func (g *Gemini) SynthesizeSpeech(ctx context.Context, text string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	resp, err := g.gen.GenerateContent(ctx, g.models.Speech, genai.Text(text), &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: g.models.SpeechVoice},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("synthesize speech: %w", err)
	}
	for _, part := range firstParts(resp) {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData.Data, nil
		}
	}
	return nil, nil
}

func (g *Gemini) generateJSON(ctx context.Context, modelName, prompt string, schema *genai.Schema) (string, error) {
	resp, err := g.gen.GenerateContent(ctx, modelName, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		return "", err
	}
	text := responseText(resp)
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func firstParts(resp *genai.GenerateContentResponse) []*genai.Part {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return nil
	}
	return resp.Candidates[0].Content.Parts
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, part := range firstParts(resp) {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}

func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
