package gateway

import (
	"encoding/json"
	"fmt"

	"github.com/josephgoksu/kai/internal/locale"
)

const suggestPrompt = `Analyze the role of a "%s".
List:
1. 10 distinct, key professional tasks.
2. 5 key hard skills (technical).
3. 5 key soft skills (interpersonal).

IMPORTANT: Output everything in %s.
Return as JSON object.`

const assessPrompt = `As an expert AI workforce consultant (KAI Model), analyze these tasks for a "%s".

For each task, rate on a scale of 1-5:
1. Pattern Recognition (High score = highly repetitive/predictable)
2. Human Interaction (High score = requires deep empathy/negotiation)
3. Complexity/Context (High score = requires high judgment/ambiguity)
4. Creativity/Knowledge (High score = requires novel thought)
5. Data Accessibility (High score = data is digital and structured)

Then, classify the task into one of three categories based on the ratings:
- "Automate" (High pattern, high data, low human/complexity)
- "Augment" (High complexity/creativity, mixed human)
- "Human" (High human interaction, high judgment, low pattern)

IMPORTANT: Ensure the 'description' field is in %s.

Tasks: %s`

const reportPrompt = `Analyze the future impact of AI on the role of "%s".

Context:
- Tasks & Impact Ratings: %s
- Current Hard Skills: %s
- Current Soft Skills: %s

Provide a comprehensive career strategy report in %s including:
1. Percentages for Automate, Augment, Human.
2. A timeline (0-6 months, 6-18 months, 18+ months) of expected changes.
3. Specific AI tools relevant to this role.
4. Key NEW skills to develop to stay relevant (gap analysis).
5. A concrete action plan for the next month.`

const coachInstruction = "You are a helpful AI Career Coach using the KAI model methodology. Keep answers concise and encouraging. Respond in %s."

func buildSuggestPrompt(jobTitle string, loc locale.Locale) string {
	return fmt.Sprintf(suggestPrompt, jobTitle, loc.LanguageName())
}

func buildAssessPrompt(jobTitle string, tasks []string, loc locale.Locale) string {
	return fmt.Sprintf(assessPrompt, jobTitle, loc.LanguageName(), mustJSON(tasks))
}

func buildReportPrompt(req ReportRequest) string {
	return fmt.Sprintf(reportPrompt,
		req.JobTitle,
		mustJSON(req.Tasks),
		mustJSON(nonNil(req.HardSkills)),
		mustJSON(nonNil(req.SoftSkills)),
		req.Locale.LanguageName(),
	)
}

func buildCoachInstruction(loc locale.Locale) string {
	return fmt.Sprintf(coachInstruction, loc.LanguageName())
}

// mustJSON encodes prompt context. The inputs are plain data and always
// encodable.
func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
