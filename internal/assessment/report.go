package assessment

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ImpactLevel grades a timeline prediction.
type ImpactLevel string

const (
	ImpactHigh   ImpactLevel = "High"
	ImpactMedium ImpactLevel = "Medium"
	ImpactLow    ImpactLevel = "Low"
)

// Percentages is the share of the role per category, as reported by the AI.
// The values are not required to sum to 100.
type Percentages struct {
	Automate float64 `json:"automate" yaml:"automate" validate:"gte=0,lte=100"`
	Augment  float64 `json:"augment" yaml:"augment" validate:"gte=0,lte=100"`
	Human    float64 `json:"human" yaml:"human" validate:"gte=0,lte=100"`
}

// Total is the sum of the three shares.
func (p Percentages) Total() float64 {
	return p.Automate + p.Augment + p.Human
}

// TimelineEntry is one period of the expected change timeline.
type TimelineEntry struct {
	Period      string      `json:"period" yaml:"period"`
	Prediction  string      `json:"prediction" yaml:"prediction"`
	ImpactLevel ImpactLevel `json:"impactLevel" yaml:"impactLevel" validate:"omitempty,oneof=High Medium Low"`
}

// AnalysisResult is the strategy report generated for a role.
type AnalysisResult struct {
	Percentages     Percentages     `json:"percentages" yaml:"percentages"`
	Timeline        []TimelineEntry `json:"timeline" yaml:"timeline" validate:"dive"`
	Tools           []string        `json:"tools" yaml:"tools"`
	SkillsToDevelop []string        `json:"skillsToDevelop" yaml:"skillsToDevelop"`
	ActionPlan      string          `json:"actionPlan" yaml:"actionPlan"`
}

// Validate checks the report's value ranges. Percentages summing to
// something other than 100 is accepted.
func (a AnalysisResult) Validate() error {
	return ValidateStruct(a)
}

// Clone returns a deep copy.
func (a AnalysisResult) Clone() AnalysisResult {
	out := a
	out.Timeline = append([]TimelineEntry(nil), a.Timeline...)
	out.Tools = append([]string(nil), a.Tools...)
	out.SkillsToDevelop = append([]string(nil), a.SkillsToDevelop...)
	return out
}

// NormalizeImpact maps loosely-cased AI output onto the three impact levels.
// Unknown values become empty.
func NormalizeImpact(s string) ImpactLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return ImpactHigh
	case "medium":
		return ImpactMedium
	case "low":
		return ImpactLow
	default:
		return ""
	}
}

var validate = validator.New()

// ValidateStruct runs struct-tag validation and flattens the failures into
// one readable error.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		msgs = append(msgs, fmt.Sprintf("field '%s' failed rule '%s' (value: '%v')", e.StructNamespace(), e.Tag(), e.Value()))
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
