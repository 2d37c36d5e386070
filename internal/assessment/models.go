// Package assessment holds the KAI domain model: tasks, their five ratings,
// the derived Automate/Augment/Human category and the strategy report.
package assessment

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Category is the AI-impact class of a task.
type Category string

const (
	CategoryAutomate Category = "Automate" // fully delegable to AI
	CategoryAugment  Category = "Augment"  // AI as copilot, the default for ambiguous ratings
	CategoryHuman    Category = "Human"    // irreducible judgment, empathy or creativity
)

// Categories lists every category in display order.
var Categories = []Category{CategoryAutomate, CategoryAugment, CategoryHuman}

// Rating bounds and the step used by interactive editors.
const (
	MinRating     = 1.0
	MaxRating     = 5.0
	MidRating     = 3.0
	RatingStep    = 0.5
	DefaultRating = MidRating
)

// Axis names one of the five rating dimensions.
type Axis string

const (
	AxisPatternRecognition Axis = "patternRecognition"
	AxisHumanInteraction   Axis = "humanInteraction"
	AxisComplexity         Axis = "complexity"
	AxisCreativity         Axis = "creativity"
	AxisDataAccessibility  Axis = "dataAccessibility"
)

// Axes lists the rating dimensions in the order they are presented.
var Axes = []Axis{
	AxisPatternRecognition,
	AxisHumanInteraction,
	AxisComplexity,
	AxisCreativity,
	AxisDataAccessibility,
}

var axisAliases = map[string]Axis{
	"pattern":            AxisPatternRecognition,
	"patternrecognition": AxisPatternRecognition,
	"human":              AxisHumanInteraction,
	"humaninteraction":   AxisHumanInteraction,
	"complexity":         AxisComplexity,
	"creativity":         AxisCreativity,
	"data":               AxisDataAccessibility,
	"dataaccessibility":  AxisDataAccessibility,
}

// ParseAxis accepts the canonical axis name or a short alias ("pattern", "data").
func ParseAxis(s string) (Axis, error) {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(s))
	if a, ok := axisAliases[key]; ok {
		return a, nil
	}
	return "", fmt.Errorf("unknown rating axis %q", s)
}

// Label is the human-readable name of an axis.
func (a Axis) Label() string {
	switch a {
	case AxisPatternRecognition:
		return "Pattern recognition"
	case AxisHumanInteraction:
		return "Human interaction"
	case AxisComplexity:
		return "Complexity"
	case AxisCreativity:
		return "Creativity"
	case AxisDataAccessibility:
		return "Data accessibility"
	default:
		return string(a)
	}
}

// Ratings are the five KAI scores of a task, each in [1, 5].
type Ratings struct {
	PatternRecognition float64 `json:"patternRecognition" yaml:"patternRecognition" validate:"gte=1,lte=5"`
	HumanInteraction   float64 `json:"humanInteraction" yaml:"humanInteraction" validate:"gte=1,lte=5"`
	Complexity         float64 `json:"complexity" yaml:"complexity" validate:"gte=1,lte=5"`
	Creativity         float64 `json:"creativity" yaml:"creativity" validate:"gte=1,lte=5"`
	DataAccessibility  float64 `json:"dataAccessibility" yaml:"dataAccessibility" validate:"gte=1,lte=5"`
}

// UniformRatings returns ratings with every axis set to v.
func UniformRatings(v float64) Ratings {
	return Ratings{
		PatternRecognition: v,
		HumanInteraction:   v,
		Complexity:         v,
		Creativity:         v,
		DataAccessibility:  v,
	}
}

// Get returns the value of one axis.
func (r Ratings) Get(a Axis) (float64, error) {
	switch a {
	case AxisPatternRecognition:
		return r.PatternRecognition, nil
	case AxisHumanInteraction:
		return r.HumanInteraction, nil
	case AxisComplexity:
		return r.Complexity, nil
	case AxisCreativity:
		return r.Creativity, nil
	case AxisDataAccessibility:
		return r.DataAccessibility, nil
	default:
		return 0, fmt.Errorf("unknown rating axis %q", a)
	}
}

// With returns a copy of r with one axis replaced.
func (r Ratings) With(a Axis, v float64) (Ratings, error) {
	switch a {
	case AxisPatternRecognition:
		r.PatternRecognition = v
	case AxisHumanInteraction:
		r.HumanInteraction = v
	case AxisComplexity:
		r.Complexity = v
	case AxisCreativity:
		r.Creativity = v
	case AxisDataAccessibility:
		r.DataAccessibility = v
	default:
		return r, fmt.Errorf("unknown rating axis %q", a)
	}
	return r, nil
}

// Clamp forces every axis into [MinRating, MaxRating]. AI output is advisory
// and occasionally strays outside the scale.
func (r Ratings) Clamp() Ratings {
	c := func(v float64) float64 {
		if v < MinRating {
			return MinRating
		}
		if v > MaxRating {
			return MaxRating
		}
		return v
	}
	return Ratings{
		PatternRecognition: c(r.PatternRecognition),
		HumanInteraction:   c(r.HumanInteraction),
		Complexity:         c(r.Complexity),
		Creativity:         c(r.Creativity),
		DataAccessibility:  c(r.DataAccessibility),
	}
}

// Validate checks every axis is within [1, 5].
func (r Ratings) Validate() error {
	return ValidateStruct(r)
}

// InRange reports whether v is a legal rating value.
func InRange(v float64) bool {
	return v >= MinRating && v <= MaxRating
}

// Task is one unit of work within a role. Its category is never stored:
// Category() derives it from the ratings on every call.
type Task struct {
	ID          string `json:"id" yaml:"id"`
	Description string `json:"description" yaml:"description"`
	Ratings     `yaml:",inline"`
}

// NewTask builds a task with the given ratings.
func NewTask(id, description string, r Ratings) Task {
	return Task{ID: id, Description: description, Ratings: r}
}

// Category is the classifier's verdict for the task's current ratings.
func (t Task) Category() Category {
	return Classify(t.Ratings)
}

type taskAlias Task

type taskWire struct {
	taskAlias `yaml:",inline"`
	Category  Category `json:"category" yaml:"category"`
}

// MarshalJSON emits the derived category next to the ratings.
func (t Task) MarshalJSON() ([]byte, error) {
	return json.Marshal(taskWire{taskAlias: taskAlias(t), Category: t.Category()})
}

// MarshalYAML emits the derived category next to the ratings.
func (t Task) MarshalYAML() (interface{}, error) {
	return taskWire{taskAlias: taskAlias(t), Category: t.Category()}, nil
}

// CountByCategory tallies tasks per category.
func CountByCategory(tasks []Task) map[Category]int {
	counts := make(map[Category]int, len(Categories))
	for _, c := range Categories {
		counts[c] = 0
	}
	for _, t := range tasks {
		counts[t.Category()]++
	}
	return counts
}

// CloneTasks returns an independent copy of tasks.
func CloneTasks(tasks []Task) []Task {
	if tasks == nil {
		return nil
	}
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}
