package assessment

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestTask_JSONCarriesDerivedCategory(t *testing.T) {
	task := NewTask("task-0", "Write ad copy", Ratings{PatternRecognition: 2, HumanInteraction: 2, Complexity: 4.5, Creativity: 5, DataAccessibility: 3})

	data, err := json.Marshal(task)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "Human", raw["category"])
	assert.Equal(t, "task-0", raw["id"])
	assert.Equal(t, 4.5, raw["complexity"])
}

func TestTask_UnmarshalIgnoresSuppliedCategory(t *testing.T) {
	payload := `{"id":"t-1","description":"Sort invoices","patternRecognition":5,"humanInteraction":1,
		"complexity":1,"creativity":1,"dataAccessibility":5,"category":"Human"}`

	var task Task
	require.NoError(t, json.Unmarshal([]byte(payload), &task))
	assert.Equal(t, CategoryAutomate, task.Category())
	assert.Equal(t, 5.0, task.PatternRecognition)
}

func TestTask_YAMLInlinesRatings(t *testing.T) {
	task := NewTask("t-0", "Plan sprint", UniformRatings(3))
	data, err := yaml.Marshal(task)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "patternRecognition: 3")
	assert.Contains(t, out, "category: "+string(task.Category()))
}

func TestParseAxis(t *testing.T) {
	tests := []struct {
		in      string
		want    Axis
		wantErr bool
	}{
		{"patternRecognition", AxisPatternRecognition, false},
		{"pattern", AxisPatternRecognition, false},
		{"human-interaction", AxisHumanInteraction, false},
		{"DATA", AxisDataAccessibility, false},
		{"data_accessibility", AxisDataAccessibility, false},
		{"creativity", AxisCreativity, false},
		{"complexity", AxisComplexity, false},
		{"luck", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAxis(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRatings_WithAndGet(t *testing.T) {
	r := UniformRatings(3)
	for _, a := range Axes {
		updated, err := r.With(a, 4.5)
		require.NoError(t, err)
		v, err := updated.Get(a)
		require.NoError(t, err)
		assert.Equal(t, 4.5, v, a)

		orig, _ := r.Get(a)
		assert.Equal(t, 3.0, orig, "With must not mutate the receiver")
	}

	_, err := r.With("bogus", 1)
	assert.Error(t, err)
	_, err = r.Get("bogus")
	assert.Error(t, err)
}

func TestRatings_ClampAndValidate(t *testing.T) {
	r := Ratings{PatternRecognition: 0, HumanInteraction: 7, Complexity: 3, Creativity: 1, DataAccessibility: 5}
	assert.Error(t, r.Validate())

	clamped := r.Clamp()
	assert.NoError(t, clamped.Validate())
	assert.Equal(t, 1.0, clamped.PatternRecognition)
	assert.Equal(t, 5.0, clamped.HumanInteraction)
	assert.Equal(t, 3.0, clamped.Complexity)
}

func TestCountByCategory(t *testing.T) {
	tasks := []Task{
		NewTask("a", "a", Ratings{PatternRecognition: 4, DataAccessibility: 4, Complexity: 2, HumanInteraction: 1, Creativity: 1}),
		NewTask("b", "b", Ratings{PatternRecognition: 1, DataAccessibility: 1, Complexity: 1, HumanInteraction: 5, Creativity: 1}),
		NewTask("c", "c", Ratings{PatternRecognition: 1, DataAccessibility: 1, Complexity: 1, HumanInteraction: 5, Creativity: 5}),
	}
	counts := CountByCategory(tasks)
	assert.Equal(t, 1, counts[CategoryAutomate])
	assert.Equal(t, 0, counts[CategoryAugment])
	assert.Equal(t, 2, counts[CategoryHuman])
}

func TestAnalysisResult_Validate(t *testing.T) {
	ok := AnalysisResult{
		Percentages: Percentages{Automate: 30, Augment: 50, Human: 25},
		Timeline:    []TimelineEntry{{Period: "0-6 months", Prediction: "x", ImpactLevel: ImpactHigh}},
	}
	assert.NoError(t, ok.Validate(), "percentages need not sum to 100")

	bad := ok
	bad.Timeline = []TimelineEntry{{Period: "later", ImpactLevel: "Extreme"}}
	assert.Error(t, bad.Validate())

	bad = ok
	bad.Percentages.Human = 140
	assert.Error(t, bad.Validate())
}

func TestAnalysisResult_CloneIsIndependent(t *testing.T) {
	a := AnalysisResult{Tools: []string{"Copilot"}, Timeline: []TimelineEntry{{Period: "0-6"}}}
	b := a.Clone()
	b.Tools[0] = "changed"
	b.Timeline[0].Period = "changed"
	assert.Equal(t, "Copilot", a.Tools[0])
	assert.Equal(t, "0-6", a.Timeline[0].Period)
}

func TestNormalizeImpact(t *testing.T) {
	assert.Equal(t, ImpactHigh, NormalizeImpact(" HIGH "))
	assert.Equal(t, ImpactMedium, NormalizeImpact("medium"))
	assert.Equal(t, ImpactLow, NormalizeImpact("Low"))
	assert.Equal(t, ImpactLevel(""), NormalizeImpact("severe"))
}
