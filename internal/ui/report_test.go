package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephgoksu/kai/internal/assessment"
	"github.com/josephgoksu/kai/internal/locale"
	"github.com/josephgoksu/kai/internal/profile"
)

func sampleAnalysis() assessment.AnalysisResult {
	return assessment.AnalysisResult{
		Percentages: assessment.Percentages{Automate: 20, Augment: 50, Human: 30},
		Timeline: []assessment.TimelineEntry{
			{Period: "0-6 months", Prediction: "Drafting assistants become standard.", ImpactLevel: assessment.ImpactHigh},
		},
		Tools:           []string{"Jasper"},
		SkillsToDevelop: []string{"Brand strategy"},
		ActionPlan:      "Pair with AI on first drafts.",
	}
}

func TestRoleTitle(t *testing.T) {
	assert.Equal(t, "Senior Copywriter", RoleTitle("  senior copywriter ", locale.English))
	assert.Equal(t, "Data Analist", RoleTitle("data analist", locale.Dutch))
}

func TestRenderReport(t *testing.T) {
	tasks := []assessment.Task{
		assessment.NewTask("task-0", "Write ad copy", assessment.Ratings{PatternRecognition: 2, HumanInteraction: 2, Complexity: 4.5, Creativity: 5, DataAccessibility: 3}),
	}
	out := RenderReport("copywriter", locale.English, tasks, sampleAnalysis())

	for _, want := range []string{"Copywriter", "Automate", "20%", "0-6 months", "Jasper", "Brand strategy", "Pair with AI", "Write ad copy", "Human"} {
		assert.Contains(t, out, want)
	}
}

func TestRenderReport_OmitsEmptySections(t *testing.T) {
	out := RenderReport("x", locale.English, nil, assessment.AnalysisResult{})
	assert.NotContains(t, out, "Timeline")
	assert.NotContains(t, out, "Tools")
	assert.NotContains(t, out, "Action plan")
}

func TestRenderPercentBar(t *testing.T) {
	out := RenderPercentBar("Human", 150, ColorHuman)
	assert.Equal(t, barWidth, strings.Count(out, "█"))
	out = RenderPercentBar("Human", 0, ColorHuman)
	assert.Equal(t, barWidth, strings.Count(out, "░"))
}

func TestRenderExplanation(t *testing.T) {
	r := assessment.UniformRatings(3)
	out := RenderExplanation(r, assessment.Explain(r))
	assert.Contains(t, out, "weighted scores")
	assert.Contains(t, out, "Human score")
}

func TestRenderDashboard(t *testing.T) {
	assert.Contains(t, RenderProfiles(nil), "No saved assessments")

	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	profiles := []profile.SavedProfile{
		{ID: "bbbbbbbb-2222", JobTitle: "Copywriter", Date: now, Analysis: sampleAnalysis()},
		{ID: "aaaaaaaa-1111", JobTitle: "Copywriter", Date: now.Add(-48 * time.Hour), Analysis: sampleAnalysis()},
	}
	out := RenderDashboard(profiles)
	assert.Contains(t, out, "bbbbbbbb")
	assert.NotContains(t, out, "bbbbbbbb-2222")
	assert.Contains(t, out, "Trend")

	single := RenderDashboard(profiles[:1])
	assert.NotContains(t, single, "Trend")
}

func TestRenderTrend_OldestFirst(t *testing.T) {
	now := time.Now()
	out := RenderTrend(profile.Trend([]profile.SavedProfile{
		{JobTitle: "Newer", Date: now},
		{JobTitle: "Older", Date: now.Add(-time.Hour * 24 * 30)},
	}))
	require.NotEmpty(t, out)
	assert.Less(t, strings.Index(out, "Older"), strings.Index(out, "Newer"))
}

func TestEmbedSnippet(t *testing.T) {
	got, err := EmbedSnippet("https://kai.example.com")
	require.NoError(t, err)
	assert.Equal(t, `<iframe src="https://kai.example.com" width="100%" height="800" frameborder="0" title="KAI Career Assessment"></iframe>`, got)

	got, err = EmbedSnippet(`https://example.com/?a="b"`)
	require.NoError(t, err)
	assert.NotContains(t, got, `"b"`)

	_, err = EmbedSnippet("not a url")
	assert.Error(t, err)
}
