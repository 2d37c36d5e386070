package ui

import (
	"fmt"
	"strings"

	"github.com/josephgoksu/kai/internal/assessment"
	"github.com/josephgoksu/kai/internal/profile"
	"github.com/josephgoksu/kai/internal/util"
)

const dateLayout = "2006-01-02 15:04"

// RenderProfiles lists saved profiles, newest first as given.
func RenderProfiles(profiles []profile.SavedProfile) string {
	if len(profiles) == 0 {
		return StyleSubtle.Render("No saved assessments yet. Run `kai assess` to create one.") + "\n"
	}
	table := Table{Headers: []string{"ID", "Date", "Role", "Automate", "Augment", "Human"}, MaxWidth: 40}
	for _, p := range profiles {
		counts := p.CategoryCounts()
		table.Rows = append(table.Rows, []string{
			util.ShortID(p.ID, util.DefaultShortIDLength),
			p.Date.Local().Format(dateLayout),
			p.JobTitle,
			fmt.Sprintf("%.0f%% (%d)", p.Analysis.Percentages.Automate, counts[assessment.CategoryAutomate]),
			fmt.Sprintf("%.0f%% (%d)", p.Analysis.Percentages.Augment, counts[assessment.CategoryAugment]),
			fmt.Sprintf("%.0f%% (%d)", p.Analysis.Percentages.Human, counts[assessment.CategoryHuman]),
		})
	}
	return table.Render()
}

// RenderTrend charts automate and augment shares over time. A single
// point is not a trend and renders nothing.
func RenderTrend(points []profile.TrendPoint) string {
	if len(points) < 2 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(StyleSectionTitle.Render("Trend") + "\n")
	for _, pt := range points {
		sb.WriteString(fmt.Sprintf("%s  %s\n", StyleTitle.Render(pt.Date.Local().Format("2006-01-02")), StyleSubtle.Render(pt.JobTitle)))
		sb.WriteString("  " + RenderPercentBar(string(assessment.CategoryAutomate), pt.Automate, ColorAutomate) + "\n")
		sb.WriteString("  " + RenderPercentBar(string(assessment.CategoryAugment), pt.Augment, ColorAugment) + "\n")
	}
	return sb.String()
}

// RenderDashboard combines the profile list and the trend chart.
func RenderDashboard(profiles []profile.SavedProfile) string {
	var sb strings.Builder
	sb.WriteString(StyleHeader.Render(fmt.Sprintf("Saved assessments (%d)", len(profiles))) + "\n\n")
	sb.WriteString(RenderProfiles(profiles))
	if trend := RenderTrend(profile.Trend(profiles)); trend != "" {
		sb.WriteString("\n" + trend)
	}
	sb.WriteString("\n" + StyleSubtle.Render("kai profiles show <id> • kai assess to start a new assessment") + "\n")
	return sb.String()
}
