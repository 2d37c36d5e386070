package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"

	"github.com/josephgoksu/kai/internal/assessment"
	"github.com/josephgoksu/kai/internal/locale"
)

const barWidth = 30

// RoleTitle capitalizes a job title the way the locale does.
func RoleTitle(jobTitle string, loc locale.Locale) string {
	return cases.Title(loc.Tag()).String(strings.TrimSpace(jobTitle))
}

// RenderTasks renders the rated tasks with their categories.
func RenderTasks(tasks []assessment.Task) string {
	headers := []string{"ID", "Task"}
	for _, a := range assessment.Axes {
		headers = append(headers, axisShort(a))
	}
	headers = append(headers, "Category")

	table := Table{Headers: headers, MaxWidth: 48}
	for _, t := range tasks {
		row := []string{t.ID, t.Description}
		for _, a := range assessment.Axes {
			v, _ := t.Ratings.Get(a)
			row = append(row, FormatRating(v))
		}
		row = append(row, CategoryBadge(t.Category()))
		table.Rows = append(table.Rows, row)
	}
	return table.Render()
}

// RenderCategoryCounts summarizes how many tasks fall in each category.
func RenderCategoryCounts(tasks []assessment.Task) string {
	counts := assessment.CountByCategory(tasks)
	parts := make([]string, 0, len(assessment.Categories))
	for _, c := range assessment.Categories {
		parts = append(parts, fmt.Sprintf("%s %d", CategoryBadge(c), counts[c]))
	}
	return strings.Join(parts, StyleSubtle.Render("  •  "))
}

// RenderPercentBar draws a labeled horizontal bar for a 0-100 share.
func RenderPercentBar(label string, pct float64, color lipgloss.Color) string {
	filled := int(math.Round(math.Max(0, math.Min(100, pct)) / 100 * barWidth))
	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		StyleSubtle.Render(strings.Repeat("░", barWidth-filled))
	return fmt.Sprintf("%-9s %s %3.0f%%", label, bar, pct)
}

// RenderReport renders the full strategy report for a role.
func RenderReport(jobTitle string, loc locale.Locale, tasks []assessment.Task, r assessment.AnalysisResult) string {
	var sb strings.Builder

	sb.WriteString(StyleHeader.Render("Strategy report: "+RoleTitle(jobTitle, loc)) + "\n\n")

	sb.WriteString(StyleSectionTitle.Render("Impact") + "\n")
	sb.WriteString(RenderPercentBar(string(assessment.CategoryAutomate), r.Percentages.Automate, ColorAutomate) + "\n")
	sb.WriteString(RenderPercentBar(string(assessment.CategoryAugment), r.Percentages.Augment, ColorAugment) + "\n")
	sb.WriteString(RenderPercentBar(string(assessment.CategoryHuman), r.Percentages.Human, ColorHuman) + "\n\n")

	if len(tasks) > 0 {
		sb.WriteString(StyleSectionTitle.Render("Tasks") + "\n")
		sb.WriteString(RenderTasks(tasks))
		sb.WriteString(RenderCategoryCounts(tasks) + "\n\n")
	}

	if len(r.Timeline) > 0 {
		sb.WriteString(StyleSectionTitle.Render("Timeline") + "\n")
		for _, e := range r.Timeline {
			sb.WriteString(fmt.Sprintf("  %s %s\n", StyleTitle.Render(e.Period), impactBadge(e.ImpactLevel)))
			sb.WriteString("    " + strings.ReplaceAll(WrapText(e.Prediction, 72), "\n", "\n    ") + "\n")
		}
		sb.WriteString("\n")
	}

	writeList(&sb, "Tools", r.Tools)
	writeList(&sb, "Skills to develop", r.SkillsToDevelop)

	if r.ActionPlan != "" {
		sb.WriteString(NewPanel("Action plan", WrapText(r.ActionPlan, 72)).WithBorderColor(ColorPrimary).Render() + "\n")
	}
	return sb.String()
}

func writeList(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(StyleSectionTitle.Render(title) + "\n")
	for _, it := range items {
		sb.WriteString("  • " + it + "\n")
	}
	sb.WriteString("\n")
}

func impactBadge(l assessment.ImpactLevel) string {
	switch l {
	case assessment.ImpactHigh:
		return StyleError.Render("[High]")
	case assessment.ImpactMedium:
		return StyleWarning.Render("[Medium]")
	case assessment.ImpactLow:
		return StyleSuccess.Render("[Low]")
	default:
		return ""
	}
}

// RenderExplanation shows how the classifier decided for a set of ratings.
func RenderExplanation(r assessment.Ratings, s assessment.Score) string {
	var sb strings.Builder
	for _, a := range assessment.Axes {
		v, _ := r.Get(a)
		sb.WriteString(fmt.Sprintf("  %-20s %s\n", a.Label(), FormatRating(v)))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  %-20s %6.2f\n", "Automate score", s.Automate))
	sb.WriteString(fmt.Sprintf("  %-20s %6.2f\n", "Augment score", s.Augment))
	sb.WriteString(fmt.Sprintf("  %-20s %6.2f\n", "Human score", s.Human))
	sb.WriteString(fmt.Sprintf("\n  %s %s %s\n", CategoryBadge(s.Category), StyleSubtle.Render("by"), ruleLabel(s.Rule)))
	return sb.String()
}

func ruleLabel(r assessment.Rule) string {
	switch r {
	case assessment.RuleHumanGate:
		return "human gate (empathy or creativity)"
	case assessment.RuleCopilotGate:
		return "copilot exception (human gate, but repetitive and data-rich)"
	case assessment.RuleAutomateGate:
		return "automate gate (repetitive, data-rich, simple)"
	default:
		return "weighted scores"
	}
}
