package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/josephgoksu/kai/internal/assessment"
)

var (
	// Colors
	ColorPrimary   = lipgloss.Color("205") // Pink
	ColorSecondary = lipgloss.Color("241") // Gray
	ColorSuccess   = lipgloss.Color("42")  // Green
	ColorError     = lipgloss.Color("160") // Red
	ColorWarning   = lipgloss.Color("214") // Orange/Yellow
	ColorText      = lipgloss.Color("252") // White/Gray
	ColorCyan      = lipgloss.Color("87")
	ColorBlue      = lipgloss.Color("75")

	// Category colors, shared by badges, bars and charts
	ColorAutomate = lipgloss.Color("203") // Coral
	ColorAugment  = ColorBlue
	ColorHuman    = ColorSuccess

	StyleTitle   = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	StyleSubtle  = lipgloss.NewStyle().Foreground(ColorSecondary)
	StylePrimary = lipgloss.NewStyle().Foreground(ColorPrimary)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleText    = lipgloss.NewStyle().Foreground(ColorText)

	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Padding(0, 1)

	StyleSectionTitle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true).
				Underline(true)

	// Selection lists and the rating editor
	StyleSelectTitle  = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	StyleSelectNormal = lipgloss.NewStyle().Foreground(ColorText)
	StyleSelectActive = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	StyleSelectDim    = lipgloss.NewStyle().Foreground(ColorSecondary)
	StyleCellActive   = lipgloss.NewStyle().Reverse(true).Bold(true)

	StylePrefixDone  = lipgloss.NewStyle().Foreground(ColorSuccess)
	StylePrefixWarn  = lipgloss.NewStyle().Foreground(ColorWarning)
	StylePrefixError = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	StylePrefixUser  = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	StylePrefixCoach = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
)

// Icon returns a styled icon string
func Icon(icon string, style lipgloss.Style) string {
	return style.Render(icon)
}

// CategoryColor is the display color of a category.
func CategoryColor(c assessment.Category) lipgloss.Color {
	switch c {
	case assessment.CategoryAutomate:
		return ColorAutomate
	case assessment.CategoryHuman:
		return ColorHuman
	default:
		return ColorAugment
	}
}

// CategoryBadge renders a category as a colored label.
func CategoryBadge(c assessment.Category) string {
	return lipgloss.NewStyle().Foreground(CategoryColor(c)).Bold(true).Render(string(c))
}
