package ui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/josephgoksu/kai/internal/assessment"
)

// Rater applies one rating change and returns the task with its
// re-derived category.
type Rater interface {
	UpdateRating(taskID string, axis assessment.Axis, value float64) (assessment.Task, error)
}

// RatingEditor is a grid of tasks by rating axes. Every change goes
// through the Rater, so the shown category is always the classifier's.
type RatingEditor struct {
	title string
	tasks []assessment.Task
	rater Rater
	row   int
	col   int
	err   error
	done  bool
	quit  bool
}

// NewRatingEditor starts the cursor on the first task and axis.
func NewRatingEditor(title string, tasks []assessment.Task, rater Rater) RatingEditor {
	return RatingEditor{title: title, tasks: assessment.CloneTasks(tasks), rater: rater}
}

// EditRatings runs the editor and returns the confirmed tasks.
func EditRatings(title string, tasks []assessment.Task, rater Rater) ([]assessment.Task, error) {
	if len(tasks) == 0 {
		return nil, nil
	}
	final, err := tea.NewProgram(NewRatingEditor(title, tasks, rater)).Run()
	if err != nil {
		return nil, fmt.Errorf("error running rating editor: %w", err)
	}
	m := final.(RatingEditor)
	if m.quit {
		return nil, ErrCancelled
	}
	return m.tasks, nil
}

// Tasks returns the tasks as currently edited.
func (m RatingEditor) Tasks() []assessment.Task { return assessment.CloneTasks(m.tasks) }

func (m RatingEditor) Init() tea.Cmd { return nil }

func (m RatingEditor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || len(m.tasks) == 0 {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "esc", "q":
		m.quit = true
		return m, tea.Quit
	case "enter":
		m.done = true
		return m, tea.Quit
	case "up", "k":
		m.row = max(m.row-1, 0)
	case "down", "j":
		m.row = min(m.row+1, len(m.tasks)-1)
	case "left", "h", "shift+tab":
		m.col = max(m.col-1, 0)
	case "right", "l", "tab":
		m.col = min(m.col+1, len(assessment.Axes)-1)
	case "+", "=":
		m = m.nudge(assessment.RatingStep)
	case "-", "_":
		m = m.nudge(-assessment.RatingStep)
	case "1", "2", "3", "4", "5":
		m = m.set(float64(key.Runes[0] - '0'))
	}
	return m, nil
}

func (m RatingEditor) nudge(delta float64) RatingEditor {
	v, _ := m.tasks[m.row].Ratings.Get(assessment.Axes[m.col])
	return m.set(math.Min(assessment.MaxRating, math.Max(assessment.MinRating, v+delta)))
}

func (m RatingEditor) set(v float64) RatingEditor {
	updated, err := m.rater.UpdateRating(m.tasks[m.row].ID, assessment.Axes[m.col], v)
	if err != nil {
		m.err = err
		return m
	}
	m.err = nil
	tasks := assessment.CloneTasks(m.tasks)
	tasks[m.row] = updated
	m.tasks = tasks
	return m
}

func (m RatingEditor) View() string {
	if m.done || m.quit {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\n" + StyleSelectTitle.Render(m.title) + "\n\n")

	headers := []string{"Task"}
	for _, a := range assessment.Axes {
		headers = append(headers, axisShort(a))
	}
	headers = append(headers, "Category")

	table := Table{Headers: headers, MaxWidth: 40}
	for i, t := range m.tasks {
		row := []string{t.Description}
		for j, a := range assessment.Axes {
			v, _ := t.Ratings.Get(a)
			cell := FormatRating(v)
			if i == m.row && j == m.col {
				cell = StyleCellActive.Render(cell)
			}
			row = append(row, cell)
		}
		row = append(row, CategoryBadge(t.Category()))
		table.Rows = append(table.Rows, row)
	}
	sb.WriteString(table.Render())

	sb.WriteString("\n" + StyleSelectDim.Render(assessment.Axes[m.col].Label()) + "\n")
	if m.err != nil {
		sb.WriteString(StyleError.Render(m.err.Error()) + "\n")
	}
	sb.WriteString("\n" + StyleSelectDim.Render("↑/↓ task • ←/→ rating • +/- or 1-5 change • enter confirm • esc cancel") + "\n")
	return sb.String()
}

// FormatRating prints whole ratings without a decimal.
func FormatRating(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}

func axisShort(a assessment.Axis) string {
	switch a {
	case assessment.AxisPatternRecognition:
		return "Pattern"
	case assessment.AxisHumanInteraction:
		return "Human"
	case assessment.AxisComplexity:
		return "Complex"
	case assessment.AxisCreativity:
		return "Creative"
	case assessment.AxisDataAccessibility:
		return "Data"
	}
	return string(a)
}
