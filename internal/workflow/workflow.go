// Package workflow drives one assessment through scoping, rating and
// strategy. It owns the in-progress session; every accessor hands out
// copies.
package workflow

import (
	"errors"
	"fmt"

	"github.com/josephgoksu/kai/internal/assessment"
	"github.com/josephgoksu/kai/internal/profile"
)

var (
	ErrInvalidTransition = errors.New("invalid workflow transition")
	ErrEmptyJobTitle     = errors.New("job title is required")
	ErrNoTasks           = errors.New("at least one task is required")
	ErrTaskNotFound      = errors.New("task not found")
	ErrRatingOutOfRange  = errors.New("rating must be between 1 and 5")
	ErrNoReport          = errors.New("no report generated")
)

// Workflow is the assessment state machine. It is not safe for concurrent
// use; callers serialize access.
type Workflow struct {
	step      Step
	prev      Step // step to return to when the dashboard closes
	session   Session
	reportErr error
}

// New returns a workflow on the landing step.
func New() *Workflow {
	return &Workflow{step: StepLanding, prev: StepLanding}
}

// Step returns the current step.
func (w *Workflow) Step() Step { return w.step }

// Session returns a copy of the current session.
func (w *Workflow) Session() Session { return w.session.Clone() }

// ReportErr is the failure of the last report attempt, if any.
func (w *Workflow) ReportErr() error { return w.reportErr }

// Task returns a copy of the task with the given id.
func (w *Workflow) Task(id string) (assessment.Task, error) {
	i := w.indexOf(id)
	if i < 0 {
		return assessment.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	return w.session.Tasks[i], nil
}

// Start leaves the landing page for a fresh scoping step.
func (w *Workflow) Start() error {
	if err := w.require("start", StepLanding); err != nil {
		return err
	}
	w.clear(StepScoping)
	return nil
}

// Reset discards the session and returns to scoping.
func (w *Workflow) Reset() { w.clear(StepScoping) }

// Home discards the session and returns to the landing page.
func (w *Workflow) Home() { w.clear(StepLanding) }

// BeginAssessment validates the scope and moves to the rating step.
// Any previous tasks or report are dropped.
func (w *Workflow) BeginAssessment(scope Scope) error {
	if err := w.require("begin assessment", StepScoping); err != nil {
		return err
	}
	scope = scope.Normalize()
	if scope.JobTitle == "" {
		return ErrEmptyJobTitle
	}
	if len(scope.Tasks) == 0 {
		return ErrNoTasks
	}

	w.session = Session{
		JobTitle:   scope.JobTitle,
		RawTasks:   scope.Tasks,
		HardSkills: scope.HardSkills,
		SoftSkills: scope.SoftSkills,
	}
	w.reportErr = nil
	w.step = StepAssessing
	return nil
}

// ApplyAssessment installs externally rated tasks. Ratings are clamped to
// the scale and missing ids are filled in; categories follow from the
// ratings.
func (w *Workflow) ApplyAssessment(tasks []assessment.Task) error {
	if err := w.require("apply assessment", StepAssessing); err != nil {
		return err
	}
	if len(tasks) == 0 {
		return ErrNoTasks
	}

	// Supplied ids are reserved up front so a generated one never
	// collides with an id that appears later in the list.
	reserved := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		if t.ID != "" {
			reserved[t.ID] = true
		}
	}

	rated := make([]assessment.Task, len(tasks))
	used := make(map[string]bool, len(tasks))
	for i, t := range tasks {
		if t.ID == "" || used[t.ID] {
			t.ID = freeTaskID(i, reserved, used)
		}
		used[t.ID] = true
		t.Ratings = t.Ratings.Clamp()
		rated[i] = t
	}
	w.session.Tasks = rated
	return nil
}

// freeTaskID returns "task-<i>", or "task-<i>-<n>" for the first n that
// is neither reserved nor used.
func freeTaskID(i int, reserved, used map[string]bool) string {
	id := fmt.Sprintf("task-%d", i)
	for n := 1; reserved[id] || used[id]; n++ {
		id = fmt.Sprintf("task-%d-%d", i, n)
	}
	return id
}

// ApplyFallback rates every raw task at the midpoint so the user can
// continue by hand after the AI assessment failed.
func (w *Workflow) ApplyFallback() error {
	if err := w.require("apply fallback", StepAssessing); err != nil {
		return err
	}
	w.session.Tasks = FallbackTasks(w.session.RawTasks)
	return nil
}

// FallbackTasks builds one midpoint-rated task per description.
// The category is derived as for any task, and all-midpoint ratings
// classify as Human (human 10.5 beats augment 9.6), not Augment as a
// literal default would suggest.
func FallbackTasks(descriptions []string) []assessment.Task {
	tasks := make([]assessment.Task, len(descriptions))
	for i, d := range descriptions {
		tasks[i] = assessment.NewTask(fmt.Sprintf("t-%d", i), d, assessment.UniformRatings(assessment.DefaultRating))
	}
	return tasks
}

// UpdateRating changes one axis of one task. The category is derived from
// the ratings, so it is current as soon as this returns.
func (w *Workflow) UpdateRating(taskID string, axis assessment.Axis, value float64) (assessment.Task, error) {
	if err := w.require("update rating", StepAssessing); err != nil {
		return assessment.Task{}, err
	}
	if !assessment.InRange(value) {
		return assessment.Task{}, fmt.Errorf("%w: got %v", ErrRatingOutOfRange, value)
	}
	i := w.indexOf(taskID)
	if i < 0 {
		return assessment.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}
	r, err := w.session.Tasks[i].Ratings.With(axis, value)
	if err != nil {
		return assessment.Task{}, err
	}
	w.session.Tasks[i].Ratings = r
	return w.session.Tasks[i], nil
}

// BeginStrategy moves the rated tasks on to report generation.
func (w *Workflow) BeginStrategy() error {
	if err := w.require("begin strategy", StepAssessing); err != nil {
		return err
	}
	if len(w.session.Tasks) == 0 {
		return ErrNoTasks
	}
	w.session.Report = nil
	w.reportErr = nil
	w.step = StepStrategizing
	return nil
}

// ApplyReport stores a generated report.
func (w *Workflow) ApplyReport(r assessment.AnalysisResult) error {
	if err := w.requireStrategy("apply report"); err != nil {
		return err
	}
	r = r.Clone()
	w.session.Report = &r
	w.reportErr = nil
	return nil
}

// FailReport records that report generation failed. The attempt is over;
// a retry is a new explicit request.
func (w *Workflow) FailReport(err error) error {
	if e := w.requireStrategy("fail report"); e != nil {
		return e
	}
	if err == nil {
		err = errors.New("report generation failed")
	}
	w.session.Report = nil
	w.reportErr = err
	return nil
}

// OpenDashboard switches to the saved-profile list without touching the
// session.
func (w *Workflow) OpenDashboard() {
	if w.step == StepDashboard {
		return
	}
	w.prev = w.step
	w.step = StepDashboard
}

// CloseDashboard returns to the step the dashboard was opened from.
func (w *Workflow) CloseDashboard() error {
	if err := w.require("close dashboard", StepDashboard); err != nil {
		return err
	}
	w.step = w.prev
	return nil
}

// LoadProfile copies a saved profile into the session and jumps straight
// to the strategy step.
func (w *Workflow) LoadProfile(p profile.SavedProfile) error {
	if err := w.require("load profile", StepDashboard); err != nil {
		return err
	}
	p = p.Clone()
	raw := make([]string, len(p.Tasks))
	for i, t := range p.Tasks {
		raw[i] = t.Description
	}
	w.session = Session{
		JobTitle:   p.JobTitle,
		RawTasks:   raw,
		Tasks:      p.Tasks,
		HardSkills: p.HardSkills,
		SoftSkills: p.SoftSkills,
		Report:     &p.Analysis,
	}
	w.reportErr = nil
	w.step = StepStrategizing
	return nil
}

// Finalize returns a copy of the finished session ready for saving.
func (w *Workflow) Finalize() (profile.Draft, error) {
	if err := w.require("finalize", StepStrategizing); err != nil {
		return profile.Draft{}, err
	}
	if w.session.Report == nil {
		return profile.Draft{}, ErrNoReport
	}
	s := w.session.Clone()
	return profile.Draft{
		JobTitle:   s.JobTitle,
		Tasks:      s.Tasks,
		HardSkills: s.HardSkills,
		SoftSkills: s.SoftSkills,
		Analysis:   *s.Report,
	}, nil
}

func (w *Workflow) require(op string, want Step) error {
	if w.step != want {
		return fmt.Errorf("%w: cannot %s from %s (want %s)", ErrInvalidTransition, op, w.step, want)
	}
	return nil
}

// requireStrategy also accepts the dashboard when it was opened from the
// strategy step, so a report that arrives during the detour is kept.
func (w *Workflow) requireStrategy(op string) error {
	if w.step == StepDashboard && w.prev == StepStrategizing {
		return nil
	}
	return w.require(op, StepStrategizing)
}

func (w *Workflow) clear(next Step) {
	w.session = Session{}
	w.reportErr = nil
	w.step = next
	w.prev = next
}

func (w *Workflow) indexOf(id string) int {
	for i, t := range w.session.Tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
