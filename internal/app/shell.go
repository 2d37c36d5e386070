package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/josephgoksu/kai/internal/assessment"
	"github.com/josephgoksu/kai/internal/gateway"
	"github.com/josephgoksu/kai/internal/logger"
	"github.com/josephgoksu/kai/internal/profile"
	"github.com/josephgoksu/kai/internal/telemetry"
	"github.com/josephgoksu/kai/internal/workflow"
)

var (
	// ErrRequestInFlight is returned when the same AI request is already
	// outstanding.
	ErrRequestInFlight = errors.New("request already in progress")
	// ErrSessionChanged is returned when the session was reset or replaced
	// while an AI request was outstanding. The response is discarded.
	ErrSessionChanged = errors.New("session changed while request was in flight")
	// ErrNoGateway is returned by AI operations when no gateway is configured.
	ErrNoGateway = errors.New("AI gateway is not configured")
)

// Request kinds, one outstanding of each at a time.
const (
	opSuggest = "suggest"
	opAssess  = "assess"
	opReport  = "report"
	opChat    = "chat"
	opSpeech  = "speech"
)

// Shell runs one assessment session for one user.
type Shell struct {
	ctx *Context

	mu       sync.Mutex
	wf       *workflow.Workflow
	epoch    int // bumped whenever the session is replaced
	inflight map[string]bool
	history  []gateway.ChatMessage
}

// NewShell returns a shell on the landing step.
func NewShell(c *Context) *Shell {
	return &Shell{ctx: c, wf: workflow.New(), inflight: make(map[string]bool)}
}

// Step returns the current workflow step.
func (s *Shell) Step() workflow.Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wf.Step()
}

// Session returns a copy of the in-progress session.
func (s *Shell) Session() workflow.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wf.Session()
}

// ReportErr is the failure of the last report attempt.
func (s *Shell) ReportErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wf.ReportErr()
}

// Start leaves the landing page.
func (s *Shell) Start() error {
	return s.mutate("start", func() error {
		if err := s.wf.Start(); err != nil {
			return err
		}
		s.epoch++
		return nil
	})
}

// Reset discards the session and returns to scoping.
func (s *Shell) Reset() {
	_ = s.mutate("reset", func() error {
		s.wf.Reset()
		s.epoch++
		return nil
	})
}

// Home discards the session and returns to the landing page.
func (s *Shell) Home() {
	_ = s.mutate("home", func() error {
		s.wf.Home()
		s.epoch++
		return nil
	})
}

// SuggestRoleDetails asks the AI for tasks and skills of a role. On
// failure it returns empty details and fellBack=true so the user can fill
// the scope in by hand.
func (s *Shell) SuggestRoleDetails(ctx context.Context, jobTitle string) (details gateway.RoleDetails, fellBack bool, err error) {
	jobTitle = strings.TrimSpace(jobTitle)
	if jobTitle == "" {
		return gateway.RoleDetails{}, false, workflow.ErrEmptyJobTitle
	}
	if err := s.acquire(opSuggest); err != nil {
		return gateway.RoleDetails{}, false, err
	}
	defer s.release(opSuggest)

	if s.ctx.Gateway == nil {
		return gateway.RoleDetails{}, true, nil
	}
	d, err := s.ctx.Gateway.SuggestRoleDetails(ctx, jobTitle, s.ctx.Locale)
	if err != nil {
		slog.Warn("role suggestion failed, continuing without suggestions", "error", err)
		return gateway.RoleDetails{}, true, nil
	}
	return d, false, nil
}

// Assess validates the scope, moves to the rating step and rates the tasks
// with the AI. An AI failure falls back to midpoint ratings; fellBack
// reports which path was taken.
func (s *Shell) Assess(ctx context.Context, scope workflow.Scope) (tasks []assessment.Task, fellBack bool, err error) {
	if err := s.acquire(opAssess); err != nil {
		return nil, false, err
	}
	defer s.release(opAssess)

	var epoch int
	var sess workflow.Session
	err = s.mutate("begin assessment", func() error {
		if err := s.wf.BeginAssessment(scope); err != nil {
			return err
		}
		s.epoch++
		epoch = s.epoch
		sess = s.wf.Session()
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	s.ctx.Telemetry.Track(telemetry.EventAssessmentStarted, map[string]any{
		"task_count": len(sess.RawTasks),
		"locale":     s.ctx.Locale.String(),
	})

	var rated []assessment.Task
	aiErr := ErrNoGateway
	if s.ctx.Gateway != nil {
		rated, aiErr = s.ctx.Gateway.AssessTasks(ctx, sess.JobTitle, sess.RawTasks, s.ctx.Locale)
	}

	err = s.mutate("apply assessment", func() error {
		if s.epoch != epoch {
			return ErrSessionChanged
		}
		if aiErr == nil {
			if aiErr = s.wf.ApplyAssessment(rated); aiErr == nil {
				return nil
			}
		}
		slog.Warn("task assessment failed, using default ratings", "error", aiErr)
		fellBack = true
		return s.wf.ApplyFallback()
	})
	if err != nil {
		return nil, false, err
	}

	tasks = s.Session().Tasks
	props := map[string]any{"fallback": fellBack, "task_count": len(tasks)}
	for c, n := range assessment.CountByCategory(tasks) {
		props[strings.ToLower(string(c))] = n
	}
	s.ctx.Telemetry.Track(telemetry.EventTasksAssessed, props)
	return tasks, fellBack, nil
}

// UpdateRating changes one rating and returns the task with its new
// category.
func (s *Shell) UpdateRating(taskID string, axis assessment.Axis, value float64) (assessment.Task, error) {
	var t assessment.Task
	err := s.mutate("update rating", func() error {
		var err error
		t, err = s.wf.UpdateRating(taskID, axis, value)
		return err
	})
	return t, err
}

// GenerateReport moves the rated tasks to the strategy step, if they are
// not there yet, and asks the AI for the report. A failure is recorded on
// the workflow and returned; it is never retried automatically.
func (s *Shell) GenerateReport(ctx context.Context) (assessment.AnalysisResult, error) {
	if err := s.acquire(opReport); err != nil {
		return assessment.AnalysisResult{}, err
	}
	defer s.release(opReport)

	var epoch int
	var sess workflow.Session
	err := s.mutate("begin strategy", func() error {
		if s.wf.Step() != workflow.StepStrategizing {
			if err := s.wf.BeginStrategy(); err != nil {
				return err
			}
		}
		epoch = s.epoch
		sess = s.wf.Session()
		return nil
	})
	if err != nil {
		return assessment.AnalysisResult{}, err
	}

	req := gateway.ReportRequest{
		JobTitle:   sess.JobTitle,
		Tasks:      sess.Tasks,
		HardSkills: sess.HardSkills,
		SoftSkills: sess.SoftSkills,
		Locale:     s.ctx.Locale,
	}
	var report assessment.AnalysisResult
	genErr := ErrNoGateway
	if s.ctx.Gateway != nil {
		report, genErr = s.ctx.Gateway.GenerateReport(ctx, req)
	}

	err = s.mutate("apply report", func() error {
		if s.epoch != epoch {
			return ErrSessionChanged
		}
		if genErr != nil {
			if err := s.wf.FailReport(genErr); err != nil {
				return err
			}
			return fmt.Errorf("generate report: %w", genErr)
		}
		return s.wf.ApplyReport(report)
	})
	if err != nil {
		if genErr != nil && !errors.Is(err, ErrSessionChanged) {
			s.ctx.Telemetry.Track(telemetry.EventReportFailed, nil)
		}
		return assessment.AnalysisResult{}, err
	}
	s.ctx.Telemetry.Track(telemetry.EventReportGenerated, map[string]any{"task_count": len(sess.Tasks)})
	return report.Clone(), nil
}

// Save stores the finished assessment as a new profile. On failure the
// session is kept so the user can try again.
func (s *Shell) Save(ctx context.Context) (profile.SavedProfile, error) {
	var draft profile.Draft
	err := s.mutate("save", func() error {
		var err error
		draft, err = s.wf.Finalize()
		return err
	})
	if err != nil {
		return profile.SavedProfile{}, err
	}
	saved, err := s.ctx.Repo.Save(ctx, draft)
	if err != nil {
		return profile.SavedProfile{}, err
	}
	s.ctx.Telemetry.Track(telemetry.EventProfileSaved, map[string]any{"task_count": len(saved.Tasks)})
	return saved, nil
}

// OpenDashboard switches to the dashboard and returns the saved profiles,
// newest first.
func (s *Shell) OpenDashboard(ctx context.Context) []profile.SavedProfile {
	_ = s.mutate("open dashboard", func() error {
		s.wf.OpenDashboard()
		return nil
	})
	return s.ctx.Repo.List(ctx)
}

// CloseDashboard returns to where the dashboard was opened from.
func (s *Shell) CloseDashboard() error {
	return s.mutate("close dashboard", s.wf.CloseDashboard)
}

// Profiles lists saved profiles without changing step.
func (s *Shell) Profiles(ctx context.Context) []profile.SavedProfile {
	return s.ctx.Repo.List(ctx)
}

// LoadProfile opens a saved profile, by id or unique id prefix, in the
// strategy step. The stored profile is never modified.
func (s *Shell) LoadProfile(ctx context.Context, idOrPrefix string) (profile.SavedProfile, error) {
	p, err := s.ctx.Repo.Get(ctx, idOrPrefix)
	if err != nil {
		return profile.SavedProfile{}, err
	}
	err = s.mutate("load profile", func() error {
		s.wf.OpenDashboard()
		if err := s.wf.LoadProfile(p); err != nil {
			return err
		}
		s.epoch++
		return nil
	})
	if err != nil {
		return profile.SavedProfile{}, err
	}
	return p, nil
}

// DeleteProfile removes a saved profile. Unknown ids are ignored.
func (s *Shell) DeleteProfile(ctx context.Context, id string) error {
	if err := s.ctx.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.ctx.Telemetry.Track(telemetry.EventProfileDeleted, nil)
	return nil
}

// Chat sends a message to the career coach. The exchange is added to the
// history only when the coach answers.
func (s *Shell) Chat(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", nil
	}
	if s.ctx.Gateway == nil {
		return "", ErrNoGateway
	}
	if err := s.acquire(opChat); err != nil {
		return "", err
	}
	defer s.release(opChat)

	s.mu.Lock()
	history := append([]gateway.ChatMessage(nil), s.history...)
	s.mu.Unlock()

	reply, err := s.ctx.Gateway.SendChatMessage(ctx, history, message, s.ctx.Locale)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.history = append(s.history,
		gateway.ChatMessage{Role: gateway.RoleUser, Text: message},
		gateway.ChatMessage{Role: gateway.RoleModel, Text: reply},
	)
	s.mu.Unlock()
	return reply, nil
}

// ChatHistory returns a copy of the coach conversation.
func (s *Shell) ChatHistory() []gateway.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]gateway.ChatMessage(nil), s.history...)
}

// Speak synthesizes text, returning nil audio when the model produced none.
func (s *Shell) Speak(ctx context.Context, text string) ([]byte, error) {
	if s.ctx.Gateway == nil {
		return nil, ErrNoGateway
	}
	if err := s.acquire(opSpeech); err != nil {
		return nil, err
	}
	defer s.release(opSpeech)
	return s.ctx.Gateway.SynthesizeSpeech(ctx, text)
}

// mutate runs fn under the lock and records the step for crash reports.
func (s *Shell) mutate(op string, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := fn()
	logger.SetStep(s.wf.Step().String(), op)
	return err
}

func (s *Shell) acquire(op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight[op] {
		return fmt.Errorf("%w: %s", ErrRequestInFlight, op)
	}
	s.inflight[op] = true
	return nil
}

func (s *Shell) release(op string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, op)
}
