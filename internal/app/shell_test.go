package app

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephgoksu/kai/internal/assessment"
	"github.com/josephgoksu/kai/internal/gateway"
	"github.com/josephgoksu/kai/internal/locale"
	"github.com/josephgoksu/kai/internal/profile"
	"github.com/josephgoksu/kai/internal/telemetry"
	"github.com/josephgoksu/kai/internal/workflow"
)

type fakeGateway struct {
	suggest func(jobTitle string) (gateway.RoleDetails, error)
	assess  func(jobTitle string, tasks []string) ([]assessment.Task, error)
	report  func(req gateway.ReportRequest) (assessment.AnalysisResult, error)
	chat    func(history []gateway.ChatMessage, message string) (string, error)
	speech  func(text string) ([]byte, error)

	lastLocale locale.Locale
}

func (f *fakeGateway) SuggestRoleDetails(_ context.Context, jobTitle string, loc locale.Locale) (gateway.RoleDetails, error) {
	f.lastLocale = loc
	return f.suggest(jobTitle)
}

func (f *fakeGateway) AssessTasks(_ context.Context, jobTitle string, tasks []string, loc locale.Locale) ([]assessment.Task, error) {
	f.lastLocale = loc
	return f.assess(jobTitle, tasks)
}

func (f *fakeGateway) GenerateReport(_ context.Context, req gateway.ReportRequest) (assessment.AnalysisResult, error) {
	return f.report(req)
}

func (f *fakeGateway) SynthesizeSpeech(_ context.Context, text string) ([]byte, error) {
	return f.speech(text)
}

func (f *fakeGateway) SendChatMessage(_ context.Context, history []gateway.ChatMessage, message string, _ locale.Locale) (string, error) {
	return f.chat(history, message)
}

type recordingTelemetry struct {
	mu     sync.Mutex
	events []string
	props  []map[string]any
}

func (r *recordingTelemetry) Track(event string, properties map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	r.props = append(r.props, properties)
}

func (r *recordingTelemetry) Close() error { return nil }

type failingSlot struct{ readErr, writeErr error }

func (s failingSlot) Read(context.Context) ([]byte, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}
	return nil, profile.ErrSlotEmpty
}

func (s failingSlot) Write(context.Context, []byte) error { return s.writeErr }

var copywriterRatings = assessment.Ratings{
	PatternRecognition: 2, HumanInteraction: 2, Complexity: 4.5, Creativity: 5, DataAccessibility: 3,
}

func sampleReport() assessment.AnalysisResult {
	return assessment.AnalysisResult{
		Percentages: assessment.Percentages{Automate: 10, Augment: 30, Human: 60},
		Timeline: []assessment.TimelineEntry{
			{Period: "0-6 months", Prediction: "Drafting tools spread", ImpactLevel: assessment.ImpactMedium},
		},
		Tools:           []string{"ChatGPT"},
		SkillsToDevelop: []string{"Prompting"},
		ActionPlan:      "Try one AI draft a week.",
	}
}

func copywriterGateway() *fakeGateway {
	return &fakeGateway{
		suggest: func(string) (gateway.RoleDetails, error) {
			return gateway.RoleDetails{Tasks: []string{"Write ad copy"}, HardSkills: []string{"SEO"}}, nil
		},
		assess: func(_ string, tasks []string) ([]assessment.Task, error) {
			return []assessment.Task{assessment.NewTask("task-0", tasks[0], copywriterRatings)}, nil
		},
		report: func(gateway.ReportRequest) (assessment.AnalysisResult, error) { return sampleReport(), nil },
	}
}

func newTestShell(gw gateway.Gateway, slot profile.Slot) (*Shell, *recordingTelemetry) {
	tel := &recordingTelemetry{}
	repo := profile.NewRepository(slot)
	return NewShell(NewContext(gw, repo, tel, locale.Dutch)), tel
}

func TestShell_CopywriterEndToEnd(t *testing.T) {
	ctx := context.Background()
	gw := copywriterGateway()
	s, tel := newTestShell(gw, profile.NewMemorySlot())

	require.NoError(t, s.Start())
	details, fellBack, err := s.SuggestRoleDetails(ctx, "Copywriter")
	require.NoError(t, err)
	assert.False(t, fellBack)
	assert.Equal(t, locale.Dutch, gw.lastLocale)

	tasks, fellBack, err := s.Assess(ctx, workflow.Scope{
		JobTitle:   "Copywriter",
		Tasks:      details.Tasks,
		HardSkills: details.HardSkills,
	})
	require.NoError(t, err)
	assert.False(t, fellBack)
	require.Len(t, tasks, 1)
	assert.Equal(t, assessment.CategoryHuman, tasks[0].Category())
	assert.Equal(t, workflow.StepAssessing, s.Step())

	report, err := s.GenerateReport(ctx)
	require.NoError(t, err)
	assert.Equal(t, 60.0, report.Percentages.Human)
	assert.Equal(t, workflow.StepStrategizing, s.Step())

	saved, err := s.Save(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "Copywriter", saved.JobTitle)

	list := s.Profiles(ctx)
	require.Len(t, list, 1)
	assert.Equal(t, saved.ID, list[0].ID)
	assert.Equal(t, assessment.CategoryHuman, list[0].Tasks[0].Category())

	assert.Equal(t, []string{
		telemetry.EventAssessmentStarted,
		telemetry.EventTasksAssessed,
		telemetry.EventReportGenerated,
		telemetry.EventProfileSaved,
	}, tel.events)
	assert.Equal(t, 1, tel.props[1]["human"])
	assert.Equal(t, false, tel.props[1]["fallback"])
}

func TestShell_SuggestFailureFallsBack(t *testing.T) {
	gw := &fakeGateway{suggest: func(string) (gateway.RoleDetails, error) {
		return gateway.RoleDetails{}, errors.New("quota exceeded")
	}}
	s, _ := newTestShell(gw, profile.NewMemorySlot())

	details, fellBack, err := s.SuggestRoleDetails(context.Background(), "Nurse")
	require.NoError(t, err)
	assert.True(t, fellBack)
	assert.Empty(t, details.Tasks)

	_, _, err = s.SuggestRoleDetails(context.Background(), "   ")
	assert.ErrorIs(t, err, workflow.ErrEmptyJobTitle)
}

func TestShell_AssessFailureFallsBackToMidpoint(t *testing.T) {
	gw := &fakeGateway{assess: func(string, []string) ([]assessment.Task, error) {
		return nil, errors.New("model overloaded")
	}}
	s, tel := newTestShell(gw, profile.NewMemorySlot())
	require.NoError(t, s.Start())

	tasks, fellBack, err := s.Assess(context.Background(), workflow.Scope{
		JobTitle: "Accountant",
		Tasks:    []string{"Reconcile ledgers", "Advise clients"},
	})
	require.NoError(t, err)
	assert.True(t, fellBack)
	require.Len(t, tasks, 2)
	for i, task := range tasks {
		assert.Equal(t, assessment.UniformRatings(3), task.Ratings)
		assert.Equal(t, assessment.Classify(assessment.UniformRatings(3)), task.Category())
		assert.Equal(t, []string{"Reconcile ledgers", "Advise clients"}[i], task.Description)
	}
	assert.Equal(t, true, tel.props[1]["fallback"])
}

func TestShell_EmptyAssessmentFallsBack(t *testing.T) {
	gw := &fakeGateway{assess: func(string, []string) ([]assessment.Task, error) { return nil, nil }}
	s, _ := newTestShell(gw, profile.NewMemorySlot())
	require.NoError(t, s.Start())

	tasks, fellBack, err := s.Assess(context.Background(), workflow.Scope{JobTitle: "Chef", Tasks: []string{"Plan menu"}})
	require.NoError(t, err)
	assert.True(t, fellBack)
	assert.Len(t, tasks, 1)
}

func TestShell_NoGatewayUsesFallbacks(t *testing.T) {
	s := NewShell(NewContext(nil, nil, nil, ""))
	require.NoError(t, s.Start())

	_, fellBack, err := s.Assess(context.Background(), workflow.Scope{JobTitle: "Chef", Tasks: []string{"Plan menu"}})
	require.NoError(t, err)
	assert.True(t, fellBack)

	_, err = s.GenerateReport(context.Background())
	assert.ErrorIs(t, err, ErrNoGateway)
	assert.ErrorIs(t, s.ReportErr(), ErrNoGateway)

	_, err = s.Chat(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrNoGateway)
}

func TestShell_AssessGuardsBlockLocally(t *testing.T) {
	s, tel := newTestShell(copywriterGateway(), profile.NewMemorySlot())
	require.NoError(t, s.Start())

	_, _, err := s.Assess(context.Background(), workflow.Scope{JobTitle: " ", Tasks: []string{"x"}})
	assert.ErrorIs(t, err, workflow.ErrEmptyJobTitle)
	_, _, err = s.Assess(context.Background(), workflow.Scope{JobTitle: "Writer", Tasks: []string{" "}})
	assert.ErrorIs(t, err, workflow.ErrNoTasks)

	assert.Equal(t, workflow.StepScoping, s.Step())
	assert.Empty(t, tel.events)
}

func TestShell_UpdateRatingRederivesCategory(t *testing.T) {
	s, _ := newTestShell(copywriterGateway(), profile.NewMemorySlot())
	require.NoError(t, s.Start())
	tasks, _, err := s.Assess(context.Background(), workflow.Scope{JobTitle: "Copywriter", Tasks: []string{"Write ad copy"}})
	require.NoError(t, err)

	id := tasks[0].ID
	_, err = s.UpdateRating(id, assessment.AxisCreativity, 1)
	require.NoError(t, err)
	task, err := s.UpdateRating(id, assessment.AxisComplexity, 4)
	require.NoError(t, err)
	assert.Equal(t, assessment.Classify(task.Ratings), task.Category())
	assert.Equal(t, task, s.Session().Tasks[0])

	_, err = s.UpdateRating(id, assessment.AxisComplexity, 6)
	assert.ErrorIs(t, err, workflow.ErrRatingOutOfRange)
	_, err = s.UpdateRating("nope", assessment.AxisComplexity, 2)
	assert.ErrorIs(t, err, workflow.ErrTaskNotFound)
}

func TestShell_ReportFailureIsSurfacedNotRetried(t *testing.T) {
	calls := 0
	gw := copywriterGateway()
	gw.report = func(gateway.ReportRequest) (assessment.AnalysisResult, error) {
		calls++
		if calls == 1 {
			return assessment.AnalysisResult{}, errors.New("timeout")
		}
		return sampleReport(), nil
	}
	s, tel := newTestShell(gw, profile.NewMemorySlot())
	require.NoError(t, s.Start())
	_, _, err := s.Assess(context.Background(), workflow.Scope{JobTitle: "Copywriter", Tasks: []string{"Write ad copy"}})
	require.NoError(t, err)

	_, err = s.GenerateReport(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, workflow.StepStrategizing, s.Step())
	assert.Error(t, s.ReportErr())
	assert.Nil(t, s.Session().Report)
	assert.Contains(t, tel.events, telemetry.EventReportFailed)

	_, err = s.Save(context.Background())
	assert.ErrorIs(t, err, workflow.ErrNoReport)

	// explicit retry
	_, err = s.GenerateReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.NoError(t, s.ReportErr())
	assert.NotNil(t, s.Session().Report)
}

func TestShell_SaveFailureKeepsSession(t *testing.T) {
	s, _ := newTestShell(copywriterGateway(), failingSlot{writeErr: errors.New("disk full")})
	require.NoError(t, s.Start())
	_, _, err := s.Assess(context.Background(), workflow.Scope{JobTitle: "Copywriter", Tasks: []string{"Write ad copy"}})
	require.NoError(t, err)
	_, err = s.GenerateReport(context.Background())
	require.NoError(t, err)

	_, err = s.Save(context.Background())
	assert.ErrorIs(t, err, profile.ErrSaveFailed)
	assert.Equal(t, workflow.StepStrategizing, s.Step())
	assert.NotNil(t, s.Session().Report)
	assert.Equal(t, "Copywriter", s.Session().JobTitle)
}

func TestShell_ListingFailureIsEmpty(t *testing.T) {
	s, _ := newTestShell(nil, failingSlot{readErr: errors.New("permission denied")})
	assert.Empty(t, s.OpenDashboard(context.Background()))
	assert.Equal(t, workflow.StepDashboard, s.Step())
	require.NoError(t, s.CloseDashboard())
	assert.Equal(t, workflow.StepLanding, s.Step())
}

func TestShell_LoadAndDeleteProfile(t *testing.T) {
	ctx := context.Background()
	s, tel := newTestShell(copywriterGateway(), profile.NewMemorySlot())
	require.NoError(t, s.Start())
	_, _, err := s.Assess(ctx, workflow.Scope{JobTitle: "Copywriter", Tasks: []string{"Write ad copy"}})
	require.NoError(t, err)
	_, err = s.GenerateReport(ctx)
	require.NoError(t, err)
	saved, err := s.Save(ctx)
	require.NoError(t, err)

	s.Reset()
	assert.Empty(t, s.Session().JobTitle)

	loaded, err := s.LoadProfile(ctx, saved.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, saved.ID, loaded.ID)
	assert.Equal(t, workflow.StepStrategizing, s.Step())
	sess := s.Session()
	assert.Equal(t, "Copywriter", sess.JobTitle)
	require.NotNil(t, sess.Report)
	assert.Equal(t, saved.Analysis, *sess.Report)

	_, err = s.LoadProfile(ctx, "zzzz")
	assert.ErrorIs(t, err, profile.ErrNotFound)

	require.NoError(t, s.DeleteProfile(ctx, saved.ID))
	require.NoError(t, s.DeleteProfile(ctx, saved.ID))
	assert.Empty(t, s.Profiles(ctx))
	assert.Equal(t, telemetry.EventProfileDeleted, tel.events[len(tel.events)-1])
}

func TestShell_SingleOutstandingRequest(t *testing.T) {
	entered := make(chan struct{})
	unblock := make(chan struct{})
	gw := copywriterGateway()
	inner := gw.assess
	gw.assess = func(title string, tasks []string) ([]assessment.Task, error) {
		close(entered)
		<-unblock
		return inner(title, tasks)
	}
	s, _ := newTestShell(gw, profile.NewMemorySlot())
	require.NoError(t, s.Start())

	done := make(chan error, 1)
	go func() {
		_, _, err := s.Assess(context.Background(), workflow.Scope{JobTitle: "Copywriter", Tasks: []string{"Write ad copy"}})
		done <- err
	}()
	<-entered

	_, _, err := s.Assess(context.Background(), workflow.Scope{JobTitle: "Copywriter", Tasks: []string{"Write ad copy"}})
	assert.ErrorIs(t, err, ErrRequestInFlight)

	close(unblock)
	require.NoError(t, <-done)
	assert.Equal(t, assessment.CategoryHuman, s.Session().Tasks[0].Category())
}

func TestShell_ResetDuringAssessmentDiscardsResponse(t *testing.T) {
	entered := make(chan struct{})
	unblock := make(chan struct{})
	gw := copywriterGateway()
	inner := gw.assess
	gw.assess = func(title string, tasks []string) ([]assessment.Task, error) {
		close(entered)
		<-unblock
		return inner(title, tasks)
	}
	s, _ := newTestShell(gw, profile.NewMemorySlot())
	require.NoError(t, s.Start())

	done := make(chan error, 1)
	go func() {
		_, _, err := s.Assess(context.Background(), workflow.Scope{JobTitle: "Copywriter", Tasks: []string{"Write ad copy"}})
		done <- err
	}()
	<-entered
	s.Reset()
	close(unblock)

	assert.ErrorIs(t, <-done, ErrSessionChanged)
	assert.Equal(t, workflow.StepScoping, s.Step())
	assert.Empty(t, s.Session().Tasks)
}

func TestShell_ReportSurvivesDashboardDetour(t *testing.T) {
	entered := make(chan struct{})
	unblock := make(chan struct{})
	gw := copywriterGateway()
	inner := gw.report
	gw.report = func(req gateway.ReportRequest) (assessment.AnalysisResult, error) {
		close(entered)
		<-unblock
		return inner(req)
	}
	s, _ := newTestShell(gw, profile.NewMemorySlot())
	require.NoError(t, s.Start())
	_, _, err := s.Assess(context.Background(), workflow.Scope{JobTitle: "Copywriter", Tasks: []string{"Write ad copy"}})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := s.GenerateReport(context.Background())
		done <- err
	}()
	<-entered
	s.OpenDashboard(context.Background())
	close(unblock)

	require.NoError(t, <-done)
	assert.Equal(t, workflow.StepDashboard, s.Step())
	require.NoError(t, s.CloseDashboard())
	assert.Equal(t, workflow.StepStrategizing, s.Step())
	assert.NotNil(t, s.Session().Report)
}

func TestShell_ChatKeepsHistoryOnSuccessOnly(t *testing.T) {
	var seen [][]gateway.ChatMessage
	fail := false
	gw := &fakeGateway{chat: func(history []gateway.ChatMessage, message string) (string, error) {
		seen = append(seen, history)
		if fail {
			return "", errors.New("offline")
		}
		return "echo: " + message, nil
	}}
	s, _ := newTestShell(gw, profile.NewMemorySlot())

	reply, err := s.Chat(context.Background(), "Will AI take my job?")
	require.NoError(t, err)
	assert.Equal(t, "echo: Will AI take my job?", reply)

	fail = true
	_, err = s.Chat(context.Background(), "And now?")
	require.Error(t, err)

	history := s.ChatHistory()
	require.Len(t, history, 2)
	assert.Equal(t, gateway.RoleUser, history[0].Role)
	assert.Equal(t, gateway.RoleModel, history[1].Role)
	assert.Len(t, seen[1], 2)

	reply, err = s.Chat(context.Background(), "  ")
	require.NoError(t, err)
	assert.Empty(t, reply)
}

func TestShell_Speak(t *testing.T) {
	gw := &fakeGateway{speech: func(text string) ([]byte, error) { return []byte(text), nil }}
	s, _ := newTestShell(gw, profile.NewMemorySlot())
	audio, err := s.Speak(context.Background(), "plan")
	require.NoError(t, err)
	assert.Equal(t, []byte("plan"), audio)
}
