package telemetry

import (
	"runtime"
	"sync"
	"testing"

	"github.com/posthog/posthog-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu     sync.Mutex
	events []posthog.Capture
	closed bool
}

func (r *recordingSink) Enqueue(msg posthog.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := msg.(posthog.Capture); ok {
		r.events = append(r.events, c)
	}
	return nil
}

func (r *recordingSink) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (r *recordingSink) captured() []posthog.Capture {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]posthog.Capture(nil), r.events...)
}

func useTempStateDir(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	orig := StateDir
	StateDir = func() (string, error) { return dir, nil }
	t.Cleanup(func() { StateDir = orig })
}

func TestTrack_SendsKnownEventWithStandardProps(t *testing.T) {
	s := &recordingSink{}
	c := newPosthogClient(s, "anon-1", "0.3.0")

	c.Track(EventTasksAssessed, map[string]any{"task_count": 3, "fallback": false, "human": 2})

	events := s.captured()
	require.Len(t, events, 1)
	e := events[0]
	assert.Equal(t, EventTasksAssessed, e.Event)
	assert.Equal(t, "anon-1", e.DistinctId)
	assert.Equal(t, 3, e.Properties["task_count"])
	assert.Equal(t, false, e.Properties["fallback"])
	assert.Equal(t, 2, e.Properties["human"])
	assert.Equal(t, runtime.GOOS, e.Properties["os"])
	assert.Equal(t, "0.3.0", e.Properties["kai_version"])
	assert.Equal(t, false, e.Properties["$process_person_profile"])
}

func TestTrack_NeverSendsFreeText(t *testing.T) {
	s := &recordingSink{}
	c := newPosthogClient(s, "anon", "dev")

	c.Track(EventAssessmentStarted, map[string]any{
		"job_title":  "Copywriter",
		"task_count": "Write ad copy",
		"locale":     "nl",
	})
	c.Track("job_title_entered", nil)

	events := s.captured()
	require.Len(t, events, 1, "unknown events are dropped")
	props := events[0].Properties
	assert.NotContains(t, props, "job_title")
	assert.NotContains(t, props, "task_count", "text under an allowed key is dropped")
	assert.Equal(t, "nl", props["locale"])
}

func TestSanitize(t *testing.T) {
	got := Sanitize(map[string]any{
		"automate":   1,
		"augment":    2.5,
		"fallback":   true,
		"locale":     "a-very-long-string",
		"report":     "plan",
		"task_count": []string{"x"},
	})
	assert.Equal(t, map[string]any{"automate": 1, "augment": 2.5, "fallback": true}, got)
	assert.Empty(t, Sanitize(nil))
}

func TestTrack_Concurrent(t *testing.T) {
	s := &recordingSink{}
	c := newPosthogClient(s, "anon", "dev")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			c.Track(EventReportGenerated, map[string]any{"task_count": n})
		}(i)
	}
	wg.Wait()
	assert.Len(t, s.captured(), 50)

	require.NoError(t, c.Close())
	assert.True(t, s.closed)
}

func TestNew_StaysOffUntilEnabled(t *testing.T) {
	useTempStateDir(t)

	assert.IsType(t, NoopClient{}, New("", "", "dev"))
	assert.IsType(t, NoopClient{}, New("phc_key", "", "dev"), "no decision recorded yet")

	st, err := Load()
	require.NoError(t, err)
	st.Disable()
	require.NoError(t, st.Save())
	assert.IsType(t, NoopClient{}, New("phc_key", "", "dev"))
}

func TestState_LoadSave(t *testing.T) {
	useTempStateDir(t)

	st, err := Load()
	require.NoError(t, err)
	assert.False(t, st.IsEnabled())
	assert.False(t, st.Decided)
	assert.NotEmpty(t, st.AnonymousID)

	st.Enable()
	require.NoError(t, st.Save())

	again, err := Load()
	require.NoError(t, err)
	assert.True(t, again.IsEnabled())
	assert.True(t, again.Decided)
	assert.False(t, again.DecidedAt.IsZero())
	assert.Equal(t, st.AnonymousID, again.AnonymousID)

	again.Disable()
	require.NoError(t, again.Save())
	last, err := Load()
	require.NoError(t, err)
	assert.False(t, last.IsEnabled())

	var nilState *State
	assert.False(t, nilState.IsEnabled())
}
