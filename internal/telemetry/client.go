package telemetry

import (
	"io"
	"log/slog"
	"runtime"
	"time"

	"github.com/posthog/posthog-go"
)

// Client records usage events. Track never blocks the command.
type Client interface {
	Track(event string, properties map[string]any)
	Close() error
}

// New returns a PostHog client only when an API key is configured and the
// user has enabled telemetry; otherwise every call is a no-op.
func New(apiKey, endpoint, version string) Client {
	if apiKey == "" {
		return NoopClient{}
	}
	st, err := Load()
	if err != nil {
		slog.Debug("telemetry state unreadable, staying off", "error", err)
		return NoopClient{}
	}
	if !st.IsEnabled() {
		return NoopClient{}
	}

	cfg := posthog.Config{BatchSize: 10, Interval: time.Second, Logger: silentLogger{}}
	if endpoint != "" {
		cfg.Endpoint = endpoint
	}
	ph, err := posthog.NewWithConfig(apiKey, cfg)
	if err != nil {
		slog.Debug("posthog unavailable", "error", err)
		return NoopClient{}
	}
	return newPosthogClient(ph, st.AnonymousID, version)
}

// sink is the part of the PostHog SDK the client uses.
type sink interface {
	io.Closer
	Enqueue(posthog.Message) error
}

type posthogClient struct {
	sink       sink
	distinctID string
	version    string
}

func newPosthogClient(s sink, distinctID, version string) *posthogClient {
	return &posthogClient{sink: s, distinctID: distinctID, version: version}
}

// Track sends a known event. Properties outside the allow list are
// dropped so free text (job titles, tasks, reports) can never leave the
// machine.
func (c *posthogClient) Track(event string, properties map[string]any) {
	if !knownEvents[event] {
		slog.Debug("unknown telemetry event dropped", "event", event)
		return
	}
	props := posthog.NewProperties().
		Set("os", runtime.GOOS).
		Set("arch", runtime.GOARCH).
		Set("kai_version", c.version).
		Set("$process_person_profile", false)
	for k, v := range Sanitize(properties) {
		props.Set(k, v)
	}
	if err := c.sink.Enqueue(posthog.Capture{DistinctId: c.distinctID, Event: event, Properties: props}); err != nil {
		slog.Debug("telemetry enqueue failed", "event", event, "error", err)
	}
}

// Close flushes queued events.
func (c *posthogClient) Close() error { return c.sink.Close() }

// Sanitize keeps allow-listed keys with numeric or boolean values, plus the
// locale code.
func Sanitize(properties map[string]any) map[string]any {
	out := make(map[string]any, len(properties))
	for k, v := range properties {
		if !allowedProps[k] {
			continue
		}
		switch val := v.(type) {
		case bool, int, int64, float64:
			out[k] = val
		case string:
			if k == "locale" && len(val) <= 5 {
				out[k] = val
			}
		}
	}
	return out
}

// NoopClient drops everything.
type NoopClient struct{}

func (NoopClient) Track(string, map[string]any) {}
func (NoopClient) Close() error                 { return nil }

type silentLogger struct{}

func (silentLogger) Debugf(string, ...interface{}) {}
func (silentLogger) Logf(string, ...interface{})   {}
func (silentLogger) Warnf(string, ...interface{})  {}
func (silentLogger) Errorf(string, ...interface{}) {}
