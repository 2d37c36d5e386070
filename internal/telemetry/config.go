// Package telemetry sends anonymous, opt-in usage events for kai.
package telemetry

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/josephgoksu/kai/internal/config"
)

// StateFileName lives next to the main config in ~/.kai.
const StateFileName = "telemetry.json"

// StateDir is where the consent file is kept. Tests replace it.
var StateDir = config.GetGlobalConfigDir

// State is the user's telemetry choice. Nothing is sent until Enabled.
type State struct {
	Enabled     bool      `json:"enabled"`
	Decided     bool      `json:"decided"`
	DecidedAt   time.Time `json:"decidedAt,omitzero"`
	AnonymousID string    `json:"anonymousId"`
}

// StatePath is the consent file location.
func StatePath() (string, error) {
	dir, err := StateDir()
	if err != nil {
		return "", fmt.Errorf("resolve telemetry directory: %w", err)
	}
	return filepath.Join(dir, StateFileName), nil
}

// Load returns the stored state. Without a file the user has not decided:
// telemetry is off and a new anonymous id is prepared.
func Load() (*State, error) {
	path, err := StatePath()
	if err != nil {
		return nil, err
	}

	st := &State{}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read telemetry state: %w", err)
	default:
		if err := json.Unmarshal(data, st); err != nil {
			return nil, fmt.Errorf("parse telemetry state: %w", err)
		}
	}
	if st.AnonymousID == "" {
		st.AnonymousID = uuid.New().String()
	}
	return st, nil
}

// Save writes the state atomically, readable by the owner only.
func (s *State) Save() error {
	path, err := StatePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create telemetry directory: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode telemetry state: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write telemetry state: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write telemetry state: %w", err)
	}
	return nil
}

func (s *State) Enable()  { s.decide(true) }
func (s *State) Disable() { s.decide(false) }

func (s *State) IsEnabled() bool { return s != nil && s.Enabled }

func (s *State) decide(on bool) {
	s.Enabled = on
	s.Decided = true
	s.DecidedAt = time.Now().UTC()
}
