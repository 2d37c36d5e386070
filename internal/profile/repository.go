package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/josephgoksu/kai/internal/util"
)

// Repository owns the saved-profile collection, newest first.
type Repository struct {
	slot Slot
	mu   sync.Mutex

	// Overridable in tests.
	now   func() time.Time
	newID func() string
}

// NewRepository wraps a backing slot.
func NewRepository(slot Slot) *Repository {
	return &Repository{
		slot:  slot,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
}

// Save snapshots the draft under a fresh id and the current time, prepends
// it and persists the whole collection. On failure the error wraps
// ErrSaveFailed and nothing is stored.
func (r *Repository) Save(ctx context.Context, d Draft) (SavedProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, err := r.load(ctx)
	if err != nil {
		return SavedProfile{}, fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	taken := make(map[string]bool, len(existing))
	for _, p := range existing {
		taken[p.ID] = true
	}
	id := r.newID()
	for taken[id] || id == "" {
		id = r.newID()
	}

	d = d.Clone()
	p := SavedProfile{
		ID:         id,
		JobTitle:   d.JobTitle,
		Date:       r.now().UTC(),
		Tasks:      d.Tasks,
		HardSkills: d.HardSkills,
		SoftSkills: d.SoftSkills,
		Analysis:   d.Analysis,
	}

	if err := r.store(ctx, append([]SavedProfile{p}, existing...)); err != nil {
		return SavedProfile{}, fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	return p.Clone(), nil
}

// List returns every profile, newest first. Persistence is best-effort:
// an unreadable or corrupt store yields an empty list.
func (r *Repository) List(ctx context.Context) []SavedProfile {
	r.mu.Lock()
	defer r.mu.Unlock()

	profiles, err := r.load(ctx)
	if err != nil {
		slog.Warn("failed to read saved profiles", "error", err)
		return []SavedProfile{}
	}
	return profiles
}

// Get returns the profile matching a full id or a unique id prefix.
func (r *Repository) Get(ctx context.Context, idOrPrefix string) (SavedProfile, error) {
	profiles := r.List(ctx)
	ids := make([]string, len(profiles))
	for i, p := range profiles {
		ids[i] = p.ID
	}
	id, err := util.ResolveID(idOrPrefix, ids, "profile")
	if err != nil {
		return SavedProfile{}, err
	}
	for _, p := range profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return SavedProfile{}, fmt.Errorf("profile %q: %w", id, ErrNotFound)
}

// Delete removes the profile with the given id. Deleting an unknown id is
// a no-op.
func (r *Repository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	profiles, err := r.load(ctx)
	if err != nil {
		return fmt.Errorf("delete profile %s: %w", id, err)
	}

	kept := make([]SavedProfile, 0, len(profiles))
	for _, p := range profiles {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(profiles) {
		return nil
	}
	if err := r.store(ctx, kept); err != nil {
		return fmt.Errorf("delete profile %s: %w", id, err)
	}
	return nil
}

// load reads the collection. A missing slot or a corrupt blob is treated
// as empty; only I/O errors are returned.
func (r *Repository) load(ctx context.Context) ([]SavedProfile, error) {
	data, err := r.slot.Read(ctx)
	if errors.Is(err, ErrSlotEmpty) {
		return []SavedProfile{}, nil
	}
	if err != nil {
		return nil, err
	}

	var profiles []SavedProfile
	if err := json.Unmarshal(data, &profiles); err != nil {
		slog.Warn("discarding corrupt profile store", "error", err)
		return []SavedProfile{}, nil
	}
	if profiles == nil {
		profiles = []SavedProfile{}
	}
	return profiles, nil
}

func (r *Repository) store(ctx context.Context, profiles []SavedProfile) error {
	data, err := json.Marshal(profiles)
	if err != nil {
		return fmt.Errorf("encode profiles: %w", err)
	}
	return r.slot.Write(ctx, data)
}
