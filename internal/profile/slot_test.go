package profile

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlots(t *testing.T) {
	sqliteSlot, err := NewSQLiteSlot(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqliteSlot.Close() })

	slots := map[string]Slot{
		"memory": NewMemorySlot(),
		"file":   NewFileSlot(afero.NewMemMapFs(), "/data/kai/"+SlotKey+".json"),
		"sqlite": sqliteSlot,
	}

	for name, slot := range slots {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := slot.Read(ctx)
			assert.ErrorIs(t, err, ErrSlotEmpty)

			require.NoError(t, slot.Write(ctx, []byte(`[]`)))
			require.NoError(t, slot.Write(ctx, []byte(`[{"id":"x"}]`)))

			data, err := slot.Read(ctx)
			require.NoError(t, err)
			assert.Equal(t, `[{"id":"x"}]`, string(data))
		})
	}
}

func TestFileSlot_LeavesNoTempFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	slot := NewFileSlot(fs, "/data/profiles.json")

	require.NoError(t, slot.Write(context.Background(), []byte(`[]`)))

	exists, err := afero.Exists(fs, "/data/profiles.json.tmp")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, "/data/profiles.json", slot.Path())
}

func TestFileSlot_CancelledContext(t *testing.T) {
	slot := NewFileSlot(afero.NewMemMapFs(), "/data/profiles.json")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, slot.Write(ctx, []byte(`[]`)), context.Canceled)
	_, err := slot.Read(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRepository_OverSQLite(t *testing.T) {
	slot, err := NewSQLiteSlot(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = slot.Close() })

	ctx := context.Background()
	repo := NewRepository(slot)
	p, err := repo.Save(ctx, sampleDraft("Teacher"))
	require.NoError(t, err)

	// A second repository over the same slot sees the profile.
	again := NewRepository(slot).List(ctx)
	require.Len(t, again, 1)
	assert.Equal(t, p.ID, again[0].ID)
}
