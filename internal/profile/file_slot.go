package profile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileSlot stores the collection as one JSON file.
// Writes go to a temp file that is renamed into place.
type FileSlot struct {
	fs   afero.Fs
	path string
}

// NewFileSlot creates a slot backed by path on fs.
// Use afero.NewMemMapFs() in tests.
func NewFileSlot(fs afero.Fs, path string) *FileSlot {
	return &FileSlot{fs: fs, path: path}
}

// NewOsFileSlot creates a FileSlot on the real filesystem.
func NewOsFileSlot(dir string) *FileSlot {
	return NewFileSlot(afero.NewOsFs(), filepath.Join(dir, SlotKey+".json"))
}

// Path returns the backing file path.
func (s *FileSlot) Path() string { return s.path }

func (s *FileSlot) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSlotEmpty
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	return data, nil
}

func (s *FileSlot) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0600); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}
