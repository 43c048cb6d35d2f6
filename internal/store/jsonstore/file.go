package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// File reads and atomically replaces a single JSON document on disk. It
// does no locking of its own; callers hold a Guard.
type File struct {
	path string
	perm os.FileMode

	// rename performs the final replace step. os.Rename is atomic on POSIX
	// filesystems when source and target share a directory.
	rename func(oldpath, newpath string) error
}

// NewFile returns a File for path.
func NewFile(path string) *File {
	return &File{path: path, perm: 0o644, rename: os.Rename}
}

func (f *File) Path() string { return f.path }

// Read decodes the file into v. It reports false with a nil error when the
// file does not exist.
func (f *File) Read(v any) (bool, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read file: %w", err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return true, fmt.Errorf("%w: %s: %w", ErrCorrupt, f.path, err)
	}
	return true, nil
}

// Write encodes v and replaces the file with it. The target is untouched
// until the temp file has been fully written, synced and closed.
func (f *File) Write(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	b = append(b, '\n')

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	tmp := f.tempPath()
	if err := writeSynced(tmp, b, f.perm); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := f.rename(tmp, f.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace file: %w", err)
	}
	return nil
}

// tempPath names a sibling of the target so the rename never crosses a
// filesystem boundary.
func (f *File) tempPath() string {
	return fmt.Sprintf("%s.%s.tmp", f.path, uuid.NewString())
}

func writeSynced(path string, b []byte, perm os.FileMode) error {
	fh, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := fh.Write(b); err != nil {
		fh.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := fh.Sync(); err != nil {
		fh.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := fh.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	return nil
}
