package jsonstore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/idilsaglam/shelf/internal/model"
)

// Repository is the only mutation path to one store file. Every method is a
// full load (and, for mutations, save) performed under the Guard, so
// concurrent callers in one process are strictly serialized.
type Repository[T model.Record[T]] struct {
	file  *File
	guard *Guard
	log   *slog.Logger
	now   func() time.Time
}

// Option configures a Repository.
type Option func(*options)

type options struct {
	log *slog.Logger
	now func() time.Time
}

// WithLogger sets the logger used to report storage failures.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New returns a repository backed by the JSON file at path.
func New[T model.Record[T]](path string, opts ...Option) *Repository[T] {
	o := options{log: slog.Default(), now: Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Repository[T]{
		file:  NewFile(path),
		guard: NewGuard(),
		log:   o.log.With("path", path),
		now:   o.now,
	}
}

// Now is the default clock: UTC, truncated to milliseconds so timestamps
// survive a JSON round trip unchanged.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func (r *Repository[T]) Path() string { return r.file.Path() }

// Load returns the whole collection. A missing file is an empty store; a
// file that cannot be decoded yields an error wrapping ErrCorrupt.
func (r *Repository[T]) Load(ctx context.Context) ([]T, error) {
	var out []T
	err := r.guard.Do(ctx, func() error {
		var err error
		out, err = r.load()
		return err
	})
	return out, err
}

// Save replaces the whole collection. Ids must be unique; a collection
// with a repeated id is rejected and the file is left as it was.
func (r *Repository[T]) Save(ctx context.Context, items []T) error {
	return r.guard.Do(ctx, func() error {
		return r.save(items)
	})
}

// Add assigns the next id (max existing + 1, or 1), stamps both lifecycle
// timestamps, persists and returns the stored record. Any id already set on
// rec is ignored.
func (r *Repository[T]) Add(ctx context.Context, rec T) (T, error) {
	var added T
	err := r.guard.Do(ctx, func() error {
		items, err := r.load()
		if err != nil {
			return err
		}
		now := r.now()
		added = rec.WithID(nextID(items)).WithTimestamps(now, now)
		return r.save(append(items, added))
	})
	if err != nil {
		var zero T
		return zero, err
	}
	r.log.Debug("record added", "id", added.RecordID())
	return added, nil
}

// Update replaces the stored record with the same id. It reports false, and
// writes nothing, when no such record exists. The stored creation time is
// kept and the update time refreshed.
func (r *Repository[T]) Update(ctx context.Context, rec T) (bool, error) {
	found := false
	err := r.guard.Do(ctx, func() error {
		items, err := r.load()
		if err != nil {
			return err
		}
		for i, it := range items {
			if it.RecordID() == rec.RecordID() {
				items[i] = rec.WithTimestamps(it.CreatedTime(), r.now())
				found = true
				break
			}
		}
		if !found {
			return nil
		}
		return r.save(items)
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

// Delete removes every record with id. It reports false, and writes
// nothing, when none matched.
func (r *Repository[T]) Delete(ctx context.Context, id int) (bool, error) {
	removed := false
	err := r.guard.Do(ctx, func() error {
		items, err := r.load()
		if err != nil {
			return err
		}
		kept := items[:0]
		for _, it := range items {
			if it.RecordID() == id {
				removed = true
				continue
			}
			kept = append(kept, it)
		}
		if !removed {
			return nil
		}
		return r.save(kept)
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

// Get returns the first record with id.
func (r *Repository[T]) Get(ctx context.Context, id int) (T, bool, error) {
	var (
		out   T
		found bool
	)
	err := r.guard.Do(ctx, func() error {
		items, err := r.load()
		if err != nil {
			return err
		}
		for _, it := range items {
			if it.RecordID() == id {
				out, found = it, true
				break
			}
		}
		return nil
	})
	return out, found, err
}

// load and save must only run inside guard.Do.

func (r *Repository[T]) load() ([]T, error) {
	items := []T{}
	if _, err := r.file.Read(&items); err != nil {
		r.log.Warn("load store failed", "op", "load", "error", err)
		return nil, err
	}
	if items == nil {
		// a file containing `null`
		items = []T{}
	}
	return items, nil
}

func (r *Repository[T]) save(items []T) error {
	if items == nil {
		items = []T{}
	}
	if err := uniqueIDs(items); err != nil {
		r.log.Error("save store failed", "op", "save", "error", err)
		return err
	}
	if err := r.file.Write(items); err != nil {
		r.log.Error("save store failed", "op", "save", "error", err)
		return err
	}
	return nil
}

func uniqueIDs[T model.Record[T]](items []T) error {
	seen := make(map[int]struct{}, len(items))
	for _, it := range items {
		id := it.RecordID()
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %d", ErrDuplicateID, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

func nextID[T model.Record[T]](items []T) int {
	maxID := 0
	for _, it := range items {
		if id := it.RecordID(); id > maxID {
			maxID = id
		}
	}
	return maxID + 1
}
