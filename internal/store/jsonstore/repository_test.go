package jsonstore_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/idilsaglam/shelf/internal/model"
	"github.com/idilsaglam/shelf/internal/store/jsonstore"
)

func newTaskRepo(t *testing.T) (*jsonstore.Repository[model.Task], string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.json")
	return jsonstore.New[model.Task](path), path
}

func task(title string) model.Task {
	return model.Task{Title: title, Priority: model.PriorityMedium, IsCompleted: model.Pending}
}

func ids[T model.Record[T]](items []T) []int {
	out := make([]int, 0, len(items))
	for _, it := range items {
		out = append(out, it.RecordID())
	}
	return out
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	repo, path := newTaskRepo(t)

	items, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "load must not create the file")
}

func TestAddAssignsSequentialIDs(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTaskRepo(t)

	for want := 1; want <= 5; want++ {
		rec := task("t").WithID(99) // client ids are ignored
		got, err := repo.Add(ctx, rec)
		require.NoError(t, err)
		assert.Equal(t, want, got.ID)
		assert.False(t, got.CreatedAt.IsZero())
		assert.Equal(t, got.CreatedAt, got.UpdatedAt)

		if want == 3 {
			ok, err := repo.Update(ctx, got.WithID(2))
			require.NoError(t, err)
			require.True(t, ok)
		}
	}

	items, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(items))
}

func TestEndToEndIDsAreNeverReused(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTaskRepo(t)

	a, err := repo.Add(ctx, task("A"))
	require.NoError(t, err)
	assert.Equal(t, 1, a.ID)

	b, err := repo.Add(ctx, task("B"))
	require.NoError(t, err)
	assert.Equal(t, 2, b.ID)

	ok, err := repo.Delete(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	c, err := repo.Add(ctx, task("C"))
	require.NoError(t, err)
	assert.Equal(t, 3, c.ID)

	items, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, ids(items))
	assert.Equal(t, "B", items[0].Title)
	assert.Equal(t, "C", items[1].Title)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "library.json")
	repo := jsonstore.New[model.LibraryItem](path)

	stamp := time.Date(2024, 6, 1, 12, 0, 0, 123_000_000, time.UTC)
	want := []model.LibraryItem{
		{ID: 4, Title: "Dune", Author: "Frank Herbert", Genre: "Sci-Fi", PublicationYear: 1965, IsRead: model.Read, CreatedAt: stamp, UpdatedAt: stamp},
		{ID: 2, Title: "Hamlet", Author: "Shakespeare", Genre: "Drama", PublicationYear: 1603, IsRead: model.Unread, CreatedAt: stamp, UpdatedAt: stamp.Add(time.Hour)},
	}
	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got, "insertion order and every field must survive")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"isRead": "unread"`)
	assert.Contains(t, string(raw), `"publicationYear": 1965`)
}

func TestTaskRoundTripWithDueDate(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTaskRepo(t)

	due := time.Date(2024, 12, 24, 0, 0, 0, 0, time.UTC)
	in := task("Wrap presents")
	in.DueDate = &due
	in.Priority = model.PriorityHigh

	added, err := repo.Add(ctx, in)
	require.NoError(t, err)

	got, ok, err := repo.Get(ctx, added.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, added, got)
	require.NotNil(t, got.DueDate)
	assert.True(t, due.Equal(*got.DueDate))
}

func TestGetUnknownID(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTaskRepo(t)
	_, err := repo.Add(ctx, task("only"))
	require.NoError(t, err)

	_, ok, err := repo.Get(ctx, 42)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpdateRefreshesUpdatedAtAndKeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	path := filepath.Join(t.TempDir(), "tasks.json")
	repo := jsonstore.New[model.Task](path, jsonstore.WithClock(func() time.Time { return clock }))

	added, err := repo.Add(ctx, task("draft"))
	require.NoError(t, err)

	clock = clock.Add(48 * time.Hour)
	edit := added
	edit.Title = "final"
	edit.CreatedAt = time.Time{} // callers cannot rewrite creation time
	ok, err := repo.Update(ctx, edit)
	require.NoError(t, err)
	require.True(t, ok)

	got, _, err := repo.Get(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, "final", got.Title)
	assert.Equal(t, added.CreatedAt, got.CreatedAt)
	assert.Equal(t, clock, got.UpdatedAt)
}

func TestUpdateUnknownIDWritesNothing(t *testing.T) {
	ctx := context.Background()
	repo, path := newTaskRepo(t)
	_, err := repo.Add(ctx, task("keep"))
	require.NoError(t, err)

	before, err := os.ReadFile(path)
	require.NoError(t, err)
	old := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(path, old, old))

	ok, err := repo.Update(ctx, task("ghost").WithID(9))
	require.NoError(t, err)
	assert.False(t, ok)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	st, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, st.ModTime().Equal(old), "file must not be rewritten")
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repo, path := newTaskRepo(t)
	for _, title := range []string{"a", "b", "c"} {
		_, err := repo.Add(ctx, task(title))
		require.NoError(t, err)
	}

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	ok, err := repo.Delete(ctx, 10)
	require.NoError(t, err)
	assert.False(t, ok)
	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	ok, err = repo.Delete(ctx, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	items, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, ids(items))
	assert.Equal(t, "a", items[0].Title)
	assert.Equal(t, "c", items[1].Title)
}

func TestCorruptFileIsReportedAndNeverOverwritten(t *testing.T) {
	ctx := context.Background()
	repo, path := newTaskRepo(t)
	garbage := []byte(`[{"id": 1, "title": "half`)
	require.NoError(t, os.WriteFile(path, garbage, 0o644))

	_, err := repo.Load(ctx)
	require.ErrorIs(t, err, jsonstore.ErrCorrupt)

	_, err = repo.Add(ctx, task("new"))
	require.ErrorIs(t, err, jsonstore.ErrCorrupt)
	_, err = repo.Delete(ctx, 1)
	require.ErrorIs(t, err, jsonstore.ErrCorrupt)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, garbage, got)
}

func TestUnknownEnumNameIsCorruption(t *testing.T) {
	repo, path := newTaskRepo(t)
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":1,"priority":"urgent","isCompleted":"pending"}]`), 0o644))

	_, err := repo.Load(context.Background())
	assert.ErrorIs(t, err, jsonstore.ErrCorrupt)
	assert.ErrorIs(t, err, model.ErrInvalidEnum)
}

func TestSaveRejectsInvalidRecordAndKeepsFile(t *testing.T) {
	ctx := context.Background()
	repo, path := newTaskRepo(t)
	_, err := repo.Add(ctx, task("ok"))
	require.NoError(t, err)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	err = repo.Save(ctx, []model.Task{{ID: 1, Title: "no enums"}})
	require.ErrorIs(t, err, model.ErrInvalidEnum)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assertNoTempFiles(t, filepath.Dir(path))
}

func TestSaveRejectsDuplicateIDs(t *testing.T) {
	ctx := context.Background()
	repo, path := newTaskRepo(t)
	_, err := repo.Add(ctx, task("first"))
	require.NoError(t, err)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	err = repo.Save(ctx, []model.Task{task("a").WithID(4), task("b").WithID(7), task("c").WithID(4)})
	require.ErrorIs(t, err, jsonstore.ErrDuplicateID)
	assert.Contains(t, err.Error(), "4")

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assertNoTempFiles(t, filepath.Dir(path))
}

// Two read-modify-write cycles that lock only around each I/O call can both
// read the old state and then both write, losing one update and handing out
// the same id twice.
func TestLockPerIOCallLosesUpdates(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTaskRepo(t)

	var bothLoaded sync.WaitGroup
	bothLoaded.Add(2)
	assigned := make([]int, 2)

	var g errgroup.Group
	for i := range 2 {
		g.Go(func() error {
			items, err := repo.Load(ctx)
			bothLoaded.Done()
			if err != nil {
				return err
			}
			bothLoaded.Wait()

			id := 1
			for _, it := range items {
				id = max(id, it.ID+1)
			}
			assigned[i] = id
			return repo.Save(ctx, append(items, task("racer").WithID(id)))
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, assigned[0], assigned[1], "both writers computed the same id")
	items, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1, "one of the two appends was lost")
}

func TestConcurrentAddsAreSerialized(t *testing.T) {
	ctx := context.Background()
	repo, path := newTaskRepo(t)
	const n = 40

	added := make([]int, n)
	g, gctx := errgroup.WithContext(ctx)
	for i := range n {
		g.Go(func() error {
			rec, err := repo.Add(gctx, task("worker"))
			added[i] = rec.ID
			return err
		})
	}
	require.NoError(t, g.Wait())

	want := make([]int, n)
	for i := range want {
		want[i] = i + 1
	}
	slices.Sort(added)
	assert.Equal(t, want, added, "ids are unique and gap free")

	items, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, items, n)
	assertNoTempFiles(t, filepath.Dir(path))
}

func TestCanceledContextDoesNotTouchStore(t *testing.T) {
	repo, path := newTaskRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// The permit is free, so Acquire may still succeed; either way nothing
	// partial may be left behind.
	_, _ = repo.Add(ctx, task("maybe"))
	assertNoTempFiles(t, filepath.Dir(path))
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}
