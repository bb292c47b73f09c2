// Tests for the migration runner and the static registry: fresh runs,
// idempotency, partial failure, and rollback ordering.
package migrate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omidnw/room-organizer/internal/store"
	"github.com/omidnw/room-organizer/pkg/types"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.Open(types.Config{DataDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func mustRunner(t *testing.T, s *store.Store, migrations []Migration) *Runner {
	t.Helper()
	r, err := NewRunner(s, migrations)
	require.NoError(t, err)
	return r
}

func TestNewRunnerRejectsUnorderedRegistry(t *testing.T) {
	s := newTestStore(t)

	_, err := NewRunner(s, []Migration{{Version: 2}, {Version: 1}})
	assert.Error(t, err)

	_, err = NewRunner(s, []Migration{{Version: 1}, {Version: 1}})
	assert.Error(t, err)
}

func TestRunAppliesRegistry(t *testing.T) {
	s := newTestStore(t)
	runner := mustRunner(t, s, Registry())

	applied, err := runner.Run()
	require.NoError(t, err)
	assert.Equal(t, len(Registry()), applied)

	version, err := runner.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, 4, version)

	// The seed step built the default trees with correct paths.
	categories := store.NewCategories(s)
	all, err := categories.GetAll()
	require.NoError(t, err)
	assert.Len(t, all, len(defaultCategories))

	byName := map[string]types.Category{}
	for _, cat := range all {
		byName[cat.Name] = cat
	}
	storage := byName["Storage"]
	boxes := byName["Storage Boxes"]
	assert.True(t, storage.IsFolder)
	assert.Nil(t, storage.ParentID)
	require.NotNil(t, boxes.ParentID)
	assert.Equal(t, storage.ID, *boxes.ParentID)
	assert.Equal(t, []string{storage.ID}, boxes.Path)
	assert.Equal(t, 1, boxes.Level)

	found, err := categories.Search("box", nil)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Storage Boxes", found[0].Name)
}

func TestRunIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	runner := mustRunner(t, s, Registry())

	_, err := runner.Run()
	require.NoError(t, err)

	applied, err := runner.Run()
	require.NoError(t, err)
	assert.Equal(t, 0, applied)

	// No duplicate seeding on the second run.
	all, err := store.NewCategories(s).GetAll()
	require.NoError(t, err)
	assert.Len(t, all, len(defaultCategories))
}

func TestRunAbortsOnFailure(t *testing.T) {
	s := newTestStore(t)

	boom := errors.New("boom")
	applied := []int{}
	runner := mustRunner(t, s, []Migration{
		{Version: 1, Name: "ok", Kind: KindData,
			Up: func(s *store.Store) error { applied = append(applied, 1); return nil }},
		{Version: 2, Name: "broken", Kind: KindData,
			Up: func(s *store.Store) error { return boom }},
		{Version: 3, Name: "never", Kind: KindData,
			Up: func(s *store.Store) error { applied = append(applied, 3); return nil }},
	})

	count, err := runner.Run()
	assert.Equal(t, 1, count)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrMigrationFailure)
	assert.ErrorIs(t, err, boom)

	var migErr *types.MigrationError
	require.ErrorAs(t, err, &migErr)
	assert.Equal(t, 2, migErr.Version)
	assert.Equal(t, "broken", migErr.Name)

	// The recorded version stays at the last success and the later step
	// never ran.
	version, err := runner.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, version)
	assert.Equal(t, []int{1}, applied)
}

func TestRollback(t *testing.T) {
	s := newTestStore(t)

	reverted := []int{}
	down := func(v int) func(s *store.Store) error {
		return func(s *store.Store) error { reverted = append(reverted, v); return nil }
	}
	noop := func(s *store.Store) error { return nil }
	runner := mustRunner(t, s, []Migration{
		{Version: 1, Name: "a", Kind: KindData, Up: noop, Down: down(1)},
		{Version: 2, Name: "b", Kind: KindData, Up: noop, Down: down(2)},
		{Version: 3, Name: "c", Kind: KindData, Up: noop, Down: down(3)},
	})

	_, err := runner.Run()
	require.NoError(t, err)

	t.Run("no-op when target is at or above current", func(t *testing.T) {
		require.NoError(t, runner.Rollback(3))
		require.NoError(t, runner.Rollback(5))
		assert.Empty(t, reverted)
	})

	t.Run("reverts down to the target in descending order", func(t *testing.T) {
		require.NoError(t, runner.Rollback(1))
		assert.Equal(t, []int{3, 2}, reverted)

		version, err := runner.CurrentVersion()
		require.NoError(t, err)
		assert.Equal(t, 1, version)
	})
}

func TestRollbackRegistrySeed(t *testing.T) {
	s := newTestStore(t)
	runner := mustRunner(t, s, Registry())

	_, err := runner.Run()
	require.NoError(t, err)

	// Rolling back below the seed step clears the default categories.
	require.NoError(t, runner.Rollback(1))

	version, err := runner.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, version)

	all, err := store.NewCategories(s).GetAll()
	require.NoError(t, err)
	assert.Empty(t, all)

	// Running again reapplies everything above the target.
	applied, err := runner.Run()
	require.NoError(t, err)
	assert.Equal(t, 3, applied)
}
