package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todo/internal/action"
	"github.com/idilsaglam/todo/internal/config"
	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/persist"
	"github.com/idilsaglam/todo/internal/storage"
)

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Storage.Backend = backend
	cfg.Storage.Dir = dir
	cfg.Storage.SQLitePath = filepath.Join(dir, "tada.db")
	return cfg
}

func TestStateSurvivesRestart(t *testing.T) {
	for _, backend := range []string{config.BackendFile, config.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			cfg := testConfig(t, backend)

			a, err := Open(ctx, cfg, nil)
			require.NoError(t, err)
			add := action.NewAddTodo("buy milk")
			a.Store().Dispatch(add)
			a.Store().Dispatch(action.NewToggleTodo(add.ID))
			a.Store().Dispatch(action.NewSetVisibilityFilter(model.ShowCompleted))
			require.NoError(t, a.Close())

			a, err = Open(ctx, cfg, nil)
			require.NoError(t, err)
			defer a.Close()

			st := a.Store().State()
			require.Len(t, st.Todos, 1)
			assert.Equal(t, add.ID, st.Todos[0].ID)
			assert.True(t, st.Todos[0].Completed)
			assert.Equal(t, model.ShowAll, st.VisibilityFilter)
		})
	}
}

func TestOpenWithCorruptDataStartsEmpty(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	require.NoError(t, mem.Set(ctx, persist.StateKey, "{oops"))

	a, err := Open(ctx, testConfig(t, config.BackendMemory), nil, WithBackend(mem))
	require.NoError(t, err)
	assert.Empty(t, a.Store().State().Todos)

	// nothing dispatched, so the stored value is left alone
	require.NoError(t, a.Close())
	v, err := mem.Get(ctx, persist.StateKey)
	require.NoError(t, err)
	assert.Equal(t, "{oops", v)
}

func TestCloseReportsFailedWrites(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	a, err := Open(ctx, testConfig(t, config.BackendMemory), nil, WithBackend(mem))
	require.NoError(t, err)

	mem.FailWrites(true)
	a.Store().Dispatch(action.NewAddTodo("x"))
	err = a.Close()
	require.Error(t, err)
	assert.True(t, errors.Is(err, storage.ErrInjected))
}

func TestOpenBackend(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, config.BackendFile)

	for _, name := range []string{config.BackendFile, config.BackendSQLite, config.BackendMemory} {
		cfg.Storage.Backend = name
		b, err := OpenBackend(ctx, cfg.Storage)
		require.NoError(t, err, name)
		require.NoError(t, b.Close(), name)
	}

	cfg.Storage.Backend = "cloud"
	_, err := OpenBackend(ctx, cfg.Storage)
	assert.Error(t, err)
}
