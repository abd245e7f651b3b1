package filekv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todo/internal/storage"
)

func TestOpenRejectsEmptyDir(t *testing.T) {
	_, err := Open("  ")
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s, err := Open(dir)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Get(ctx, "state")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, s.Set(ctx, "state", `{"todos":[]}`))
	require.NoError(t, s.Set(ctx, "state", `{"todos":[{"id":"a","text":"x","completed":false}]}`))

	v, err := s.Get(ctx, "state")
	require.NoError(t, err)
	assert.Equal(t, `{"todos":[{"id":"a","text":"x","completed":false}]}`, v)

	b, err := os.ReadFile(filepath.Join(dir, "state.json"))
	require.NoError(t, err)
	assert.Equal(t, v, string(b))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files are cleaned up")
}

func TestInvalidKeys(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "../escape", "a/b", ".hidden"} {
		assert.Error(t, s.Set(context.Background(), key, "v"), "key %q", key)
		_, err := s.Get(context.Background(), key)
		assert.Error(t, err, "key %q", key)
	}
}
