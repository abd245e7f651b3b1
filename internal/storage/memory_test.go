package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, err := m.Get(ctx, "state")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Set(ctx, "state", "v1"))
	require.NoError(t, m.Set(ctx, "state", "v2"))
	v, err := m.Get(ctx, "state")
	require.NoError(t, err)
	assert.Equal(t, "v2", v)
	assert.Equal(t, 2, m.Writes())

	m.FailWrites(true)
	assert.ErrorIs(t, m.Set(ctx, "state", "v3"), ErrInjected)
	m.FailReads(true)
	_, err = m.Get(ctx, "state")
	assert.ErrorIs(t, err, ErrInjected)

	m.FailReads(false)
	v, err = m.Get(ctx, "state")
	require.NoError(t, err)
	assert.Equal(t, "v2", v)
	assert.NoError(t, m.Close())
}
