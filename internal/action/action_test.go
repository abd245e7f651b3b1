package action

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todo/internal/model"
)

func TestNewAddTodoAssignsUniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		a := NewAddTodo("x")
		require.False(t, seen[a.ID], "duplicate id %s", a.ID)
		seen[a.ID] = true

		u, err := uuid.Parse(a.ID)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(4), u.Version())
	}
}

func TestKinds(t *testing.T) {
	tests := []struct {
		a    Action
		want Kind
	}{
		{NewAddTodo("a"), KindAddTodo},
		{NewToggleTodo("id"), KindToggleTodo},
		{NewRemoveTodo("id"), KindRemoveTodo},
		{NewSetVisibilityFilter(model.ShowCompleted), KindSetVisibilityFilter},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.a.Kind())
	}
}
