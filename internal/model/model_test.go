package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilter(t *testing.T) {
	tests := []struct {
		in   string
		want Filter
	}{
		{"", ShowAll},
		{"all", ShowAll},
		{"SHOW_ALL", ShowAll},
		{"Active", ShowActive},
		{"pending", ShowActive},
		{"completed", ShowCompleted},
		{"done", ShowCompleted},
		{"SHOW_COMPLETED", ShowCompleted},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFilter(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseFilter("someday")
	assert.Error(t, err)
}

func TestFilterNextCycles(t *testing.T) {
	assert.Equal(t, ShowActive, ShowAll.Next())
	assert.Equal(t, ShowCompleted, ShowActive.Next())
	assert.Equal(t, ShowAll, ShowCompleted.Next())
	assert.Equal(t, ShowAll, Filter(42).Next())
	assert.False(t, Filter(42).Valid())
	assert.Equal(t, "Filter(42)", Filter(42).String())
}

func TestItemToggledCopies(t *testing.T) {
	it := &Item{ID: "a", Text: "buy milk"}
	tg := it.Toggled()

	assert.False(t, it.Completed)
	assert.True(t, tg.Completed)
	assert.NotSame(t, it, tg)
	assert.Equal(t, it.ID, tg.ID)
}

func TestStateFind(t *testing.T) {
	s := &State{Todos: []*Item{{ID: "a"}, {ID: "b"}}}
	assert.Equal(t, 1, s.Find("b"))
	assert.Equal(t, -1, s.Find("zzz"))
	assert.Empty(t, DefaultState().Todos)
}

func TestIndexOfReturnsFirstMatch(t *testing.T) {
	todos := []*Item{{ID: "a"}, {ID: "dup"}, {ID: "dup"}}
	assert.Equal(t, 1, IndexOf(todos, "dup"))
	assert.Equal(t, -1, IndexOf(nil, "a"))
	assert.Equal(t, IndexOf(todos, "dup"), (&State{Todos: todos}).Find("dup"))
}
