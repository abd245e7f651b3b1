package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todo/internal/action"
	"github.com/idilsaglam/todo/internal/model"
)

func TestNewDefaultsWhenNothingPersisted(t *testing.T) {
	s := New(nil)
	st := s.State()
	require.NotNil(t, st)
	assert.Empty(t, st.Todos)
	assert.Equal(t, model.ShowAll, st.VisibilityFilter)
}

func TestNewKeepsInitialState(t *testing.T) {
	initial := &model.State{Todos: []*model.Item{{ID: "a", Text: "x"}}}
	s := New(initial)
	assert.Same(t, initial, s.State())
}

func TestDispatchUpdatesStateAndNotifies(t *testing.T) {
	s := New(nil)
	var calls []struct{ prev, next *model.State }
	s.Subscribe(func(prev, next *model.State) {
		calls = append(calls, struct{ prev, next *model.State }{prev, next})
	})

	before := s.State()
	add := action.NewAddTodo("buy milk")
	after := s.Dispatch(add)

	assert.Same(t, after, s.State())
	require.Len(t, calls, 1)
	assert.Same(t, before, calls[0].prev)
	assert.Same(t, after, calls[0].next)

	// a no-op still notifies, with identical snapshots
	s.Dispatch(action.NewRemoveTodo("missing"))
	require.Len(t, calls, 2)
	assert.Same(t, calls[1].prev, calls[1].next)
}

func TestSubscribersRunInOrderAndUnsubscribe(t *testing.T) {
	s := New(nil)
	var order []string
	unsubA := s.Subscribe(func(_, _ *model.State) { order = append(order, "a") })
	s.Subscribe(func(_, _ *model.State) { order = append(order, "b") })

	s.Dispatch(action.NewAddTodo("x"))
	assert.Equal(t, []string{"a", "b"}, order)

	unsubA()
	unsubA()
	order = nil
	s.Dispatch(action.NewAddTodo("y"))
	assert.Equal(t, []string{"b"}, order)
}

func TestListenerMayDispatch(t *testing.T) {
	s := New(nil)
	var once sync.Once
	s.Subscribe(func(_, next *model.State) {
		if len(next.Todos) == 1 {
			once.Do(func() { s.Dispatch(action.NewToggleTodo(next.Todos[0].ID)) })
		}
	})

	s.Dispatch(action.NewAddTodo("x"))
	st := s.State()
	require.Len(t, st.Todos, 1)
	assert.True(t, st.Todos[0].Completed)
}

func TestWithReducer(t *testing.T) {
	fixed := &model.State{VisibilityFilter: model.ShowCompleted}
	s := New(nil, WithReducer(func(*model.State, action.Action) *model.State { return fixed }))
	assert.Same(t, fixed, s.Dispatch(action.NewAddTodo("ignored")))
}

func TestConcurrentDispatchIsSerialized(t *testing.T) {
	s := New(nil)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Dispatch(action.NewAddTodo("x"))
		}()
	}
	wg.Wait()
	assert.Len(t, s.State().Todos, 50)
}
