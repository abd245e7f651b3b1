// Package reducer holds the pure state transition function and the
// visibility projection.
package reducer

import (
	"github.com/idilsaglam/todo/internal/action"
	"github.com/idilsaglam/todo/internal/model"
)

// Func is the signature shared by Reduce and any replacement used by a store.
type Func func(*model.State, action.Action) *model.State

// Reduce returns the state that results from applying a to s.
//
// s is never modified. When a changes nothing (unknown action, missing id,
// same filter) the very same pointer is returned, so callers can compare
// snapshots by identity. Unchanged items are shared with the input.
func Reduce(s *model.State, a action.Action) *model.State {
	if s == nil {
		s = model.DefaultState()
	}
	if a == nil {
		return s
	}

	todos, changed := reduceTodos(s.Todos, a)
	filter := reduceFilter(s.VisibilityFilter, a)
	if !changed && filter == s.VisibilityFilter {
		return s
	}
	return &model.State{Todos: todos, VisibilityFilter: filter}
}

// reduceTodos reports changed=false when todos is returned as is.
func reduceTodos(todos []*model.Item, a action.Action) ([]*model.Item, bool) {
	switch a := a.(type) {
	case action.AddTodo:
		out := make([]*model.Item, len(todos), len(todos)+1)
		copy(out, todos)
		return append(out, &model.Item{ID: a.ID, Text: a.Text}), true

	case action.ToggleTodo:
		idx := model.IndexOf(todos, a.ID)
		if idx < 0 {
			return todos, false
		}
		out := make([]*model.Item, len(todos))
		copy(out, todos)
		out[idx] = todos[idx].Toggled()
		return out, true

	case action.RemoveTodo:
		idx := model.IndexOf(todos, a.ID)
		if idx < 0 {
			return todos, false
		}
		out := make([]*model.Item, 0, len(todos)-1)
		out = append(out, todos[:idx]...)
		return append(out, todos[idx+1:]...), true
	}
	return todos, false
}

func reduceFilter(f model.Filter, a action.Action) model.Filter {
	if sf, ok := a.(action.SetVisibilityFilter); ok && sf.Filter.Valid() {
		return sf.Filter
	}
	return f
}
