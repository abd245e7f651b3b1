// Package action defines the state transitions the store understands.
package action

import (
	"github.com/google/uuid"

	"github.com/idilsaglam/todo/internal/model"
)

// Kind names an action type.
type Kind string

const (
	KindAddTodo             Kind = "ADD_TODO"
	KindToggleTodo          Kind = "TOGGLE_TODO"
	KindRemoveTodo          Kind = "REMOVE_TODO"
	KindSetVisibilityFilter Kind = "SET_VISIBILITY_FILTER"
)

// Action is a request for a state transition. Reducers ignore actions whose
// concrete type they do not know.
type Action interface {
	Kind() Kind
}

// AddTodo appends a new item. ID is assigned by NewAddTodo, never by the reducer,
// so replaying the same action always yields the same item identity.
type AddTodo struct {
	ID   string
	Text string
}

type ToggleTodo struct {
	ID string
}

type RemoveTodo struct {
	ID string
}

type SetVisibilityFilter struct {
	Filter model.Filter
}

func (AddTodo) Kind() Kind             { return KindAddTodo }
func (ToggleTodo) Kind() Kind          { return KindToggleTodo }
func (RemoveTodo) Kind() Kind          { return KindRemoveTodo }
func (SetVisibilityFilter) Kind() Kind { return KindSetVisibilityFilter }

// NewAddTodo builds an AddTodo with a fresh random (v4) id.
func NewAddTodo(text string) AddTodo {
	return AddTodo{ID: uuid.NewString(), Text: text}
}

func NewToggleTodo(id string) ToggleTodo { return ToggleTodo{ID: id} }

func NewRemoveTodo(id string) RemoveTodo { return RemoveTodo{ID: id} }

func NewSetVisibilityFilter(f model.Filter) SetVisibilityFilter {
	return SetVisibilityFilter{Filter: f}
}
