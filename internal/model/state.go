package model

// State is an immutable snapshot of the application.
// Snapshots share unchanged *Item values; never modify a State or its items
// in place, go through the reducer instead.
type State struct {
	Todos            []*Item
	VisibilityFilter Filter
}

// DefaultState is the state used when nothing was persisted.
func DefaultState() *State {
	return &State{Todos: []*Item{}, VisibilityFilter: ShowAll}
}

// Find returns the index of the first item with the given id, or -1.
func (s *State) Find(id string) int { return IndexOf(s.Todos, id) }

// IndexOf returns the index of the first item in todos with the given id,
// or -1. Removal and toggling act on this first match.
func IndexOf(todos []*Item, id string) int {
	for i, it := range todos {
		if it.ID == id {
			return i
		}
	}
	return -1
}
