package reducer

import "github.com/idilsaglam/todo/internal/model"

// VisibleTodos selects the items shown for filter f, preserving order.
// ShowAll (and any unknown filter) returns todos itself.
func VisibleTodos(todos []*model.Item, f model.Filter) []*model.Item {
	switch f {
	case model.ShowActive:
		return keep(todos, func(it *model.Item) bool { return !it.Completed })
	case model.ShowCompleted:
		return keep(todos, func(it *model.Item) bool { return it.Completed })
	}
	return todos
}

// Visible is VisibleTodos applied to a whole snapshot.
func Visible(s *model.State) []*model.Item {
	if s == nil {
		return nil
	}
	return VisibleTodos(s.Todos, s.VisibilityFilter)
}

// Counts returns how many items are still active and how many are completed.
func Counts(todos []*model.Item) (active, completed int) {
	for _, it := range todos {
		if it.Completed {
			completed++
		} else {
			active++
		}
	}
	return
}

func keep(todos []*model.Item, pred func(*model.Item) bool) []*model.Item {
	out := make([]*model.Item, 0, len(todos))
	for _, it := range todos {
		if pred(it) {
			out = append(out, it)
		}
	}
	return out
}
