package model

import (
	"fmt"
	"strings"
)

// Filter selects which todos are visible.
type Filter int

const (
	ShowAll Filter = iota
	ShowActive
	ShowCompleted
)

// Filters lists every filter in display order.
var Filters = []Filter{ShowAll, ShowActive, ShowCompleted}

func (f Filter) String() string {
	switch f {
	case ShowAll:
		return "SHOW_ALL"
	case ShowActive:
		return "SHOW_ACTIVE"
	case ShowCompleted:
		return "SHOW_COMPLETED"
	}
	return fmt.Sprintf("Filter(%d)", int(f))
}

// Label is the short lowercase name used by the CLI and the TUI tabs.
func (f Filter) Label() string {
	switch f {
	case ShowActive:
		return "active"
	case ShowCompleted:
		return "completed"
	}
	return "all"
}

// Valid reports whether f is one of the enumerated filters.
func (f Filter) Valid() bool {
	return f >= ShowAll && f <= ShowCompleted
}

// Next cycles All -> Active -> Completed -> All.
func (f Filter) Next() Filter {
	if !f.Valid() {
		return ShowAll
	}
	return (f + 1) % Filter(len(Filters))
}

// ParseFilter accepts SHOW_* names and the short forms all/active/completed.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all", "show_all":
		return ShowAll, nil
	case "active", "pending", "show_active":
		return ShowActive, nil
	case "completed", "done", "show_completed":
		return ShowCompleted, nil
	}
	return ShowAll, fmt.Errorf("unknown filter %q (want all, active or completed)", s)
}
