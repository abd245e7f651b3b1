// Package store holds the current application state and serializes every
// transition through Dispatch.
package store

import (
	"sync"

	"go.uber.org/zap"

	"github.com/idilsaglam/todo/internal/action"
	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/reducer"
)

// Listener is called after every dispatch with the previous and the new
// snapshot. prev == next means the action changed nothing.
type Listener func(prev, next *model.State)

// Store is an explicitly constructed state holder; pass it to whatever needs it.
type Store struct {
	mu    sync.RWMutex
	state *model.State

	reduce reducer.Func
	log    *zap.Logger

	subsMu sync.Mutex
	subs   []subscription
	nextID int
}

type subscription struct {
	id int
	fn Listener
}

// Option configures a Store.
type Option func(*Store)

// WithReducer swaps the reduction function, mostly for tests.
func WithReducer(fn reducer.Func) Option {
	return func(s *Store) { s.reduce = fn }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.log = l }
}

// New creates a store. A nil initial state means "nothing persisted" and
// yields the defaults: no todos, ShowAll.
func New(initial *model.State, opts ...Option) *Store {
	if initial == nil {
		initial = model.DefaultState()
	}
	s := &Store{state: initial, reduce: reducer.Reduce, log: zap.NewNop()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// State returns the current snapshot. Callers must treat it as read-only.
func (s *Store) State() *model.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch reduces a into a new snapshot, notifies subscribers and returns
// the new snapshot. Reductions are serialized; listeners run outside the lock
// and may dispatch again.
func (s *Store) Dispatch(a action.Action) *model.State {
	s.mu.Lock()
	prev := s.state
	next := s.reduce(prev, a)
	if next == nil {
		next = prev
	}
	s.state = next
	s.mu.Unlock()

	if prev != next {
		s.log.Debug("state changed",
			zap.String("kind", kindOf(a)),
			zap.Int("todos", len(next.Todos)),
			zap.Stringer("filter", next.VisibilityFilter))
	}

	for _, sub := range s.snapshotSubs() {
		sub.fn(prev, next)
	}
	return next
}

// Subscribe registers fn and returns a function that removes it.
// The returned function is safe to call more than once.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscription{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { s.remove(id) })
	}
}

func (s *Store) remove(id int) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for i, sub := range s.subs {
		if sub.id == id {
			s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
			return
		}
	}
}

func (s *Store) snapshotSubs() []subscription {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	out := make([]subscription, len(s.subs))
	copy(out, s.subs)
	return out
}

func kindOf(a action.Action) string {
	if a == nil {
		return "<nil>"
	}
	return string(a.Kind())
}
