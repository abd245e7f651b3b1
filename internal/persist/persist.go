// Package persist bridges the store to a durable key-value backend.
//
// The write path is best effort: every state change schedules a throttled
// write of the todos under StateKey, and failures are logged and dropped.
// The read path runs once at startup; any problem with the stored value is
// treated exactly like "nothing stored".
package persist

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/storage"
	"github.com/idilsaglam/todo/internal/store"
	"github.com/idilsaglam/todo/internal/throttle"
)

// StateKey is the single key the todos live under.
const StateKey = "state"

// DefaultWindow bounds write frequency during bursts of changes.
const DefaultWindow = time.Second

// Load returns the persisted state, or nil when there is none usable.
func Load(ctx context.Context, kv storage.KV, log *zap.Logger) *model.State {
	if log == nil {
		log = zap.NewNop()
	}
	raw, err := kv.Get(ctx, StateKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Debug("no persisted state")
		} else {
			log.Warn("read persisted state", zap.Error(err))
		}
		return nil
	}
	st, err := Decode([]byte(raw))
	if err != nil {
		log.Warn("discarding malformed persisted state", zap.Error(err))
		return nil
	}
	log.Debug("loaded persisted state", zap.Int("todos", len(st.Todos)))
	return st
}

// Save writes the todos of s under StateKey.
func Save(ctx context.Context, kv storage.KV, s *model.State) error {
	b, err := Encode(s)
	if err != nil {
		return err
	}
	return kv.Set(ctx, StateKey, string(b))
}

// Persister writes the store's state through to a backend.
type Persister struct {
	store *store.Store
	kv    storage.KV
	log   *zap.Logger

	window time.Duration
	clock  clockwork.Clock

	th    *throttle.Throttle
	unsub func()

	mu      sync.Mutex
	lastErr error
}

// Option configures a Persister.
type Option func(*Persister)

func WithWindow(d time.Duration) Option {
	return func(p *Persister) { p.window = d }
}

func WithClock(c clockwork.Clock) Option {
	return func(p *Persister) { p.clock = c }
}

func WithLogger(l *zap.Logger) Option {
	return func(p *Persister) { p.log = l }
}

// Attach subscribes a Persister to st. Call Close before exiting so the
// last state reaches the backend.
func Attach(st *store.Store, kv storage.KV, opts ...Option) *Persister {
	p := &Persister{
		store:  st,
		kv:     kv,
		log:    zap.NewNop(),
		window: DefaultWindow,
		clock:  clockwork.NewRealClock(),
	}
	for _, o := range opts {
		o(p)
	}
	p.th = throttle.New(p.window, p.write, throttle.WithClock(p.clock))
	p.unsub = st.Subscribe(func(prev, next *model.State) {
		if todosChanged(prev, next) {
			p.th.Trigger()
		}
	})
	return p
}

// todosChanged relies on the reducer sharing the todos slice between
// snapshots that only differ in their filter.
func todosChanged(prev, next *model.State) bool {
	if prev == next {
		return false
	}
	a, b := prev.Todos, next.Todos
	if len(a) != len(b) {
		return true
	}
	return len(a) > 0 && &a[0] != &b[0]
}

// write always saves the latest snapshot, not the one that triggered it.
func (p *Persister) write() {
	s := p.store.State()
	err := Save(context.Background(), p.kv, s)

	p.mu.Lock()
	p.lastErr = err
	p.mu.Unlock()

	if err != nil {
		p.log.Warn("persist state", zap.Error(err))
		return
	}
	p.log.Debug("persisted state", zap.Int("todos", len(s.Todos)))
}

// Err returns the error of the most recent write, nil if it succeeded.
func (p *Persister) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

// Pending reports whether a write is scheduled.
func (p *Persister) Pending() bool { return p.th.Pending() }

// Flush performs a scheduled write now.
func (p *Persister) Flush() { p.th.Flush() }

// Close detaches from the store, flushes after any write already running
// and stops the throttle. It returns the error of the last write so callers
// can report data that never made it to the backend.
func (p *Persister) Close() error {
	p.unsub()
	p.th.Flush()
	p.th.Stop()
	return p.Err()
}
