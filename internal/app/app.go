// Package app wires configuration, storage, the store and persistence
// together. It is the only place that knows about concrete backends.
package app

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/idilsaglam/todo/internal/config"
	"github.com/idilsaglam/todo/internal/persist"
	"github.com/idilsaglam/todo/internal/storage"
	"github.com/idilsaglam/todo/internal/storage/filekv"
	"github.com/idilsaglam/todo/internal/storage/sqlitekv"
	"github.com/idilsaglam/todo/internal/store"
)

// App owns the store and its persistence for one process run.
type App struct {
	cfg       *config.Config
	log       *zap.Logger
	backend   storage.Backend
	store     *store.Store
	persister *persist.Persister
}

// Option configures Open.
type Option func(*options)

type options struct {
	backend  storage.Backend
	persistO []persist.Option
}

// WithBackend bypasses backend selection from config.
func WithBackend(b storage.Backend) Option {
	return func(o *options) { o.backend = b }
}

// WithPersistOptions forwards options to persist.Attach.
func WithPersistOptions(opts ...persist.Option) Option {
	return func(o *options) { o.persistO = append(o.persistO, opts...) }
}

// Open opens the configured backend and restores persisted todos. A backend
// that cannot be opened is an error; unreadable data is not.
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger, opts ...Option) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var o options
	for _, fn := range opts {
		fn(&o)
	}

	backend := o.backend
	if backend == nil {
		var err error
		backend, err = OpenBackend(ctx, cfg.Storage)
		if err != nil {
			return nil, err
		}
	}

	initial := persist.Load(ctx, backend, log.Named("persist"))
	st := store.New(initial, store.WithLogger(log.Named("store")))
	popts := append([]persist.Option{persist.WithLogger(log.Named("persist"))}, o.persistO...)
	p := persist.Attach(st, backend, popts...)

	log.Debug("app opened",
		zap.String("backend", cfg.Storage.Backend),
		zap.Bool("restored", initial != nil),
		zap.Int("todos", len(st.State().Todos)))

	return &App{cfg: cfg, log: log, backend: backend, store: st, persister: p}, nil
}

// OpenBackend returns the storage backend named by cfg.Backend.
func OpenBackend(ctx context.Context, cfg config.StorageConfig) (storage.Backend, error) {
	switch cfg.Backend {
	case config.BackendFile, "":
		b, err := filekv.Open(cfg.Dir)
		if err != nil {
			return nil, fmt.Errorf("open file storage: %w", err)
		}
		return b, nil
	case config.BackendSQLite:
		b, err := sqlitekv.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite storage: %w", err)
		}
		return b, nil
	case config.BackendMemory:
		return storage.NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}

func (a *App) Store() *store.Store      { return a.store }
func (a *App) Config() *config.Config   { return a.cfg }
func (a *App) Logger() *zap.Logger      { return a.log }
func (a *App) Backend() storage.Backend { return a.backend }

// Close writes any pending state and releases the backend.
func (a *App) Close() error {
	err := a.persister.Close()
	if err != nil {
		err = fmt.Errorf("persist: %w", err)
	}
	return multierr.Append(err, a.backend.Close())
}
