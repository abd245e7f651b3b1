package storage

import (
	"context"
	"errors"
	"sync"
)

// ErrInjected is the failure Memory reports when told to fail.
var ErrInjected = errors.New("storage: injected failure")

// Memory is a process-local Backend. Values vanish with the process.
type Memory struct {
	mu         sync.Mutex
	data       map[string]string
	writes     int
	failReads  bool
	failWrites bool
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failReads {
		return "", ErrInjected
	}
	v, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return ErrInjected
	}
	m.data[key] = value
	m.writes++
	return nil
}

func (m *Memory) Close() error { return nil }

// Writes counts successful Set calls.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// FailReads makes Get return ErrInjected until reset.
func (m *Memory) FailReads(fail bool) {
	m.mu.Lock()
	m.failReads = fail
	m.mu.Unlock()
}

// FailWrites makes Set return ErrInjected until reset, like a full quota.
func (m *Memory) FailWrites(fail bool) {
	m.mu.Lock()
	m.failWrites = fail
	m.mu.Unlock()
}
