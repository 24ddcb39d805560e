// Package storetest provides an in-memory store.Persistence for tests.
package storetest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"tableflip.dev/todo/pkg/entry"
	"tableflip.dev/todo/pkg/store"
)

// Memory keeps entries in a map keyed by id. Watch returns a channel fed by
// Notify.
type Memory struct {
	mu      sync.Mutex
	counter int
	entries map[string]*entry.Entry
	watch   chan store.Event
}

var _ store.Persistence = (*Memory)(nil)

// NewMemory seeds a Memory with copies of entries, assigning ids and creation
// times where missing.
func NewMemory(entries ...*entry.Entry) *Memory {
	m := &Memory{entries: make(map[string]*entry.Entry)}
	for _, e := range entries {
		if e == nil {
			continue
		}
		m.prepare(e)
		m.entries[e.ID] = e.Clone()
	}
	return m
}

func (m *Memory) prepare(e *entry.Entry) {
	if e.ID == "" {
		m.counter++
		e.ID = fmt.Sprintf("id-%03d", m.counter)
	}
	if e.Created.IsZero() {
		e.Created = entry.Timestamp{Time: time.Date(2026, 1, 1, 0, 0, m.counter, 0, time.UTC)}
	}
}

func (m *Memory) ListAll(_ context.Context) []*entry.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entry.Entry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *Memory) Get(_ context.Context, id string) (*entry.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[strings.TrimSpace(id)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	return e.Clone(), nil
}

func (m *Memory) Store(e *entry.Entry) error {
	if e == nil {
		return errors.New("nil entry")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prepare(e)
	m.entries[e.ID] = e.Clone()
	return nil
}

func (m *Memory) Delete(e *entry.Entry) error {
	if e == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[e.ID]; !ok {
		return fmt.Errorf("%w: %s", store.ErrNotFound, e.ID)
	}
	delete(m.entries, e.ID)
	return nil
}

// Watch returns the channel Notify writes to. Only one watcher is supported.
func (m *Memory) Watch(ctx context.Context) (<-chan store.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.watch == nil {
		m.watch = make(chan store.Event, 16)
	}
	return m.watch, nil
}

// Notify pushes an event to the watcher, if any.
func (m *Memory) Notify(ev store.Event) {
	m.mu.Lock()
	ch := m.watch
	m.mu.Unlock()
	if ch != nil {
		ch <- ev
	}
}
