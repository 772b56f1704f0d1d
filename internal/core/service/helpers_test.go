package service_test

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/niksmo/storefront/internal/core/domain"
)

// memBlobs is an in-memory stand-in for the blob storage adapter.
type memBlobs struct {
	mu sync.Mutex
	m  map[string][]byte
}

func newMemBlobs() *memBlobs {
	return &memBlobs{m: make(map[string][]byte)}
}

func (b *memBlobs) Load(_ context.Context, key string, v any) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.m[key]
	if !ok {
		return false
	}
	return json.Unmarshal(data, v) == nil
}

func (b *memBlobs) Save(_ context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.m[key] = data
	return nil
}

func (b *memBlobs) corrupt(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.m[key] = []byte("{not json")
}

// recordingNotifier captures posted notices.
type recordingNotifier struct {
	mu      sync.Mutex
	notices []domain.Notice
}

func (n *recordingNotifier) Notify(kind domain.NoticeKind, text string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, domain.Notice{Kind: kind, Text: text})
}

func (n *recordingNotifier) all() []domain.Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	ns := make([]domain.Notice, len(n.notices))
	copy(ns, n.notices)
	return ns
}

func (n *recordingNotifier) lastKind() domain.NoticeKind {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.notices) == 0 {
		return ""
	}
	return n.notices[len(n.notices)-1].Kind
}

// recordingEmitter captures emitted client events.
type recordingEmitter struct {
	mu     sync.Mutex
	events []domain.ClientEvent
}

func (e *recordingEmitter) EmitEvent(_ context.Context, ev domain.ClientEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, ev)
	return nil
}

func (e *recordingEmitter) all() []domain.ClientEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	evs := make([]domain.ClientEvent, len(e.events))
	copy(evs, e.events)
	return evs
}

// refreshCounter counts view refresh callbacks.
type refreshCounter struct {
	mu sync.Mutex
	n  int
}

func (c *refreshCounter) fn() func() {
	return func() {
		c.mu.Lock()
		c.n++
		c.mu.Unlock()
	}
}

func (c *refreshCounter) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}
