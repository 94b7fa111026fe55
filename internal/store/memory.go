package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Memory is an in-process Store with the same semantics as the redis
// implementation. It backs the test suites and offline development.
type Memory struct {
	mu    sync.Mutex
	nodes map[string]json.RawMessage
	subs  map[int]*memSub
	next  int
}

type memSub struct {
	prefix string
	ch     chan Event
}

func NewMemory() *Memory {
	return &Memory{
		nodes: make(map[string]json.RawMessage),
		subs:  make(map[int]*memSub),
	}
}

func (s *Memory) Get(ctx context.Context, path string, dest any) (bool, error) {
	s.mu.Lock()
	raw, ok := s.nodes[path]
	s.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("store decode %s: %w", path, err)
	}
	return true, nil
}

func (s *Memory) Set(ctx context.Context, path string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("store encode %s: %w", path, err)
	}

	s.mu.Lock()
	s.nodes[path] = raw
	s.notify(Event{Path: path, Type: EventPut})
	s.mu.Unlock()
	return nil
}

func (s *Memory) Update(ctx context.Context, path string, fields map[string]any) error {
	node := map[string]any{}
	if _, err := s.Get(ctx, path, &node); err != nil {
		return err
	}
	for k, v := range fields {
		node[k] = v
	}
	return s.Set(ctx, path, node)
}

func (s *Memory) Remove(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for p := range s.nodes {
		if p == path || strings.HasPrefix(p, path+"/") {
			delete(s.nodes, p)
			s.notify(Event{Path: p, Type: EventRemove})
		}
	}
	return nil
}

func (s *Memory) Push(ctx context.Context, path string, value any) (string, error) {
	key := uuid.NewString()
	if err := s.Set(ctx, Join(path, key), value); err != nil {
		return "", err
	}
	return key, nil
}

func (s *Memory) Children(ctx context.Context, path string) (map[string]json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]json.RawMessage)
	prefix := path + "/"
	for p, raw := range s.nodes {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		rest := p[len(prefix):]
		if strings.Contains(rest, "/") {
			continue
		}
		out[rest] = raw
	}
	return out, nil
}

func (s *Memory) Subscribe(ctx context.Context, path string) (<-chan Event, func(), error) {
	s.mu.Lock()
	id := s.next
	s.next++
	sub := &memSub{prefix: path, ch: make(chan Event, 16)}
	s.subs[id] = sub
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			close(sub.ch)
			s.mu.Unlock()
		})
	}
	return sub.ch, cancel, nil
}

// notify must run with the lock held.
func (s *Memory) notify(ev Event) {
	for _, sub := range s.subs {
		if ev.Path != sub.prefix && !strings.HasPrefix(ev.Path, sub.prefix+"/") {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
		}
	}
}
