package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"comanda-be/internal/logger"
)

const (
	nodePrefix  = "node:"
	childPrefix = "kids:"
	eventPrefix = "ev:"
)

// Redis implements Store on a redis instance. Each tree node is one
// JSON value; a set per parent tracks child names so subtrees can be
// listed and removed.
type Redis struct {
	rdb *redis.Client
}

func NewRedis(rdb *redis.Client) *Redis {
	return &Redis{rdb: rdb}
}

func (s *Redis) Get(ctx context.Context, path string, dest any) (bool, error) {
	raw, err := s.rdb.Get(ctx, nodePrefix+path).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("store get %s: %w", path, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("store decode %s: %w", path, err)
	}
	return true, nil
}

func (s *Redis) Set(ctx context.Context, path string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("store encode %s: %w", path, err)
	}

	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, nodePrefix+path, raw, 0)
	// link every ancestor, not just the direct parent, so a subtree walk
	// from any prefix reaches nodes created deep in one write
	for dir, name := parent(path); dir != ""; dir, name = parent(dir) {
		pipe.SAdd(ctx, childPrefix+dir, name)
	}
	pipe.Publish(ctx, eventPrefix+path, string(EventPut))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store set %s: %w", path, err)
	}
	return nil
}

func (s *Redis) Update(ctx context.Context, path string, fields map[string]any) error {
	node := map[string]any{}
	if _, err := s.Get(ctx, path, &node); err != nil {
		return err
	}
	for k, v := range fields {
		node[k] = v
	}
	return s.Set(ctx, path, node)
}

func (s *Redis) Remove(ctx context.Context, path string) error {
	names, err := s.rdb.SMembers(ctx, childPrefix+path).Result()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("store remove %s: %w", path, err)
	}
	for _, name := range names {
		if err := s.Remove(ctx, Join(path, name)); err != nil {
			return err
		}
	}

	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, nodePrefix+path, childPrefix+path)
	if dir, name := parent(path); dir != "" {
		pipe.SRem(ctx, childPrefix+dir, name)
	}
	pipe.Publish(ctx, eventPrefix+path, string(EventRemove))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store remove %s: %w", path, err)
	}
	return nil
}

func (s *Redis) Push(ctx context.Context, path string, value any) (string, error) {
	key := uuid.NewString()
	if err := s.Set(ctx, Join(path, key), value); err != nil {
		return "", err
	}
	return key, nil
}

func (s *Redis) Children(ctx context.Context, path string) (map[string]json.RawMessage, error) {
	names, err := s.rdb.SMembers(ctx, childPrefix+path).Result()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("store children %s: %w", path, err)
	}

	out := make(map[string]json.RawMessage, len(names))
	for _, name := range names {
		raw, err := s.rdb.Get(ctx, nodePrefix+Join(path, name)).Bytes()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("store children %s: %w", path, err)
		}
		out[name] = raw
	}
	return out, nil
}

func (s *Redis) Subscribe(ctx context.Context, path string) (<-chan Event, func(), error) {
	pubsub := s.rdb.PSubscribe(ctx, eventPrefix+path, eventPrefix+path+"/*")
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, fmt.Errorf("store subscribe %s: %w", path, err)
	}

	events := make(chan Event, 16)
	go func() {
		defer close(events)
		for msg := range pubsub.Channel() {
			ev := Event{
				Path: msg.Channel[len(eventPrefix):],
				Type: EventType(msg.Payload),
			}
			select {
			case events <- ev:
			default:
				logger.L().Warn("store event dropped, slow subscriber",
					zap.String("path", ev.Path))
			}
		}
	}()

	cancel := func() { _ = pubsub.Close() }
	return events, cancel, nil
}
