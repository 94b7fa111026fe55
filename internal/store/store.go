// Package store exposes the remote key-tree store the order engine
// persists into. Records live under hierarchical slash-separated paths
// (tables/{id}/currentOrder/{orderId}) and writers get last-write-wins
// semantics; there is no compare-and-swap.
package store

import (
	"context"
	"encoding/json"
	"strings"
)

type EventType string

const (
	EventPut    EventType = "put"
	EventRemove EventType = "remove"
)

// Event is one change notification for a node under a subscribed path.
type Event struct {
	Path string
	Type EventType
}

type Store interface {
	// Get unmarshals the node at path into dest. The boolean reports
	// whether the node existed.
	Get(ctx context.Context, path string, dest any) (bool, error)

	// Set replaces the node at path.
	Set(ctx context.Context, path string, value any) error

	// Update merges fields into the node at path. Concurrent updates
	// resolve last-write-wins at the granularity of one call.
	Update(ctx context.Context, path string, fields map[string]any) error

	// Remove deletes the node at path and everything under it.
	Remove(ctx context.Context, path string) error

	// Push stores value under a fresh generated child key of path and
	// returns that key.
	Push(ctx context.Context, path string, value any) (string, error)

	// Children returns the raw child nodes of path keyed by child name.
	Children(ctx context.Context, path string) (map[string]json.RawMessage, error)

	// Subscribe streams change events for path and its descendants until
	// the returned cancel func is called.
	Subscribe(ctx context.Context, path string) (<-chan Event, func(), error)
}

// Join builds a store path from segments.
func Join(parts ...string) string {
	return strings.Join(parts, "/")
}

func parent(path string) (string, string) {
	i := strings.LastIndex(path, "/")
	if i < 0 {
		return "", path
	}
	return path[:i], path[i+1:]
}
