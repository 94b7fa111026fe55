package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoin(t *testing.T) {
	assert.Equal(t, "tables/5/currentOrder", Join("tables", "5", "currentOrder"))
	assert.Equal(t, "tables", Join("tables"))
}

func TestMemory_SetGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	t.Run("Missing node", func(t *testing.T) {
		var out map[string]any
		ok, err := s.Get(ctx, "tables/1", &out)
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Round trip", func(t *testing.T) {
		err := s.Set(ctx, "tables/1", map[string]any{"status": "occupied"})
		assert.NoError(t, err)

		var out map[string]any
		ok, err := s.Get(ctx, "tables/1", &out)
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "occupied", out["status"])
	})
}

func TestMemory_Update(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	assert.NoError(t, s.Set(ctx, "tables/2", map[string]any{"status": "available", "type": "interna"}))
	assert.NoError(t, s.Update(ctx, "tables/2", map[string]any{"status": "occupied"}))

	var out map[string]any
	ok, err := s.Get(ctx, "tables/2", &out)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "occupied", out["status"])
	assert.Equal(t, "interna", out["type"], "untouched fields survive a merge")
}

func TestMemory_PushAndChildren(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	key1, err := s.Push(ctx, "tables/3/ordersHistory", map[string]any{"total": 10.0})
	assert.NoError(t, err)
	key2, err := s.Push(ctx, "tables/3/ordersHistory", map[string]any{"total": 20.0})
	assert.NoError(t, err)
	assert.NotEqual(t, key1, key2)

	kids, err := s.Children(ctx, "tables/3/ordersHistory")
	assert.NoError(t, err)
	assert.Len(t, kids, 2)
	assert.Contains(t, kids, key1)
	assert.Contains(t, kids, key2)

	t.Run("Nested nodes are not direct children", func(t *testing.T) {
		assert.NoError(t, s.Set(ctx, "tables/3/ordersHistory/"+key1+"/deep", "x"))

		kids, err := s.Children(ctx, "tables/3/ordersHistory")
		assert.NoError(t, err)
		assert.Len(t, kids, 2)
	})
}

func TestMemory_Remove(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	assert.NoError(t, s.Set(ctx, "tables/4/currentOrder/o1", map[string]any{"status": "open"}))
	assert.NoError(t, s.Set(ctx, "tables/4/currentOrder/o1/extra", "x"))
	assert.NoError(t, s.Remove(ctx, "tables/4/currentOrder/o1"))

	var out any
	ok, err := s.Get(ctx, "tables/4/currentOrder/o1", &out)
	assert.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.Get(ctx, "tables/4/currentOrder/o1/extra", &out)
	assert.NoError(t, err)
	assert.False(t, ok, "subtree removed with the node")
}

func TestMemory_Subscribe(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	events, cancel, err := s.Subscribe(ctx, "tables/5")
	assert.NoError(t, err)
	defer cancel()

	assert.NoError(t, s.Set(ctx, "tables/5/currentOrder/o1", map[string]any{"status": "open"}))
	assert.NoError(t, s.Set(ctx, "tables/6/currentOrder/o2", map[string]any{"status": "open"}))

	ev := <-events
	assert.Equal(t, "tables/5/currentOrder/o1", ev.Path)
	assert.Equal(t, EventPut, ev.Type)

	select {
	case ev := <-events:
		t.Fatalf("unexpected event for foreign path: %+v", ev)
	default:
	}

	t.Run("Cancel tears down", func(t *testing.T) {
		cancel()
		_, open := <-events
		assert.False(t, open)
	})
}
