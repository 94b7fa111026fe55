package table

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"comanda-be/internal/store"
)

func TestLayout(t *testing.T) {
	tables := Layout()
	assert.Len(t, tables, 36)

	assert.Equal(t, "1", tables[0].ID)
	assert.Equal(t, TypeInterior, tables[0].Type)
	assert.Equal(t, TypeInterior, tables[17].Type)
	assert.Equal(t, TypeExterior, tables[18].Type)
	assert.Equal(t, "36", tables[35].ID)
	assert.Equal(t, TypeExterior, tables[35].Type)

	for _, tb := range tables {
		assert.Equal(t, StatusAvailable, tb.Status)
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("1"))
	assert.True(t, IsValid("36"))
	assert.False(t, IsValid("0"))
	assert.False(t, IsValid("37"))
	assert.False(t, IsValid("abc"))
	assert.False(t, IsValid(""))
}

func TestRegistry_List(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	reg := NewRegistry(kv)

	// Table 5 occupied with a live order, table 20 has persisted status only.
	assert.NoError(t, kv.Set(ctx, "tables/5", map[string]any{"status": StatusOccupied}))
	assert.NoError(t, kv.Set(ctx, "tables/5/currentOrder/o1", map[string]any{
		"status": "open",
		"items": []map[string]any{
			{"price": 6.0, "quantity": 2},
			{"price": 3.5, "quantity": 1},
		},
	}))
	assert.NoError(t, kv.Set(ctx, "tables/20", map[string]any{"status": StatusOccupied}))

	t.Run("All merges persisted state over layout", func(t *testing.T) {
		views, err := reg.List(ctx, FilterAll)
		assert.NoError(t, err)
		assert.Len(t, views, 36)

		byID := map[string]View{}
		for _, v := range views {
			byID[v.ID] = v
		}

		assert.Equal(t, StatusOccupied, byID["5"].Status)
		assert.True(t, byID["5"].HasOrder)
		assert.Equal(t, 2, byID["5"].ItemCount)
		assert.InDelta(t, 15.50, byID["5"].OrderTotal, 1e-9)

		assert.Equal(t, StatusOccupied, byID["20"].Status)
		assert.False(t, byID["20"].HasOrder)

		assert.Equal(t, StatusAvailable, byID["1"].Status)
	})

	t.Run("Occupied filter", func(t *testing.T) {
		views, err := reg.List(ctx, FilterOccupied)
		assert.NoError(t, err)
		assert.Len(t, views, 1)
		assert.Equal(t, "5", views[0].ID)
	})

	t.Run("Type filters", func(t *testing.T) {
		interior, err := reg.List(ctx, FilterInterior)
		assert.NoError(t, err)
		assert.Len(t, interior, 18)

		exterior, err := reg.List(ctx, FilterExterior)
		assert.NoError(t, err)
		assert.Len(t, exterior, 18)
	})
}

func TestRegistry_Seed(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	reg := NewRegistry(kv)

	assert.NoError(t, kv.Set(ctx, "tables/3", map[string]any{"status": StatusOccupied}))
	assert.NoError(t, reg.Seed(ctx))

	var row struct {
		Status string `json:"status"`
		Type   string `json:"type"`
	}

	ok, err := kv.Get(ctx, "tables/1", &row)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, StatusAvailable, row.Status)
	assert.Equal(t, TypeInterior, row.Type)

	ok, err = kv.Get(ctx, "tables/3", &row)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, StatusOccupied, row.Status, "seed must not clobber live status")
}
