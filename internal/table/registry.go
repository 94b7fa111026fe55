package table

import (
	"context"
	"encoding/json"
	"fmt"

	"comanda-be/internal/store"
)

type Filter string

const (
	FilterAll      Filter = "all"
	FilterOccupied Filter = "occupied"
	FilterInterior Filter = "interior"
	FilterExterior Filter = "exterior"
)

// View is a table with its live-order summary merged in.
type View struct {
	Table
	HasOrder   bool    `json:"hasOrder"`
	ItemCount  int     `json:"itemCount"`
	OrderTotal float64 `json:"orderTotal"`
}

type Registry struct {
	kv store.Store
}

func NewRegistry(kv store.Store) *Registry {
	return &Registry{kv: kv}
}

// read-side projection of a live order, enough for the floor overview
type orderSummary struct {
	Items []struct {
		Price    float64 `json:"price"`
		Quantity int     `json:"quantity"`
	} `json:"items"`
}

// List merges persisted status and live-order summaries over the static
// layout and applies the filter.
func (r *Registry) List(ctx context.Context, filter Filter) ([]View, error) {
	views := make([]View, 0, Count)

	for _, t := range Layout() {
		var persisted struct {
			Status string `json:"status"`
		}
		if _, err := r.kv.Get(ctx, store.Join("tables", t.ID), &persisted); err != nil {
			return nil, fmt.Errorf("registry list: %w", err)
		}
		if persisted.Status != "" {
			t.Status = persisted.Status
		}

		view := View{Table: t}
		orders, err := r.kv.Children(ctx, store.Join("tables", t.ID, "currentOrder"))
		if err != nil {
			return nil, fmt.Errorf("registry list: %w", err)
		}
		for _, raw := range orders {
			var sum orderSummary
			if err := json.Unmarshal(raw, &sum); err != nil {
				continue
			}
			view.HasOrder = true
			for _, it := range sum.Items {
				view.ItemCount++
				view.OrderTotal += it.Price * float64(it.Quantity)
			}
			break // at most one live order per table
		}

		if keep(view, filter) {
			views = append(views, view)
		}
	}
	return views, nil
}

// Seed writes the layout rows that are not in the store yet. Existing
// rows are left alone so a reseed never clobbers live status.
func (r *Registry) Seed(ctx context.Context) error {
	for _, t := range Layout() {
		var persisted struct {
			Status string `json:"status"`
		}
		ok, err := r.kv.Get(ctx, store.Join("tables", t.ID), &persisted)
		if err != nil {
			return fmt.Errorf("registry seed: %w", err)
		}
		if ok && persisted.Status != "" {
			continue
		}
		if err := r.kv.Set(ctx, store.Join("tables", t.ID), map[string]any{
			"status": t.Status,
			"type":   t.Type,
		}); err != nil {
			return fmt.Errorf("registry seed: %w", err)
		}
	}
	return nil
}

func keep(v View, filter Filter) bool {
	switch filter {
	case FilterOccupied:
		return v.HasOrder
	case FilterInterior:
		return v.Type == TypeInterior
	case FilterExterior:
		return v.Type == TypeExterior
	default:
		return true
	}
}
