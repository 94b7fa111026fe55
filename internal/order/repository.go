package order

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"comanda-be/internal/store"
	"comanda-be/internal/table"
)

// Repository persists orders in the remote key-tree store under
// tables/{tableId}/currentOrder/{orderId} and
// tables/{tableId}/ordersHistory/{historyId}. Writes are last-write-wins
// at the granularity of one call; there is no compare-and-swap, so
// conflicting concurrent edits to the same order resolve by whoever
// wrote last.
type Repository interface {
	CurrentOrder(ctx context.Context, tableID string) (*Order, error)
	CreateOrder(ctx context.Context, tableID string, o *Order) (string, error)
	SaveItems(ctx context.Context, tableID, orderID string, items []Item, updatedAt int64) error
	RemoveOrder(ctx context.Context, tableID, orderID string) error
	AppendHistory(ctx context.Context, tableID string, o *Order) (string, error)
	SetTableStatus(ctx context.Context, tableID, status string) error
	AllHistory(ctx context.Context) ([]*Order, error)
	Watch(ctx context.Context, tableID string) (<-chan *Order, func(), error)
}

type repository struct {
	kv store.Store
}

func NewRepository(kv store.Store) Repository {
	return &repository{kv: kv}
}

func currentOrderPath(tableID string) string {
	return store.Join("tables", tableID, "currentOrder")
}

// CurrentOrder returns the live order of a table, or nil when the table
// is free. At most one live child is expected; if a write race ever
// leaves more than one, the lowest key wins deterministically.
func (r *repository) CurrentOrder(ctx context.Context, tableID string) (*Order, error) {
	children, err := r.kv.Children(ctx, currentOrderPath(tableID))
	if err != nil {
		return nil, fmt.Errorf("current order of table %s: %w", tableID, err)
	}
	if len(children) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(children))
	for k := range children {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var o Order
	if err := json.Unmarshal(children[keys[0]], &o); err != nil {
		return nil, fmt.Errorf("decode order of table %s: %w", tableID, err)
	}
	o.ID = keys[0]
	return &o, nil
}

func (r *repository) CreateOrder(ctx context.Context, tableID string, o *Order) (string, error) {
	id, err := r.kv.Push(ctx, currentOrderPath(tableID), o)
	if err != nil {
		return "", fmt.Errorf("create order for table %s: %w", tableID, err)
	}
	return id, nil
}

func (r *repository) SaveItems(ctx context.Context, tableID, orderID string, items []Item, updatedAt int64) error {
	err := r.kv.Update(ctx, store.Join(currentOrderPath(tableID), orderID), map[string]any{
		"items":     items,
		"updatedAt": updatedAt,
	})
	if err != nil {
		return fmt.Errorf("save items of table %s: %w", tableID, err)
	}
	return nil
}

func (r *repository) RemoveOrder(ctx context.Context, tableID, orderID string) error {
	if err := r.kv.Remove(ctx, store.Join(currentOrderPath(tableID), orderID)); err != nil {
		return fmt.Errorf("remove order of table %s: %w", tableID, err)
	}
	return nil
}

func (r *repository) AppendHistory(ctx context.Context, tableID string, o *Order) (string, error) {
	id, err := r.kv.Push(ctx, store.Join("tables", tableID, "ordersHistory"), o)
	if err != nil {
		return "", fmt.Errorf("append history for table %s: %w", tableID, err)
	}
	return id, nil
}

func (r *repository) SetTableStatus(ctx context.Context, tableID, status string) error {
	err := r.kv.Update(ctx, store.Join("tables", tableID), map[string]any{
		"status": status,
	})
	if err != nil {
		return fmt.Errorf("set status of table %s: %w", tableID, err)
	}
	return nil
}

// AllHistory flattens every table's closed orders.
func (r *repository) AllHistory(ctx context.Context) ([]*Order, error) {
	var all []*Order
	for _, t := range table.Layout() {
		tableID := t.ID
		children, err := r.kv.Children(ctx, store.Join("tables", tableID, "ordersHistory"))
		if err != nil {
			return nil, fmt.Errorf("history of table %s: %w", tableID, err)
		}
		for id, raw := range children {
			var o Order
			if err := json.Unmarshal(raw, &o); err != nil {
				continue
			}
			if o.Status != StatusClosed {
				continue
			}
			o.ID = id
			o.TableID = tableID
			all = append(all, &o)
		}
	}
	return all, nil
}

// Watch streams live-order snapshots for one table. Every change under
// the table's currentOrder slot triggers a re-read; a nil snapshot
// means the slot is empty. The returned cancel tears the subscription
// down.
func (r *repository) Watch(ctx context.Context, tableID string) (<-chan *Order, func(), error) {
	events, cancelSub, err := r.kv.Subscribe(ctx, currentOrderPath(tableID))
	if err != nil {
		return nil, nil, fmt.Errorf("watch table %s: %w", tableID, err)
	}

	snapshots := make(chan *Order, 1)
	go func() {
		defer close(snapshots)
		for range events {
			o, err := r.CurrentOrder(ctx, tableID)
			if err != nil {
				continue
			}
			select {
			case snapshots <- o:
			case <-ctx.Done():
				return
			}
		}
	}()

	return snapshots, cancelSub, nil
}
