package printer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"comanda-be/internal/logger"
	"comanda-be/internal/order"
	"comanda-be/internal/receipt"
)

const (
	defaultMaxAttempts = 3
	defaultBackoff     = time.Second

	// window during which a confirmed item cannot be re-sent, guarding
	// the gap between a write and the printed flag landing in the store
	dedupWindow = 5 * time.Minute
)

// Dispatcher prints the pending items of a table's live order. Jobs are
// serialized; each station section is sent and marked independently, so
// a bar failure never rolls back an already printed kitchen ticket.
type Dispatcher struct {
	conn      Conn
	orders    order.Service
	formatter *receipt.Formatter

	recent *cache.Cache

	mu          sync.Mutex
	maxAttempts int
	backoff     time.Duration
}

func NewDispatcher(conn Conn, orders order.Service, formatter *receipt.Formatter) *Dispatcher {
	return &Dispatcher{
		conn:        conn,
		orders:      orders,
		formatter:   formatter,
		recent:      cache.New(dedupWindow, dedupWindow),
		maxAttempts: defaultMaxAttempts,
		backoff:     defaultBackoff,
	}
}

// PrintOrder sends every not-yet-printed item of the table's live order
// to its station. Items already printed, or confirmed within the dedup
// window, are skipped; printing twice in a row sends nothing the second
// time.
func (d *Dispatcher) PrintOrder(ctx context.Context, tableID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "printer"),
		zap.String("table_id", tableID),
	)

	o, err := d.orders.Current(ctx, tableID)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			return ErrNothingToPrint
		}
		return err
	}

	pending := d.pendingItems(o)
	if len(pending) == 0 {
		return ErrNothingToPrint
	}

	if err := d.connect(ctx); err != nil {
		log.Warn("printer unreachable", zap.Error(err))
		return err
	}

	for _, section := range d.formatter.Partition(pending) {
		ticket := d.formatter.Format(tableID, o.ID, section)
		if err := d.send(ctx, ticket); err != nil {
			log.Error("station ticket failed",
				zap.String("station", section.Station),
				zap.Error(err),
			)
			return err
		}
		if err := d.confirm(ctx, tableID, o.ID, section.Items); err != nil {
			return err
		}
		log.Info("station ticket printed",
			zap.String("station", section.Station),
			zap.Int("items", len(section.Items)),
		)
	}
	return nil
}

// pendingItems filters out items whose printed flag is set and items
// confirmed so recently that the flag may not have landed yet.
func (d *Dispatcher) pendingItems(o *order.Order) []order.Item {
	var pending []order.Item
	for _, it := range o.Items {
		if it.Printed {
			continue
		}
		if _, done := d.recent.Get(dedupKey(o.TableID, o.ID, it.Key())); done {
			continue
		}
		pending = append(pending, it)
	}
	return pending
}

func (d *Dispatcher) connect(ctx context.Context) error {
	var err error
	for attempt := 1; attempt <= d.maxAttempts; attempt++ {
		if werr := d.wait(ctx, attempt); werr != nil {
			return werr
		}
		if err = d.conn.Connect(ctx); err == nil {
			return nil
		}
	}
	return fmt.Errorf("%w: %v", ErrTransportUnavailable, err)
}

func (d *Dispatcher) send(ctx context.Context, ticket []byte) error {
	var err error
	for attempt := 1; attempt <= d.maxAttempts; attempt++ {
		if werr := d.wait(ctx, attempt); werr != nil {
			return werr
		}
		if !d.conn.Connected() {
			if err = d.conn.Connect(ctx); err != nil {
				continue
			}
		}
		if err = d.conn.Write(ctx, ticket); err == nil {
			return nil
		}
	}
	return fmt.Errorf("%w: %v", ErrPrintFailed, err)
}

// wait applies the linear backoff before every retry. Every failure
// path of an attempt, a dropped write and a failed reconnect alike,
// passes through here before the next one.
func (d *Dispatcher) wait(ctx context.Context, attempt int) error {
	if attempt == 1 {
		return nil
	}
	return sleep(ctx, d.backoff*time.Duration(attempt-1))
}

// confirm records the printed items, in the store and in the local
// dedup window. Only confirmed writes populate the window.
func (d *Dispatcher) confirm(ctx context.Context, tableID, orderID string, items []order.Item) error {
	keys := make([]order.ItemKey, 0, len(items))
	for _, it := range items {
		keys = append(keys, it.Key())
	}
	if err := d.orders.MarkItemsPrinted(ctx, tableID, keys); err != nil {
		return err
	}
	for _, k := range keys {
		d.recent.SetDefault(dedupKey(tableID, orderID, k), struct{}{})
	}
	return nil
}

func dedupKey(tableID, orderID string, k order.ItemKey) string {
	return fmt.Sprintf("%s/%s/%d/%d", tableID, orderID, k.ID, k.AddedAt)
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
