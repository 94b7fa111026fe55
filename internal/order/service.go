package order

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"comanda-be/internal/auth"
	"comanda-be/internal/logger"
	"comanda-be/internal/menu"
	"comanda-be/internal/table"
)

// Service is the table/order state machine. It is the only writer of
// order records and of table status.
type Service interface {
	CreateOrder(ctx context.Context, tableID string) (*Order, error)
	Current(ctx context.Context, tableID string) (*Order, error)
	AddItem(ctx context.Context, tableID string, menuItemID, quantity int, selections menu.Selections, notes string) (*Order, error)
	RemoveItem(ctx context.Context, tableID string, itemID int, addedAt int64) (*Order, error)
	UpdateQuantity(ctx context.Context, tableID string, itemID int, addedAt int64, quantity int) error
	CloseOrder(ctx context.Context, tableID, paymentMethod string) (*Order, error)
	MarkItemsPrinted(ctx context.Context, tableID string, keys []ItemKey) error
	History(ctx context.Context, from, to time.Time, term string) ([]*Order, error)
	Watch(ctx context.Context, tableID string) (<-chan *Order, func(), error)
}

type service struct {
	repo    Repository
	catalog *menu.Catalog
	now     func() int64
}

func NewService(repo Repository, catalog *menu.Catalog) Service {
	return &service{
		repo:    repo,
		catalog: catalog,
		now:     func() int64 { return time.Now().UnixMilli() },
	}
}

// CreateOrder opens an empty order for the table. Calling it again
// while an order is open returns the existing order unchanged.
func (s *service) CreateOrder(ctx context.Context, tableID string) (*Order, error) {
	if !table.IsValid(tableID) {
		return nil, ErrTableNotFound
	}

	// Idempotency guard
	existing, err := s.repo.CurrentOrder(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	now := s.now()
	o := &Order{
		TableID:   tableID,
		Items:     []Item{},
		Status:    StatusOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}

	id, err := s.repo.CreateOrder(ctx, tableID, o)
	if err != nil {
		return nil, err
	}
	o.ID = id

	if err := s.repo.SetTableStatus(ctx, tableID, table.StatusOccupied); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("order created",
		zap.String("table_id", tableID),
		zap.String("order_id", o.ID),
	)
	return o, nil
}

// Current returns the live order of the table.
func (s *service) Current(ctx context.Context, tableID string) (*Order, error) {
	if !table.IsValid(tableID) {
		return nil, ErrTableNotFound
	}
	o, err := s.repo.CurrentOrder(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

// AddItem resolves the selections against the menu, freezes the unit
// price (base plus surcharges) and appends the item. An order is opened
// implicitly when the table has none.
func (s *service) AddItem(ctx context.Context, tableID string, menuItemID, quantity int, selections menu.Selections, notes string) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddItem"),
		zap.String("table_id", tableID),
		zap.Int("menu_item_id", menuItemID),
	)

	if !table.IsValid(tableID) {
		return nil, ErrTableNotFound
	}
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	menuItem, category, ok := s.catalog.Item(menuItemID)
	if !ok {
		return nil, ErrMenuItemNotFound
	}

	maxNote := menuItem.MaxNoteLen
	if maxNote == 0 {
		maxNote = defaultMaxNoteLen
	}
	if len(notes) > maxNote {
		return nil, ErrNoteTooLong
	}

	normalized, surcharge, err := menu.Resolve(menuItem, selections)
	if err != nil {
		log.Warn("option resolution rejected", zap.Error(err))
		return nil, err
	}

	now := s.now()
	item := Item{
		ID:       menuItem.ID,
		Name:     menuItem.Name,
		Category: category,
		Quantity: quantity,
		Price:    menuItem.Price + surcharge,
		Options:  normalized,
		Notes:    notes,
		AddedAt:  now,
		Printed:  false,
	}

	o, err := s.repo.CurrentOrder(ctx, tableID)
	if err != nil {
		return nil, err
	}

	if o == nil {
		o = &Order{
			TableID:   tableID,
			Items:     []Item{item},
			Status:    StatusOpen,
			CreatedAt: now,
			UpdatedAt: now,
		}
		id, err := s.repo.CreateOrder(ctx, tableID, o)
		if err != nil {
			return nil, err
		}
		o.ID = id
	} else {
		o.Items = append(o.Items, item)
		o.UpdatedAt = now
		if err := s.repo.SaveItems(ctx, tableID, o.ID, o.Items, now); err != nil {
			return nil, err
		}
	}

	if err := s.repo.SetTableStatus(ctx, tableID, table.StatusOccupied); err != nil {
		return nil, err
	}

	log.Info("item added",
		zap.String("order_id", o.ID),
		zap.Float64("unit_price", item.Price),
		zap.Int("quantity", quantity),
	)
	return o, nil
}

// RemoveItem removes one item instance, matched by (id, addedAt). A
// zero addedAt removes every instance of the menu id, which is the
// legacy behavior; callers should pass the instance timestamp.
// Emptying the order discards it: the live slot is removed and the
// table freed, with no history entry written.
func (s *service) RemoveItem(ctx context.Context, tableID string, itemID int, addedAt int64) (*Order, error) {
	if !table.IsValid(tableID) {
		return nil, ErrTableNotFound
	}

	o, err := s.repo.CurrentOrder(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}

	kept := o.Items[:0:0]
	for _, it := range o.Items {
		if it.ID == itemID && (addedAt == 0 || it.AddedAt == addedAt) {
			continue
		}
		kept = append(kept, it)
	}
	if len(kept) == len(o.Items) {
		return nil, ErrItemNotFound
	}

	now := s.now()
	o.Items = kept
	o.UpdatedAt = now

	if len(kept) == 0 {
		if err := s.repo.RemoveOrder(ctx, tableID, o.ID); err != nil {
			return nil, err
		}
		if err := s.repo.SetTableStatus(ctx, tableID, table.StatusAvailable); err != nil {
			return nil, err
		}
		o.Status = StatusClosed

		logger.FromCtx(ctx).Info("order emptied and discarded",
			zap.String("table_id", tableID),
			zap.String("order_id", o.ID),
		)
		return o, nil
	}

	if err := s.repo.SaveItems(ctx, tableID, o.ID, kept, now); err != nil {
		return nil, err
	}
	return o, nil
}

// UpdateQuantity sets the quantity of one item instance. Quantities
// below 1 are ignored.
func (s *service) UpdateQuantity(ctx context.Context, tableID string, itemID int, addedAt int64, quantity int) error {
	if !table.IsValid(tableID) {
		return ErrTableNotFound
	}
	if quantity < 1 {
		return nil
	}

	o, err := s.repo.CurrentOrder(ctx, tableID)
	if err != nil {
		return err
	}
	if o == nil {
		return ErrOrderNotFound
	}

	found := false
	for i := range o.Items {
		if o.Items[i].ID != itemID {
			continue
		}
		if addedAt != 0 && o.Items[i].AddedAt != addedAt {
			continue
		}
		o.Items[i].Quantity = quantity
		found = true
	}
	if !found {
		return ErrItemNotFound
	}

	return s.repo.SaveItems(ctx, tableID, o.ID, o.Items, s.now())
}

// CloseOrder archives the order into the table's history, removes the
// live slot and frees the table. Closing an empty order is an error.
func (s *service) CloseOrder(ctx context.Context, tableID, paymentMethod string) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CloseOrder"),
		zap.String("table_id", tableID),
	)

	if !table.IsValid(tableID) {
		return nil, ErrTableNotFound
	}

	o, err := s.repo.CurrentOrder(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	if len(o.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	if paymentMethod == "" {
		paymentMethod = DefaultPaymentMethod
	}

	o.Status = StatusClosed
	o.Total = o.RunningTotal()
	o.ClosedAt = s.now()
	o.ClosedBy = auth.OperatorFrom(ctx)
	o.PaymentMethod = paymentMethod

	if _, err := s.repo.AppendHistory(ctx, tableID, o); err != nil {
		return nil, err
	}
	if err := s.repo.RemoveOrder(ctx, tableID, o.ID); err != nil {
		return nil, err
	}
	if err := s.repo.SetTableStatus(ctx, tableID, table.StatusAvailable); err != nil {
		return nil, err
	}

	log.Info("order closed",
		zap.String("order_id", o.ID),
		zap.Float64("total", o.Total),
		zap.String("payment_method", o.PaymentMethod),
		zap.String("closed_by", o.ClosedBy),
	)
	return o, nil
}

// MarkItemsPrinted flips the printed flag of the given item instances.
// The flag is monotonic: once true it is never reset by this path.
func (s *service) MarkItemsPrinted(ctx context.Context, tableID string, keys []ItemKey) error {
	if !table.IsValid(tableID) {
		return ErrTableNotFound
	}
	if len(keys) == 0 {
		return nil
	}

	o, err := s.repo.CurrentOrder(ctx, tableID)
	if err != nil {
		return err
	}
	if o == nil {
		return ErrOrderNotFound
	}

	wanted := make(map[ItemKey]bool, len(keys))
	for _, k := range keys {
		wanted[k] = true
	}
	for i := range o.Items {
		if wanted[o.Items[i].Key()] {
			o.Items[i].Printed = true
		}
	}

	return s.repo.SaveItems(ctx, tableID, o.ID, o.Items, s.now())
}

// History returns closed orders within [from, to], newest first. A
// non-empty term filters by table id or item name.
func (s *service) History(ctx context.Context, from, to time.Time, term string) ([]*Order, error) {
	all, err := s.repo.AllHistory(ctx)
	if err != nil {
		return nil, err
	}

	term = strings.ToLower(strings.TrimSpace(term))
	filtered := all[:0:0]
	for _, o := range all {
		closedAt := time.UnixMilli(o.ClosedAt)
		if closedAt.Before(from) || closedAt.After(to) {
			continue
		}
		if term != "" && !matchesTerm(o, term) {
			continue
		}
		filtered = append(filtered, o)
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].ClosedAt > filtered[j].ClosedAt
	})
	return filtered, nil
}

func (s *service) Watch(ctx context.Context, tableID string) (<-chan *Order, func(), error) {
	if !table.IsValid(tableID) {
		return nil, nil, ErrTableNotFound
	}
	return s.repo.Watch(ctx, tableID)
}

func matchesTerm(o *Order, term string) bool {
	if strings.Contains(strings.ToLower(o.TableID), term) {
		return true
	}
	for _, it := range o.Items {
		if strings.Contains(strings.ToLower(it.Name), term) {
			return true
		}
	}
	return false
}
