package order

import (
	"comanda-be/internal/menu"
)

type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// DefaultPaymentMethod is recorded when closure does not name one.
const DefaultPaymentMethod = "dinheiro"

const defaultMaxNoteLen = 120

// Item is one line of an order. The same menu id can be added more than
// once; addedAt disambiguates the instances and is part of the print
// dedup key.
type Item struct {
	ID       int             `json:"id"`
	Name     string          `json:"nome"`
	Category string          `json:"category"`
	Quantity int             `json:"quantity"`
	Price    float64         `json:"price"`
	Options  menu.Selections `json:"options,omitempty"`
	Notes    string          `json:"notes,omitempty"`
	AddedAt  int64           `json:"addedAt"`
	Printed  bool            `json:"printed"`
}

// Key is the (id, addedAt) identity of an item instance.
func (i Item) Key() ItemKey {
	return ItemKey{ID: i.ID, AddedAt: i.AddedAt}
}

type ItemKey struct {
	ID      int
	AddedAt int64
}

// Order is the live tab of one table, or an archived history entry once
// closed. Timestamps are unix milliseconds, matching the persisted
// records.
type Order struct {
	ID            string  `json:"id"`
	TableID       string  `json:"tableId"`
	Items         []Item  `json:"items"`
	Status        Status  `json:"status"`
	CreatedAt     int64   `json:"createdAt"`
	UpdatedAt     int64   `json:"updatedAt"`
	Total         float64 `json:"total,omitempty"`
	ClosedAt      int64   `json:"closedAt,omitempty"`
	ClosedBy      string  `json:"closedBy,omitempty"`
	PaymentMethod string  `json:"paymentMethod,omitempty"`
}

// RunningTotal sums price times quantity over the items.
func (o *Order) RunningTotal() float64 {
	var total float64
	for _, it := range o.Items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}
