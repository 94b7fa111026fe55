package printer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"comanda-be/internal/menu"
	"comanda-be/internal/order"
	"comanda-be/internal/receipt"
)

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateOrder(ctx context.Context, tableID string) (*order.Order, error) {
	args := m.Called(ctx, tableID)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderService) Current(ctx context.Context, tableID string) (*order.Order, error) {
	args := m.Called(ctx, tableID)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderService) AddItem(ctx context.Context, tableID string, menuItemID, quantity int, selections menu.Selections, notes string) (*order.Order, error) {
	args := m.Called(ctx, tableID, menuItemID, quantity, selections, notes)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderService) RemoveItem(ctx context.Context, tableID string, itemID int, addedAt int64) (*order.Order, error) {
	args := m.Called(ctx, tableID, itemID, addedAt)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderService) UpdateQuantity(ctx context.Context, tableID string, itemID int, addedAt int64, quantity int) error {
	args := m.Called(ctx, tableID, itemID, addedAt, quantity)
	return args.Error(0)
}

func (m *MockOrderService) CloseOrder(ctx context.Context, tableID, paymentMethod string) (*order.Order, error) {
	args := m.Called(ctx, tableID, paymentMethod)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderService) MarkItemsPrinted(ctx context.Context, tableID string, keys []order.ItemKey) error {
	args := m.Called(ctx, tableID, keys)
	return args.Error(0)
}

func (m *MockOrderService) History(ctx context.Context, from, to time.Time, term string) ([]*order.Order, error) {
	args := m.Called(ctx, from, to, term)
	o, _ := args.Get(0).([]*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderService) Watch(ctx context.Context, tableID string) (<-chan *order.Order, func(), error) {
	args := m.Called(ctx, tableID)
	ch, _ := args.Get(0).(<-chan *order.Order)
	cancel, _ := args.Get(1).(func())
	return ch, cancel, args.Error(2)
}

type fakeConn struct {
	connectErr    error
	connectCalls  int
	writes        [][]byte
	writeCalls    int
	failFromWrite int // 1-based write index from which writes fail, 0 for never
	up            bool
}

func (c *fakeConn) Connect(ctx context.Context) error {
	c.connectCalls++
	if c.connectErr != nil {
		return c.connectErr
	}
	c.up = true
	return nil
}

func (c *fakeConn) Connected() bool { return c.up }

func (c *fakeConn) Write(ctx context.Context, p []byte) error {
	c.writeCalls++
	if c.failFromWrite != 0 && c.writeCalls >= c.failFromWrite {
		return ErrPrintFailed
	}
	buf := make([]byte, len(p))
	copy(buf, p)
	c.writes = append(c.writes, buf)
	return nil
}

// droppingConn loses the link on every write and refuses to come back
// up after the first connect.
type droppingConn struct {
	connects int
	writes   int
	up       bool
}

func (c *droppingConn) Connect(ctx context.Context) error {
	c.connects++
	if c.connects == 1 {
		c.up = true
		return nil
	}
	return errors.New("printer off")
}

func (c *droppingConn) Connected() bool { return c.up }

func (c *droppingConn) Write(ctx context.Context, p []byte) error {
	c.writes++
	c.up = false
	return ErrPrintFailed
}

func newTestDispatcher(conn Conn, orders order.Service) *Dispatcher {
	d := NewDispatcher(conn, orders, receipt.NewFormatter(menu.Default()))
	d.backoff = time.Millisecond
	return d
}

func liveOrder() *order.Order {
	return &order.Order{
		ID:      "abcdef1234567890",
		TableID: "8",
		Status:  order.StatusOpen,
		Items: []order.Item{
			{ID: 201, Name: "X-Salada", Category: "hamburgueres", Quantity: 1, Price: 6.50, AddedAt: 100},
			{ID: 506, Name: "Imperial", Category: "cervejas", Quantity: 2, Price: 2.00, AddedAt: 200},
		},
	}
}

func TestPrintOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("prints one ticket per station and marks each independently", func(t *testing.T) {
		conn := &fakeConn{}
		orders := new(MockOrderService)
		orders.On("Current", ctx, "8").Return(liveOrder(), nil)
		orders.On("MarkItemsPrinted", ctx, "8", []order.ItemKey{{ID: 201, AddedAt: 100}}).Return(nil)
		orders.On("MarkItemsPrinted", ctx, "8", []order.ItemKey{{ID: 506, AddedAt: 200}}).Return(nil)

		d := newTestDispatcher(conn, orders)
		assert.NoError(t, d.PrintOrder(ctx, "8"))

		assert.Len(t, conn.writes, 2)
		assert.Contains(t, string(conn.writes[0]), "COZINHA")
		assert.Contains(t, string(conn.writes[0]), "1X X-SALADA")
		assert.Contains(t, string(conn.writes[1]), "BAR")
		assert.Contains(t, string(conn.writes[1]), "2X IMPERIAL")
		orders.AssertExpectations(t)
	})

	t.Run("printing twice sends nothing the second time", func(t *testing.T) {
		conn := &fakeConn{}
		orders := new(MockOrderService)
		// the store still reports the items unprinted, the dedup window
		// has to cover that gap
		orders.On("Current", ctx, "8").Return(liveOrder(), nil)
		orders.On("MarkItemsPrinted", ctx, "8", mock.Anything).Return(nil)

		d := newTestDispatcher(conn, orders)
		assert.NoError(t, d.PrintOrder(ctx, "8"))
		sent := len(conn.writes)

		err := d.PrintOrder(ctx, "8")
		assert.ErrorIs(t, err, ErrNothingToPrint)
		assert.Len(t, conn.writes, sent)
	})

	t.Run("items already flagged are skipped", func(t *testing.T) {
		o := liveOrder()
		o.Items[0].Printed = true

		conn := &fakeConn{}
		orders := new(MockOrderService)
		orders.On("Current", ctx, "8").Return(o, nil)
		orders.On("MarkItemsPrinted", ctx, "8", []order.ItemKey{{ID: 506, AddedAt: 200}}).Return(nil)

		d := newTestDispatcher(conn, orders)
		assert.NoError(t, d.PrintOrder(ctx, "8"))

		assert.Len(t, conn.writes, 1)
		assert.Contains(t, string(conn.writes[0]), "BAR")
		assert.NotContains(t, string(conn.writes[0]), "X-SALADA")
	})

	t.Run("everything printed already", func(t *testing.T) {
		o := liveOrder()
		o.Items[0].Printed = true
		o.Items[1].Printed = true

		orders := new(MockOrderService)
		orders.On("Current", ctx, "8").Return(o, nil)

		d := newTestDispatcher(&fakeConn{}, orders)
		assert.ErrorIs(t, d.PrintOrder(ctx, "8"), ErrNothingToPrint)
	})

	t.Run("no open order", func(t *testing.T) {
		orders := new(MockOrderService)
		orders.On("Current", ctx, "8").Return(nil, order.ErrOrderNotFound)

		d := newTestDispatcher(&fakeConn{}, orders)
		assert.ErrorIs(t, d.PrintOrder(ctx, "8"), ErrNothingToPrint)
	})

	t.Run("gives up connecting after three attempts", func(t *testing.T) {
		conn := &fakeConn{connectErr: errors.New("printer off")}
		orders := new(MockOrderService)
		orders.On("Current", ctx, "8").Return(liveOrder(), nil)

		d := newTestDispatcher(conn, orders)
		err := d.PrintOrder(ctx, "8")

		assert.ErrorIs(t, err, ErrTransportUnavailable)
		assert.Equal(t, 3, conn.connectCalls)
		orders.AssertNotCalled(t, "MarkItemsPrinted", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("failed reconnects back off between attempts", func(t *testing.T) {
		conn := &droppingConn{}
		orders := new(MockOrderService)
		orders.On("Current", ctx, "8").Return(liveOrder(), nil)

		d := newTestDispatcher(conn, orders)
		d.backoff = 5 * time.Millisecond

		start := time.Now()
		err := d.PrintOrder(ctx, "8")
		elapsed := time.Since(start)

		assert.ErrorIs(t, err, ErrPrintFailed)
		assert.Equal(t, 3, conn.connects)
		assert.Equal(t, 1, conn.writes)
		// attempts 2 and 3 wait 1x and 2x the base delay
		assert.GreaterOrEqual(t, elapsed, 15*time.Millisecond)
		orders.AssertNotCalled(t, "MarkItemsPrinted", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("bar failure keeps the kitchen ticket confirmed", func(t *testing.T) {
		conn := &fakeConn{failFromWrite: 2}
		orders := new(MockOrderService)
		orders.On("Current", ctx, "8").Return(liveOrder(), nil)
		orders.On("MarkItemsPrinted", ctx, "8", []order.ItemKey{{ID: 201, AddedAt: 100}}).Return(nil)

		d := newTestDispatcher(conn, orders)
		err := d.PrintOrder(ctx, "8")

		assert.ErrorIs(t, err, ErrPrintFailed)
		orders.AssertCalled(t, "MarkItemsPrinted", ctx, "8", []order.ItemKey{{ID: 201, AddedAt: 100}})
		orders.AssertNumberOfCalls(t, "MarkItemsPrinted", 1)
	})
}
