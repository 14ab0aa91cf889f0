package orders

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marce316/go-pedidos/internal/domain"
)

type fakeUsers struct {
	users     map[int64]*domain.User
	panicking bool
}

func (f *fakeUsers) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if f.panicking {
		panic("boom")
	}
	return f.users[id], nil
}

type fakeProducts struct {
	products    map[int64]*domain.Product
	reduceErr   error
	reduceCalls int
}

func (f *fakeProducts) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	return f.products[id], nil
}

func (f *fakeProducts) ReduceStock(ctx context.Context, id int64, qty int) error {
	f.reduceCalls++
	if f.reduceErr != nil {
		return f.reduceErr
	}
	p := f.products[id]
	if p == nil {
		return domain.ErrProductNotFound
	}
	if p.Stock < qty {
		return &domain.InsufficientStockError{Available: p.Stock}
	}
	p.Stock -= qty
	return nil
}

func (f *fakeProducts) IncreaseStock(ctx context.Context, id int64, qty int) error {
	p := f.products[id]
	if p == nil {
		return domain.ErrProductNotFound
	}
	p.Stock += qty
	return nil
}

type fakeOrders struct {
	seq       int64
	orders    map[int64]*domain.Order
	insertErr error
	deleted   []int64
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{orders: map[int64]*domain.Order{}}
}

func (f *fakeOrders) Insert(ctx context.Context, o *domain.Order) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.seq++
	o.ID = f.seq
	cp := *o
	f.orders[o.ID] = &cp
	return nil
}

func (f *fakeOrders) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrders) Delete(ctx context.Context, id int64) error {
	delete(f.orders, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeOrders) UpdateStatus(ctx context.Context, id int64, status domain.Status) error {
	o, ok := f.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.Status = status
	return nil
}

func (f *fakeOrders) List(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (f *fakeOrders) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrders) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range f.orders {
		if o.Status == status {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrders) Count(ctx context.Context) (int64, error) {
	return int64(len(f.orders)), nil
}

func (f *fakeOrders) ListWithDetails(ctx context.Context) ([]domain.OrderDetail, error) {
	var out []domain.OrderDetail
	for _, o := range f.orders {
		out = append(out, domain.OrderDetail{Order: *o})
	}
	return out, nil
}

func newTestService(t *testing.T) (*Service, *fakeUsers, *fakeProducts, *fakeOrders) {
	t.Helper()
	fu := &fakeUsers{users: map[int64]*domain.User{
		1: {ID: 1, Name: "Ana", Email: "ana@example.com"},
	}}
	fp := &fakeProducts{products: map[int64]*domain.Product{
		10: {ID: 10, Name: "Teclado", Price: decimal.RequireFromString("9.99"), Stock: 5},
	}}
	fo := newFakeOrders()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(fu, fp, fo, logger), fu, fp, fo
}

func TestCreateOrder_Validation(t *testing.T) {
	svc, _, fp, fo := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		userID    int64
		productID int64
		qty       int
		wantErr   error
	}{
		{"missing user id", 0, 10, 1, domain.ErrFieldsRequired},
		{"missing product id", 1, 0, 1, domain.ErrFieldsRequired},
		{"zero quantity", 1, 10, 0, domain.ErrFieldsRequired},
		{"negative quantity", 1, 10, -3, domain.ErrNonPositiveQty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := svc.CreateOrder(ctx, tt.userID, tt.productID, tt.qty)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, o)
		})
	}

	// nothing reached storage
	assert.Empty(t, fo.orders)
	assert.Equal(t, 0, fp.reduceCalls)
	assert.Equal(t, 5, fp.products[10].Stock)
}

func TestCreateOrder_ReferentialChecks(t *testing.T) {
	svc, _, _, fo := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, 99, 10, 1)
	require.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = svc.CreateOrder(ctx, 1, 99, 1)
	require.ErrorIs(t, err, domain.ErrProductNotFound)

	assert.Empty(t, fo.orders)
}

func TestCreateOrder_InsufficientStock(t *testing.T) {
	svc, _, fp, fo := newTestService(t)
	fp.products[10].Stock = 2

	_, err := svc.CreateOrder(context.Background(), 1, 10, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, "insufficient stock, available: 2", err.Error())
	assert.Equal(t, 2, fp.products[10].Stock)
	assert.Empty(t, fo.orders)
}

func TestCreateOrder_Success(t *testing.T) {
	svc, _, fp, fo := newTestService(t)

	o, err := svc.CreateOrder(context.Background(), 1, 10, 5)
	require.NoError(t, err)
	require.NotNil(t, o)

	assert.Equal(t, domain.StatusPending, o.Status)
	assert.Equal(t, 0, fp.products[10].Stock)
	// 9.99 x 5 is exactly 49.95, no float drift
	assert.Equal(t, "49.95", o.Total.StringFixed(2))
	assert.True(t, o.Total.Equal(decimal.RequireFromString("49.95")))

	stored, err := fo.GetByID(context.Background(), o.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.Total.Equal(o.Total))
}

func TestCreateOrder_CompensatesWhenDecrementLosesRace(t *testing.T) {
	svc, _, fp, fo := newTestService(t)
	// availability passed, but a concurrent order drained the stock before
	// the conditional decrement ran
	fp.reduceErr = &domain.InsufficientStockError{Available: 0}

	o, err := svc.CreateOrder(context.Background(), 1, 10, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Nil(t, o)
	assert.Empty(t, fo.orders)
	assert.Len(t, fo.deleted, 1)
}

func TestCreateOrder_InsertFailurePropagates(t *testing.T) {
	svc, _, fp, fo := newTestService(t)
	fo.insertErr = errors.New("connection reset")

	_, err := svc.CreateOrder(context.Background(), 1, 10, 1)
	require.EqualError(t, err, "connection reset")
	assert.Equal(t, 0, fp.reduceCalls)
	assert.Equal(t, 5, fp.products[10].Stock)
}

func TestCreateOrder_RecoversPanics(t *testing.T) {
	svc, fu, _, _ := newTestService(t)
	fu.panicking = true

	o, err := svc.CreateOrder(context.Background(), 1, 10, 1)
	require.Error(t, err)
	assert.Nil(t, o)
	assert.Contains(t, err.Error(), "unexpected error")
}

func TestUpdateStatus(t *testing.T) {
	svc, _, _, fo := newTestService(t)
	ctx := context.Background()

	o, err := svc.CreateOrder(ctx, 1, 10, 1)
	require.NoError(t, err)

	err = svc.UpdateStatus(ctx, o.ID, "bogus")
	require.Error(t, err)
	var invalid *domain.InvalidStatusError
	require.ErrorAs(t, err, &invalid)
	stored, _ := fo.GetByID(ctx, o.ID)
	assert.Equal(t, domain.StatusPending, stored.Status)

	require.NoError(t, svc.UpdateStatus(ctx, o.ID, "shipped"))
	stored, _ = fo.GetByID(ctx, o.ID)
	assert.Equal(t, domain.StatusShipped, stored.Status)
}

func TestCancelOrder(t *testing.T) {
	svc, _, fp, fo := newTestService(t)
	ctx := context.Background()
	fp.products[10].Stock = 10

	o, err := svc.CreateOrder(ctx, 1, 10, 3)
	require.NoError(t, err)
	require.Equal(t, 7, fp.products[10].Stock)

	require.NoError(t, svc.CancelOrder(ctx, o.ID))
	assert.Equal(t, 10, fp.products[10].Stock)
	stored, _ := fo.GetByID(ctx, o.ID)
	assert.Equal(t, domain.StatusCancelled, stored.Status)

	err = svc.CancelOrder(ctx, o.ID)
	require.ErrorIs(t, err, domain.ErrAlreadyCancelled)
	assert.Equal(t, 10, fp.products[10].Stock)
}

func TestCancelOrder_MissingOrder(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	err := svc.CancelOrder(context.Background(), 404)
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestCancelOrder_ProductGone(t *testing.T) {
	svc, _, fp, fo := newTestService(t)
	ctx := context.Background()

	o, err := svc.CreateOrder(ctx, 1, 10, 2)
	require.NoError(t, err)

	// product deleted out from under the order: cancellation proceeds,
	// stock restoration is skipped
	delete(fp.products, 10)
	require.NoError(t, svc.CancelOrder(ctx, o.ID))
	stored, _ := fo.GetByID(ctx, o.ID)
	assert.Equal(t, domain.StatusCancelled, stored.Status)
}
