package orders

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"github.com/marce316/go-pedidos/internal/domain"
	kafkax "github.com/marce316/go-pedidos/internal/kafka"
	"github.com/marce316/go-pedidos/internal/metrics"
)

type UserStore interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type ProductStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	ReduceStock(ctx context.Context, id int64, qty int) error
	IncreaseStock(ctx context.Context, id int64, qty int) error
}

type OrderStore interface {
	Insert(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	Delete(ctx context.Context, id int64) error
	UpdateStatus(ctx context.Context, id int64, status domain.Status) error
	List(ctx context.Context) ([]domain.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Order, error)
	ListByStatus(ctx context.Context, status domain.Status) ([]domain.Order, error)
	Count(ctx context.Context) (int64, error)
	ListWithDetails(ctx context.Context) ([]domain.OrderDetail, error)
}

// Publisher is satisfied by kafkax.Producer; nil publishers disable events.
type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

// Service orchestrates the order workflow across the three entities.
type Service struct {
	users    UserStore
	products ProductStore
	orders   OrderStore

	created   Publisher
	cancelled Publisher
	service   string
	logger    *slog.Logger
}

func NewService(users UserStore, products ProductStore, orders OrderStore, logger *slog.Logger) *Service {
	return &Service{
		users:    users,
		products: products,
		orders:   orders,
		logger:   logger,
	}
}

// WithEvents attaches the lifecycle event producers. serviceName goes into
// the envelope's producer field.
func (s *Service) WithEvents(created, cancelled Publisher, serviceName string) *Service {
	s.created = created
	s.cancelled = cancelled
	s.service = serviceName
	return s
}

// CreateOrder validates the request, freezes the total price, persists the
// order and decrements stock. The decrement is an atomic conditional update;
// if it still fails (a concurrent order won the remaining stock), the
// just-inserted order is deleted as compensation.
func (s *Service) CreateOrder(ctx context.Context, userID, productID int64, qty int) (order *domain.Order, err error) {
	defer func() {
		if r := recover(); r != nil {
			order, err = nil, fmt.Errorf("unexpected error: %v", r)
		}
	}()

	if userID == 0 || productID == 0 || qty == 0 {
		return nil, domain.ErrFieldsRequired
	}
	if qty < 0 {
		return nil, domain.ErrNonPositiveQty
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	if !product.IsAvailable(qty) {
		metrics.StockRejections.Inc()
		return nil, &domain.InsufficientStockError{Available: product.Stock}
	}

	total := product.Price.Mul(decimal.NewFromInt(int64(qty)))

	order = &domain.Order{
		UserID:    userID,
		ProductID: productID,
		Quantity:  qty,
		Total:     total,
		Status:    domain.StatusPending,
	}
	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, err
	}

	if err := s.products.ReduceStock(ctx, productID, qty); err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			metrics.StockRejections.Inc()
		}
		if delErr := s.orders.Delete(ctx, order.ID); delErr != nil {
			s.logger.Error("compensating order delete failed",
				"pedido_id", order.ID, "error", delErr)
		}
		return nil, err
	}

	metrics.OrdersCreated.Inc()
	s.publishCreated(order)
	return order, nil
}

// UpdateStatus moves an order to one of the five enumerated states.
func (s *Service) UpdateStatus(ctx context.Context, orderID int64, status string) error {
	st, err := domain.ParseStatus(status)
	if err != nil {
		return err
	}
	return s.orders.UpdateStatus(ctx, orderID, st)
}

// CancelOrder restores the product's stock and transitions the order to
// cancelled. Cancelling twice is rejected. If the referenced product is gone
// the cancellation still goes through, but the lost restock is logged loudly
// rather than swallowed.
func (s *Service) CancelOrder(ctx context.Context, orderID int64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected error: %v", r)
		}
	}()

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrOrderNotFound
	}
	if order.Status == domain.StatusCancelled {
		return domain.ErrAlreadyCancelled
	}

	product, err := s.products.GetByID(ctx, order.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		s.logger.Warn("product missing on cancellation, stock not restored",
			"pedido_id", order.ID, "producto_id", order.ProductID, "cantidad", order.Quantity)
	} else if err := s.products.IncreaseStock(ctx, order.ProductID, order.Quantity); err != nil {
		return err
	}

	if err := s.orders.UpdateStatus(ctx, orderID, domain.StatusCancelled); err != nil {
		return err
	}

	metrics.OrdersCancelled.Inc()
	s.publishCancelled(order)
	return nil
}

func (s *Service) Order(ctx context.Context, id int64) (*domain.Order, error) {
	return s.orders.GetByID(ctx, id)
}

func (s *Service) Orders(ctx context.Context) ([]domain.Order, error) {
	return s.orders.List(ctx)
}

func (s *Service) OrdersByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

func (s *Service) OrdersByStatus(ctx context.Context, status domain.Status) ([]domain.Order, error) {
	return s.orders.ListByStatus(ctx, status)
}

func (s *Service) OrdersWithDetails(ctx context.Context) ([]domain.OrderDetail, error) {
	return s.orders.ListWithDetails(ctx)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.orders.Count(ctx)
}

func (s *Service) publishCreated(o *domain.Order) {
	if s.created == nil {
		return
	}
	ev := Envelope{
		EventID:       uuid.NewString(),
		EventType:     EventPedidoCreated,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      s.service,
		CorrelationID: fmt.Sprintf("%d", o.ID),
		Payload: kafkax.MustMarshal(PedidoCreatedPayload{
			PedidoID:    o.ID,
			UsuarioID:   o.UserID,
			ProductoID:  o.ProductID,
			Cantidad:    o.Quantity,
			PrecioTotal: o.Total.StringFixed(2),
		}),
	}
	s.created.Publish(PartitionKey(o.ID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(EventPedidoCreated)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

func (s *Service) publishCancelled(o *domain.Order) {
	if s.cancelled == nil {
		return
	}
	ev := Envelope{
		EventID:       uuid.NewString(),
		EventType:     EventPedidoCancelled,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      s.service,
		CorrelationID: fmt.Sprintf("%d", o.ID),
		Payload: kafkax.MustMarshal(PedidoCancelledPayload{
			PedidoID:   o.ID,
			ProductoID: o.ProductID,
			Cantidad:   o.Quantity,
		}),
	}
	s.cancelled.Publish(PartitionKey(o.ID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(EventPedidoCancelled)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
