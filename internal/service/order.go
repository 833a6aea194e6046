package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mathanmathan27/aarvel-store/internal/domain/models"
	"github.com/mathanmathan27/aarvel-store/internal/storage"
)

// ErrLedgerUnavailable signals that an order could not be written to the
// ledger. CreateOrder still returns the order alongside it so the caller can
// decide whether to surface the degradation.
var ErrLedgerUnavailable = errors.New("order ledger unavailable")

// orderIDLength is the length of the uppercase-hex order id shown to
// customers.
const orderIDLength = 8

// OrderSubmission carries the raw checkout form fields. Missing fields stay
// empty strings; the submitted price never appears here because price is
// always recomputed from the pack size.
type OrderSubmission struct {
	Name    string
	Phone   string
	Street  string
	City    string
	State   string
	Pincode string
	Size    int
}

type OrderService interface {
	CreateOrder(ctx context.Context, sub OrderSubmission) (*models.Order, error)
	GetOrder(ctx context.Context, orderID string) (*models.Order, error)
	ListOrders(ctx context.Context) ([]*models.Order, error)
}

type orderService struct {
	log         *slog.Logger
	ledger      storage.LedgerStorage
	productName string
}

func NewOrderService(log *slog.Logger, ledger storage.LedgerStorage, productName string) OrderService {
	return &orderService{
		log:         log,
		ledger:      ledger,
		productName: productName,
	}
}

// CreateOrder turns a checkout submission into a Pending order and appends it
// to the ledger. The order id is assigned here exactly once and never
// regenerated. When the ledger append fails the order is still returned,
// wrapped with ErrLedgerUnavailable.
func (s *orderService) CreateOrder(ctx context.Context, sub OrderSubmission) (*models.Order, error) {
	const op = "service.OrderService.CreateOrder"
	logger := s.log.With(slog.String("op", op))

	size := sub.Size
	if !models.ValidSize(size) {
		logger.Warn("unrecognized pack size, defaulting to small pack", slog.Int("size", size))
		size = models.PackSmall
	}

	order := &models.Order{
		OrderID:     newOrderID(),
		Name:        sub.Name,
		Phone:       sub.Phone,
		Street:      sub.Street,
		City:        sub.City,
		State:       sub.State,
		Pincode:     sub.Pincode,
		Quantity:    size,
		Price:       models.PriceFor(size),
		ProductName: fmt.Sprintf("%s %dg", s.productName, size),
		Status:      models.StatusPending,
		CreatedAt:   time.Now(),
	}

	logger.Info("creating order",
		slog.String("orderID", order.OrderID),
		slog.Int("size", order.Quantity),
		slog.Int("price", order.Price),
	)

	if err := s.ledger.Append(ctx, order); err != nil {
		logger.Error("failed to append order to ledger", slog.Any("error", err))
		return order, fmt.Errorf("%s: %w: %v", op, ErrLedgerUnavailable, err)
	}

	logger.Info("order recorded", slog.String("orderID", order.OrderID))
	return order, nil
}

// GetOrder returns the ledger row for an order id. storage.ErrOrderNotFound
// passes through untouched so callers can map it to a not-found response.
func (s *orderService) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	const op = "service.OrderService.GetOrder"

	order, err := s.ledger.FindByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, storage.ErrOrderNotFound) {
			return nil, err
		}
		s.log.Error("failed to look up order", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context) ([]*models.Order, error) {
	const op = "service.OrderService.ListOrders"

	orders, err := s.ledger.ListOrders(ctx)
	if err != nil {
		s.log.Error("failed to list orders", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return orders, nil
}

// newOrderID returns a short human-shareable token: a random uuid truncated
// to 8 uppercase hex characters.
func newOrderID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:orderIDLength])
}
