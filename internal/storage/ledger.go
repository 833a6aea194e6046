package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mathanmathan27/aarvel-store/internal/domain/models"
)

var ErrOrderNotFound = errors.New("order not found")

// LedgerStorage is the append-only order ledger, one row per order keyed by
// order_id. UpdateStatus only moves rows out of Pending, so terminal
// statuses are stable.
type LedgerStorage interface {
	// Append inserts a new order row.
	Append(ctx context.Context, order *models.Order) error
	// FindByOrderID returns the row for the given order id.
	FindByOrderID(ctx context.Context, orderID string) (*models.Order, error)
	// UpdateStatus moves a Pending row to the given status. Returns
	// ErrOrderNotFound when no Pending row with that id exists.
	UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) error
	// ListOrders returns all orders, newest first.
	ListOrders(ctx context.Context) ([]*models.Order, error)
}

// ledgerRepository is the Postgres-backed implementation of LedgerStorage.
type ledgerRepository struct {
	db *sql.DB
}

// NewLedgerRepository creates the order ledger repository.
func NewLedgerRepository(db *sql.DB) LedgerStorage {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) Append(ctx context.Context, order *models.Order) error {
	query := `INSERT INTO orders (order_id, name, phone, street, city, state, pincode, quantity, price, product_name, status, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.ExecContext(ctx, query,
		order.OrderID, order.Name, order.Phone, order.Street, order.City,
		order.State, order.Pincode, order.Quantity, order.Price,
		order.ProductName, order.Status, order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append order: %w", err)
	}
	return nil
}

func (r *ledgerRepository) FindByOrderID(ctx context.Context, orderID string) (*models.Order, error) {
	query := `SELECT order_id, name, phone, street, city, state, pincode, quantity, price, product_name, status, created_at
	          FROM orders WHERE order_id = $1`
	order := &models.Order{}
	row := r.db.QueryRowContext(ctx, query, orderID)
	if err := row.Scan(
		&order.OrderID, &order.Name, &order.Phone, &order.Street, &order.City,
		&order.State, &order.Pincode, &order.Quantity, &order.Price,
		&order.ProductName, &order.Status, &order.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *ledgerRepository) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) error {
	query := `UPDATE orders SET status = $1 WHERE order_id = $2 AND status = $3`
	res, err := r.db.ExecContext(ctx, query, status, orderID, models.StatusPending)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *ledgerRepository) ListOrders(ctx context.Context) ([]*models.Order, error) {
	query := `SELECT order_id, name, phone, street, city, state, pincode, quantity, price, product_name, status, created_at
	          FROM orders ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order := &models.Order{}
		if err := rows.Scan(
			&order.OrderID, &order.Name, &order.Phone, &order.Street, &order.City,
			&order.State, &order.Pincode, &order.Quantity, &order.Price,
			&order.ProductName, &order.Status, &order.CreatedAt,
		); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}
