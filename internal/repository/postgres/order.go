package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/adarsh-sng/JustRentIt/internal/domain"
	"github.com/adarsh-sng/JustRentIt/internal/repository"
)

type orderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `id, order_id, renter_id, product_id, product_name, category, unit_price_cents,
	duration_days, duration_hours, rental_type, total_price_cents, status,
	placed_at, expected_return_at, delivery_at, actual_return_at,
	invoice_address, delivery_address, notes, is_cart_order, cart_order_id, created_on, updated_on`

func (r *orderRepository) Create(ctx context.Context, o *domain.Order) error {
	return r.insert(ctx, r.db, o)
}

func (r *orderRepository) CreateBatch(ctx context.Context, orders []*domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin cart order tx: %w", err)
	}
	for _, o := range orders {
		if err := r.insert(ctx, tx, o); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

type execQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *orderRepository) insert(ctx context.Context, q execQuerier, o *domain.Order) error {
	invoice, err := json.Marshal(o.InvoiceAddress)
	if err != nil {
		return fmt.Errorf("marshal invoice address: %w", err)
	}
	delivery, err := json.Marshal(o.DeliveryAddress)
	if err != nil {
		return fmt.Errorf("marshal delivery address: %w", err)
	}

	query := `INSERT INTO orders (order_id, renter_id, product_id, product_name, category, unit_price_cents,
	          duration_days, duration_hours, rental_type, total_price_cents, status,
	          placed_at, expected_return_at, delivery_at, invoice_address, delivery_address,
	          notes, is_cart_order, cart_order_id, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	          RETURNING id`
	now := time.Now()
	return q.QueryRowContext(ctx, query,
		o.OrderID, o.RenterID, o.ProductID, o.ProductName, o.Category, o.UnitPriceCents,
		o.DurationDays, o.DurationHours, o.RentalType, o.TotalPriceCents, o.Status,
		o.PlacedAt, o.ExpectedReturnAt, o.DeliveryAt, invoice, delivery,
		o.Notes, o.IsCartOrder, o.CartOrderID, now, now,
	).Scan(&o.ID)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	o := &domain.Order{}
	var invoice, delivery []byte
	err := row.Scan(
		&o.ID, &o.OrderID, &o.RenterID, &o.ProductID, &o.ProductName, &o.Category, &o.UnitPriceCents,
		&o.DurationDays, &o.DurationHours, &o.RentalType, &o.TotalPriceCents, &o.Status,
		&o.PlacedAt, &o.ExpectedReturnAt, &o.DeliveryAt, &o.ActualReturnAt,
		&invoice, &delivery, &o.Notes, &o.IsCartOrder, &o.CartOrderID, &o.CreatedOn, &o.UpdatedOn,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(invoice, &o.InvoiceAddress); err != nil {
		return nil, fmt.Errorf("unmarshal invoice address: %w", err)
	}
	if err := json.Unmarshal(delivery, &o.DeliveryAddress); err != nil {
		return nil, fmt.Errorf("unmarshal delivery address: %w", err)
	}
	return o, nil
}

func (r *orderRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_id = $1`
	return scanOrder(r.db.QueryRowContext(ctx, query, orderID))
}

func (r *orderRepository) Update(ctx context.Context, o *domain.Order) error {
	query := `UPDATE orders SET status=$1, actual_return_at=$2, notes=$3, updated_on=$4 WHERE id=$5`
	_, err := r.db.ExecContext(ctx, query, o.Status, o.ActualReturnAt, o.Notes, time.Now(), o.ID)
	return err
}

func (r *orderRepository) ListByRenter(ctx context.Context, renterID int32, status string, page, pageSize int32) ([]domain.Order, int32, error) {
	base := `SELECT ` + orderColumns + ` FROM orders WHERE renter_id = $1`
	args := []any{renterID}
	argIdx := 2
	if status != "" {
		base += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}
	return r.listPage(ctx, base, args, argIdx, page, pageSize)
}

func (r *orderRepository) ListByProductOwner(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.Order, int32, error) {
	base := `SELECT o.id, o.order_id, o.renter_id, o.product_id, o.product_name, o.category, o.unit_price_cents,
	         o.duration_days, o.duration_hours, o.rental_type, o.total_price_cents, o.status,
	         o.placed_at, o.expected_return_at, o.delivery_at, o.actual_return_at,
	         o.invoice_address, o.delivery_address, o.notes, o.is_cart_order, o.cart_order_id, o.created_on, o.updated_on
	         FROM orders o JOIN products p ON p.id = o.product_id WHERE p.owner_id = $1`
	args := []any{ownerID}
	argIdx := 2
	if status != "" {
		base += fmt.Sprintf(" AND o.status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}
	return r.listPage(ctx, base, args, argIdx, page, pageSize)
}

func (r *orderRepository) listPage(ctx context.Context, base string, args []any, argIdx int, page, pageSize int32) ([]domain.Order, int32, error) {
	var count int32
	countQuery := "SELECT count(*) FROM (" + base + ") AS sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := base + fmt.Sprintf(" ORDER BY placed_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, *o)
	}
	return orders, count, rows.Err()
}

func (r *orderRepository) ListByCartOrderID(ctx context.Context, cartOrderID string) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE cart_order_id = $1 ORDER BY order_id`
	rows, err := r.db.QueryContext(ctx, query, cartOrderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func (r *orderRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE status = $1 AND expected_return_at < $2 ORDER BY expected_return_at`
	rows, err := r.db.QueryContext(ctx, query, domain.OrderStatusActive, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}
