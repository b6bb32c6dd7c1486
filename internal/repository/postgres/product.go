package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/adarsh-sng/JustRentIt/internal/domain"
	"github.com/adarsh-sng/JustRentIt/internal/repository"
)

type productRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, owner_id, owner_name, name, description, category,
	hourly_price_cents, daily_price_cents, availability, pickup, is_active,
	view_count, rent_count, created_on, updated_on`

func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `INSERT INTO products (owner_id, owner_name, name, description, category,
	          hourly_price_cents, daily_price_cents, availability, pickup, is_active, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		p.OwnerID, p.OwnerName, p.Name, p.Description, p.Category,
		p.HourlyPriceCents, p.DailyPriceCents, p.Availability, p.Pickup, p.IsActive, now, now,
	).Scan(&p.ID)
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	p := &domain.Product{}
	err := row.Scan(
		&p.ID, &p.OwnerID, &p.OwnerName, &p.Name, &p.Description, &p.Category,
		&p.HourlyPriceCents, &p.DailyPriceCents, &p.Availability, &p.Pickup, &p.IsActive,
		&p.ViewCount, &p.RentCount, &p.CreatedOn, &p.UpdatedOn,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *productRepository) GetByID(ctx context.Context, id int32) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return scanProduct(r.db.QueryRowContext(ctx, query, id))
}

func (r *productRepository) Update(ctx context.Context, p *domain.Product) error {
	query := `UPDATE products SET name=$1, description=$2, category=$3, hourly_price_cents=$4,
	          daily_price_cents=$5, availability=$6, pickup=$7, updated_on=$8 WHERE id=$9`
	_, err := r.db.ExecContext(ctx, query,
		p.Name, p.Description, p.Category, p.HourlyPriceCents,
		p.DailyPriceCents, p.Availability, p.Pickup, time.Now(), p.ID)
	return err
}

func (r *productRepository) Deactivate(ctx context.Context, id int32) error {
	query := `UPDATE products SET is_active = false, updated_on = $1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, time.Now(), id)
	return err
}

func (r *productRepository) List(ctx context.Context, filter repository.ProductFilter, page, pageSize int32) ([]domain.Product, int32, error) {
	base := `SELECT ` + productColumns + ` FROM products WHERE is_active = true`
	args := []any{}
	argIdx := 1
	if filter.Category != "" {
		base += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, filter.Category)
		argIdx++
	}
	if filter.Search != "" {
		base += fmt.Sprintf(" AND (name ILIKE $%d OR description ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}
	if filter.MinPriceCents > 0 {
		base += fmt.Sprintf(" AND daily_price_cents >= $%d", argIdx)
		args = append(args, filter.MinPriceCents)
		argIdx++
	}
	if filter.MaxPriceCents > 0 {
		base += fmt.Sprintf(" AND daily_price_cents <= $%d", argIdx)
		args = append(args, filter.MaxPriceCents)
		argIdx++
	}
	return r.listPage(ctx, base, args, argIdx, page, pageSize)
}

func (r *productRepository) ListByOwner(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Product, int32, error) {
	base := `SELECT ` + productColumns + ` FROM products WHERE owner_id = $1 AND is_active = true`
	return r.listPage(ctx, base, []any{ownerID}, 2, page, pageSize)
}

func (r *productRepository) listPage(ctx context.Context, base string, args []any, argIdx int, page, pageSize int32) ([]domain.Product, int32, error) {
	var count int32
	countQuery := "SELECT count(*) FROM (" + base + ") AS sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := base + fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, *p)
	}
	return products, count, rows.Err()
}

func (r *productRepository) IncrementViewCount(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `UPDATE products SET view_count = view_count + 1 WHERE id = $1`, id)
	return err
}

func (r *productRepository) IncrementRentCount(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `UPDATE products SET rent_count = rent_count + 1 WHERE id = $1`, id)
	return err
}
