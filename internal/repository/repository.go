package repository

import (
	"context"
	"time"

	"github.com/adarsh-sng/JustRentIt/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

// ProductFilter narrows a catalog listing. Zero values mean "no filter".
type ProductFilter struct {
	Category      string
	Search        string
	MinPriceCents int32
	MaxPriceCents int32
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id int32) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	// Deactivate soft-deletes a listing; product rows are never removed.
	Deactivate(ctx context.Context, id int32) error
	List(ctx context.Context, filter ProductFilter, page, pageSize int32) ([]domain.Product, int32, error)
	ListByOwner(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Product, int32, error)

	// Counter increments are single atomic SQL updates, not read-modify-write.
	IncrementViewCount(ctx context.Context, id int32) error
	IncrementRentCount(ctx context.Context, id int32) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	// CreateBatch persists all orders of a cart checkout in one transaction.
	CreateBatch(ctx context.Context, orders []*domain.Order) error
	GetByOrderID(ctx context.Context, orderID string) (*domain.Order, error)
	Update(ctx context.Context, order *domain.Order) error
	ListByRenter(ctx context.Context, renterID int32, status string, page, pageSize int32) ([]domain.Order, int32, error)
	ListByProductOwner(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.Order, int32, error)
	ListByCartOrderID(ctx context.Context, cartOrderID string) ([]domain.Order, error)
	// ListOverdue returns active orders whose expected return is before asOf.
	ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Order, error)
}
