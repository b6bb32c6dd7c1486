package service

import (
	"context"

	"github.com/adarsh-sng/JustRentIt/internal/domain"
	"github.com/adarsh-sng/JustRentIt/internal/rental"
	"github.com/adarsh-sng/JustRentIt/internal/repository"
)

// OrderLine is one rental request: a product reference, its term, and an
// optional caller-computed total used only as a cross-check.
type OrderLine struct {
	ProductID       int32
	Term            rental.Term
	TotalPriceCents int32 // 0 means not supplied
}

type CreateOrderInput struct {
	Line            OrderLine
	InvoiceAddress  *domain.Address
	DeliveryAddress *domain.Address
	Notes           string
}

type CreateCartOrderInput struct {
	Lines           []OrderLine
	TotalPriceCents int32
	InvoiceAddress  *domain.Address
	DeliveryAddress *domain.Address
	Notes           string
}

type CartOrderResult struct {
	Orders           []domain.Order
	CartOrderID      string
	TotalItems       int32
	TotalAmountCents int32
}

type OrderService interface {
	CreateOrder(ctx context.Context, renterID int32, in CreateOrderInput) (*domain.Order, error)
	CreateCartOrder(ctx context.Context, renterID int32, in CreateCartOrderInput) (*CartOrderResult, error)
	ReturnItem(ctx context.Context, callerID int32, orderID, notes string) (*domain.Order, error)
	CancelOrder(ctx context.Context, callerID int32, orderID, reason string) (*domain.Order, error)
	ListMyOrders(ctx context.Context, renterID int32, status string, page, pageSize int32) ([]domain.Order, int32, error)
	ListOrdersForMyProducts(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.Order, int32, error)
	GetOrder(ctx context.Context, callerID int32, orderID string) (*domain.Order, error)
}

type CreateProductInput struct {
	Name             string
	Description      string
	Category         string
	HourlyPriceCents int32
	DailyPriceCents  int32
	Availability     domain.ProductAvailability
	Pickup           string
}

type UpdateProductInput struct {
	Name             string
	Description      string
	Category         string
	HourlyPriceCents int32
	DailyPriceCents  int32
	Availability     domain.ProductAvailability
	Pickup           string
}

type ProductService interface {
	CreateProduct(ctx context.Context, ownerID int32, in CreateProductInput) (*domain.Product, error)
	// GetProduct returns the listing and bumps its view counter.
	GetProduct(ctx context.Context, id int32) (*domain.Product, error)
	ListProducts(ctx context.Context, filter repository.ProductFilter, page, pageSize int32) ([]domain.Product, int32, error)
	ListMyProducts(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Product, int32, error)
	UpdateProduct(ctx context.Context, callerID, id int32, in UpdateProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, callerID, id int32) error
}

type AuthService interface {
	Register(ctx context.Context, name, email, phone, password string) (*domain.User, error)
	// Login returns access and refresh tokens.
	Login(ctx context.Context, email, password string) (string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type UserService interface {
	GetProfile(ctx context.Context, userID int32) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int32, name, email, phone string) (*domain.User, error)
}

type EmailService interface {
	SendOrderConfirmation(ctx context.Context, email, name string, order *domain.Order) error
	SendReturnReminder(ctx context.Context, email, name string, order *domain.Order) error
	SendCancellationNotice(ctx context.Context, email, name string, order *domain.Order) error
}
