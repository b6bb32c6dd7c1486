package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/adarsh-sng/JustRentIt/internal/domain"
	"github.com/adarsh-sng/JustRentIt/internal/repository"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*domain.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*domain.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type MockProductRepo struct {
	mock.Mock
}

func (m *MockProductRepo) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepo) GetByID(ctx context.Context, id int32) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*domain.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepo) Update(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepo) Deactivate(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepo) List(ctx context.Context, filter repository.ProductFilter, page, pageSize int32) ([]domain.Product, int32, error) {
	args := m.Called(ctx, filter, page, pageSize)
	products, _ := args.Get(0).([]domain.Product)
	total, _ := args.Get(1).(int32)
	return products, total, args.Error(2)
}

func (m *MockProductRepo) ListByOwner(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Product, int32, error) {
	args := m.Called(ctx, ownerID, page, pageSize)
	products, _ := args.Get(0).([]domain.Product)
	total, _ := args.Get(1).(int32)
	return products, total, args.Error(2)
}

func (m *MockProductRepo) IncrementViewCount(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepo) IncrementRentCount(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockOrderRepo struct {
	mock.Mock
}

func (m *MockOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepo) CreateBatch(ctx context.Context, orders []*domain.Order) error {
	args := m.Called(ctx, orders)
	return args.Error(0)
}

func (m *MockOrderRepo) GetByOrderID(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if o, ok := args.Get(0).(*domain.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepo) Update(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepo) ListByRenter(ctx context.Context, renterID int32, status string, page, pageSize int32) ([]domain.Order, int32, error) {
	args := m.Called(ctx, renterID, status, page, pageSize)
	orders, _ := args.Get(0).([]domain.Order)
	total, _ := args.Get(1).(int32)
	return orders, total, args.Error(2)
}

func (m *MockOrderRepo) ListByProductOwner(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.Order, int32, error) {
	args := m.Called(ctx, ownerID, status, page, pageSize)
	orders, _ := args.Get(0).([]domain.Order)
	total, _ := args.Get(1).(int32)
	return orders, total, args.Error(2)
}

func (m *MockOrderRepo) ListByCartOrderID(ctx context.Context, cartOrderID string) ([]domain.Order, error) {
	args := m.Called(ctx, cartOrderID)
	orders, _ := args.Get(0).([]domain.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepo) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Order, error) {
	args := m.Called(ctx, asOf)
	orders, _ := args.Get(0).([]domain.Order)
	return orders, args.Error(1)
}

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendOrderConfirmation(ctx context.Context, email, name string, order *domain.Order) error {
	args := m.Called(ctx, email, name, order)
	return args.Error(0)
}

func (m *MockEmailService) SendReturnReminder(ctx context.Context, email, name string, order *domain.Order) error {
	args := m.Called(ctx, email, name, order)
	return args.Error(0)
}

func (m *MockEmailService) SendCancellationNotice(ctx context.Context, email, name string, order *domain.Order) error {
	args := m.Called(ctx, email, name, order)
	return args.Error(0)
}
