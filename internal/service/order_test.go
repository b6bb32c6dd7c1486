package service_test

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/adarsh-sng/JustRentIt/internal/domain"
	"github.com/adarsh-sng/JustRentIt/internal/rental"
	"github.com/adarsh-sng/JustRentIt/internal/service"
)

func testAddress() *domain.Address {
	return &domain.Address{
		Name:    "Asha Rao",
		Email:   "asha@test.com",
		Phone:   "9999999999",
		Address: "12 MG Road",
		City:    "Bengaluru",
		Pincode: "560001",
	}
}

func testProduct(id, ownerID int32) *domain.Product {
	return &domain.Product{
		ID:               id,
		OwnerID:          ownerID,
		OwnerName:        "Owner",
		Name:             "DSLR Camera",
		Category:         "Electronics",
		HourlyPriceCents: 500,
		DailyPriceCents:  8000,
		IsActive:         true,
	}
}

func newOrderFixture() (*MockOrderRepo, *MockProductRepo, *MockUserRepo, *MockEmailService, service.OrderService) {
	orderRepo := new(MockOrderRepo)
	productRepo := new(MockProductRepo)
	userRepo := new(MockUserRepo)
	emailSvc := new(MockEmailService)
	svc := service.NewOrderService(orderRepo, productRepo, userRepo, emailSvc)
	return orderRepo, productRepo, userRepo, emailSvc, svc
}

func expectPostCreate(productRepo *MockProductRepo, userRepo *MockUserRepo, emailSvc *MockEmailService, productID, renterID int32) {
	productRepo.On("IncrementRentCount", mock.Anything, productID).Return(nil)
	userRepo.On("GetByID", mock.Anything, renterID).Return(&domain.User{ID: renterID, Name: "Asha", Email: "asha@test.com"}, nil)
	emailSvc.On("SendOrderConfirmation", mock.Anything, "asha@test.com", "Asha", mock.Anything).Return(nil)
}

func TestOrderService_CreateOrder_Hourly(t *testing.T) {
	orderRepo, productRepo, userRepo, emailSvc, svc := newOrderFixture()
	ctx := context.Background()

	productRepo.On("GetByID", ctx, int32(10)).Return(testProduct(10, 2), nil)
	orderRepo.On("Create", ctx, mock.Anything).Return(nil)
	expectPostCreate(productRepo, userRepo, emailSvc, 10, 1)

	before := time.Now()
	order, err := svc.CreateOrder(ctx, 1, service.CreateOrderInput{
		Line:           service.OrderLine{ProductID: 10, Term: rental.HourlyTerm{Hours: 3}},
		InvoiceAddress: testAddress(),
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.OrderID, "ORD"))
	assert.Equal(t, domain.OrderStatusActive, order.Status)
	assert.Equal(t, domain.RentalTypeHourly, order.RentalType)
	assert.InDelta(t, 0.125, order.DurationDays, 1e-9)
	require.NotNil(t, order.DurationHours)
	assert.InDelta(t, 3.0, *order.DurationHours, 1e-9)
	assert.Equal(t, int32(1500), order.TotalPriceCents)
	assert.Equal(t, int32(500), order.UnitPriceCents)
	assert.WithinDuration(t, before.Add(3*time.Hour), order.ExpectedReturnAt, time.Second)
	assert.WithinDuration(t, before.Add(24*time.Hour), order.DeliveryAt, time.Second)
	// Delivery defaults to the invoice address when none is supplied.
	assert.Equal(t, order.InvoiceAddress, order.DeliveryAddress)
	assert.False(t, order.IsCartOrder)
	assert.Nil(t, order.CartOrderID)

	orderRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
}

func TestOrderService_CreateOrder_DailyRange(t *testing.T) {
	orderRepo, productRepo, userRepo, emailSvc, svc := newOrderFixture()
	ctx := context.Background()

	productRepo.On("GetByID", ctx, int32(10)).Return(testProduct(10, 2), nil)
	orderRepo.On("Create", ctx, mock.Anything).Return(nil)
	expectPostCreate(productRepo, userRepo, emailSvc, 10, 1)

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	order, err := svc.CreateOrder(ctx, 1, service.CreateOrderInput{
		Line:           service.OrderLine{ProductID: 10, Term: rental.DailyRangeTerm{Start: start, End: end}},
		InvoiceAddress: testAddress(),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.RentalTypeDaily, order.RentalType)
	assert.Equal(t, 3.0, order.DurationDays)
	assert.Nil(t, order.DurationHours)
	assert.Equal(t, int32(24000), order.TotalPriceCents)
	assert.Equal(t, end, order.ExpectedReturnAt)
}

func TestOrderService_CreateOrder_SelfRentalForbidden(t *testing.T) {
	orderRepo, productRepo, _, _, svc := newOrderFixture()
	ctx := context.Background()

	productRepo.On("GetByID", ctx, int32(10)).Return(testProduct(10, 1), nil)

	_, err := svc.CreateOrder(ctx, 1, service.CreateOrderInput{
		Line:           service.OrderLine{ProductID: 10, Term: rental.DailyCountTerm{Days: 2}},
		InvoiceAddress: testAddress(),
	})
	require.Error(t, err)
	assert.Equal(t, domain.ErrForbidden, domain.KindOf(err))
	orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderService_CreateOrder_InactiveProductNotFound(t *testing.T) {
	_, productRepo, _, _, svc := newOrderFixture()
	ctx := context.Background()

	inactive := testProduct(10, 2)
	inactive.IsActive = false
	productRepo.On("GetByID", ctx, int32(10)).Return(inactive, nil)

	_, err := svc.CreateOrder(ctx, 1, service.CreateOrderInput{
		Line:           service.OrderLine{ProductID: 10, Term: rental.DailyCountTerm{Days: 2}},
		InvoiceAddress: testAddress(),
	})
	require.Error(t, err)
	assert.Equal(t, domain.ErrNotFound, domain.KindOf(err))
}

func TestOrderService_CreateOrder_MissingProductNotFound(t *testing.T) {
	_, productRepo, _, _, svc := newOrderFixture()
	ctx := context.Background()

	productRepo.On("GetByID", ctx, int32(99)).Return(nil, sql.ErrNoRows)

	_, err := svc.CreateOrder(ctx, 1, service.CreateOrderInput{
		Line:           service.OrderLine{ProductID: 99, Term: rental.DailyCountTerm{Days: 2}},
		InvoiceAddress: testAddress(),
	})
	require.Error(t, err)
	assert.Equal(t, domain.ErrNotFound, domain.KindOf(err))
}

func TestOrderService_CreateOrder_PriceMismatchRejected(t *testing.T) {
	orderRepo, productRepo, _, _, svc := newOrderFixture()
	ctx := context.Background()

	productRepo.On("GetByID", ctx, int32(10)).Return(testProduct(10, 2), nil)

	// 2 days at 8000 cents/day is 16000; the caller claims 15000.
	_, err := svc.CreateOrder(ctx, 1, service.CreateOrderInput{
		Line:           service.OrderLine{ProductID: 10, Term: rental.DailyCountTerm{Days: 2}, TotalPriceCents: 15000},
		InvoiceAddress: testAddress(),
	})
	require.Error(t, err)
	assert.Equal(t, domain.ErrInvalidInput, domain.KindOf(err))
	orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderService_CreateOrder_ValidationErrors(t *testing.T) {
	_, _, _, _, svc := newOrderFixture()
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, 1, service.CreateOrderInput{
		Line: service.OrderLine{ProductID: 10, Term: rental.DailyCountTerm{Days: 2}},
	})
	assert.Equal(t, domain.ErrInvalidInput, domain.KindOf(err))

	_, err = svc.CreateOrder(ctx, 1, service.CreateOrderInput{
		Line:           service.OrderLine{ProductID: 10},
		InvoiceAddress: testAddress(),
	})
	assert.Equal(t, domain.ErrInvalidInput, domain.KindOf(err))

	_, err = svc.CreateOrder(ctx, 1, service.CreateOrderInput{
		Line:           service.OrderLine{Term: rental.DailyCountTerm{Days: 2}},
		InvoiceAddress: testAddress(),
	})
	assert.Equal(t, domain.ErrInvalidInput, domain.KindOf(err))
}

func TestOrderService_CreateCartOrder(t *testing.T) {
	orderRepo, productRepo, userRepo, emailSvc, svc := newOrderFixture()
	ctx := context.Background()

	camera := testProduct(10, 2)
	drill := testProduct(11, 3)
	drill.Name = "Power Drill"
	drill.Category = "Tools"
	drill.DailyPriceCents = 3000

	productRepo.On("GetByID", ctx, int32(10)).Return(camera, nil)
	productRepo.On("GetByID", ctx, int32(11)).Return(drill, nil)

	var batch []*domain.Order
	orderRepo.On("CreateBatch", ctx, mock.Anything).Run(func(args mock.Arguments) {
		batch = args.Get(1).([]*domain.Order)
	}).Return(nil)
	orderRepo.On("ListByCartOrderID", ctx, mock.Anything).Return(
		[]domain.Order{{OrderID: "x-1"}, {OrderID: "x-2"}}, nil)

	expectPostCreate(productRepo, userRepo, emailSvc, 10, 1)
	productRepo.On("IncrementRentCount", mock.Anything, int32(11)).Return(nil)

	result, err := svc.CreateCartOrder(ctx, 1, service.CreateCartOrderInput{
		Lines: []service.OrderLine{
			{ProductID: 10, Term: rental.DailyCountTerm{Days: 2}},
			{ProductID: 11, Term: rental.DailyCountTerm{Days: 1}},
		},
		InvoiceAddress: testAddress(),
	})
	require.NoError(t, err)

	require.Len(t, batch, 2)
	assert.Equal(t, result.CartOrderID+"-1", batch[0].OrderID)
	assert.Equal(t, result.CartOrderID+"-2", batch[1].OrderID)
	for _, o := range batch {
		assert.True(t, o.IsCartOrder)
		require.NotNil(t, o.CartOrderID)
		assert.Equal(t, result.CartOrderID, *o.CartOrderID)
	}
	assert.Equal(t, int32(2), result.TotalItems)
	assert.Equal(t, int32(19000), result.TotalAmountCents)
	orderRepo.AssertExpectations(t)
}

func TestOrderService_CreateCartOrder_OneBadLineAbortsAll(t *testing.T) {
	orderRepo, productRepo, _, _, svc := newOrderFixture()
	ctx := context.Background()

	productRepo.On("GetByID", ctx, int32(10)).Return(testProduct(10, 2), nil)
	// The second product belongs to the caller.
	productRepo.On("GetByID", ctx, int32(11)).Return(testProduct(11, 1), nil)

	_, err := svc.CreateCartOrder(ctx, 1, service.CreateCartOrderInput{
		Lines: []service.OrderLine{
			{ProductID: 10, Term: rental.DailyCountTerm{Days: 2}},
			{ProductID: 11, Term: rental.DailyCountTerm{Days: 1}},
		},
		InvoiceAddress: testAddress(),
	})
	require.Error(t, err)
	assert.Equal(t, domain.ErrForbidden, domain.KindOf(err))
	orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	orderRepo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestOrderService_CreateCartOrder_TotalMismatchRejected(t *testing.T) {
	orderRepo, productRepo, _, _, svc := newOrderFixture()
	ctx := context.Background()

	productRepo.On("GetByID", ctx, int32(10)).Return(testProduct(10, 2), nil)

	_, err := svc.CreateCartOrder(ctx, 1, service.CreateCartOrderInput{
		Lines: []service.OrderLine{
			{ProductID: 10, Term: rental.DailyCountTerm{Days: 2}},
		},
		TotalPriceCents: 9999,
		InvoiceAddress:  testAddress(),
	})
	require.Error(t, err)
	assert.Equal(t, domain.ErrInvalidInput, domain.KindOf(err))
	orderRepo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestOrderService_CreateCartOrder_EmptyCartRejected(t *testing.T) {
	_, _, _, _, svc := newOrderFixture()

	_, err := svc.CreateCartOrder(context.Background(), 1, service.CreateCartOrderInput{
		InvoiceAddress: testAddress(),
	})
	require.Error(t, err)
	assert.Equal(t, domain.ErrInvalidInput, domain.KindOf(err))
}

func activeOrder(renterID int32) *domain.Order {
	return &domain.Order{
		ID:        1,
		OrderID:   "ORDTEST1",
		RenterID:  renterID,
		ProductID: 10,
		Status:    domain.OrderStatusActive,
		PlacedAt:  time.Now().Add(-time.Hour),
	}
}

func TestOrderService_ReturnItem(t *testing.T) {
	orderRepo, _, _, _, svc := newOrderFixture()
	ctx := context.Background()

	orderRepo.On("GetByOrderID", ctx, "ORDTEST1").Return(activeOrder(1), nil)
	orderRepo.On("Update", ctx, mock.MatchedBy(func(o *domain.Order) bool {
		return o.Status == domain.OrderStatusReturned && o.ActualReturnAt != nil
	})).Return(nil)

	order, err := svc.ReturnItem(ctx, 1, "ORDTEST1", "left at reception")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusReturned, order.Status)
	assert.Equal(t, "left at reception", order.Notes)
	orderRepo.AssertExpectations(t)
}

func TestOrderService_ReturnItem_AlreadyReturned(t *testing.T) {
	orderRepo, _, _, _, svc := newOrderFixture()
	ctx := context.Background()

	returned := activeOrder(1)
	returned.Status = domain.OrderStatusReturned
	orderRepo.On("GetByOrderID", ctx, "ORDTEST1").Return(returned, nil)

	_, err := svc.ReturnItem(ctx, 1, "ORDTEST1", "")
	require.Error(t, err)
	assert.Equal(t, domain.ErrInvalidState, domain.KindOf(err))
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestOrderService_ReturnItem_NotRenterForbidden(t *testing.T) {
	orderRepo, _, _, _, svc := newOrderFixture()
	ctx := context.Background()

	orderRepo.On("GetByOrderID", ctx, "ORDTEST1").Return(activeOrder(1), nil)

	_, err := svc.ReturnItem(ctx, 2, "ORDTEST1", "")
	require.Error(t, err)
	assert.Equal(t, domain.ErrForbidden, domain.KindOf(err))
}

func TestOrderService_CancelOrder_WithinWindow(t *testing.T) {
	orderRepo, _, userRepo, emailSvc, svc := newOrderFixture()
	ctx := context.Background()

	order := activeOrder(1)
	order.PlacedAt = time.Now().Add(-23*time.Hour - 59*time.Minute)
	order.Notes = "handle with care"
	orderRepo.On("GetByOrderID", ctx, "ORDTEST1").Return(order, nil)
	orderRepo.On("Update", ctx, mock.MatchedBy(func(o *domain.Order) bool {
		return o.Status == domain.OrderStatusCancelled
	})).Return(nil)
	userRepo.On("GetByID", ctx, int32(1)).Return(&domain.User{ID: 1, Name: "Asha", Email: "asha@test.com"}, nil)
	emailSvc.On("SendCancellationNotice", ctx, "asha@test.com", "Asha", mock.Anything).Return(nil)

	cancelled, err := svc.CancelOrder(ctx, 1, "ORDTEST1", "")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, cancelled.Status)
	assert.Equal(t, "handle with care; Order cancelled by user", cancelled.Notes)
	orderRepo.AssertExpectations(t)
}

func TestOrderService_CancelOrder_PastWindowRejected(t *testing.T) {
	orderRepo, _, _, _, svc := newOrderFixture()
	ctx := context.Background()

	order := activeOrder(1)
	order.PlacedAt = time.Now().Add(-24*time.Hour - time.Minute)
	orderRepo.On("GetByOrderID", ctx, "ORDTEST1").Return(order, nil)

	_, err := svc.CancelOrder(ctx, 1, "ORDTEST1", "changed my mind")
	require.Error(t, err)
	assert.Equal(t, domain.ErrInvalidState, domain.KindOf(err))
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestOrderService_CancelOrder_NotActiveRejected(t *testing.T) {
	orderRepo, _, _, _, svc := newOrderFixture()
	ctx := context.Background()

	cancelled := activeOrder(1)
	cancelled.Status = domain.OrderStatusCancelled
	orderRepo.On("GetByOrderID", ctx, "ORDTEST1").Return(cancelled, nil)

	_, err := svc.CancelOrder(ctx, 1, "ORDTEST1", "")
	require.Error(t, err)
	assert.Equal(t, domain.ErrInvalidState, domain.KindOf(err))
}

func TestOrderService_GetOrder_Access(t *testing.T) {
	orderRepo, productRepo, _, _, svc := newOrderFixture()
	ctx := context.Background()

	order := activeOrder(1)
	orderRepo.On("GetByOrderID", ctx, "ORDTEST1").Return(order, nil)
	productRepo.On("GetByID", ctx, int32(10)).Return(testProduct(10, 2), nil)

	// Renter sees it.
	got, err := svc.GetOrder(ctx, 1, "ORDTEST1")
	require.NoError(t, err)
	assert.Equal(t, "ORDTEST1", got.OrderID)

	// The product owner sees it too.
	got, err = svc.GetOrder(ctx, 2, "ORDTEST1")
	require.NoError(t, err)
	assert.Equal(t, "ORDTEST1", got.OrderID)

	// A third party does not.
	_, err = svc.GetOrder(ctx, 3, "ORDTEST1")
	require.Error(t, err)
	assert.Equal(t, domain.ErrForbidden, domain.KindOf(err))
}

func TestOrderService_GetOrder_NotFound(t *testing.T) {
	orderRepo, _, _, _, svc := newOrderFixture()
	ctx := context.Background()

	orderRepo.On("GetByOrderID", ctx, "NOPE").Return(nil, sql.ErrNoRows)

	_, err := svc.GetOrder(ctx, 1, "NOPE")
	require.Error(t, err)
	assert.Equal(t, domain.ErrNotFound, domain.KindOf(err))
}

func TestOrderService_ListMyOrders_StatusFilter(t *testing.T) {
	orderRepo, _, _, _, svc := newOrderFixture()
	ctx := context.Background()

	orderRepo.On("ListByRenter", ctx, int32(1), "active", int32(1), int32(20)).
		Return([]domain.Order{{OrderID: "ORDTEST1"}}, int32(1), nil)

	orders, total, err := svc.ListMyOrders(ctx, 1, "active", 1, 20)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, int32(1), total)

	_, _, err = svc.ListMyOrders(ctx, 1, "shipped", 1, 20)
	require.Error(t, err)
	assert.Equal(t, domain.ErrInvalidInput, domain.KindOf(err))
}
