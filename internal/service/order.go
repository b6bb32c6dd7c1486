package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/adarsh-sng/JustRentIt/internal/domain"
	"github.com/adarsh-sng/JustRentIt/internal/logger"
	"github.com/adarsh-sng/JustRentIt/internal/metrics"
	"github.com/adarsh-sng/JustRentIt/internal/rental"
	"github.com/adarsh-sng/JustRentIt/internal/repository"
)

type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	emailSvc    EmailService
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	emailSvc EmailService,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		emailSvc:    emailSvc,
	}
}

// generateOrderID builds an externally visible order id from the current
// time plus a short random suffix, collision-resistant within the process.
func generateOrderID() string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	entropy := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:4])
	return "ORD" + ts + entropy
}

// unitPriceCents picks the price snapshot matching the rental type.
func unitPriceCents(p *domain.Product, term rental.Term) int32 {
	if term.Type() == domain.RentalTypeHourly {
		return p.HourlyPriceCents
	}
	return p.DailyPriceCents
}

// totalPriceCents recomputes the line total server-side from the product's
// unit price and the resolved duration. Caller-supplied totals are only a
// cross-check, never the persisted value.
func totalPriceCents(p *domain.Product, term rental.Term, res rental.Resolved) int32 {
	if t, ok := term.(rental.HourlyTerm); ok {
		return int32(math.Round(t.Hours * float64(p.HourlyPriceCents)))
	}
	return int32(math.Round(res.Days * float64(p.DailyPriceCents)))
}

// buildOrder runs the validation and pricing steps for one rental line and
// returns the unpersisted order record. No writes happen here, so cart
// checkouts can validate every line before the first insert.
func (s *orderService) buildOrder(ctx context.Context, renterID int32, line OrderLine, invoice, delivery *domain.Address, notes string, now time.Time) (*domain.Order, error) {
	if line.ProductID == 0 {
		return nil, domain.NewError(domain.ErrInvalidInput, "product id is required")
	}
	if line.Term == nil {
		return nil, domain.NewError(domain.ErrInvalidInput, "rental duration is required")
	}

	product, err := s.productRepo.GetByID(ctx, line.ProductID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.Errorf(domain.ErrNotFound, "product %d not found or not available", line.ProductID)
		}
		return nil, err
	}
	if !product.IsActive {
		return nil, domain.Errorf(domain.ErrNotFound, "product %s not found or not available", product.Name)
	}
	if product.OwnerID == renterID {
		return nil, domain.Errorf(domain.ErrForbidden, "you cannot rent your own product: %s", product.Name)
	}

	res, err := rental.Resolve(line.Term, now)
	if err != nil {
		return nil, err
	}

	total := totalPriceCents(product, line.Term, res)
	if total <= 0 {
		return nil, domain.Errorf(domain.ErrInvalidInput, "total price must be positive for %s", product.Name)
	}
	if line.TotalPriceCents != 0 && line.TotalPriceCents != total {
		return nil, domain.Errorf(domain.ErrInvalidInput,
			"total price mismatch for %s: expected %d, got %d", product.Name, total, line.TotalPriceCents)
	}

	deliveryAddr := invoice
	if delivery != nil {
		deliveryAddr = delivery
	}

	return &domain.Order{
		RenterID:         renterID,
		ProductID:        product.ID,
		ProductName:      product.Name,
		Category:         product.Category,
		UnitPriceCents:   unitPriceCents(product, line.Term),
		DurationDays:     res.Days,
		DurationHours:    res.Hours,
		RentalType:       line.Term.Type(),
		TotalPriceCents:  total,
		Status:           domain.OrderStatusActive,
		PlacedAt:         now,
		ExpectedReturnAt: res.ExpectedReturnAt,
		DeliveryAt:       now.Add(domain.DeliveryOffset),
		InvoiceAddress:   *invoice,
		DeliveryAddress:  *deliveryAddr,
		Notes:            notes,
	}, nil
}

func (s *orderService) CreateOrder(ctx context.Context, renterID int32, in CreateOrderInput) (*domain.Order, error) {
	if in.InvoiceAddress == nil {
		return nil, domain.NewError(domain.ErrInvalidInput, "invoice address is required")
	}

	now := time.Now()
	order, err := s.buildOrder(ctx, renterID, in.Line, in.InvoiceAddress, in.DeliveryAddress, in.Notes, now)
	if err != nil {
		return nil, err
	}
	order.OrderID = generateOrderID()

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	s.recordCreated(ctx, order)

	return order, nil
}

func (s *orderService) CreateCartOrder(ctx context.Context, renterID int32, in CreateCartOrderInput) (*CartOrderResult, error) {
	if len(in.Lines) == 0 {
		return nil, domain.NewError(domain.ErrInvalidInput, "cart items are required")
	}
	if in.InvoiceAddress == nil {
		return nil, domain.NewError(domain.ErrInvalidInput, "invoice address is required")
	}

	now := time.Now()
	cartOrderID := generateOrderID()

	// Pass 1: validate every line before writing anything. A failure on any
	// line aborts the whole checkout with no orders persisted.
	orders := make([]*domain.Order, 0, len(in.Lines))
	var total int32
	for i, line := range in.Lines {
		order, err := s.buildOrder(ctx, renterID, line, in.InvoiceAddress, in.DeliveryAddress, in.Notes, now)
		if err != nil {
			return nil, err
		}
		order.OrderID = fmt.Sprintf("%s-%d", cartOrderID, i+1)
		order.IsCartOrder = true
		order.CartOrderID = &cartOrderID
		total += order.TotalPriceCents
		orders = append(orders, order)
	}
	if in.TotalPriceCents != 0 && in.TotalPriceCents != total {
		return nil, domain.Errorf(domain.ErrInvalidInput,
			"cart total price mismatch: expected %d, got %d", total, in.TotalPriceCents)
	}

	// Pass 2: persist the whole batch in one transaction.
	if err := s.orderRepo.CreateBatch(ctx, orders); err != nil {
		return nil, fmt.Errorf("create cart orders: %w", err)
	}
	for _, order := range orders {
		s.recordCreated(ctx, order)
	}

	persisted, err := s.orderRepo.ListByCartOrderID(ctx, cartOrderID)
	if err != nil {
		return nil, fmt.Errorf("load cart orders: %w", err)
	}

	return &CartOrderResult{
		Orders:           persisted,
		CartOrderID:      cartOrderID,
		TotalItems:       int32(len(persisted)),
		TotalAmountCents: total,
	}, nil
}

// recordCreated applies the post-persist side effects of a new order: the
// product rent counter, metrics, and the confirmation email. All of them
// are best-effort and never fail the order.
func (s *orderService) recordCreated(ctx context.Context, order *domain.Order) {
	if err := s.productRepo.IncrementRentCount(ctx, order.ProductID); err != nil {
		logger.Warn("Failed to increment product rent count", "product_id", order.ProductID, "error", err)
	}
	metrics.OrdersCreated.WithLabelValues(string(order.RentalType)).Inc()

	renter, err := s.userRepo.GetByID(ctx, order.RenterID)
	if err != nil {
		logger.Warn("Failed to load renter for confirmation email", "renter_id", order.RenterID, "error", err)
		return
	}
	if err := s.emailSvc.SendOrderConfirmation(ctx, renter.Email, renter.Name, order); err != nil {
		logger.Warn("Failed to send order confirmation", "order_id", order.OrderID, "error", err)
	}
}

func (s *orderService) getOwned(ctx context.Context, callerID int32, orderID string) (*domain.Order, error) {
	order, err := s.orderRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(domain.ErrNotFound, "order not found")
		}
		return nil, err
	}
	if order.RenterID != callerID {
		return nil, domain.NewError(domain.ErrForbidden, "you can only act on your own orders")
	}
	return order, nil
}

func (s *orderService) ReturnItem(ctx context.Context, callerID int32, orderID, notes string) (*domain.Order, error) {
	order, err := s.getOwned(ctx, callerID, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.OrderStatusActive {
		return nil, domain.NewError(domain.ErrInvalidState, "order is not active")
	}

	now := time.Now()
	order.Status = domain.OrderStatusReturned
	order.ActualReturnAt = &now
	if notes != "" {
		order.Notes = notes
	}
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("return order: %w", err)
	}
	metrics.OrderTransitions.WithLabelValues(string(domain.OrderStatusReturned)).Inc()

	return order, nil
}

func (s *orderService) CancelOrder(ctx context.Context, callerID int32, orderID, reason string) (*domain.Order, error) {
	order, err := s.getOwned(ctx, callerID, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.OrderStatusActive {
		return nil, domain.NewError(domain.ErrInvalidState, "order cannot be cancelled")
	}
	if time.Since(order.PlacedAt) > domain.CancelWindow {
		return nil, domain.NewError(domain.ErrInvalidState, "order cannot be cancelled after 24 hours")
	}

	if reason == "" {
		reason = "Order cancelled by user"
	}
	order.Status = domain.OrderStatusCancelled
	if order.Notes != "" {
		order.Notes = order.Notes + "; " + reason
	} else {
		order.Notes = reason
	}
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("cancel order: %w", err)
	}
	metrics.OrderTransitions.WithLabelValues(string(domain.OrderStatusCancelled)).Inc()

	if renter, err := s.userRepo.GetByID(ctx, order.RenterID); err == nil {
		if err := s.emailSvc.SendCancellationNotice(ctx, renter.Email, renter.Name, order); err != nil {
			logger.Warn("Failed to send cancellation notice", "order_id", order.OrderID, "error", err)
		}
	}

	return order, nil
}

func validStatusFilter(status string) bool {
	switch domain.OrderStatus(status) {
	case "", domain.OrderStatusActive, domain.OrderStatusReturned, domain.OrderStatusCancelled:
		return true
	}
	return false
}

func (s *orderService) ListMyOrders(ctx context.Context, renterID int32, status string, page, pageSize int32) ([]domain.Order, int32, error) {
	if !validStatusFilter(status) {
		return nil, 0, domain.Errorf(domain.ErrInvalidInput, "unknown status filter: %s", status)
	}
	return s.orderRepo.ListByRenter(ctx, renterID, status, page, pageSize)
}

func (s *orderService) ListOrdersForMyProducts(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.Order, int32, error) {
	if !validStatusFilter(status) {
		return nil, 0, domain.Errorf(domain.ErrInvalidInput, "unknown status filter: %s", status)
	}
	return s.orderRepo.ListByProductOwner(ctx, ownerID, status, page, pageSize)
}

func (s *orderService) GetOrder(ctx context.Context, callerID int32, orderID string) (*domain.Order, error) {
	order, err := s.orderRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(domain.ErrNotFound, "order not found")
		}
		return nil, err
	}
	if order.RenterID == callerID {
		return order, nil
	}
	product, err := s.productRepo.GetByID(ctx, order.ProductID)
	if err != nil || product.OwnerID != callerID {
		return nil, domain.NewError(domain.ErrForbidden, "you can only view your own orders or orders for your products")
	}
	return order, nil
}
