package domain

import "time"

type OrderStatus string

const (
	OrderStatusActive    OrderStatus = "active"
	OrderStatusReturned  OrderStatus = "returned"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type RentalType string

const (
	RentalTypeHourly RentalType = "hourly"
	RentalTypeDaily  RentalType = "daily"
)

// MinDurationDays is the floor for persisted rental durations. Hourly
// rentals collapse to fractional days and bottom out here.
const MinDurationDays = 0.1

// CancelWindow is how long after placement an order may still be cancelled.
const CancelWindow = 24 * time.Hour

// DeliveryOffset is the fixed delay between placement and delivery.
const DeliveryOffset = 24 * time.Hour

// Address is a full contact + postal address, embedded in orders as a
// snapshot so later profile edits don't rewrite order history.
type Address struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	Pincode string `json:"pincode"`
}

// Order is one persisted rental transaction for a single product and renter.
// Product name, category and unit price are denormalized at creation time;
// later catalog edits do not affect existing orders.
type Order struct {
	ID      int32  `json:"id"`
	OrderID string `json:"order_id"`

	RenterID  int32 `json:"renter_id"`
	ProductID int32 `json:"product_id"`

	ProductName    string `json:"product_name"`
	Category       string `json:"category"`
	UnitPriceCents int32  `json:"unit_price_cents"`

	DurationDays  float64    `json:"duration_days"`
	DurationHours *float64   `json:"duration_hours,omitempty"`
	RentalType    RentalType `json:"rental_type"`

	TotalPriceCents int32       `json:"total_price_cents"`
	Status          OrderStatus `json:"status"`

	PlacedAt         time.Time  `json:"placed_at"`
	ExpectedReturnAt time.Time  `json:"expected_return_at"`
	DeliveryAt       time.Time  `json:"delivery_at"`
	ActualReturnAt   *time.Time `json:"actual_return_at,omitempty"`

	InvoiceAddress  Address `json:"invoice_address"`
	DeliveryAddress Address `json:"delivery_address"`

	Notes string `json:"notes,omitempty"`

	IsCartOrder bool    `json:"is_cart_order"`
	CartOrderID *string `json:"cart_order_id,omitempty"`

	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}
