package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/adarsh-sng/JustRentIt/internal/domain"
	"github.com/adarsh-sng/JustRentIt/internal/rental"
	"github.com/adarsh-sng/JustRentIt/internal/service"
)

// OrderHandler exposes order placement, lifecycle, and query endpoints.
type OrderHandler struct {
	orders service.OrderService
}

func NewOrderHandler(orders service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// termPayload carries the duration fields of an order line. Exactly one
// shape must be present: hours, a start/end date pair, or a day count.
type termPayload struct {
	Hours     float64 `json:"hours,omitempty"`
	Days      float64 `json:"days,omitempty"`
	StartDate string  `json:"start_date,omitempty"`
	EndDate   string  `json:"end_date,omitempty"`
}

const dateLayout = "2006-01-02"

// term decodes the payload into a concrete rental term. Precedence is
// hours, then a date range, then a day count. A payload with none of
// them is invalid; there is no implicit default duration.
func (p termPayload) term() (rental.Term, error) {
	switch {
	case p.Hours != 0:
		return rental.HourlyTerm{Hours: p.Hours}, nil
	case p.StartDate != "" || p.EndDate != "":
		if p.StartDate == "" || p.EndDate == "" {
			return nil, domain.NewError(domain.ErrInvalidInput, "both start_date and end_date are required for a date range")
		}
		start, err := time.Parse(dateLayout, p.StartDate)
		if err != nil {
			return nil, domain.NewError(domain.ErrInvalidInput, "start_date must be formatted as YYYY-MM-DD")
		}
		end, err := time.Parse(dateLayout, p.EndDate)
		if err != nil {
			return nil, domain.NewError(domain.ErrInvalidInput, "end_date must be formatted as YYYY-MM-DD")
		}
		return rental.DailyRangeTerm{Start: start, End: end}, nil
	case p.Days != 0:
		return rental.DailyCountTerm{Days: p.Days}, nil
	default:
		return nil, domain.NewError(domain.ErrInvalidInput, "rental duration is required: provide hours, days, or start_date and end_date")
	}
}

type createOrderRequest struct {
	ProductID int32 `json:"product_id"`
	termPayload
	TotalPriceCents int32           `json:"total_price_cents,omitempty"`
	InvoiceAddress  *domain.Address `json:"invoice_address"`
	DeliveryAddress *domain.Address `json:"delivery_address,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	renterID, err := callerID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	term, err := req.term()
	if err != nil {
		writeError(w, err)
		return
	}

	order, err := h.orders.CreateOrder(r.Context(), renterID, service.CreateOrderInput{
		Line: service.OrderLine{
			ProductID:       req.ProductID,
			Term:            term,
			TotalPriceCents: req.TotalPriceCents,
		},
		InvoiceAddress:  req.InvoiceAddress,
		DeliveryAddress: req.DeliveryAddress,
		Notes:           req.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

type cartItemRequest struct {
	ProductID int32 `json:"product_id"`
	termPayload
	TotalPriceCents int32 `json:"total_price_cents,omitempty"`
}

type createCartOrderRequest struct {
	Items           []cartItemRequest `json:"items"`
	TotalPriceCents int32             `json:"total_price_cents,omitempty"`
	InvoiceAddress  *domain.Address   `json:"invoice_address"`
	DeliveryAddress *domain.Address   `json:"delivery_address,omitempty"`
	Notes           string            `json:"notes,omitempty"`
}

type cartOrderResponse struct {
	Orders           []domain.Order `json:"orders"`
	CartOrderID      string         `json:"cart_order_id"`
	TotalItems       int32          `json:"total_items"`
	TotalAmountCents int32          `json:"total_amount_cents"`
}

func (h *OrderHandler) CreateCart(w http.ResponseWriter, r *http.Request) {
	renterID, err := callerID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req createCartOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	lines := make([]service.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		term, err := item.term()
		if err != nil {
			writeError(w, err)
			return
		}
		lines = append(lines, service.OrderLine{
			ProductID:       item.ProductID,
			Term:            term,
			TotalPriceCents: item.TotalPriceCents,
		})
	}

	result, err := h.orders.CreateCartOrder(r.Context(), renterID, service.CreateCartOrderInput{
		Lines:           lines,
		TotalPriceCents: req.TotalPriceCents,
		InvoiceAddress:  req.InvoiceAddress,
		DeliveryAddress: req.DeliveryAddress,
		Notes:           req.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, cartOrderResponse{
		Orders:           result.Orders,
		CartOrderID:      result.CartOrderID,
		TotalItems:       result.TotalItems,
		TotalAmountCents: result.TotalAmountCents,
	})
}

type orderListResponse struct {
	Orders     []domain.Order `json:"orders"`
	Pagination pagination     `json:"pagination"`
}

func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	renterID, err := callerID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	page, pageSize := pageParams(r)
	orders, total, err := h.orders.ListMyOrders(r.Context(), renterID, r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, orderListResponse{
		Orders:     orders,
		Pagination: newPagination(page, pageSize, total),
	})
}

func (h *OrderHandler) ListForMyProducts(w http.ResponseWriter, r *http.Request) {
	ownerID, err := callerID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	page, pageSize := pageParams(r)
	orders, total, err := h.orders.ListOrdersForMyProducts(r.Context(), ownerID, r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, orderListResponse{
		Orders:     orders,
		Pagination: newPagination(page, pageSize, total),
	})
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	order, err := h.orders.GetOrder(r.Context(), caller, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

type returnRequest struct {
	Notes string `json:"notes,omitempty"`
}

func (h *OrderHandler) Return(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req returnRequest
	if r.Body != nil {
		// An empty body is fine; notes are optional.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	order, err := h.orders.ReturnItem(r.Context(), caller, mux.Vars(r)["id"], req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

type cancelRequest struct {
	Reason string `json:"reason,omitempty"`
}

func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req cancelRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	order, err := h.orders.CancelOrder(r.Context(), caller, mux.Vars(r)["id"], req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, order)
}
