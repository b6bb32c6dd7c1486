package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/adarsh-sng/JustRentIt/internal/domain"
	"github.com/adarsh-sng/JustRentIt/internal/repository"
	"github.com/adarsh-sng/JustRentIt/internal/service"
)

type ProductHandler struct {
	products service.ProductService
}

func NewProductHandler(products service.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

type productRequest struct {
	Name             string                     `json:"name"`
	Description      string                     `json:"description"`
	Category         string                     `json:"category"`
	HourlyPriceCents int32                      `json:"hourly_price_cents"`
	DailyPriceCents  int32                      `json:"daily_price_cents"`
	Availability     domain.ProductAvailability `json:"availability,omitempty"`
	Pickup           string                     `json:"pickup,omitempty"`
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, err := callerID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	product, err := h.products.CreateProduct(r.Context(), ownerID, service.CreateProductInput{
		Name:             req.Name,
		Description:      req.Description,
		Category:         req.Category,
		HourlyPriceCents: req.HourlyPriceCents,
		DailyPriceCents:  req.DailyPriceCents,
		Availability:     req.Availability,
		Pickup:           req.Pickup,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

func productID(r *http.Request) (int32, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		return 0, domain.NewError(domain.ErrInvalidInput, "invalid product id")
	}
	return int32(id), nil
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	product, err := h.products.GetProduct(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

type productListResponse struct {
	Products   []domain.Product `json:"products"`
	Pagination pagination       `json:"pagination"`
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.ProductFilter{
		Category: q.Get("category"),
		Search:   q.Get("search"),
	}
	if v, err := strconv.Atoi(q.Get("min_price_cents")); err == nil && v > 0 {
		filter.MinPriceCents = int32(v)
	}
	if v, err := strconv.Atoi(q.Get("max_price_cents")); err == nil && v > 0 {
		filter.MaxPriceCents = int32(v)
	}

	page, pageSize := pageParams(r)
	products, total, err := h.products.ListProducts(r.Context(), filter, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, productListResponse{
		Products:   products,
		Pagination: newPagination(page, pageSize, total),
	})
}

func (h *ProductHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	ownerID, err := callerID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	page, pageSize := pageParams(r)
	products, total, err := h.products.ListMyProducts(r.Context(), ownerID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, productListResponse{
		Products:   products,
		Pagination: newPagination(page, pageSize, total),
	})
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	id, err := productID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	product, err := h.products.UpdateProduct(r.Context(), caller, id, service.UpdateProductInput{
		Name:             req.Name,
		Description:      req.Description,
		Category:         req.Category,
		HourlyPriceCents: req.HourlyPriceCents,
		DailyPriceCents:  req.DailyPriceCents,
		Availability:     req.Availability,
		Pickup:           req.Pickup,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	id, err := productID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.products.DeleteProduct(r.Context(), caller, id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "product removed"})
}
