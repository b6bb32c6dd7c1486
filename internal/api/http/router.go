// Package http wires the REST surface: routing, auth middleware, and
// JSON request/response handling.
package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/adarsh-sng/JustRentIt/internal/metrics"
	"github.com/adarsh-sng/JustRentIt/internal/security"
	"github.com/adarsh-sng/JustRentIt/internal/service"
)

type RouterDeps struct {
	Orders   service.OrderService
	Products service.ProductService
	Auth     service.AuthService
	Users    service.UserService
	Tokens   security.TokenManager
}

// NewRouter builds the full route table under /api/v1.
func NewRouter(deps RouterDeps) *mux.Router {
	orderHandler := NewOrderHandler(deps.Orders)
	productHandler := NewProductHandler(deps.Products)
	authHandler := NewAuthHandler(deps.Auth)
	userHandler := NewUserHandler(deps.Users)
	authMW := NewAuthMiddleware(deps.Tokens)

	r := mux.NewRouter()
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes.
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", authHandler.Refresh).Methods(http.MethodPost)
	api.HandleFunc("/products", productHandler.List).Methods(http.MethodGet)

	// Authenticated routes.
	private := api.NewRoute().Subrouter()
	private.Use(authMW.Require)

	private.HandleFunc("/users/me", userHandler.GetMe).Methods(http.MethodGet)
	private.HandleFunc("/users/me", userHandler.UpdateMe).Methods(http.MethodPut)

	private.HandleFunc("/products", productHandler.Create).Methods(http.MethodPost)
	private.HandleFunc("/products/my", productHandler.ListMine).Methods(http.MethodGet)
	private.HandleFunc("/products/{id}", productHandler.Update).Methods(http.MethodPut)
	private.HandleFunc("/products/{id}", productHandler.Delete).Methods(http.MethodDelete)

	private.HandleFunc("/orders", orderHandler.Create).Methods(http.MethodPost)
	private.HandleFunc("/orders/cart", orderHandler.CreateCart).Methods(http.MethodPost)
	private.HandleFunc("/orders/my", orderHandler.ListMine).Methods(http.MethodGet)
	private.HandleFunc("/orders/my-products", orderHandler.ListForMyProducts).Methods(http.MethodGet)
	private.HandleFunc("/orders/{id}", orderHandler.Get).Methods(http.MethodGet)
	private.HandleFunc("/orders/{id}/return", orderHandler.Return).Methods(http.MethodPut)
	private.HandleFunc("/orders/{id}/cancel", orderHandler.Cancel).Methods(http.MethodPut)

	// Product detail stays public so the catalog is browsable without an
	// account. Registered after the private routes so /products/my wins.
	api.HandleFunc("/products/{id}", productHandler.Get).Methods(http.MethodGet)

	return r
}
