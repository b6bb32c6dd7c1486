package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// OrdersCreated counts successfully persisted orders by rental type.
	OrdersCreated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "justrentit",
		Name:      "orders_created_total",
		Help:      "Total number of rental orders created.",
	}, []string{"rental_type"})

	// OrderTransitions counts lifecycle transitions by target status.
	OrderTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "justrentit",
		Name:      "order_transitions_total",
		Help:      "Total number of order status transitions.",
	}, []string{"to_status"})
)

func init() {
	prometheus.MustRegister(OrdersCreated, OrderTransitions)
}

// Handler exposes the default prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
