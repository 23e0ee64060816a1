package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SalesCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookstore_sales_created_total",
		Help: "Total number of committed sales",
	})

	SalesFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookstore_sales_failed_total",
		Help: "Total number of rejected or rolled back sales",
	}, []string{"reason"})

	SaleItemsSoldTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookstore_sale_units_total",
		Help: "Total number of book units sold",
	})

	SaleTxLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bookstore_sale_tx_latency_seconds",
		Help:    "Latency of the sale transaction",
		Buckets: prometheus.DefBuckets,
	})

	InventoryMovementsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookstore_inventory_movements_total",
		Help: "Total number of inventory movements",
	}, []string{"kind"})

	LoginAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookstore_login_attempts_total",
		Help: "Login attempts by outcome",
	}, []string{"outcome"})

	AuthRejectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookstore_auth_rejections_total",
		Help: "Requests rejected by the access-control chain",
	}, []string{"reason"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
