package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts requests by method, path and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "billing_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration tracks request latency by method and path
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "billing_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// InvoicesCreated counts invoices created since process start
	InvoicesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "billing_invoices_created_total",
			Help: "Total number of invoices created",
		},
	)

	// PurchasesCreated counts purchases created since process start
	PurchasesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "billing_purchases_created_total",
			Help: "Total number of purchases created",
		},
	)

	// PaymentsRecorded counts payments by document type
	PaymentsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "billing_payments_recorded_total",
			Help: "Total number of payments recorded",
		},
		[]string{"document_type"},
	)

	// OverpaymentsRejected counts payment attempts rejected for exceeding balance
	OverpaymentsRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "billing_overpayments_rejected_total",
			Help: "Total number of payments rejected for exceeding the balance due",
		},
	)
)
