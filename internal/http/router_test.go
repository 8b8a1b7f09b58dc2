package http

import (
	"net/http"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/handlers"
	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/middleware"
)

func newTestRouter() *mux.Router {
	return NewRouter(
		&handlers.AuthHandler{},
		&handlers.UserHandler{},
		&handlers.CustomerHandler{},
		&handlers.SupplierHandler{},
		&handlers.CategoryHandler{},
		&handlers.ProductHandler{},
		&handlers.InvoiceHandler{},
		&handlers.PurchaseHandler{},
		&handlers.PaymentHandler{},
		&handlers.ReportHandler{},
		&handlers.RazorpayHandler{},
		&handlers.ReminderHandler{},
		&handlers.SystemSettingHandler{},
		&handlers.MonitoringHandler{},
		&handlers.HealthHandler{},
		middleware.NewAuthMiddleware(nil, nil),
	)
}

// registeredRoutes collects "METHOD path" pairs from the router
func registeredRoutes(t *testing.T, r *mux.Router) map[string]bool {
	t.Helper()

	routes := make(map[string]bool)
	err := r.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		path, err := route.GetPathTemplate()
		if err != nil {
			return nil
		}
		methods, err := route.GetMethods()
		if err != nil {
			routes["ANY "+path] = true
			return nil
		}
		for _, m := range methods {
			routes[m+" "+path] = true
		}
		return nil
	})
	require.NoError(t, err)
	return routes
}

func TestRouterRegistersDocumentRoutes(t *testing.T) {
	routes := registeredRoutes(t, newTestRouter())

	for _, want := range []string{
		"POST /api/invoices",
		"GET /api/invoices/number/{number}",
		"GET /api/invoices/customer/{customerId}",
		"GET /api/invoices/{id}/pdf",
		"GET /api/purchases/{id}/pdf",
		"POST /api/payments",
		"GET /api/payments/document/{type}/{id}",
	} {
		assert.True(t, routes[want], "missing route %s", want)
	}
}

func TestRouterRegistersGatewayAndOpsRoutes(t *testing.T) {
	routes := registeredRoutes(t, newTestRouter())

	for _, want := range []string{
		"GET /api/razorpay/status",
		"GET /api/razorpay/key",
		"GET /api/razorpay/transactions/{invoiceId}",
		"POST /api/razorpay/webhook",
		"GET /health",
		"GET /health/detailed",
	} {
		assert.True(t, routes[want], "missing route %s", want)
	}
}

func TestPublicHealthRouteNeedsNoAuth(t *testing.T) {
	r := newTestRouter()

	var match mux.RouteMatch
	req, _ := http.NewRequest("GET", "/health", nil)
	assert.True(t, r.Match(req, &match))
}
