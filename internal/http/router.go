package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/handlers"
	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/middleware"
)

// NewRouter wires all API routes for the billing backend.
func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	customerHandler *handlers.CustomerHandler,
	supplierHandler *handlers.SupplierHandler,
	categoryHandler *handlers.CategoryHandler,
	productHandler *handlers.ProductHandler,
	invoiceHandler *handlers.InvoiceHandler,
	purchaseHandler *handlers.PurchaseHandler,
	paymentHandler *handlers.PaymentHandler,
	reportHandler *handlers.ReportHandler,
	razorpayHandler *handlers.RazorpayHandler,
	reminderHandler *handlers.ReminderHandler,
	settingHandler *handlers.SystemSettingHandler,
	monitoringHandler *handlers.MonitoringHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public auth routes
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	authAPI := r.PathPrefix("/api/auth").Subrouter()
	authAPI.Use(authMiddleware.Authenticate)
	authAPI.HandleFunc("/me", authHandler.Me).Methods("GET")

	// Protected API routes - Users (admin only)
	usersAPI := r.PathPrefix("/api/users").Subrouter()
	usersAPI.Use(authMiddleware.Authenticate)
	usersAPI.HandleFunc("", authMiddleware.RequireRole("admin")(http.HandlerFunc(userHandler.CreateUser)).ServeHTTP).Methods("POST")
	usersAPI.HandleFunc("", authMiddleware.RequireRole("admin")(http.HandlerFunc(userHandler.ListUsers)).ServeHTTP).Methods("GET")
	usersAPI.HandleFunc("/{id}", authMiddleware.RequireRole("admin")(http.HandlerFunc(userHandler.GetUser)).ServeHTTP).Methods("GET")
	usersAPI.HandleFunc("/{id}", authMiddleware.RequireRole("admin")(http.HandlerFunc(userHandler.UpdateUser)).ServeHTTP).Methods("PUT")
	usersAPI.HandleFunc("/{id}", authMiddleware.RequireRole("admin")(http.HandlerFunc(userHandler.DeleteUser)).ServeHTTP).Methods("DELETE")

	// Protected API routes - Customers
	customersAPI := r.PathPrefix("/api/customers").Subrouter()
	customersAPI.Use(authMiddleware.Authenticate)
	customersAPI.HandleFunc("", customerHandler.CreateCustomer).Methods("POST")
	customersAPI.HandleFunc("", customerHandler.ListCustomers).Methods("GET")
	customersAPI.HandleFunc("/{id}", customerHandler.GetCustomer).Methods("GET")
	customersAPI.HandleFunc("/{id}", customerHandler.UpdateCustomer).Methods("PUT")
	customersAPI.HandleFunc("/{id}", authMiddleware.RequireRole("admin")(http.HandlerFunc(customerHandler.DeleteCustomer)).ServeHTTP).Methods("DELETE")

	// Protected API routes - Suppliers
	suppliersAPI := r.PathPrefix("/api/suppliers").Subrouter()
	suppliersAPI.Use(authMiddleware.Authenticate)
	suppliersAPI.HandleFunc("", supplierHandler.CreateSupplier).Methods("POST")
	suppliersAPI.HandleFunc("", supplierHandler.ListSuppliers).Methods("GET")
	suppliersAPI.HandleFunc("/{id}", supplierHandler.GetSupplier).Methods("GET")
	suppliersAPI.HandleFunc("/{id}", supplierHandler.UpdateSupplier).Methods("PUT")
	suppliersAPI.HandleFunc("/{id}", authMiddleware.RequireRole("admin")(http.HandlerFunc(supplierHandler.DeleteSupplier)).ServeHTTP).Methods("DELETE")

	// Protected API routes - Categories
	categoriesAPI := r.PathPrefix("/api/categories").Subrouter()
	categoriesAPI.Use(authMiddleware.Authenticate)
	categoriesAPI.HandleFunc("", categoryHandler.CreateCategory).Methods("POST")
	categoriesAPI.HandleFunc("", categoryHandler.ListCategories).Methods("GET")
	categoriesAPI.HandleFunc("/{id}", categoryHandler.GetCategory).Methods("GET")
	categoriesAPI.HandleFunc("/{id}", categoryHandler.UpdateCategory).Methods("PUT")
	categoriesAPI.HandleFunc("/{id}", authMiddleware.RequireRole("admin")(http.HandlerFunc(categoryHandler.DeleteCategory)).ServeHTTP).Methods("DELETE")

	// Protected API routes - Products
	productsAPI := r.PathPrefix("/api/products").Subrouter()
	productsAPI.Use(authMiddleware.Authenticate)
	productsAPI.HandleFunc("", productHandler.CreateProduct).Methods("POST")
	productsAPI.HandleFunc("", productHandler.ListProducts).Methods("GET")
	productsAPI.HandleFunc("/{id}", productHandler.GetProduct).Methods("GET")
	productsAPI.HandleFunc("/{id}", productHandler.UpdateProduct).Methods("PUT")
	productsAPI.HandleFunc("/{id}", authMiddleware.RequireRole("admin")(http.HandlerFunc(productHandler.DeleteProduct)).ServeHTTP).Methods("DELETE")

	// Protected API routes - Invoices
	invoicesAPI := r.PathPrefix("/api/invoices").Subrouter()
	invoicesAPI.Use(authMiddleware.Authenticate)
	invoicesAPI.HandleFunc("", invoiceHandler.CreateInvoice).Methods("POST")
	invoicesAPI.HandleFunc("", invoiceHandler.ListInvoices).Methods("GET")
	invoicesAPI.HandleFunc("/number/{number}", invoiceHandler.GetInvoiceByNumber).Methods("GET")
	invoicesAPI.HandleFunc("/customer/{customerId}", invoiceHandler.ListInvoicesByCustomer).Methods("GET")
	invoicesAPI.HandleFunc("/{id}", invoiceHandler.GetInvoice).Methods("GET")
	invoicesAPI.HandleFunc("/{id}", invoiceHandler.UpdateInvoice).Methods("PUT")
	invoicesAPI.HandleFunc("/{id}", authMiddleware.RequireRole("admin")(http.HandlerFunc(invoiceHandler.DeleteInvoice)).ServeHTTP).Methods("DELETE")
	invoicesAPI.HandleFunc("/{id}/pdf", invoiceHandler.DownloadPDF).Methods("GET")
	invoicesAPI.HandleFunc("/{id}/remind", authMiddleware.RequireAccountantAccess(http.HandlerFunc(reminderHandler.SendInvoiceReminder)).ServeHTTP).Methods("POST")

	// Protected API routes - Purchases
	purchasesAPI := r.PathPrefix("/api/purchases").Subrouter()
	purchasesAPI.Use(authMiddleware.Authenticate)
	purchasesAPI.HandleFunc("", purchaseHandler.CreatePurchase).Methods("POST")
	purchasesAPI.HandleFunc("", purchaseHandler.ListPurchases).Methods("GET")
	purchasesAPI.HandleFunc("/{id}", purchaseHandler.GetPurchase).Methods("GET")
	purchasesAPI.HandleFunc("/{id}", purchaseHandler.UpdatePurchase).Methods("PUT")
	purchasesAPI.HandleFunc("/{id}", authMiddleware.RequireRole("admin")(http.HandlerFunc(purchaseHandler.DeletePurchase)).ServeHTTP).Methods("DELETE")
	purchasesAPI.HandleFunc("/{id}/pdf", purchaseHandler.DownloadPDF).Methods("GET")

	// Protected API routes - Payments
	paymentsAPI := r.PathPrefix("/api/payments").Subrouter()
	paymentsAPI.Use(authMiddleware.Authenticate)
	paymentsAPI.HandleFunc("", authMiddleware.RequireAccountantAccess(http.HandlerFunc(paymentHandler.RecordPayment)).ServeHTTP).Methods("POST")
	paymentsAPI.HandleFunc("", paymentHandler.ListPayments).Methods("GET")
	paymentsAPI.HandleFunc("/{id}", paymentHandler.GetPayment).Methods("GET")
	paymentsAPI.HandleFunc("/document/{type}/{id}", paymentHandler.ListDocumentPayments).Methods("GET")

	// Protected API routes - Reports (accountant access required)
	reportsAPI := r.PathPrefix("/api/reports").Subrouter()
	reportsAPI.Use(authMiddleware.Authenticate)
	reportsAPI.HandleFunc("/dashboard", authMiddleware.RequireAccountantAccess(http.HandlerFunc(reportHandler.Dashboard)).ServeHTTP).Methods("GET")
	reportsAPI.HandleFunc("/receivables-aging", authMiddleware.RequireAccountantAccess(http.HandlerFunc(reportHandler.ReceivablesAging)).ServeHTTP).Methods("GET")
	reportsAPI.HandleFunc("/receivables-aging/pdf", authMiddleware.RequireAccountantAccess(http.HandlerFunc(reportHandler.ReceivablesAgingPDF)).ServeHTTP).Methods("GET")
	reportsAPI.HandleFunc("/payables-aging", authMiddleware.RequireAccountantAccess(http.HandlerFunc(reportHandler.PayablesAging)).ServeHTTP).Methods("GET")
	reportsAPI.HandleFunc("/payables-aging/pdf", authMiddleware.RequireAccountantAccess(http.HandlerFunc(reportHandler.PayablesAgingPDF)).ServeHTTP).Methods("GET")
	reportsAPI.HandleFunc("/sales", authMiddleware.RequireAccountantAccess(http.HandlerFunc(reportHandler.SalesReport)).ServeHTTP).Methods("GET")
	reportsAPI.HandleFunc("/sales/csv", authMiddleware.RequireAccountantAccess(http.HandlerFunc(reportHandler.SalesReportCSV)).ServeHTTP).Methods("GET")
	reportsAPI.HandleFunc("/profit-loss", authMiddleware.RequireAccountantAccess(http.HandlerFunc(reportHandler.ProfitLoss)).ServeHTTP).Methods("GET")

	// Protected API routes - Online payments (Razorpay)
	razorpayAPI := r.PathPrefix("/api/razorpay").Subrouter()
	razorpayAPI.Use(authMiddleware.Authenticate)
	razorpayAPI.HandleFunc("/status", razorpayHandler.Status).Methods("GET")
	razorpayAPI.HandleFunc("/key", razorpayHandler.Key).Methods("GET")
	razorpayAPI.HandleFunc("/order", razorpayHandler.CreateOrder).Methods("POST")
	razorpayAPI.HandleFunc("/verify", razorpayHandler.VerifyPayment).Methods("POST")
	razorpayAPI.HandleFunc("/transactions/{invoiceId}", razorpayHandler.ListTransactions).Methods("GET")

	// Razorpay webhook - authenticated by signature, not JWT
	r.HandleFunc("/api/razorpay/webhook", razorpayHandler.Webhook).Methods("POST")

	// Protected API routes - System settings (admin only)
	settingsAPI := r.PathPrefix("/api/settings").Subrouter()
	settingsAPI.Use(authMiddleware.Authenticate)
	settingsAPI.HandleFunc("", authMiddleware.RequireRole("admin")(http.HandlerFunc(settingHandler.ListSettings)).ServeHTTP).Methods("GET")
	settingsAPI.HandleFunc("/{key}", authMiddleware.RequireRole("admin")(http.HandlerFunc(settingHandler.GetSetting)).ServeHTTP).Methods("GET")
	settingsAPI.HandleFunc("/{key}", authMiddleware.RequireRole("admin")(http.HandlerFunc(settingHandler.UpdateSetting)).ServeHTTP).Methods("PUT")

	// Protected API routes - Server monitoring (admin only)
	monitoringAPI := r.PathPrefix("/api/monitoring").Subrouter()
	monitoringAPI.Use(authMiddleware.Authenticate)
	monitoringAPI.HandleFunc("/system", authMiddleware.RequireRole("admin")(http.HandlerFunc(monitoringHandler.SystemStats)).ServeHTTP).Methods("GET")
	monitoringAPI.HandleFunc("/live", authMiddleware.RequireRole("admin")(http.HandlerFunc(monitoringHandler.LiveStats)).ServeHTTP).Methods("GET")

	// Health endpoints (no auth required - for Kubernetes probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
