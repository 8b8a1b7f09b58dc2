package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/auth"
	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/cache"
	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/config"
	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/database"
	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/db"
	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/handlers"
	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/health"
	apphttp "github.com/rokadeamol25/billing-app-mvp-sub000/internal/http"
	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/middleware"
	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/monitoring"
	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/repositories"
	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/services"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Connect to PostgreSQL
	pool := db.Connect(cfg)
	defer pool.Close()

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (reports will be computed on every request)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	// Run database migrations
	migrator := database.NewMigrator(pool)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize JWT manager and health checker
	jwtManager := auth.NewJWTManager(cfg)
	healthChecker := health.NewHealthChecker(pool, cache.GetClient())

	// Initialize repositories
	userRepo := repositories.NewUserRepository(pool)
	customerRepo := repositories.NewCustomerRepository(pool)
	supplierRepo := repositories.NewSupplierRepository(pool)
	categoryRepo := repositories.NewCategoryRepository(pool)
	productRepo := repositories.NewProductRepository(pool)
	invoiceRepo := repositories.NewInvoiceRepository(pool)
	purchaseRepo := repositories.NewPurchaseRepository(pool)
	paymentRepo := repositories.NewPaymentRepository(pool)
	onlineTransactionRepo := repositories.NewOnlineTransactionRepository(pool)
	systemSettingRepo := repositories.NewSystemSettingRepository(pool)

	// Initialize services
	userService := services.NewUserService(userRepo, jwtManager)
	customerService := services.NewCustomerService(customerRepo, invoiceRepo)
	supplierService := services.NewSupplierService(supplierRepo, purchaseRepo)
	categoryService := services.NewCategoryService(categoryRepo, productRepo)
	productService := services.NewProductService(productRepo, categoryRepo)
	invoiceService := services.NewInvoiceService(invoiceRepo, customerRepo, productRepo, paymentRepo)
	purchaseService := services.NewPurchaseService(purchaseRepo, supplierRepo, productRepo, paymentRepo)
	paymentService := services.NewPaymentService(paymentRepo, invoiceRepo, purchaseRepo)
	reportService := services.NewReportService(invoiceRepo, purchaseRepo, paymentRepo, customerRepo, supplierRepo)
	systemSettingService := services.NewSystemSettingService(systemSettingRepo)
	reminderService := services.NewReminderService(invoiceService, customerRepo, systemSettingRepo)
	razorpayService := services.NewRazorpayService(
		cfg.Razorpay.KeyID,
		cfg.Razorpay.KeySecret,
		cfg.Razorpay.WebhookSecret,
		onlineTransactionRepo,
		invoiceService,
		paymentService,
		systemSettingRepo,
	)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	supplierHandler := handlers.NewSupplierHandler(supplierService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	productHandler := handlers.NewProductHandler(productService)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService)
	purchaseHandler := handlers.NewPurchaseHandler(purchaseService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	reportHandler := handlers.NewReportHandler(reportService)
	razorpayHandler := handlers.NewRazorpayHandler(razorpayService)
	reminderHandler := handlers.NewReminderHandler(reminderService)
	settingHandler := handlers.NewSystemSettingHandler(systemSettingService)
	monitoringHandler := handlers.NewMonitoringHandler(monitoring.NewCollector(pool))
	healthHandler := handlers.NewHealthHandler(healthChecker)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)
	corsMiddleware := middleware.NewCORS(cfg)

	router := apphttp.NewRouter(
		authHandler,
		userHandler,
		customerHandler,
		supplierHandler,
		categoryHandler,
		productHandler,
		invoiceHandler,
		purchaseHandler,
		paymentHandler,
		reportHandler,
		razorpayHandler,
		reminderHandler,
		settingHandler,
		monitoringHandler,
		healthHandler,
		authMiddleware,
	)

	// Wrap with panic recovery and metrics middleware
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
