package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"jewelmart/internal/caching"
	"jewelmart/internal/config"
	"jewelmart/internal/handlers"
	"jewelmart/internal/jobs"
	"jewelmart/internal/jobs/background"
	"jewelmart/internal/middleware"
	"jewelmart/internal/repositories"
	"jewelmart/internal/services"
	"jewelmart/pkg/database"
)

const version = "1.0.0"

func main() {
	// Database connection
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Shop configuration (letterhead, alert windows, bucket layout)
	shopConfig := config.DefaultShopConfig()
	if configPath := os.Getenv("SHOP_CONFIG"); configPath != "" {
		shopConfig, err = config.LoadShopConfig(configPath)
		if err != nil {
			log.Fatalf("Failed to load shop config: %v", err)
		}
	}

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32) // Generate random secret for development
		log.Printf("WARNING: Using generated JWT secret: %s", jwtSecret)
	}

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	// MinIO configuration
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin"
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin"
	}
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	minioSvc, err := services.NewMinioService(minioEndpoint, minioAccessKey, minioSecretKey, useSSL)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO service: %v", err)
	}

	// Create repositories
	userRepo := repositories.NewUserRepo(pool)
	customerRepo := repositories.NewCustomerRepo(pool)
	invoiceRepo := repositories.NewInvoiceRepo(pool)
	goldLoanRepo := repositories.NewGoldLoanRepo(pool)
	bhishiRepo := repositories.NewBhishiRepo(pool)
	itemRepo := repositories.NewItemRepo(pool)
	sequenceRepo := repositories.NewSequenceRepo(pool)

	// Create cache service
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Create services
	authSvc := services.NewAuthService(userRepo, jwtSecret)
	customerSvc := services.NewCustomerService(customerRepo, cacheSvc)
	invoiceSvc := services.NewInvoiceService(invoiceRepo, customerRepo, itemRepo, sequenceRepo)
	goldLoanSvc := services.NewGoldLoanService(goldLoanRepo, customerRepo, sequenceRepo)
	bhishiSvc := services.NewBhishiService(bhishiRepo, customerRepo)
	dashboardSvc := services.NewDashboardService(customerRepo, invoiceRepo, goldLoanRepo, bhishiRepo, itemRepo, cacheSvc)

	// Create handlers
	authHandlers := handlers.NewAuthHandlers(authSvc)
	customerHandlers := handlers.NewCustomerHandlers(customerSvc)
	invoiceHandlers := handlers.NewInvoiceHandlers(invoiceSvc, minioSvc, shopConfig)
	goldLoanHandlers := handlers.NewGoldLoanHandlers(goldLoanSvc)
	bhishiHandlers := handlers.NewBhishiHandlers(bhishiSvc)
	itemHandlers := handlers.NewItemHandlers(itemRepo)
	dashboardHandlers := handlers.NewDashboardHandlers(dashboardSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	// Background jobs
	var scheduler *background.JobScheduler
	if shopConfig.Alerts.Enabled {
		alertSvc := jobs.NewPaymentAlertService(goldLoanRepo, customerRepo, shopConfig.Alerts.LookaheadDays)
		scheduler = background.NewJobScheduler(alertSvc, cacheSvc, shopConfig.Alerts.IntervalHours)
		if err := scheduler.Start(); err != nil {
			log.Printf("Failed to start job scheduler: %v", err)
		}
		defer scheduler.Stop()
	}

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	// API routes
	v1 := e.Group("/v1")

	// Authentication routes (no JWT required for signup/login)
	auth := v1.Group("/auth")
	auth.POST("/signup", authHandlers.Signup)
	auth.POST("/login", authHandlers.Login)

	// Protected routes (require JWT)
	protected := v1.Group("")
	protected.Use(echojwt.WithConfig(middleware.NewJWTConfig(jwtSecret)))

	protected.GET("/me", authHandlers.Me)

	// Customer routes
	protected.GET("/customers", customerHandlers.ListCustomers)
	protected.POST("/customers", customerHandlers.CreateCustomer)
	protected.GET("/customers/:id", customerHandlers.GetCustomer)
	protected.PUT("/customers/:id", customerHandlers.UpdateCustomer)
	protected.DELETE("/customers/:id", customerHandlers.DeleteCustomer)
	protected.POST("/customers/:id/reconcile", customerHandlers.ReconcileCustomer)

	// Invoice routes
	protected.GET("/invoices", invoiceHandlers.ListInvoices)
	protected.POST("/invoices", invoiceHandlers.CreateInvoice)
	protected.GET("/invoices/:id", invoiceHandlers.GetInvoice)
	protected.PUT("/invoices/:id", invoiceHandlers.UpdateInvoice)
	protected.DELETE("/invoices/:id", invoiceHandlers.DeleteInvoice)
	protected.GET("/invoices/:id/pdf", invoiceHandlers.DownloadInvoicePDF)
	protected.POST("/invoices/:id/archive-pdf", invoiceHandlers.ArchiveInvoicePDF)

	// Gold loan routes
	protected.GET("/gold-loans", goldLoanHandlers.ListLoans)
	protected.POST("/gold-loans", goldLoanHandlers.CreateLoan)
	protected.GET("/gold-loans/:id", goldLoanHandlers.GetLoan)
	protected.POST("/gold-loans/:id/repayments", goldLoanHandlers.AddRepayment)
	protected.PUT("/gold-loans/:id/status", goldLoanHandlers.UpdateStatus)
	protected.DELETE("/gold-loans/:id", goldLoanHandlers.DeleteLoan)

	// Bhishi routes
	protected.GET("/bhishi", bhishiHandlers.ListAccounts)
	protected.POST("/bhishi", bhishiHandlers.OpenAccount)
	protected.GET("/bhishi/:customerId", bhishiHandlers.GetAccount)
	protected.POST("/bhishi/:customerId/deposit", bhishiHandlers.Deposit)
	protected.POST("/bhishi/:customerId/redeem", bhishiHandlers.Redeem)

	// Inventory routes
	protected.GET("/items", itemHandlers.ListItems)
	protected.POST("/items", itemHandlers.CreateItem)
	protected.GET("/items/:id", itemHandlers.GetItem)
	protected.PUT("/items/:id", itemHandlers.UpdateItem)
	protected.DELETE("/items/:id", itemHandlers.DeleteItem)

	// Dashboard routes
	protected.GET("/dashboard/stats", dashboardHandlers.GetStats)
	protected.GET("/dashboard/sales", dashboardHandlers.GetMonthlySales)
	protected.GET("/dashboard/stock", dashboardHandlers.GetStockLevels)

	// Start server
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("JewelMart server v%s starting on port %d", version, port)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
