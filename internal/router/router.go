package router

import (
	"time"

	"github.com/Sriraja07/BillSys/internal/config"
	"github.com/Sriraja07/BillSys/internal/handler"
	"github.com/Sriraja07/BillSys/internal/middleware"
	"github.com/Sriraja07/BillSys/internal/policy"
	"github.com/Sriraja07/BillSys/internal/repository"
	"github.com/Sriraja07/BillSys/internal/service"
	"github.com/Sriraja07/BillSys/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	vendorRepo := repository.NewVendorRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	historyRepo := repository.NewPriceHistoryRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	productSvc := service.NewProductService(productRepo, vendorRepo, historyRepo)
	customerSvc := service.NewCustomerService(customerRepo, invoiceRepo)
	vendorSvc := service.NewVendorService(vendorRepo, purchaseRepo, productRepo)
	billingSvc := service.NewBillingService(invoiceRepo, purchaseRepo, productRepo,
		customerRepo, vendorRepo, movementRepo, dispatcher, cfg.StockPolicy)
	stockSvc := service.NewStockService(productRepo, movementRepo)
	expenseSvc := service.NewExpenseService(expenseRepo)
	reportSvc := service.NewReportService(invoiceRepo, purchaseRepo, ledgerRepo,
		productRepo, customerRepo, vendorRepo, expenseRepo, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productsH := handler.NewProductsHandler(productSvc)
	customersH := handler.NewCustomersHandler(customerSvc)
	vendorsH := handler.NewVendorsHandler(vendorSvc)
	billingH := handler.NewBillingHandler(billingSvc)
	stockH := handler.NewStockHandler(stockSvc)
	expensesH := handler.NewExpensesHandler(expenseSvc)
	reportsH := handler.NewReportsHandler(reportSvc, dispatcher)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes — each group declares the capability it needs and the
	// role table in policy decides who holds it.
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		users := v1.Group("/users", middleware.Authorize(policy.ManageUsers))
		{
			users.POST("", authH.CreateUser)
			users.GET("", authH.ListUsers)
			users.DELETE("/:id", authH.DeleteUser)
			users.POST("/:id/reset-password", authH.ResetPassword)
		}
		v1.POST("/auth/change-password", authH.ChangePassword)

		products := v1.Group("/products")
		{
			products.GET("", productsH.List)
			products.GET("/:id", productsH.Get)
			products.GET("/:id/price-history", productsH.PriceHistory)
			products.POST("", middleware.Authorize(policy.ManageCatalog), productsH.Create)
			products.PUT("/:id", middleware.Authorize(policy.ManageCatalog), productsH.Update)
			products.DELETE("/:id", middleware.Authorize(policy.ManageCatalog), productsH.Delete)
			products.PATCH("/:id/stock", middleware.Authorize(policy.ManageStock), stockH.Update)
			products.GET("/:id/stock-movements", middleware.Authorize(policy.ManageStock), stockH.Movements)
		}

		customers := v1.Group("/customers")
		{
			customers.GET("", customersH.List)
			customers.GET("/:id", customersH.Get)
			customers.POST("", middleware.Authorize(policy.ManageCatalog), customersH.Create)
			customers.PUT("/:id", middleware.Authorize(policy.ManageCatalog), customersH.Update)
			customers.DELETE("/:id", middleware.Authorize(policy.ManageCatalog), customersH.Delete)
		}

		vendors := v1.Group("/vendors")
		{
			vendors.GET("", vendorsH.List)
			vendors.GET("/:id", vendorsH.Get)
			vendors.POST("", middleware.Authorize(policy.ManageCatalog), vendorsH.Create)
			vendors.PUT("/:id", middleware.Authorize(policy.ManageCatalog), vendorsH.Update)
			vendors.DELETE("/:id", middleware.Authorize(policy.ManageCatalog), vendorsH.Delete)
		}

		invoices := v1.Group("/invoices")
		{
			invoices.POST("", middleware.Authorize(policy.CreateSale), billingH.CreateInvoice)
			invoices.GET("", billingH.ListInvoices)
			invoices.GET("/:id", billingH.GetInvoice)
			invoices.POST("/:id/payments", middleware.Authorize(policy.RecordPayment), billingH.RecordPayment)
		}

		purchases := v1.Group("/purchases")
		{
			purchases.POST("", middleware.Authorize(policy.CreateSale), billingH.CreatePurchase)
			purchases.GET("", billingH.ListPurchases)
			purchases.GET("/:id", billingH.GetPurchase)
			purchases.POST("/:id/payments", middleware.Authorize(policy.RecordPayment), billingH.RecordVendorPayment)
		}

		expenses := v1.Group("/expenses", middleware.Authorize(policy.ManageExpenses))
		{
			expenses.POST("", expensesH.Create)
			expenses.GET("", expensesH.List)
			expenses.PUT("/:id", expensesH.Update)
			expenses.DELETE("/:id", expensesH.Delete)
		}

		reports := v1.Group("/reports", middleware.Authorize(policy.ViewReports))
		{
			reports.GET("/ledger", reportsH.PaymentLedger)
			reports.GET("/payments", reportsH.PaymentReport)
			reports.GET("/gst", reportsH.GSTReport)
			reports.GET("/gst/export", reportsH.ExportGSTCSV)
			reports.GET("/sales", reportsH.SalesReport)
			reports.GET("/dashboard", reportsH.Dashboard)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
