package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "khata/docs"
	"khata/internal/auth"
	"khata/internal/domain"
	"khata/internal/handler"
	"khata/internal/middleware"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Tenant   *handler.TenantHandler
	Invoice  *handler.InvoiceHandler
	Purchase *handler.PurchaseHandler
	Product  *handler.ProductHandler
	Report   *handler.ReportHandler
	Export   *handler.ExportHandler
	Health   *handler.HealthHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	verifier auth.TokenVerifier,
	tenants middleware.TenantProfileEnsurer,
	allowedOrigins []string,
	h Handlers,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	// API docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Protected routes - require valid JWT and an ensured tenant profile
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(verifier))
	protected.Use(middleware.TenantGuard())
	protected.Use(middleware.TenantProfile(tenants))

	tenant := protected.Group("/tenant")
	tenant.GET("/profile", h.Tenant.GetProfile)
	tenant.PUT("/profile", middleware.RequireRole(domain.RoleAdmin), h.Tenant.UpdateProfile)

	invoices := protected.Group("/invoices")
	invoices.POST("", h.Invoice.Create)
	invoices.GET("", h.Invoice.List)
	invoices.GET("/export", h.Export.InvoicesCSV)
	invoices.POST("/export/archive", h.Export.ArchiveInvoicesCSV)
	invoices.GET("/:id", h.Invoice.GetByID)
	invoices.PATCH("/:id/payment", h.Invoice.UpdatePayment)
	invoices.PUT("/:id/payment", h.Invoice.UpdatePayment)

	purchases := protected.Group("/purchases")
	purchases.POST("", h.Purchase.Create)
	purchases.GET("", h.Purchase.List)
	purchases.GET("/:id", h.Purchase.GetByID)
	purchases.PATCH("/:id/payment", h.Purchase.UpdatePayment)
	purchases.PUT("/:id/payment", h.Purchase.UpdatePayment)

	products := protected.Group("/products")
	products.PUT("/:id/opening-stock", h.Product.SetOpeningStock)

	reports := protected.Group("/reports")
	reports.GET("/stock", h.Report.Stock)
	reports.GET("/sales", h.Report.Sales)
	reports.GET("/counts", h.Report.Counts)
	reports.GET("/valuation", h.Report.Valuation)
	reports.GET("/pl", h.Report.ProfitAndLoss)
	reports.GET("/balance-sheet", h.Report.BalanceSheet)
	reports.GET("/balance-sheet-range", h.Report.BalanceSheetRange)
	reports.GET("/gstr1", h.Report.GSTR1)
	reports.GET("/gstr1/xlsx", h.Export.GSTR1XLSX)
	reports.GET("/gstr3b", h.Report.GSTR3B)

	return r
}
