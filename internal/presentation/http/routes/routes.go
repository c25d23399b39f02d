package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/storebooks/internal/config"
	domainRepo "github.com/sangkips/storebooks/internal/domain/repository"
	"github.com/sangkips/storebooks/internal/presentation/http/handler"
	"github.com/sangkips/storebooks/internal/presentation/http/middleware"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Product   *handler.ProductHandler
	Purchase  *handler.PurchaseHandler
	Sale      *handler.SaleHandler
	Expense   *handler.ExpenseHandler
	Dashboard *handler.DashboardHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	Log             *zap.Logger
}

// Setup creates the Gin router and registers all routes. The returned limiter must be
// stopped on shutdown.
func Setup(h *Handlers, deps *Deps) (*gin.Engine, *middleware.ClientRateLimiter) {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}

	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	rateLimiter := middleware.NewClientRateLimiter(rateLimiterConfig(deps.Cfg.RateLimit))

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(rateLimiter.Middleware())
	if deps.IdempotencyRepo != nil {
		v1.Use(middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
			Log:  log,
		}))
	}
	{
		v1.GET("/dashboard", h.Dashboard.GetStats)
		v1.GET("/reports", h.Dashboard.GetReport)

		registerProductRoutes(v1, h)
		registerPurchaseRoutes(v1, h)
		registerSaleRoutes(v1, h)
		registerExpenseRoutes(v1, h)
	}

	return router, rateLimiter
}

func rateLimiterConfig(cfg config.RateLimitConfig) middleware.RateLimiterConfig {
	rl := middleware.DefaultRateLimiterConfig()
	if cfg.Requests > 0 && cfg.Duration > 0 {
		rl.RequestsPerSecond = float64(cfg.Requests) / float64(cfg.Duration)
		rl.BurstSize = cfg.Requests
	}
	rl.EntryTTL = 10 * time.Minute
	return rl
}

func registerProductRoutes(v1 *gin.RouterGroup, h *Handlers) {
	products := v1.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/low-stock", h.Product.LowStock)
		products.GET("/:id", h.Product.Get)
		products.GET("/:id/movements", h.Product.Movements)
	}
}

func registerPurchaseRoutes(v1 *gin.RouterGroup, h *Handlers) {
	purchases := v1.Group("/purchases")
	{
		purchases.GET("", h.Purchase.List)
		purchases.POST("", h.Purchase.Create)
		purchases.GET("/:id", h.Purchase.Get)
	}
}

func registerSaleRoutes(v1 *gin.RouterGroup, h *Handlers) {
	sales := v1.Group("/sales")
	{
		sales.GET("", h.Sale.List)
		sales.POST("", h.Sale.Create)
		sales.GET("/:id", h.Sale.Get)
		sales.POST("/:id/ship", h.Sale.Ship)
		sales.POST("/:id/receipt", h.Sale.PrintReceipt)
	}
}

func registerExpenseRoutes(v1 *gin.RouterGroup, h *Handlers) {
	expenses := v1.Group("/expenses")
	{
		expenses.GET("", h.Expense.List)
		expenses.POST("", h.Expense.Create)
		expenses.GET("/categories", h.Expense.Categories)
	}
}
