package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sangkips/storebooks/internal/application/service"
	"github.com/sangkips/storebooks/internal/bootstrap"
	"github.com/sangkips/storebooks/internal/config"
	"github.com/sangkips/storebooks/internal/presentation/http/handler"
	"github.com/sangkips/storebooks/internal/presentation/http/routes"
	"github.com/sangkips/storebooks/internal/scheduler"
	"github.com/sangkips/storebooks/pkg/carrier"
	"github.com/sangkips/storebooks/pkg/email"
	"github.com/sangkips/storebooks/pkg/logger"
	"github.com/sangkips/storebooks/pkg/printer"
)

func main() {
	envFile := flag.String("env-file", "", "load environment variables from this file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*envFile)
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.App.Env))
	defer func() { _ = baseLogger.Sync() }()
	zap.ReplaceGlobals(baseLogger)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	backend, err := bootstrap.OpenBackend(context.Background(), cfg, baseLogger.Named("store"))
	if err != nil {
		baseLogger.Fatal("failed to open store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer func() {
		if err := backend.Close(); err != nil {
			baseLogger.Error("failed to close store", zap.Error(err))
		}
	}()

	books, err := bootstrap.LoadBooks(context.Background(), cfg, backend, baseLogger)
	if err != nil {
		baseLogger.Fatal("failed to load books", zap.Error(err))
	}

	var notifier carrier.Notifier = carrier.Nop{Log: baseLogger.Named("carrier")}
	if cfg.Carrier.URL != "" {
		notifier = carrier.NewClient(cfg.Carrier.URL, cfg.Carrier.APIKey, cfg.Carrier.Timeout)
		baseLogger.Info("carrier notifications enabled", zap.String("url", cfg.Carrier.URL))
	} else {
		baseLogger.Warn("carrier url missing, shipments are only logged")
	}

	// Initialize receipt printer
	target := cfg.Printer.Address
	if cfg.Printer.Type == "usb" {
		target = cfg.Printer.USBPath
	}
	receiptPrinter, err := printer.New(cfg.Printer.Type, target)
	if err != nil {
		baseLogger.Warn("failed to initialize printer, receipts are discarded", zap.Error(err))
		receiptPrinter = printer.Discard{}
	}

	// Initialize services
	productService := service.NewProductService(books, cfg.Books.LowStockThreshold)
	purchaseService := service.NewPurchaseService(books, baseLogger.Named("svc.purchases"))
	saleService := service.NewSaleService(books, notifier, baseLogger.Named("svc.sales"))
	expenseService := service.NewExpenseService(books)
	dashboardService := service.NewDashboardService(books, cfg.Books.LowStockThreshold)
	receiptService := service.NewReceiptService(books, receiptPrinter, service.ReceiptConfig{
		ShopName: cfg.App.Name,
		Currency: cfg.Books.Currency,
		Width:    cfg.Printer.Width,
	}, baseLogger.Named("svc.receipts"))

	// Initialize handlers
	handlers := &routes.Handlers{
		Product:   handler.NewProductHandler(productService),
		Purchase:  handler.NewPurchaseHandler(purchaseService),
		Sale:      handler.NewSaleHandler(saleService, receiptService),
		Expense:   handler.NewExpenseHandler(expenseService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
	}

	// Setup routes
	router, rateLimiter := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		IdempotencyRepo: backend.Idempotency,
		Log:             baseLogger.Named("http"),
	})
	defer rateLimiter.Stop()

	if cfg.Scheduler.Enabled {
		sched := scheduler.NewScheduler(cfg.Scheduler, dashboardService, backend.Idempotency, baseLogger.Named("scheduler"))
		if cfg.Email.Enabled() {
			mailer := email.NewMailer(email.Config{
				SMTPHost:     cfg.Email.SMTPHost,
				SMTPPort:     cfg.Email.SMTPPort,
				SMTPUsername: cfg.Email.SMTPUsername,
				SMTPPassword: cfg.Email.SMTPPassword,
				FromName:     cfg.Email.FromName,
				FromEmail:    cfg.Email.FromEmail,
			})
			sched.MailDigest(mailer, cfg.Email.DigestTo, cfg.App.Name, cfg.Books.Currency)
		}
		if err := sched.Start(); err != nil {
			baseLogger.Fatal("failed to start scheduler", zap.Error(err))
		}
		defer sched.Stop()
	}

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting",
			zap.String("service", cfg.App.Name),
			zap.String("port", cfg.App.Port),
			zap.String("env", cfg.App.Env),
			zap.String("store", cfg.Store.Driver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
	saleService.Wait()
}
