package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"github.com/sangkips/storebooks/internal/application/service"
	"github.com/sangkips/storebooks/internal/bootstrap"
	"github.com/sangkips/storebooks/internal/config"
	"github.com/sangkips/storebooks/pkg/logger"
)

var (
	envFile = flag.String("env-file", "", "load environment variables from this file")
	verbose = flag.Bool("v", false, "log store access to stderr")
	raw     = flag.Bool("raw", false, "print markdown without terminal styling")
)

// app holds the services and configuration a command reports from
type app struct {
	cfg       *config.Config
	products  *service.ProductService
	dashboard *service.DashboardService
	close     func()
}

func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(*envFile)
	if err != nil {
		return nil, err
	}

	log := zap.NewNop()
	if *verbose {
		log = logger.Must(logger.New(cfg.App.Env))
	}

	backend, err := bootstrap.OpenBackend(ctx, cfg, log.Named("store"))
	if err != nil {
		return nil, err
	}
	books, err := bootstrap.LoadBooks(ctx, cfg, backend, log)
	if err != nil {
		_ = backend.Close()
		return nil, err
	}

	return &app{
		cfg:       cfg,
		products:  service.NewProductService(books, cfg.Books.LowStockThreshold),
		dashboard: service.NewDashboardService(books, cfg.Books.LowStockThreshold),
		close: func() {
			_ = backend.Close()
			_ = log.Sync()
		},
	}, nil
}

// printMarkdown renders doc for the terminal, or prints it as is with -raw
func printMarkdown(doc string) {
	if *raw {
		fmt.Print(doc)
		return
	}
	out, err := glamour.Render(doc, "auto")
	if err != nil {
		fmt.Print(doc)
		return
	}
	fmt.Print(out)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
