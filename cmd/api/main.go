package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"printwear-storefront/internal/client"
	"printwear-storefront/internal/config"
	"printwear-storefront/internal/repository"
	"printwear-storefront/internal/server"
	"printwear-storefront/internal/service"
	"syscall"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

func newLogger(cfg config.Log) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Log)
	if err := cfg.Validate(); err != nil {
		// catalog browsing still works; checkout and fulfillment will
		// refuse to run until the settings arrive
		logger.Warn("incomplete configuration", "err", err)
	}

	db := client.InitSqliteClient(cfg.DatabaseURL)
	stripeClient := client.NewStripeClient(&cfg.Stripe)
	printifyClient := client.NewPrintifyClient(&cfg.Printify)

	orderRepo := repository.NewOrderRepository(db)
	productRepo := repository.NewProductRepository(db)
	signupRepo := repository.NewEmailSignupRepository(db)

	fulfillmentService := service.NewFulfillmentService(
		stripeClient, printifyClient, cfg.Printify,
		orderRepo, productRepo, logger,
	)
	checkoutService := service.NewCheckoutService(stripeClient, productRepo, cfg.BaseURL)
	catalogService := service.NewCatalogService(printifyClient, cfg.Printify, productRepo, logger)
	signupService := service.NewSignupService(signupRepo)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	srv := server.NewServer(
		fulfillmentService, checkoutService, catalogService, signupService,
		cfg.AdminToken, logger,
	)

	logger.Info("starting HTTP server", "addr", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "err", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	logger.Info("signal received, starting graceful shutdown")

	if err := srv.Shutdown(); err != nil {
		logger.Error("HTTP server shutdown error", "err", err)
		os.Exit(1)
	}
}
