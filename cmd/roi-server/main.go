package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/roi-calculator/internal/config"
	"github.com/iwvelando/roi-calculator/internal/leads"
	"github.com/iwvelando/roi-calculator/internal/server"
	"github.com/iwvelando/roi-calculator/pkg/constants"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	configLocation := flag.String("config", constants.DefaultServerConfigFile, "path to server configuration file")
	calculatorLocation := flag.String("calculator", "", "path to calculator configuration file (overrides server config)")
	address := flag.String("address", "", "listen address override")
	maxBodySize := flag.String("max-body-size", "", "maximum request body override (e.g. 64K)")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	// Best-effort: a missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := server.LoadConfig(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := config.NewLogger(cfg.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if *address != "" {
		cfg.Address = *address
	}
	if *maxBodySize != "" {
		size, err := server.ParseSize(*maxBodySize)
		if err != nil {
			logger.Fatal("invalid max body size",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		cfg.SetBodySizeBytes(size)
	}

	calculatorPath := cfg.Calculator
	if *calculatorLocation != "" {
		calculatorPath = *calculatorLocation
	}
	conf, err := config.LoadConfiguration(calculatorPath)
	if err != nil {
		logger.Fatal(fmt.Sprintf("failed to load calculator configuration at %s", calculatorPath),
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	warnings, err := conf.ValidateConfiguration()
	if err != nil {
		logger.Fatal("invalid calculator configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	store := leads.NewStore(logger, nil)
	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           server.NewHandler(logger, conf, store, cfg.BodySizeBytes(), version),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}()

	logger.Info("serving roi calculator api",
		zap.String("op", "main"),
		zap.String("address", cfg.Address),
		zap.String("version", version),
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server stopped",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
