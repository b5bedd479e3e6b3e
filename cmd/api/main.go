package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/finsarthi/leads-api/internal/auth"
	"github.com/finsarthi/leads-api/internal/config"
	"github.com/finsarthi/leads-api/internal/database"
	"github.com/finsarthi/leads-api/internal/handler"
	"github.com/finsarthi/leads-api/internal/metrics"
	middlewarepkg "github.com/finsarthi/leads-api/internal/middleware"
	"github.com/finsarthi/leads-api/internal/repository"
	"github.com/finsarthi/leads-api/internal/router"
	"github.com/finsarthi/leads-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect database", zap.Error(err))
	}
	defer pool.Close()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	appMetrics := metrics.New(prometheus.DefaultRegisterer)
	contacts := service.NewContactNormalizer(cfg.PhoneRegion)
	notifier := service.NotifierFromConfig(cfg.NotifyWebhookURL, logger)

	usersRepo := repository.NewPGXUsersRepository(pool)
	leadsRepo := repository.NewPGXInsuranceLeadsRepository(pool)
	labourRepo := repository.NewPGXLabourRepository(pool)
	loansRepo := repository.NewPGXLoansRepository(pool)

	authService := service.NewAuthService(usersRepo, jwtManager)
	userService := service.NewUserService(usersRepo)
	leadService := service.NewLeadService(leadsRepo, contacts, appMetrics, notifier, logger)
	labourService := service.NewLabourService(labourRepo, contacts, appMetrics, notifier, logger)
	loanService := service.NewLoanService(loansRepo, contacts, appMetrics, notifier, logger)
	exportService := service.NewExportService(leadsRepo, appMetrics)

	handlers := router.Handlers{
		Auth:        handler.NewAuthHandler(authService, userService),
		Users:       handler.NewUserAdminHandler(userService),
		Calculators: handler.NewCalculatorHandler(),
		Leads:       handler.NewLeadsHandler(leadService, exportService),
		Labour:      handler.NewLabourHandler(labourService),
		Loans:       handler.NewLoansHandler(loanService),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = handler.GoJSONSerializer{}

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging(logger))
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, jwtManager, handlers)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()
	logger.Info("server started", zap.String("port", cfg.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
