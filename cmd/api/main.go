package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/amcdesk/amcdesk-backend/api/routes"
	"github.com/amcdesk/amcdesk-backend/internal/auth"
	"github.com/amcdesk/amcdesk-backend/internal/catalog"
	"github.com/amcdesk/amcdesk-backend/internal/customers"
	"github.com/amcdesk/amcdesk-backend/internal/documents"
	"github.com/amcdesk/amcdesk-backend/internal/invoices"
	"github.com/amcdesk/amcdesk-backend/internal/mailsetup"
	"github.com/amcdesk/amcdesk-backend/internal/proposals"
	"github.com/amcdesk/amcdesk-backend/internal/totals"
	"github.com/amcdesk/amcdesk-backend/pkg/config"
	"github.com/amcdesk/amcdesk-backend/pkg/db"
	"github.com/amcdesk/amcdesk-backend/pkg/logger"
	"github.com/amcdesk/amcdesk-backend/pkg/metrics"
	"github.com/amcdesk/amcdesk-backend/pkg/migrate"
	"github.com/amcdesk/amcdesk-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var dbClient *db.Client
	if cfg.FeatureFlags.UseSQLite {
		dbClient, err = db.NewSQLite(ctx, cfg.DB.DSN, logg)
	} else {
		dbClient, err = db.New(ctx, cfg.DB, logg)
	}
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	// Redis only backs the login rate limiter; the API runs without it.
	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		redisClient, err = redis.New(ctx, cfg.Redis)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(ctx, "redis url not set, login rate limiting disabled")
	}

	gormDB := dbClient.DB()

	recalc, err := totals.NewRecalculator(totals.NewGormStore(gormDB))
	if err != nil {
		logg.Error(ctx, "failed to create totals recalculator", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:  auth.NewRepository(gormDB),
		JWTConfig: cfg.JWT,
	})
	if err != nil {
		logg.Error(ctx, "failed to create auth service", err)
		os.Exit(1)
	}

	customerService, err := customers.NewService(customers.NewRepository(gormDB))
	if err != nil {
		logg.Error(ctx, "failed to create customer service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalog.NewRepository(gormDB))
	if err != nil {
		logg.Error(ctx, "failed to create catalog service", err)
		os.Exit(1)
	}

	invoiceService, err := invoices.NewService(invoices.ServiceParams{
		Repo:         invoices.NewRepository(gormDB),
		TxRunner:     dbClient,
		Recalculator: recalc,
	})
	if err != nil {
		logg.Error(ctx, "failed to create invoice service", err)
		os.Exit(1)
	}

	proposalService, err := proposals.NewService(proposals.ServiceParams{
		Repo:         proposals.NewRepository(gormDB),
		TxRunner:     dbClient,
		Recalculator: recalc,
	})
	if err != nil {
		logg.Error(ctx, "failed to create proposal service", err)
		os.Exit(1)
	}

	mailSetupRepo := mailsetup.NewRepository(gormDB)
	mailSetupService, err := mailsetup.NewService(mailSetupRepo)
	if err != nil {
		logg.Error(ctx, "failed to create mail setup service", err)
		os.Exit(1)
	}

	documentService, err := documents.NewService(documents.ServiceParams{
		Repo:          documents.NewRepository(gormDB),
		MailSetupRepo: mailSetupRepo,
		Renderer:      documents.NewRenderer(cfg.Docgen),
		Mailer:        documents.NewSMTPMailer(),
	})
	if err != nil {
		logg.Error(ctx, "failed to create document service", err)
		os.Exit(1)
	}

	router := routes.NewRouter(routes.RouterParams{
		Config:           cfg,
		Logger:           logg,
		DB:               dbClient,
		RedisClient:      redisClient,
		Metrics:          metrics.NewHTTPMetrics(),
		AuthService:      authService,
		CustomerService:  customerService,
		CatalogService:   catalogService,
		InvoiceService:   invoiceService,
		ProposalService:  proposalService,
		MailSetupService: mailSetupService,
		DocumentService:  documentService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	logCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(logCtx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(logCtx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(logCtx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(logCtx, "graceful shutdown failed", err)
		}
	}
}
