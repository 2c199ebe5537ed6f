package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/adapters/memory"
	eligibilityobs "github.com/Ngole71/eligibility-checker/internal/domains/eligibility/adapters/observability"
	eligibilitypostgres "github.com/Ngole71/eligibility-checker/internal/domains/eligibility/adapters/persistence/postgres"
	eligibilityworkflows "github.com/Ngole71/eligibility-checker/internal/domains/eligibility/adapters/workflows"
	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/application"
	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/ports"
	platformmetrics "github.com/Ngole71/eligibility-checker/internal/platform/metrics"
	"github.com/Ngole71/eligibility-checker/internal/platform/migrations"
	platformobservability "github.com/Ngole71/eligibility-checker/internal/platform/observability"
	platformpostgres "github.com/Ngole71/eligibility-checker/internal/platform/postgres"
	platformtemporal "github.com/Ngole71/eligibility-checker/internal/platform/temporal"
)

const (
	serviceName       = "eligibility-api"
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
)

// StoreBackend is the determination store plus its reachability probe.
type StoreBackend interface {
	ports.Store
	ports.Pinger
}

// Run boots the eligibility HTTP API and blocks until ctx is cancelled or the server fails.
func Run(ctx context.Context, cfg Config) error {
	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.Options{
		ServiceName:   serviceName,
		Environment:   cfg.Environment,
		LogLevel:      cfg.LogLevel,
		TraceExporter: cfg.TraceExporter,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanupDB := platformpostgres.Open(ctx, cfg.PostgresDSN, logger)
	defer cleanupDB()
	store, err := BuildStore(db, cfg.MigrateOnStart, logger)
	if err != nil {
		return err
	}

	metrics := platformmetrics.New()
	coreService := application.NewService(store)
	service := eligibilityobs.New(
		coreService,
		eligibilityobs.WithLogger(logger),
		eligibilityobs.WithTracer(instruments.Tracer("internal.eligibility.application")),
		eligibilityobs.WithMeter(instruments.Meter("internal.eligibility.application")),
		eligibilityobs.WithRecorder(metrics),
	)

	var workflows ports.WorkflowOrchestrator = eligibilityworkflows.NewInlineWorkflows(service)
	switch {
	case db == nil:
		// the worker could not see records held in this process's memory
		logger.Info("Temporal workflows skipped for in-memory store, running determinations inline")
	default:
		temporalClient, err := platformtemporal.Dial(platformtemporal.DialOptions{
			Address:    cfg.TemporalAddress,
			Namespace:  cfg.TemporalNamespace,
			Disabled:   cfg.TemporalDisabled,
			TracerName: "temporal-client",
		}, instruments)
		if err != nil {
			logger.Warn("Temporal workflows unavailable, running determinations inline", slog.String("error", err.Error()))
			break
		}
		defer temporalClient.Close()
		workflows = observedWorkflows(eligibilityworkflows.NewTemporalWorkflows(temporalClient), logger, instruments, metrics)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	router := NewRouter(RouterDeps{
		ServiceName: serviceName,
		Service:     service,
		Workflows:   workflows,
		Pinger:      store,
		Metrics:     metrics,
		Logger:      logger,
	})
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
	return serve(ctx, srv, cfg.ShutdownTimeout(), logger)
}

// observedWorkflows instruments an orchestrator whose checks never reach the decorated service,
// so outcome metrics and rejection logs still fire on the durable path.
func observedWorkflows(workflows ports.WorkflowOrchestrator, logger *slog.Logger, instruments *platformobservability.Instruments, metrics *platformmetrics.Metrics) ports.WorkflowOrchestrator {
	return eligibilityobs.NewOrchestrator(workflows,
		eligibilityobs.WithLogger(logger),
		eligibilityobs.WithTracer(instruments.Tracer("internal.eligibility.workflows")),
		eligibilityobs.WithMeter(instruments.Meter("internal.eligibility.workflows")),
		eligibilityobs.WithRecorder(metrics),
	)
}

// BuildStore picks the PostgreSQL store when db is set, otherwise the in-memory store.
func BuildStore(db *gorm.DB, migrate bool, logger *slog.Logger) (StoreBackend, error) {
	if db == nil {
		logger.Warn("determinations are kept in memory and lost on restart")
		return memory.NewStore(), nil
	}
	if migrate {
		if err := migrations.Run(db); err != nil {
			return nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
		logger.Info("schema migrations applied")
	}
	logger.Info("determination store configured with postgres")
	return eligibilitypostgres.NewStore(db), nil
}

func serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, logger *slog.Logger) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Eligibility API listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down Eligibility API")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		logger.Error("Eligibility API exited", slog.String("error", err.Error()))
		return err
	}
	logger.Info("Eligibility API stopped")
	return nil
}
