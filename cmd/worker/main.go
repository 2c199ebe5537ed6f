package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Ngole71/eligibility-checker/internal/app/api"
	eligibilityobs "github.com/Ngole71/eligibility-checker/internal/domains/eligibility/adapters/observability"
	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/application"
	platformobservability "github.com/Ngole71/eligibility-checker/internal/platform/observability"
	platformpostgres "github.com/Ngole71/eligibility-checker/internal/platform/postgres"
	platformtemporal "github.com/Ngole71/eligibility-checker/internal/platform/temporal"
	eligibilityactivities "github.com/Ngole71/eligibility-checker/internal/platform/temporal/activities/eligibility"
	eligibilityworkflows "github.com/Ngole71/eligibility-checker/internal/platform/temporal/workflows/eligibility"
)

func main() {
	ctx := context.Background()
	const serviceName = "eligibility-worker"
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.Options{
		ServiceName:   serviceName,
		Environment:   cfg.Environment,
		LogLevel:      cfg.LogLevel,
		TraceExporter: cfg.TraceExporter,
	})
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
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
	if db == nil {
		logger.Error("worker requires postgres so determinations are visible to the API")
		os.Exit(1)
	}
	store, err := api.BuildStore(db, cfg.MigrateOnStart, logger)
	if err != nil {
		logger.Error("failed to configure determination store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	service := eligibilityobs.New(
		application.NewService(store),
		eligibilityobs.WithLogger(logger),
		eligibilityobs.WithTracer(instruments.Tracer("internal.eligibility.application")),
		eligibilityobs.WithMeter(instruments.Meter("internal.eligibility.application")),
	)
	activities := eligibilityactivities.NewActivities(service)

	temporalClient, err := platformtemporal.Dial(platformtemporal.DialOptions{
		Address:    cfg.TemporalAddress,
		Namespace:  cfg.TemporalNamespace,
		Disabled:   cfg.TemporalDisabled,
		TracerName: "temporal-worker",
	}, instruments)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, eligibilityworkflows.DeterminationTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(eligibilityworkflows.DeterminationWorkflow, workflow.RegisterOptions{Name: eligibilityworkflows.DeterminationWorkflowName})
	w.RegisterActivityWithOptions(activities.RecordDetermination, activity.RegisterOptions{Name: eligibilityactivities.RecordDeterminationActivityName})

	logger.Info("worker listening", slog.String("taskQueue", eligibilityworkflows.DeterminationTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
