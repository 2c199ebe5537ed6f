package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/domain"
	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/ports"
	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/validation"
)

const tracerName = "github.com/Ngole71/eligibility-checker/internal/domains/eligibility/adapters/observability/service"

// Recorder receives business counters, typically the Prometheus collectors.
type Recorder interface {
	RecordDetermination(eligible bool)
	RecordRejection()
}

// Service decorates the eligibility port with tracing, logging, and metrics.
// Personal data (names, birth dates) is never attached to spans or logs.
type Service struct {
	inner    ports.Service
	tracer   trace.Tracer
	logger   *slog.Logger
	metrics  serviceMetrics
	recorder Recorder
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// WithRecorder forwards outcomes to an additional metrics sink.
func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		s.recorder = r
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	return newService(inner, opts...)
}

func newService(inner ports.Service, opts ...Option) *Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

// CheckEligibility runs a determination with instrumentation.
func (s *Service) CheckEligibility(ctx context.Context, input validation.Input) (*domain.DeterminationRecord, error) {
	return s.observeCheck(ctx, "Service.CheckEligibility", s.inner.CheckEligibility, input)
}

type checkFunc func(ctx context.Context, input validation.Input) (*domain.DeterminationRecord, error)

func (s *Service) observeCheck(ctx context.Context, spanName string, check checkFunc, input validation.Input) (*domain.DeterminationRecord, error) {
	ctx, span := s.tracer.Start(ctx, spanName)
	defer span.End()

	record, err := check(ctx, input)
	if err != nil {
		if verr, ok := domain.AsValidationError(err); ok {
			// rejected input is the caller's problem, not a system fault
			span.SetAttributes(attribute.Int("eligibility.validation.violations", len(verr.Fields)))
			span.SetStatus(codes.Unset, "")
			s.metrics.recordRejected(ctx)
			if s.recorder != nil {
				s.recorder.RecordRejection()
			}
			s.logger.LogAttrs(ctx, slog.LevelInfo, "eligibility request rejected",
				slog.Int("violations", len(verr.Fields)),
				slog.Any("rules", rules(verr)),
			)
			return nil, err
		}
		return nil, s.handleError(ctx, span, err, "eligibility check failed")
	}
	span.SetAttributes(
		attribute.Int64("eligibility.record.id", record.ID),
		attribute.Int("eligibility.age", record.Age),
		attribute.Bool("eligibility.eligible", record.Eligible),
	)
	s.metrics.recordDetermined(ctx, record.Eligible)
	if s.recorder != nil {
		s.recorder.RecordDetermination(record.Eligible)
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "eligibility determined",
		slog.Int64("record.id", record.ID),
		slog.Bool("eligible", record.Eligible),
	)
	return record, nil
}

// GetStatistics reads the aggregate snapshot with instrumentation.
func (s *Service) GetStatistics(ctx context.Context) (domain.StatisticsSnapshot, error) {
	ctx, span := s.tracer.Start(ctx, "Service.GetStatistics")
	defer span.End()

	snap, err := s.inner.GetStatistics(ctx)
	if err != nil {
		return domain.StatisticsSnapshot{}, s.handleError(ctx, span, err, "failed to aggregate statistics")
	}
	span.SetAttributes(attribute.Int64("eligibility.statistics.total", snap.TotalCount))
	return snap, nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, errorKind(err))
	s.metrics.recordFailed(ctx, errorKind(err))
	s.logger.LogAttrs(ctx, slog.LevelError, msg,
		slog.String("kind", errorKind(err)),
		slog.String("error", err.Error()),
	)
	return err
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, ports.ErrConstraintViolation):
		return "constraint_violation"
	case errors.Is(err, ports.ErrStorageUnavailable):
		return "storage_unavailable"
	default:
		return "unknown"
	}
}

func rules(verr *domain.ValidationError) []string {
	out := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		out = append(out, f.Field+":"+f.Rule)
	}
	return out
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	determined metric.Int64Counter
	rejected   metric.Int64Counter
	failed     metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	determined, _ := m.Int64Counter("eligibility.service.determined", metric.WithDescription("Number of stored determinations"))
	rejected, _ := m.Int64Counter("eligibility.service.rejected", metric.WithDescription("Number of requests rejected by validation"))
	failed, _ := m.Int64Counter("eligibility.service.failed", metric.WithDescription("Number of operations failed by storage"))
	return serviceMetrics{determined: determined, rejected: rejected, failed: failed}
}

func (m serviceMetrics) recordDetermined(ctx context.Context, eligible bool) {
	addCounter(ctx, m.determined, attribute.Bool("eligible", eligible))
}

func (m serviceMetrics) recordRejected(ctx context.Context) {
	addCounter(ctx, m.rejected)
}

func (m serviceMetrics) recordFailed(ctx context.Context, kind string) {
	addCounter(ctx, m.failed, attribute.String("kind", kind))
}

func addCounter(ctx context.Context, counter metric.Int64Counter, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// Orchestrator decorates a workflow orchestrator with the same outcome instrumentation as Service.
// Use it when checks bypass the decorated service, as they do on the durable path.
type Orchestrator struct {
	inner    ports.WorkflowOrchestrator
	observer *Service
}

// NewOrchestrator wraps a workflow orchestrator.
func NewOrchestrator(inner ports.WorkflowOrchestrator, opts ...Option) ports.WorkflowOrchestrator {
	return &Orchestrator{inner: inner, observer: newService(nil, opts...)}
}

// CheckEligibility runs the orchestrated determination with instrumentation.
func (o *Orchestrator) CheckEligibility(ctx context.Context, input validation.Input) (*domain.DeterminationRecord, error) {
	if o.inner == nil {
		return nil, errors.New("eligibility workflows not configured")
	}
	return o.observer.observeCheck(ctx, "Workflows.CheckEligibility", o.inner.CheckEligibility, input)
}

var (
	_ ports.Service              = (*Service)(nil)
	_ ports.WorkflowOrchestrator = (*Orchestrator)(nil)
)
