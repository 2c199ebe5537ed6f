package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	oteltrace "go.opentelemetry.io/otel/trace"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/application"
	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/domain"
	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/ports"
	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/validation"
	eligibilityactivities "github.com/Ngole71/eligibility-checker/internal/platform/temporal/activities/eligibility"
	eligibilityworkflows "github.com/Ngole71/eligibility-checker/internal/platform/temporal/workflows/eligibility"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineWorkflows)(nil)
)

// workflowStarter is the subset of client.Client used to run determinations.
type workflowStarter interface {
	ExecuteWorkflow(ctx context.Context, options client.StartWorkflowOptions, workflow interface{}, args ...interface{}) (client.WorkflowRun, error)
}

// TemporalWorkflows runs determinations as workflows on a Temporal cluster.
type TemporalWorkflows struct {
	client    workflowStarter
	taskQueue string
	validator *validation.Validator
	clock     func() time.Time
}

// NewTemporalWorkflows wires a Temporal client into the orchestrator.
func NewTemporalWorkflows(c client.Client) *TemporalWorkflows {
	return newTemporalWorkflows(c)
}

func newTemporalWorkflows(c workflowStarter) *TemporalWorkflows {
	return &TemporalWorkflows{
		client:    c,
		taskQueue: eligibilityworkflows.DeterminationTaskQueue,
		validator: validation.New(),
		clock:     func() time.Time { return time.Now().UTC() },
	}
}

// CheckEligibility validates synchronously, then waits for the determination workflow to finish.
func (o *TemporalWorkflows) CheckEligibility(ctx context.Context, input validation.Input) (*domain.DeterminationRecord, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal eligibility workflows not configured")
	}
	if _, err := o.validator.Validate(ctx, input, o.clock()); err != nil {
		return nil, fmt.Errorf("%w: %w", application.ErrInvalidInput, err)
	}
	options := client.StartWorkflowOptions{
		ID:                    "eligibility-determination-" + uuid.NewString(),
		TaskQueue:             o.taskQueue,
		WorkflowIDReusePolicy: enumspb.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		eligibilityworkflows.DeterminationWorkflowName,
		eligibilityworkflows.DeterminationWorkflowInput{Input: input, TraceID: workflowTraceID(ctx)},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: start determination workflow: %w", ports.ErrStorageUnavailable, err)
	}
	var record domain.DeterminationRecord
	if err := run.Get(ctx, &record); err != nil {
		return nil, mapWorkflowError(err)
	}
	return &record, nil
}

// InlineWorkflows executes the service directly without Temporal, useful for tests or dev fallbacks.
type InlineWorkflows struct {
	service ports.Service
}

// NewInlineWorkflows wraps the eligibility service for synchronous execution.
func NewInlineWorkflows(service ports.Service) *InlineWorkflows {
	return &InlineWorkflows{service: service}
}

// CheckEligibility delegates to the application service without durable orchestration.
func (o *InlineWorkflows) CheckEligibility(ctx context.Context, input validation.Input) (*domain.DeterminationRecord, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline eligibility workflows not configured")
	}
	return o.service.CheckEligibility(ctx, input)
}

// mapWorkflowError restores the error taxonomy from the activity's application error type.
func mapWorkflowError(err error) error {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return fmt.Errorf("%w: %w", ports.ErrStorageUnavailable, err)
	}
	switch appErr.Type() {
	case eligibilityactivities.ErrTypeInvalidInput:
		var fields []domain.FieldError
		if appErr.HasDetails() {
			_ = appErr.Details(&fields)
		}
		return fmt.Errorf("%w: %w", application.ErrInvalidInput, domain.NewValidationError(fields, nil))
	case eligibilityactivities.ErrTypeConstraintViolation:
		return fmt.Errorf("%w: %w", ports.ErrConstraintViolation, err)
	default:
		return fmt.Errorf("%w: %w", ports.ErrStorageUnavailable, err)
	}
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
