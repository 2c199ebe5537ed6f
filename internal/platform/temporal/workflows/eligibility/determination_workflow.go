package eligibility

import (
	"go.temporal.io/sdk/workflow"

	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/domain"
	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/validation"
	eligibilityactivities "github.com/Ngole71/eligibility-checker/internal/platform/temporal/activities/eligibility"
	"github.com/Ngole71/eligibility-checker/internal/platform/temporal/sequences"
)

const (
	// DeterminationWorkflowName is the public identifier for registering the workflow.
	DeterminationWorkflowName = "eligibility.workflows.Determination"
	// DeterminationTaskQueue is the queue consumed by the worker processing determinations.
	DeterminationTaskQueue = "ELIGIBILITY_DETERMINATION"
)

// DeterminationWorkflowInput captures the payload for one determination.
type DeterminationWorkflowInput struct {
	Input   validation.Input
	TraceID string
}

// DeterminationWorkflow records one eligibility determination.
func DeterminationWorkflow(ctx workflow.Context, input DeterminationWorkflowInput) (*domain.DeterminationRecord, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("DeterminationWorkflow started", withTraceID(input.TraceID)...)
	record, err := sequences.RunDeterminationSequence(ctx, input.Input)
	if err != nil {
		if eligibilityactivities.IsInvalidInput(err) {
			logger.Info("DeterminationWorkflow rejected input", withTraceID(input.TraceID, "error", err)...)
		} else {
			logger.Error("DeterminationWorkflow failed", withTraceID(input.TraceID, "error", err)...)
		}
		return nil, err
	}
	logger.Info("DeterminationWorkflow completed", withTraceID(input.TraceID, "recordId", record.ID)...)
	return record, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
