package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/domain"
	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/validation"
	eligibilityactivities "github.com/Ngole71/eligibility-checker/internal/platform/temporal/activities/eligibility"
)

// RunDeterminationSequence executes the single record activity. Storage failures surface to the caller
// instead of being retried.
func RunDeterminationSequence(ctx workflow.Context, input validation.Input) (*domain.DeterminationRecord, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("determination sequence started")
	options := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var record domain.DeterminationRecord
	err := workflow.ExecuteActivity(ctx, eligibilityactivities.RecordDeterminationActivityName, input).Get(ctx, &record)
	if err != nil {
		if eligibilityactivities.IsInvalidInput(err) {
			logger.Info("determination sequence rejected input", "error", err)
		} else {
			logger.Error("determination sequence failed", "error", err)
		}
		return nil, err
	}
	logger.Info("determination sequence completed", "recordId", record.ID)
	return &record, nil
}
