package eligibility

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/domain"
	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/ports"
	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/validation"
)

// RecordDeterminationActivityName validates, computes, and stores one determination.
const RecordDeterminationActivityName = "eligibility.activities.RecordDetermination"

// Application error types carried across the Temporal boundary.
const (
	ErrTypeInvalidInput        = "InvalidInput"
	ErrTypeStorageUnavailable  = "StorageUnavailable"
	ErrTypeConstraintViolation = "ConstraintViolation"
)

// Activities groups activities that operate on the eligibility context.
type Activities struct {
	service ports.Service
}

// NewActivities wires the eligibility service into the Temporal activities bundle.
func NewActivities(service ports.Service) *Activities {
	return &Activities{service: service}
}

// RecordDetermination runs the determination pipeline. Failures are non-retryable.
func (a *Activities) RecordDetermination(ctx context.Context, input validation.Input) (*domain.DeterminationRecord, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("record determination activity not initialized")
		return nil, temporal.NewNonRetryableApplicationError("record determination activity not initialized", ErrTypeStorageUnavailable, nil)
	}
	record, err := a.service.CheckEligibility(ctx, input)
	if err != nil {
		errType := classify(err)
		if errType == ErrTypeInvalidInput {
			logger.Info("RecordDetermination activity rejected input", "kind", errType, "error", err)
		} else {
			logger.Error("RecordDetermination activity failed", "kind", errType, "error", err)
		}
		return nil, temporal.NewNonRetryableApplicationError(err.Error(), errType, err, detailsOf(err)...)
	}
	logger.Info("RecordDetermination activity completed", "recordId", record.ID, "eligible", record.Eligible)
	return record, nil
}

// IsInvalidInput reports whether err carries the activity's rejected-input failure.
func IsInvalidInput(err error) bool {
	var appErr *temporal.ApplicationError
	return errors.As(err, &appErr) && appErr.Type() == ErrTypeInvalidInput
}

func classify(err error) string {
	switch {
	case errors.Is(err, ports.ErrConstraintViolation):
		return ErrTypeConstraintViolation
	case isValidation(err):
		return ErrTypeInvalidInput
	default:
		return ErrTypeStorageUnavailable
	}
}

func isValidation(err error) bool {
	_, ok := domain.AsValidationError(err)
	return ok
}

// detailsOf carries field errors so the caller can rebuild the validation error.
func detailsOf(err error) []interface{} {
	verr, ok := domain.AsValidationError(err)
	if !ok {
		return nil
	}
	return []interface{}{verr.Fields}
}
