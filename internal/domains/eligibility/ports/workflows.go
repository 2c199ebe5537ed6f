package ports

import (
	"context"

	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/domain"
	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/validation"
)

// WorkflowOrchestrator runs the check-eligibility flow, inline or on a durable engine.
type WorkflowOrchestrator interface {
	CheckEligibility(ctx context.Context, input validation.Input) (*domain.DeterminationRecord, error)
}
