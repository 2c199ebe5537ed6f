package ports

import (
	"context"

	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/domain"
	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/validation"
)

// Service exposes the eligibility use cases to adapters.
type Service interface {
	CheckEligibility(ctx context.Context, input validation.Input) (*domain.DeterminationRecord, error)
	GetStatistics(ctx context.Context) (domain.StatisticsSnapshot, error)
}
