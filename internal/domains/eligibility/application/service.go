package application

import (
	"context"
	"errors"
	"time"

	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/domain"
	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/ports"
	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/validation"
)

// Service runs the validate, compute, persist pipeline. It keeps no state between calls.
type Service struct {
	store     ports.Store
	validator *validation.Validator
	clock     func() time.Time
}

// Option customizes the service.
type Option func(*Service)

// WithClock overrides the reference instant used for age calculation.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithValidator shares a prebuilt validator.
func WithValidator(v *validation.Validator) Option {
	return func(s *Service) {
		if v != nil {
			s.validator = v
		}
	}
}

// NewService wires the eligibility service with its store.
func NewService(store ports.Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		clock: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.validator == nil {
		s.validator = validation.New()
	}
	return s
}

// CheckEligibility validates the input, derives age and eligibility as of now, and appends
// the determination. The store is not called when validation or age calculation fails.
func (s *Service) CheckEligibility(ctx context.Context, input validation.Input) (*domain.DeterminationRecord, error) {
	if s.store == nil {
		return nil, errors.New("eligibility store not configured")
	}
	now := s.clock()
	cmd, err := s.validator.Validate(ctx, input, now)
	if err != nil {
		return nil, mapError(err)
	}
	age, err := domain.Age(cmd.DateOfBirth, now)
	if err != nil {
		return nil, mapError(validation.DateError(err))
	}
	eligible := domain.IsEligible(age, domain.EligibilityThresholdYears)
	id, createdAt, err := s.store.Append(ctx, cmd, age, eligible)
	if err != nil {
		return nil, mapError(err)
	}
	return domain.NewDeterminationRecord(cmd, age, eligible, id, createdAt), nil
}

// GetStatistics returns the aggregate snapshot over all determinations.
func (s *Service) GetStatistics(ctx context.Context) (domain.StatisticsSnapshot, error) {
	if s.store == nil {
		return domain.StatisticsSnapshot{}, errors.New("eligibility store not configured")
	}
	snap, err := s.store.Aggregate(ctx)
	if err != nil {
		return domain.StatisticsSnapshot{}, mapError(err)
	}
	return snap, nil
}

var _ ports.Service = (*Service)(nil)
