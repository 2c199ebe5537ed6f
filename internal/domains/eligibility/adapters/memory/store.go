package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/domain"
	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/ports"
)

var (
	_ ports.Store  = (*Store)(nil)
	_ ports.Pinger = (*Store)(nil)
)

// Store is an in-memory, append-only determination store.
type Store struct {
	mu      sync.RWMutex
	records []domain.DeterminationRecord
	nextID  int64
	now     func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{now: time.Now}
}

// Append records one determination under the write lock.
func (s *Store) Append(ctx context.Context, cmd domain.Command, age int, eligible bool) (int64, time.Time, error) {
	if err := ctx.Err(); err != nil {
		return 0, time.Time{}, fmt.Errorf("%w: %w", ports.ErrStorageUnavailable, err)
	}
	if err := checkConstraints(cmd, age, eligible); err != nil {
		return 0, time.Time{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	record := domain.NewDeterminationRecord(cmd, age, eligible, s.nextID, s.now().UTC())
	s.records = append(s.records, *record)
	return record.ID, record.CreatedAt, nil
}

// Aggregate computes counts and mean age under the read lock.
func (s *Store) Aggregate(ctx context.Context) (domain.StatisticsSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.StatisticsSnapshot{}, fmt.Errorf("%w: %w", ports.ErrStorageUnavailable, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var eligible, ageSum int64
	for i := range s.records {
		if s.records[i].Eligible {
			eligible++
		}
		ageSum += int64(s.records[i].Age)
	}
	return domain.NewStatisticsSnapshot(int64(len(s.records)), eligible, ageSum), nil
}

// Ping always succeeds for the in-memory store.
func (s *Store) Ping(context.Context) error { return nil }

func checkConstraints(cmd domain.Command, age int, eligible bool) error {
	switch {
	case age < 0 || age > domain.MaxAgeYears:
		return fmt.Errorf("%w: age %d outside [0,%d]", ports.ErrConstraintViolation, age, domain.MaxAgeYears)
	case eligible != domain.IsEligible(age, domain.EligibilityThresholdYears):
		return fmt.Errorf("%w: eligible flag disagrees with age %d", ports.ErrConstraintViolation, age)
	case cmd.FirstName == "" || cmd.LastName == "":
		return fmt.Errorf("%w: names are required", ports.ErrConstraintViolation)
	case cmd.DateOfBirth.IsZero():
		return fmt.Errorf("%w: date of birth is required", ports.ErrConstraintViolation)
	}
	return nil
}
