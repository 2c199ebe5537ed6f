package ports

//go:generate mockgen -source=store.go -destination=mocks/store_mock.go -package=mocks

import (
	"context"
	"errors"
	"time"

	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/domain"
)

var (
	// ErrStorageUnavailable signals the storage medium could not complete the operation.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrConstraintViolation signals data rejected by persisted-schema invariants.
	ErrConstraintViolation = errors.New("storage constraint violation")
)

// Store persists determinations append-only and aggregates over all of them.
type Store interface {
	// Append records one determination and returns the identifier and creation time assigned by the store.
	Append(ctx context.Context, cmd domain.Command, age int, eligible bool) (int64, time.Time, error)
	// Aggregate summarizes the full record set from one consistent view.
	Aggregate(ctx context.Context) (domain.StatisticsSnapshot, error)
}

// Pinger reports whether the storage medium is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
