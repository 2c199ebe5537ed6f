package domain

import (
	"fmt"
	"time"
)

// EligibilityThresholdYears is the minimum age at which a person is eligible.
const EligibilityThresholdYears = 18

// MaxAgeYears bounds the ages the system accepts and stores.
const MaxAgeYears = 150

// Command is a validated and normalized eligibility request.
type Command struct {
	FirstName   string
	LastName    string
	DateOfBirth time.Time
}

// DeterminationRecord is one persisted eligibility evaluation. Records are append-only:
// age and eligibility are fixed at creation time and never recomputed.
type DeterminationRecord struct {
	ID          int64
	FirstName   string
	LastName    string
	DateOfBirth time.Time
	Age         int
	Eligible    bool
	CreatedAt   time.Time
}

// NewDeterminationRecord assembles a record from a command, the derived outcome, and the
// identifier/timestamp assigned by the store.
func NewDeterminationRecord(cmd Command, age int, eligible bool, id int64, createdAt time.Time) *DeterminationRecord {
	return &DeterminationRecord{
		ID:          id,
		FirstName:   cmd.FirstName,
		LastName:    cmd.LastName,
		DateOfBirth: cmd.DateOfBirth,
		Age:         age,
		Eligible:    eligible,
		CreatedAt:   createdAt,
	}
}

// Message renders the outcome for the person who asked.
func (r *DeterminationRecord) Message() string {
	if r == nil {
		return ""
	}
	if r.Eligible {
		return fmt.Sprintf("%s is eligible at age %d.", r.FirstName, r.Age)
	}
	return fmt.Sprintf("%s is not eligible: the minimum age is %d, current age is %d.", r.FirstName, EligibilityThresholdYears, r.Age)
}
