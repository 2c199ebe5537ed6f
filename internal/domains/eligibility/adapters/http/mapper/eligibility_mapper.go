package mapper

import (
	"math"
	"time"

	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/domain"
	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/validation"
)

// EligibilityRequest is the inbound payload of a check. Fields stay strings so every rule is reported by the validator.
type EligibilityRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DateOfBirth string `json:"dateOfBirth"`
}

// EligibilityResponse is the HTTP representation of a stored determination.
type EligibilityResponse struct {
	ID        int64     `json:"id"`
	Age       int       `json:"age"`
	Eligible  bool      `json:"eligible"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// StatisticsResponse is the HTTP representation of the aggregate snapshot.
type StatisticsResponse struct {
	TotalUsers      int64   `json:"totalUsers"`
	EligibleUsers   int64   `json:"eligibleUsers"`
	IneligibleUsers int64   `json:"ineligibleUsers"`
	AverageAge      float64 `json:"averageAge"`
}

// ToInput converts the payload into validator input.
func ToInput(req EligibilityRequest) validation.Input {
	return validation.Input{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth,
	}
}

// FromRecord maps a determination to its response; timestamps are rendered in UTC.
func FromRecord(record *domain.DeterminationRecord) EligibilityResponse {
	if record == nil {
		return EligibilityResponse{}
	}
	return EligibilityResponse{
		ID:        record.ID,
		Age:       record.Age,
		Eligible:  record.Eligible,
		Message:   record.Message(),
		Timestamp: record.CreatedAt.UTC(),
	}
}

// FromSnapshot maps statistics, rounding the average to two decimals.
func FromSnapshot(snap domain.StatisticsSnapshot) StatisticsResponse {
	return StatisticsResponse{
		TotalUsers:      snap.TotalCount,
		EligibleUsers:   snap.EligibleCount,
		IneligibleUsers: snap.IneligibleCount,
		AverageAge:      math.Round(snap.AverageAge*100) / 100,
	}
}
