package domain

// StatisticsSnapshot summarizes all stored determinations at one point in time.
type StatisticsSnapshot struct {
	TotalCount      int64
	EligibleCount   int64
	IneligibleCount int64
	AverageAge      float64
}

// NewStatisticsSnapshot derives a snapshot from raw aggregates taken from one consistent
// view of the record set. The average is zero for an empty set.
func NewStatisticsSnapshot(total, eligible, ageSum int64) StatisticsSnapshot {
	if total <= 0 {
		return StatisticsSnapshot{}
	}
	if eligible < 0 {
		eligible = 0
	}
	if eligible > total {
		eligible = total
	}
	return StatisticsSnapshot{
		TotalCount:      total,
		EligibleCount:   eligible,
		IneligibleCount: total - eligible,
		AverageAge:      float64(ageSum) / float64(total),
	}
}
