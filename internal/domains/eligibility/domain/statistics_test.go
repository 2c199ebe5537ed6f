package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStatisticsSnapshot_Empty(t *testing.T) {
	snap := NewStatisticsSnapshot(0, 0, 0)
	assert.Equal(t, StatisticsSnapshot{}, snap)
	assert.Zero(t, snap.AverageAge)
}

func TestNewStatisticsSnapshot_Counts(t *testing.T) {
	snap := NewStatisticsSnapshot(4, 3, 100)
	require.Equal(t, int64(4), snap.TotalCount)
	assert.Equal(t, int64(3), snap.EligibleCount)
	assert.Equal(t, int64(1), snap.IneligibleCount)
	assert.Equal(t, snap.TotalCount, snap.EligibleCount+snap.IneligibleCount)
	assert.InDelta(t, 25.0, snap.AverageAge, 1e-9)
}

func TestDeterminationRecord_Message(t *testing.T) {
	eligible := &DeterminationRecord{FirstName: "John", Age: 34, Eligible: true}
	assert.Contains(t, eligible.Message(), "is eligible")

	ineligible := &DeterminationRecord{FirstName: "Jane", Age: 14}
	assert.Contains(t, ineligible.Message(), "not eligible")
	assert.Contains(t, ineligible.Message(), "18")
}
