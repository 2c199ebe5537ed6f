package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, raw string) time.Time {
	t.Helper()
	d, err := ParseDate(raw)
	require.NoError(t, err)
	return d
}

func TestAge_WholeYears(t *testing.T) {
	cases := []struct {
		name  string
		birth string
		asOf  string
		want  int
	}{
		{"birthday not yet reached", "1990-06-15", "2024-06-14", 33},
		{"on birthday", "1990-06-15", "2024-06-15", 34},
		{"after birthday", "1990-06-15", "2024-12-31", 34},
		{"born today", "2024-03-10", "2024-03-10", 0},
		{"first of january", "1990-01-01", "2024-01-01", 34},
		{"day before eighteenth", "2006-05-20", "2024-05-19", 17},
		{"eighteenth birthday", "2006-05-20", "2024-05-20", 18},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Age(date(t, tc.birth), date(t, tc.asOf))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAge_LeapDayBirthday(t *testing.T) {
	birth := date(t, "2000-02-29")

	age, err := Age(birth, date(t, "2023-02-28"))
	require.NoError(t, err)
	assert.Equal(t, 22, age)

	age, err = Age(birth, date(t, "2023-03-01"))
	require.NoError(t, err)
	assert.Equal(t, 23, age)

	age, err = Age(birth, date(t, "2024-02-29"))
	require.NoError(t, err)
	assert.Equal(t, 24, age)
}

func TestAge_FutureDate(t *testing.T) {
	asOf := date(t, "2024-06-01")
	for _, raw := range []string{"2024-06-02", "2025-01-01", "2100-12-31"} {
		age, err := Age(date(t, raw), asOf)
		require.ErrorIs(t, err, ErrFutureDate, raw)
		assert.Zero(t, age)
	}
}

func TestAge_IgnoresTimeOfDay(t *testing.T) {
	birth := date(t, "2000-01-01")
	asOf := time.Date(2000, time.January, 1, 0, 0, 1, 0, time.UTC)
	age, err := Age(birth, asOf)
	require.NoError(t, err)
	assert.Equal(t, 0, age)
}

func TestAge_MonotonicAcrossYear(t *testing.T) {
	birth := date(t, "1987-09-12")
	asOf := date(t, "2020-01-01")
	prev, err := Age(birth, asOf)
	require.NoError(t, err)
	for i := 0; i < 2*366; i++ {
		asOf = asOf.AddDate(0, 0, 1)
		got, err := Age(birth, asOf)
		require.NoError(t, err)
		require.GreaterOrEqual(t, got, prev)
		if asOf.Month() == birth.Month() && asOf.Day() == birth.Day() {
			require.Equal(t, prev+1, got, asOf.Format(DateLayout))
		} else {
			require.Equal(t, prev, got, asOf.Format(DateLayout))
		}
		prev = got
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, raw := range []string{"", "   ", "2023-02-30", "2023-13-01", "01/02/2003", "not-a-date", "2023-1-1"} {
		_, err := ParseDate(raw)
		assert.ErrorIs(t, err, ErrInvalidDate, raw)
	}
}

func TestAge_ZeroBirthDate(t *testing.T) {
	_, err := Age(time.Time{}, time.Now())
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestIsEligible(t *testing.T) {
	for age := 0; age <= 150; age++ {
		assert.Equal(t, age >= 18, IsEligible(age, EligibilityThresholdYears), "age %d", age)
	}
}
