package domain

import (
	"errors"
	"strings"
	"time"

	openapitypes "github.com/oapi-codegen/runtime/types"
)

// DateLayout is the ISO calendar date layout accepted for dates of birth.
const DateLayout = openapitypes.DateFormat

var (
	ErrInvalidDate = errors.New("date is not a valid calendar date")
	ErrFutureDate  = errors.New("date is in the future")
)

// ParseDate parses an ISO calendar date (YYYY-MM-DD) as a UTC civil date.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ErrInvalidDate
	}
	t, err := time.ParseInLocation(DateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// Age returns the whole years elapsed between birthDate and asOf, comparing civil dates.
// The birthday counts once asOf's month/day reaches the birth month/day, so a Feb 29
// birthday is reached on Mar 1 in non-leap years.
func Age(birthDate, asOf time.Time) (int, error) {
	if birthDate.IsZero() {
		return 0, ErrInvalidDate
	}
	by, bm, bd := birthDate.Date()
	ay, am, ad := asOf.Date()
	if civilBefore(ay, am, ad, by, bm, bd) {
		return 0, ErrFutureDate
	}
	age := ay - by
	if am < bm || (am == bm && ad < bd) {
		age--
	}
	return age, nil
}

// IsEligible reports whether age meets the threshold.
func IsEligible(age, thresholdYears int) bool {
	return age >= thresholdYears
}

func civilBefore(y1 int, m1 time.Month, d1 int, y2 int, m2 time.Month, d2 int) bool {
	if y1 != y2 {
		return y1 < y2
	}
	if m1 != m2 {
		return m1 < m2
	}
	return d1 < d2
}
