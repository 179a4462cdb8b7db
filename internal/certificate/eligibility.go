package certificate

import (
	"strings"
	"time"
)

const (
	// RetentionDays is the prescription period (three years). A fine is
	// eligible only when strictly more days than this have elapsed.
	RetentionDays = 1095

	// DateLayout is the day-month-year layout used by the certificate.
	DateLayout = "02-01-2006"
)

// Clock supplies the reference instant for eligibility decisions.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current local time.
func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant.
type FixedClock time.Time

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time { return time.Time(c) }

// IsEligible reports whether the fine registered on dateString has
// prescribed at now. Anything after the first space (a time of day) is
// ignored. Unparsable or impossible dates are never eligible.
func IsEligible(dateString string, now time.Time) bool {
	entry, ok := ParseEntryDate(dateString)
	if !ok {
		return false
	}
	return elapsedDays(entry, now) > RetentionDays
}

// ParseEntryDate parses the date portion of a certificate date string.
func ParseEntryDate(dateString string) (time.Time, bool) {
	datePart, _, _ := strings.Cut(dateString, " ")
	datePart = strings.TrimSpace(datePart)
	if datePart == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, datePart)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// elapsedDays counts whole days from entry (midnight) to now, using now's
// wall clock so daylight saving shifts do not move the boundary.
func elapsedDays(entry, now time.Time) int {
	wall := time.Date(now.Year(), now.Month(), now.Day(),
		now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), time.UTC)
	diff := wall.Sub(entry)
	days := int(diff / (24 * time.Hour))
	if diff < 0 && diff%(24*time.Hour) != 0 {
		days--
	}
	return days
}
