// Package date holds civil-date helpers. All dates are UTC midnights.
package date

import (
	"math"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

// Layout is the canonical wire format for dates (aligns with schema DATE).
const Layout = "2006-01-02"

// Of truncates t to its UTC calendar day.
func Of(t time.Time) time.Time {
	return now.With(t.UTC()).BeginningOfDay()
}

// Parse reads a YYYY-MM-DD string as a UTC date.
func Parse(raw string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, strings.TrimSpace(raw), time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// Format renders t as YYYY-MM-DD in UTC.
func Format(t time.Time) string { return t.UTC().Format(Layout) }

// InclusiveDays counts calendar days from start to end, both endpoints included.
// Returns a value < 1 when end precedes start.
func InclusiveDays(start, end time.Time) int {
	d := Of(end).Sub(Of(start)).Hours() / 24
	return int(math.Ceil(d)) + 1
}
