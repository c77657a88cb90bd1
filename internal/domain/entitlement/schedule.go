package entitlement

import (
	"time"

	"hr-portal-backend/pkg/date"
)

// GraceMonths is how long a previous period stays spendable after the next one starts.
const GraceMonths = 4

// YearsOfService returns completed tenure years on asOf. A future hire date yields 0.
func YearsOfService(hireDate, asOf time.Time) int {
	h, a := date.Of(hireDate), date.Of(asOf)
	years := a.Year() - h.Year()
	if Anniversary(h, years).After(a) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// DaysForYear is the statutory schedule of paid days per tenure year.
func DaysForYear(years int) int {
	switch {
	case years < 1:
		return 0
	case years <= 5:
		return 10 + 2*years // 12,14,16,18,20
	case years <= 10:
		return 22
	case years <= 15:
		return 24
	case years <= 20:
		return 26
	case years <= 25:
		return 28
	case years <= 30:
		return 30
	default:
		return 32
	}
}

// Anniversary is the date tenure year `years` begins. Feb 29 hires roll to Mar 1
// in common years, consistently with YearsOfService.
func Anniversary(hireDate time.Time, years int) time.Time {
	return date.Of(hireDate).AddDate(years, 0, 0)
}

// IsAnniversary reports whether asOf starts a new tenure year (year 1 or later).
func IsAnniversary(hireDate, asOf time.Time) bool {
	years := YearsOfService(hireDate, asOf)
	return years >= 1 && Anniversary(hireDate, years).Equal(date.Of(asOf))
}

// GraceExpiration is start + GraceMonths, clamped to the last day of the target month.
func GraceExpiration(start time.Time) time.Time {
	s := date.Of(start)
	firstOfTarget := time.Date(s.Year(), s.Month()+GraceMonths, 1, 0, 0, 0, 0, time.UTC)
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	day := s.Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, time.UTC)
}
