package entitlement

import (
	"fmt"
	"sort"
	"time"
)

// Allocation is the share of a debit taken from one period.
type Allocation struct {
	Period *Period
	Days   int
}

// Balance sums unused capacity over periods still eligible on asOf.
func Balance(periods []*Period, asOf time.Time) int {
	total := 0
	for _, p := range periods {
		if p.EligibleAt(asOf) && p.Remaining() > 0 {
			total += p.Remaining()
		}
	}
	return total
}

// PlanDebit allocates days across eligible periods, soonest expiration first and
// open-ended periods last. It never mutates the periods; on shortage nothing is
// allocated and ErrInsufficientBalance is returned.
func PlanDebit(periods []*Period, days int, asOf time.Time) ([]Allocation, error) {
	if days < 1 {
		return nil, ErrInvalidDays
	}

	eligible := make([]*Period, 0, len(periods))
	capacity := 0
	for _, p := range periods {
		if p.EligibleAt(asOf) && p.Remaining() > 0 {
			eligible = append(eligible, p)
			capacity += p.Remaining()
		}
	}
	if capacity < days {
		return nil, fmt.Errorf("%w: need %d, have %d", ErrInsufficientBalance, days, capacity)
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		a, b := eligible[i], eligible[j]
		switch {
		case a.ExpirationDate != nil && b.ExpirationDate != nil:
			if !a.ExpirationDate.Equal(*b.ExpirationDate) {
				return a.ExpirationDate.Before(*b.ExpirationDate)
			}
		case a.ExpirationDate != nil:
			return true
		case b.ExpirationDate != nil:
			return false
		}
		if !a.StartDate.Equal(b.StartDate) {
			return a.StartDate.Before(b.StartDate)
		}
		return a.YearIndex < b.YearIndex
	})

	out := make([]Allocation, 0, len(eligible))
	left := days
	for _, p := range eligible {
		if left == 0 {
			break
		}
		take := p.Remaining()
		if take > left {
			take = left
		}
		out = append(out, Allocation{Period: p, Days: take})
		left -= take
	}
	return out, nil
}
