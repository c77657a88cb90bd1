package entitlement

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(t time.Time) *time.Time { return &t }

func TestPlanDebit_SoonestExpirationFirst(t *testing.T) {
	asOf := day(2024, 6, 1)
	a := &Period{ID: 1, YearIndex: 3, DaysAssigned: 16, DaysUsed: 13, StartDate: day(2023, 1, 10), ExpirationDate: ptr(asOf.AddDate(0, 0, 10))}
	b := &Period{ID: 2, YearIndex: 4, DaysAssigned: 20, DaysUsed: 0, StartDate: day(2024, 1, 10)}

	allocs, err := PlanDebit([]*Period{b, a}, 5, asOf)
	require.NoError(t, err)
	require.Len(t, allocs, 2)
	assert.Equal(t, a, allocs[0].Period)
	assert.Equal(t, 3, allocs[0].Days)
	assert.Equal(t, b, allocs[1].Period)
	assert.Equal(t, 2, allocs[1].Days)

	// planning does not mutate
	assert.Equal(t, 13, a.DaysUsed)
	assert.Equal(t, 0, b.DaysUsed)
}

func TestPlanDebit_OrdersMultipleExpiringPeriods(t *testing.T) {
	asOf := day(2024, 6, 1)
	late := &Period{ID: 1, DaysAssigned: 5, ExpirationDate: ptr(day(2024, 9, 1)), StartDate: day(2022, 1, 1)}
	soon := &Period{ID: 2, DaysAssigned: 5, ExpirationDate: ptr(day(2024, 7, 1)), StartDate: day(2023, 1, 1)}
	open := &Period{ID: 3, DaysAssigned: 5, StartDate: day(2024, 1, 1)}

	allocs, err := PlanDebit([]*Period{open, late, soon}, 7, asOf)
	require.NoError(t, err)
	require.Len(t, allocs, 2)
	assert.Equal(t, uint64(2), allocs[0].Period.ID)
	assert.Equal(t, 5, allocs[0].Days)
	assert.Equal(t, uint64(1), allocs[1].Period.ID)
	assert.Equal(t, 2, allocs[1].Days)
}

func TestPlanDebit_SkipsExpiredAndExhausted(t *testing.T) {
	asOf := day(2024, 6, 1)
	expired := &Period{ID: 1, DaysAssigned: 10, ExpirationDate: ptr(day(2024, 5, 31))}
	exhausted := &Period{ID: 2, DaysAssigned: 10, DaysUsed: 10}
	lastDay := &Period{ID: 3, DaysAssigned: 2, ExpirationDate: ptr(asOf)}

	assert.Equal(t, 2, Balance([]*Period{expired, exhausted, lastDay}, asOf))

	allocs, err := PlanDebit([]*Period{expired, exhausted, lastDay}, 2, asOf)
	require.NoError(t, err)
	require.Len(t, allocs, 1)
	assert.Equal(t, uint64(3), allocs[0].Period.ID)
}

func TestPlanDebit_InsufficientIsAllOrNothing(t *testing.T) {
	asOf := day(2024, 6, 1)
	p := &Period{ID: 1, DaysAssigned: 12, DaysUsed: 2}

	allocs, err := PlanDebit([]*Period{p}, 11, asOf)
	assert.Nil(t, allocs)
	assert.True(t, errors.Is(err, ErrInsufficientBalance), "got %v", err)
	assert.Equal(t, 2, p.DaysUsed)
}

func TestPlanDebit_InvalidDays(t *testing.T) {
	_, err := PlanDebit(nil, 0, day(2024, 1, 1))
	assert.ErrorIs(t, err, ErrInvalidDays)
}

func TestBalance_NoPeriods(t *testing.T) {
	assert.Equal(t, 0, Balance(nil, day(2024, 1, 1)))
}

func TestPlanDebit_IgnoresPeriodsNotYetStarted(t *testing.T) {
	asOf := day(2024, 6, 1)
	current := &Period{ID: 1, YearIndex: 4, DaysAssigned: 18, StartDate: day(2024, 1, 10)}
	next := &Period{ID: 2, YearIndex: 5, DaysAssigned: 20, StartDate: day(2025, 1, 10)}

	assert.Equal(t, 18, Balance([]*Period{current, next}, asOf))
	assert.False(t, next.EligibleAt(asOf))
	assert.False(t, next.Lapsed(asOf), "a future period is not lapsed")
	assert.True(t, next.EligibleAt(day(2025, 1, 10)))

	_, err := PlanDebit([]*Period{current, next}, 19, asOf)
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	allocs, err := PlanDebit([]*Period{next, current}, 18, asOf)
	require.NoError(t, err)
	require.Len(t, allocs, 1)
	assert.Equal(t, uint64(1), allocs[0].Period.ID)
}
