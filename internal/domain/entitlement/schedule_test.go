package entitlement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func TestYearsOfService(t *testing.T) {
	cases := []struct {
		name       string
		hire, asOf time.Time
		want       int
	}{
		{"exact anniversary", day(2020, 1, 10), day(2024, 1, 10), 4},
		{"day before anniversary", day(2020, 1, 10), day(2024, 1, 9), 3},
		{"later in the year", day(2020, 1, 10), day(2024, 11, 30), 4},
		{"first year not completed", day(2024, 3, 1), day(2024, 12, 31), 0},
		{"hire in the future", day(2030, 1, 1), day(2024, 1, 1), 0},
		{"leap day hire in common year rolls to Mar 1", day(2020, 2, 29), day(2021, 2, 28), 0},
		{"leap day hire on Mar 1", day(2020, 2, 29), day(2021, 3, 1), 1},
		{"time of day ignored", day(2020, 1, 10).Add(23 * time.Hour), day(2024, 1, 10).Add(time.Hour), 4},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, YearsOfService(c.hire, c.asOf))
		})
	}
}

func TestDaysForYear(t *testing.T) {
	want := map[int]int{
		-3: 0, 0: 0,
		1: 12, 2: 14, 3: 16, 4: 18, 5: 20,
		6: 22, 10: 22,
		11: 24, 15: 24,
		16: 26, 20: 26,
		21: 28, 25: 28,
		26: 30, 30: 30,
		31: 32, 45: 32,
	}
	for years, days := range want {
		assert.Equalf(t, days, DaysForYear(years), "years=%d", years)
	}
}

func TestEndToEnd_HireDateToDays(t *testing.T) {
	years := YearsOfService(day(2020, 1, 10), day(2024, 1, 10))
	assert.Equal(t, 4, years)
	assert.Equal(t, 18, DaysForYear(years))
}

func TestIsAnniversary(t *testing.T) {
	hire := day(2020, 1, 10)
	assert.True(t, IsAnniversary(hire, day(2024, 1, 10)))
	assert.False(t, IsAnniversary(hire, day(2024, 1, 11)))
	assert.False(t, IsAnniversary(hire, day(2020, 1, 10)), "hire date itself is not a tenure anniversary")
	assert.True(t, IsAnniversary(day(2020, 2, 29), day(2021, 3, 1)))
}

func TestGraceExpiration(t *testing.T) {
	assert.Equal(t, day(2024, 5, 10), GraceExpiration(day(2024, 1, 10)))
	assert.Equal(t, day(2025, 2, 28), GraceExpiration(day(2024, 10, 31)), "clamped to month end")
	assert.Equal(t, day(2025, 3, 15), GraceExpiration(day(2024, 11, 15)), "crosses year boundary")
}
