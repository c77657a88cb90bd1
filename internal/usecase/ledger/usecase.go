package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hr-portal-backend/internal/domain/employee"
	"hr-portal-backend/internal/domain/entitlement"
	"hr-portal-backend/internal/domain/uow"
	"hr-portal-backend/pkg/date"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Ledger owns entitlement periods. Methods taking uow.Repos run inside the
// caller's transaction; the mutating ones expect the employee row to be
// locked already (uow.WithinEmployeeTx).
type Ledger struct {
	uow uow.UnitOfWork
	log logrus.FieldLogger
	now func() time.Time
}

func New(tx uow.UnitOfWork, log logrus.FieldLogger) *Ledger {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Ledger{
		uow: tx,
		log: log.WithField("module", "ledger"),
		now: func() time.Time { return time.Now().UTC() },
	}
}

// WithClock swaps the time source, for tests.
func (l *Ledger) WithClock(now func() time.Time) *Ledger {
	l.now = now
	return l
}

// EnsurePeriod creates the period for the employee's current tenure year when
// it is missing, and opens the grace window on older periods that still hold
// days. Safe to call repeatedly. Reports whether a period was created.
func (l *Ledger) EnsurePeriod(ctx context.Context, r uow.Repos, emp *employee.Employee, asOf time.Time) (bool, error) {
	if emp.HireDate == nil {
		return false, nil
	}
	years := entitlement.YearsOfService(*emp.HireDate, asOf)
	if years < 1 {
		return false, nil
	}

	periods, err := r.Periods.ListByEmployeeForUpdate(ctx, emp.EmployeeID)
	if err != nil {
		return false, err
	}
	// a backdated asOf never opens a year older than what is already recorded
	if latestYear(periods) > years {
		return false, nil
	}

	start := entitlement.Anniversary(*emp.HireDate, years)
	created := false
	if !hasYear(periods, years) {
		p := &entitlement.Period{
			EmployeeID:   emp.EmployeeID,
			YearIndex:    years,
			DaysAssigned: entitlement.DaysForYear(years),
			StartDate:    start,
		}
		switch err := r.Periods.Create(ctx, p); {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			// another writer got there first; nothing to do
		case err != nil:
			return false, err
		default:
			created = true
			l.log.WithFields(logrus.Fields{
				"op":          "ensure_period",
				"employee_id": emp.EmployeeID,
				"year_index":  years,
				"days":        p.DaysAssigned,
			}).Info("entitlement period created")
		}
	}

	grace := entitlement.GraceExpiration(start)
	for _, p := range periods {
		if p.YearIndex >= years || p.ExpirationDate != nil || p.Remaining() <= 0 {
			continue
		}
		exp := grace
		p.ExpirationDate = &exp
		if err := r.Periods.Save(ctx, p); err != nil {
			return created, err
		}
	}
	return created, nil
}

// AvailableBalance is a plain read; it takes no locks.
func (l *Ledger) AvailableBalance(ctx context.Context, r uow.Repos, employeeID string, asOf time.Time) (int, error) {
	periods, err := r.Periods.ListByEmployee(ctx, employeeID)
	if err != nil {
		return 0, err
	}
	return entitlement.Balance(periods, asOf), nil
}

// Debit consumes days FIFO by expiration. Either every allocation is written
// or none is: on shortage no period is touched.
func (l *Ledger) Debit(ctx context.Context, r uow.Repos, employeeID string, days int, asOf time.Time) ([]entitlement.Allocation, error) {
	periods, err := r.Periods.ListByEmployeeForUpdate(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	plan, err := entitlement.PlanDebit(periods, days, asOf)
	if err != nil {
		return nil, err
	}
	for _, a := range plan {
		a.Period.DaysUsed += a.Days
		if err := r.Periods.Save(ctx, a.Period); err != nil {
			return nil, fmt.Errorf("debit year %d: %w", a.Period.YearIndex, err)
		}
	}
	return plan, nil
}

// ExpireLapsed records forfeiture on periods whose grace window closed before
// asOf. Eligibility never depends on these fields; they are an audit trail.
func (l *Ledger) ExpireLapsed(ctx context.Context, r uow.Repos, employeeID string, asOf time.Time) (int, error) {
	periods, err := r.Periods.ListByEmployeeForUpdate(ctx, employeeID)
	if err != nil {
		return 0, err
	}
	marked := 0
	for _, p := range periods {
		if p.ExpiredAt != nil || !p.Lapsed(asOf) || p.Remaining() <= 0 {
			continue
		}
		at := l.now()
		p.ExpiredAt = &at
		p.DaysForfeited = p.Remaining()
		if err := r.Periods.Save(ctx, p); err != nil {
			return marked, err
		}
		marked++
		l.log.WithFields(logrus.Fields{
			"op":          "expire_lapsed",
			"employee_id": employeeID,
			"year_index":  p.YearIndex,
			"forfeited":   p.DaysForfeited,
		}).Info("entitlement period expired")
	}
	return marked, nil
}

// Ensure runs EnsurePeriod in its own employee-locked transaction.
func (l *Ledger) Ensure(ctx context.Context, employeeID string, asOf time.Time) (bool, error) {
	var created bool
	err := l.uow.WithinEmployeeTx(ctx, employeeID, func(r uow.Repos, e *employee.Employee) error {
		var err error
		created, err = l.EnsurePeriod(ctx, r, e, asOf)
		return err
	})
	return created, err
}

// GetBalance bootstraps the current period, then reports the per-period breakdown.
func (l *Ledger) GetBalance(ctx context.Context, employeeID string) (*BalanceDTO, error) {
	asOf := date.Of(l.now())
	var dto *BalanceDTO

	err := l.uow.WithinEmployeeTx(ctx, employeeID, func(r uow.Repos, e *employee.Employee) error {
		if _, err := l.EnsurePeriod(ctx, r, e, asOf); err != nil {
			return err
		}
		periods, err := r.Periods.ListByEmployee(ctx, employeeID)
		if err != nil {
			return err
		}
		dto = &BalanceDTO{
			EmployeeID: employeeID,
			AsOf:       date.Format(asOf),
			Available:  entitlement.Balance(periods, asOf),
			Periods:    make([]PeriodDTO, 0, len(periods)),
		}
		for _, p := range periods {
			pd := PeriodDTO{
				YearIndex:     p.YearIndex,
				DaysAssigned:  p.DaysAssigned,
				DaysUsed:      p.DaysUsed,
				DaysRemaining: p.Remaining(),
				StartDate:     date.Format(p.StartDate),
				Expired:       p.Lapsed(asOf),
			}
			if p.ExpirationDate != nil {
				s := date.Format(*p.ExpirationDate)
				pd.ExpirationDate = &s
			}
			dto.Periods = append(dto.Periods, pd)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func latestYear(periods []*entitlement.Period) int {
	latest := 0
	for _, p := range periods {
		if p.YearIndex > latest {
			latest = p.YearIndex
		}
	}
	return latest
}

func hasYear(periods []*entitlement.Period, year int) bool {
	for _, p := range periods {
		if p.YearIndex == year {
			return true
		}
	}
	return false
}
