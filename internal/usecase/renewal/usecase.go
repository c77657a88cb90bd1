package renewal

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
)

var (
	// another run holds the renewal lock
	ErrAlreadyRunning = errors.New("renewal run already in progress")
	// grants must not be opened ahead of their anniversary
	ErrFutureDate = errors.New("renewal date is in the future")
)

type Ledger interface {
	EnsurePeriod(ctx context.Context, r uow.Repos, emp *employee.Employee, asOf time.Time) (bool, error)
	ExpireLapsed(ctx context.Context, r uow.Repos, employeeID string, asOf time.Time) (int, error)
}

type RunResult struct {
	AsOf             string `json:"as_of"`
	EmployeesScanned int    `json:"employees_scanned"`
	PeriodsCreated   int    `json:"periods_created"`
	PeriodsExpired   int    `json:"periods_expired"`
	Failures         int    `json:"failures"`
}

type Usecase struct {
	employees employee.Repository
	uow       uow.UnitOfWork
	ledger    Ledger
	log       logrus.FieldLogger
}

func NewUsecase(emps employee.Repository, tx uow.UnitOfWork, led Ledger, log logrus.FieldLogger) *Usecase {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Usecase{employees: emps, uow: tx, ledger: led, log: log.WithField("module", "renewal")}
}

// RunDaily opens anniversary periods and records lapsed grace windows for
// every employee. Each employee runs in its own locked tx, so one failure
// does not stop the batch; failures are joined into the returned error.
// Re-running for the same date is a no-op.
func (u *Usecase) RunDaily(ctx context.Context, asOf time.Time) (*RunResult, error) {
	asOf = date.Of(asOf)
	res := &RunResult{AsOf: date.Format(asOf)}

	ids, err := u.employees.ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}

	var errs []error
	for _, empID := range ids {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		res.EmployeesScanned++

		var created bool
		var expired int
		err := u.uow.WithinEmployeeTx(ctx, empID, func(r uow.Repos, e *employee.Employee) error {
			var err error
			if e.HireDate != nil && entitlement.IsAnniversary(*e.HireDate, asOf) {
				if created, err = u.ledger.EnsurePeriod(ctx, r, e, asOf); err != nil {
					return err
				}
			}
			expired, err = u.ledger.ExpireLapsed(ctx, r, empID, asOf)
			return err
		})
		if err != nil {
			res.Failures++
			errs = append(errs, fmt.Errorf("employee %s: %w", empID, err))
			u.log.WithError(err).WithFields(logrus.Fields{
				"op":          "run_daily",
				"employee_id": empID,
			}).Error("renewal failed for employee")
			continue
		}
		if created {
			res.PeriodsCreated++
		}
		res.PeriodsExpired += expired
	}

	u.log.WithFields(logrus.Fields{
		"op":       "run_daily",
		"as_of":    res.AsOf,
		"scanned":  res.EmployeesScanned,
		"created":  res.PeriodsCreated,
		"expired":  res.PeriodsExpired,
		"failures": res.Failures,
	}).Info("renewal run finished")

	return res, errors.Join(errs...)
}
