package mysql

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"

	"hr-portal-backend/internal/domain/employee"
	"hr-portal-backend/internal/domain/uow"

	mysqldrv "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// MySQL server error numbers that a retry can clear.
const (
	errLockWaitTimeout = 1205
	errDeadlock        = 1213
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func (u *GormUoW) repos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Employees: &EmployeeRepository{db: tx},
		Periods:   &PeriodRepository{db: tx},
		Requests:  &VacationRequestRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(u.repos(tx))
	})
	return classify(err)
}

func (u *GormUoW) WithinEmployeeTx(ctx context.Context, employeeID string, fn func(r uow.Repos, e *employee.Employee) error) error {
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := u.repos(tx)
		// lock the employee row up-front: it serializes every ledger writer
		e, err := r.Employees.GetByEmployeeIDForUpdate(ctx, employeeID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return employee.ErrNotFound
		}
		if err != nil {
			return err
		}
		return fn(r, e)
	})
	return classify(err)
}

// classify tags retryable persistence failures with uow.ErrTransient.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var me *mysqldrv.MySQLError
	if errors.As(err, &me) && (me.Number == errLockWaitTimeout || me.Number == errDeadlock) {
		return fmt.Errorf("%w: %w", uow.ErrTransient, err)
	}
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, mysqldrv.ErrInvalidConn) ||
		errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", uow.ErrTransient, err)
	}
	return err
}
