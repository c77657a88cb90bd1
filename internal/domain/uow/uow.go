package uow

import (
	"context"
	"errors"

	"hr-portal-backend/internal/domain/employee"
	"hr-portal-backend/internal/domain/entitlement"
	"hr-portal-backend/internal/domain/vacation"
)

// ErrTransient marks lock timeouts, deadlocks and dropped connections. The whole
// operation can be retried: a failed tx leaves no partial state.
var ErrTransient = errors.New("transient persistence failure")

type Repos struct {
	Employees employee.Repository
	Periods   entitlement.Repository
	Requests  vacation.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// ledger tx: locks the employee row first, then passes it in. Every write to
	// an employee's entitlement periods must run here.
	WithinEmployeeTx(ctx context.Context, employeeID string, fn func(r Repos, e *employee.Employee) error) error
}
