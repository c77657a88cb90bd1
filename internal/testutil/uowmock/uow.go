package uowmock

import (
	"context"
	"errors"

	"hr-portal-backend/internal/domain/employee"
	"hr-portal-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn         func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinEmployeeTxFn func(ctx context.Context, employeeID string, fn func(r uow.Repos, e *employee.Employee) error) error
}

func New() *UoW { return &UoW{} }

// Passthrough returns a mock that runs every fn directly against repos, handing
// emp to employee-locked bodies. No rollback is simulated.
func Passthrough(repos uow.Repos, emp *employee.Employee) *UoW {
	return &UoW{
		WithinTxFn: func(_ context.Context, fn func(uow.Repos) error) error { return fn(repos) },
		WithinEmployeeTxFn: func(_ context.Context, employeeID string, fn func(uow.Repos, *employee.Employee) error) error {
			if emp == nil || emp.EmployeeID != employeeID {
				return employee.ErrNotFound
			}
			return fn(repos, emp)
		},
	}
}

func (m *UoW) WithWithinTx(fn func(context.Context, func(uow.Repos) error) error) *UoW {
	m.WithinTxFn = fn
	return m
}
func (m *UoW) WithWithinEmployeeTx(fn func(context.Context, string, func(uow.Repos, *employee.Employee) error) error) *UoW {
	m.WithinEmployeeTxFn = fn
	return m
}
func (m *UoW) Reset() { *m = UoW{} }

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}
func (m *UoW) WithinEmployeeTx(ctx context.Context, employeeID string, fn func(r uow.Repos, e *employee.Employee) error) error {
	if m.WithinEmployeeTxFn != nil {
		return m.WithinEmployeeTxFn(ctx, employeeID, fn)
	}
	return errUnimplemented
}
