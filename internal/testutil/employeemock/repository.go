package employeemock

import (
	"context"

	domain "hr-portal-backend/internal/domain/employee"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies employee.Repository.
type Repo struct {
	CreateFn                   func(ctx context.Context, e *domain.Employee) error
	GetByEmployeeIDFn          func(ctx context.Context, employeeID string) (*domain.Employee, error)
	GetByEmployeeIDForUpdateFn func(ctx context.Context, employeeID string) (*domain.Employee, error)
	ListIDsFn                  func(ctx context.Context) ([]string, error)
}

// ByID builds a Repo whose lookups resolve against the given employees and
// return domain.ErrNotFound otherwise.
func ByID(emps ...*domain.Employee) *Repo {
	get := func(_ context.Context, employeeID string) (*domain.Employee, error) {
		for _, e := range emps {
			if e.EmployeeID == employeeID {
				return e, nil
			}
		}
		return nil, domain.ErrNotFound
	}
	return &Repo{
		GetByEmployeeIDFn:          get,
		GetByEmployeeIDForUpdateFn: get,
		ListIDsFn: func(context.Context) ([]string, error) {
			ids := make([]string, 0, len(emps))
			for _, e := range emps {
				ids = append(ids, e.EmployeeID)
			}
			return ids, nil
		},
	}
}

func (m *Repo) Create(ctx context.Context, e *domain.Employee) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, e)
	}
	return nil
}
func (m *Repo) GetByEmployeeID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	if m.GetByEmployeeIDFn != nil {
		return m.GetByEmployeeIDFn(ctx, employeeID)
	}
	return nil, context.Canceled
}
func (m *Repo) GetByEmployeeIDForUpdate(ctx context.Context, employeeID string) (*domain.Employee, error) {
	if m.GetByEmployeeIDForUpdateFn != nil {
		return m.GetByEmployeeIDForUpdateFn(ctx, employeeID)
	}
	return nil, context.Canceled
}
func (m *Repo) ListIDs(ctx context.Context) ([]string, error) {
	if m.ListIDsFn != nil {
		return m.ListIDsFn(ctx)
	}
	return nil, nil
}
