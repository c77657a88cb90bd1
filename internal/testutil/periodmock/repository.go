package periodmock

import (
	"context"

	domain "hr-portal-backend/internal/domain/entitlement"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies entitlement.Repository.
type Repo struct {
	CreateFn                  func(ctx context.Context, p *domain.Period) error
	SaveFn                    func(ctx context.Context, p *domain.Period) error
	ListByEmployeeFn          func(ctx context.Context, employeeID string) ([]*domain.Period, error)
	ListByEmployeeForUpdateFn func(ctx context.Context, employeeID string) ([]*domain.Period, error)
}

func (m *Repo) Create(ctx context.Context, p *domain.Period) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}
func (m *Repo) Save(ctx context.Context, p *domain.Period) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}
func (m *Repo) ListByEmployee(ctx context.Context, employeeID string) ([]*domain.Period, error) {
	if m.ListByEmployeeFn != nil {
		return m.ListByEmployeeFn(ctx, employeeID)
	}
	return nil, nil
}
func (m *Repo) ListByEmployeeForUpdate(ctx context.Context, employeeID string) ([]*domain.Period, error) {
	if m.ListByEmployeeForUpdateFn != nil {
		return m.ListByEmployeeForUpdateFn(ctx, employeeID)
	}
	return nil, nil
}

// Store is an in-memory Repo backing for ledger tests. Periods are kept as the
// same pointers callers receive, so Save is a no-op besides counting.
type Store struct {
	Periods []*domain.Period
	Saves   int
	Creates int
}

func (s *Store) Repo() *Repo {
	list := func(_ context.Context, employeeID string) ([]*domain.Period, error) {
		var out []*domain.Period
		for _, p := range s.Periods {
			if p.EmployeeID == employeeID {
				out = append(out, p)
			}
		}
		return out, nil
	}
	return &Repo{
		CreateFn: func(_ context.Context, p *domain.Period) error {
			s.Creates++
			p.ID = uint64(len(s.Periods) + 1)
			s.Periods = append(s.Periods, p)
			return nil
		},
		SaveFn: func(context.Context, *domain.Period) error {
			s.Saves++
			return nil
		},
		ListByEmployeeFn:          list,
		ListByEmployeeForUpdateFn: list,
	}
}
