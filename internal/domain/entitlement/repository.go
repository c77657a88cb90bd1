package entitlement

import "context"

type Repository interface {
	Create(ctx context.Context, p *Period) error
	Save(ctx context.Context, p *Period) error

	// Both list calls return periods ordered by year_index ascending.
	ListByEmployee(ctx context.Context, employeeID string) ([]*Period, error)
	ListByEmployeeForUpdate(ctx context.Context, employeeID string) ([]*Period, error)
}
