package employee

import "context"

type Repository interface {
	Create(ctx context.Context, e *Employee) error
	GetByEmployeeID(ctx context.Context, employeeID string) (*Employee, error)

	// Locks the employee row until the surrounding tx ends.
	GetByEmployeeIDForUpdate(ctx context.Context, employeeID string) (*Employee, error)

	// ListIDs returns every public employee id, ordered for stable batch runs.
	ListIDs(ctx context.Context) ([]string, error)
}
