package vacation

import "context"

type ListFilter struct {
	EmployeeID string // empty = all employees
	Status     Status // empty = any status
	Limit      int
}

type Repository interface {
	Create(ctx context.Context, r *Request) error
	Save(ctx context.Context, r *Request) error
	GetByRequestID(ctx context.Context, requestID string) (*Request, error)
	GetByManagerToken(ctx context.Context, token string) (*Request, error)

	// Locking reads; rows stay locked until the surrounding tx ends.
	GetByRequestIDForUpdate(ctx context.Context, requestID string) (*Request, error)
	GetByManagerTokenForUpdate(ctx context.Context, token string) (*Request, error)

	// Newest first.
	List(ctx context.Context, f ListFilter) ([]*Request, error)
}
