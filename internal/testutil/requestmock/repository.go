package requestmock

import (
	"context"

	domain "hr-portal-backend/internal/domain/vacation"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies vacation.Repository.
// Unset lookups return context.Canceled so a forgotten stub fails loudly.
type Repo struct {
	CreateFn                     func(ctx context.Context, r *domain.Request) error
	SaveFn                       func(ctx context.Context, r *domain.Request) error
	GetByRequestIDFn             func(ctx context.Context, requestID string) (*domain.Request, error)
	GetByManagerTokenFn          func(ctx context.Context, token string) (*domain.Request, error)
	GetByRequestIDForUpdateFn    func(ctx context.Context, requestID string) (*domain.Request, error)
	GetByManagerTokenForUpdateFn func(ctx context.Context, token string) (*domain.Request, error)
	ListFn                       func(ctx context.Context, f domain.ListFilter) ([]*domain.Request, error)
}

func (m *Repo) Create(ctx context.Context, r *domain.Request) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}
func (m *Repo) Save(ctx context.Context, r *domain.Request) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	return nil
}
func (m *Repo) GetByRequestID(ctx context.Context, requestID string) (*domain.Request, error) {
	if m.GetByRequestIDFn != nil {
		return m.GetByRequestIDFn(ctx, requestID)
	}
	return nil, context.Canceled
}
func (m *Repo) GetByManagerToken(ctx context.Context, token string) (*domain.Request, error) {
	if m.GetByManagerTokenFn != nil {
		return m.GetByManagerTokenFn(ctx, token)
	}
	return nil, context.Canceled
}
func (m *Repo) GetByRequestIDForUpdate(ctx context.Context, requestID string) (*domain.Request, error) {
	if m.GetByRequestIDForUpdateFn != nil {
		return m.GetByRequestIDForUpdateFn(ctx, requestID)
	}
	return nil, context.Canceled
}
func (m *Repo) GetByManagerTokenForUpdate(ctx context.Context, token string) (*domain.Request, error) {
	if m.GetByManagerTokenForUpdateFn != nil {
		return m.GetByManagerTokenForUpdateFn(ctx, token)
	}
	return nil, context.Canceled
}
func (m *Repo) List(ctx context.Context, f domain.ListFilter) ([]*domain.Request, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, nil
}
