package mysql

import (
	"context"

	"hr-portal-backend/internal/domain/vacation"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultListLimit = 200

type VacationRequestRepository struct{ db *gorm.DB }

func NewVacationRequestRepository(db *gorm.DB) *VacationRequestRepository {
	return &VacationRequestRepository{db: db}
}

func (r *VacationRequestRepository) Create(ctx context.Context, v *vacation.Request) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *VacationRequestRepository) Save(ctx context.Context, v *vacation.Request) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *VacationRequestRepository) GetByRequestID(ctx context.Context, requestID string) (*vacation.Request, error) {
	var out vacation.Request
	res := r.db.WithContext(ctx).Where("request_id = ?", requestID).First(&out)
	return &out, res.Error
}

func (r *VacationRequestRepository) GetByManagerToken(ctx context.Context, token string) (*vacation.Request, error) {
	var out vacation.Request
	res := r.db.WithContext(ctx).Where("manager_token = ?", token).First(&out)
	return &out, res.Error
}

func (r *VacationRequestRepository) GetByRequestIDForUpdate(ctx context.Context, requestID string) (*vacation.Request, error) {
	var out vacation.Request
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("request_id = ?", requestID).
		First(&out)
	return &out, res.Error
}

func (r *VacationRequestRepository) GetByManagerTokenForUpdate(ctx context.Context, token string) (*vacation.Request, error) {
	var out vacation.Request
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("manager_token = ?", token).
		First(&out)
	return &out, res.Error
}

func (r *VacationRequestRepository) List(ctx context.Context, f vacation.ListFilter) ([]*vacation.Request, error) {
	q := r.db.WithContext(ctx).Model(&vacation.Request{})
	if f.EmployeeID != "" {
		q = q.Where("employee_id = ?", f.EmployeeID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	limit := f.Limit
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	var out []*vacation.Request
	res := q.Order("requested_at DESC, id DESC").Limit(limit).Find(&out)
	return out, res.Error
}
