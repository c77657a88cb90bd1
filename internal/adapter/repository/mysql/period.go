package mysql

import (
	"context"

	"hr-portal-backend/internal/domain/entitlement"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PeriodRepository struct{ db *gorm.DB }

func NewPeriodRepository(db *gorm.DB) *PeriodRepository { return &PeriodRepository{db: db} }

func (r *PeriodRepository) Create(ctx context.Context, p *entitlement.Period) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PeriodRepository) Save(ctx context.Context, p *entitlement.Period) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PeriodRepository) ListByEmployee(ctx context.Context, employeeID string) ([]*entitlement.Period, error) {
	var out []*entitlement.Period
	res := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("year_index ASC").
		Find(&out)
	return out, res.Error
}

func (r *PeriodRepository) ListByEmployeeForUpdate(ctx context.Context, employeeID string) ([]*entitlement.Period, error) {
	var out []*entitlement.Period
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("employee_id = ?", employeeID).
		Order("year_index ASC").
		Find(&out)
	return out, res.Error
}
