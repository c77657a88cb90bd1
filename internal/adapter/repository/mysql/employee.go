package mysql

import (
	"context"

	employeeDomain "hr-portal-backend/internal/domain/employee"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EmployeeRepository struct{ db *gorm.DB }

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository { return &EmployeeRepository{db: db} }

func (r *EmployeeRepository) Create(ctx context.Context, e *employeeDomain.Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *EmployeeRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*employeeDomain.Employee, error) {
	var out employeeDomain.Employee
	res := r.db.WithContext(ctx).Where("employee_id = ?", employeeID).First(&out)
	return &out, res.Error
}

func (r *EmployeeRepository) GetByEmployeeIDForUpdate(ctx context.Context, employeeID string) (*employeeDomain.Employee, error) {
	var out employeeDomain.Employee
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("employee_id = ?", employeeID).
		First(&out)
	return &out, res.Error
}

func (r *EmployeeRepository) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	res := r.db.WithContext(ctx).
		Model(&employeeDomain.Employee{}).
		Order("id ASC").
		Pluck("employee_id", &ids)
	return ids, res.Error
}
