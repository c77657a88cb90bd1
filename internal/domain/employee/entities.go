package employee

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("employee not found")
)

// Employee is owned by the HR directory; the vacation core only reads it and
// locks its row to serialize ledger writes for that employee.
type Employee struct {
	ID         uint64 `gorm:"primaryKey;column:id" json:"-"`
	EmployeeID string `gorm:"column:employee_id;size:32;not null;uniqueIndex:ux_employees_employee_id" json:"employee_id"`
	Name       string `gorm:"column:name;size:191" json:"name"`
	Email      string `gorm:"column:email;size:191" json:"email"`
	// nil when the hire date is unknown; such employees never accrue.
	HireDate *time.Time `gorm:"column:hire_date" json:"hire_date,omitempty"`
	// Public employee_id of the line manager.
	ManagerID *string   `gorm:"column:manager_id;size:32;index:idx_employees_manager" json:"manager_id,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Employee) TableName() string { return "employees" }

// HasManager reports whether a manager is assigned.
func (e *Employee) HasManager() bool {
	return e.ManagerID != nil && *e.ManagerID != ""
}
