package mysql

import (
	"testing"
	"time"

	"hr-portal-backend/internal/domain/employee"
	"hr-portal-backend/internal/domain/entitlement"
	"hr-portal-backend/internal/domain/vacation"
	"hr-portal-backend/internal/testutil/sqlitedb"
	"hr-portal-backend/pkg/id"

	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return sqlitedb.Open(t)
}

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func seedEmployee(t *testing.T, db *gorm.DB, employeeID string, hire *time.Time, managerID *string) *employee.Employee {
	t.Helper()
	e := &employee.Employee{
		EmployeeID: employeeID,
		Name:       "Emp " + employeeID[:4],
		Email:      employeeID[:8] + "@example.com",
		HireDate:   hire,
		ManagerID:  managerID,
	}
	if err := db.Create(e).Error; err != nil {
		t.Fatalf("seed employee: %v", err)
	}
	return e
}

func makePeriod(employeeID string, year, assigned int, start time.Time) *entitlement.Period {
	return &entitlement.Period{
		EmployeeID:   employeeID,
		YearIndex:    year,
		DaysAssigned: assigned,
		StartDate:    start,
	}
}

func makeRequest(employeeID string, requestedAt time.Time) *vacation.Request {
	return &vacation.Request{
		RequestID:          id.NewID32(),
		EmployeeID:         employeeID,
		ManagerID:          "mmmmmmmmmmmmmmmmmmmmmmmmmmmmmmmm",
		StartDate:          day(2024, 3, 4),
		EndDate:            day(2024, 3, 6),
		DaysRequested:      3,
		Reason:             "family trip",
		Status:             vacation.StatusPending,
		ManagerToken:       id.NewToken(),
		ManagerTokenExpiry: requestedAt.Add(vacation.ManagerTokenTTL),
		RequestedAt:        requestedAt,
	}
}
