package vacation

import (
	"time"

	domain "hr-portal-backend/internal/domain/vacation"
	"hr-portal-backend/pkg/date"
)

type SubmitInput struct {
	EmployeeID string
	StartDate  string // YYYY-MM-DD
	EndDate    string // YYYY-MM-DD, inclusive
	Reason     string
}

type SubmitResult struct {
	RequestID     string        `json:"request_id"`
	DaysRequested int           `json:"days_requested"`
	Status        domain.Status `json:"status"`
}

type DecisionResult struct {
	RequestID string        `json:"request_id"`
	Status    domain.Status `json:"status"`
}

type RequestSummary struct {
	RequestID         string        `json:"request_id"`
	EmployeeID        string        `json:"employee_id"`
	ManagerID         string        `json:"manager_id"`
	StartDate         string        `json:"start_date"`
	EndDate           string        `json:"end_date"`
	DaysRequested     int           `json:"days_requested"`
	Reason            string        `json:"reason"`
	Status            domain.Status `json:"status"`
	RequestedAt       time.Time     `json:"requested_at"`
	ManagerActionedAt *time.Time    `json:"manager_actioned_at,omitempty"`
	HRDecidedAt       *time.Time    `json:"hr_decided_at,omitempty"`
}

func toSummary(r *domain.Request) RequestSummary {
	return RequestSummary{
		RequestID:         r.RequestID,
		EmployeeID:        r.EmployeeID,
		ManagerID:         r.ManagerID,
		StartDate:         date.Format(r.StartDate),
		EndDate:           date.Format(r.EndDate),
		DaysRequested:     r.DaysRequested,
		Reason:            r.Reason,
		Status:            r.Status,
		RequestedAt:       r.RequestedAt,
		ManagerActionedAt: r.ManagerActionedAt,
		HRDecidedAt:       r.HRDecidedAt,
	}
}
