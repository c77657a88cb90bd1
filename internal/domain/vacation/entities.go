package vacation

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound          = errors.New("vacation request not found")
	ErrInvalidDates      = errors.New("invalid vacation dates")
	ErrNoManagerAssigned = errors.New("employee has no manager assigned")
	ErrInvalidToken      = errors.New("invalid manager token")
	ErrTokenExpired      = errors.New("manager token expired")
	ErrAlreadyActioned   = errors.New("request already actioned by manager")
	ErrInvalidState      = errors.New("invalid request state for this action")
	ErrUnknownStatus     = errors.New("unknown request status")
)

// ManagerTokenTTL bounds how long a manager action link stays usable.
const ManagerTokenTTL = 48 * time.Hour

type Status string

const (
	StatusPending   Status = "pending"
	StatusPendingHR Status = "pending_hr"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPendingHR, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// CanTransition encodes the forward-only state machine.
func (s Status) CanTransition(to Status) bool {
	switch s {
	case StatusPending:
		return to == StatusPendingHR || to == StatusRejected
	case StatusPendingHR:
		return to == StatusApproved || to == StatusRejected
	}
	return false
}

type Request struct {
	ID            uint64    `gorm:"primaryKey;column:id" json:"-"`
	RequestID     string    `gorm:"column:request_id;size:32;not null;uniqueIndex:ux_vacation_requests_request_id" json:"request_id"`
	EmployeeID    string    `gorm:"column:employee_id;size:32;not null;index:idx_vacation_requests_employee" json:"employee_id"`
	ManagerID     string    `gorm:"column:manager_id;size:32;not null" json:"manager_id"`
	StartDate     time.Time `gorm:"column:start_date;not null" json:"start_date"`
	EndDate       time.Time `gorm:"column:end_date;not null" json:"end_date"`
	DaysRequested int       `gorm:"column:days_requested;not null" json:"days_requested"`
	Reason        string    `gorm:"column:reason;type:text" json:"reason"`
	Status        Status    `gorm:"column:status;size:16;not null;default:'pending';index:idx_vacation_requests_status" json:"status"`

	// Single-use: kept after use so replays can be told apart from garbage.
	ManagerToken       string     `gorm:"column:manager_token;size:64;not null;uniqueIndex:ux_vacation_requests_manager_token" json:"-"`
	ManagerTokenExpiry time.Time  `gorm:"column:manager_token_expiry;not null" json:"-"`
	ManagerActionedAt  *time.Time `gorm:"column:manager_actioned_at" json:"manager_actioned_at,omitempty"`
	HRDecidedAt        *time.Time `gorm:"column:hr_decided_at" json:"hr_decided_at,omitempty"`

	RequestedAt time.Time `gorm:"column:requested_at;not null" json:"requested_at"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Request) TableName() string { return "vacation_requests" }

// Transition moves the request to status `to` when the state machine allows it.
func (r *Request) Transition(to Status) error {
	if !r.Status.CanTransition(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidState, r.Status, to)
	}
	r.Status = to
	return nil
}

// TokenConsumed reports whether the manager gate has been passed either way.
func (r *Request) TokenConsumed() bool {
	return r.ManagerActionedAt != nil || r.Status != StatusPending
}
