package entitlement

import (
	"errors"
	"time"

	"hr-portal-backend/pkg/date"
)

var (
	ErrInsufficientBalance = errors.New("insufficient vacation balance")
	ErrInvalidDays         = errors.New("day count must be positive")
)

// Period is a dated grant of vacation days for one tenure year.
// Rows are never deleted; they go inert once exhausted or expired.
type Period struct {
	ID           uint64    `gorm:"primaryKey;column:id" json:"-"`
	EmployeeID   string    `gorm:"column:employee_id;size:32;not null;uniqueIndex:ux_periods_employee_year,priority:1" json:"employee_id"`
	YearIndex    int       `gorm:"column:year_index;not null;uniqueIndex:ux_periods_employee_year,priority:2" json:"year_index"`
	DaysAssigned int       `gorm:"column:days_assigned;not null" json:"days_assigned"`
	DaysUsed     int       `gorm:"column:days_used;not null;default:0" json:"days_used"`
	StartDate    time.Time `gorm:"column:start_date;not null" json:"start_date"`
	// Set once when the next period opens (grace window); afterwards only the
	// renewal job may move it.
	ExpirationDate *time.Time `gorm:"column:expiration_date" json:"expiration_date,omitempty"`

	// bookkeeping written by the renewal job when the grace window lapses
	ExpiredAt     *time.Time `gorm:"column:expired_at" json:"expired_at,omitempty"`
	DaysForfeited int        `gorm:"column:days_forfeited;not null;default:0" json:"days_forfeited"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Period) TableName() string { return "entitlement_periods" }

// Remaining is the unused capacity, ignoring expiration.
func (p *Period) Remaining() int { return p.DaysAssigned - p.DaysUsed }

// EligibleAt reports whether the period can be spent on asOf: it has started
// and its grace window, if any, is still open. The expiration day itself is
// still spendable.
func (p *Period) EligibleAt(asOf time.Time) bool {
	if date.Of(p.StartDate).After(date.Of(asOf)) {
		return false
	}
	return !p.Lapsed(asOf)
}

// Lapsed reports whether the grace window closed before asOf.
func (p *Period) Lapsed(asOf time.Time) bool {
	return p.ExpirationDate != nil && date.Of(*p.ExpirationDate).Before(date.Of(asOf))
}
