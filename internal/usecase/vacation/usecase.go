package vacation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hr-portal-backend/internal/domain/employee"
	"hr-portal-backend/internal/domain/entitlement"
	"hr-portal-backend/internal/domain/notification"
	"hr-portal-backend/internal/domain/uow"
	domain "hr-portal-backend/internal/domain/vacation"
	"hr-portal-backend/pkg/date"
	"hr-portal-backend/pkg/id"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Ledger is the slice of the entitlement ledger the workflow drives.
type Ledger interface {
	Ensure(ctx context.Context, employeeID string, asOf time.Time) (bool, error)
	EnsurePeriod(ctx context.Context, r uow.Repos, emp *employee.Employee, asOf time.Time) (bool, error)
	AvailableBalance(ctx context.Context, r uow.Repos, employeeID string, asOf time.Time) (int, error)
	Debit(ctx context.Context, r uow.Repos, employeeID string, days int, asOf time.Time) ([]entitlement.Allocation, error)
}

type Options struct {
	HREmail       string // empty disables HR notifications
	PublicBaseURL string // prefix for manager action links
}

type Usecase struct {
	employees employee.Repository
	requests  domain.Repository
	uow       uow.UnitOfWork
	ledger    Ledger
	notifier  notification.Dispatcher
	opts      Options
	log       logrus.FieldLogger

	now      func() time.Time
	newToken func() string
}

func NewUsecase(
	emps employee.Repository,
	reqs domain.Repository,
	tx uow.UnitOfWork,
	led Ledger,
	notifier notification.Dispatcher,
	opts Options,
	log logrus.FieldLogger,
) *Usecase {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Usecase{
		employees: emps,
		requests:  reqs,
		uow:       tx,
		ledger:    led,
		notifier:  notifier,
		opts:      opts,
		log:       log.WithField("module", "vacation"),
		now:       func() time.Time { return time.Now().UTC() },
		newToken:  id.NewToken,
	}
}

// WithClock swaps the time source, for tests.
func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	start, err := date.Parse(in.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start_date: %v", domain.ErrInvalidDates, err)
	}
	end, err := date.Parse(in.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: end_date: %v", domain.ErrInvalidDates, err)
	}
	days := date.InclusiveDays(start, end)
	if days < 1 {
		return nil, fmt.Errorf("%w: end_date before start_date", domain.ErrInvalidDates)
	}

	emp, err := u.lookupEmployee(ctx, in.EmployeeID)
	if err != nil {
		return nil, err
	}
	if !emp.HasManager() {
		return nil, domain.ErrNoManagerAssigned
	}
	mgr, err := u.lookupEmployee(ctx, *emp.ManagerID)
	if errors.Is(err, employee.ErrNotFound) {
		return nil, domain.ErrNoManagerAssigned
	}
	if err != nil {
		return nil, err
	}

	now := u.now()
	asOf := date.Of(now)

	// the period bootstrap needs the ledger lock; the check below does not
	if _, err := u.ledger.Ensure(ctx, emp.EmployeeID, asOf); err != nil {
		return nil, err
	}

	req := &domain.Request{
		RequestID:          id.NewID32(),
		EmployeeID:         emp.EmployeeID,
		ManagerID:          mgr.EmployeeID,
		StartDate:          start,
		EndDate:            end,
		DaysRequested:      days,
		Reason:             in.Reason,
		Status:             domain.StatusPending,
		ManagerToken:       u.newToken(),
		ManagerTokenExpiry: now.Add(domain.ManagerTokenTTL),
		RequestedAt:        now,
	}

	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		avail, err := u.ledger.AvailableBalance(ctx, r, emp.EmployeeID, asOf)
		if err != nil {
			return err
		}
		if avail < days {
			return fmt.Errorf("%w: need %d, have %d", entitlement.ErrInsufficientBalance, days, avail)
		}
		return r.Requests.Create(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	u.log.WithFields(logrus.Fields{
		"op":          "submit",
		"employee_id": emp.EmployeeID,
		"request_id":  req.RequestID,
		"days":        days,
	}).Info("vacation request submitted")

	u.notify(ctx, u.managerMessage(mgr, emp, req))
	if u.opts.HREmail != "" {
		u.notify(ctx, u.hrSubmittedMessage(emp, req))
	}

	return &SubmitResult{RequestID: req.RequestID, DaysRequested: days, Status: req.Status}, nil
}

// ManagerDecide applies the first-gate decision carried by a manager link.
// The token is spent on either outcome.
func (u *Usecase) ManagerDecide(ctx context.Context, token string, approve bool) (*DecisionResult, error) {
	if token == "" {
		return nil, domain.ErrInvalidToken
	}
	var req *domain.Request

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		req, err = r.Requests.GetByManagerTokenForUpdate(ctx, token)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrInvalidToken
		}
		if err != nil {
			return err
		}

		now := u.now()
		if err := checkToken(req, now); err != nil {
			return err
		}

		next := domain.StatusRejected
		if approve {
			next = domain.StatusPendingHR
		}
		if err := req.Transition(next); err != nil {
			return err
		}
		req.ManagerActionedAt = &now
		return r.Requests.Save(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	u.log.WithFields(logrus.Fields{
		"op":         "manager_decide",
		"request_id": req.RequestID,
		"status":     req.Status,
	}).Info("manager decision recorded")

	if emp, err := u.lookupEmployee(ctx, req.EmployeeID); err == nil {
		u.notify(ctx, statusMessage(emp, req, "your manager"))
	} else {
		u.log.WithError(err).WithField("request_id", req.RequestID).Warn("employee lookup for notification failed")
	}
	if approve && u.opts.HREmail != "" {
		u.notify(ctx, u.hrReviewMessage(req))
	}

	return &DecisionResult{RequestID: req.RequestID, Status: req.Status}, nil
}

// PreviewManagerAction validates a manager token without spending it, so a
// confirmation page can be shown before the decision is posted.
func (u *Usecase) PreviewManagerAction(ctx context.Context, token string) (*RequestSummary, error) {
	if token == "" {
		return nil, domain.ErrInvalidToken
	}
	req, err := u.requests.GetByManagerToken(ctx, token)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}
	if err := checkToken(req, u.now()); err != nil {
		return nil, err
	}
	s := toSummary(req)
	return &s, nil
}

// checkToken: a spent token stays spent after its expiry, so consumption is
// checked first.
func checkToken(req *domain.Request, now time.Time) error {
	if req.TokenConsumed() {
		return domain.ErrAlreadyActioned
	}
	if now.After(req.ManagerTokenExpiry) {
		return domain.ErrTokenExpired
	}
	return nil
}

// HrDecide is the second gate. Approval re-validates and debits the balance in
// the same transaction; a shortage leaves the request in pending_hr.
func (u *Usecase) HrDecide(ctx context.Context, requestID string, approve bool) (*DecisionResult, error) {
	var (
		req   *domain.Request
		alloc []entitlement.Allocation
	)

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		req, err = r.Requests.GetByRequestIDForUpdate(ctx, requestID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}
		// only pending_hr may be approved; that is the HR gate for both outcomes
		if !req.Status.CanTransition(domain.StatusApproved) {
			return fmt.Errorf("%w: request is %s", domain.ErrInvalidState, req.Status)
		}

		now := u.now()
		if !approve {
			if err := req.Transition(domain.StatusRejected); err != nil {
				return err
			}
			req.HRDecidedAt = &now
			return r.Requests.Save(ctx, req)
		}

		// ledger lock: request row, then employee row, then its periods
		emp, err := r.Employees.GetByEmployeeIDForUpdate(ctx, req.EmployeeID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return employee.ErrNotFound
		}
		if err != nil {
			return err
		}

		asOf := date.Of(now)
		if _, err := u.ledger.EnsurePeriod(ctx, r, emp, asOf); err != nil {
			return err
		}
		avail, err := u.ledger.AvailableBalance(ctx, r, emp.EmployeeID, asOf)
		if err != nil {
			return err
		}
		if avail < req.DaysRequested {
			return fmt.Errorf("%w: need %d, have %d", entitlement.ErrInsufficientBalance, req.DaysRequested, avail)
		}
		if alloc, err = u.ledger.Debit(ctx, r, emp.EmployeeID, req.DaysRequested, asOf); err != nil {
			return err
		}

		if err := req.Transition(domain.StatusApproved); err != nil {
			return err
		}
		req.HRDecidedAt = &now
		return r.Requests.Save(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	fields := logrus.Fields{"op": "hr_decide", "request_id": req.RequestID, "status": req.Status}
	if len(alloc) > 0 {
		years := make([]int, 0, len(alloc))
		for _, a := range alloc {
			years = append(years, a.Period.YearIndex)
		}
		fields["debited_years"] = years
	}
	u.log.WithFields(fields).Info("hr decision recorded")

	if emp, err := u.lookupEmployee(ctx, req.EmployeeID); err == nil {
		u.notify(ctx, statusMessage(emp, req, "HR"))
	} else {
		u.log.WithError(err).WithField("request_id", req.RequestID).Warn("employee lookup for notification failed")
	}

	return &DecisionResult{RequestID: req.RequestID, Status: req.Status}, nil
}

// ListRequests returns requests newest first. Empty filters match everything.
func (u *Usecase) ListRequests(ctx context.Context, employeeID string, status string) ([]RequestSummary, error) {
	st := domain.Status(status)
	if st != "" && !st.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownStatus, status)
	}
	rows, err := u.requests.List(ctx, domain.ListFilter{EmployeeID: employeeID, Status: st})
	if err != nil {
		return nil, err
	}
	out := make([]RequestSummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, toSummary(r))
	}
	return out, nil
}

func (u *Usecase) GetRequest(ctx context.Context, requestID string) (*RequestSummary, error) {
	r, err := u.requests.GetByRequestID(ctx, requestID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	s := toSummary(r)
	return &s, nil
}

func (u *Usecase) lookupEmployee(ctx context.Context, employeeID string) (*employee.Employee, error) {
	e, err := u.employees.GetByEmployeeID(ctx, employeeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, employee.ErrNotFound
	}
	return e, err
}

func (u *Usecase) notify(ctx context.Context, msg notification.Message) {
	if u.notifier == nil || msg.Recipient == "" {
		return
	}
	// detached: the request context may be gone before delivery
	u.notifier.Dispatch(context.WithoutCancel(ctx), msg)
}
