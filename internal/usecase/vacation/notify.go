package vacation

import (
	"fmt"
	"strings"

	"hr-portal-backend/internal/domain/employee"
	"hr-portal-backend/internal/domain/notification"
	domain "hr-portal-backend/internal/domain/vacation"
	"hr-portal-backend/pkg/date"
)

func (u *Usecase) actionLink(token, verb string) string {
	base := strings.TrimRight(u.opts.PublicBaseURL, "/")
	return fmt.Sprintf("%s/api/v1/manager-actions/%s/%s", base, token, verb)
}

func period(r *domain.Request) string {
	return fmt.Sprintf("%s to %s (%d days)", date.Format(r.StartDate), date.Format(r.EndDate), r.DaysRequested)
}

func (u *Usecase) managerMessage(mgr, emp *employee.Employee, r *domain.Request) notification.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "%s requested vacation from %s.\n", emp.Name, period(r))
	if r.Reason != "" {
		fmt.Fprintf(&b, "Reason: %s\n", r.Reason)
	}
	fmt.Fprintf(&b, "\nApprove: %s\nReject: %s\n", u.actionLink(r.ManagerToken, "approve"), u.actionLink(r.ManagerToken, "reject"))
	fmt.Fprintf(&b, "These links expire on %s UTC.\n", r.ManagerTokenExpiry.UTC().Format("2006-01-02 15:04"))
	return notification.Message{
		Recipient: mgr.Email,
		Subject:   "Vacation request from " + emp.Name,
		Body:      b.String(),
	}
}

func (u *Usecase) hrSubmittedMessage(emp *employee.Employee, r *domain.Request) notification.Message {
	return notification.Message{
		Recipient: u.opts.HREmail,
		Subject:   "New vacation request " + r.RequestID,
		Body:      fmt.Sprintf("%s requested vacation from %s. Waiting for manager review.\n", emp.Name, period(r)),
	}
}

func (u *Usecase) hrReviewMessage(r *domain.Request) notification.Message {
	return notification.Message{
		Recipient: u.opts.HREmail,
		Subject:   "Vacation request " + r.RequestID + " awaits HR decision",
		Body:      fmt.Sprintf("Manager approved request %s for %s. It is waiting for an HR decision.\n", r.RequestID, period(r)),
	}
}

func statusMessage(emp *employee.Employee, r *domain.Request, stage string) notification.Message {
	var verdict string
	switch r.Status {
	case domain.StatusPendingHR:
		verdict = "was approved by your manager and is now with HR"
	case domain.StatusApproved:
		verdict = "was approved"
	default:
		verdict = "was rejected by " + stage
	}
	return notification.Message{
		Recipient: emp.Email,
		Subject:   "Vacation request " + string(r.Status),
		Body:      fmt.Sprintf("Your vacation request for %s %s.\n", period(r), verdict),
	}
}
