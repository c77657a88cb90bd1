package vacation

import (
	"errors"
	"testing"
)

func TestStatus_CanTransition(t *testing.T) {
	all := []Status{StatusPending, StatusPendingHR, StatusApproved, StatusRejected}
	allowed := map[[2]Status]bool{
		{StatusPending, StatusPendingHR}:  true,
		{StatusPending, StatusRejected}:   true,
		{StatusPendingHR, StatusApproved}: true,
		{StatusPendingHR, StatusRejected}: true,
	}
	for _, from := range all {
		for _, to := range all {
			if got := from.CanTransition(to); got != allowed[[2]Status{from, to}] {
				t.Errorf("%s -> %s = %v", from, to, got)
			}
		}
	}
}

func TestStatus_Valid(t *testing.T) {
	if !StatusPendingHR.Valid() {
		t.Fatal("pending_hr must be valid")
	}
	if Status("cancelled").Valid() {
		t.Fatal("unknown status reported valid")
	}
}

func TestRequest_Transition(t *testing.T) {
	r := &Request{Status: StatusPending}
	if err := r.Transition(StatusPendingHR); err != nil {
		t.Fatalf("pending -> pending_hr: %v", err)
	}
	if err := r.Transition(StatusApproved); err != nil {
		t.Fatalf("pending_hr -> approved: %v", err)
	}
	for _, to := range []Status{StatusPending, StatusPendingHR, StatusRejected, StatusApproved} {
		err := r.Transition(to)
		if !errors.Is(err, ErrInvalidState) {
			t.Fatalf("approved -> %s: expected ErrInvalidState, got %v", to, err)
		}
	}
	if r.Status != StatusApproved {
		t.Fatalf("rejected transition changed status to %s", r.Status)
	}
}

func TestRequest_TokenConsumed(t *testing.T) {
	r := &Request{Status: StatusPending}
	if r.TokenConsumed() {
		t.Fatal("fresh pending request must not be consumed")
	}
	r.Status = StatusPendingHR
	if !r.TokenConsumed() {
		t.Fatal("pending_hr request must count as consumed")
	}
}
