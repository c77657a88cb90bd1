package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"hr-portal-backend/internal/usecase/renewal"
)

func TestRenewal_DefaultsToToday(t *testing.T) {
	e := newEcho()
	today := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	var got time.Time
	svc := &fakeRenewal{today: today, runFn: func(_ context.Context, asOf time.Time) (*renewal.RunResult, error) {
		got = asOf
		return &renewal.RunResult{AsOf: "2025-03-01", EmployeesScanned: 3, PeriodsCreated: 1}, nil
	}}
	h := NewRenewalHandler(svc, quietLog())

	c, rec := newCtx(e, http.MethodPost, "/api/v1/renewal/run", "")
	if err := h.Run(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !got.Equal(today) {
		t.Fatalf("expected as_of %v, got %v", today, got)
	}
}

func TestRenewal_ExplicitAsOf(t *testing.T) {
	e := newEcho()
	var got time.Time
	svc := &fakeRenewal{runFn: func(_ context.Context, asOf time.Time) (*renewal.RunResult, error) {
		got = asOf
		return &renewal.RunResult{AsOf: "2024-05-06"}, nil
	}}
	h := NewRenewalHandler(svc, quietLog())

	c, rec := newCtx(e, http.MethodPost, "/api/v1/renewal/run", `{"as_of":"2024-05-06"}`)
	if err := h.Run(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if want := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestRenewal_BadAsOf(t *testing.T) {
	e := newEcho()
	h := NewRenewalHandler(&fakeRenewal{}, quietLog())
	c, rec := newCtx(e, http.MethodPost, "/api/v1/renewal/run", `{"as_of":"yesterday"}`)
	if err := h.Run(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestRenewal_AlreadyRunning(t *testing.T) {
	e := newEcho()
	svc := &fakeRenewal{runFn: func(context.Context, time.Time) (*renewal.RunResult, error) {
		return nil, renewal.ErrAlreadyRunning
	}}
	h := NewRenewalHandler(svc, quietLog())
	c, rec := newCtx(e, http.MethodPost, "/api/v1/renewal/run", "")
	if err := h.Run(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestRenewal_PartialFailureStillReports(t *testing.T) {
	e := newEcho()
	svc := &fakeRenewal{runFn: func(context.Context, time.Time) (*renewal.RunResult, error) {
		return &renewal.RunResult{AsOf: "2025-03-01", EmployeesScanned: 2, Failures: 1},
			errors.Join(fmt.Errorf("employee x: %w", errors.New("boom")))
	}}
	h := NewRenewalHandler(svc, quietLog())
	c, rec := newCtx(e, http.MethodPost, "/api/v1/renewal/run", "")
	if err := h.Run(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["failures"] != float64(1) || body["error"] == nil {
		t.Fatalf("expected failures and error in body: %v", body)
	}
}

func TestRenewal_FutureAsOfRejected(t *testing.T) {
	e := newEcho()
	svc := &fakeRenewal{runFn: func(_ context.Context, asOf time.Time) (*renewal.RunResult, error) {
		return nil, fmt.Errorf("%w: %s", renewal.ErrFutureDate, asOf.Format("2006-01-02"))
	}}
	h := NewRenewalHandler(svc, quietLog())
	c, rec := newCtx(e, http.MethodPost, "/api/v1/renewal/run", `{"as_of":"2099-01-01"}`)
	if err := h.Run(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d body=%s", rec.Code, rec.Body.String())
	}
}
