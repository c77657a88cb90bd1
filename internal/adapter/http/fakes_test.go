package http

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"time"

	"hr-portal-backend/internal/usecase/ledger"
	"hr-portal-backend/internal/usecase/renewal"
	uc "hr-portal-backend/internal/usecase/vacation"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type fakeVacation struct {
	submitFn  func(ctx context.Context, in uc.SubmitInput) (*uc.SubmitResult, error)
	previewFn func(ctx context.Context, token string) (*uc.RequestSummary, error)
	managerFn func(ctx context.Context, token string, approve bool) (*uc.DecisionResult, error)
	hrFn      func(ctx context.Context, requestID string, approve bool) (*uc.DecisionResult, error)
	listFn    func(ctx context.Context, employeeID, status string) ([]uc.RequestSummary, error)
	getFn     func(ctx context.Context, requestID string) (*uc.RequestSummary, error)
}

func (f *fakeVacation) Submit(ctx context.Context, in uc.SubmitInput) (*uc.SubmitResult, error) {
	return f.submitFn(ctx, in)
}
func (f *fakeVacation) PreviewManagerAction(ctx context.Context, token string) (*uc.RequestSummary, error) {
	return f.previewFn(ctx, token)
}
func (f *fakeVacation) ManagerDecide(ctx context.Context, token string, approve bool) (*uc.DecisionResult, error) {
	return f.managerFn(ctx, token, approve)
}
func (f *fakeVacation) HrDecide(ctx context.Context, requestID string, approve bool) (*uc.DecisionResult, error) {
	return f.hrFn(ctx, requestID, approve)
}
func (f *fakeVacation) ListRequests(ctx context.Context, employeeID, status string) ([]uc.RequestSummary, error) {
	return f.listFn(ctx, employeeID, status)
}
func (f *fakeVacation) GetRequest(ctx context.Context, requestID string) (*uc.RequestSummary, error) {
	return f.getFn(ctx, requestID)
}

type fakeBalance func(ctx context.Context, employeeID string) (*ledger.BalanceDTO, error)

func (f fakeBalance) GetBalance(ctx context.Context, employeeID string) (*ledger.BalanceDTO, error) {
	return f(ctx, employeeID)
}

type fakeRenewal struct {
	today time.Time
	runFn func(ctx context.Context, asOf time.Time) (*renewal.RunResult, error)
}

func (f *fakeRenewal) RunOnce(ctx context.Context, asOf time.Time) (*renewal.RunResult, error) {
	return f.runFn(ctx, asOf)
}
func (f *fakeRenewal) Today() time.Time { return f.today }

func quietLog() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// newCtx builds a context with optional JSON body and path params (name, value pairs).
func newCtx(e *echo.Echo, method, target, body string, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	var names, values []string
	for i := 0; i+1 < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	return c, rec
}

func stringsReader(s string) io.Reader { return strings.NewReader(s) }
