package http

import (
	"context"
	"net/http"

	uc "hr-portal-backend/internal/usecase/vacation"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type VacationService interface {
	Submit(ctx context.Context, in uc.SubmitInput) (*uc.SubmitResult, error)
	PreviewManagerAction(ctx context.Context, token string) (*uc.RequestSummary, error)
	ManagerDecide(ctx context.Context, token string, approve bool) (*uc.DecisionResult, error)
	HrDecide(ctx context.Context, requestID string, approve bool) (*uc.DecisionResult, error)
	ListRequests(ctx context.Context, employeeID, status string) ([]uc.RequestSummary, error)
	GetRequest(ctx context.Context, requestID string) (*uc.RequestSummary, error)
}

type VacationHandler struct {
	svc VacationService
	log logrus.FieldLogger
}

func NewVacationHandler(svc VacationService, log logrus.FieldLogger) *VacationHandler {
	return &VacationHandler{svc: svc, log: log.WithField("module", "http")}
}

type submitReq struct {
	EmployeeID string `json:"employee_id" validate:"required,hex32"`
	// canonical date `YYYY-MM-DD`, both ends inclusive
	StartDate string `json:"start_date"  validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date"    validate:"required,datetime=2006-01-02"`
	Reason    string `json:"reason"      validate:"max=1000"`
}

type hrDecisionReq struct {
	Approve *bool `json:"approve" validate:"required"`
}

type listReq struct {
	EmployeeID string `query:"employee_id" validate:"omitempty,hex32"`
	Status     string `query:"status"      validate:"omitempty,oneof=pending pending_hr approved rejected"`
}

type requestIDParam struct {
	RequestID string `param:"request_id" validate:"hex32"`
}

type tokenParam struct {
	Token string `param:"token" validate:"required,len=64,hexadecimal"`
}

func (h *VacationHandler) Submit(c echo.Context) error {
	var req submitReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	res, err := h.svc.Submit(c.Request().Context(), uc.SubmitInput(req))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *VacationHandler) ManagerApprove(c echo.Context) error { return h.managerDecide(c, true) }
func (h *VacationHandler) ManagerReject(c echo.Context) error  { return h.managerDecide(c, false) }

func (h *VacationHandler) managerDecide(c echo.Context, approve bool) error {
	p := tokenParam{Token: c.Param("token")}
	if err := c.Validate(&p); err != nil {
		// malformed tokens are indistinguishable from unknown ones
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "invalid manager token"})
	}
	res, err := h.svc.ManagerDecide(c.Request().Context(), p.Token, approve)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *VacationHandler) HrDecide(c echo.Context) error {
	p := requestIDParam{RequestID: c.Param("request_id")}
	if err := c.Validate(&p); err != nil {
		return validationFailed(c, err)
	}
	var req hrDecisionReq
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	res, err := h.svc.HrDecide(c.Request().Context(), p.RequestID, *req.Approve)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *VacationHandler) List(c echo.Context) error {
	var q listReq
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query"})
	}
	if err := c.Validate(&q); err != nil {
		return validationFailed(c, err)
	}
	out, err := h.svc.ListRequests(c.Request().Context(), q.EmployeeID, q.Status)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"requests": out})
}

func (h *VacationHandler) Get(c echo.Context) error {
	p := requestIDParam{RequestID: c.Param("request_id")}
	if err := c.Validate(&p); err != nil {
		return validationFailed(c, err)
	}
	out, err := h.svc.GetRequest(c.Request().Context(), p.RequestID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}
