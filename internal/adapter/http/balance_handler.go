package http

import (
	"context"
	"net/http"

	"hr-portal-backend/internal/usecase/ledger"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type BalanceService interface {
	GetBalance(ctx context.Context, employeeID string) (*ledger.BalanceDTO, error)
}

type BalanceHandler struct {
	svc BalanceService
	log logrus.FieldLogger
}

func NewBalanceHandler(svc BalanceService, log logrus.FieldLogger) *BalanceHandler {
	return &BalanceHandler{svc: svc, log: log.WithField("module", "http")}
}

type employeeIDParam struct {
	EmployeeID string `param:"employee_id" validate:"hex32"`
}

func (h *BalanceHandler) Get(c echo.Context) error {
	p := employeeIDParam{EmployeeID: c.Param("employee_id")}
	if err := c.Validate(&p); err != nil {
		return validationFailed(c, err)
	}
	dto, err := h.svc.GetBalance(c.Request().Context(), p.EmployeeID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}
