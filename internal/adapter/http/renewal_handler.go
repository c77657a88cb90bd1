package http

import (
	"context"
	"net/http"
	"time"

	"hr-portal-backend/internal/usecase/renewal"
	"hr-portal-backend/pkg/date"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type RenewalService interface {
	RunOnce(ctx context.Context, asOf time.Time) (*renewal.RunResult, error)
	Today() time.Time
}

type RenewalHandler struct {
	svc RenewalService
	log logrus.FieldLogger
}

func NewRenewalHandler(svc RenewalService, log logrus.FieldLogger) *RenewalHandler {
	return &RenewalHandler{svc: svc, log: log.WithField("module", "http")}
}

type renewalReq struct {
	// empty = today in the scheduler's zone
	AsOf string `json:"as_of" validate:"omitempty,datetime=2006-01-02"`
}

type renewalResp struct {
	*renewal.RunResult
	Error string `json:"error,omitempty"`
}

func (h *RenewalHandler) Run(c echo.Context) error {
	var req renewalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	asOf := h.svc.Today()
	if req.AsOf != "" {
		asOf, _ = date.Parse(req.AsOf) // format checked by the validator
	}

	res, err := h.svc.RunOnce(c.Request().Context(), asOf)
	if res == nil {
		return writeError(c, h.log, err)
	}
	// per-employee failures: the batch still ran, report them alongside the counts
	out := renewalResp{RunResult: res}
	if err != nil {
		out.Error = err.Error()
		h.log.WithError(err).WithField("failures", res.Failures).Warn("renewal run had failures")
	}
	return c.JSON(http.StatusOK, out)
}
