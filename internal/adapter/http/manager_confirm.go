package http

import (
	"bytes"
	"html/template"
	"net/http"

	uc "hr-portal-backend/internal/usecase/vacation"

	"github.com/labstack/echo/v4"
)

// Mail scanners prefetch links, so GET only renders this form; the decision
// is taken by the POST it submits to the same URL.
var confirmPage = template.Must(template.New("confirm").Parse(`<!doctype html>
<html><head><meta charset="utf-8"><meta name="robots" content="noindex"><title>{{.Verb}} vacation request</title></head>
<body>
<p>{{.Verb}} vacation from {{.Req.StartDate}} to {{.Req.EndDate}} ({{.Req.DaysRequested}} days) for employee {{.Req.EmployeeID}}?</p>
{{if .Req.Reason}}<p>Reason: {{.Req.Reason}}</p>{{end}}
<form method="post" action="{{.Action}}"><button type="submit">{{.Verb}}</button></form>
</body></html>
`))

type confirmView struct {
	Verb   string
	Action string
	Req    *uc.RequestSummary
}

func (h *VacationHandler) ManagerApproveConfirm(c echo.Context) error {
	return h.managerConfirm(c, "Approve")
}
func (h *VacationHandler) ManagerRejectConfirm(c echo.Context) error {
	return h.managerConfirm(c, "Reject")
}

func (h *VacationHandler) managerConfirm(c echo.Context, verb string) error {
	p := tokenParam{Token: c.Param("token")}
	if err := c.Validate(&p); err != nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "invalid manager token"})
	}
	req, err := h.svc.PreviewManagerAction(c.Request().Context(), p.Token)
	if err != nil {
		return writeError(c, h.log, err)
	}

	var buf bytes.Buffer
	view := confirmView{Verb: verb, Action: c.Request().URL.Path, Req: req}
	if err := confirmPage.Execute(&buf, view); err != nil {
		return writeError(c, h.log, err)
	}
	c.Response().Header().Set("Cache-Control", "no-store")
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}
