package http

import "github.com/labstack/echo/v4"

type Handlers struct {
	Health   *Handler
	Vacation *VacationHandler
	Balance  *BalanceHandler
	Renewal  *RenewalHandler
}

// Register mounts every route. idemp guards the non-repeatable writes.
func Register(e *echo.Echo, h Handlers, idemp echo.MiddlewareFunc) {
	e.GET("/health", h.Health.Health)

	api := e.Group("/api/v1")

	api.POST("/vacation-requests", h.Vacation.Submit, idemp)
	api.GET("/vacation-requests", h.Vacation.List)
	api.GET("/vacation-requests/:request_id", h.Vacation.Get)
	api.POST("/vacation-requests/:request_id/hr-decision", h.Vacation.HrDecide, idemp)

	// mail links land on GET, which only confirms; POST spends the token
	api.GET("/manager-actions/:token/approve", h.Vacation.ManagerApproveConfirm)
	api.POST("/manager-actions/:token/approve", h.Vacation.ManagerApprove)
	api.GET("/manager-actions/:token/reject", h.Vacation.ManagerRejectConfirm)
	api.POST("/manager-actions/:token/reject", h.Vacation.ManagerReject)

	api.GET("/employees/:employee_id/balance", h.Balance.Get)

	api.POST("/renewal/run", h.Renewal.Run)
}
