package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ListSessions lists persisted sessions, newest first.
// GET /v1/sessions
func (h *Handler) ListSessions(c echo.Context) error {
	sessions, err := h.service.ListSessions(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"sessions": sessions})
}

// GetSessionReport returns the session's report, generating it when
// absent. `?retry=true` marks a caller-triggered retry, which counts
// against the per-session retry budget.
// GET /v1/sessions/:session_id/report
func (h *Handler) GetSessionReport(c echo.Context) error {
	ctx := c.Request().Context()
	sessionID := c.Param("session_id")
	isRetry := c.QueryParam("retry") == "true"

	report, err := h.service.LoadReport(ctx, sessionID, isRetry)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, report)
}
