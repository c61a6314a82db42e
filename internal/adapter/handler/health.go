package handler

import (
	"net/http"

	"github.com/goddivor/Orinu-hub/internal/session"

	"github.com/labstack/echo/v4"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	holder *session.Holder
}

// NewHealthHandler creates a new health handler. holder may be nil.
func NewHealthHandler(holder *session.Holder) *HealthHandler {
	return &HealthHandler{holder: holder}
}

// Handle processes the /health endpoint.
func (h *HealthHandler) Handle(c echo.Context) error {
	body := map[string]string{"status": "healthy"}
	if h.holder != nil {
		body["session"] = h.holder.Current().Status.String()
	}
	return c.JSON(http.StatusOK, body)
}
