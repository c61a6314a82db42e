package handler

import (
	"net/http"

	"github.com/goddivor/Orinu-hub/internal/domain"
	"github.com/goddivor/Orinu-hub/internal/session"

	"github.com/labstack/echo/v4"
)

// SessionHandler handles /v1/session returning the holder's current state.
type SessionHandler struct {
	holder *session.Holder
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(holder *session.Holder) *SessionHandler {
	return &SessionHandler{holder: holder}
}

// sessionResponse represents the JSON response structure.
type sessionResponse struct {
	Status        string           `json:"status"`
	Loading       bool             `json:"loading"`
	Authenticated bool             `json:"authenticated"`
	User          *domain.Identity `json:"user,omitempty"`
}

// Handle processes the /v1/session endpoint.
func (h *SessionHandler) Handle(c echo.Context) error {
	state := h.holder.Current()
	return c.JSON(http.StatusOK, sessionResponse{
		Status:        state.Status.String(),
		Loading:       state.Loading(),
		Authenticated: state.Authenticated(),
		User:          state.Identity,
	})
}
