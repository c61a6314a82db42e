package handler

import (
	"net/http"

	"github.com/goddivor/Orinu-hub/internal/domain"
	"github.com/goddivor/Orinu-hub/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AuthHandler exposes the auth flow over HTTP.
type AuthHandler struct {
	flow *usecase.AuthFlow
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(flow *usecase.AuthFlow) *AuthHandler {
	return &AuthHandler{flow: flow}
}

type syncResponse struct {
	Attempted bool   `json:"attempted"`
	Synced    bool   `json:"synced"`
	Error     string `json:"error,omitempty"`
}

type authResponse struct {
	Message string           `json:"message"`
	User    *domain.Identity `json:"user"`
	Sync    syncResponse     `json:"sync"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func newAuthResponse(result *domain.AuthResult) authResponse {
	resp := authResponse{
		Message: result.Message,
		User:    result.Identity,
		Sync: syncResponse{
			Attempted: result.Sync.Attempted,
			Synced:    result.Sync.Synced(),
		},
	}
	if result.Sync.Err != nil {
		resp.Sync.Error = result.Sync.Err.Error()
	}
	return resp
}

// Register handles POST /v1/auth/register.
func (h *AuthHandler) Register(c echo.Context) error {
	var in usecase.RegisterInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}

	result, err := h.flow.Register(c.Request().Context(), in)
	if err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusCreated, newAuthResponse(result))
}

// Login handles POST /v1/auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var in usecase.LoginInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}

	result, err := h.flow.LoginWithEmail(c.Request().Context(), in)
	if err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, newAuthResponse(result))
}

// Federated handles POST /v1/auth/federated. It blocks until the popup completes.
func (h *AuthHandler) Federated(c echo.Context) error {
	result, err := h.flow.LoginWithFederatedProvider(c.Request().Context())
	if err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, newAuthResponse(result))
}

// Logout handles POST /v1/auth/logout.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.flow.Logout(c.Request().Context()); err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: domain.MsgLoggedOut})
}

// ResendVerification handles POST /v1/auth/verification/resend.
func (h *AuthHandler) ResendVerification(c echo.Context) error {
	if err := h.flow.ResendVerificationEmail(c.Request().Context()); err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: domain.MsgVerificationResent})
}

// Token handles GET /v1/auth/token.
func (h *AuthHandler) Token(c echo.Context) error {
	token, err := h.flow.CurrentToken(c.Request().Context())
	if err != nil {
		return mapDomainError(err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

func bindAndValidate(c echo.Context, in any) error {
	if err := c.Bind(in); err != nil {
		return mapDomainError(domain.NewAuthError(domain.KindInvalidInput, err))
	}
	if err := c.Validate(in); err != nil {
		return mapDomainError(err)
	}
	return nil
}
