package handler

import (
	"github.com/labstack/echo/v4"
)

// Handlers groups every HTTP handler served by the API.
type Handlers struct {
	Auth    *AuthHandler
	Session *SessionHandler
	Orinu   *OrinuHandler
	Health  *HealthHandler
}

// RegisterRoutes mounts the API on e. authMiddleware guards the /v1/auth group.
func RegisterRoutes(e *echo.Echo, h Handlers, authMiddleware ...echo.MiddlewareFunc) {
	e.GET("/health", h.Health.Handle)

	v1 := e.Group("/v1")
	v1.GET("/session", h.Session.Handle)
	v1.GET("/orinus", h.Orinu.List)
	v1.GET("/orinus/:id", h.Orinu.Get)
	v1.GET("/landing", h.Orinu.Landing)
	v1.GET("/categories", h.Orinu.Categories)

	auth := v1.Group("/auth", authMiddleware...)
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/federated", h.Auth.Federated)
	auth.POST("/logout", h.Auth.Logout)
	auth.POST("/verification/resend", h.Auth.ResendVerification)
	auth.GET("/token", h.Auth.Token)
}
