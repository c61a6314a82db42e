package handler

import (
	"errors"
	"net/http"

	"github.com/goddivor/Orinu-hub/internal/domain"
	"github.com/goddivor/Orinu-hub/utils/validator"

	"github.com/labstack/echo/v4"
)

// errorResponse is the JSON body of every failed request.
type errorResponse struct {
	Error   domain.ErrorKind  `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// mapDomainError converts a domain error into an appropriate echo.HTTPError.
func mapDomainError(err error) *echo.HTTPError {
	var validationErr *validator.ValidationError
	if errors.As(err, &validationErr) {
		return echo.NewHTTPError(http.StatusBadRequest, errorResponse{
			Error:   domain.KindInvalidInput,
			Message: domain.MsgInvalidInput,
			Fields:  validationErr.Errors,
		}).SetInternal(err)
	}

	if errors.Is(err, domain.ErrOrinuNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: "Série introuvable",
		}).SetInternal(err)
	}

	kind := domain.KindOf(err)
	message := domain.KindMessage(kind)
	var authErr *domain.AuthError
	if errors.As(err, &authErr) && authErr.Message != "" {
		message = authErr.Message
	}
	if message == "" {
		message = "internal error"
	}

	return echo.NewHTTPError(statusForKind(kind), errorResponse{
		Error:   kind,
		Message: message,
	}).SetInternal(err)
}

func statusForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindInvalidInput, domain.KindPopupCancelled, domain.KindPopupBlocked:
		return http.StatusBadRequest
	case domain.KindUnauthenticated, domain.KindNotAuthenticated:
		return http.StatusUnauthorized
	case domain.KindEmailNotVerified:
		return http.StatusForbidden
	case domain.KindAccountConflict, domain.KindAlreadyVerified:
		return http.StatusConflict
	case domain.KindRateLimited:
		return http.StatusTooManyRequests
	case domain.KindUnavailable:
		return http.StatusServiceUnavailable
	case domain.KindBackendSyncFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
