package domain

import (
	"context"
	"errors"
)

// ErrorKind classifies every error a flow entry point can surface.
type ErrorKind string

const (
	KindInvalidInput      ErrorKind = "invalid_input"
	KindAccountConflict   ErrorKind = "account_conflict"
	KindUnauthenticated   ErrorKind = "unauthenticated"
	KindEmailNotVerified  ErrorKind = "email_not_verified"
	KindRateLimited       ErrorKind = "rate_limited"
	KindPopupCancelled    ErrorKind = "popup_cancelled"
	KindPopupBlocked      ErrorKind = "popup_blocked"
	KindBackendSyncFailed ErrorKind = "backend_sync_failed"
	KindNotAuthenticated  ErrorKind = "not_authenticated"
	KindAlreadyVerified   ErrorKind = "already_verified"
	KindUnavailable       ErrorKind = "unavailable"
	KindUnknown           ErrorKind = "unknown"
)

// Sentinel errors, one per kind. AuthError values match them through errors.Is.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrAccountConflict   = errors.New("account conflict")
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrEmailNotVerified  = errors.New("email not verified")
	ErrRateLimited       = errors.New("rate limit exceeded")
	ErrPopupCancelled    = errors.New("federated popup cancelled")
	ErrPopupBlocked      = errors.New("federated popup blocked")
	ErrBackendSync       = errors.New("backend sync failed")
	ErrNotAuthenticated  = errors.New("no authenticated user")
	ErrAlreadyVerified   = errors.New("email already verified")
	ErrUnavailable       = errors.New("identity provider unavailable")
	ErrUnknown           = errors.New("operation failed")
)

// Session holder errors.
var (
	ErrAlreadyStarted = errors.New("session holder already started")
	ErrNotStarted     = errors.New("session holder not started")
)

// Catalog errors.
var (
	ErrOrinuNotFound = errors.New("orinu not found")
)

var kindSentinels = map[ErrorKind]error{
	KindInvalidInput:      ErrInvalidInput,
	KindAccountConflict:   ErrAccountConflict,
	KindUnauthenticated:   ErrUnauthenticated,
	KindEmailNotVerified:  ErrEmailNotVerified,
	KindRateLimited:       ErrRateLimited,
	KindPopupCancelled:    ErrPopupCancelled,
	KindPopupBlocked:      ErrPopupBlocked,
	KindBackendSyncFailed: ErrBackendSync,
	KindNotAuthenticated:  ErrNotAuthenticated,
	KindAlreadyVerified:   ErrAlreadyVerified,
	KindUnavailable:       ErrUnavailable,
	KindUnknown:           ErrUnknown,
}

// AuthError is the single error type surfaced by the auth flow.
// Message is the fixed user-facing text for the kind.
type AuthError struct {
	Kind    ErrorKind
	Code    ProviderCode
	Message string
	Cause   error
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Cause
}

// Is matches the sentinel error of the same kind.
func (e *AuthError) Is(target error) bool {
	sentinel, ok := kindSentinels[e.Kind]
	return ok && sentinel == target
}

// NewAuthError creates an AuthError with the fixed message of its kind.
func NewAuthError(kind ErrorKind, cause error) *AuthError {
	return &AuthError{
		Kind:    kind,
		Message: KindMessage(kind),
		Cause:   cause,
	}
}

// KindOf returns the kind of err, or KindUnknown when err is not an AuthError.
func KindOf(err error) ErrorKind {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.Kind
	}
	for kind, sentinel := range kindSentinels {
		if errors.Is(err, sentinel) {
			return kind
		}
	}
	return KindUnknown
}

// KindMessage returns the default user-facing text of a kind.
// KindUnknown has no default and returns an empty string.
func KindMessage(kind ErrorKind) string {
	switch kind {
	case KindAccountConflict:
		return MsgEmailInUse
	case KindUnauthenticated:
		return MsgInvalidCredential
	case KindEmailNotVerified:
		return MsgEmailNotVerified
	case KindNotAuthenticated:
		return MsgNotAuthenticated
	case KindAlreadyVerified:
		return MsgAlreadyVerified
	case KindRateLimited:
		return MsgTooManyRequests
	case KindPopupCancelled:
		return MsgPopupClosed
	case KindPopupBlocked:
		return MsgPopupBlocked
	case KindUnavailable:
		return MsgProviderUnavailable
	case KindBackendSyncFailed:
		return MsgBackendSyncFailed
	case KindInvalidInput:
		return MsgInvalidInput
	default:
		return ""
	}
}

// ProviderError is returned by identity provider adapters.
// Text keeps the provider's own wording for the Unknown fallback.
type ProviderError struct {
	Code  ProviderCode
	Text  string
	Cause error
}

func (e *ProviderError) Error() string {
	if e.Text != "" {
		return e.Code.String() + ": " + e.Text
	}
	if e.Cause != nil {
		return e.Code.String() + ": " + e.Cause.Error()
	}
	return e.Code.String()
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// NewProviderError creates a provider error.
func NewProviderError(code ProviderCode, text string, cause error) *ProviderError {
	return &ProviderError{Code: code, Text: text, Cause: cause}
}

// TranslateProviderError converts any error returned by the identity provider into an AuthError.
// fallback is used as the message of an Unknown error carrying no text of its own.
func TranslateProviderError(err error, fallback string) *AuthError {
	if err == nil {
		return nil
	}

	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr
	}

	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		translated := Translate(providerErr.Code, providerErr.Text, fallback)
		translated.Cause = err
		return translated
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return NewAuthError(KindUnavailable, err)
	}

	translated := Translate(CodeUnknown, "", fallback)
	translated.Cause = err
	return translated
}
