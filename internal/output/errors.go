package output

import (
	"errors"
	"fmt"

	"github.com/goddivor/Orinu-hub/internal/domain"

	"github.com/fatih/color"
)

// Exit code constants
const (
	ExitSuccess     = 0
	ExitGeneral     = 1
	ExitUsageError  = 2
	ExitConfigError = 3
	ExitAuthError   = 4
	ExitUnavailable = 5
)

// CLIError is a structured error with user-facing context
type CLIError struct {
	Summary    string
	Detail     string
	Suggestion string
	ExitCode   int
	Err        error
}

// Error implements the error interface, returning the summary
func (e *CLIError) Error() string {
	return e.Summary
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// ConfigError wraps a configuration failure.
func ConfigError(err error) *CLIError {
	return &CLIError{
		Summary:    "configuration invalide",
		Detail:     err.Error(),
		Suggestion: "Vérifiez orinu.yaml et les variables ORINU_*",
		ExitCode:   ExitConfigError,
		Err:        err,
	}
}

// FromError converts any command error into a CLIError.
// Auth flow errors keep their user-facing message as the summary.
func FromError(err error) *CLIError {
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}

	var authErr *domain.AuthError
	if !errors.As(err, &authErr) {
		kind := domain.KindOf(err)
		if kind == domain.KindUnknown {
			return &CLIError{Summary: err.Error(), ExitCode: ExitGeneral, Err: err}
		}
		authErr = domain.NewAuthError(kind, err)
	}

	out := &CLIError{
		Summary:  authErr.Message,
		ExitCode: exitCodeForKind(authErr.Kind),
		Err:      err,
	}
	if out.Summary == "" {
		out.Summary = err.Error()
	}
	if authErr.Cause != nil && authErr.Cause.Error() != out.Summary {
		out.Detail = authErr.Cause.Error()
	}
	out.Suggestion = suggestionForKind(authErr.Kind)
	return out
}

func exitCodeForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindInvalidInput:
		return ExitUsageError
	case domain.KindAccountConflict, domain.KindUnauthenticated, domain.KindEmailNotVerified,
		domain.KindNotAuthenticated, domain.KindAlreadyVerified,
		domain.KindPopupCancelled, domain.KindPopupBlocked:
		return ExitAuthError
	case domain.KindUnavailable, domain.KindRateLimited, domain.KindBackendSyncFailed:
		return ExitUnavailable
	default:
		return ExitGeneral
	}
}

func suggestionForKind(kind domain.ErrorKind) string {
	switch kind {
	case domain.KindEmailNotVerified:
		return "Ouvrez le lien reçu par email, ou lancez 'orinu verify resend'"
	case domain.KindNotAuthenticated:
		return "Connectez-vous avec 'orinu login'"
	case domain.KindAccountConflict:
		return "Connectez-vous avec 'orinu login' si ce compte est le vôtre"
	case domain.KindPopupBlocked:
		return "Ouvrez l'URL affichée dans votre navigateur"
	case domain.KindRateLimited:
		return "Patientez quelques minutes avant de réessayer"
	case domain.KindUnavailable:
		return "Vérifiez kratos.public_url et que le service répond"
	default:
		return ""
	}
}

// FormatError prints a structured error message to stderr
func (p *Printer) FormatError(e *CLIError) {
	if p.useColors {
		color.New(color.FgRed, color.Bold).Fprintf(p.err, "Erreur: %s\n", e.Summary)
	} else {
		fmt.Fprintf(p.err, "[ERROR] %s\n", e.Summary)
	}
	if e.Detail != "" {
		fmt.Fprintf(p.err, "  Cause: %s\n", e.Detail)
	}
	if e.Suggestion != "" {
		if p.useColors {
			color.New(color.FgCyan).Fprintf(p.err, "  Suggestion: %s\n", e.Suggestion)
		} else {
			fmt.Fprintf(p.err, "  Suggestion: %s\n", e.Suggestion)
		}
	}
}
