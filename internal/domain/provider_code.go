package domain

// ProviderCode is the closed set of identity provider failures the flows know about.
type ProviderCode int

const (
	CodeUnknown ProviderCode = iota
	CodeEmailInUse
	CodeInvalidEmail
	CodeWeakPassword
	CodeUserNotFound
	CodeWrongPassword
	CodeInvalidCredential
	CodeTooManyRequests
	CodeEmailNotVerified
	CodePopupClosedByUser
	CodePopupBlocked
	CodeProviderUnavailable
)

func (c ProviderCode) String() string {
	switch c {
	case CodeEmailInUse:
		return "email_in_use"
	case CodeInvalidEmail:
		return "invalid_email"
	case CodeWeakPassword:
		return "weak_password"
	case CodeUserNotFound:
		return "user_not_found"
	case CodeWrongPassword:
		return "wrong_password"
	case CodeInvalidCredential:
		return "invalid_credential"
	case CodeTooManyRequests:
		return "too_many_requests"
	case CodeEmailNotVerified:
		return "email_not_verified"
	case CodePopupClosedByUser:
		return "popup_closed_by_user"
	case CodePopupBlocked:
		return "popup_blocked"
	case CodeProviderUnavailable:
		return "provider_unavailable"
	default:
		return "unknown"
	}
}

// User-facing messages.
const (
	MsgRegistered           = "Compte créé ! Vérifiez votre email pour activer votre compte."
	MsgLoggedIn             = "Connexion réussie !"
	MsgFederatedLoggedIn    = "Connexion avec Google réussie !"
	MsgLoggedOut            = "Déconnexion réussie"
	MsgVerificationResent   = "Email de vérification envoyé ! Vérifiez votre boîte de réception."
	MsgEmailInUse           = "Cet email est déjà utilisé"
	MsgInvalidEmail         = "Email invalide"
	MsgWeakPassword         = "Le mot de passe doit contenir au moins 6 caractères"
	MsgUserNotFound         = "Aucun compte associé à cet email"
	MsgWrongPassword        = "Mot de passe incorrect"
	MsgInvalidCredential    = "Email ou mot de passe incorrect"
	MsgTooManyRequests      = "Trop de tentatives. Réessayez plus tard."
	MsgEmailNotVerified     = "Veuillez vérifier votre email avant de vous connecter. Vérifiez votre boîte de réception."
	MsgPopupClosed          = "Connexion annulée"
	MsgPopupBlocked         = "Popup bloquée. Autorisez les popups pour ce site."
	MsgNotAuthenticated     = "Aucun utilisateur connecté"
	MsgAlreadyVerified      = "Email déjà vérifié"
	MsgProviderUnavailable  = "Service d'authentification indisponible"
	MsgBackendSyncFailed    = "Synchronisation avec le serveur impossible"
	MsgInvalidInput         = "Données invalides"
	MsgRegisterFailed       = "Erreur lors de l'inscription"
	MsgLoginFailed          = "Erreur lors de la connexion"
	MsgFederatedLoginFailed = "Erreur lors de la connexion avec Google"
	MsgLogoutFailed         = "Erreur lors de la déconnexion"
	MsgVerificationFailed   = "Erreur lors de l'envoi de l'email"
)

// Translate maps a provider code to its error kind and fixed message.
// CodeUnknown keeps the provider text, or fallback when the text is empty.
func Translate(code ProviderCode, text, fallback string) *AuthError {
	kind, message := KindUnknown, ""

	switch code {
	case CodeEmailInUse:
		kind, message = KindAccountConflict, MsgEmailInUse
	case CodeInvalidEmail:
		kind, message = KindInvalidInput, MsgInvalidEmail
	case CodeWeakPassword:
		kind, message = KindInvalidInput, MsgWeakPassword
	case CodeUserNotFound:
		kind, message = KindUnauthenticated, MsgUserNotFound
	case CodeWrongPassword:
		kind, message = KindUnauthenticated, MsgWrongPassword
	case CodeInvalidCredential:
		kind, message = KindUnauthenticated, MsgInvalidCredential
	case CodeTooManyRequests:
		kind, message = KindRateLimited, MsgTooManyRequests
	case CodeEmailNotVerified:
		kind, message = KindEmailNotVerified, MsgEmailNotVerified
	case CodePopupClosedByUser:
		kind, message = KindPopupCancelled, MsgPopupClosed
	case CodePopupBlocked:
		kind, message = KindPopupBlocked, MsgPopupBlocked
	case CodeProviderUnavailable:
		kind, message = KindUnavailable, MsgProviderUnavailable
	case CodeUnknown:
		message = text
	default:
		message = text
	}

	if message == "" {
		message = fallback
	}

	return &AuthError{Kind: kind, Code: code, Message: message}
}
