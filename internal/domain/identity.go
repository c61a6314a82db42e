package domain

import "strings"

// defaultUsername is used when neither a display name nor an email local-part is available.
const defaultUsername = "user"

// Identity is the read-only view of an account owned by the identity provider.
type Identity struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	DisplayName   string `json:"displayName,omitempty"`
	PhotoURL      string `json:"photoUrl,omitempty"`
	EmailVerified bool   `json:"emailVerified"`
}

// FederatedUsername picks the username sent to the backend after a federated login.
func (i *Identity) FederatedUsername() string {
	if i == nil {
		return defaultUsername
	}
	if name := strings.TrimSpace(i.DisplayName); name != "" {
		return name
	}
	if local, _, ok := strings.Cut(i.Email, "@"); ok && local != "" {
		return local
	}
	return defaultUsername
}

// SameAs reports whether both identities refer to the same account with the same visible fields.
func (i *Identity) SameAs(other *Identity) bool {
	if i == nil || other == nil {
		return i == other
	}
	return *i == *other
}

// FederatedCredential is what the federated popup hands back to the identity provider.
type FederatedCredential struct {
	Provider    string
	IDToken     string
	Nonce       string
	Email       string
	DisplayName string
	PhotoURL    string
}
