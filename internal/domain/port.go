package domain

//go:generate mockgen -source=port.go -destination=../../mocks/mock_port.go -package=mocks

import "context"

// IdentityProvider is the external account authority.
// CurrentIdentity returns nil without error when no session exists.
// CreateAccount reports verificationSent when the provider already dispatched
// the verification email as part of the registration.
type IdentityProvider interface {
	CreateAccount(ctx context.Context, email, password, username string) (identity *Identity, verificationSent bool, err error)
	SignInWithPassword(ctx context.Context, email, password string) (*Identity, error)
	SignInFederated(ctx context.Context) (*Identity, error)
	SignOut(ctx context.Context) error
	SendVerificationEmail(ctx context.Context, identity *Identity) error
	CurrentIdentity(ctx context.Context) (*Identity, error)
	ProofToken(ctx context.Context, identity *Identity) (string, error)
}

// SessionListener receives the current identity, or nil once signed out.
type SessionListener func(identity *Identity)

// SessionSource publishes session changes.
type SessionSource interface {
	SubscribeSession(listener SessionListener) (unsubscribe func())
	SignOut(ctx context.Context) error
}

// BackendSyncer pushes an authenticated identity to the application backend.
type BackendSyncer interface {
	SyncUser(ctx context.Context, token, username string) error
}

// FederatedPopup runs the interactive third-party sign-in.
type FederatedPopup interface {
	Open(ctx context.Context) (*FederatedCredential, error)
}

// SessionTokenStore persists the provider session token between process runs.
// Load returns an empty token without error when nothing is stored.
type SessionTokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// IdentityCache caches identities resolved for a session token.
type IdentityCache interface {
	Get(token string) (*Identity, bool)
	Set(token string, identity Identity)
	Delete(token string)
}

// OrinuRepository provides read access to the catalog.
type OrinuRepository interface {
	List(ctx context.Context) ([]Orinu, error)
	FindByID(ctx context.Context, id string) (*Orinu, error)
}
