package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/goddivor/Orinu-hub/internal/domain"
)

// AuthFlowConfig bounds every external call made by the auth flow.
type AuthFlowConfig struct {
	ProviderTimeout  time.Duration
	FederatedTimeout time.Duration
	SyncTimeout      time.Duration
}

// RegisterInput holds the fields submitted by the registration form.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Username string `json:"username" validate:"required,min=2,max=32"`
}

// LoginInput holds the fields submitted by the login form.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthFlow orchestrates identity provider calls and the best-effort backend sync.
type AuthFlow struct {
	provider domain.IdentityProvider
	syncer   domain.BackendSyncer
	cfg      AuthFlowConfig
	logger   *slog.Logger
}

// NewAuthFlow creates the auth flow usecase.
func NewAuthFlow(provider domain.IdentityProvider, syncer domain.BackendSyncer, cfg AuthFlowConfig, logger *slog.Logger) *AuthFlow {
	if cfg.ProviderTimeout <= 0 {
		cfg.ProviderTimeout = 15 * time.Second
	}
	if cfg.FederatedTimeout <= 0 {
		cfg.FederatedTimeout = 3 * time.Minute
	}
	if cfg.SyncTimeout <= 0 {
		cfg.SyncTimeout = 10 * time.Second
	}
	return &AuthFlow{
		provider: provider,
		syncer:   syncer,
		cfg:      cfg,
		logger:   logger.With("component", "auth_flow"),
	}
}

// Register creates the account, sends the verification email and syncs the backend.
// The account is not required to be verified before Register returns.
func (f *AuthFlow) Register(ctx context.Context, in RegisterInput) (*domain.AuthResult, error) {
	callCtx, cancel := context.WithTimeout(ctx, f.cfg.ProviderTimeout)
	identity, verificationSent, err := f.provider.CreateAccount(callCtx, in.Email, in.Password, in.Username)
	cancel()
	if err != nil {
		authErr := domain.TranslateProviderError(err, domain.MsgRegisterFailed)
		f.logger.WarnContext(ctx, "account creation rejected", "kind", authErr.Kind, "error", err)
		return nil, authErr
	}

	if !verificationSent {
		callCtx, cancel = context.WithTimeout(ctx, f.cfg.ProviderTimeout)
		err = f.provider.SendVerificationEmail(callCtx, identity)
		cancel()
		if err != nil {
			authErr := domain.TranslateProviderError(err, domain.MsgRegisterFailed)
			f.logger.ErrorContext(ctx, "verification email dispatch failed",
				"user_id", identity.ID,
				"kind", authErr.Kind,
				"error", err)
			return nil, authErr
		}
	}

	f.logger.InfoContext(ctx, "account registered", "user_id", identity.ID)

	return &domain.AuthResult{
		Identity: identity,
		Message:  domain.MsgRegistered,
		Sync:     f.syncUser(ctx, identity, in.Username),
	}, nil
}

// LoginWithEmail signs in with a password. Unverified accounts are signed back out
// before the error is returned.
func (f *AuthFlow) LoginWithEmail(ctx context.Context, in LoginInput) (*domain.AuthResult, error) {
	callCtx, cancel := context.WithTimeout(ctx, f.cfg.ProviderTimeout)
	identity, err := f.provider.SignInWithPassword(callCtx, in.Email, in.Password)
	cancel()
	if err != nil {
		authErr := domain.TranslateProviderError(err, domain.MsgLoginFailed)
		f.logger.WarnContext(ctx, "password login rejected", "kind", authErr.Kind, "error", err)
		return nil, authErr
	}

	if !identity.EmailVerified {
		callCtx, cancel = context.WithTimeout(ctx, f.cfg.ProviderTimeout)
		signOutErr := f.provider.SignOut(callCtx)
		cancel()
		if signOutErr != nil {
			f.logger.ErrorContext(ctx, "failed to sign out unverified account",
				"user_id", identity.ID,
				"error", signOutErr)
		}
		f.logger.InfoContext(ctx, "login blocked until email is verified", "user_id", identity.ID)
		return nil, domain.NewAuthError(domain.KindEmailNotVerified, signOutErr)
	}

	return &domain.AuthResult{
		Identity: identity,
		Message:  domain.MsgLoggedIn,
		Sync:     f.syncUser(ctx, identity, ""),
	}, nil
}

// LoginWithFederatedProvider runs the interactive third-party login.
// Federated identities are treated as verified by the provider.
func (f *AuthFlow) LoginWithFederatedProvider(ctx context.Context) (*domain.AuthResult, error) {
	callCtx, cancel := context.WithTimeout(ctx, f.cfg.FederatedTimeout)
	identity, err := f.provider.SignInFederated(callCtx)
	cancel()
	if err != nil {
		authErr := domain.TranslateProviderError(err, domain.MsgFederatedLoginFailed)
		f.logger.WarnContext(ctx, "federated login failed", "kind", authErr.Kind, "error", err)
		return nil, authErr
	}
	identity.EmailVerified = true

	return &domain.AuthResult{
		Identity: identity,
		Message:  domain.MsgFederatedLoggedIn,
		Sync:     f.syncUser(ctx, identity, identity.FederatedUsername()),
	}, nil
}

// Logout ends the provider session. Provider failures are surfaced.
func (f *AuthFlow) Logout(ctx context.Context) error {
	callCtx, cancel := context.WithTimeout(ctx, f.cfg.ProviderTimeout)
	defer cancel()

	if err := f.provider.SignOut(callCtx); err != nil {
		f.logger.ErrorContext(ctx, "sign out failed", "error", err)
		return domain.TranslateProviderError(err, domain.MsgLogoutFailed)
	}
	return nil
}

// ResendVerificationEmail asks the provider to send another verification email
// to the signed-in, still unverified, identity.
func (f *AuthFlow) ResendVerificationEmail(ctx context.Context) error {
	identity, err := f.currentIdentity(ctx)
	if err != nil {
		return err
	}
	if identity == nil {
		return domain.NewAuthError(domain.KindNotAuthenticated, nil)
	}
	if identity.EmailVerified {
		return domain.NewAuthError(domain.KindAlreadyVerified, nil)
	}

	callCtx, cancel := context.WithTimeout(ctx, f.cfg.ProviderTimeout)
	defer cancel()

	if err := f.provider.SendVerificationEmail(callCtx, identity); err != nil {
		f.logger.WarnContext(ctx, "verification email resend failed", "user_id", identity.ID, "error", err)
		return domain.TranslateProviderError(err, domain.MsgVerificationFailed)
	}
	return nil
}

// CurrentToken returns a fresh proof-of-identity token for the signed-in identity.
func (f *AuthFlow) CurrentToken(ctx context.Context) (string, error) {
	identity, err := f.currentIdentity(ctx)
	if err != nil {
		return "", err
	}
	if identity == nil {
		return "", domain.NewAuthError(domain.KindNotAuthenticated, nil)
	}

	callCtx, cancel := context.WithTimeout(ctx, f.cfg.ProviderTimeout)
	defer cancel()

	token, err := f.provider.ProofToken(callCtx, identity)
	if err != nil {
		f.logger.WarnContext(ctx, "failed to mint proof token", "user_id", identity.ID, "error", err)
		return "", domain.TranslateProviderError(err, domain.MsgLoginFailed)
	}
	return token, nil
}

// IsAuthenticated reports whether a verified identity holds the session.
func (f *AuthFlow) IsAuthenticated(ctx context.Context) bool {
	identity, err := f.currentIdentity(ctx)
	if err != nil || identity == nil {
		return false
	}
	return identity.EmailVerified
}

func (f *AuthFlow) currentIdentity(ctx context.Context) (*domain.Identity, error) {
	callCtx, cancel := context.WithTimeout(ctx, f.cfg.ProviderTimeout)
	defer cancel()

	identity, err := f.provider.CurrentIdentity(callCtx)
	if err != nil {
		return nil, domain.TranslateProviderError(err, domain.MsgLoginFailed)
	}
	return identity, nil
}

// syncUser makes the single backend sync attempt for an auth event.
// Its failure is reported in the result and logged, never returned.
func (f *AuthFlow) syncUser(ctx context.Context, identity *domain.Identity, username string) domain.SyncResult {
	result := domain.SyncResult{Attempted: true, Username: username}

	tokenCtx, cancel := context.WithTimeout(ctx, f.cfg.ProviderTimeout)
	token, err := f.provider.ProofToken(tokenCtx, identity)
	cancel()
	if err != nil {
		result.Err = domain.NewAuthError(domain.KindBackendSyncFailed, err)
		f.logger.WarnContext(ctx, "backend sync skipped, proof token unavailable",
			"user_id", identity.ID,
			"error", err)
		return result
	}

	syncCtx, cancel := context.WithTimeout(ctx, f.cfg.SyncTimeout)
	defer cancel()

	if err := f.syncer.SyncUser(syncCtx, token, username); err != nil {
		result.Err = domain.NewAuthError(domain.KindBackendSyncFailed, err)
		f.logger.WarnContext(ctx, "backend sync failed, user will be synced on next login",
			"user_id", identity.ID,
			"error", err)
		return result
	}

	f.logger.DebugContext(ctx, "backend sync completed", "user_id", identity.ID)
	return result
}
