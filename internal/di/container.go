package di

import (
	"fmt"
	"log/slog"

	"github.com/goddivor/Orinu-hub/config"
	"github.com/goddivor/Orinu-hub/internal/adapter/gateway"
	"github.com/goddivor/Orinu-hub/internal/domain"
	"github.com/goddivor/Orinu-hub/internal/infrastructure/cache"
	"github.com/goddivor/Orinu-hub/internal/infrastructure/catalog"
	"github.com/goddivor/Orinu-hub/internal/infrastructure/tokenstore"
	"github.com/goddivor/Orinu-hub/internal/session"
	"github.com/goddivor/Orinu-hub/internal/usecase"
)

// ApplicationComponents holds all wired dependencies for the application.
type ApplicationComponents struct {
	Config *config.Config
	Logger *slog.Logger

	// Infrastructure
	Tokens        domain.SessionTokenStore
	IdentityCache *cache.IdentityCache
	Catalog       domain.OrinuRepository

	// Adapters
	Kratos  *gateway.KratosGateway
	Backend *gateway.BackendSyncClient

	// Usecases
	AuthFlow       *usecase.AuthFlow
	CatalogUsecase *usecase.Catalog

	// Session state
	Session *session.Holder
}

type options struct {
	tokens domain.SessionTokenStore
	opener gateway.BrowserOpener
}

// Option customises wiring, mostly for tests.
type Option func(*options)

// WithTokenStore replaces the file-backed session token store.
func WithTokenStore(store domain.SessionTokenStore) Option {
	return func(o *options) { o.tokens = store }
}

// WithBrowserOpener replaces the system browser used by the federated popup.
func WithBrowserOpener(opener gateway.BrowserOpener) Option {
	return func(o *options) { o.opener = opener }
}

// NewApplicationComponents wires all dependencies from config.
func NewApplicationComponents(cfg *config.Config, log *slog.Logger, opts ...Option) (*ApplicationComponents, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.tokens == nil {
		o.tokens = tokenstore.NewFileStore(cfg.Auth.SessionFile)
	}

	repo, err := catalog.NewSeedRepository()
	if err != nil {
		return nil, fmt.Errorf("load catalog seed: %w", err)
	}

	identityCache := cache.NewIdentityCache(cfg.Auth.CacheTTL)

	// A nil *OIDCPopup must not reach the gateway as a non-nil interface.
	var popup domain.FederatedPopup
	if cfg.FederatedEnabled() {
		popup = gateway.NewOIDCPopup(gateway.FederatedConfig{
			Provider:     cfg.OIDC.Provider,
			IssuerURL:    cfg.OIDC.IssuerURL,
			ClientID:     cfg.OIDC.ClientID,
			ClientSecret: cfg.OIDC.ClientSecret,
			Scopes:       cfg.OIDC.Scopes,
			ListenAddr:   cfg.OIDC.ListenAddr,
		}, o.opener, log)
		log.Debug("federated login enabled", "provider", cfg.OIDC.Provider, "issuer", cfg.OIDC.IssuerURL)
	}

	kratosGateway := gateway.NewKratosGateway(gateway.KratosConfig{
		PublicURL:        cfg.Kratos.PublicURL,
		Timeout:          cfg.Auth.ProviderTimeout,
		TokenizeTemplate: cfg.Kratos.TokenizeTemplate,
		RefreshInterval:  cfg.Auth.RefreshInterval,
		OIDCProvider:     cfg.OIDC.Provider,
	}, o.tokens, identityCache, popup, log)

	backend := gateway.NewBackendSyncClient(cfg.Backend.APIURL, cfg.Backend.SyncTimeout, log)

	authFlow := usecase.NewAuthFlow(kratosGateway, backend, usecase.AuthFlowConfig{
		ProviderTimeout:  cfg.Auth.ProviderTimeout,
		FederatedTimeout: cfg.Auth.FederatedTimeout,
		SyncTimeout:      cfg.Backend.SyncTimeout,
	}, log)

	return &ApplicationComponents{
		Config:         cfg,
		Logger:         log,
		Tokens:         o.tokens,
		IdentityCache:  identityCache,
		Catalog:        repo,
		Kratos:         kratosGateway,
		Backend:        backend,
		AuthFlow:       authFlow,
		CatalogUsecase: usecase.NewCatalog(repo, log),
		Session:        session.NewHolder(kratosGateway, log),
	}, nil
}

// Close releases the session subscription and background loops.
func (c *ApplicationComponents) Close() {
	c.Session.Close()
	c.IdentityCache.Close()
}
