package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"time"

	"github.com/goddivor/Orinu-hub/internal/domain"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/oauth2"
)

const callbackPath = "/callback"

// BrowserOpener shows url to the user. An error means the popup could not be shown.
type BrowserOpener func(url string) error

// FederatedConfig configures the OIDC popup.
type FederatedConfig struct {
	// Provider is the Kratos OIDC provider ID the ID token is exchanged with.
	Provider     string
	IssuerURL    string
	ClientID     string
	ClientSecret string
	Scopes       []string
	// ListenAddr is the loopback address of the callback server; port 0 picks a free port.
	ListenAddr string
}

type callbackResult struct {
	code        string
	state       string
	errCode     string
	description string
}

type idTokenClaims struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// OIDCPopup runs the authorization code flow with PKCE through the system
// browser and a loopback callback server.
// Implements domain.FederatedPopup.
type OIDCPopup struct {
	cfg    FederatedConfig
	open   BrowserOpener
	logger *slog.Logger
}

var _ domain.FederatedPopup = (*OIDCPopup)(nil)

// NewOIDCPopup creates the popup. A nil opener uses the system browser.
func NewOIDCPopup(cfg FederatedConfig, opener BrowserOpener, logger *slog.Logger) *OIDCPopup {
	if opener == nil {
		opener = OpenSystemBrowser
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = "127.0.0.1:0"
	}
	if len(cfg.Scopes) == 0 {
		cfg.Scopes = []string{oidc.ScopeOpenID, "email", "profile"}
	}
	return &OIDCPopup{
		cfg:    cfg,
		open:   opener,
		logger: logger.With("component", "oidc_popup"),
	}
}

// Open blocks until the user finishes or abandons the login, or ctx ends.
func (p *OIDCPopup) Open(ctx context.Context) (*domain.FederatedCredential, error) {
	ctx, span := tracer.Start(ctx, "oidc.Open")
	defer span.End()

	provider, err := oidc.NewProvider(ctx, p.cfg.IssuerURL)
	if err != nil {
		return nil, domain.NewProviderError(domain.CodeProviderUnavailable, "", fmt.Errorf("oidc discovery: %w", err))
	}

	listener, err := net.Listen("tcp", p.cfg.ListenAddr)
	if err != nil {
		return nil, domain.NewProviderError(domain.CodeUnknown, "", fmt.Errorf("listen for callback: %w", err))
	}

	conf := &oauth2.Config{
		ClientID:     p.cfg.ClientID,
		ClientSecret: p.cfg.ClientSecret,
		Endpoint:     provider.Endpoint(),
		RedirectURL:  "http://" + listener.Addr().String() + callbackPath,
		Scopes:       p.cfg.Scopes,
	}

	state := uuid.NewString()
	nonce := uuid.NewString()
	verifier := oauth2.GenerateVerifier()

	results := make(chan callbackResult, 1)
	server := p.callbackServer(listener, results)
	go func() {
		if err := server.Start(""); err != nil && !errors.Is(err, http.ErrServerClosed) {
			p.logger.Error("callback server stopped", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	authURL := conf.AuthCodeURL(state, oauth2.S256ChallengeOption(verifier), oidc.Nonce(nonce))
	if err := p.open(authURL); err != nil {
		p.logger.WarnContext(ctx, "could not open browser", "error", err)
		return nil, domain.NewProviderError(domain.CodePopupBlocked, "", err)
	}
	p.logger.InfoContext(ctx, "waiting for federated login", "redirect_url", conf.RedirectURL)

	var result callbackResult
	select {
	case <-ctx.Done():
		return nil, domain.NewProviderError(domain.CodePopupClosedByUser, "", ctx.Err())
	case result = <-results:
	}

	switch {
	case result.errCode == "access_denied":
		return nil, domain.NewProviderError(domain.CodePopupClosedByUser, "", errors.New(result.errCode))
	case result.errCode != "":
		return nil, domain.NewProviderError(domain.CodeUnknown, result.description, errors.New(result.errCode))
	case result.state != state:
		return nil, domain.NewProviderError(domain.CodeUnknown, "", errors.New("oauth state mismatch"))
	case result.code == "":
		return nil, domain.NewProviderError(domain.CodeUnknown, "", errors.New("callback carried no authorization code"))
	}

	tok, err := conf.Exchange(ctx, result.code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, domain.NewProviderError(domain.CodeUnknown, "", fmt.Errorf("exchange authorization code: %w", err))
	}

	rawIDToken, ok := tok.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, domain.NewProviderError(domain.CodeUnknown, "", errors.New("token response has no id_token"))
	}

	idToken, err := provider.Verifier(&oidc.Config{ClientID: p.cfg.ClientID}).Verify(ctx, rawIDToken)
	if err != nil {
		return nil, domain.NewProviderError(domain.CodeUnknown, "", fmt.Errorf("verify id_token: %w", err))
	}
	if idToken.Nonce != nonce {
		return nil, domain.NewProviderError(domain.CodeUnknown, "", errors.New("id_token nonce mismatch"))
	}

	var claims idTokenClaims
	if err := idToken.Claims(&claims); err != nil {
		return nil, domain.NewProviderError(domain.CodeUnknown, "", fmt.Errorf("decode id_token claims: %w", err))
	}

	return &domain.FederatedCredential{
		Provider:    p.cfg.Provider,
		IDToken:     rawIDToken,
		Nonce:       nonce,
		Email:       claims.Email,
		DisplayName: claims.Name,
		PhotoURL:    claims.Picture,
	}, nil
}

func (p *OIDCPopup) callbackServer(listener net.Listener, results chan<- callbackResult) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Listener = listener

	e.GET(callbackPath, func(c echo.Context) error {
		result := callbackResult{
			code:        c.QueryParam("code"),
			state:       c.QueryParam("state"),
			errCode:     c.QueryParam("error"),
			description: c.QueryParam("error_description"),
		}
		select {
		case results <- result:
		default:
		}

		if result.errCode != "" {
			return c.String(http.StatusOK, "Connexion annulée. Vous pouvez fermer cette fenêtre.")
		}
		return c.String(http.StatusOK, "Connexion terminée. Vous pouvez fermer cette fenêtre.")
	})

	return e
}

// OpenSystemBrowser opens url with the platform's default browser.
func OpenSystemBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}
