package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/goddivor/Orinu-hub/internal/domain"
	"github.com/goddivor/Orinu-hub/internal/infrastructure/token"

	kratos "github.com/ory/kratos-client-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("orinu-hub/gateway")

// KratosConfig configures the Kratos gateway.
type KratosConfig struct {
	PublicURL        string
	Timeout          time.Duration
	TokenizeTemplate string
	RefreshInterval  time.Duration
	OIDCProvider     string
}

// KratosGateway implements domain.IdentityProvider and domain.SessionSource
// on top of Kratos native (API) flows.
type KratosGateway struct {
	client *kratos.APIClient
	cfg    KratosConfig
	tokens domain.SessionTokenStore
	cache  domain.IdentityCache
	popup  domain.FederatedPopup
	logger *slog.Logger

	// notifyMu serializes session changes with their delivery to listeners.
	notifyMu    sync.Mutex
	mu          sync.Mutex
	listeners   map[uint64]domain.SessionListener
	nextID      uint64
	current     *domain.Identity
	restored    bool
	stopRefresh context.CancelFunc
}

// NewKratosGateway creates a new Kratos gateway with tuned HTTP transport.
// popup may be nil when federated login is not configured.
func NewKratosGateway(
	cfg KratosConfig,
	tokens domain.SessionTokenStore,
	cache domain.IdentityCache,
	popup domain.FederatedPopup,
	logger *slog.Logger,
) *KratosGateway {
	configuration := kratos.NewConfiguration()
	configuration.Servers = []kratos.ServerConfiguration{
		{URL: cfg.PublicURL},
	}
	configuration.HTTPClient = &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
	if cfg.OIDCProvider == "" {
		cfg.OIDCProvider = "google"
	}

	return &KratosGateway{
		client:    kratos.NewAPIClient(configuration),
		cfg:       cfg,
		tokens:    tokens,
		cache:     cache,
		popup:     popup,
		logger:    logger.With("component", "kratos_gateway"),
		listeners: make(map[uint64]domain.SessionListener),
	}
}

// CreateAccount registers a password identity and keeps the resulting session.
// verificationSent is true when the registration itself triggered the Kratos
// verification flow.
func (g *KratosGateway) CreateAccount(ctx context.Context, email, password, username string) (*domain.Identity, bool, error) {
	ctx, span := tracer.Start(ctx, "kratos.CreateAccount")
	defer span.End()

	flow, resp, err := g.client.FrontendAPI.CreateNativeRegistrationFlow(ctx).Execute()
	if err != nil {
		return nil, false, g.fail(span, "create registration flow", err, resp)
	}

	body := kratos.UpdateRegistrationFlowWithPasswordMethod{
		Method:   "password",
		Password: password,
		Traits: map[string]interface{}{
			"email":    email,
			"username": username,
		},
	}
	result, resp, err := g.client.FrontendAPI.UpdateRegistrationFlow(ctx).
		Flow(flow.Id).
		UpdateRegistrationFlowBody(kratos.UpdateRegistrationFlowWithPasswordMethodAsUpdateRegistrationFlowBody(&body)).
		Execute()
	if err != nil {
		return nil, false, g.fail(span, "submit registration flow", err, resp)
	}

	kratosIdentity := result.GetIdentity()
	identity := identityFromKratos(&kratosIdentity)
	verificationSent := verificationStarted(result.GetContinueWith())
	span.SetAttributes(
		attribute.String("identity.id", identity.ID),
		attribute.Bool("verification.sent", verificationSent),
	)

	sessionToken := result.GetSessionToken()
	if sessionToken == "" {
		// Registration without the session hook; open the session explicitly.
		loggedIn, loginToken, loginErr := g.passwordLogin(ctx, email, password)
		if loginErr != nil {
			g.logger.WarnContext(ctx, "registered identity has no session",
				"identity_id", identity.ID,
				"error", loginErr)
			return identity, verificationSent, nil
		}
		identity, sessionToken = loggedIn, loginToken
	}

	g.persist(ctx, sessionToken, identity)
	g.setCurrent(identity)
	return identity, verificationSent, nil
}

// SignInWithPassword runs a native password login.
func (g *KratosGateway) SignInWithPassword(ctx context.Context, email, password string) (*domain.Identity, error) {
	ctx, span := tracer.Start(ctx, "kratos.SignInWithPassword")
	defer span.End()

	identity, sessionToken, err := g.passwordLogin(ctx, email, password)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "password login failed")
		return nil, err
	}

	g.persist(ctx, sessionToken, identity)
	g.setCurrent(identity)
	return identity, nil
}

// SignInFederated opens the OIDC popup and exchanges its ID token for a Kratos session.
// Unknown accounts are registered on the fly.
func (g *KratosGateway) SignInFederated(ctx context.Context) (*domain.Identity, error) {
	ctx, span := tracer.Start(ctx, "kratos.SignInFederated")
	defer span.End()

	if g.popup == nil {
		return nil, domain.NewProviderError(domain.CodeUnknown, "", errors.New("federated login is not configured"))
	}

	cred, err := g.popup.Open(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	identity, sessionToken, err := g.oidcLogin(ctx, cred)
	var providerErr *domain.ProviderError
	if errors.As(err, &providerErr) && providerErr.Code == domain.CodeUserNotFound {
		identity, sessionToken, err = g.oidcRegister(ctx, cred)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "federated login failed")
		return nil, err
	}

	if identity.DisplayName == "" {
		identity.DisplayName = cred.DisplayName
	}
	if identity.PhotoURL == "" {
		identity.PhotoURL = cred.PhotoURL
	}
	identity.EmailVerified = true

	g.persist(ctx, sessionToken, identity)
	g.setCurrent(identity)
	return identity, nil
}

// SignOut revokes the session and always clears local state. A failed
// revocation is still returned.
func (g *KratosGateway) SignOut(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "kratos.SignOut")
	defer span.End()

	sessionToken, err := g.tokens.Load()
	if err != nil {
		g.logger.WarnContext(ctx, "failed to read session token", "error", err)
	}

	var revokeErr error
	if sessionToken != "" {
		resp, err := g.client.FrontendAPI.PerformNativeLogout(ctx).
			PerformNativeLogoutBody(*kratos.NewPerformNativeLogoutBody(sessionToken)).
			Execute()
		if err != nil && !sessionGone(resp) {
			revokeErr = g.fail(span, "perform native logout", err, resp)
		}
		g.cache.Delete(sessionToken)
	}

	if err := g.tokens.Clear(); err != nil {
		g.logger.WarnContext(ctx, "failed to clear session token", "error", err)
	}
	g.setCurrent(nil)

	return revokeErr
}

// SendVerificationEmail submits a native verification flow with the code method.
func (g *KratosGateway) SendVerificationEmail(ctx context.Context, identity *domain.Identity) error {
	ctx, span := tracer.Start(ctx, "kratos.SendVerificationEmail")
	defer span.End()

	if identity == nil || identity.Email == "" {
		return domain.NewProviderError(domain.CodeInvalidEmail, "", nil)
	}

	flow, resp, err := g.client.FrontendAPI.CreateNativeVerificationFlow(ctx).Execute()
	if err != nil {
		return g.fail(span, "create verification flow", err, resp)
	}

	email := identity.Email
	body := kratos.UpdateVerificationFlowWithCodeMethod{
		Method: "code",
		Email:  &email,
	}
	_, resp, err = g.client.FrontendAPI.UpdateVerificationFlow(ctx).
		Flow(flow.Id).
		UpdateVerificationFlowBody(kratos.UpdateVerificationFlowWithCodeMethodAsUpdateVerificationFlowBody(&body)).
		Execute()
	if err != nil {
		return g.fail(span, "submit verification flow", err, resp)
	}

	g.logger.InfoContext(ctx, "verification email requested", "identity_id", identity.ID)
	return nil
}

// CurrentIdentity resolves the stored session. It returns nil without error when
// there is no session or Kratos no longer accepts it.
func (g *KratosGateway) CurrentIdentity(ctx context.Context) (*domain.Identity, error) {
	ctx, span := tracer.Start(ctx, "kratos.CurrentIdentity")
	defer span.End()

	return g.resolve(ctx, true)
}

// ProofToken tokenizes the current session into a JWT for the backend.
func (g *KratosGateway) ProofToken(ctx context.Context, identity *domain.Identity) (string, error) {
	ctx, span := tracer.Start(ctx, "kratos.ProofToken")
	defer span.End()

	if identity == nil {
		return "", domain.NewAuthError(domain.KindNotAuthenticated, nil)
	}

	sessionToken, err := g.tokens.Load()
	if err != nil {
		return "", fmt.Errorf("load session token: %w", err)
	}
	if sessionToken == "" {
		return "", domain.NewAuthError(domain.KindNotAuthenticated, nil)
	}

	session, resp, err := g.client.FrontendAPI.ToSession(ctx).
		XSessionToken(sessionToken).
		TokenizeAs(g.cfg.TokenizeTemplate).
		Execute()
	if err != nil {
		if sessionGone(resp) {
			return "", domain.NewAuthError(domain.KindNotAuthenticated, err)
		}
		return "", g.fail(span, "tokenize session", err, resp)
	}

	raw := session.GetTokenized()
	if raw == "" {
		return "", domain.NewProviderError(domain.CodeUnknown, "",
			fmt.Errorf("kratos returned no tokenized session for template %q", g.cfg.TokenizeTemplate))
	}

	if _, err := token.VerifySubject(raw, identity.ID); err != nil {
		return "", domain.NewProviderError(domain.CodeUnknown, "", err)
	}
	return raw, nil
}

// SubscribeSession delivers the restored session to listener, then every change.
func (g *KratosGateway) SubscribeSession(listener domain.SessionListener) (unsubscribe func()) {
	g.notifyMu.Lock()
	defer g.notifyMu.Unlock()

	g.mu.Lock()
	id := g.nextID
	g.nextID++
	g.listeners[id] = listener
	needsRestore := !g.restored
	if len(g.listeners) == 1 && g.cfg.RefreshInterval > 0 {
		refreshCtx, cancel := context.WithCancel(context.Background())
		g.stopRefresh = cancel
		go g.refreshLoop(refreshCtx)
	}
	g.mu.Unlock()

	if needsRestore {
		g.restore()
	}

	g.mu.Lock()
	current := copyIdentity(g.current)
	g.mu.Unlock()
	listener(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			defer g.mu.Unlock()

			delete(g.listeners, id)
			if len(g.listeners) == 0 && g.stopRefresh != nil {
				g.stopRefresh()
				g.stopRefresh = nil
			}
		})
	}
}

func (g *KratosGateway) restore() {
	ctx, cancel := context.WithTimeout(context.Background(), g.cfg.Timeout)
	defer cancel()

	identity, err := g.resolve(ctx, true)
	if err != nil {
		g.logger.WarnContext(ctx, "could not restore session, starting anonymous", "error", err)
		identity = nil
	}

	g.mu.Lock()
	g.current = identity
	g.restored = true
	g.mu.Unlock()
}

func (g *KratosGateway) refreshLoop(ctx context.Context) {
	ticker := time.NewTicker(g.cfg.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			callCtx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
			identity, err := g.resolve(callCtx, false)
			cancel()
			if err != nil {
				g.logger.Warn("session refresh failed", "error", err)
				continue
			}
			g.setCurrent(identity)
		}
	}
}

// resolve looks up the identity behind the stored session token.
func (g *KratosGateway) resolve(ctx context.Context, useCache bool) (*domain.Identity, error) {
	sessionToken, err := g.tokens.Load()
	if err != nil {
		return nil, fmt.Errorf("load session token: %w", err)
	}
	if sessionToken == "" {
		return nil, nil
	}

	if useCache {
		if cached, ok := g.cache.Get(sessionToken); ok {
			return cached, nil
		}
	}

	session, resp, err := g.client.FrontendAPI.ToSession(ctx).XSessionToken(sessionToken).Execute()
	if err != nil {
		if sessionGone(resp) {
			g.dropSession(ctx, sessionToken)
			return nil, nil
		}
		return nil, classifyKratosError(err, resp)
	}
	if (session.Active != nil && !*session.Active) || session.Identity == nil {
		g.dropSession(ctx, sessionToken)
		return nil, nil
	}

	identity := identityFromSession(session)
	g.cache.Set(sessionToken, *identity)
	return identity, nil
}

func (g *KratosGateway) passwordLogin(ctx context.Context, email, password string) (*domain.Identity, string, error) {
	flow, resp, err := g.client.FrontendAPI.CreateNativeLoginFlow(ctx).Execute()
	if err != nil {
		return nil, "", classifyKratosError(err, resp)
	}

	body := kratos.UpdateLoginFlowWithPasswordMethod{
		Method:     "password",
		Identifier: email,
		Password:   password,
	}
	result, resp, err := g.client.FrontendAPI.UpdateLoginFlow(ctx).
		Flow(flow.Id).
		UpdateLoginFlowBody(kratos.UpdateLoginFlowWithPasswordMethodAsUpdateLoginFlowBody(&body)).
		Execute()
	if err != nil {
		return nil, "", passwordLoginError(err, resp)
	}

	return sessionResult(result.GetSession(), result.GetSessionToken())
}

// passwordLoginError reports rejected credentials as a wrong password.
// Unknown accounts arrive separately as 4000035.
func passwordLoginError(err error, resp *http.Response) *domain.ProviderError {
	providerErr := classifyKratosError(err, resp)
	if providerErr.Code == domain.CodeInvalidCredential {
		providerErr.Code = domain.CodeWrongPassword
	}
	return providerErr
}

func (g *KratosGateway) oidcLogin(ctx context.Context, cred *domain.FederatedCredential) (*domain.Identity, string, error) {
	flow, resp, err := g.client.FrontendAPI.CreateNativeLoginFlow(ctx).Execute()
	if err != nil {
		return nil, "", classifyKratosError(err, resp)
	}

	body := kratos.UpdateLoginFlowWithOidcMethod{
		Method:   "oidc",
		Provider: g.providerFor(cred),
		IdToken:  &cred.IDToken,
	}
	if cred.Nonce != "" {
		body.IdTokenNonce = &cred.Nonce
	}

	result, resp, err := g.client.FrontendAPI.UpdateLoginFlow(ctx).
		Flow(flow.Id).
		UpdateLoginFlowBody(kratos.UpdateLoginFlowWithOidcMethodAsUpdateLoginFlowBody(&body)).
		Execute()
	if err != nil {
		return nil, "", classifyKratosError(err, resp)
	}

	return sessionResult(result.GetSession(), result.GetSessionToken())
}

func (g *KratosGateway) oidcRegister(ctx context.Context, cred *domain.FederatedCredential) (*domain.Identity, string, error) {
	flow, resp, err := g.client.FrontendAPI.CreateNativeRegistrationFlow(ctx).Execute()
	if err != nil {
		return nil, "", classifyKratosError(err, resp)
	}

	body := kratos.UpdateRegistrationFlowWithOidcMethod{
		Method:   "oidc",
		Provider: g.providerFor(cred),
		IdToken:  &cred.IDToken,
		Traits: map[string]interface{}{
			"email":    cred.Email,
			"username": (&domain.Identity{Email: cred.Email, DisplayName: cred.DisplayName}).FederatedUsername(),
		},
	}
	if cred.Nonce != "" {
		body.IdTokenNonce = &cred.Nonce
	}

	result, resp, err := g.client.FrontendAPI.UpdateRegistrationFlow(ctx).
		Flow(flow.Id).
		UpdateRegistrationFlowBody(kratos.UpdateRegistrationFlowWithOidcMethodAsUpdateRegistrationFlowBody(&body)).
		Execute()
	if err != nil {
		return nil, "", classifyKratosError(err, resp)
	}

	kratosIdentity := result.GetIdentity()
	return identityFromKratos(&kratosIdentity), result.GetSessionToken(), nil
}

func (g *KratosGateway) providerFor(cred *domain.FederatedCredential) string {
	if cred.Provider != "" {
		return cred.Provider
	}
	return g.cfg.OIDCProvider
}

func (g *KratosGateway) persist(ctx context.Context, sessionToken string, identity *domain.Identity) {
	if sessionToken == "" {
		return
	}
	if err := g.tokens.Save(sessionToken); err != nil {
		g.logger.WarnContext(ctx, "failed to persist session token", "error", err)
	}
	g.cache.Set(sessionToken, *identity)
}

func (g *KratosGateway) dropSession(ctx context.Context, sessionToken string) {
	g.cache.Delete(sessionToken)
	if err := g.tokens.Clear(); err != nil {
		g.logger.WarnContext(ctx, "failed to clear expired session token", "error", err)
	}
}

// setCurrent records the session identity and notifies listeners when it changed.
func (g *KratosGateway) setCurrent(identity *domain.Identity) {
	g.notifyMu.Lock()
	defer g.notifyMu.Unlock()

	g.mu.Lock()
	if g.restored && g.current.SameAs(identity) {
		g.mu.Unlock()
		return
	}
	g.current = copyIdentity(identity)
	g.restored = true
	listeners := make([]domain.SessionListener, 0, len(g.listeners))
	for _, l := range g.listeners {
		listeners = append(listeners, l)
	}
	g.mu.Unlock()

	for _, l := range listeners {
		l(copyIdentity(identity))
	}
}

func (g *KratosGateway) fail(span trace.Span, op string, err error, resp *http.Response) error {
	providerErr := classifyKratosError(err, resp)
	span.RecordError(err)
	span.SetStatus(codes.Error, op+" failed")
	g.logger.Debug("kratos call failed",
		"operation", op,
		"http_status", statusOf(resp),
		"code", providerErr.Code.String(),
		"error", err)
	return providerErr
}

func sessionResult(session kratos.Session, sessionToken string) (*domain.Identity, string, error) {
	if session.Identity == nil {
		return nil, "", domain.NewProviderError(domain.CodeUnknown, "", errors.New("kratos session has no identity"))
	}
	return identityFromSession(&session), sessionToken, nil
}

// identityFromSession maps the session identity. Sessions opened through an
// OIDC provider carry a provider-verified email.
func identityFromSession(session *kratos.Session) *domain.Identity {
	identity := identityFromKratos(session.Identity)
	for _, method := range session.AuthenticationMethods {
		if method.GetMethod() == "oidc" {
			identity.EmailVerified = true
			break
		}
	}
	return identity
}

// verificationStarted reports whether a registration response asks the client
// to show the verification UI, meaning the code was already sent.
func verificationStarted(items []kratos.ContinueWith) bool {
	for _, item := range items {
		if item.ContinueWithVerificationUi != nil {
			return true
		}
	}
	return false
}

// sessionGone reports whether Kratos rejected the session token itself.
func sessionGone(resp *http.Response) bool {
	if resp == nil {
		return false
	}
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		return true
	default:
		return false
	}
}

func statusOf(resp *http.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}

func identityFromKratos(ki *kratos.Identity) *domain.Identity {
	identity := &domain.Identity{ID: ki.Id}

	traits, _ := ki.Traits.(map[string]interface{})
	identity.Email = stringTrait(traits, "email")
	identity.PhotoURL = stringTrait(traits, "picture")
	identity.DisplayName = displayName(traits)

	for _, addr := range ki.VerifiableAddresses {
		if strings.EqualFold(addr.Value, identity.Email) && addr.Verified {
			identity.EmailVerified = true
			break
		}
	}
	return identity
}

func displayName(traits map[string]interface{}) string {
	switch name := traits["name"].(type) {
	case string:
		if name != "" {
			return name
		}
	case map[string]interface{}:
		full := strings.TrimSpace(stringTrait(name, "first") + " " + stringTrait(name, "last"))
		if full != "" {
			return full
		}
	}
	return stringTrait(traits, "username")
}

func stringTrait(traits map[string]interface{}, key string) string {
	if traits == nil {
		return ""
	}
	value, _ := traits[key].(string)
	return value
}

func copyIdentity(identity *domain.Identity) *domain.Identity {
	if identity == nil {
		return nil
	}
	copied := *identity
	return &copied
}
