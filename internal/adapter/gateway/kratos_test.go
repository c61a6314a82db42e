package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goddivor/Orinu-hub/internal/domain"
	"github.com/goddivor/Orinu-hub/internal/infrastructure/cache"
	"github.com/goddivor/Orinu-hub/internal/infrastructure/tokenstore"
	"github.com/goddivor/Orinu-hub/internal/usecase"
	"github.com/goddivor/Orinu-hub/mocks"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func flowJSON(id string) map[string]any {
	now := time.Now().UTC()
	return map[string]any{
		"id":          id,
		"type":        "api",
		"state":       "choose_method",
		"issued_at":   now.Format(time.RFC3339),
		"expires_at":  now.Add(time.Hour).Format(time.RFC3339),
		"request_url": "http://kratos.local/self-service",
		"ui": map[string]any{
			"action": "http://kratos.local/self-service",
			"method": "POST",
			"nodes":  []any{},
		},
	}
}

func identityJSON(id, email string, verified bool) map[string]any {
	now := time.Now().UTC().Format(time.RFC3339)
	status := "pending"
	if verified {
		status = "completed"
	}
	return map[string]any{
		"id":         id,
		"schema_id":  "default",
		"schema_url": "http://kratos.local/schemas/default",
		"state":      "active",
		"traits": map[string]any{
			"email":    email,
			"username": "nina",
		},
		"verifiable_addresses": []any{
			map[string]any{
				"id":         "addr-" + id,
				"value":      email,
				"verified":   verified,
				"via":        "email",
				"status":     status,
				"created_at": now,
				"updated_at": now,
			},
		},
		"created_at": now,
		"updated_at": now,
	}
}

func sessionJSON(identity map[string]any) map[string]any {
	return map[string]any{
		"id":       "sess-1",
		"active":   true,
		"identity": identity,
	}
}

func uiErrorJSON(id int64, text string) map[string]any {
	return map[string]any{
		"ui": map[string]any{
			"messages": []any{
				map[string]any{"id": id, "text": text, "type": "error"},
			},
		},
	}
}

func signProof(t *testing.T, subject string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}).SignedString([]byte("test-signing-secret-with-32-bytes!"))
	require.NoError(t, err)
	return signed
}

// fakeKratos serves the subset of the Kratos public API the gateway uses.
type fakeKratos struct {
	t      *testing.T
	server *httptest.Server

	mu           sync.Mutex
	identity     map[string]any
	loginErr     func(w http.ResponseWriter)
	registerErr  func(w http.ResponseWriter)
	regToken     string
	regVerifies  bool
	authMethod   string
	whoamiStatus int
	proof        string
	whoamiCalls  atomic.Int32
	logoutCalls  atomic.Int32
	verifyCalls  atomic.Int32
	verifyBody   map[string]any
	registerBody map[string]any
}

// session renders the whoami body for the current identity. Callers hold f.mu.
func (f *fakeKratos) session() map[string]any {
	session := sessionJSON(f.identity)
	if f.authMethod != "" {
		session["authentication_methods"] = []any{
			map[string]any{"method": f.authMethod, "aal": "aal1"},
		}
	}
	return session
}

func newFakeKratos(t *testing.T) *fakeKratos {
	f := &fakeKratos{
		t:            t,
		identity:     identityJSON("user-1", "nina@example.com", true),
		regToken:     "ory_st_registered",
		whoamiStatus: http.StatusOK,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /self-service/registration/api", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, flowJSON("flow-reg"))
	})
	mux.HandleFunc("POST /self-service/registration", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "flow-reg", r.URL.Query().Get("flow"))
		f.mu.Lock()
		defer f.mu.Unlock()
		json.NewDecoder(r.Body).Decode(&f.registerBody)
		if f.registerErr != nil {
			f.registerErr(w)
			return
		}
		body := map[string]any{"identity": f.identity}
		if f.regToken != "" {
			body["session_token"] = f.regToken
			body["session"] = f.session()
		}
		if f.regVerifies {
			traits, _ := f.identity["traits"].(map[string]any)
			body["continue_with"] = []any{
				map[string]any{"action": "set_ory_session_token", "ory_session_token": f.regToken},
				map[string]any{
					"action": "show_verification_ui",
					"flow": map[string]any{
						"id":                 "flow-verify-reg",
						"verifiable_address": traits["email"],
					},
				},
			}
		}
		writeJSON(w, http.StatusOK, body)
	})
	mux.HandleFunc("GET /self-service/login/api", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, flowJSON("flow-login"))
	})
	mux.HandleFunc("POST /self-service/login", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "flow-login", r.URL.Query().Get("flow"))
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.loginErr != nil {
			f.loginErr(w)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"session":       f.session(),
			"session_token": "ory_st_login",
		})
	})
	mux.HandleFunc("GET /self-service/verification/api", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, flowJSON("flow-verify"))
	})
	mux.HandleFunc("POST /self-service/verification", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "flow-verify", r.URL.Query().Get("flow"))
		f.verifyCalls.Add(1)
		f.mu.Lock()
		json.NewDecoder(r.Body).Decode(&f.verifyBody)
		f.mu.Unlock()
		body := flowJSON("flow-verify")
		body["state"] = "sent_email"
		writeJSON(w, http.StatusOK, body)
	})
	mux.HandleFunc("GET /sessions/whoami", func(w http.ResponseWriter, r *http.Request) {
		f.whoamiCalls.Add(1)
		f.mu.Lock()
		defer f.mu.Unlock()
		if r.Header.Get("X-Session-Token") == "" || f.whoamiStatus == http.StatusUnauthorized {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"error": map[string]any{"code": 401, "status": "Unauthorized", "reason": "No valid session credentials found in the request."},
			})
			return
		}
		if f.whoamiStatus != http.StatusOK {
			writeJSON(w, f.whoamiStatus, map[string]any{})
			return
		}
		session := f.session()
		if r.URL.Query().Get("tokenize_as") != "" {
			session["tokenized"] = f.proof
		}
		writeJSON(w, http.StatusOK, session)
	})
	mux.HandleFunc("DELETE /self-service/logout/api", func(w http.ResponseWriter, r *http.Request) {
		f.logoutCalls.Add(1)
		w.WriteHeader(http.StatusNoContent)
	})

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeKratos) set(fn func(f *fakeKratos)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func newTestGateway(t *testing.T, f *fakeKratos, refresh time.Duration) (*KratosGateway, *tokenstore.MemoryStore) {
	t.Helper()
	store := tokenstore.NewMemoryStore()
	identities := cache.NewIdentityCache(time.Minute)
	t.Cleanup(identities.Close)

	gw := NewKratosGateway(KratosConfig{
		PublicURL:        f.server.URL,
		Timeout:          5 * time.Second,
		TokenizeTemplate: "orinu_backend",
		RefreshInterval:  refresh,
	}, store, identities, nil, testLogger())
	return gw, store
}

func TestKratosGateway_CreateAccount_Success(t *testing.T) {
	f := newFakeKratos(t)
	f.identity = identityJSON("user-1", "nina@example.com", false)
	gw, store := newTestGateway(t, f, 0)

	var notified []*domain.Identity
	unsubscribe := gw.SubscribeSession(func(identity *domain.Identity) {
		notified = append(notified, identity)
	})
	defer unsubscribe()

	identity, verificationSent, err := gw.CreateAccount(context.Background(), "nina@example.com", "secret-pass", "nina")
	require.NoError(t, err)
	assert.False(t, verificationSent)

	assert.Equal(t, "user-1", identity.ID)
	assert.Equal(t, "nina@example.com", identity.Email)
	assert.Equal(t, "nina", identity.DisplayName)
	assert.False(t, identity.EmailVerified)

	token, _ := store.Load()
	assert.Equal(t, "ory_st_registered", token)

	assert.Equal(t, "password", f.registerBody["method"])
	traits, _ := f.registerBody["traits"].(map[string]any)
	assert.Equal(t, "nina", traits["username"])

	require.Len(t, notified, 2)
	assert.Nil(t, notified[0])
	assert.Equal(t, "user-1", notified[1].ID)
}

func TestKratosGateway_CreateAccount_WithoutSessionHook(t *testing.T) {
	f := newFakeKratos(t)
	f.regToken = ""
	gw, store := newTestGateway(t, f, 0)

	identity, _, err := gw.CreateAccount(context.Background(), "nina@example.com", "secret-pass", "nina")
	require.NoError(t, err)
	assert.Equal(t, "user-1", identity.ID)

	token, _ := store.Load()
	assert.Equal(t, "ory_st_login", token)
}

func TestKratosGateway_CreateAccount_VerificationStartedByKratos(t *testing.T) {
	f := newFakeKratos(t)
	f.identity = identityJSON("user-1", "nina@example.com", false)
	f.regVerifies = true
	gw, _ := newTestGateway(t, f, 0)

	identity, verificationSent, err := gw.CreateAccount(context.Background(), "nina@example.com", "secret-pass", "nina")
	require.NoError(t, err)
	assert.True(t, verificationSent)
	assert.Equal(t, "user-1", identity.ID)
	assert.Equal(t, int32(0), f.verifyCalls.Load())
}

func TestAuthFlow_Register_SingleVerificationDispatch(t *testing.T) {
	tests := []struct {
		name           string
		kratosVerifies bool
		wantFlowCalls  int32
	}{
		{name: "registration triggers verification", kratosVerifies: true, wantFlowCalls: 0},
		{name: "verification requested separately", kratosVerifies: false, wantFlowCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeKratos(t)
			f.identity = identityJSON("user-1", "nina@example.com", false)
			f.regVerifies = tt.kratosVerifies
			f.proof = signProof(t, "user-1")
			gw, _ := newTestGateway(t, f, 0)

			syncer := NewBackendSyncClient("http://127.0.0.1:1", time.Second, testLogger())
			flow := usecase.NewAuthFlow(gw, syncer, usecase.AuthFlowConfig{SyncTimeout: 50 * time.Millisecond}, testLogger())

			result, err := flow.Register(context.Background(), usecase.RegisterInput{
				Email:    "nina@example.com",
				Password: "secret-pass",
				Username: "nina",
			})
			require.NoError(t, err)
			assert.Equal(t, domain.MsgRegistered, result.Message)

			dispatched := f.verifyCalls.Load()
			if tt.kratosVerifies {
				dispatched++
			}
			assert.Equal(t, int32(1), dispatched)
			assert.Equal(t, tt.wantFlowCalls, f.verifyCalls.Load())
		})
	}
}

func TestKratosGateway_CreateAccount_Rejected(t *testing.T) {
	tests := []struct {
		name     string
		respond  func(w http.ResponseWriter)
		wantCode domain.ProviderCode
	}{
		{
			name: "duplicate identifier",
			respond: func(w http.ResponseWriter) {
				writeJSON(w, http.StatusBadRequest, uiErrorJSON(4000007, "An account with the same identifier exists already."))
			},
			wantCode: domain.CodeEmailInUse,
		},
		{
			name: "password policy",
			respond: func(w http.ResponseWriter) {
				writeJSON(w, http.StatusBadRequest, uiErrorJSON(4000032, "The password must be at least 8 characters long."))
			},
			wantCode: domain.CodeWeakPassword,
		},
		{
			name: "field-level email format",
			respond: func(w http.ResponseWriter) {
				writeJSON(w, http.StatusBadRequest, map[string]any{
					"ui": map[string]any{
						"messages": []any{},
						"nodes": []any{
							map[string]any{"messages": []any{
								map[string]any{"id": 4000004, "text": "\"nina\" is not valid \"email\"", "type": "error"},
							}},
						},
					},
				})
			},
			wantCode: domain.CodeInvalidEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeKratos(t)
			f.registerErr = tt.respond
			gw, store := newTestGateway(t, f, 0)

			identity, verificationSent, err := gw.CreateAccount(context.Background(), "nina@example.com", "secret-pass", "nina")
			assert.Nil(t, identity)
			assert.False(t, verificationSent)

			var providerErr *domain.ProviderError
			require.True(t, errors.As(err, &providerErr))
			assert.Equal(t, tt.wantCode, providerErr.Code)

			token, _ := store.Load()
			assert.Empty(t, token)
		})
	}
}

func TestKratosGateway_SignInWithPassword_Errors(t *testing.T) {
	tests := []struct {
		name     string
		respond  func(w http.ResponseWriter)
		wantCode domain.ProviderCode
		wantText string
	}{
		{
			name: "invalid credentials for a known account",
			respond: func(w http.ResponseWriter) {
				writeJSON(w, http.StatusBadRequest, uiErrorJSON(4000006, "The provided credentials are invalid."))
			},
			wantCode: domain.CodeWrongPassword,
		},
		{
			name: "unknown account",
			respond: func(w http.ResponseWriter) {
				writeJSON(w, http.StatusBadRequest, uiErrorJSON(4000035, "This account does not exist or has not setup sign in with code."))
			},
			wantCode: domain.CodeUserNotFound,
		},
		{
			name: "address not verified",
			respond: func(w http.ResponseWriter) {
				writeJSON(w, http.StatusBadRequest, uiErrorJSON(4000010, "Account not active yet. Did you forget to verify your email address?"))
			},
			wantCode: domain.CodeEmailNotVerified,
		},
		{
			name: "rate limited",
			respond: func(w http.ResponseWriter) {
				writeJSON(w, http.StatusTooManyRequests, map[string]any{})
			},
			wantCode: domain.CodeTooManyRequests,
		},
		{
			name: "server error",
			respond: func(w http.ResponseWriter) {
				writeJSON(w, http.StatusBadGateway, map[string]any{})
			},
			wantCode: domain.CodeProviderUnavailable,
		},
		{
			name: "unmapped message keeps provider text",
			respond: func(w http.ResponseWriter) {
				writeJSON(w, http.StatusBadRequest, uiErrorJSON(4010001, "The login flow expired."))
			},
			wantCode: domain.CodeUnknown,
			wantText: "The login flow expired.",
		},
		{
			name: "generic error reason",
			respond: func(w http.ResponseWriter) {
				writeJSON(w, http.StatusBadRequest, map[string]any{
					"error": map[string]any{"code": 400, "reason": "Unable to decode body."},
				})
			},
			wantCode: domain.CodeUnknown,
			wantText: "Unable to decode body.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeKratos(t)
			f.loginErr = tt.respond
			gw, _ := newTestGateway(t, f, 0)

			identity, err := gw.SignInWithPassword(context.Background(), "nina@example.com", "secret-pass")
			assert.Nil(t, identity)

			var providerErr *domain.ProviderError
			require.True(t, errors.As(err, &providerErr))
			assert.Equal(t, tt.wantCode, providerErr.Code)
			if tt.wantText != "" {
				assert.Equal(t, tt.wantText, providerErr.Text)
			}
		})
	}
}

func TestKratosGateway_SignInWithPassword_Success(t *testing.T) {
	f := newFakeKratos(t)
	gw, store := newTestGateway(t, f, 0)

	identity, err := gw.SignInWithPassword(context.Background(), "nina@example.com", "secret-pass")
	require.NoError(t, err)
	assert.Equal(t, "user-1", identity.ID)
	assert.True(t, identity.EmailVerified)

	token, _ := store.Load()
	assert.Equal(t, "ory_st_login", token)
}

func TestKratosGateway_SignOut(t *testing.T) {
	f := newFakeKratos(t)
	gw, store := newTestGateway(t, f, 0)

	_, err := gw.SignInWithPassword(context.Background(), "nina@example.com", "secret-pass")
	require.NoError(t, err)

	var last *domain.Identity
	calls := 0
	unsubscribe := gw.SubscribeSession(func(identity *domain.Identity) {
		calls++
		last = identity
	})
	defer unsubscribe()
	require.Equal(t, 1, calls)
	require.NotNil(t, last)

	require.NoError(t, gw.SignOut(context.Background()))

	assert.Equal(t, int32(1), f.logoutCalls.Load())
	assert.Equal(t, 2, calls)
	assert.Nil(t, last)

	token, _ := store.Load()
	assert.Empty(t, token)

	current, err := gw.CurrentIdentity(context.Background())
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestKratosGateway_SignOut_WithoutSession(t *testing.T) {
	f := newFakeKratos(t)
	gw, _ := newTestGateway(t, f, 0)

	require.NoError(t, gw.SignOut(context.Background()))
	assert.Equal(t, int32(0), f.logoutCalls.Load())
}

func TestKratosGateway_SendVerificationEmail(t *testing.T) {
	f := newFakeKratos(t)
	gw, _ := newTestGateway(t, f, 0)

	err := gw.SendVerificationEmail(context.Background(), &domain.Identity{ID: "user-1", Email: "nina@example.com"})
	require.NoError(t, err)

	assert.Equal(t, "code", f.verifyBody["method"])
	assert.Equal(t, "nina@example.com", f.verifyBody["email"])

	err = gw.SendVerificationEmail(context.Background(), &domain.Identity{ID: "user-1"})
	var providerErr *domain.ProviderError
	require.True(t, errors.As(err, &providerErr))
	assert.Equal(t, domain.CodeInvalidEmail, providerErr.Code)
}

func TestKratosGateway_CurrentIdentity(t *testing.T) {
	t.Run("no stored token", func(t *testing.T) {
		f := newFakeKratos(t)
		gw, _ := newTestGateway(t, f, 0)

		identity, err := gw.CurrentIdentity(context.Background())
		require.NoError(t, err)
		assert.Nil(t, identity)
		assert.Equal(t, int32(0), f.whoamiCalls.Load())
	})

	t.Run("resolves once then serves from cache", func(t *testing.T) {
		f := newFakeKratos(t)
		gw, store := newTestGateway(t, f, 0)
		require.NoError(t, store.Save("ory_st_restored"))

		identity, err := gw.CurrentIdentity(context.Background())
		require.NoError(t, err)
		require.NotNil(t, identity)
		assert.Equal(t, "user-1", identity.ID)

		_, err = gw.CurrentIdentity(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int32(1), f.whoamiCalls.Load())
	})

	t.Run("password session keeps the address state", func(t *testing.T) {
		f := newFakeKratos(t)
		f.identity = identityJSON("user-1", "nina@example.com", false)
		f.authMethod = "password"
		gw, store := newTestGateway(t, f, 0)
		require.NoError(t, store.Save("ory_st_restored"))

		identity, err := gw.CurrentIdentity(context.Background())
		require.NoError(t, err)
		require.NotNil(t, identity)
		assert.False(t, identity.EmailVerified)
	})

	t.Run("restored federated session is verified", func(t *testing.T) {
		f := newFakeKratos(t)
		f.identity = identityJSON("user-1", "nina@example.com", false)
		f.authMethod = "oidc"
		gw, store := newTestGateway(t, f, 0)
		require.NoError(t, store.Save("ory_st_restored"))

		identity, err := gw.CurrentIdentity(context.Background())
		require.NoError(t, err)
		require.NotNil(t, identity)
		assert.True(t, identity.EmailVerified)
	})

	t.Run("expired session clears the token", func(t *testing.T) {
		f := newFakeKratos(t)
		f.whoamiStatus = http.StatusUnauthorized
		gw, store := newTestGateway(t, f, 0)
		require.NoError(t, store.Save("ory_st_expired"))

		identity, err := gw.CurrentIdentity(context.Background())
		require.NoError(t, err)
		assert.Nil(t, identity)

		token, _ := store.Load()
		assert.Empty(t, token)
	})

	t.Run("provider outage is an error", func(t *testing.T) {
		f := newFakeKratos(t)
		f.whoamiStatus = http.StatusServiceUnavailable
		gw, store := newTestGateway(t, f, 0)
		require.NoError(t, store.Save("ory_st_restored"))

		identity, err := gw.CurrentIdentity(context.Background())
		assert.Nil(t, identity)

		var providerErr *domain.ProviderError
		require.True(t, errors.As(err, &providerErr))
		assert.Equal(t, domain.CodeProviderUnavailable, providerErr.Code)
	})
}

func TestKratosGateway_ProofToken(t *testing.T) {
	identity := &domain.Identity{ID: "user-1", Email: "nina@example.com"}

	t.Run("tokenized session for the identity", func(t *testing.T) {
		f := newFakeKratos(t)
		f.proof = signProof(t, "user-1")
		gw, store := newTestGateway(t, f, 0)
		require.NoError(t, store.Save("ory_st_login"))

		proof, err := gw.ProofToken(context.Background(), identity)
		require.NoError(t, err)
		assert.Equal(t, f.proof, proof)
	})

	t.Run("token minted for someone else", func(t *testing.T) {
		f := newFakeKratos(t)
		f.proof = signProof(t, "user-2")
		gw, store := newTestGateway(t, f, 0)
		require.NoError(t, store.Save("ory_st_login"))

		proof, err := gw.ProofToken(context.Background(), identity)
		assert.Empty(t, proof)
		assert.Error(t, err)
	})

	t.Run("tokenizer not configured", func(t *testing.T) {
		f := newFakeKratos(t)
		gw, store := newTestGateway(t, f, 0)
		require.NoError(t, store.Save("ory_st_login"))

		proof, err := gw.ProofToken(context.Background(), identity)
		assert.Empty(t, proof)
		assert.Error(t, err)
	})

	t.Run("no session", func(t *testing.T) {
		f := newFakeKratos(t)
		gw, _ := newTestGateway(t, f, 0)

		proof, err := gw.ProofToken(context.Background(), identity)
		assert.Empty(t, proof)
		assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	})
}

func TestKratosGateway_SubscribeSession_RestoresStoredSession(t *testing.T) {
	f := newFakeKratos(t)
	gw, store := newTestGateway(t, f, 0)
	require.NoError(t, store.Save("ory_st_restored"))

	var got *domain.Identity
	unsubscribe := gw.SubscribeSession(func(identity *domain.Identity) { got = identity })
	defer unsubscribe()

	require.NotNil(t, got)
	assert.Equal(t, "user-1", got.ID)
}

func TestKratosGateway_SubscribeSession_Unsubscribe(t *testing.T) {
	f := newFakeKratos(t)
	gw, _ := newTestGateway(t, f, 0)

	calls := 0
	unsubscribe := gw.SubscribeSession(func(*domain.Identity) { calls++ })
	unsubscribe()
	unsubscribe()

	_, err := gw.SignInWithPassword(context.Background(), "nina@example.com", "secret-pass")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestKratosGateway_RefreshLoop_NotifiesVerification(t *testing.T) {
	f := newFakeKratos(t)
	f.identity = identityJSON("user-1", "nina@example.com", false)
	gw, store := newTestGateway(t, f, 20*time.Millisecond)
	require.NoError(t, store.Save("ory_st_login"))

	var mu sync.Mutex
	var last *domain.Identity
	unsubscribe := gw.SubscribeSession(func(identity *domain.Identity) {
		mu.Lock()
		last = identity
		mu.Unlock()
	})
	defer unsubscribe()

	mu.Lock()
	require.NotNil(t, last)
	assert.False(t, last.EmailVerified)
	mu.Unlock()

	f.set(func(f *fakeKratos) {
		f.identity = identityJSON("user-1", "nina@example.com", true)
	})

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return last != nil && last.EmailVerified
	}, 2*time.Second, 10*time.Millisecond)
}

func TestClassifyKratosError_Transport(t *testing.T) {
	err := classifyKratosError(context.DeadlineExceeded, nil)
	assert.Equal(t, domain.CodeProviderUnavailable, err.Code)

	err = classifyKratosError(errors.New("connection reset"), nil)
	assert.Equal(t, domain.CodeProviderUnavailable, err.Code)
}

func TestIdentityFromKratos_NameTraits(t *testing.T) {
	f := newFakeKratos(t)
	identity := identityJSON("user-1", "nina@example.com", true)
	identity["traits"] = map[string]any{
		"email":   "nina@example.com",
		"name":    map[string]any{"first": "Nina", "last": "K"},
		"picture": "https://example.com/nina.png",
	}
	f.identity = identity
	gw, _ := newTestGateway(t, f, 0)

	got, err := gw.SignInWithPassword(context.Background(), "nina@example.com", "secret-pass")
	require.NoError(t, err)
	assert.Equal(t, "Nina K", got.DisplayName)
	assert.Equal(t, "https://example.com/nina.png", got.PhotoURL)
}

func TestKratosGateway_SignInFederated(t *testing.T) {
	cred := &domain.FederatedCredential{
		Provider:    "google",
		IDToken:     "id-token",
		Nonce:       "nonce-1",
		Email:       "nina@example.com",
		DisplayName: "Nina K",
		PhotoURL:    "https://example.com/nina.png",
	}

	t.Run("existing account", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		popup := mocks.NewMockFederatedPopup(ctrl)
		popup.EXPECT().Open(gomock.Any()).Return(cred, nil)

		f := newFakeKratos(t)
		gw, store := newTestGateway(t, f, 0)
		gw.popup = popup

		identity, err := gw.SignInFederated(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "user-1", identity.ID)
		assert.Equal(t, "nina", identity.DisplayName)
		assert.Equal(t, "https://example.com/nina.png", identity.PhotoURL)

		token, _ := store.Load()
		assert.Equal(t, "ory_st_login", token)
	})

	t.Run("unknown account is registered", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		popup := mocks.NewMockFederatedPopup(ctrl)
		popup.EXPECT().Open(gomock.Any()).Return(cred, nil)

		f := newFakeKratos(t)
		f.loginErr = func(w http.ResponseWriter) {
			writeJSON(w, http.StatusBadRequest, uiErrorJSON(4000035, "This account does not exist."))
		}
		gw, store := newTestGateway(t, f, 0)
		gw.popup = popup

		identity, err := gw.SignInFederated(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "user-1", identity.ID)

		assert.Equal(t, "oidc", f.registerBody["method"])
		assert.Equal(t, "google", f.registerBody["provider"])
		assert.Equal(t, "id-token", f.registerBody["id_token"])
		traits, _ := f.registerBody["traits"].(map[string]any)
		assert.Equal(t, "Nina K", traits["username"])

		token, _ := store.Load()
		assert.Equal(t, "ory_st_registered", token)
	})

	t.Run("unverified provider address counts as verified", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		popup := mocks.NewMockFederatedPopup(ctrl)
		popup.EXPECT().Open(gomock.Any()).Return(cred, nil)

		f := newFakeKratos(t)
		f.identity = identityJSON("user-1", "nina@example.com", false)
		f.authMethod = "oidc"
		gw, _ := newTestGateway(t, f, 0)
		gw.popup = popup

		identity, err := gw.SignInFederated(context.Background())
		require.NoError(t, err)
		assert.True(t, identity.EmailVerified)

		// A fresh lookup of the same session keeps the verified state.
		gw.cache.Delete("ory_st_login")
		current, err := gw.CurrentIdentity(context.Background())
		require.NoError(t, err)
		require.NotNil(t, current)
		assert.True(t, current.EmailVerified)
	})

	t.Run("popup cancelled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		popup := mocks.NewMockFederatedPopup(ctrl)
		popup.EXPECT().Open(gomock.Any()).
			Return(nil, domain.NewProviderError(domain.CodePopupClosedByUser, "", nil))

		f := newFakeKratos(t)
		gw, _ := newTestGateway(t, f, 0)
		gw.popup = popup

		identity, err := gw.SignInFederated(context.Background())
		assert.Nil(t, identity)

		var providerErr *domain.ProviderError
		require.True(t, errors.As(err, &providerErr))
		assert.Equal(t, domain.CodePopupClosedByUser, providerErr.Code)
	})

	t.Run("not configured", func(t *testing.T) {
		f := newFakeKratos(t)
		gw, _ := newTestGateway(t, f, 0)

		_, err := gw.SignInFederated(context.Background())
		assert.Error(t, err)
	})
}
