package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goddivor/Orinu-hub/config"
	"github.com/goddivor/Orinu-hub/internal/di"
	"github.com/goddivor/Orinu-hub/internal/infrastructure/tokenstore"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// fakeServices stands in for Kratos and the Orinu backend.
type fakeServices struct {
	kratos  *httptest.Server
	backend *httptest.Server

	verified    atomic.Bool
	syncStatus  atomic.Int32
	syncCalls   atomic.Int32
	logoutCalls atomic.Int32
	template    atomic.Value
}

// tokenizeAs returns the last template requested on whoami.
func (f *fakeServices) tokenizeAs() string {
	template, _ := f.template.Load().(string)
	return template
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func newFakeServices(t *testing.T) *fakeServices {
	t.Helper()
	f := &fakeServices{}
	f.verified.Store(true)
	f.syncStatus.Store(http.StatusOK)

	proof, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}).SignedString([]byte("test-signing-secret-with-32-bytes!"))
	require.NoError(t, err)

	now := time.Now().UTC()
	flow := func(id string) map[string]any {
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
	session := func() map[string]any {
		status := "pending"
		if f.verified.Load() {
			status = "completed"
		}
		return map[string]any{
			"id":     "sess-1",
			"active": true,
			"identity": map[string]any{
				"id":         "user-1",
				"schema_id":  "default",
				"schema_url": "http://kratos.local/schemas/default",
				"state":      "active",
				"traits":     map[string]any{"email": "nina@example.com", "username": "nina"},
				"verifiable_addresses": []any{map[string]any{
					"id":         "addr-1",
					"value":      "nina@example.com",
					"verified":   f.verified.Load(),
					"via":        "email",
					"status":     status,
					"created_at": now.Format(time.RFC3339),
					"updated_at": now.Format(time.RFC3339),
				}},
				"created_at": now.Format(time.RFC3339),
				"updated_at": now.Format(time.RFC3339),
			},
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /self-service/login/api", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, flow("flow-login"))
	})
	mux.HandleFunc("POST /self-service/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"session":       session(),
			"session_token": "ory_st_login",
		})
	})
	mux.HandleFunc("GET /sessions/whoami", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Session-Token") != "ory_st_login" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"error": map[string]any{"code": 401, "status": "Unauthorized"},
			})
			return
		}
		body := session()
		if template := r.URL.Query().Get("tokenize_as"); template != "" {
			f.template.Store(template)
			body["tokenized"] = proof
		}
		writeJSON(w, http.StatusOK, body)
	})
	mux.HandleFunc("DELETE /self-service/logout/api", func(w http.ResponseWriter, r *http.Request) {
		f.logoutCalls.Add(1)
		w.WriteHeader(http.StatusNoContent)
	})
	f.kratos = httptest.NewServer(mux)
	t.Cleanup(f.kratos.Close)

	f.backend = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.syncCalls.Add(1)
		writeJSON(w, int(f.syncStatus.Load()), map[string]any{})
	}))
	t.Cleanup(f.backend.Close)

	return f
}

func testConfig(kratosURL, backendURL string) *config.Config {
	return &config.Config{
		Kratos:  config.KratosConfig{PublicURL: kratosURL, TokenizeTemplate: "orinu_backend"},
		Backend: config.BackendConfig{APIURL: backendURL, SyncTimeout: 2 * time.Second},
		Auth: config.AuthConfig{
			ProviderTimeout:  2 * time.Second,
			FederatedTimeout: 2 * time.Second,
			CacheTTL:         time.Minute,
			SessionFile:      "unused",
		},
		OIDC: config.OIDCConfig{
			Provider:     "google",
			IssuerURL:    "http://127.0.0.1:1",
			ClientSecret: "shh",
			ListenAddr:   "127.0.0.1:0",
		},
		Server:  config.ServerConfig{Port: "8090", RateLimit: 1, RateBurst: 5},
		Logging: config.LoggingConfig{Level: "error", Format: "text"},
	}
}

// setupCLITest points the CLI at base and returns the session store shared by every run.
func setupCLITest(t *testing.T, base *config.Config) *tokenstore.MemoryStore {
	t.Helper()
	t.Setenv("OTEL_ENABLED", "false")

	store := tokenstore.NewMemoryStore()
	origLoad, origOpts := loadConfig, componentOptions
	loadConfig = func(string) (*config.Config, error) {
		copied := *base
		return &copied, nil
	}
	componentOptions = []di.Option{di.WithTokenStore(store)}
	t.Cleanup(func() {
		loadConfig, componentOptions = origLoad, origOpts
	})
	return store
}

type result struct {
	stdout string
	stderr string
	code   int
}

func (r result) combined() string {
	return r.stdout + r.stderr
}

// runCLI executes the root command with colors off and fresh flag values.
func runCLI(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--color", "never"}, args...))

	code := Execute(context.Background())
	return result{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}
