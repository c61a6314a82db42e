package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/goddivor/Orinu-hub/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const syncUserPath = "/api/users/sync"

// syncUserRequest is the body of POST /api/users/sync.
type syncUserRequest struct {
	Username string `json:"username,omitempty"`
}

type backendErrorResponse struct {
	Message string `json:"message"`
}

// BackendSyncClient pushes the signed-in identity to the Orinu backend.
// Implements domain.BackendSyncer.
type BackendSyncClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ domain.BackendSyncer = (*BackendSyncClient)(nil)

// NewBackendSyncClient creates the backend sync client for apiURL.
func NewBackendSyncClient(apiURL string, timeout time.Duration, logger *slog.Logger) *BackendSyncClient {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &BackendSyncClient{
		baseURL:    strings.TrimRight(apiURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With("component", "backend_sync"),
	}
}

// SyncUser sends one sync request. There is no retry.
func (c *BackendSyncClient) SyncUser(ctx context.Context, token, username string) error {
	ctx, span := tracer.Start(ctx, "backend.SyncUser")
	defer span.End()

	payload, err := json.Marshal(syncUserRequest{Username: username})
	if err != nil {
		return fmt.Errorf("%w: marshal request: %w", domain.ErrBackendSync, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+syncUserPath, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: create request: %w", domain.ErrBackendSync, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return fmt.Errorf("%w: %w", domain.ErrBackendSync, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		io.Copy(io.Discard, resp.Body)
		c.logger.DebugContext(ctx, "user synced", "status", resp.StatusCode)
		return nil
	}

	message := http.StatusText(resp.StatusCode)
	body, readErr := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if readErr == nil && len(body) > 0 {
		var decoded backendErrorResponse
		if json.Unmarshal(body, &decoded) == nil && decoded.Message != "" {
			message = decoded.Message
		}
	}

	span.SetStatus(codes.Error, message)
	return fmt.Errorf("%w: status %d: %s", domain.ErrBackendSync, resp.StatusCode, message)
}
