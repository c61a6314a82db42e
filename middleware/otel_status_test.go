package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func setupTestTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	original := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(original) })

	return recorder
}

func statusAttr(t *testing.T, span sdktrace.ReadOnlySpan) int64 {
	t.Helper()
	for _, attr := range span.Attributes() {
		if string(attr.Key) == "http.response.status_code" {
			return attr.Value.AsInt64()
		}
	}
	t.Fatal("http.response.status_code attribute not found")
	return 0
}

func runWithSpan(t *testing.T, handler echo.HandlerFunc) (*httptest.ResponseRecorder, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/session", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	ctx, span := otel.Tracer("test").Start(req.Context(), "test-span")
	c.SetRequest(req.WithContext(ctx))

	err := OTelStatusMiddleware()(handler)(c)
	span.End()
	return rec, err
}

func TestOTelStatusMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		handler    echo.HandlerFunc
		wantStatus int64
		wantCode   codes.Code
		wantErr    bool
	}{
		{
			name: "2xx leaves status unset",
			handler: func(c echo.Context) error {
				return c.String(http.StatusOK, "ok")
			},
			wantStatus: 200,
			wantCode:   codes.Unset,
		},
		{
			name: "4xx leaves status unset",
			handler: func(c echo.Context) error {
				return c.String(http.StatusUnauthorized, "unauthorized")
			},
			wantStatus: 401,
			wantCode:   codes.Unset,
		},
		{
			name: "uncommitted http error uses its code",
			handler: func(c echo.Context) error {
				return echo.NewHTTPError(http.StatusBadGateway, "sync failed")
			},
			wantStatus: 502,
			wantCode:   codes.Error,
			wantErr:    true,
		},
		{
			name: "5xx marks span as error",
			handler: func(c echo.Context) error {
				return c.String(http.StatusServiceUnavailable, "down")
			},
			wantStatus: 503,
			wantCode:   codes.Error,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := setupTestTracer(t)

			_, err := runWithSpan(t, tt.handler)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}

			spans := recorder.Ended()
			require.Len(t, spans, 1)
			assert.Equal(t, tt.wantCode, spans[0].Status().Code)
			assert.Equal(t, tt.wantStatus, statusAttr(t, spans[0]))
		})
	}
}

func TestOTelStatusMiddleware_RecordsError(t *testing.T) {
	recorder := setupTestTracer(t)
	testErr := errors.New("kratos connection failed")

	_, err := runWithSpan(t, func(c echo.Context) error {
		c.Response().WriteHeader(http.StatusInternalServerError)
		return testErr
	})
	assert.Equal(t, testErr, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)

	found := false
	for _, event := range spans[0].Events() {
		if event.Name == "exception" {
			found = true
		}
	}
	assert.True(t, found, "exception event not found in span")
}

func TestOTelStatusMiddleware_NoSpan(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := OTelStatusMiddleware()(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}
