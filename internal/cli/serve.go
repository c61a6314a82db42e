package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/goddivor/Orinu-hub/internal/adapter/handler"
	"github.com/goddivor/Orinu-hub/internal/di"
	appmiddleware "github.com/goddivor/Orinu-hub/middleware"
	"github.com/goddivor/Orinu-hub/utils/logger"
	"github.com/goddivor/Orinu-hub/utils/validator"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the auth flow and catalog over HTTP",
	Long: `Run the JSON API used by the Orinu web front end.

The server holds one session, restored from the session file at startup.

Examples:
  orinu serve
  orinu serve --port 9000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Probe the /health endpoint of a local server",
	Long:  `Exit 0 when a local "orinu serve" answers /health with 200. Meant for container health checks.`,
	Args:  cobra.NoArgs,
	RunE:  runHealthcheck,
}

func init() {
	rootCmd.AddCommand(serveCmd, healthcheckCmd)

	serveCmd.Flags().String("port", "", "listen port (overrides server.port)")
	healthcheckCmd.Flags().String("port", "", "server port (defaults to server.port)")
	healthcheckCmd.Flags().Duration("timeout", 2*time.Second, "request timeout")
}

// newServer builds the HTTP API. The returned limiter must be closed by the caller.
func newServer(c *di.ApplicationComponents) (*echo.Echo, *appmiddleware.RateLimiter) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validator.New()

	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ec echo.Context) error {
			id := ec.Response().Header().Get(echo.HeaderXRequestID)
			ctx := logger.WithRequestID(ec.Request().Context(), id)
			ec.SetRequest(ec.Request().WithContext(ctx))
			return next(ec)
		}
	})
	e.Use(appmiddleware.SecurityHeaders())

	if telemetry.Enabled {
		e.Use(otelecho.Middleware(telemetry.ServiceName))
		e.Use(appmiddleware.OTelStatusMiddleware())
	}

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(ec echo.Context) bool {
			return ec.Request().URL.Path == "/health"
		},
		LogStatus:   true,
		LogURI:      true,
		LogError:    true,
		LogMethod:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(ec echo.Context, v middleware.RequestLoggerValues) error {
			rctx := ec.Request().Context()
			if v.Error == nil {
				c.Logger.InfoContext(rctx, "request completed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds())
			} else {
				c.Logger.ErrorContext(rctx, "request failed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds(),
					"error", v.Error.Error())
			}
			return nil
		},
	}))

	e.Use(middleware.Recover())

	authRL := appmiddleware.NewRateLimiter(rate.Limit(c.Config.Server.RateLimit), c.Config.Server.RateBurst)

	handler.RegisterRoutes(e, handler.Handlers{
		Auth:    handler.NewAuthHandler(c.AuthFlow),
		Session: handler.NewSessionHandler(c.Session),
		Orinu:   handler.NewOrinuHandler(c.CatalogUsecase),
		Health:  handler.NewHealthHandler(c.Session),
	}, authRL.Middleware(), appmiddleware.NoStore())

	return e, authRL
}

func runServe(cmd *cobra.Command, args []string) error {
	if port, _ := cmd.Flags().GetString("port"); port != "" {
		cfg.Server.Port = port
	}

	c, err := components()
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)

	if err := c.Session.Start(ctx); err != nil {
		return err
	}

	e, authRL := newServer(c)
	defer authRL.Close()

	address := fmt.Sprintf(":%s", cfg.Server.Port)
	c.Logger.InfoContext(ctx, "starting orinu server",
		"address", address,
		"kratos_url", cfg.Kratos.PublicURL,
		"backend_url", cfg.Backend.APIURL)
	printer.Info("Écoute sur %s", address)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := e.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		c.Logger.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		c.Logger.Error("shutdown error", "error", err)
		return err
	}

	c.Logger.Info("server exited properly")
	return nil
}

func runHealthcheck(cmd *cobra.Command, args []string) error {
	port, _ := cmd.Flags().GetString("port")
	if port == "" {
		port = cfg.Server.Port
	}
	timeout, _ := cmd.Flags().GetDuration("timeout")

	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(fmt.Sprintf("http://127.0.0.1:%s/health", port))
	if err != nil {
		return fmt.Errorf("healthcheck request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health endpoint returned status: %d", resp.StatusCode)
	}
	log.Debug("healthcheck passed", "port", port)
	printer.Success("healthy")
	return nil
}
