// Package cli contains all commands of the orinu CLI.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/goddivor/Orinu-hub/config"
	"github.com/goddivor/Orinu-hub/internal/di"
	"github.com/goddivor/Orinu-hub/internal/output"
	"github.com/goddivor/Orinu-hub/utils/logger"
	"github.com/goddivor/Orinu-hub/utils/otel"

	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	verbose   bool
	quiet     bool
	colorMode string

	cfg          *config.Config
	log          *slog.Logger
	printer      *output.Printer
	comps        *di.ApplicationComponents
	otelShutdown otel.ShutdownFunc
	telemetry    otel.Config

	version = "dev"

	// Replaced in tests.
	loadConfig       = config.Load
	componentOptions []di.Option
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "orinu",
	Short: "Orinu comics platform client",
	Long: `orinu signs you in to the Orinu comics platform and browses its catalog.

Accounts live in the identity provider; every sign-in is mirrored to the
Orinu backend. The session is kept between invocations.

Example usage:
  orinu register --email nina@example.com --username nina --password-stdin
  orinu login --email nina@example.com --password-stdin
  orinu login --google
  orinu whoami
  orinu catalog landing --day friday
  orinu serve --port 8090`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
}

// Execute runs the CLI and returns the process exit code.
func Execute(ctx context.Context) int {
	printer = nil
	err := rootCmd.ExecuteContext(ctx)
	defer cleanup()
	if err == nil {
		return output.ExitSuccess
	}

	cliErr := output.FromError(err)
	p := printer
	if p == nil {
		p = output.NewPrinter(output.PrinterOptions{Out: rootCmd.OutOrStdout(), Err: rootCmd.ErrOrStderr()})
	}
	p.FormatError(cliErr)
	return cliErr.ExitCode
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./orinu.yaml or ~/.config/orinu/orinu.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "print only essential output")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "color output: auto, always or never")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &output.CLIError{
			Summary:    err.Error(),
			Suggestion: fmt.Sprintf("Lancez '%s --help'", cmd.CommandPath()),
			ExitCode:   output.ExitUsageError,
			Err:        err,
		}
	})
}

// initConfig loads configuration, then sets up logging, telemetry and output.
func initConfig(cmd *cobra.Command) error {
	mode, err := output.ParseColorMode(colorMode)
	if err != nil {
		return &output.CLIError{Summary: err.Error(), ExitCode: output.ExitUsageError, Err: err}
	}
	printer = output.NewPrinter(output.PrinterOptions{
		ColorMode: mode,
		Quiet:     quiet,
		Out:       cmd.OutOrStdout(),
		Err:       cmd.ErrOrStderr(),
	})

	cfg, err = loadConfig(cfgFile)
	if err != nil {
		return output.ConfigError(err)
	}

	telemetry = otel.ConfigFromEnv()
	telemetry.ServiceVersion = version
	otelShutdown, err = otel.InitProvider(cmd.Context(), telemetry)
	if err != nil {
		printer.Warning("telemetry disabled: %v", err)
		telemetry.Enabled = false
		otelShutdown = nil
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	log = logger.Init(logger.Options{
		Level:  level,
		Format: cfg.Logging.Format,
		OTel:   telemetry.Enabled,
		Output: cmd.ErrOrStderr(),
	})

	log.Debug("configuration loaded",
		"kratos_url", cfg.Kratos.PublicURL,
		"backend_url", cfg.Backend.APIURL,
		"session_file", cfg.Auth.SessionFile,
		"federated", cfg.FederatedEnabled())

	return nil
}

// components wires the application on first use.
func components() (*di.ApplicationComponents, error) {
	if comps != nil {
		return comps, nil
	}
	c, err := di.NewApplicationComponents(cfg, log, componentOptions...)
	if err != nil {
		return nil, err
	}
	comps = c
	return comps, nil
}

// commandContext tags ctx with the operation name for log correlation.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logger.WithOperation(ctx, cmd.CommandPath())
}

func cleanup() {
	if comps != nil {
		comps.Close()
		comps = nil
	}
	if otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otelShutdown(ctx); err != nil && log != nil {
			log.Warn("failed to shutdown OpenTelemetry", "error", err)
		}
		otelShutdown = nil
	}
}
