package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Display the configuration after merging orinu.yaml, .env and ORINU_* variables.
The OIDC client secret is never printed.

Examples:
  orinu config
  orinu config --json`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().Bool("json", false, "output as JSON")
}

type configEntry struct {
	key   string
	value any
}

func configEntries() []configEntry {
	secret := ""
	if cfg.OIDC.ClientSecret != "" {
		secret = "********"
	}
	return []configEntry{
		{"kratos.public_url", cfg.Kratos.PublicURL},
		{"kratos.tokenize_template", cfg.Kratos.TokenizeTemplate},
		{"backend.api_url", cfg.Backend.APIURL},
		{"backend.sync_timeout", cfg.Backend.SyncTimeout.String()},
		{"auth.provider_timeout", cfg.Auth.ProviderTimeout.String()},
		{"auth.federated_timeout", cfg.Auth.FederatedTimeout.String()},
		{"auth.refresh_interval", cfg.Auth.RefreshInterval.String()},
		{"auth.cache_ttl", cfg.Auth.CacheTTL.String()},
		{"auth.session_file", cfg.Auth.SessionFile},
		{"oidc.provider", cfg.OIDC.Provider},
		{"oidc.issuer_url", cfg.OIDC.IssuerURL},
		{"oidc.client_id", cfg.OIDC.ClientID},
		{"oidc.client_secret", secret},
		{"oidc.scopes", cfg.OIDC.Scopes},
		{"oidc.listen_addr", cfg.OIDC.ListenAddr},
		{"server.port", cfg.Server.Port},
		{"server.rate_limit", cfg.Server.RateLimit},
		{"server.rate_burst", cfg.Server.RateBurst},
		{"logging.level", cfg.Logging.Level},
		{"logging.format", cfg.Logging.Format},
	}
}

func runConfig(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	entries := configEntries()

	if jsonOutput {
		out := make(map[string]any, len(entries))
		for _, e := range entries {
			out[e.key] = e.value
		}
		return printer.JSON(out)
	}

	printer.Header("Configuration")
	table := printer.NewTable("KEY", "VALUE")
	for _, e := range entries {
		value := fmt.Sprint(e.value)
		if scopes, ok := e.value.([]string); ok {
			value = strings.Join(scopes, " ")
		}
		table.AddRow(e.key, value)
	}
	if err := table.Render(); err != nil {
		return err
	}

	if !cfg.FederatedEnabled() {
		printer.Print("")
		printer.Info("Connexion Google désactivée (oidc.client_id vide)")
	}
	return nil
}
