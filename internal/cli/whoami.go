package cli

import (
	"github.com/goddivor/Orinu-hub/internal/domain"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	Long: `Restore the stored session and show who is signed in.

Exits with status 4 when nobody is signed in.`,
	Args: cobra.NoArgs,
	RunE: runWhoami,
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print a bearer token for the Orinu backend",
	Long: `Print a short-lived token for the signed-in account.

Examples:
  curl -H "Authorization: Bearer $(orinu token)" http://localhost:5000/api/users/me`,
	Args: cobra.NoArgs,
	RunE: runToken,
}

// sessionView is the JSON shape of a session snapshot.
type sessionView struct {
	Status        string           `json:"status"`
	Authenticated bool             `json:"authenticated"`
	User          *domain.Identity `json:"user,omitempty"`
}

func newSessionView(state domain.SessionState) sessionView {
	return sessionView{
		Status:        state.Status.String(),
		Authenticated: state.Authenticated(),
		User:          state.Identity,
	}
}

func init() {
	rootCmd.AddCommand(whoamiCmd, tokenCmd)

	whoamiCmd.Flags().Bool("json", false, "output as JSON")
}

func runWhoami(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	c, err := components()
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)

	if err := c.Session.Start(ctx); err != nil {
		return err
	}
	state, err := c.Session.WaitReady(ctx)
	if err != nil {
		return err
	}

	if jsonOutput {
		if err := printer.JSON(newSessionView(state)); err != nil {
			return err
		}
	} else {
		printer.Info("Session: %s", printer.StatusBadge(state.Status.String()))
		if state.Authenticated() {
			printIdentity(state.Identity)
		}
	}

	if !state.Authenticated() {
		return domain.NewAuthError(domain.KindNotAuthenticated, nil)
	}
	printer.PrintHints("whoami")
	return nil
}

func printIdentity(identity *domain.Identity) {
	printer.Header("Compte")
	table := printer.NewTable("CHAMP", "VALEUR")
	table.AddRow("id", identity.ID)
	table.AddRow("email", identity.Email)
	if identity.DisplayName != "" {
		table.AddRow("nom", identity.DisplayName)
	}
	if identity.PhotoURL != "" {
		table.AddRow("photo", identity.PhotoURL)
	}
	verified := "non"
	if identity.EmailVerified {
		verified = "oui"
	}
	table.AddRow("email vérifié", verified)
	_ = table.Render()
}

func runToken(cmd *cobra.Command, args []string) error {
	c, err := components()
	if err != nil {
		return err
	}
	token, err := c.AuthFlow.CurrentToken(commandContext(cmd))
	if err != nil {
		return err
	}
	// Printed even in quiet mode so it can be captured by scripts.
	printer.Print("%s", token)
	return nil
}
