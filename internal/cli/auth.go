package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/goddivor/Orinu-hub/internal/domain"
	"github.com/goddivor/Orinu-hub/internal/usecase"
	"github.com/goddivor/Orinu-hub/utils/validator"

	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	Long: `Create an Orinu account with email and password.

A verification email is sent right away. The new account is mirrored to the
Orinu backend; a failed mirror is reported but does not undo the account.

Examples:
  orinu register --email nina@example.com --username nina --password-stdin`,
	Args: cobra.NoArgs,
	RunE: runRegister,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with email and password, or with Google",
	Long: `Sign in and keep the session for later commands.

Examples:
  orinu login --email nina@example.com --password-stdin
  orinu login --google`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored session",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Email verification commands",
}

var verifyResendCmd = &cobra.Command{
	Use:   "resend",
	Short: "Send the verification email again",
	Args:  cobra.NoArgs,
	RunE:  runVerifyResend,
}

func init() {
	rootCmd.AddCommand(registerCmd, loginCmd, logoutCmd, verifyCmd)
	verifyCmd.AddCommand(verifyResendCmd)

	registerCmd.Flags().String("email", "", "account email")
	registerCmd.Flags().String("username", "", "public username (2 to 32 characters)")
	registerCmd.Flags().String("password", "", "account password")
	registerCmd.Flags().Bool("password-stdin", false, "read the password from stdin")

	loginCmd.Flags().String("email", "", "account email")
	loginCmd.Flags().String("password", "", "account password")
	loginCmd.Flags().Bool("password-stdin", false, "read the password from stdin")
	loginCmd.Flags().Bool("google", false, "sign in with Google in the browser")
	loginCmd.MarkFlagsMutuallyExclusive("google", "email")
}

func runRegister(cmd *cobra.Command, args []string) error {
	email, _ := cmd.Flags().GetString("email")
	username, _ := cmd.Flags().GetString("username")
	password, err := readPassword(cmd)
	if err != nil {
		return err
	}

	in := usecase.RegisterInput{
		Email:    strings.TrimSpace(email),
		Password: password,
		Username: strings.TrimSpace(username),
	}
	if err := validator.New().Validate(in); err != nil {
		return domain.NewAuthError(domain.KindInvalidInput, err)
	}

	c, err := components()
	if err != nil {
		return err
	}

	result, err := c.AuthFlow.Register(commandContext(cmd), in)
	if err != nil {
		return err
	}

	printer.Success("%s", result.Message)
	reportSync(result.Sync)
	printer.PrintHints("register")
	return nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	google, _ := cmd.Flags().GetBool("google")

	c, err := components()
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)

	var result *domain.AuthResult
	if google {
		if !cfg.FederatedEnabled() {
			return domain.NewAuthError(domain.KindInvalidInput,
				fmt.Errorf("federated login requires oidc.client_id"))
		}
		printer.Info("Ouverture du navigateur pour la connexion Google...")
		result, err = c.AuthFlow.LoginWithFederatedProvider(ctx)
	} else {
		email, _ := cmd.Flags().GetString("email")
		password, perr := readPassword(cmd)
		if perr != nil {
			return perr
		}
		in := usecase.LoginInput{Email: strings.TrimSpace(email), Password: password}
		if verr := validator.New().Validate(in); verr != nil {
			return domain.NewAuthError(domain.KindInvalidInput, verr)
		}
		result, err = c.AuthFlow.LoginWithEmail(ctx, in)
	}
	if err != nil {
		return err
	}

	printer.Success("%s", result.Message)
	if result.Identity != nil {
		printer.Info("Connecté en tant que %s", printer.Bold(displayName(result.Identity)))
	}
	reportSync(result.Sync)
	printer.PrintHints("login")
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
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
	if !state.Authenticated() {
		printer.Info("%s", domain.MsgNotAuthenticated)
		return nil
	}

	if err := c.Session.Logout(ctx); err != nil {
		return err
	}
	printer.Success("%s", domain.MsgLoggedOut)
	printer.PrintHints("logout")
	return nil
}

func runVerifyResend(cmd *cobra.Command, args []string) error {
	c, err := components()
	if err != nil {
		return err
	}
	if err := c.AuthFlow.ResendVerificationEmail(commandContext(cmd)); err != nil {
		return err
	}
	printer.Success("%s", domain.MsgVerificationResent)
	return nil
}

// readPassword takes --password, or the first line of stdin with --password-stdin.
func readPassword(cmd *cobra.Command) (string, error) {
	fromStdin, _ := cmd.Flags().GetBool("password-stdin")
	if !fromStdin {
		password, _ := cmd.Flags().GetString("password")
		return password, nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", domain.NewAuthError(domain.KindInvalidInput, fmt.Errorf("read password from stdin: %w", err))
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// reportSync warns when the backend did not accept the identity.
func reportSync(sync domain.SyncResult) {
	if !sync.Attempted {
		return
	}
	if sync.Err != nil {
		log.Warn("backend sync failed", "username", sync.Username, "error", sync.Err)
		printer.Warning("%s", domain.MsgBackendSyncFailed)
		return
	}
	if sync.Username != "" {
		printer.Info("Profil synchronisé (%s)", sync.Username)
		return
	}
	printer.Info("Profil synchronisé")
}

func displayName(identity *domain.Identity) string {
	if identity.DisplayName != "" {
		return identity.DisplayName
	}
	return identity.Email
}
