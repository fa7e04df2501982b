package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/caresync/caresync/internal/api"
	"github.com/caresync/caresync/internal/auth"
	cserr "github.com/caresync/caresync/internal/errors"
	"github.com/caresync/caresync/internal/ux"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the CareSync session",
	Long: `Manage the CareSync session.

The auth command provides subcommands for registering, logging in,
logging out, and checking current authentication status.

The session token is stored in the state directory (default
$HOME/.caresync) and attached as a Bearer token to every request.

Examples:
  caresync auth register --email user@example.com --name "Ada Okafor"
  caresync auth login --email user@example.com
  caresync auth status
  caresync auth logout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the backend",
	Long: `Log in to the CareSync backend with your email and password.

Missing credentials are prompted for interactively. On success the
session token is persisted and used by every subsequent command.

Examples:
  caresync auth login --email user@example.com --password mypass
  caresync auth login`,
	RunE: runAuthLogin,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the local session",
	Long: `Log out and clear the local session.

The backend is notified best-effort; the local token, user record, and
per-user cache entries are removed regardless, so logout always leaves
you logged out.

Examples:
  caresync auth logout`,
	RunE: runAuthLogout,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current authentication status",
	RunE:  runAuthStatus,
}

var authRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new account",
	Long: `Register a new CareSync account.

Registration does not log you in; run 'caresync auth login' afterwards.

Examples:
  caresync auth register --email user@example.com --name "Ada Okafor" --role patient`,
	RunE: runAuthRegister,
}

var authVerifyEmailCmd = &cobra.Command{
	Use:   "verify-email [email]",
	Short: "Send or check an email verification",
	Long: `Send a verification mail for an address, or check whether it has
been verified.

Without an argument the current session's email is used.

Examples:
  caresync auth verify-email
  caresync auth verify-email user@example.com --check`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAuthVerifyEmail,
}

var verifyEmailCheck bool

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authRegisterCmd)
	authCmd.AddCommand(authVerifyEmailCmd)

	authLoginCmd.Flags().String("email", "", "email address")
	authLoginCmd.Flags().String("password", "", "password")

	authRegisterCmd.Flags().String("email", "", "email address")
	authRegisterCmd.Flags().String("password", "", "password")
	authRegisterCmd.Flags().String("name", "", "full name")
	authRegisterCmd.Flags().String("role", "patient", "account role: patient or doctor")

	authVerifyEmailCmd.Flags().BoolVar(&verifyEmailCheck, "check", false, "check verification state instead of sending")

	rootCmd.AddCommand(authCmd)
}

// requireAuth guards commands that only make sense with a session. The
// backend would reject them anyway; failing early gives a better message.
func requireAuth(a *app) error {
	if !a.session.IsAuthenticated() {
		return cserr.NewNotAuthenticatedError()
	}
	return nil
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	a := getApp()

	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	var err error
	if email == "" {
		if email, err = ux.PromptForString("Email", "user@example.com"); err != nil {
			return err
		}
	}
	if password == "" {
		if password, err = ux.PromptForPassword("Password"); err != nil {
			return err
		}
	}
	if email == "" || password == "" {
		return cserr.NewMissingCredentialsError()
	}

	result := a.session.Login(cmd.Context(), email, password)
	switch result.Reason {
	case auth.FailureNone:
	case auth.FailureInvalidInput:
		return cserr.NewInvalidEmailError(email)
	case auth.FailureRejected:
		return cserr.New(cserr.ErrCodeLoginRejected, result.Message).
			WithSuggestion("Check your email and password")
	case auth.FailureNetwork:
		return cserr.New(cserr.ErrCodeNetworkUnreachable, result.Message).
			WithSuggestion("Verify the API origin with CARESYNC_API_URL or the config file")
	}

	fmt.Println(a.styles.Success.Render("Logged in as " + email))
	return nil
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	a := getApp()

	if !a.session.IsAuthenticated() {
		fmt.Println(a.styles.Muted.Render("Not logged in."))
		return nil
	}

	a.session.Logout(cmd.Context())
	fmt.Println(a.styles.Success.Render("Logged out."))
	return nil
}

// statusReport is the machine-readable shape of 'auth status'.
type statusReport struct {
	State         string `json:"state"`
	Authenticated bool   `json:"authenticated"`
	Email         string `json:"email,omitempty"`
	Name          string `json:"name,omitempty"`
	Role          string `json:"role,omitempty"`
	TokenExpires  string `json:"token_expires,omitempty"`
	TokenExpired  bool   `json:"token_expired,omitempty"`
	Origin        string `json:"origin"`
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	a := getApp()

	report := statusReport{
		State:         a.session.State().String(),
		Authenticated: a.session.IsAuthenticated(),
		Origin:        a.client.BaseURL(),
	}
	if user, ok := a.session.CurrentUser(); ok {
		report.Email = user.Email()
		report.Name = user.Name()
		report.Role = user.Role()
	}
	if claims, ok := a.session.Claims(); ok && !claims.ExpiresAt.IsZero() {
		report.TokenExpires = claims.ExpiresAt.Format(time.RFC3339)
		report.TokenExpired = claims.Expired()
	}

	var text string
	if report.Authenticated {
		lines := a.styles.KV("Status", a.styles.Success.Render("authenticated")) + "\n"
		if report.Email != "" {
			lines += a.styles.KV("Email", report.Email) + "\n"
		}
		if report.Name != "" {
			lines += a.styles.KV("Name", report.Name) + "\n"
		}
		if report.Role != "" {
			lines += a.styles.KV("Role", report.Role) + "\n"
		}
		if report.TokenExpires != "" {
			expiry := report.TokenExpires
			if report.TokenExpired {
				expiry += " " + a.styles.Error.Render("(expired)")
			}
			lines += a.styles.KV("Token expires", expiry) + "\n"
		}
		lines += a.styles.KV("Origin", report.Origin) + "\n"
		text = lines
	} else {
		text = a.styles.KV("Status", a.styles.Muted.Render("not logged in")) + "\n" +
			a.styles.KV("Origin", report.Origin) + "\n"
	}

	return a.render(report, text)
}

func runAuthRegister(cmd *cobra.Command, args []string) error {
	a := getApp()

	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	name, _ := cmd.Flags().GetString("name")
	role, _ := cmd.Flags().GetString("role")

	var err error
	if email == "" {
		if email, err = ux.PromptForString("Email", "user@example.com"); err != nil {
			return err
		}
	}
	if name == "" {
		if name, err = ux.PromptForString("Full name", "Ada Okafor"); err != nil {
			return err
		}
	}
	if password == "" {
		if password, err = ux.PromptForPassword("Password"); err != nil {
			return err
		}
	}
	if email == "" || password == "" {
		return cserr.NewMissingCredentialsError()
	}

	userData := api.UserRecord{
		"email":    email,
		"password": password,
		"name":     name,
		"role":     role,
	}

	created, err := a.session.Signup(cmd.Context(), userData)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	fmt.Println(a.styles.Success.Render("Account created for " + email))
	if id := created.ID(); id != "" {
		fmt.Println(a.styles.KV("User ID", id))
	}
	fmt.Println(a.styles.Muted.Render("Run 'caresync auth login' to start a session."))
	return nil
}

func runAuthVerifyEmail(cmd *cobra.Command, args []string) error {
	a := getApp()

	var email string
	if len(args) > 0 {
		email = args[0]
	} else if user, ok := a.session.CurrentUser(); ok {
		email = user.Email()
	}
	if email == "" {
		return cserr.NewInvalidEmailError(email).
			WithSuggestion("Pass the address as an argument or log in first")
	}

	if verifyEmailCheck {
		verified, err := a.client.CheckEmailVerification(cmd.Context(), email)
		if err != nil {
			return fmt.Errorf("verification check failed: %w", err)
		}
		if verified {
			fmt.Println(a.styles.Verified.Render(email + " is verified"))
		} else {
			fmt.Println(a.styles.Muted.Render(email + " is not verified yet"))
		}
		return nil
	}

	if err := a.client.SendEmailVerification(cmd.Context(), email); err != nil {
		return fmt.Errorf("sending verification failed: %w", err)
	}
	fmt.Println(a.styles.Success.Render("Verification mail sent to " + email))
	return nil
}
