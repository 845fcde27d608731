package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aiutodesk/desk/internal/identity"
	"github.com/aiutodesk/desk/internal/platform"
	"github.com/aiutodesk/desk/internal/session"
	"github.com/aiutodesk/desk/internal/tui"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage your session",
	Long: `Manage your AiutoDesk session.

The auth command provides subcommands for registering, logging in, logging
out, and checking current session status.

The access token is stored encrypted in the user config directory and
reused across invocations until it expires or the backend rejects it.

Examples:
  desk auth login --email user@example.com
  desk auth signup --email user@example.com --name "User" --tenant <id>
  desk auth status
  desk auth logout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login with email and password",
	Long: `Login to AiutoDesk with your email and password.

Missing fields are prompted for interactively when running in a terminal.
After logging in, the access token is saved locally and attached to every
subsequent request.

Examples:
  desk auth login --email user@example.com --password mypass
  desk auth login`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		input := tui.LoginInput{}
		input.Email, _ = cmd.Flags().GetString("email")
		input.Password, _ = cmd.Flags().GetString("password")

		if (input.Email == "" || input.Password == "") && tui.ShouldPrompt() {
			if err := tui.RunLoginForm(&input); err != nil {
				return err
			}
		}

		if err := app.session.Login(cmd.Context(), input.Email, input.Password); err != nil {
			return err
		}

		snap := app.session.Snapshot()
		fmt.Printf("Logged in as %s (%s)\n", snap.User.Name, snap.User.Email)
		return nil
	},
}

var authSignupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Register a new account",
	Long: `Register a new AiutoDesk account in an organization.

The organization is picked interactively from the known tenant list when
--tenant is not given. Registration does not log you in; run
'desk auth login' afterwards.

Examples:
  desk auth signup --name "Maria Souza" --email maria@empresa.com --tenant 6e976210-e9f5-4296-9087-bf1e6a8e320f
  desk auth signup`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		input := tui.SignupInput{}
		input.Name, _ = cmd.Flags().GetString("name")
		input.Email, _ = cmd.Flags().GetString("email")
		input.Password, _ = cmd.Flags().GetString("password")
		input.TenantID, _ = cmd.Flags().GetString("tenant")

		missing := input.Name == "" || input.Email == "" || input.Password == "" || input.TenantID == ""
		if missing && tui.ShouldPrompt() {
			tenants := app.tenants.List(cmd.Context())
			if err := tui.RunSignupForm(&input, tenants); err != nil {
				return err
			}
		}

		if _, err := app.tenants.Resolve(cmd.Context(), input.TenantID); err != nil {
			return err
		}

		user, err := app.session.Signup(cmd.Context(), platform.SignupRequest{
			Name:     input.Name,
			Email:    input.Email,
			Password: input.Password,
			TenantID: input.TenantID,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Account created for %s.\n", user.Email)
		fmt.Println()
		fmt.Println("Use 'desk auth login' to log in.")
		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Logout and remove the stored token",
	Long: `Logout and remove the locally stored access token.

You will need to login again to use authenticated commands.

Examples:
  desk auth logout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		if err := app.session.Logout(cmd.Context()); err != nil {
			return err
		}

		fmt.Println("Logged out successfully.")
		return nil
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current session status",
	Long: `Show the current session: who is logged in, the organization, and
the access token's expiry.

The stored token is verified against the backend; a rejected token is
removed and the session reported as logged out.

Examples:
  desk auth status`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		restoreErr := app.session.Restore(cmd.Context())
		snap := app.session.Snapshot()

		if snap.Status != session.StatusAuthenticated {
			fmt.Println("Not logged in.")
			fmt.Println()
			fmt.Println("Use 'desk auth login' to log in.")
			return restoreErr
		}

		fmt.Println("Logged in.")
		if snap.User != nil {
			fmt.Printf("  User:         %s (%s)\n", snap.User.Name, snap.User.Email)
			if snap.User.Role != "" {
				fmt.Printf("  Role:         %s\n", snap.User.Role)
			}
			if snap.User.TenantID != "" {
				fmt.Printf("  Organization: %s\n", snap.User.TenantID)
			}
		}

		claims, err := identity.Inspect(snap.Token)
		if err != nil {
			app.logger.WithError(err).Debug("stored token is not inspectable")
			return nil
		}
		if !claims.ExpiresAt.IsZero() {
			fmt.Printf("  Token expiry: %s", claims.ExpiresAt.Local().Format("2006-01-02 15:04"))
			if claims.Expired() {
				fmt.Print("  (expired)")
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authSignupCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)

	authLoginCmd.Flags().String("email", "", "Email address")
	authLoginCmd.Flags().String("password", "", "Password")

	authSignupCmd.Flags().String("name", "", "Full name")
	authSignupCmd.Flags().String("email", "", "Email address")
	authSignupCmd.Flags().String("password", "", "Password")
	authSignupCmd.Flags().String("tenant", "", "Organization id (UUID)")

	rootCmd.AddCommand(authCmd)
}
