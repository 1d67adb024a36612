package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/royreznik/linear-cli/internal/linear"
	"github.com/royreznik/linear-cli/internal/ui"
)

var (
	loginEmail    string
	loginPassword string
	loginAPIKey   string
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to Linear",
	Long: `Log in to Linear.

You can log in using either:
  - Email and password (prompted for when not provided)
  - An API key (--api-key; email and password are then ignored)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := apiContext()
		defer cancel()

		var user *linear.User
		if loginAPIKey != "" {
			u, err := authSvc.LoginWithAPIKey(ctx, loginAPIKey)
			if err != nil {
				return err
			}
			user = u
		} else {
			email, password, err := credentials(loginEmail, loginPassword)
			if err != nil {
				return err
			}
			u, err := authSvc.LoginWithPassword(ctx, email, password)
			if err != nil {
				return err
			}
			user = u
		}

		fmt.Println(ui.PassStyle.Render(fmt.Sprintf("Logged in as %s (%s)", user.Name, user.Email)))
		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out from Linear",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := authSvc.Logout(); err != nil {
			return err
		}
		fmt.Println(ui.PassStyle.Render("Logged out successfully"))
		return nil
	},
}

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Show your Linear profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := apiContext()
		defer cancel()

		user, err := authSvc.CurrentUser(ctx)
		if err != nil {
			return err
		}

		table := ui.NewTable("Profile for "+user.Name, "Field", "Value")
		table.AddRow("ID", user.ID)
		table.AddRow("Name", user.Name)
		table.AddRow("Email", user.Email)
		if user.DisplayName != "" {
			table.AddRow("Display Name", user.DisplayName)
		}
		if user.Active {
			table.AddRow("Active", "Yes")
		} else {
			table.AddRow("Active", "No")
		}
		table.AddRow("Created At", user.CreatedAt)
		table.Render(os.Stdout)
		return nil
	},
}

// credentials fills in missing login credentials from the terminal: email
// is read echoed, the password is not.
func credentials(email, password string) (string, string, error) {
	if email == "" {
		fmt.Print("Email: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", "", fmt.Errorf("reading email: %w", err)
		}
		email = strings.TrimSpace(line)
	}

	if password == "" {
		fmt.Print("Password: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return "", "", fmt.Errorf("reading password: %w", err)
		}
		password = string(raw)
	}

	if email == "" || password == "" {
		return "", "", fmt.Errorf("email and password are required")
	}
	return email, password, nil
}

func init() {
	authLoginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "your Linear email")
	authLoginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "your Linear password")
	authLoginCmd.Flags().StringVarP(&loginAPIKey, "api-key", "k", "", "your Linear API key")

	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(meCmd)
}
