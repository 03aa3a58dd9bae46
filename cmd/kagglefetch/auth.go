package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"kagglefetch/pkg/auth"
	"kagglefetch/pkg/ui"
)

// authCmd groups credential management subcommands
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage Kaggle API credentials",
	Long: `Manage the Kaggle API credentials used by the fetch commands.

Credentials are resolved in order from the system keychain, the kaggle.json
file written by the official Kaggle CLI, and the KAGGLE_USERNAME/KAGGLE_KEY
environment variables.`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store Kaggle API credentials",
	Long: `Prompt for a Kaggle username and API key and store them securely.

Create an API key at https://www.kaggle.com/settings under "API".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAuthLogin()
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which credentials would be used",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAuthStatus()
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove stored Kaggle API credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAuthLogout()
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authLogoutCmd)
}

func runAuthLogin() error {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Kaggle username: ")
	username, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}
	username = strings.TrimSpace(username)

	fmt.Print("Kaggle API key: ")
	keyBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read API key: %w", err)
	}
	key := strings.TrimSpace(string(keyBytes))

	credManager, err := auth.NewManager()
	if err != nil {
		return fmt.Errorf("failed to initialize credential manager: %w", err)
	}

	if err := credManager.Store(&auth.Credentials{Username: username, Key: key}); err != nil {
		ui.PrintError("Failed to store credentials", err.Error())
		return err
	}

	ui.PrintSuccess(fmt.Sprintf("Credentials stored for %s", username))
	return nil
}

func runAuthStatus() error {
	credManager, err := auth.NewManager()
	if err != nil {
		return fmt.Errorf("failed to initialize credential manager: %w", err)
	}

	creds, err := credManager.Retrieve()
	if err != nil {
		ui.PrintWarning("No credentials found")
		fmt.Println("Run 'kagglefetch auth login' to store credentials.")
		return nil
	}

	ui.PrintInfo("Username", creds.Username)
	ui.PrintInfo("API key", maskKey(creds.Key))
	return nil
}

func runAuthLogout() error {
	credManager, err := auth.NewManager()
	if err != nil {
		return fmt.Errorf("failed to initialize credential manager: %w", err)
	}

	if err := credManager.Delete(); err != nil {
		ui.PrintWarning("No stored credentials to remove")
		return nil
	}

	ui.PrintSuccess("Credentials removed")
	return nil
}

// maskKey hides all but the last four characters of an API key
func maskKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
