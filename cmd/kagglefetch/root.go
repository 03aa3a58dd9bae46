package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"kagglefetch/pkg/auth"
	"kagglefetch/pkg/config"
	"kagglefetch/pkg/kaggle"
	"kagglefetch/pkg/logger"
	"kagglefetch/pkg/ui"
)

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile string
	logLevel   string
	language   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kagglefetch",
	Short: "Incrementally harvest competitions, kernels, and notebooks from Kaggle",
	Long: `kagglefetch walks the Kaggle catalog level by level and materializes what it
finds as local files: a competitions list, per-competition kernel listings, and
per-kernel metadata plus runnable source.

Runs are resumable. The kernels and notebooks commands keep an exclusion file
up to date after every processed ref, so a run killed by rate limits or a crash
picks up where it left off instead of re-fetching finished work.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.kagglefetch.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	// Version template
	rootCmd.SetVersionTemplate(`kagglefetch {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	// Disable default completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// loadConfig loads configuration from all sources and initializes logging
func loadConfig() (*config.Config, error) {
	flags := make(map[string]interface{})
	if logLevel != "info" {
		flags["log-level"] = logLevel
	}
	if language != "" {
		flags["language"] = language
	}

	cfg, err := config.Load(configFile, flags)
	if err != nil {
		return nil, err
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		return nil, err
	}

	return cfg, nil
}

// newClient builds a Kaggle API client, resolving credentials through the
// credential manager when the configuration does not carry them.
func newClient(cfg *config.Config) (*kaggle.Client, error) {
	client := kaggle.NewClient(cfg, logger.GetLogger())

	if cfg.Kaggle.Username != "" && cfg.Kaggle.Key != "" {
		return client, nil
	}

	credManager, err := auth.NewManager()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize credential manager: %w", err)
	}

	creds, err := credManager.Retrieve()
	if err != nil {
		ui.PrintError("No Kaggle credentials found", "")
		fmt.Println("\nTo store credentials securely, run:")
		fmt.Println("  kagglefetch auth login")
		fmt.Println("\nAlternatively set environment variables:")
		fmt.Println("  export KAGGLE_USERNAME=your_username")
		fmt.Println("  export KAGGLE_KEY=your_api_key")
		return nil, fmt.Errorf("no Kaggle credentials found")
	}

	logger.WithField("username", creds.Username).Info("Using stored credentials")
	client.SetCredentials(creds.Username, creds.Key)

	return client, nil
}
