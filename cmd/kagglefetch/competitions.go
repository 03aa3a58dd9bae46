package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"kagglefetch/pkg/logger"
	"kagglefetch/pkg/ui"
)

var competitionsOut string

// competitionsCmd fetches the flat list of competition refs
var competitionsCmd = &cobra.Command{
	Use:   "competitions",
	Short: "Fetch the list of competition refs",
	Long: `Fetch the refs of all listed competitions and write them as a JSON list.

The resulting file is the input for the kernels command.`,
	Example: `  # Write all competition refs to a file
  kagglefetch competitions -o data/competitions.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCompetitions()
	},
}

func init() {
	rootCmd.AddCommand(competitionsCmd)

	competitionsCmd.Flags().StringVarP(&competitionsOut, "out", "o", "", "output file for the competitions list")
	competitionsCmd.MarkFlagRequired("out")
}

func runCompetitions() error {
	cfg, err := loadConfig()
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		return err
	}

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	logger.Info("Fetching competition refs")

	refs, err := client.FetchCompetitionRefs()
	if err != nil {
		logger.WithError(err).Error("Failed to fetch competitions")
		return fmt.Errorf("failed to fetch competitions: %w", err)
	}

	if dir := filepath.Dir(competitionsOut); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(refs, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal competitions: %w", err)
	}
	if err := os.WriteFile(competitionsOut, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write competitions file: %w", err)
	}

	logger.WithFields(map[string]interface{}{
		"count": len(refs),
		"path":  competitionsOut,
	}).Info("Competitions written")
	ui.PrintSuccess(fmt.Sprintf("Wrote %d competition refs to %s", len(refs), competitionsOut))

	return nil
}
