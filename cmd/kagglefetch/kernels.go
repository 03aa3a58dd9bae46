package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"kagglefetch/pkg/checkpoint"
	"kagglefetch/pkg/harvest"
	"kagglefetch/pkg/logger"
	"kagglefetch/pkg/ui"
)

var (
	kernelsCompetitions string
	kernelsExclude      string
	kernelsOut          string
)

// kernelsCmd harvests per-competition kernel listings
var kernelsCmd = &cobra.Command{
	Use:   "kernels",
	Short: "Fetch kernel listings for a list of competitions",
	Long: `Fetch the kernel listing of every competition in the given file and write one
listing file per competition.

The exclude file is the run's checkpoint: every competition that has been
handled (listing fetched, or confirmed gone/forbidden) is appended to it and
the file is rewritten before the next competition starts. Re-running with the
same inputs only processes what is still pending.`,
	Example: `  # First run
  kagglefetch kernels -c data/competitions.json -e data/kernels.exclude.json -o data/kernels

  # Interrupted? Run the same command again to resume
  kagglefetch kernels -c data/competitions.json -e data/kernels.exclude.json -o data/kernels`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runKernels()
	},
}

func init() {
	rootCmd.AddCommand(kernelsCmd)

	kernelsCmd.Flags().StringVarP(&kernelsCompetitions, "competitions", "c", "", "JSON file with the list of competition refs")
	kernelsCmd.Flags().StringVarP(&kernelsExclude, "exclude", "e", "", "exclusion file, updated as competitions are processed")
	kernelsCmd.Flags().StringVarP(&kernelsOut, "out", "o", "", "output directory for listing files")
	kernelsCmd.MarkFlagRequired("competitions")
	kernelsCmd.MarkFlagRequired("exclude")
	kernelsCmd.MarkFlagRequired("out")
}

func runKernels() error {
	cfg, err := loadConfig()
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		return err
	}

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	universe, err := harvest.LoadRefs(kernelsCompetitions)
	if err != nil {
		logger.WithError(err).Error("Failed to load competitions file")
		return err
	}

	job, err := harvest.NewKernelListingJob(client, kernelsOut)
	if err != nil {
		return err
	}

	driver := harvest.NewDriver(checkpoint.NewStore(kernelsExclude))
	summary, err := driver.Run(universe, job)
	if err != nil {
		return fmt.Errorf("kernel harvest aborted: %w", err)
	}

	ui.PrintSuccess(fmt.Sprintf(
		"Done: %d listings fetched, %d skipped permanently, %d deferred to a later run",
		summary.Succeeded, summary.PermanentSkips, summary.TransientSkips))

	return nil
}
