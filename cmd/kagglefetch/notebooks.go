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
	notebooksKernels string
	notebooksExclude string
	notebooksOut     string
)

// notebooksCmd harvests kernel metadata and source
var notebooksCmd = &cobra.Command{
	Use:   "notebooks",
	Short: "Fetch notebooks for the kernels found in a listing directory",
	Long: `Pull every kernel found across the listing files in the given directory and
write two files per kernel: a metadata record and a runnable script. Notebook
kernels are converted to plain scripts; script kernels are written verbatim.

Kernels in other languages, with unknown types, or without usable source are
skipped for good. Remote hiccups (rate limits, server errors) leave the kernel
pending so the next run retries it.

The exclude file is the run's checkpoint and is rewritten after every handled
kernel; re-running resumes instead of starting over.`,
	Example: `  kagglefetch notebooks -k data/kernels -e data/notebooks.exclude.json -o data/notebooks`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNotebooks()
	},
}

func init() {
	rootCmd.AddCommand(notebooksCmd)

	notebooksCmd.Flags().StringVarP(&notebooksKernels, "kernels", "k", "", "directory with JSON files containing kernel refs")
	notebooksCmd.Flags().StringVarP(&notebooksExclude, "exclude", "e", "", "exclusion file, updated as kernels are processed")
	notebooksCmd.Flags().StringVarP(&notebooksOut, "out", "o", "", "output directory for notebooks")
	notebooksCmd.Flags().StringVar(&language, "language", "", "kernel language to accept (default python)")
	notebooksCmd.MarkFlagRequired("kernels")
	notebooksCmd.MarkFlagRequired("exclude")
	notebooksCmd.MarkFlagRequired("out")
}

func runNotebooks() error {
	cfg, err := loadConfig()
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		return err
	}

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	universe, err := harvest.CollectRefs(notebooksKernels)
	if err != nil {
		logger.WithError(err).Error("Failed to collect kernel refs")
		return err
	}

	job, err := harvest.NewNotebookJob(client, notebooksOut, cfg.Harvest.Language)
	if err != nil {
		return err
	}

	driver := harvest.NewDriver(checkpoint.NewStore(notebooksExclude))
	summary, err := driver.Run(universe, job)
	if err != nil {
		return fmt.Errorf("notebook harvest aborted: %w", err)
	}

	ui.PrintSuccess(fmt.Sprintf(
		"Done: %d notebooks written, %d skipped permanently, %d deferred to a later run",
		summary.Succeeded, summary.PermanentSkips, summary.TransientSkips))

	return nil
}
