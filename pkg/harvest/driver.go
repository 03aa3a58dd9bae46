package harvest

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/google/uuid"

	"kagglefetch/pkg/checkpoint"
	"kagglefetch/pkg/logger"
)

// Job processes a single ref and classifies the outcome
type Job interface {
	// Kind names the kind of ref the job handles, e.g. "competition"
	Kind() string

	// Process fetches and persists one ref, returning exactly one outcome
	Process(ref string) Outcome
}

// Summary reports what a traversal run did
type Summary struct {
	Total          int
	Succeeded      int
	PermanentSkips int
	TransientSkips int
}

// Driver runs a traversal over a universe of refs, one ref at a time. Refs
// already present in the exclusion set are not attempted; refs retired by this
// run are flushed to the checkpoint store before the next ref begins, so an
// interrupted run loses at most the ref that was in flight.
type Driver struct {
	store  *checkpoint.Store
	out    io.Writer
	logger logger.Logger
	runID  string
}

// NewDriver creates a driver bound to a checkpoint store. Progress lines go
// to stdout.
func NewDriver(store *checkpoint.Store) *Driver {
	runID := uuid.NewString()
	return &Driver{
		store:  store,
		out:    os.Stdout,
		logger: logger.GetLogger().WithField("run_id", runID),
		runID:  runID,
	}
}

// SetOutput redirects progress lines, e.g. for tests
func (d *Driver) SetOutput(w io.Writer) {
	d.out = w
}

// Run processes every pending ref of the universe to exhaustion. Pending is
// the universe minus the persisted exclusion set; the total shown in progress
// lines is computed once, before the first ref. The only error this returns
// is a failed checkpoint save, since that would break the resumability
// guarantee.
func (d *Driver) Run(universe []string, job Job) (*Summary, error) {
	exclusions := d.store.Load()

	seen := make(map[string]struct{}, len(universe))
	pending := make([]string, 0, len(universe))
	for _, ref := range universe {
		if _, dup := seen[ref]; dup {
			continue
		}
		seen[ref] = struct{}{}
		if !exclusions.Contains(ref) {
			pending = append(pending, ref)
		}
	}
	sort.Strings(pending)

	total := len(pending)
	log := d.logger.WithFields(map[string]interface{}{
		"kind":     job.Kind(),
		"universe": len(seen),
		"excluded": exclusions.Len(),
		"pending":  total,
	})
	log.Info("Starting traversal")

	summary := &Summary{Total: total}

	for index, ref := range pending {
		fmt.Fprintf(d.out, "Working on %s %s (%d/%d)\n", job.Kind(), ref, index+1, total)

		outcome := job.Process(ref)

		switch outcome.Status {
		case StatusSuccess:
			summary.Succeeded++
		case StatusPermanentSkip:
			summary.PermanentSkips++
			fmt.Fprintf(d.out, "Skipping %s (%s)\n", ref, outcome.Reason)
		case StatusTransientSkip:
			summary.TransientSkips++
			fmt.Fprintf(d.out, "Skipping %s for now (%s)\n", ref, outcome.Reason)
			log.WarnWithFields("Transient failure, ref stays pending for a future run", map[string]interface{}{
				"ref":    ref,
				"reason": outcome.Reason,
			})
			continue
		}

		// Success and permanent skips retire the ref; flush immediately so a
		// crash never repeats work that already completed.
		exclusions.Add(ref)
		if err := d.store.Save(exclusions); err != nil {
			log.WithError(err).Error("Failed to save checkpoint, aborting run")
			return summary, fmt.Errorf("failed to save checkpoint: %w", err)
		}
	}

	log.InfoWithFields("Traversal finished", map[string]interface{}{
		"succeeded":       summary.Succeeded,
		"permanent_skips": summary.PermanentSkips,
		"transient_skips": summary.TransientSkips,
	})

	return summary, nil
}
