package harvest

import (
	"fmt"
	"os"
	"path/filepath"

	"kagglefetch/pkg/logger"
)

// KernelLister fetches the kernel refs submitted to a competition
type KernelLister interface {
	FetchKernelRefs(competitionRef string) ([]string, error)
}

// KernelListingJob processes one competition ref per attempt: it fetches the
// competition's kernel listing and persists it as a listing file. An empty
// listing writes nothing but still retires the competition.
type KernelListingJob struct {
	client KernelLister
	outDir string
	logger logger.Logger
}

// NewKernelListingJob creates the job and its output directory
func NewKernelListingJob(client KernelLister, outDir string) (*KernelListingJob, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	return &KernelListingJob{
		client: client,
		outDir: outDir,
		logger: logger.GetLogger(),
	}, nil
}

// Kind implements Job
func (j *KernelListingJob) Kind() string {
	return "competition"
}

// Process implements Job
func (j *KernelListingJob) Process(ref string) Outcome {
	kernelRefs, err := j.client.FetchKernelRefs(ref)
	if err != nil {
		return ClassifyFetchError(err)
	}

	if len(kernelRefs) == 0 {
		j.logger.DebugWithFields("Competition has no kernels", map[string]interface{}{
			"competition": ref,
		})
		return Succeeded()
	}

	path := filepath.Join(j.outDir, EscapeRef(ref)+".json")
	if err := writeJSONFile(path, kernelRefs); err != nil {
		// A local write failure says nothing about the item itself; leave the
		// ref pending rather than losing its listing for good.
		return TransientSkip(fmt.Sprintf("failed to write listing: %v", err))
	}

	j.logger.DebugWithFields("Kernel listing written", map[string]interface{}{
		"competition": ref,
		"kernels":     len(kernelRefs),
		"path":        path,
	})

	return Succeeded()
}
