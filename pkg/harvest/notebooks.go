package harvest

import (
	"fmt"
	"os"
	"path/filepath"

	"kagglefetch/pkg/kaggle"
	"kagglefetch/pkg/logger"
	"kagglefetch/pkg/notebook"
)

// NotebookPuller pulls one kernel's metadata and source blob
type NotebookPuller interface {
	FetchNotebook(kernelRef string) (*kaggle.PullResponse, error)
}

// NotebookJob processes one kernel ref per attempt: it pulls the kernel,
// checks that the content has the shape the archive accepts, and persists a
// metadata file plus a runnable script. Content-shape problems are ground
// truth about the kernel and retire it permanently.
type NotebookJob struct {
	client   NotebookPuller
	outDir   string
	language string
	logger   logger.Logger
}

// NewNotebookJob creates the job and its output directory. Only kernels whose
// metadata language equals language are accepted.
func NewNotebookJob(client NotebookPuller, outDir, language string) (*NotebookJob, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	return &NotebookJob{
		client:   client,
		outDir:   outDir,
		language: language,
		logger:   logger.GetLogger(),
	}, nil
}

// Kind implements Job
func (j *NotebookJob) Kind() string {
	return "kernel"
}

// Process implements Job
func (j *NotebookJob) Process(ref string) Outcome {
	response, err := j.client.FetchNotebook(ref)
	if err != nil {
		return ClassifyFetchError(err)
	}

	metadata := response.Metadata
	if metadata == nil {
		return PermanentSkip("missing metadata")
	}
	if metadata.Language != j.language {
		return PermanentSkip(fmt.Sprintf("unsupported language: %s", metadata.Language))
	}
	if metadata.KernelType != kaggle.KernelTypeScript && metadata.KernelType != kaggle.KernelTypeNotebook {
		return PermanentSkip(fmt.Sprintf("unsupported kernel type: %s", metadata.KernelType))
	}
	if response.Blob == nil || response.Blob.Source == nil {
		return PermanentSkip("missing source")
	}

	script := *response.Blob.Source
	if metadata.KernelType == kaggle.KernelTypeNotebook {
		doc, err := notebook.Parse(script)
		if err != nil {
			j.logger.DebugWithFields("Notebook failed to parse", map[string]interface{}{
				"kernel": ref,
				"error":  err.Error(),
			})
			return PermanentSkip("invalid notebook")
		}

		script, err = notebook.Convert(doc)
		if err != nil {
			return PermanentSkip("invalid notebook")
		}
	}

	base := EscapeRef(ref)

	if err := writeJSONFile(filepath.Join(j.outDir, base+".meta.json"), metadata); err != nil {
		return TransientSkip(fmt.Sprintf("failed to write metadata: %v", err))
	}
	if err := writeTextFile(filepath.Join(j.outDir, base+".py"), script); err != nil {
		return TransientSkip(fmt.Sprintf("failed to write source: %v", err))
	}

	j.logger.DebugWithFields("Notebook written", map[string]interface{}{
		"kernel":      ref,
		"kernel_type": metadata.KernelType,
	})

	return Succeeded()
}
