package harvest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"kagglefetch/pkg/logger"
)

// CollectRefs builds the kernel-level universe: the union of the ref lists
// found in every file of dir. A file that does not parse as a JSON list of
// strings is diagnosed and skipped; its refs reappear in a later run once the
// file is fixed.
func CollectRefs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read listing directory: %w", err)
	}

	log := logger.GetLogger()
	seen := make(map[string]struct{})

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			log.WarnWithFields("Could not read listing file", map[string]interface{}{
				"file":  entry.Name(),
				"error": err.Error(),
			})
			continue
		}

		var refs []string
		if err := json.Unmarshal(data, &refs); err != nil {
			log.WarnWithFields("Could not parse listing file", map[string]interface{}{
				"file":  entry.Name(),
				"error": err.Error(),
			})
			continue
		}

		for _, ref := range refs {
			seen[ref] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for ref := range seen {
		out = append(out, ref)
	}
	sort.Strings(out)

	return out, nil
}

// LoadRefs reads a single JSON file containing a list of refs, e.g. the
// competitions file feeding the kernels command.
func LoadRefs(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read refs file: %w", err)
	}

	var refs []string
	if err := json.Unmarshal(data, &refs); err != nil {
		return nil, fmt.Errorf("failed to parse refs file %s: %w", path, err)
	}

	return refs, nil
}
