package checkpoint

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"kagglefetch/pkg/logger"
)

// Set is an in-memory exclusion set of catalog refs. Refs are only ever added;
// a ref, once retired, stays retired for the rest of the run and all later runs.
type Set struct {
	refs map[string]struct{}
}

// NewSet creates an empty exclusion set
func NewSet() *Set {
	return &Set{refs: make(map[string]struct{})}
}

// Add marks a ref as retired
func (s *Set) Add(ref string) {
	s.refs[ref] = struct{}{}
}

// Contains reports whether a ref has been retired
func (s *Set) Contains(ref string) bool {
	_, ok := s.refs[ref]
	return ok
}

// Len returns the number of retired refs
func (s *Set) Len() int {
	return len(s.refs)
}

// Refs returns the retired refs in sorted order
func (s *Set) Refs() []string {
	out := make([]string, 0, len(s.refs))
	for ref := range s.refs {
		out = append(out, ref)
	}
	sort.Strings(out)
	return out
}

// Store persists an exclusion set to a single JSON file. The file holds a
// plain list of refs, so exclusion files written by earlier tooling load as-is.
type Store struct {
	path   string
	logger logger.Logger
}

// NewStore creates a store bound to the given file path
func NewStore(path string) *Store {
	return &Store{
		path:   path,
		logger: logger.GetLogger(),
	}
}

// Path returns the backing file path
func (s *Store) Path() string {
	return s.path
}

// Load reads the exclusion set from disk. A missing, empty, or unparseable
// file yields an empty set: the run then simply covers the full universe.
func (s *Store) Load() *Set {
	set := NewSet()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.WarnWithFields("could not read exclusion file, starting empty", map[string]interface{}{
				"path":  s.path,
				"error": err.Error(),
			})
		}
		return set
	}

	var refs []string
	if err := json.Unmarshal(data, &refs); err != nil {
		s.logger.WarnWithFields("could not parse exclusion file, starting empty", map[string]interface{}{
			"path":  s.path,
			"error": err.Error(),
		})
		return set
	}

	for _, ref := range refs {
		set.Add(ref)
	}

	s.logger.DebugWithFields("exclusion set loaded", map[string]interface{}{
		"path":  s.path,
		"count": set.Len(),
	})

	return set
}

// Save rewrites the backing file with the complete current set. The write goes
// to a temp file first and is moved into place with an atomic rename, so an
// interrupted save never truncates the previous complete state.
func (s *Store) Save(set *Set) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create checkpoint directory: %w", err)
		}
	}

	tempPath := s.path + ".tmp"
	file, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("failed to create temporary checkpoint file: %w", err)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "    ")
	if err := encoder.Encode(set.Refs()); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to encode exclusion set: %w", err)
	}

	// Ensure data is on disk before the rename makes it visible
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to sync checkpoint file: %w", err)
	}

	if err := file.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close checkpoint file: %w", err)
	}

	if err := os.Rename(tempPath, s.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to replace checkpoint file: %w", err)
	}

	return nil
}
