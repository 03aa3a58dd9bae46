package harvest

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// refSeparatorToken replaces path separators when a ref becomes a filename.
// The triple-dollar token cannot collide with anything the catalog emits and
// matches the naming of listings produced by earlier tooling.
const refSeparatorToken = "$$$"

// EscapeRef turns a ref into a filesystem-safe filename fragment
func EscapeRef(ref string) string {
	return strings.ReplaceAll(ref, "/", refSeparatorToken)
}

// UnescapeRef reverses EscapeRef
func UnescapeRef(name string) string {
	return strings.ReplaceAll(name, refSeparatorToken, "/")
}

// writeJSONFile writes v as indented JSON via a temp file and atomic rename
func writeJSONFile(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}
	return writeFile(path, append(data, '\n'))
}

// writeTextFile writes text via a temp file and atomic rename
func writeTextFile(path string, text string) error {
	return writeFile(path, []byte(text))
}

func writeFile(path string, data []byte) error {
	tempPath := path + ".tmp"

	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tempPath, err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename %s: %w", tempPath, err)
	}

	return nil
}
