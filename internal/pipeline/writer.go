package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
)

const outputPerm = 0o644

// WriteFileAtomic writes data to a temporary file in path's directory and
// renames it over path. Readers see either the previous file or the full
// new content; a failed or interrupted write leaves no partial output.
func WriteFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp output: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp output: %w", err)
	}
	if err := tmp.Chmod(outputPerm); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("chmod temp output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp output: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("persist output: %w", err)
	}
	return nil
}
