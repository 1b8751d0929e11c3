// Package adapter contains infrastructure adapters for the kinfmt CLI.
package adapter

import (
	"os"
	"path/filepath"

	m "kinfmt.dev/pkg/kinfmt/internal/model"
)

// StyleFSAdapter abstracts filesystem-specific operations that the domain layer
// relies on when resolving counterpart files and deriving style documents. It
// intentionally hides direct `os` access so the resolution logic can be tested
// without touching the disk.
type StyleFSAdapter interface {
	// FileExists reports whether path names an existing regular file.
	FileExists(path m.Path) bool

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// WriteFile writes content to a file with the given permissions.
	WriteFile(path m.Path, content []byte, perm os.FileMode) error

	// Remove deletes a single file.
	Remove(path m.Path) error

	// RelPath returns the relative path from base to target.
	RelPath(base, target m.Path) (m.Path, error)

	// Abs returns the absolute form of path.
	Abs(path m.Path) (m.Path, error)

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path
}

// LocalStyleFSAdapter is the concrete implementation backed by the os package.
type LocalStyleFSAdapter struct{}

// NewLocalStyleFSAdapter constructs a LocalStyleFSAdapter instance ready to
// be wired into the workflow.
func NewLocalStyleFSAdapter() *LocalStyleFSAdapter {
	return &LocalStyleFSAdapter{}
}

// FileExists reports whether path names an existing regular file.
func (a *LocalStyleFSAdapter) FileExists(path m.Path) bool {
	info, err := os.Stat(string(path))
	if err != nil {
		return false
	}

	return info.Mode().IsRegular()
}

// ReadFile loads file contents from disk.
func (a *LocalStyleFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// WriteFile writes content to a file with the given permissions.
func (a *LocalStyleFSAdapter) WriteFile(path m.Path, content []byte, perm os.FileMode) error {
	return os.WriteFile(string(path), content, perm)
}

// Remove deletes a single file.
func (a *LocalStyleFSAdapter) Remove(path m.Path) error {
	return os.Remove(string(path))
}

// RelPath returns the relative path from base to target.
func (a *LocalStyleFSAdapter) RelPath(base, target m.Path) (m.Path, error) {
	rel, err := filepath.Rel(string(base), string(target))
	if err != nil {
		return "", err
	}

	return m.Path(rel), nil
}

// Abs returns the absolute form of path.
func (a *LocalStyleFSAdapter) Abs(path m.Path) (m.Path, error) {
	abs, err := filepath.Abs(string(path))
	if err != nil {
		return "", err
	}

	return m.Path(abs), nil
}

// JoinPath joins path elements into a single path.
func (a *LocalStyleFSAdapter) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}
