// Package adapter contains infrastructure adapters for the tagsweep CLI.
package adapter

import (
	"io/fs"
	"os"
	"path/filepath"

	m "tagsweep.dev/pkg/tagsweep/internal/model"
)

// SourceFSAdapter abstracts filesystem-specific operations that the domain
// layer relies on when scanning source trees. It intentionally hides direct
// `os` access so the extraction and matching logic can be tested against
// synthetic trees.
type SourceFSAdapter interface {
	// WalkFiles traverses the provided root and invokes fn for every
	// regular file, in lexicographic order. Directories are not reported.
	WalkFiles(root m.Path, fn func(path m.Path) error) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// AbsPath resolves path to an absolute, cleaned form.
	AbsPath(path m.Path) (m.Path, error)

	// RelPath returns the relative path from base to target.
	RelPath(base, target m.Path) (m.Path, error)

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path
}

// LocalSourceFSAdapter is the concrete implementation backed by the local
// filesystem.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter ready to be
// wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// WalkFiles iterates over regular files under root. filepath.WalkDir visits
// entries in lexical order, which keeps the inventory deterministic.
func (a *LocalSourceFSAdapter) WalkFiles(root m.Path, fn func(path m.Path) error) error {
	return filepath.WalkDir(string(root), func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() {
			return nil
		}

		return fn(m.Path(path))
	})
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// AbsPath resolves path to an absolute, cleaned form.
func (a *LocalSourceFSAdapter) AbsPath(path m.Path) (m.Path, error) {
	abs, err := filepath.Abs(string(path))
	if err != nil {
		return "", err
	}

	return m.Path(abs), nil
}

// RelPath returns the relative path from base to target.
func (a *LocalSourceFSAdapter) RelPath(base, target m.Path) (m.Path, error) {
	rel, err := filepath.Rel(string(base), string(target))
	if err != nil {
		return "", err
	}

	return m.Path(rel), nil
}

// JoinPath joins path elements into a single path.
func (a *LocalSourceFSAdapter) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}
