package domain

import (
	"fmt"
	"log/slog"
	"strings"

	"kinfmt.dev/pkg/kinfmt/internal/adapter"
	m "kinfmt.dev/pkg/kinfmt/internal/model"
)

// StyleRenderer derives a style document from a base document by substituting
// the placeholder token with the main file's path relative to its root. The
// base document is never modified; the derived copy is written to outPath.
type StyleRenderer interface {
	Render(baseStyle, mainFile, outPath m.Path) error
}

type styleRenderer struct {
	layout m.Layout
	token  string
	fs     adapter.StyleFSAdapter
}

// NewStyleRenderer constructs a StyleRenderer substituting token occurrences.
func NewStyleRenderer(layout m.Layout, token string, fs adapter.StyleFSAdapter) StyleRenderer {
	return &styleRenderer{
		layout: layout,
		token:  token,
		fs:     fs,
	}
}

// Render writes a copy of baseStyle to outPath with every literal occurrence
// of the placeholder token replaced by mainFile relative to its root. The
// substitution is purely textual and preserves line order and count.
func (r *styleRenderer) Render(baseStyle, mainFile, outPath m.Path) error {
	relMain, err := r.relativeToRoot(mainFile)
	if err != nil {
		return fmt.Errorf("failed to relativize main file %s: %w", mainFile, err)
	}

	slog.Debug("rendering style document", "base", baseStyle, "main", relMain, "out", outPath)

	content, err := r.fs.ReadFile(baseStyle)
	if err != nil {
		return fmt.Errorf("failed to read base style document: %w", err)
	}

	lines := strings.Split(string(content), "\n")
	for i := range lines {
		lines[i] = strings.ReplaceAll(lines[i], r.token, string(relMain))
	}

	if err := r.fs.WriteFile(outPath, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		return fmt.Errorf("failed to write derived style document: %w", err)
	}

	return nil
}

// relativeToRoot expresses mainFile relative to the root it belongs to,
// checked in order: test root, mock root, source root. Files outside all
// three fall back to the source root.
func (r *styleRenderer) relativeToRoot(mainFile m.Path) (m.Path, error) {
	root := r.layout.SourceRoot

	switch {
	case withinRoot(r.layout.TestRoot, string(mainFile)):
		root = r.layout.TestRoot
	case withinRoot(r.layout.MockRoot, string(mainFile)):
		root = r.layout.MockRoot
	}

	return r.fs.RelPath(root, mainFile)
}
