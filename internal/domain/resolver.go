package domain

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"kinfmt.dev/pkg/kinfmt/internal/adapter"
	m "kinfmt.dev/pkg/kinfmt/internal/model"
)

// headerExt is the extension counterpart candidates are generated with.
const headerExt = ".hpp"

const (
	suffixMock = "_mock"
	suffixTest = "_test"
	suffixImpl = "_impl"
)

// implDirName is the conventional subdirectory holding implementation headers.
const implDirName = "impl"

// Resolver associates a file with the "main" counterpart it logically belongs
// to: the header a test exercises, the interface a mock stands in for. The
// decision is purely path and name based; file contents are never inspected.
type Resolver interface {
	// Resolve classifies path and returns the first existing counterpart
	// candidate. A Resolution with an empty Main means nothing matched,
	// which is a valid outcome rather than an error.
	Resolve(ctx context.Context, path m.Path) (m.Resolution, error)
}

type resolver struct {
	layout  m.Layout
	implExt string
	fs      adapter.StyleFSAdapter
}

// NewResolver constructs a Resolver for the given immutable layout. implExt is
// the implementation-file extension eligible for resolution alongside .hpp.
func NewResolver(layout m.Layout, implExt string, fs adapter.StyleFSAdapter) Resolver {
	return &resolver{
		layout:  layout,
		implExt: implExt,
		fs:      fs,
	}
}

// Resolve classifies the input by suffix and containing root, generates the
// role's candidate list and returns the first candidate that exists on disk.
func (r *resolver) Resolve(ctx context.Context, path m.Path) (m.Resolution, error) {
	if err := ctx.Err(); err != nil {
		return m.Resolution{}, err
	}

	dir := filepath.Dir(string(path))
	ext := filepath.Ext(string(path))
	name := strings.TrimSuffix(filepath.Base(string(path)), ext)

	res := m.Resolution{Input: path, Role: m.RolePlain}

	if ext != headerExt && ext != r.implExt {
		slog.Debug("extension not eligible for resolution", "path", path, "ext", ext)
		return res, nil
	}

	res.Role = r.classify(name, dir)
	set := newCandidateSet(path)

	switch res.Role {
	case m.RoleMock:
		base := strings.TrimSuffix(name, suffixMock)
		set.Add(siblingCandidates(dir, base, suffixMock)...)

		srcDir := r.reflectToSource(dir, r.layout.MockRoot)
		set.Add(siblingCandidates(srcDir, base, "")...)

	case m.RoleTest:
		base := strings.TrimSuffix(name, suffixTest)
		set.Add(siblingCandidates(dir, base, suffixTest)...)

		// The implementation may or may not live under an impl/
		// subfolder and may or may not carry an _impl suffix. Try all
		// four combinations, most specific first.
		srcDir := r.reflectToSource(dir, r.layout.TestRoot)
		set.Add(siblingCandidates(srcDir, filepath.Join(implDirName, base), suffixImpl)...)
		set.Add(siblingCandidates(srcDir, filepath.Join(implDirName, base), "")...)
		set.Add(siblingCandidates(srcDir, base, suffixImpl)...)
		set.Add(siblingCandidates(srcDir, base, "")...)

	case m.RoleImpl:
		base := strings.TrimSuffix(name, suffixImpl)
		set.Add(siblingCandidates(dir, base, suffixImpl)...)

	default:
		set.Add(siblingCandidates(dir, name, "")...)
	}

	slog.Debug("evaluating candidates", "path", path, "role", res.Role, "candidates", set.Paths())

	for _, candidate := range set.Paths() {
		if r.fs.FileExists(candidate) {
			slog.Debug("selected candidate", "path", path, "main", candidate)

			res.Main = candidate

			return res, nil
		}
	}

	slog.Debug("no main file found", "path", path, "role", res.Role)

	return res, nil
}

// classify determines the role from the name suffix and the containing root,
// checked in priority order: mock, test, impl, plain.
func (r *resolver) classify(name, dir string) m.Role {
	switch {
	case strings.HasSuffix(name, suffixMock) && withinRoot(r.layout.MockRoot, dir):
		return m.RoleMock
	case strings.HasSuffix(name, suffixTest) && withinRoot(r.layout.TestRoot, dir):
		return m.RoleTest
	case strings.HasSuffix(name, suffixImpl) && withinRoot(r.layout.SourceRoot, dir):
		return m.RoleImpl
	default:
		return m.RolePlain
	}
}

// siblingCandidates generates the in-place candidates for a base name: the
// suffixed sibling, the bare sibling, and - when dir itself is an impl
// directory - the bare sibling one level up.
func siblingCandidates(dir, base, suffix string) []m.Path {
	candidates := []m.Path{
		m.Path(filepath.Join(dir, base+suffix+headerExt)),
		m.Path(filepath.Join(dir, base+headerExt)),
	}

	if filepath.Base(dir) == implDirName {
		candidates = append(candidates, m.Path(filepath.Join(filepath.Dir(dir), base+headerExt)))
	}

	return candidates
}

// reflectToSource rewrites dir's root+reflection prefix to the source root.
// When dir does not live under that prefix it is returned unchanged.
func (r *resolver) reflectToSource(dir string, root m.Path) string {
	prefix := filepath.Join(string(root), r.layout.Reflection)

	rel, ok := relWithin(prefix, dir)
	if !ok {
		return dir
	}

	return filepath.Join(string(r.layout.SourceRoot), rel)
}

// withinRoot reports whether dir is root itself or a descendant of it. The
// comparison is structural, on path segments, so an unrelated directory whose
// textual path merely contains root never matches.
func withinRoot(root m.Path, dir string) bool {
	_, ok := relWithin(string(root), dir)

	return ok
}

// relWithin returns dir relative to base when dir is base or a descendant.
func relWithin(base, dir string) (string, bool) {
	rel, err := filepath.Rel(base, dir)
	if err != nil {
		return "", false
	}

	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}

	return rel, true
}
