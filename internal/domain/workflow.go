package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pmezard/go-difflib/difflib"

	"kinfmt.dev/pkg/kinfmt/internal/adapter"
	"kinfmt.dev/pkg/kinfmt/internal/controller"
	m "kinfmt.dev/pkg/kinfmt/internal/model"
)

var (
	// ErrInputNotFound reports a command-line argument naming a missing file.
	ErrInputNotFound = errors.New("input file does not exist")
	// ErrStyleFileMissing reports that the project root has no base style file.
	ErrStyleFileMissing = errors.New("no base style file found in project root")
	// ErrNotFormatted reports a check-mode mismatch.
	ErrNotFormatted = errors.New("file is not formatted")
)

// derivedStyleSuffix is appended to the base style path to name the derived copy.
const derivedStyleSuffix = ".tmp"

// FormatArgs holds the parameters for a Format run.
type FormatArgs struct {
	Paths []m.Path

	// Check diffs the formatter output against the file instead of
	// rewriting it in place.
	Check bool

	// KeepStyle leaves the derived style document on disk after the
	// formatter returns.
	KeepStyle bool
}

// Workflow coordinates resolving each input file, deriving a style document
// for it and handing both to the external formatter. Files are processed
// strictly in sequence; the first failure aborts the run.
type Workflow interface {
	Format(ctx context.Context, args FormatArgs) error
	Resolve(ctx context.Context, paths []m.Path) ([]m.Resolution, error)
}

type workflow struct {
	projectRoot m.Path
	styleName   string
	fs          adapter.StyleFSAdapter
	formatter   adapter.FormatterAdapter
	resolver    Resolver
	renderer    StyleRenderer
	ui          controller.UI
}

// NewWorkflow constructs a Workflow backed by the provided adapters. styleName
// is the fixed base style file name looked up in projectRoot.
func NewWorkflow(
	projectRoot m.Path,
	styleName string,
	fs adapter.StyleFSAdapter,
	formatter adapter.FormatterAdapter,
	resolver Resolver,
	renderer StyleRenderer,
	ui controller.UI,
) Workflow {
	return &workflow{
		projectRoot: projectRoot,
		styleName:   styleName,
		fs:          fs,
		formatter:   formatter,
		resolver:    resolver,
		renderer:    renderer,
		ui:          ui,
	}
}

// Format processes the input files in order, formatting each with a style
// document derived from its resolved main file, or with the base document
// when resolution misses.
func (w *workflow) Format(ctx context.Context, args FormatArgs) error {
	if err := w.ui.Start(ctx); err != nil {
		return err
	}

	err := w.formatAll(ctx, args)

	w.ui.Close(ctx)
	w.ui.Wait(ctx)

	return err
}

func (w *workflow) formatAll(ctx context.Context, args FormatArgs) error {
	baseStyle, err := w.findStyleFile()
	if err != nil {
		return err
	}

	for _, path := range args.Paths {
		if err := w.formatOne(ctx, baseStyle, path, args); err != nil {
			return err
		}
	}

	return nil
}

func (w *workflow) formatOne(ctx context.Context, baseStyle, path m.Path, args FormatArgs) error {
	abs, err := w.fs.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to absolutize %s: %w", path, err)
	}

	if !w.fs.FileExists(abs) {
		return fmt.Errorf("%w: %s", ErrInputNotFound, path)
	}

	res, err := w.resolver.Resolve(ctx, abs)
	if err != nil {
		return err
	}

	w.ui.DisplayResolution(ctx, res)

	style := baseStyle

	if res.Found() {
		derived := baseStyle + derivedStyleSuffix
		if err := w.renderer.Render(baseStyle, res.Main, derived); err != nil {
			return err
		}

		if !args.KeepStyle {
			defer w.removeDerived(derived)
		}

		style = derived
	}

	if args.Check {
		return w.checkOne(ctx, abs, style)
	}

	if err := w.formatter.Format(ctx, abs, style); err != nil {
		slog.Error("formatter invocation failed", "file", abs, "style", style, "error", err)
		return fmt.Errorf("failed to format %s: %w", path, err)
	}

	w.ui.DisplayFormatted(ctx, abs)

	return nil
}

// checkOne diffs the formatter's output against the on-disk file and fails
// when formatting would change it.
func (w *workflow) checkOne(ctx context.Context, file, style m.Path) error {
	formatted, err := w.formatter.Preview(ctx, file, style)
	if err != nil {
		slog.Error("formatter invocation failed", "file", file, "style", style, "error", err)
		return fmt.Errorf("failed to preview %s: %w", file, err)
	}

	current, err := w.fs.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", file, err)
	}

	diff, err := unifiedDiff(file, string(current), formatted)
	if err != nil {
		return fmt.Errorf("failed to diff %s: %w", file, err)
	}

	if diff == "" {
		w.ui.DisplayFormatted(ctx, file)
		return nil
	}

	w.ui.DisplayDiff(ctx, file, diff)

	return fmt.Errorf("%w: %s", ErrNotFormatted, file)
}

// Resolve resolves each input file without formatting anything.
func (w *workflow) Resolve(ctx context.Context, paths []m.Path) ([]m.Resolution, error) {
	resolutions := make([]m.Resolution, 0, len(paths))

	for _, path := range paths {
		abs, err := w.fs.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to absolutize %s: %w", path, err)
		}

		if !w.fs.FileExists(abs) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}

		res, err := w.resolver.Resolve(ctx, abs)
		if err != nil {
			return nil, err
		}

		resolutions = append(resolutions, res)
	}

	return resolutions, nil
}

// findStyleFile locates the fixed-name base style document in the project root.
func (w *workflow) findStyleFile() (m.Path, error) {
	path := w.fs.JoinPath(string(w.projectRoot), w.styleName)

	if !w.fs.FileExists(path) {
		return "", fmt.Errorf("%w: %s", ErrStyleFileMissing, path)
	}

	slog.Debug("found base style file", "path", path)

	return path, nil
}

// removeDerived cleans up the derived style document, logging if removal fails.
func (w *workflow) removeDerived(path m.Path) {
	if err := w.fs.Remove(path); err != nil {
		slog.Error("failed to remove derived style file", "path", path, "error", err)
	}
}

func unifiedDiff(file m.Path, current, formatted string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(current),
		B:        difflib.SplitLines(formatted),
		FromFile: string(file),
		ToFile:   string(file) + " (formatted)",
		Context:  3,
	})
}
