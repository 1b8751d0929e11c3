package adapter

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"

	m "kinfmt.dev/pkg/kinfmt/internal/model"
)

// FormatterAdapter abstracts the external formatter invocation.
type FormatterAdapter interface {
	// Format rewrites file in place using the style document at stylePath.
	Format(ctx context.Context, file, stylePath m.Path) error

	// Preview returns the formatted contents of file without touching the
	// file itself. Used by check mode to diff against the on-disk version.
	Preview(ctx context.Context, file, stylePath m.Path) (string, error)
}

// LocalFormatterAdapter provides a concrete implementation using os/exec.
type LocalFormatterAdapter struct {
	binary  string
	timeout time.Duration
}

// NewLocalFormatterAdapter constructs a LocalFormatterAdapter invoking the
// given binary with the provided per-file timeout.
func NewLocalFormatterAdapter(binary string, timeout time.Duration) *LocalFormatterAdapter {
	return &LocalFormatterAdapter{
		binary:  binary,
		timeout: timeout,
	}
}

// Format rewrites file in place using the style document at stylePath.
func (a *LocalFormatterAdapter) Format(ctx context.Context, file, stylePath m.Path) error {
	_, err := a.run(ctx, []string{"-i", styleArg(stylePath), string(file)})

	return err
}

// Preview returns the formatted contents of file on stdout, leaving the file
// untouched.
func (a *LocalFormatterAdapter) Preview(ctx context.Context, file, stylePath m.Path) (string, error) {
	return a.run(ctx, []string{styleArg(stylePath), string(file)})
}

func (a *LocalFormatterAdapter) run(ctx context.Context, args []string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, a.binary, args...)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("formatter %s failed: %w: %s", a.binary, err, stderr.String())
	}

	return stdout.String(), nil
}

func styleArg(stylePath m.Path) string {
	return "--style=file:" + string(stylePath)
}
