// Package controller provides output adapters for displaying resolution and
// formatting results.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "kinfmt.dev/pkg/kinfmt/internal/model"
)

// UI defines the interface for reporting progress while files are resolved
// and formatted. Implementations can use different output methods (simple
// text, TUI, etc).
type UI interface {
	Start(ctx context.Context) error
	Close(ctx context.Context)
	Wait(ctx context.Context) // Wait for UI to finish rendering
	DisplayResolution(ctx context.Context, res m.Resolution)
	DisplayFormatted(ctx context.Context, file m.Path)
	DisplayDiff(ctx context.Context, file m.Path, diff string)
	DisplayResolutions(ctx context.Context, resolutions []m.Resolution) error
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewUI returns a TUI when interactive is true, otherwise a SimpleUI bound to
// the command's output streams.
func NewUI(cmd *cobra.Command, interactive bool) UI {
	if interactive {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}
