package controller

import (
	"bytes"
	"context"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "kinfmt.dev/pkg/kinfmt/internal/model"
)

// SimpleUI implements UI using cobra Command's Println.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context) error {
	return ctx.Err()
}

// Close finalizes the UI.
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
	// SimpleUI doesn't block - it just prints and continues
}

// DisplayResolution prints the outcome of resolving a single file.
func (s *SimpleUI) DisplayResolution(ctx context.Context, res m.Resolution) {
	if err := ctx.Err(); err != nil {
		return
	}

	if res.Found() {
		s.cmd.Printf("%s: main file %s\n", res.Input, res.Main)
		return
	}

	s.cmd.Printf("%s: no main file, using base style\n", res.Input)
}

// DisplayFormatted reports that a file has been formatted.
func (s *SimpleUI) DisplayFormatted(ctx context.Context, file m.Path) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.cmd.Printf("formatted %s\n", file)
}

// DisplayDiff prints the unified diff a check run produced for file.
func (s *SimpleUI) DisplayDiff(ctx context.Context, file m.Path, diff string) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.cmd.Printf("%s is not formatted:\n%s", file, diff)
}

// DisplayResolutions prints a table of resolution outcomes.
func (s *SimpleUI) DisplayResolutions(ctx context.Context, resolutions []m.Resolution) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.cmd.Printf("\n%s", renderResolutionTable(resolutions))

	return nil
}

func renderResolutionTable(resolutions []m.Resolution) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"File", "Role", "Main File"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT})

	resolved := 0

	for _, res := range resolutions {
		main := "-"
		if res.Found() {
			main = string(res.Main)
			resolved++
		}

		table.Append([]string{string(res.Input), string(res.Role), main})
	}

	table.SetFooter([]string{
		"",
		"Resolved",
		fmt.Sprintf("%d/%d", resolved, len(resolutions)),
	})

	table.Render()

	return tableBuffer.String()
}
