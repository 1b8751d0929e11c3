package controller

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	m "kinfmt.dev/pkg/kinfmt/internal/model"
)

var (
	mainStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	missStyle = lipgloss.NewStyle().Faint(true)
	diffStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// TUI implements UI using Bubble Tea for interactive display. The program runs
// in its own goroutine while the workflow feeds it events; files are still
// processed strictly in sequence.
type TUI struct {
	output  io.Writer
	program *tea.Program
	group   *errgroup.Group
}

// NewTUI creates a new TUI writing to output.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start launches the Bubble Tea program in the background.
func (t *TUI) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.program = tea.NewProgram(newFormatModel(), tea.WithOutput(t.output), tea.WithContext(ctx))
	t.group = &errgroup.Group{}

	t.group.Go(func() error {
		_, err := t.program.Run()
		return err
	})

	return nil
}

// Close signals the program that no further events will arrive.
func (t *TUI) Close(_ context.Context) {
	if t.program != nil {
		t.program.Send(closeMsg{})
	}
}

// Wait blocks until the program has finished rendering.
func (t *TUI) Wait(_ context.Context) {
	if t.group != nil {
		_ = t.group.Wait()
	}
}

// DisplayResolution feeds a resolution outcome into the running program.
func (t *TUI) DisplayResolution(ctx context.Context, res m.Resolution) {
	if err := ctx.Err(); err != nil {
		return
	}

	if t.program != nil {
		t.program.Send(resolutionMsg{res: res})
	}
}

// DisplayFormatted marks a file as formatted.
func (t *TUI) DisplayFormatted(ctx context.Context, file m.Path) {
	if err := ctx.Err(); err != nil {
		return
	}

	if t.program != nil {
		t.program.Send(formattedMsg{file: file})
	}
}

// DisplayDiff feeds a check-mode diff into the running program.
func (t *TUI) DisplayDiff(ctx context.Context, file m.Path, diff string) {
	if err := ctx.Err(); err != nil {
		return
	}

	if t.program != nil {
		t.program.Send(diffMsg{file: file, diff: diff})
	}
}

// DisplayResolutions prints the resolution table directly; the table is a
// one-shot listing and needs no interactive program.
func (t *TUI) DisplayResolutions(ctx context.Context, resolutions []m.Resolution) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(t.output, "\n%s", renderResolutionTable(resolutions))

	return err
}

type resolutionMsg struct {
	res m.Resolution
}

type formattedMsg struct {
	file m.Path
}

type diffMsg struct {
	file m.Path
	diff string
}

type closeMsg struct{}

type fileEntry struct {
	res       m.Resolution
	formatted bool
	diff      string
}

type formatModel struct {
	spinner spinner.Model
	entries []fileEntry
	closed  bool
}

func newFormatModel() formatModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return formatModel{spinner: sp}
}

// Init implements tea.Model.
func (f formatModel) Init() tea.Cmd {
	return f.spinner.Tick
}

// Update implements tea.Model.
func (f formatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resolutionMsg:
		f.entries = append(f.entries, fileEntry{res: msg.res})
		return f, nil

	case formattedMsg:
		f.markFormatted(msg.file)
		return f, nil

	case diffMsg:
		f.attachDiff(msg.file, msg.diff)
		return f, nil

	case closeMsg:
		f.closed = true
		return f, tea.Quit

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return f, tea.Quit
		}

		return f, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		f.spinner, cmd = f.spinner.Update(msg)

		return f, cmd
	}

	return f, nil
}

// View implements tea.Model.
func (f formatModel) View() string {
	var b strings.Builder

	for _, entry := range f.entries {
		b.WriteString(renderEntry(entry))
	}

	if !f.closed {
		b.WriteString(f.spinner.View())
		b.WriteString(" formatting...\n")
	}

	return b.String()
}

func renderEntry(entry fileEntry) string {
	var b strings.Builder

	marker := " "
	if entry.formatted {
		marker = mainStyle.Render("*")
	}

	if entry.res.Found() {
		b.WriteString(fmt.Sprintf("%s %s -> %s\n", marker, entry.res.Input, entry.res.Main))
	} else {
		b.WriteString(fmt.Sprintf("%s %s", marker, missStyle.Render(fmt.Sprintf("%s (base style)", entry.res.Input))))
		b.WriteString("\n")
	}

	if entry.diff != "" {
		b.WriteString(diffStyle.Render(entry.diff))
		b.WriteString("\n")
	}

	return b.String()
}

func (f *formatModel) markFormatted(file m.Path) {
	for i := range f.entries {
		if f.entries[i].res.Input == file {
			f.entries[i].formatted = true
			return
		}
	}
}

func (f *formatModel) attachDiff(file m.Path, diff string) {
	for i := range f.entries {
		if f.entries[i].res.Input == file {
			f.entries[i].diff = diff
			return
		}
	}
}
