package controller

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "kinfmt.dev/pkg/kinfmt/internal/model"
)

func keyMsg(key string) tea.KeyMsg {
	if key == "ctrl+c" {
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}

	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func TestFormatModel_View(t *testing.T) {
	model := newFormatModel()

	updated, _ := model.Update(resolutionMsg{res: m.Resolution{
		Input: "/p/test/core/widget_test.hpp",
		Role:  m.RoleTest,
		Main:  "/p/core/widget.hpp",
	}})
	updated, _ = updated.Update(resolutionMsg{res: m.Resolution{
		Input: "/p/core/plain.hpp",
		Role:  m.RolePlain,
	}})

	view := updated.View()
	assert.Contains(t, view, "/p/core/widget.hpp")
	assert.Contains(t, view, "base style")
	assert.Contains(t, view, "formatting...")
}

func TestFormatModel_DiffAttachesToEntry(t *testing.T) {
	model := newFormatModel()

	updated, _ := model.Update(resolutionMsg{res: m.Resolution{
		Input: "/p/core/widget.hpp",
		Role:  m.RolePlain,
	}})
	updated, _ = updated.Update(diffMsg{file: "/p/core/widget.hpp", diff: "-old\n+new\n"})

	assert.Contains(t, updated.View(), "+new")
}

func TestFormatModel_CloseQuits(t *testing.T) {
	model := newFormatModel()

	updated, cmd := model.Update(closeMsg{})
	require.NotNil(t, cmd)

	view := updated.View()
	assert.NotContains(t, view, "formatting...")
}

func TestFormatModel_QuitKeys(t *testing.T) {
	model := newFormatModel()

	for _, key := range []string{"q", "ctrl+c"} {
		_, cmd := model.Update(keyMsg(key))
		assert.NotNil(t, cmd, "key %q should quit", key)
	}
}
