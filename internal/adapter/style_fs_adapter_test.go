package adapter

import (
	"os"
	"path/filepath"
	"testing"

	m "kinfmt.dev/pkg/kinfmt/internal/model"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func TestLocalStyleFSAdapter_FileExists(t *testing.T) {
	adapter := NewLocalStyleFSAdapter()
	root := t.TempDir()

	path := filepath.Join(root, "widget.hpp")
	writeTestFile(t, path, "// stub\n")

	if !adapter.FileExists(m.Path(path)) {
		t.Fatalf("FileExists() = false for existing file %s", path)
	}

	if adapter.FileExists(m.Path(filepath.Join(root, "missing.hpp"))) {
		t.Fatalf("FileExists() = true for missing file")
	}

	if adapter.FileExists(m.Path(root)) {
		t.Fatalf("FileExists() = true for a directory")
	}
}

func TestLocalStyleFSAdapter_ReadWriteRoundtrip(t *testing.T) {
	adapter := NewLocalStyleFSAdapter()
	root := t.TempDir()

	path := m.Path(filepath.Join(root, ".clang-format"))
	content := "BasedOnStyle: Google\nIndentWidth: 2\n"

	if err := adapter.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := adapter.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if string(got) != content {
		t.Fatalf("ReadFile() = %q, want %q", string(got), content)
	}
}

func TestLocalStyleFSAdapter_Remove(t *testing.T) {
	adapter := NewLocalStyleFSAdapter()
	root := t.TempDir()

	path := filepath.Join(root, ".clang-format.tmp")
	writeTestFile(t, path, "derived\n")

	if err := adapter.Remove(m.Path(path)); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	if adapter.FileExists(m.Path(path)) {
		t.Fatalf("Remove() left %s in place", path)
	}
}

func TestLocalStyleFSAdapter_RelPath(t *testing.T) {
	adapter := NewLocalStyleFSAdapter()

	rel, err := adapter.RelPath("/project/core", "/project/core/impl/widget_impl.hpp")
	if err != nil {
		t.Fatalf("RelPath() error = %v", err)
	}

	want := filepath.Join("impl", "widget_impl.hpp")
	if string(rel) != want {
		t.Fatalf("RelPath() = %q, want %q", rel, want)
	}
}

func TestLocalStyleFSAdapter_Abs(t *testing.T) {
	adapter := NewLocalStyleFSAdapter()

	abs, err := adapter.Abs("widget.hpp")
	if err != nil {
		t.Fatalf("Abs() error = %v", err)
	}

	if !filepath.IsAbs(string(abs)) {
		t.Fatalf("Abs() = %q, not absolute", abs)
	}
}

func TestLocalStyleFSAdapter_JoinPath(t *testing.T) {
	adapter := NewLocalStyleFSAdapter()

	got := adapter.JoinPath("/project", "core", "widget.hpp")
	want := m.Path(filepath.Join("/project", "core", "widget.hpp"))

	if got != want {
		t.Fatalf("JoinPath() = %q, want %q", got, want)
	}
}
