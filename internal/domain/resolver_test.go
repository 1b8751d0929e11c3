package domain

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kinfmt.dev/pkg/kinfmt/internal/adapter"
	m "kinfmt.dev/pkg/kinfmt/internal/model"
)

// testLayout builds the conventional project layout rooted at root:
// sources under core/, tests under test/core/, mocks under test/mock/core/.
func testLayout(root string) m.Layout {
	return m.Layout{
		SourceRoot: m.Path(filepath.Join(root, "core")),
		TestRoot:   m.Path(filepath.Join(root, "test")),
		MockRoot:   m.Path(filepath.Join(root, "test", "mock")),
		Reflection: "core",
	}
}

func touch(t *testing.T, elem ...string) string {
	t.Helper()

	path := filepath.Join(elem...)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("// stub\n"), 0o644))

	return path
}

func newTestResolver(root string) Resolver {
	return NewResolver(testLayout(root), ".cpp", adapter.NewLocalStyleFSAdapter())
}

func TestResolver_IneligibleExtension(t *testing.T) {
	root := t.TempDir()
	input := touch(t, root, "core", "widget.txt")

	res, err := newTestResolver(root).Resolve(context.Background(), m.Path(input))
	require.NoError(t, err)

	assert.Equal(t, m.RolePlain, res.Role)
	assert.False(t, res.Found())
}

func TestResolver_TestRole(t *testing.T) {
	t.Run("sibling in test tree wins over source counterpart", func(t *testing.T) {
		root := t.TempDir()
		input := touch(t, root, "test", "core", "widget_test.hpp")
		sibling := touch(t, root, "test", "core", "widget.hpp")
		touch(t, root, "core", "widget.hpp")

		res, err := newTestResolver(root).Resolve(context.Background(), m.Path(input))
		require.NoError(t, err)

		assert.Equal(t, m.RoleTest, res.Role)
		assert.Equal(t, m.Path(sibling), res.Main)
	})

	t.Run("suffixed sibling of a cpp test is its own header", func(t *testing.T) {
		root := t.TempDir()
		input := touch(t, root, "test", "core", "widget_test.cpp")
		header := touch(t, root, "test", "core", "widget_test.hpp")

		res, err := newTestResolver(root).Resolve(context.Background(), m.Path(input))
		require.NoError(t, err)

		assert.Equal(t, m.Path(header), res.Main)
	})

	t.Run("falls back through the source tree most specific first", func(t *testing.T) {
		// All four combinations of impl/ subfolder and _impl suffix,
		// tried in order. Remove the winner and the next takes over.
		root := t.TempDir()
		input := touch(t, root, "test", "core", "widget_test.hpp")

		ordered := []string{
			touch(t, root, "core", "impl", "widget_impl.hpp"),
			touch(t, root, "core", "impl", "widget.hpp"),
			touch(t, root, "core", "widget_impl.hpp"),
			touch(t, root, "core", "widget.hpp"),
		}

		resolver := newTestResolver(root)

		for _, want := range ordered {
			res, err := resolver.Resolve(context.Background(), m.Path(input))
			require.NoError(t, err)

			assert.Equal(t, m.Path(want), res.Main)
			require.NoError(t, os.Remove(want))
		}

		res, err := resolver.Resolve(context.Background(), m.Path(input))
		require.NoError(t, err)
		assert.False(t, res.Found())
	})

	t.Run("nested directories keep their relative path", func(t *testing.T) {
		root := t.TempDir()
		input := touch(t, root, "test", "core", "net", "socket_test.hpp")
		want := touch(t, root, "core", "net", "impl", "socket_impl.hpp")

		res, err := newTestResolver(root).Resolve(context.Background(), m.Path(input))
		require.NoError(t, err)

		assert.Equal(t, m.Path(want), res.Main)
	})

	t.Run("test suffix outside the test root stays plain", func(t *testing.T) {
		root := t.TempDir()
		input := touch(t, root, "core", "widget_test.hpp")

		res, err := newTestResolver(root).Resolve(context.Background(), m.Path(input))
		require.NoError(t, err)

		assert.Equal(t, m.RolePlain, res.Role)
	})

	t.Run("sibling test root name does not match structurally", func(t *testing.T) {
		// A directory whose textual path contains the test root as a
		// substring must not be classified as a test file.
		root := t.TempDir()
		input := touch(t, root, "testing", "core", "widget_test.hpp")

		res, err := newTestResolver(root).Resolve(context.Background(), m.Path(input))
		require.NoError(t, err)

		assert.Equal(t, m.RolePlain, res.Role)
	})
}

func TestResolver_MockRole(t *testing.T) {
	t.Run("sibling in mock tree wins in place", func(t *testing.T) {
		root := t.TempDir()
		input := touch(t, root, "test", "mock", "core", "widget_mock.hpp")
		sibling := touch(t, root, "test", "mock", "core", "widget.hpp")
		touch(t, root, "core", "widget.hpp")

		res, err := newTestResolver(root).Resolve(context.Background(), m.Path(input))
		require.NoError(t, err)

		assert.Equal(t, m.RoleMock, res.Role)
		assert.Equal(t, m.Path(sibling), res.Main)
	})

	t.Run("falls back to the remapped source counterpart", func(t *testing.T) {
		root := t.TempDir()
		input := touch(t, root, "test", "mock", "core", "widget_mock.hpp")
		want := touch(t, root, "core", "widget.hpp")

		res, err := newTestResolver(root).Resolve(context.Background(), m.Path(input))
		require.NoError(t, err)

		assert.Equal(t, m.Path(want), res.Main)
	})

	t.Run("mock suffix outside the mock root stays plain", func(t *testing.T) {
		root := t.TempDir()
		input := touch(t, root, "core", "widget_mock.hpp")

		res, err := newTestResolver(root).Resolve(context.Background(), m.Path(input))
		require.NoError(t, err)

		assert.Equal(t, m.RolePlain, res.Role)
	})
}

func TestResolver_ImplRole(t *testing.T) {
	t.Run("finds the suffixed header sibling", func(t *testing.T) {
		root := t.TempDir()
		input := touch(t, root, "core", "widget_impl.cpp")
		want := touch(t, root, "core", "widget_impl.hpp")

		res, err := newTestResolver(root).Resolve(context.Background(), m.Path(input))
		require.NoError(t, err)

		assert.Equal(t, m.RoleImpl, res.Role)
		assert.Equal(t, m.Path(want), res.Main)
	})

	t.Run("reaches one level up from an impl directory", func(t *testing.T) {
		root := t.TempDir()
		input := touch(t, root, "core", "impl", "widget_impl.hpp")
		want := touch(t, root, "core", "widget.hpp")

		res, err := newTestResolver(root).Resolve(context.Background(), m.Path(input))
		require.NoError(t, err)

		assert.Equal(t, m.Path(want), res.Main)
	})
}

func TestResolver_PlainRole(t *testing.T) {
	t.Run("a lone header resolves to nothing", func(t *testing.T) {
		root := t.TempDir()
		input := touch(t, root, "core", "widget.hpp")

		res, err := newTestResolver(root).Resolve(context.Background(), m.Path(input))
		require.NoError(t, err)

		assert.Equal(t, m.RolePlain, res.Role)
		assert.False(t, res.Found())
	})

	t.Run("a cpp file resolves to its header", func(t *testing.T) {
		root := t.TempDir()
		input := touch(t, root, "core", "widget.cpp")
		want := touch(t, root, "core", "widget.hpp")

		res, err := newTestResolver(root).Resolve(context.Background(), m.Path(input))
		require.NoError(t, err)

		assert.Equal(t, m.Path(want), res.Main)
	})
}

func TestResolver_NeverResolvesToSelf(t *testing.T) {
	// The input path is excluded even when candidate generation would
	// regenerate it, so a file cannot be declared its own main file.
	root := t.TempDir()
	input := touch(t, root, "test", "core", "widget_test.hpp")

	res, err := newTestResolver(root).Resolve(context.Background(), m.Path(input))
	require.NoError(t, err)

	assert.False(t, res.Found())
}

func TestResolver_Idempotent(t *testing.T) {
	root := t.TempDir()
	input := touch(t, root, "test", "core", "widget_test.hpp")
	touch(t, root, "core", "impl", "widget_impl.hpp")

	resolver := newTestResolver(root)

	first, err := resolver.Resolve(context.Background(), m.Path(input))
	require.NoError(t, err)

	second, err := resolver.Resolve(context.Background(), m.Path(input))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestResolver_SpecExample(t *testing.T) {
	// /project/test/core/widget_test.hpp with only
	// /project/core/impl/widget_impl.hpp present resolves to the latter.
	root := t.TempDir()
	input := touch(t, root, "test", "core", "widget_test.hpp")
	want := touch(t, root, "core", "impl", "widget_impl.hpp")

	res, err := newTestResolver(root).Resolve(context.Background(), m.Path(input))
	require.NoError(t, err)

	assert.Equal(t, m.RoleTest, res.Role)
	assert.Equal(t, m.Path(want), res.Main)
}

func TestCandidateSet(t *testing.T) {
	t.Run("first occurrence wins", func(t *testing.T) {
		set := newCandidateSet("/p/self.hpp")
		set.Add("/p/a.hpp", "/p/b.hpp", "/p/a.hpp")

		assert.Equal(t, []m.Path{"/p/a.hpp", "/p/b.hpp"}, set.Paths())
	})

	t.Run("self is never admitted", func(t *testing.T) {
		set := newCandidateSet("/p/self.hpp")
		set.Add("/p/self.hpp", "/p/a.hpp")

		assert.Equal(t, []m.Path{"/p/a.hpp"}, set.Paths())
	})

	t.Run("empty set has no paths", func(t *testing.T) {
		set := newCandidateSet("/p/self.hpp")

		assert.Empty(t, set.Paths())
	})
}
