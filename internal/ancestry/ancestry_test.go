package ancestry

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// name is unusual enough that no directory above t.TempDir() should hold it.
const name = "toj-ancestry-test-model.json"

// tree creates name in each of the given directories below a fresh temp
// directory and returns that directory.
func tree(t *testing.T, dirs ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, dir := range dirs {
		path := filepath.Join(root, dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))
	}
	return root
}

func at(root string, dirs ...string) string {
	return filepath.Join(append(append([]string{root}, dirs...), name)...)
}

func TestLocate(t *testing.T) {
	t.Run("collects every populated ancestor root first", func(t *testing.T) {
		root := tree(t, "animals", "animals/forest", "animals/forest/alpine")
		chain, err := Locate(at(root, "animals", "forest", "alpine"), Options{})
		require.NoError(t, err)
		assert.Equal(t, Chain{
			at(root, "animals"),
			at(root, "animals", "forest"),
			at(root, "animals", "forest", "alpine"),
		}, chain)
		assert.Equal(t, at(root, "animals"), chain.Root())
		assert.Equal(t, at(root, "animals", "forest", "alpine"), chain.Leaf())
	})

	t.Run("stops at the first gap", func(t *testing.T) {
		root := tree(t, "animals", "animals/forest/alpine")
		chain, err := Locate(at(root, "animals", "forest", "alpine"), Options{})
		require.NoError(t, err)
		assert.Equal(t, Chain{at(root, "animals", "forest", "alpine")}, chain)
	})

	t.Run("skips gaps when asked", func(t *testing.T) {
		root := tree(t, "animals", "animals/forest/alpine")
		chain, err := Locate(at(root, "animals", "forest", "alpine"), Options{SkipEmpty: true})
		require.NoError(t, err)
		assert.Equal(t, Chain{
			at(root, "animals"),
			at(root, "animals", "forest", "alpine"),
		}, chain)
	})

	t.Run("leaf directory is not visited twice", func(t *testing.T) {
		root := tree(t, "animals")
		chain, err := Locate(at(root, "animals"), Options{})
		require.NoError(t, err)
		assert.Equal(t, Chain{at(root, "animals")}, chain)
	})

	t.Run("directories named like the file are gaps", func(t *testing.T) {
		root := tree(t, "animals", "animals/forest/alpine")
		require.NoError(t, os.Mkdir(at(root, "animals", "forest"), 0o755))
		chain, err := Locate(at(root, "animals", "forest", "alpine"), Options{})
		require.NoError(t, err)
		assert.Len(t, chain, 1)
	})

	t.Run("unreadable candidate is an error, not a gap", func(t *testing.T) {
		root := tree(t, "a/b")
		looping := at(root, "a")
		require.NoError(t, os.Symlink(looping, looping))

		chain, err := Locate(at(root, "a", "b"), Options{SkipEmpty: true})
		assert.Nil(t, chain)
		var statErr *StatError
		require.True(t, errors.As(err, &statErr), "got %v", err)
		assert.Equal(t, looping, statErr.Path)
		assert.Contains(t, err.Error(), looping)
	})

	t.Run("max depth bounds the walk", func(t *testing.T) {
		root := tree(t, "a", "a/b", "a/b/c", "a/b/c/d")
		chain, err := Locate(at(root, "a", "b", "c", "d"), Options{MaxDepth: 2})
		require.NoError(t, err)
		assert.Equal(t, Chain{
			at(root, "a", "b"),
			at(root, "a", "b", "c"),
			at(root, "a", "b", "c", "d"),
		}, chain)
	})

	t.Run("relative leaf yields absolute chain", func(t *testing.T) {
		root := tree(t, "animals", "animals/forest")
		t.Chdir(root)
		chain, err := Locate(filepath.Join("animals", "forest", name), Options{})
		require.NoError(t, err)
		require.Len(t, chain, 2)
		for _, path := range chain {
			assert.True(t, filepath.IsAbs(path), path)
		}
		assert.Equal(t, name, filepath.Base(chain.Root()))
	})

	t.Run("leaf in the filesystem root", func(t *testing.T) {
		leaf := string(filepath.Separator) + name
		chain, err := Locate(leaf, Options{SkipEmpty: true})
		require.NoError(t, err)
		assert.Equal(t, Chain{leaf}, chain)
	})
}

func TestLocateTrace(t *testing.T) {
	root := tree(t, "animals", "animals/forest")
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{})

	chain, err := Locate(at(root, "animals", "forest"), Options{Logger: logger})
	require.NoError(t, err)
	require.Len(t, chain, 2)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Found model")
	assert.Contains(t, lines[0], at(root, "animals", "forest"))
	assert.Contains(t, lines[1], at(root, "animals"))
}
