// Copyright © 2024 The ELPS authors

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, files ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, f := range files {
		path := filepath.Join(dir, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("inc(1)\n"), 0o600))
	}
	return dir
}

func TestExpandArgs_PassThrough(t *testing.T) {
	out, err := expandArgs([]string{"a.ep", "b.txt"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.ep", "b.txt"}, out)
}

func TestExpandArgs_Recursive(t *testing.T) {
	dir := writeTree(t, "a.ep", "sub/b.ep", "sub/deep/c.ep", "notes.txt")
	out, err := expandArgs([]string{dir + "/..."}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.ep"),
		filepath.Join(dir, "sub", "b.ep"),
		filepath.Join(dir, "sub", "deep", "c.ep"),
	}, out)
}

func TestExpandArgs_ExcludeDirectory(t *testing.T) {
	dir := writeTree(t, "a.ep", "build/out.ep", "build/sub/deep.ep")
	out, err := expandArgs([]string{dir + "/..."}, []string{"build"})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.ep")}, out)
}

func TestExpandArgs_ExcludeGlob(t *testing.T) {
	dir := writeTree(t, "main.ep", "generated_foo.ep", "generated_bar.ep")
	out, err := expandArgs([]string{dir + "/...", "generated_baz.ep"}, []string{"generated_*"})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "main.ep")}, out)
}

func TestExpandArgs_BadPattern(t *testing.T) {
	_, err := expandArgs([]string{"a.ep"}, []string{"["})
	assert.Error(t, err)
}

func TestExpandArgs_MissingDirectory(t *testing.T) {
	_, err := expandArgs([]string{filepath.Join(t.TempDir(), "missing") + "/..."}, nil)
	assert.Error(t, err)
}
