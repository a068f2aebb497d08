// Copyright © 2024 The ELPS authors

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runFmt(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := FmtCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeSource(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))
	return path
}

func TestFmtCommand_Stdin(t *testing.T) {
	out, _, err := runFmt(t, "add( 1 ,2 )")
	require.NoError(t, err)
	assert.Equal(t, "add(1, 2)\n", out)

	_, _, err = runFmt(t, "add(1")
	assert.Error(t, err)
}

func TestFmtCommand_Write(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "a.ep", "inc( 1 )")
	out, _, err := runFmt(t, "", "-w", path)
	require.NoError(t, err)
	assert.Empty(t, out)
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "inc(1)\n", string(b))
}

func TestFmtCommand_List(t *testing.T) {
	dir := t.TempDir()
	bad := writeSource(t, dir, "bad.ep", "inc( 1 )")
	writeSource(t, dir, "good.ep", "inc(1)\n")
	out, _, err := runFmt(t, "", "-l", dir+"/...")
	assert.Equal(t, 1, exitCode(err))
	assert.Equal(t, bad+"\n", out)

	out, _, err = runFmt(t, "", "-l", "--exclude", "bad.ep", dir+"/...")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestFmtCommand_Diff(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "a.ep", "inc(1)\ndec( 2 )\n")
	out, _, err := runFmt(t, "", "-d", path)
	require.NoError(t, err)
	assert.Contains(t, out, "--- "+path)
	assert.Contains(t, out, "-dec( 2 )")
	assert.Contains(t, out, "+dec(2)")
	assert.Contains(t, out, " inc(1)")
}

func TestFmtCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "a.ep", "inc(1")
	_, errOut, err := runFmt(t, "", path, filepath.Join(dir, "missing.ep"))
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, errOut, "unexpected end of input")
	assert.Contains(t, errOut, "unable to read")
}
