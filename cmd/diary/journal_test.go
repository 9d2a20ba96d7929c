// ABOUTME: End-to-end tests for the write, append, and show commands.
// ABOUTME: Runs the root command against temp directories and checks saved files.
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389-research/diary/internal/storage"
)

func runDiary(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	t.Log(errOut.String())
	return out.String(), err
}

func TestWriteCommandDearDiary(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "diary.txt")

	out, err := runDiary(t, "write", "--out", dest, "I ate a bug", "I laughed today!")
	require.NoError(t, err)
	assert.Contains(t, out, "Entries: 2")

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "1: I ate a bug\n2: I laughed today!\n", string(data))
}

func TestWriteCommandNoEntries(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "empty.txt")

	_, err := runDiary(t, "write", "--out", dest)
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestWriteCommandUnwritable(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "missing", "diary.txt")

	_, err := runDiary(t, "write", "--out", dest, "lost")
	assert.ErrorIs(t, err, storage.ErrDestinationUnwritable)
}

func TestAppendAndShowCommands(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "diary.txt")

	_, err := runDiary(t, "append", dest, "I ate a bug")
	require.NoError(t, err)
	out, err := runDiary(t, "append", dest, "I laughed today!", "I slept")
	require.NoError(t, err)
	assert.Contains(t, out, "Added 2 entries")

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "1: I ate a bug\n2: I laughed today!\n3: I slept\n", string(data))

	out, err = runDiary(t, "show", dest)
	require.NoError(t, err)
	assert.Equal(t, string(data), out)
}

func TestShowCommandMalformed(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(dest, []byte("hello\n"), 0o600))

	_, err := runDiary(t, "show", dest)
	assert.Error(t, err)
}
