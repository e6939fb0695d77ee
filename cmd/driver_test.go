package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func silentLogEntry() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log.WithField("test", true)
}

func TestTacPathDefaultsAlongsideSource(t *testing.T) {
	got := tacPath("/tmp/foo/bar.mini", "")
	assert.Equal(t, filepath.Join("/tmp/foo", "bar.tac"), got)
}

func TestTacPathUsesOutDir(t *testing.T) {
	got := tacPath("/tmp/foo/bar.mini", "/tmp/out")
	assert.Equal(t, filepath.Join("/tmp/out", "bar.tac"), got)
}

func TestCompileOneWritesTacFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "prog.mini")
	require.NoError(t, os.WriteFile(src, []byte(`int x = 1 + 2;`), 0644))

	entry := silentLogEntry()

	err := compileOne(entry, src, false, "")
	require.NoError(t, err)

	out, err := os.ReadFile(filepath.Join(dir, "prog.tac"))
	require.NoError(t, err)
	assert.Equal(t, "t0 = 1 + 2\ndeclareint x\nx = t0\n", string(out))
}

func TestCompileOneReportsLexError(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "bad.mini")
	require.NoError(t, os.WriteFile(src, []byte("int x = @;"), 0644))

	entry := silentLogEntry()

	err := compileOne(entry, src, false, "")
	assert.Error(t, err)
}

func TestCompileOneReportsSemanticError(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "bad.mini")
	require.NoError(t, os.WriteFile(src, []byte(`int x = "hello";`), 0644))

	entry := silentLogEntry()

	err := compileOne(entry, src, false, "")
	assert.Error(t, err)
}

func TestRunCompileFailsWithNoFilesOrConfig(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "nonexistent.toml")})
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	err := cmd.Execute()
	assert.Error(t, err)
}
