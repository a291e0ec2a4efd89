package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingProjectFileUsesDefaults(t *testing.T) {
	cfg, err := Load("", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestProjectFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("visibility = \"node-local\"\njobs = 4\n"), 0o644))

	cfg, err := Load("", dir)
	require.NoError(t, err)
	assert.Equal(t, "node-local", cfg.Visibility)
	assert.Equal(t, 4, cfg.Jobs)
	assert.Equal(t, "native", cfg.Parser)
	assert.Equal(t, "kt", cfg.Ext)
}

func TestExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("format = \"json\"\nverbose = true\n"), 0o644))

	cfg, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "transitive", cfg.Visibility)
	assert.True(t, cfg.Verbose)
}

func TestExplicitFileMustExist(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"), "")
	assert.Error(t, err)
}

func TestMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("jobs = = 3"), 0o644))

	_, err := Load("", dir)
	assert.Error(t, err)
}

func TestDotFormatInFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("format = \"dot\"\n"), 0o644))

	cfg, err := Load("", dir)
	require.NoError(t, err)
	assert.Equal(t, "dot", cfg.Format)
}
