package sourcefiles

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("fun f() {}\n"), 0o644))
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, Validate(dir))

	var invalid *InvalidInputError

	err := Validate("")
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "No input found, please specify a working directory", err.Error())

	err = Validate(filepath.Join(dir, "missing"))
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "The specified file either doesn't exist, or isn't a directory. Please try something else", err.Error())

	file := filepath.Join(dir, "Main.kt")
	writeFile(t, file)
	err = Validate(file)
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, file, invalid.Path)
}

func TestFindFiltersByExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.kt"))
	writeFile(t, filepath.Join(dir, "a.kt"))
	writeFile(t, filepath.Join(dir, "script.kts"))
	writeFile(t, filepath.Join(dir, "notes.txt"))
	writeFile(t, filepath.Join(dir, "pkg", "nested", "c.kt"))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "dir.kt"), 0o755))

	paths, err := Find(dir, "")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.kt"),
		filepath.Join(dir, "b.kt"),
		filepath.Join(dir, "pkg", "nested", "c.kt"),
	}, paths)

	paths, err = Find(dir, ".kts")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "script.kts")}, paths)
}

func TestFindRejectsInvalidRoot(t *testing.T) {
	_, err := Find(filepath.Join(t.TempDir(), "missing"), KotlinExt)
	var invalid *InvalidInputError
	assert.True(t, errors.As(err, &invalid))
}
