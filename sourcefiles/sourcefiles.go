// Package sourcefiles finds the source files that make up a project
package sourcefiles

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// KotlinExt is the extension of Kotlin source files, without the dot
const KotlinExt = "kt"

const (
	noInputMsg          = "No input found, please specify a working directory"
	invalidDirectoryMsg = "The specified file either doesn't exist, or isn't a directory. Please try something else"
)

// InvalidInputError is returned when the path to scan is missing or isn't a
// directory. Nothing can be processed after it
type InvalidInputError struct {
	Path string
	Msg  string
}

func (e *InvalidInputError) Error() string {
	return e.Msg
}

// Validate checks that the path names an existing directory
func Validate(path string) error {
	if path == "" {
		return &InvalidInputError{Msg: noInputMsg}
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return &InvalidInputError{Path: path, Msg: invalidDirectoryMsg}
	}
	return nil
}

// Find walks the directory and returns the path of every file with the given
// extension. Entries of each directory are visited in lexical order, so the
// result is deterministic. An empty extension means KotlinExt
func Find(root, ext string) ([]string, error) {
	if err := Validate(root); err != nil {
		return nil, err
	}
	if ext == "" {
		ext = KotlinExt
	}
	ext = "." + strings.TrimPrefix(ext, ".")

	var paths []string
	if err := filepath.WalkDir(root, fs.WalkDirFunc(
		func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return errors.Errorf("walking %s: %w", path, err)
			}

			// Only include files with the source extension
			if filepath.Ext(path) == ext && !d.IsDir() {
				paths = append(paths, path)
			}

			return nil
		},
	)); err != nil {
		return nil, err
	}

	return paths, nil
}
