// Package config loads the optional project file that sets defaults for the
// command line flags
package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
	"gitlab.com/tozd/go/errors"
)

// FileName is the project file looked up in the scanned directory when no
// file is given explicitly
const FileName = ".ktdecl.toml"

// Config holds every setting of a run
type Config struct {
	// Parser is either native or tree-sitter
	Parser string `toml:"parser"`
	// Visibility is the name of the visibility policy
	Visibility string `toml:"visibility"`
	// Ext is the extension of the source files, without the dot
	Ext string `toml:"ext"`
	// Jobs is the number of files processed at once, zero for one per CPU
	Jobs int `toml:"jobs"`
	// Format is one of text, json or dot
	Format  string `toml:"format"`
	Verbose bool   `toml:"verbose"`
}

// Default returns the settings used when nothing else is given
func Default() Config {
	return Config{
		Parser:     "native",
		Visibility: "transitive",
		Ext:        "kt",
		Format:     "text",
	}
}

// Load reads the file at path over the defaults. When path is empty the
// project file in dir is used if there is one
func Load(path, dir string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = filepath.Join(dir, FileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, errors.Errorf("reading config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
