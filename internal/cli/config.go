package cli

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/truchet/pkg/errors"
	"github.com/matzehuels/truchet/pkg/pipeline"
)

// loadConfig reads pipeline options from a TOML file. An explicit path must
// exist; when path is empty the default location is tried and a missing file
// yields zero options.
//
// Example config.toml:
//
//	seed = 7
//	width = 1200
//	height = 1200
//	max_depth = 5
//	foreground = "#1d3557"
//	background = "#f1faee"
//	formats = ["svg", "png"]
func loadConfig(path string) (pipeline.Options, string, error) {
	var opts pipeline.Options

	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return opts, "", nil
		}
		path = filepath.Join(dir, configFile)
	}

	if _, err := os.Stat(path); err != nil {
		missing := stderrors.Is(err, fs.ErrNotExist)
		switch {
		case missing && !explicit:
			return opts, "", nil
		case missing:
			return opts, "", errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return opts, "", errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}

	md, err := toml.DecodeFile(path, &opts)
	if err != nil {
		return opts, "", errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return opts, "", errors.New(errors.ErrCodeInvalidConfig, "config %s: unknown key %q", path, undecoded[0].String())
	}
	return opts, path, nil
}
