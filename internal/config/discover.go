package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

// fileNames lists the configuration files searched, in order. JavaScript
// files are found but cannot be loaded; package.json only counts when it
// carries a "release" key.
var fileNames = []string{
	".releaserc",
	".releaserc.json",
	".releaserc.yaml",
	".releaserc.yml",
	".releaserc.toml",
	"release.config.js",
	".releaserc.js",
	".releaserc.cjs",
	"release.config.cjs",
	"package.json",
}

// Discover returns the path of the first configuration file found in dir,
// or an empty string when there is none.
func Discover(dir string) (string, error) {
	for _, name := range fileNames {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return "", err
		}
		if info.IsDir() {
			continue
		}
		if name == "package.json" {
			data, err := os.ReadFile(path)
			if err != nil {
				return "", err
			}
			if _, err := decodeDocument(data, FormatPackageJSON); errors.Is(err, ErrNoReleaseKey) {
				continue
			}
		}
		return path, nil
	}
	return "", nil
}

// FileNames returns the configuration file names in search order.
func FileNames() []string {
	return slices.Clone(fileNames)
}

// FileNameFor returns the file name a new configuration in the given format
// is written to.
func FileNameFor(format Format) (string, error) {
	switch format {
	case FormatJSON:
		return ".releaserc.json", nil
	case FormatYAML:
		return ".releaserc.yaml", nil
	case FormatTOML:
		return ".releaserc.toml", nil
	case FormatJS:
		return "release.config.js", nil
	default:
		return "", fmt.Errorf("no configuration file name for format %q", format)
	}
}
