// Package manifest reads the toolchain declaration from a project's
// pyproject.toml.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the project manifest looked up in each directory.
const FileName = "pyproject.toml"

// Manifest holds the fields of pyproject.toml this tool reads.
type Manifest struct {
	Project struct {
		Name string `toml:"name"`
	} `toml:"project"`
	Tool struct {
		Pyforge struct {
			Toolchain string `toml:"toolchain"`
		} `toml:"pyforge"`
	} `toml:"tool"`
}

// Load decodes the manifest at path.
func Load(path string) (Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return Manifest{}, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return m, nil
}

// Toolchain returns the declared toolchain identifier, if any.
func (m Manifest) Toolchain() (string, bool) {
	tc := strings.TrimSpace(m.Tool.Pyforge.Toolchain)
	return tc, tc != ""
}

// ReadToolchain loads the manifest in dir and returns its toolchain
// declaration. A directory without a manifest declares nothing.
func ReadToolchain(dir string) (string, bool, error) {
	m, err := Load(filepath.Join(dir, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	tc, ok := m.Toolchain()
	return tc, ok, nil
}
