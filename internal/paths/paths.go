package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"

	"pyforge/internal/config"
	"pyforge/internal/settings"
)

// HomeEnv overrides the base directory.
const HomeEnv = "PYFORGE_HOME"

// ErrHomeUnavailable is returned when no base directory can be determined.
var ErrHomeUnavailable = errors.New("home directory unavailable")

// HomePaths captures canonical locations under the pyforge home directory.
type HomePaths struct {
	Root          string
	ConfigFile    string
	ToolchainsDir string
	SettingsFile  string
	LockFile      string
	LogsDir       string
}

// Resolve determines the home directory from PYFORGE_HOME, falling back to
// ~/.pyforge.
func Resolve() (HomePaths, error) {
	if override := strings.TrimSpace(os.Getenv(HomeEnv)); override != "" {
		root, err := filepath.Abs(override)
		if err != nil {
			return HomePaths{}, fmt.Errorf("%w: resolve %s: %v", ErrHomeUnavailable, HomeEnv, err)
		}
		return newHomePaths(root), nil
	}

	home, err := homedir.Dir()
	if err != nil || home == "" {
		return HomePaths{}, fmt.Errorf("%w: %v", ErrHomeUnavailable, err)
	}
	return newHomePaths(filepath.Join(home, ".pyforge")), nil
}

// At returns the layout rooted at root.
func At(root string) HomePaths {
	return newHomePaths(root)
}

func newHomePaths(root string) HomePaths {
	toolchains := filepath.Join(root, "toolchains")
	return HomePaths{
		Root:          root,
		ConfigFile:    filepath.Join(root, "config.yaml"),
		ToolchainsDir: toolchains,
		SettingsFile:  filepath.Join(toolchains, settings.FileName),
		LockFile:      filepath.Join(toolchains, ".lock"),
		LogsDir:       filepath.Join(root, "logs"),
	}
}

// ApplyConfig relocates the toolchains directory when the config names one.
// Relative paths are taken from the home root.
func ApplyConfig(hp HomePaths, cfg config.Config) HomePaths {
	dir := strings.TrimSpace(cfg.ToolchainsDir)
	if dir == "" {
		return hp
	}
	if expanded, err := homedir.Expand(dir); err == nil {
		dir = expanded
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(hp.Root, dir)
	}
	hp.ToolchainsDir = filepath.Clean(dir)
	hp.SettingsFile = filepath.Join(hp.ToolchainsDir, settings.FileName)
	hp.LockFile = filepath.Join(hp.ToolchainsDir, ".lock")
	return hp
}

// Toolchain returns the default install location for a toolchain name.
func (h HomePaths) Toolchain(name string) string {
	return filepath.Join(h.ToolchainsDir, name)
}

// EnsureDirs creates the home, toolchains and logs directories.
func (h HomePaths) EnsureDirs() error {
	for _, dir := range []string{h.Root, h.ToolchainsDir, h.LogsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// FileExists reports whether a path exists and is a regular file.
func FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// DirExists reports whether a path exists and is a directory.
func DirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}
