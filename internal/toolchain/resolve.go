package toolchain

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"pyforge/internal/manifest"
	"pyforge/internal/settings"
	"pyforge/internal/workspace"
)

// OverrideEnv names a toolchain root that bypasses every other rule.
const OverrideEnv = "PYFORGE_TOOLCHAIN"

// ManifestReader returns the toolchain declared by the manifest in dir.
type ManifestReader func(dir string) (string, bool, error)

// Resolver finds the toolchain that applies to a directory.
type Resolver struct {
	ToolchainsDir string
	SettingsFile  string
	ManifestName  string
	ReadManifest  ManifestReader
	Logger        zerolog.Logger
}

// ResolveOptions are the inputs of a resolution.
type ResolveOptions struct {
	Start    string
	Channel  *Channel
	Override string
}

// NewResolver returns a resolver reading pyproject.toml manifests.
func NewResolver(toolchainsDir, settingsFile string) Resolver {
	return Resolver{
		ToolchainsDir: toolchainsDir,
		SettingsFile:  settingsFile,
		ManifestName:  manifest.FileName,
		ReadManifest:  manifest.ReadToolchain,
		Logger:        zerolog.Nop(),
	}
}

// Resolve applies, in order: the override root, the explicit channel, the
// nearest manifest declaration, and the scope settings of Start and its
// ancestors. An unreadable manifest declares nothing.
func (r Resolver) Resolve(opts ResolveOptions) (LocalToolchain, error) {
	if opts.Override != "" {
		if tc, ok := existing(opts.Override); ok {
			return tc, nil
		}
	}

	if opts.Channel != nil {
		return r.FindChannel(*opts.Channel)
	}

	start, err := filepath.Abs(opts.Start)
	if err != nil {
		return LocalToolchain{}, fmt.Errorf("resolve start directory: %w", err)
	}

	if ch, ok, err := r.manifestChannel(start); err != nil {
		return LocalToolchain{}, err
	} else if ok {
		return r.FindChannel(ch)
	}

	db := settings.Load(r.SettingsFile)
	for dir := start; ; {
		if root, ok := db.Get(dir); ok {
			return New(root, channelFromName(filepath.Base(root))), nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return LocalToolchain{}, fmt.Errorf("%w for %s", ErrToolchainNotFound, start)
}

// FindChannel returns the installed toolchain whose directory name matches
// the channel, ignoring case.
func (r Resolver) FindChannel(ch Channel) (LocalToolchain, error) {
	want := ch.String()
	entries, err := os.ReadDir(r.ToolchainsDir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return LocalToolchain{}, fmt.Errorf("read toolchains dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() && strings.EqualFold(entry.Name(), want) {
			return New(filepath.Join(r.ToolchainsDir, entry.Name()), ch), nil
		}
	}
	return LocalToolchain{}, fmt.Errorf("%w: no %q toolchain installed", ErrToolchainNotFound, want)
}

func (r Resolver) manifestChannel(start string) (Channel, bool, error) {
	if r.ReadManifest == nil || r.ManifestName == "" {
		return Channel{}, false, nil
	}
	dir, err := workspace.ResolveFirst(start, workspace.File(r.ManifestName))
	if err != nil {
		if errors.Is(err, workspace.ErrNotFound) {
			return Channel{}, false, nil
		}
		return Channel{}, false, err
	}
	declared, ok, err := r.ReadManifest(dir)
	if err != nil {
		r.Logger.Warn().Err(err).Str("dir", dir).Msg("ignoring unreadable manifest")
		return Channel{}, false, nil
	}
	if !ok {
		return Channel{}, false, nil
	}
	ch, err := ParseChannel(declared)
	if err != nil {
		return Channel{}, false, fmt.Errorf("%s in %s: %w", r.ManifestName, dir, err)
	}
	return ch, true, nil
}

func existing(root string) (LocalToolchain, bool) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return LocalToolchain{}, false
	}
	tc := New(abs, channelFromName(filepath.Base(abs)))
	return tc, tc.Exists()
}
