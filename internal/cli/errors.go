package cli

import (
	"errors"
	"fmt"

	"pyforge/internal/fetch"
	"pyforge/internal/lockfile"
	"pyforge/internal/paths"
	"pyforge/internal/proxy"
	"pyforge/internal/pyenv"
	"pyforge/internal/release"
	"pyforge/internal/toolchain"
)

// exitError carries a child process exit code through cobra.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

var errorMessages = []struct {
	target  error
	message string
}{
	{toolchain.ErrAlreadyExists, "toolchain already exists"},
	{release.ErrReleaseNotFound, "no matching Python release"},
	{release.ErrUnsupportedArchitecture, "unsupported architecture"},
	{release.ErrInvalidVersion, "invalid version"},
	{release.ErrUnverified, "release has no published checksum; regenerate the catalog with gencatalog"},
	{fetch.ErrChecksumMismatch, "download failed checksum verification"},
	{fetch.ErrTransfer, "download failed"},
	{fetch.ErrExtract, "could not unpack runtime archive"},
	{proxy.ErrLink, "could not register executable"},
	{toolchain.ErrRuntimeMissing, "runtime missing from archive"},
	{toolchain.ErrToolchainNotFound, "no toolchain found"},
	{toolchain.ErrParseChannel, "invalid channel"},
	{toolchain.ErrUnsupported, "operation not supported"},
	{toolchain.ErrOutsideScope, "refusing to remove path outside its root"},
	{paths.ErrHomeUnavailable, "home directory unavailable"},
	{lockfile.ErrLocked, "another pyforge process holds the toolchains lock"},
	{pyenv.ErrCommand, "python command failed"},
	{errToolNotRegistered, "tool not registered in toolchain"},
}

// describeError maps an error onto a stable one-line message. The first
// matching kind wins, so more specific kinds come first.
func describeError(err error) string {
	for _, m := range errorMessages {
		if errors.Is(err, m.target) {
			return m.message
		}
	}
	return "unexpected failure"
}
