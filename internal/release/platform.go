package release

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrUnsupportedArchitecture is returned for CPU architectures with no
// published builds.
var ErrUnsupportedArchitecture = errors.New("unsupported architecture")

// DefaultKind is the runtime flavour installed when none is requested.
const DefaultKind = "cpython"

// Platform identifies the host using Go's GOOS/GOARCH names.
type Platform struct {
	GOOS   string
	GOARCH string
}

// CurrentPlatform describes the running process.
func CurrentPlatform() Platform {
	return Platform{GOOS: runtime.GOOS, GOARCH: runtime.GOARCH}
}

// OS maps GOOS onto the catalog's operating system label.
func (p Platform) OS() string {
	switch p.GOOS {
	case "darwin", "ios":
		return "apple"
	case "windows":
		return "windows"
	default:
		return "linux"
	}
}

// Architecture maps GOARCH onto the catalog's architecture token.
func (p Platform) Architecture() (string, error) {
	switch p.GOARCH {
	case "amd64":
		return "x86_64", nil
	case "arm64":
		return "aarch64", nil
	case "386":
		return "i686", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedArchitecture, p.GOARCH)
	}
}

// BuildConfiguration returns the preferred optimisation profile.
func (p Platform) BuildConfiguration() string {
	if p.GOOS == "windows" {
		return "pgo"
	}
	return "pgo+lto"
}

// Defaults returns the selection options implied by the platform alone.
func (p Platform) Defaults() (Options, error) {
	arch, err := p.Architecture()
	if err != nil {
		return Options{}, err
	}
	return Options{
		Kind:               DefaultKind,
		OS:                 p.OS(),
		Architecture:       arch,
		BuildConfiguration: p.BuildConfiguration(),
	}, nil
}
