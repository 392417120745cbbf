package release

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrInvalidVersion is returned when a version string cannot be parsed.
var ErrInvalidVersion = errors.New("invalid version")

var versionPattern = regexp.MustCompile(`^(\d+)(?:\.(\d+))?(?:\.(\d+))?$`)

// Version identifies a runtime release as major.minor[.patch].
type Version struct {
	Major    uint8 `json:"major"`
	Minor    uint8 `json:"minor"`
	Patch    uint8 `json:"patch,omitempty"`
	HasPatch bool  `json:"has_patch,omitempty"`
}

// RequestedVersion is a version constraint; a constraint without a patch
// matches every patch of its minor line.
type RequestedVersion = Version

// NewVersion builds a fully qualified version.
func NewVersion(major, minor, patch uint8) Version {
	return Version{Major: major, Minor: minor, Patch: patch, HasPatch: true}
}

// ParseVersion parses "X.Y" or "X.Y.Z". A bare major is rejected.
func ParseVersion(s string) (Version, error) {
	m := versionPattern.FindStringSubmatch(s)
	if m == nil {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}
	if m[2] == "" {
		return Version{}, fmt.Errorf("%w: %q is missing a minor component", ErrInvalidVersion, s)
	}

	major, err := parseComponent(m[1])
	if err != nil {
		return Version{}, fmt.Errorf("%w: %q: %v", ErrInvalidVersion, s, err)
	}
	minor, err := parseComponent(m[2])
	if err != nil {
		return Version{}, fmt.Errorf("%w: %q: %v", ErrInvalidVersion, s, err)
	}

	v := Version{Major: major, Minor: minor}
	if m[3] != "" {
		patch, err := parseComponent(m[3])
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q: %v", ErrInvalidVersion, s, err)
		}
		v.Patch = patch
		v.HasPatch = true
	}
	return v, nil
}

func parseComponent(s string) (uint8, error) {
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, err
	}
	return uint8(n), nil
}

// String renders the version, omitting an absent patch.
func (v Version) String() string {
	if v.HasPatch {
		return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	}
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// MinorString renders "major.minor".
func (v Version) MinorString() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Compare orders versions by major, minor then patch. A missing patch sorts
// above every concrete patch of the same minor.
func (v Version) Compare(other Version) int {
	if c := compareUint(v.Major, other.Major); c != 0 {
		return c
	}
	if c := compareUint(v.Minor, other.Minor); c != 0 {
		return c
	}
	switch {
	case v.HasPatch && other.HasPatch:
		return compareUint(v.Patch, other.Patch)
	case v.HasPatch:
		return -1
	case other.HasPatch:
		return 1
	default:
		return 0
	}
}

// Matches reports whether v satisfies the constraint c: major and minor must
// be equal, and the patch only when c names one.
func (v Version) Matches(c RequestedVersion) bool {
	if v.Major != c.Major || v.Minor != c.Minor {
		return false
	}
	if !c.HasPatch {
		return true
	}
	return v.HasPatch && v.Patch == c.Patch
}

func compareUint(a, b uint8) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
