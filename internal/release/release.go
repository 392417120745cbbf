package release

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrReleaseNotFound is returned when no catalog entry satisfies a strategy.
	ErrReleaseNotFound = errors.New("release not found")
	// ErrUnverified marks a catalog entry without a published digest.
	ErrUnverified = errors.New("release has no published checksum")
)

// Release is one downloadable runtime build.
type Release struct {
	Kind               string  `json:"kind" validate:"required,oneof=cpython"`
	Version            Version `json:"version"`
	OS                 string  `json:"os" validate:"required,oneof=apple linux windows"`
	Architecture       string  `json:"architecture" validate:"required,oneof=x86_64 aarch64 i686"`
	BuildConfiguration string  `json:"build_configuration" validate:"required"`
	URL                string  `json:"url" validate:"required,url"`
	Checksum           string  `json:"checksum,omitempty" validate:"omitempty,len=64,hexadecimal"`
	// Unverified entries have no published digest and cannot be installed.
	Unverified         bool    `json:"unverified,omitempty"`
}

// String renders the release as kind-version-os-arch-build.
func (r Release) String() string {
	return strings.Join([]string{r.Kind, r.Version.String(), r.OS, r.Architecture, r.BuildConfiguration}, "-")
}

// Catalog is an immutable set of known releases.
type Catalog []Release

// Default returns a copy of the compiled-in catalog.
func Default() Catalog {
	return slices.Clone(catalog)
}

// Options narrows a selection. Empty fields fall back to platform defaults.
type Options struct {
	Kind               string
	OS                 string
	Architecture       string
	BuildConfiguration string
	Version            *RequestedVersion
}

// Strategy picks either the newest release for the platform or a selection
// constrained by Options.
type Strategy struct {
	latest  bool
	options Options
}

// Latest selects the highest version matching the platform defaults.
func Latest() Strategy {
	return Strategy{latest: true}
}

// Selection selects by the given options.
func Selection(opts Options) Strategy {
	return Strategy{options: opts}
}

// Resolver matches strategies against a catalog for a platform.
type Resolver struct {
	Catalog  Catalog
	Platform Platform
}

// NewResolver returns a resolver over the compiled-in catalog for the running
// platform.
func NewResolver() Resolver {
	return Resolver{Catalog: Default(), Platform: CurrentPlatform()}
}

// Resolve returns the best release for the strategy.
func (r Resolver) Resolve(s Strategy) (Release, error) {
	defaults, err := r.Platform.Defaults()
	if err != nil {
		return Release{}, err
	}

	opts := defaults
	if !s.latest {
		opts = mergeOptions(s.options, defaults)
	}

	candidates := make([]Release, 0, 8)
	for _, rel := range r.Catalog {
		if rel.Kind == opts.Kind &&
			rel.OS == opts.OS &&
			rel.Architecture == opts.Architecture &&
			rel.BuildConfiguration == opts.BuildConfiguration {
			candidates = append(candidates, rel)
		}
	}
	if len(candidates) == 0 {
		return Release{}, fmt.Errorf("%w: %s", ErrReleaseNotFound, describe(opts))
	}

	slices.SortStableFunc(candidates, func(a, b Release) int {
		return b.Version.Compare(a.Version)
	})

	if opts.Version == nil {
		return candidates[0], nil
	}
	for _, rel := range candidates {
		if rel.Version.Matches(*opts.Version) {
			return rel, nil
		}
	}
	return Release{}, fmt.Errorf("%w: %s", ErrReleaseNotFound, describe(opts))
}

func mergeOptions(opts, defaults Options) Options {
	if opts.Kind == "" {
		opts.Kind = defaults.Kind
	}
	if opts.OS == "" {
		opts.OS = defaults.OS
	}
	if opts.Architecture == "" {
		opts.Architecture = defaults.Architecture
	}
	if opts.BuildConfiguration == "" {
		opts.BuildConfiguration = defaults.BuildConfiguration
	}
	return opts
}

func describe(opts Options) string {
	parts := []string{opts.Kind}
	if opts.Version != nil {
		parts = append(parts, opts.Version.String())
	}
	parts = append(parts, opts.OS, opts.Architecture, opts.BuildConfiguration)
	return strings.Join(parts, "-")
}
