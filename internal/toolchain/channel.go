package toolchain

import (
	"fmt"
	"strings"

	"pyforge/internal/release"
)

// ChannelKind discriminates Channel variants.
type ChannelKind int

const (
	ChannelDefault ChannelKind = iota
	ChannelVersion
	ChannelDescriptor
)

// Descriptor selects a release by any subset of its catalog fields.
type Descriptor struct {
	Kind               string
	Version            *release.Version
	OS                 string
	Architecture       string
	BuildConfiguration string
}

// Channel names which runtime a toolchain provides. The zero value is the
// default channel.
type Channel struct {
	kind       ChannelKind
	version    release.Version
	descriptor Descriptor
}

// DefaultChannel selects the newest release for the host.
func DefaultChannel() Channel {
	return Channel{kind: ChannelDefault}
}

// VersionChannel selects a release line.
func VersionChannel(v release.Version) Channel {
	return Channel{kind: ChannelVersion, version: v}
}

// DescriptorChannel selects by explicit release fields. Descriptor channels
// render to a string but cannot be parsed back.
func DescriptorChannel(d Descriptor) Channel {
	if d.Version != nil {
		v := *d.Version
		d.Version = &v
	}
	return Channel{kind: ChannelDescriptor, descriptor: d}
}

// ParseChannel accepts "default" or a version such as "3.12" or "3.12.1".
func ParseChannel(s string) (Channel, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "default") {
		return DefaultChannel(), nil
	}
	v, err := release.ParseVersion(s)
	if err != nil {
		return Channel{}, fmt.Errorf("%w: %q: %v", ErrParseChannel, s, err)
	}
	return VersionChannel(v), nil
}

// Kind reports the variant.
func (c Channel) Kind() ChannelKind { return c.kind }

// Version returns the version of a version channel.
func (c Channel) Version() (release.Version, bool) {
	return c.version, c.kind == ChannelVersion
}

// Descriptor returns the fields of a descriptor channel.
func (c Channel) Descriptor() (Descriptor, bool) {
	return c.descriptor, c.kind == ChannelDescriptor
}

// String returns the canonical form used for directory names.
func (c Channel) String() string {
	switch c.kind {
	case ChannelVersion:
		return c.version.String()
	case ChannelDescriptor:
		d := c.descriptor
		var parts []string
		for _, p := range []string{d.Kind, versionString(d.Version), d.OS, d.Architecture, d.BuildConfiguration} {
			if p != "" {
				parts = append(parts, p)
			}
		}
		return strings.Join(parts, "-")
	default:
		return "default"
	}
}

// Strategy converts the channel into a catalog resolution strategy.
func (c Channel) Strategy() release.Strategy {
	switch c.kind {
	case ChannelVersion:
		v := c.version
		return release.Selection(release.Options{Version: &v})
	case ChannelDescriptor:
		d := c.descriptor
		return release.Selection(release.Options{
			Kind:               d.Kind,
			OS:                 d.OS,
			Architecture:       d.Architecture,
			BuildConfiguration: d.BuildConfiguration,
			Version:            d.Version,
		})
	default:
		return release.Latest()
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Channel) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func versionString(v *release.Version) string {
	if v == nil {
		return ""
	}
	return v.String()
}
