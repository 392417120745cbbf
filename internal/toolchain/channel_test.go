package toolchain

import (
	"errors"
	"testing"

	"pyforge/internal/release"
)

func TestParseChannelRoundTrip(t *testing.T) {
	for _, in := range []string{"default", "3.12", "3.12.1", "3.8.18", "4.0"} {
		ch, err := ParseChannel(in)
		if err != nil {
			t.Fatalf("ParseChannel(%q): %v", in, err)
		}
		again, err := ParseChannel(ch.String())
		if err != nil {
			t.Fatalf("ParseChannel(%q): %v", ch.String(), err)
		}
		if again != ch {
			t.Errorf("round trip of %q: expected %+v, got %+v", in, ch, again)
		}
		if ch.String() != in {
			t.Errorf("expected canonical %q, got %q", in, ch.String())
		}
	}
}

func TestParseChannelRejects(t *testing.T) {
	for _, in := range []string{"", "3", "latest", "cpython-3.12", "3.12-linux"} {
		if _, err := ParseChannel(in); !errors.Is(err, ErrParseChannel) {
			t.Errorf("ParseChannel(%q): expected ErrParseChannel, got %v", in, err)
		}
	}
}

func TestZeroChannelIsDefault(t *testing.T) {
	var ch Channel
	if ch.Kind() != ChannelDefault || ch.String() != "default" {
		t.Fatalf("expected default channel, got %v %q", ch.Kind(), ch.String())
	}
}

// Descriptor channels render but do not parse.
func TestDescriptorString(t *testing.T) {
	v := release.Version{Major: 3, Minor: 11}
	ch := DescriptorChannel(Descriptor{Kind: "cpython", Version: &v, Architecture: "aarch64"})
	if got := ch.String(); got != "cpython-3.11-aarch64" {
		t.Fatalf("expected cpython-3.11-aarch64, got %q", got)
	}
	if _, err := ParseChannel(ch.String()); err == nil {
		t.Fatal("expected descriptor form to be rejected by the parser")
	}

	v.Minor = 12
	if got := ch.String(); got != "cpython-3.11-aarch64" {
		t.Fatalf("descriptor must not alias caller's version, got %q", got)
	}
}

func TestChannelStrategy(t *testing.T) {
	catalog := release.Catalog{
		{Kind: "cpython", Version: release.NewVersion(3, 12, 1), OS: "linux", Architecture: "x86_64", BuildConfiguration: "pgo+lto"},
		{Kind: "cpython", Version: release.NewVersion(3, 11, 7), OS: "linux", Architecture: "x86_64", BuildConfiguration: "pgo+lto"},
		{Kind: "cpython", Version: release.NewVersion(3, 11, 7), OS: "linux", Architecture: "aarch64", BuildConfiguration: "pgo+lto"},
	}
	r := release.Resolver{Catalog: catalog, Platform: release.Platform{GOOS: "linux", GOARCH: "amd64"}}

	rel, err := r.Resolve(DefaultChannel().Strategy())
	if err != nil || rel.Version != release.NewVersion(3, 12, 1) {
		t.Fatalf("default: expected 3.12.1, got %s (%v)", rel.Version, err)
	}

	ch, _ := ParseChannel("3.11")
	rel, err = r.Resolve(ch.Strategy())
	if err != nil || rel.Version != release.NewVersion(3, 11, 7) || rel.Architecture != "x86_64" {
		t.Fatalf("version: expected x86_64 3.11.7, got %s (%v)", rel, err)
	}

	rel, err = r.Resolve(DescriptorChannel(Descriptor{Architecture: "aarch64"}).Strategy())
	if err != nil || rel.Architecture != "aarch64" {
		t.Fatalf("descriptor: expected aarch64, got %s (%v)", rel, err)
	}
}
