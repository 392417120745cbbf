package main

import (
	"regexp"
	"strings"

	"pyforge/internal/release"
)

var assetPattern = regexp.MustCompile(`^cpython-(\d+\.\d+\.\d+)\+(\d+)-(.+)-full\.tar\.zst$`)

type target struct {
	os    string
	arch  string
	build string
}

// targets maps "<triple>-<build>" asset suffixes onto catalog fields.
var targets = map[string]target{
	"x86_64-unknown-linux-gnu-pgo+lto":  {"linux", "x86_64", "pgo+lto"},
	"aarch64-unknown-linux-gnu-pgo+lto": {"linux", "aarch64", "pgo+lto"},
	"x86_64-apple-darwin-pgo+lto":       {"apple", "x86_64", "pgo+lto"},
	"aarch64-apple-darwin-pgo+lto":      {"apple", "aarch64", "pgo+lto"},
	"x86_64-pc-windows-msvc-shared-pgo": {"windows", "x86_64", "pgo"},
	"i686-pc-windows-msvc-shared-pgo":   {"windows", "i686", "pgo"},
}

// parseAsset recognises a full zstd build for one of the supported targets.
func parseAsset(name, tag string) (release.Release, bool) {
	m := assetPattern.FindStringSubmatch(name)
	if m == nil || m[2] != tag {
		return release.Release{}, false
	}
	t, ok := targets[m[3]]
	if !ok {
		return release.Release{}, false
	}
	v, err := release.ParseVersion(m[1])
	if err != nil {
		return release.Release{}, false
	}
	return release.Release{
		Kind:               release.DefaultKind,
		Version:            v,
		OS:                 t.os,
		Architecture:       t.arch,
		BuildConfiguration: t.build,
	}, true
}

// parseSums reads a SHA256SUMS document of "<digest>  <file>" lines.
func parseSums(doc string) map[string]string {
	out := make(map[string]string)
	for _, line := range strings.Split(doc, "\n") {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		out[strings.TrimPrefix(fields[1], "*")] = fields[0]
	}
	return out
}

func firstField(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// dedupe keeps the first occurrence of every release, so newer tags listed
// first win.
func dedupe(c release.Catalog) release.Catalog {
	seen := make(map[string]struct{}, len(c))
	out := c[:0]
	for _, rel := range c {
		key := rel.String()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, rel)
	}
	return out
}
