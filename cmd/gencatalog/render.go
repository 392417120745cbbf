package main

import (
	"bytes"
	"fmt"
	"go/format"
	"slices"
	"text/template"

	"pyforge/internal/release"
)

var catalogTemplate = template.Must(template.New("catalog").Parse(`// Code generated by gencatalog; DO NOT EDIT.

package release

// catalog lists python-build-standalone builds, newest tag first.
var catalog = Catalog{
{{- range .}}
	{Kind: {{printf "%q" .Kind}}, Version: NewVersion({{.Version.Major}}, {{.Version.Minor}}, {{.Version.Patch}}), OS: {{printf "%q" .OS}}, Architecture: {{printf "%q" .Architecture}}, BuildConfiguration: {{printf "%q" .BuildConfiguration}}, URL: {{printf "%q" .URL}}, Checksum: {{printf "%q" .Checksum}}},
{{- end}}
}
`))

var (
	osOrder   = []string{"linux", "apple", "windows"}
	archOrder = []string{"x86_64", "aarch64", "i686"}
)

// render emits gofmt'd source, newest version first and a fixed platform
// order within a version.
func render(c release.Catalog) ([]byte, error) {
	sorted := slices.Clone(c)
	slices.SortStableFunc(sorted, func(a, b release.Release) int {
		if cmp := b.Version.Compare(a.Version); cmp != 0 {
			return cmp
		}
		if d := slices.Index(osOrder, a.OS) - slices.Index(osOrder, b.OS); d != 0 {
			return d
		}
		return slices.Index(archOrder, a.Architecture) - slices.Index(archOrder, b.Architecture)
	})

	var buf bytes.Buffer
	if err := catalogTemplate.Execute(&buf, sorted); err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated source: %w", err)
	}
	return src, nil
}
