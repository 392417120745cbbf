package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"pyforge/internal/release"
)

func TestParseAsset(t *testing.T) {
	tests := []struct {
		name string
		want release.Release
		ok   bool
	}{
		{
			name: "cpython-3.12.1+20240107-aarch64-apple-darwin-pgo+lto-full.tar.zst",
			want: release.Release{Kind: "cpython", Version: release.NewVersion(3, 12, 1), OS: "apple", Architecture: "aarch64", BuildConfiguration: "pgo+lto"},
			ok:   true,
		},
		{
			name: "cpython-3.11.7+20240107-i686-pc-windows-msvc-shared-pgo-full.tar.zst",
			want: release.Release{Kind: "cpython", Version: release.NewVersion(3, 11, 7), OS: "windows", Architecture: "i686", BuildConfiguration: "pgo"},
			ok:   true,
		},
		{name: "cpython-3.12.1+20240107-x86_64-unknown-linux-gnu-debug-full.tar.zst"},
		{name: "cpython-3.12.1+20240107-x86_64-unknown-linux-gnu-install_only.tar.gz"},
		{name: "cpython-3.12.1+20231002-x86_64-unknown-linux-gnu-pgo+lto-full.tar.zst"},
		{name: "cpython-3.12.1+20240107-x86_64-unknown-linux-gnu-pgo+lto-full.tar.zst.sha256"},
	}
	for _, tt := range tests {
		got, ok := parseAsset(tt.name, "20240107")
		if ok != tt.ok {
			t.Errorf("parseAsset(%q): expected ok=%v, got %v", tt.name, tt.ok, ok)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("parseAsset(%q) mismatch (-want +got):\n%s", tt.name, diff)
		}
	}
}

func TestParseSums(t *testing.T) {
	doc := "abc123  cpython-a.tar.zst\ndef456 *cpython-b.tar.zst\n\nmalformed\n"
	want := map[string]string{"cpython-a.tar.zst": "abc123", "cpython-b.tar.zst": "def456"}
	if diff := cmp.Diff(want, parseSums(doc)); diff != "" {
		t.Fatalf("sums mismatch (-want +got):\n%s", diff)
	}
	if got := firstField("ABCDEF  file\n"); got != "ABCDEF" {
		t.Fatalf("expected ABCDEF, got %q", got)
	}
}

func TestRenderOrdersAndFormats(t *testing.T) {
	sum := strings.Repeat("a", 64)
	c := release.Catalog{
		{Kind: "cpython", Version: release.NewVersion(3, 11, 7), OS: "windows", Architecture: "x86_64", BuildConfiguration: "pgo", URL: "https://example.com/b", Checksum: sum},
		{Kind: "cpython", Version: release.NewVersion(3, 12, 1), OS: "apple", Architecture: "aarch64", BuildConfiguration: "pgo+lto", URL: "https://example.com/a", Checksum: sum},
		{Kind: "cpython", Version: release.NewVersion(3, 12, 1), OS: "linux", Architecture: "x86_64", BuildConfiguration: "pgo+lto", URL: "https://example.com/c", Checksum: sum},
	}

	src, err := render(c)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	out := string(src)
	if !strings.HasPrefix(out, "// Code generated by gencatalog; DO NOT EDIT.") {
		t.Fatalf("missing generated header:\n%s", out)
	}
	linux := strings.Index(out, "https://example.com/c")
	apple := strings.Index(out, "https://example.com/a")
	older := strings.Index(out, "https://example.com/b")
	if !(linux < apple && apple < older) {
		t.Fatalf("unexpected ordering:\n%s", out)
	}
	if !strings.Contains(out, "NewVersion(3, 12, 1)") {
		t.Fatalf("expected version constructor:\n%s", out)
	}
}

func TestDedupeKeepsFirst(t *testing.T) {
	a := release.Release{Kind: "cpython", Version: release.NewVersion(3, 12, 1), OS: "linux", Architecture: "x86_64", BuildConfiguration: "pgo+lto", URL: "new"}
	b := a
	b.URL = "old"
	got := dedupe(release.Catalog{a, b})
	if len(got) != 1 || got[0].URL != "new" {
		t.Fatalf("expected first entry kept, got %+v", got)
	}
}

func TestCatalogForTag(t *testing.T) {
	const tag = "20240107"
	linux := "cpython-3.12.1+20240107-x86_64-unknown-linux-gnu-pgo+lto-full.tar.zst"
	apple := "cpython-3.12.1+20240107-aarch64-apple-darwin-pgo+lto-full.tar.zst"
	debug := "cpython-3.12.1+20240107-x86_64-unknown-linux-gnu-debug-full.tar.zst"
	linuxSum := strings.Repeat("A", 64)

	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/acme/pbs/releases/tags/" + tag:
			rel := githubRelease{TagName: tag}
			for _, name := range []string{linux, linux + ".sha256", apple, debug} {
				rel.Assets = append(rel.Assets, githubReleaseAsset{Name: name, BrowserDownloadURL: srv.URL + "/dl/" + name})
			}
			json.NewEncoder(w).Encode(rel)
		case "/dl/" + linux + ".sha256":
			fmt.Fprintf(w, "%s  %s\n", linuxSum, linux)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	orig := apiBase
	apiBase = srv.URL
	t.Cleanup(func() { apiBase = orig })

	got, err := catalogForTag(context.Background(), srv.Client(), "acme/pbs", tag)
	if err != nil {
		t.Fatalf("catalogForTag: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected only the checksummed linux build, got %+v", got)
	}
	if got[0].Checksum != strings.ToLower(linuxSum) || got[0].Architecture != "x86_64" || got[0].URL != srv.URL+"/dl/"+linux {
		t.Fatalf("unexpected entry %+v", got[0])
	}
}
