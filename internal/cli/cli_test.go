package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"pyforge/internal/fetch"
	"pyforge/internal/lockfile"
	"pyforge/internal/manifest"
	"pyforge/internal/paths"
	"pyforge/internal/release"
	"pyforge/internal/settings"
	"pyforge/internal/toolchain"
)

type testHome struct {
	root       string
	toolchains string
}

func newTestHome(t *testing.T) testHome {
	t.Helper()
	root := filepath.Join(t.TempDir(), "home")
	t.Setenv(paths.HomeEnv, root)
	t.Setenv(toolchain.OverrideEnv, "")
	t.Setenv(LogLevelEnv, "")
	return testHome{root: root, toolchains: filepath.Join(root, "toolchains")}
}

// toolchainDir fakes an installed toolchain with the given bin entries.
func (h testHome) toolchainDir(t *testing.T, name string, tools ...string) string {
	t.Helper()
	root := filepath.Join(h.toolchains, name)
	if err := os.MkdirAll(filepath.Join(root, "bin"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, tool := range tools {
		if err := os.WriteFile(filepath.Join(root, "bin", tool), []byte("#!/bin/sh\n"), 0o755); err != nil {
			t.Fatalf("write tool: %v", err)
		}
	}
	return root
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestDescribeError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("install: %w", toolchain.ErrAlreadyExists), "toolchain already exists"},
		{fmt.Errorf("resolve release: %w", release.ErrReleaseNotFound), "no matching Python release"},
		{fmt.Errorf("download runtime: https://x: %w", fetch.ErrChecksumMismatch), "download failed checksum verification"},
		{fmt.Errorf("download runtime: %w: cpython-3.12.1", release.ErrUnverified), "release has no published checksum; regenerate the catalog with gencatalog"},
		{errors.Join(fmt.Errorf("x: %w", fetch.ErrTransfer), fmt.Errorf("cleanup: %w", toolchain.ErrOutsideScope)), "download failed"},
		{fmt.Errorf("acquire lock: %w: %w", lockfile.ErrLocked, context.DeadlineExceeded), "another pyforge process holds the toolchains lock"},
		{toolchain.ErrToolchainNotFound, "no toolchain found"},
		{errors.New("boom"), "unexpected failure"},
	}
	for _, tt := range tests {
		if got := describeError(tt.err); got != tt.want {
			t.Errorf("describeError(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestToolchainListJSON(t *testing.T) {
	home := newTestHome(t)
	home.toolchainDir(t, "default")
	home.toolchainDir(t, "3.12")
	chdir(t, t.TempDir())

	out, _, err := runCLI(t, "toolchain", "list", "--json")
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	var got []listEntry
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	want := []listEntry{
		{Name: "3.12", Channel: "3.12", Root: filepath.Join(home.toolchains, "3.12")},
		{Name: "default", Channel: "default", Root: filepath.Join(home.toolchains, "default")},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestToolchainListEmpty(t *testing.T) {
	newTestHome(t)
	chdir(t, t.TempDir())

	out, _, err := runCLI(t, "toolchain", "list", "--no-progress")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "No toolchains installed") {
		t.Fatalf("expected empty hint, got %q", out)
	}
}

func TestToolchainUseThenInfo(t *testing.T) {
	home := newTestHome(t)
	home.toolchainDir(t, "default", "python")
	home.toolchainDir(t, "3.12", "python", "ruff")

	project := t.TempDir()
	pkg := filepath.Join(project, "pkg")
	if err := os.MkdirAll(pkg, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(project, manifest.FileName), []byte("[project]\nname = \"demo\"\n"), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	chdir(t, pkg)

	if _, _, err := runCLI(t, "toolchain", "use", "3.12", "--no-progress"); err != nil {
		t.Fatalf("use: %v", err)
	}

	db := settings.Load(filepath.Join(home.toolchains, settings.FileName))
	cwd, _ := os.Getwd()
	wsRoot := filepath.Dir(cwd)
	if root, ok := db.Get(wsRoot); !ok || filepath.Base(root) != "3.12" {
		t.Fatalf("expected scope %s -> 3.12, got %q (%v)", wsRoot, root, ok)
	}

	out, _, err := runCLI(t, "toolchain", "info", "--json")
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	var info toolchain.Info
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if info.Name != "3.12" {
		t.Fatalf("expected 3.12 from scope settings, got %s", info.Name)
	}
	if diff := cmp.Diff([]string{"python", "ruff"}, info.Tools); diff != "" {
		t.Fatalf("tools mismatch (-want +got):\n%s", diff)
	}
}

func TestToolchainInfoOverrideEnv(t *testing.T) {
	home := newTestHome(t)
	home.toolchainDir(t, "default")
	custom := filepath.Join(t.TempDir(), "custom")
	if err := os.MkdirAll(filepath.Join(custom, "bin"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	t.Setenv(toolchain.OverrideEnv, custom)
	chdir(t, t.TempDir())

	out, _, err := runCLI(t, "toolchain", "info", "--channel", "default", "--json")
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	var info toolchain.Info
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if info.Root != custom {
		t.Fatalf("expected override root %s, got %s", custom, info.Root)
	}
}

func TestToolchainInfoNotFound(t *testing.T) {
	newTestHome(t)
	chdir(t, t.TempDir())

	_, _, err := runCLI(t, "toolchain", "info", "--no-progress")
	if !errors.Is(err, toolchain.ErrToolchainNotFound) {
		t.Fatalf("expected ErrToolchainNotFound, got %v", err)
	}
}

func TestToolchainInstallRejectsBadChannel(t *testing.T) {
	newTestHome(t)

	_, _, err := runCLI(t, "toolchain", "install", "latest")
	if !errors.Is(err, toolchain.ErrParseChannel) {
		t.Fatalf("expected ErrParseChannel, got %v", err)
	}
}

func TestToolchainInstallExistingTarget(t *testing.T) {
	home := newTestHome(t)
	home.toolchainDir(t, "3.11")

	_, _, err := runCLI(t, "toolchain", "install", "3.11", "--no-progress")
	if !errors.Is(err, toolchain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestToolchainRunUnregisteredTool(t *testing.T) {
	home := newTestHome(t)
	home.toolchainDir(t, "default", "python")
	chdir(t, t.TempDir())

	_, _, err := runCLI(t, "toolchain", "run", "--channel", "default", "black", "--check", ".")
	if !errors.Is(err, errToolNotRegistered) {
		t.Fatalf("expected errToolNotRegistered, got %v", err)
	}
}

func TestToolchainRemoveRuntimeRefused(t *testing.T) {
	home := newTestHome(t)
	home.toolchainDir(t, "default", "python")
	chdir(t, t.TempDir())

	_, _, err := runCLI(t, "toolchain", "remove", "python3", "--channel", "default", "--no-progress")
	if !errors.Is(err, toolchain.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestToolEnv(t *testing.T) {
	tc := toolchain.New("/home/u/.pyforge/toolchains/3.12", toolchain.DefaultChannel())
	env := toolEnv([]string{"HOME=/home/u", "PATH=/usr/bin", toolchain.OverrideEnv + "=/elsewhere"}, tc)

	want := []string{
		"HOME=/home/u",
		"PATH=" + tc.Bin() + string(os.PathListSeparator) + "/usr/bin",
		toolchain.OverrideEnv + "=" + tc.Root,
	}
	if diff := cmp.Diff(want, env); diff != "" {
		t.Fatalf("env mismatch (-want +got):\n%s", diff)
	}
}

func TestWorkspaceScope(t *testing.T) {
	outer := t.TempDir()
	inner := filepath.Join(outer, "libs", "core")
	if err := os.MkdirAll(inner, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, dir := range []string{outer, inner} {
		if err := os.WriteFile(filepath.Join(dir, manifest.FileName), nil, 0o644); err != nil {
			t.Fatalf("write manifest: %v", err)
		}
	}

	scope, err := workspaceScope(inner)
	if err != nil {
		t.Fatalf("workspaceScope: %v", err)
	}
	if scope != outer {
		t.Fatalf("expected outermost root %s, got %s", outer, scope)
	}

	bare := t.TempDir()
	if scope, err := workspaceScope(bare); err != nil || scope != bare {
		t.Fatalf("expected %s without a manifest, got %s (%v)", bare, scope, err)
	}
}

func TestConfigPathsJSON(t *testing.T) {
	home := newTestHome(t)

	out, _, err := runCLI(t, "config", "paths", "--json")
	if err != nil {
		t.Fatalf("config paths: %v", err)
	}
	var got map[string]string
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["toolchains"] != home.toolchains {
		t.Fatalf("expected toolchains %s, got %s", home.toolchains, got["toolchains"])
	}
	if got["settings"] != filepath.Join(home.toolchains, settings.FileName) {
		t.Fatalf("unexpected settings path %s", got["settings"])
	}
}

func TestConfigValidateReportsErrors(t *testing.T) {
	home := newTestHome(t)
	if err := os.MkdirAll(home.root, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	doc := "version: 1\ndefault_tools: [ruff, pip]\nlogging:\n  level: loud\n"
	if err := os.WriteFile(filepath.Join(home.root, "config.yaml"), []byte(doc), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, _, err := runCLI(t, "config", "validate")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(out, "error") {
		t.Fatalf("expected findings in output, got %q", out)
	}

	if _, _, err := runCLI(t, "toolchain", "list"); err == nil {
		t.Fatal("expected commands to refuse an invalid config")
	}
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent to testing.T.Chdir in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("restore working directory: %v", err)
		}
	})
}
