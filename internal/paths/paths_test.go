package paths

import (
	"os"
	"path/filepath"
	"testing"

	"pyforge/internal/config"
)

func TestResolveHonorsHomeEnv(t *testing.T) {
	root := t.TempDir()
	t.Setenv(HomeEnv, root)

	hp, err := Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if hp.Root != root {
		t.Fatalf("expected root %s, got %s", root, hp.Root)
	}
	if hp.SettingsFile != filepath.Join(root, "toolchains", "settings.toml") {
		t.Fatalf("unexpected settings file %s", hp.SettingsFile)
	}
	if hp.LockFile != filepath.Join(root, "toolchains", ".lock") {
		t.Fatalf("unexpected lock file %s", hp.LockFile)
	}
	if hp.ConfigFile != filepath.Join(root, "config.yaml") {
		t.Fatalf("unexpected config file %s", hp.ConfigFile)
	}
}

func TestResolveFallsBackToUserHome(t *testing.T) {
	t.Setenv(HomeEnv, "  ")

	hp, err := Resolve()
	if err != nil {
		t.Skipf("no user home in this environment: %v", err)
	}
	if filepath.Base(hp.Root) != ".pyforge" {
		t.Fatalf("expected ~/.pyforge, got %s", hp.Root)
	}
}

func TestApplyConfigRelative(t *testing.T) {
	root := t.TempDir()
	hp := At(root)

	cfg := config.Config{ToolchainsDir: "runtimes"}
	applied := ApplyConfig(hp, cfg)

	expected := filepath.Join(root, "runtimes")
	if applied.ToolchainsDir != expected {
		t.Fatalf("expected toolchains dir %s, got %s", expected, applied.ToolchainsDir)
	}
	if applied.SettingsFile != filepath.Join(expected, "settings.toml") {
		t.Fatalf("expected settings to follow toolchains dir, got %s", applied.SettingsFile)
	}
	if applied.LockFile != filepath.Join(expected, ".lock") {
		t.Fatalf("expected lock to follow toolchains dir, got %s", applied.LockFile)
	}
	if applied.ConfigFile != hp.ConfigFile {
		t.Fatalf("expected config file unchanged, got %s", applied.ConfigFile)
	}
}

func TestApplyConfigAbsolute(t *testing.T) {
	root := t.TempDir()
	other := filepath.Join(t.TempDir(), "shared")

	applied := ApplyConfig(At(root), config.Config{ToolchainsDir: other})
	if applied.ToolchainsDir != other {
		t.Fatalf("expected absolute toolchains dir %s, got %s", other, applied.ToolchainsDir)
	}
}

func TestApplyConfigEmpty(t *testing.T) {
	hp := At(t.TempDir())
	if applied := ApplyConfig(hp, config.Config{}); applied != hp {
		t.Fatalf("expected unchanged paths, got %+v", applied)
	}
}

func TestEnsureDirs(t *testing.T) {
	hp := At(filepath.Join(t.TempDir(), "home"))
	if err := hp.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs: %v", err)
	}
	for _, dir := range []string{hp.Root, hp.ToolchainsDir, hp.LogsDir} {
		ok, err := DirExists(dir)
		if err != nil || !ok {
			t.Fatalf("expected %s to exist (%v)", dir, err)
		}
	}
	if got := hp.Toolchain("3.12"); got != filepath.Join(hp.ToolchainsDir, "3.12") {
		t.Fatalf("unexpected toolchain path %s", got)
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(file, []byte("version: 1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if ok, err := FileExists(file); err != nil || !ok {
		t.Fatalf("expected file to exist, got %v %v", ok, err)
	}
	if ok, err := FileExists(dir); err != nil || ok {
		t.Fatalf("expected directory to not count as file, got %v %v", ok, err)
	}
	if ok, err := FileExists(filepath.Join(dir, "missing")); err != nil || ok {
		t.Fatalf("expected missing file, got %v %v", ok, err)
	}
}
