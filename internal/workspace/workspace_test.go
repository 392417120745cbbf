package workspace

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestResolveRootOutermostWins(t *testing.T) {
	base := t.TempDir()
	outer := filepath.Join(base, "mono")
	inner := filepath.Join(outer, "pkgs", "api")
	touch(t, filepath.Join(outer, "pyproject.toml"))
	touch(t, filepath.Join(inner, "pyproject.toml"))
	touch(t, filepath.Join(outer, "cli", "pyproject.toml"))
	if err := os.MkdirAll(filepath.Join(outer, "docs"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	ws, err := ResolveRoot(filepath.Join(inner, "src"), File("pyproject.toml"))
	if err != nil {
		t.Fatalf("ResolveRoot: %v", err)
	}
	if ws.Root != outer {
		t.Fatalf("expected root %s, got %s", outer, ws.Root)
	}
	want := []string{filepath.Join(outer, "cli")}
	if diff := cmp.Diff(want, ws.Members); diff != "" {
		t.Fatalf("members mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveFirstNearestWins(t *testing.T) {
	base := t.TempDir()
	outer := filepath.Join(base, "mono")
	inner := filepath.Join(outer, "pkgs", "api")
	touch(t, filepath.Join(outer, "pyproject.toml"))
	touch(t, filepath.Join(inner, "pyproject.toml"))

	got, err := ResolveFirst(filepath.Join(inner, "src", "api"), File("pyproject.toml"))
	if err != nil {
		t.Fatalf("ResolveFirst: %v", err)
	}
	if got != inner {
		t.Fatalf("expected %s, got %s", inner, got)
	}
}

func TestDirMarker(t *testing.T) {
	base := t.TempDir()
	repo := filepath.Join(base, "repo")
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	touch(t, filepath.Join(repo, "nested", ".git"))

	ws, err := ResolveRoot(filepath.Join(repo, "nested"), Dir(".git"))
	if err != nil {
		t.Fatalf("ResolveRoot: %v", err)
	}
	if ws.Root != repo {
		t.Fatalf("expected %s, got %s", repo, ws.Root)
	}
	if len(ws.Members) != 0 {
		t.Fatalf("expected a .git file not to count as a dir marker, got %v", ws.Members)
	}
}

func TestResolveRootNotFound(t *testing.T) {
	_, err := ResolveRoot(t.TempDir(), File("pyforge-marker-that-does-not-exist.toml"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
