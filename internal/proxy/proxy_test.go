package proxy

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"pyforge/internal/platform"
)

func noLinks() platform.Facts {
	f := platform.ForOS("linux")
	f.Symlink = func(string, string) error { return errors.New("symlinks disabled") }
	f.Link = func(string, string) error { return errors.New("hard links disabled") }
	return f
}

func writeExecutable(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o755); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestRegisterLinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink privileges vary on windows")
	}
	dir := t.TempDir()
	original := filepath.Join(dir, "venv", "bin", "ruff")
	writeExecutable(t, original, "ruff-binary")
	link := filepath.Join(dir, "bin", "ruff")

	if err := Register(platform.Current(), original, link, false); err != nil {
		t.Fatalf("Register: %v", err)
	}
	data, err := os.ReadFile(link)
	if err != nil {
		t.Fatalf("read link: %v", err)
	}
	if string(data) != "ruff-binary" {
		t.Fatalf("expected link to resolve to original contents, got %q", data)
	}
}

func TestRegisterWithoutLinkPrimitives(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "python3.12")
	writeExecutable(t, original, "runtime-bytes")
	link := filepath.Join(dir, "bin", "python")

	err := Register(noLinks(), original, link, false)
	if !errors.Is(err, ErrLink) {
		t.Fatalf("expected ErrLink, got %v", err)
	}
	var linkErr *LinkError
	if !errors.As(err, &linkErr) || linkErr.Err.Error() != "symlinks disabled" {
		t.Fatalf("expected the symlink error to be reported, got %v", err)
	}
	if _, statErr := os.Lstat(link); statErr == nil {
		t.Fatal("expected no file at link path")
	}

	if err := Register(noLinks(), original, link, true); err != nil {
		t.Fatalf("Register with copy: %v", err)
	}
	data, err := os.ReadFile(link)
	if err != nil {
		t.Fatalf("read copy: %v", err)
	}
	if string(data) != "runtime-bytes" {
		t.Fatalf("expected byte-identical copy, got %q", data)
	}
	info, err := os.Stat(link)
	if err != nil {
		t.Fatalf("stat copy: %v", err)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm()&0o100 == 0 {
		t.Fatalf("expected copy to stay executable, got %v", info.Mode())
	}
}

func TestRegisterFollowsRelativeSymlinkOneLevel(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink privileges vary on windows")
	}
	dir := t.TempDir()
	interp := filepath.Join(dir, "install", "bin", "python3.12")
	writeExecutable(t, interp, "interpreter")
	venvPython := filepath.Join(dir, "install", "bin", "python")
	if err := os.Symlink("python3.12", venvPython); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	var gotSource string
	facts := noLinks()
	facts.Symlink = func(oldname, newname string) error {
		gotSource = oldname
		return os.Symlink(oldname, newname)
	}

	link := filepath.Join(dir, "bin", "python")
	if err := Register(facts, venvPython, link, false); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if gotSource != interp {
		t.Fatalf("expected source %s, got %s", interp, gotSource)
	}
}

func TestRegisterMissingOriginal(t *testing.T) {
	dir := t.TempDir()
	err := Register(platform.Current(), filepath.Join(dir, "nope"), filepath.Join(dir, "bin", "nope"), true)
	if !errors.Is(err, ErrLink) {
		t.Fatalf("expected ErrLink, got %v", err)
	}
}
