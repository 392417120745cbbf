package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestInsertGetRemove(t *testing.T) {
	db := New()
	db.Insert("/ws", "/toolchains/default")

	got, ok := db.Get("/ws")
	if !ok || got != "/toolchains/default" {
		t.Fatalf("expected /toolchains/default, got %q (ok=%v)", got, ok)
	}
	if _, ok := db.Get("/ws/"); !ok {
		t.Fatal("expected trailing separator to resolve to the same scope")
	}

	db.Remove("/ws")
	if _, ok := db.Get("/ws"); ok {
		t.Fatal("expected scope removed")
	}
}

func TestRemoveByToolchain(t *testing.T) {
	db := New()
	db.Insert("/a", "/toolchains/3.12")
	db.Insert("/b", "/toolchains/3.12")
	db.Insert("/c", "/toolchains/default")

	if n := db.RemoveByToolchain("/toolchains/3.12/"); n != 2 {
		t.Fatalf("expected 2 removals, got %d", n)
	}
	if _, ok := db.Get("/a"); ok {
		t.Error("expected /a removed")
	}
	if _, ok := db.Get("/b"); ok {
		t.Error("expected /b removed")
	}
	if got, _ := db.Get("/c"); got != "/toolchains/default" {
		t.Errorf("expected /c untouched, got %q", got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toolchains", FileName)

	db := New()
	db.Insert("/ws", "/toolchains/default")
	db.Insert("/other project", "/toolchains/3.11")
	if err := db.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded := Load(path)
	want := []Entry{
		{Scope: "/other project", Toolchain: "/toolchains/3.11"},
		{Scope: "/ws", Toolchain: "/toolchains/default"},
	}
	if diff := cmp.Diff(want, loaded.Entries()); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissingFile(t *testing.T) {
	db := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if db.Len() != 0 {
		t.Fatalf("expected empty store, got %d entries", db.Len())
	}
	db.Insert("/ws", "/toolchains/default")
	if db.Len() != 1 {
		t.Fatalf("expected store to be usable after empty load")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("[scopes\n= nonsense"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if db := Load(path); db.Len() != 0 {
		t.Fatalf("expected empty store, got %d entries", db.Len())
	}
}

func TestLoadSanitizesValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	doc := `[scopes]
"/ws" = "\"/toolchains/default\""
"/trailing" = "/toolchains/3.12\\"
"/empty" = "  "
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	db := Load(path)
	if got, _ := db.Get("/ws"); got != "/toolchains/default" {
		t.Errorf("expected quotes stripped, got %q", got)
	}
	if got, _ := db.Get("/trailing"); got != "/toolchains/3.12" {
		t.Errorf("expected trailing backslash stripped, got %q", got)
	}
	if _, ok := db.Get("/empty"); ok {
		t.Error("expected blank value to be dropped")
	}
	if n := db.RemoveByToolchain("/toolchains/default"); n != 1 {
		t.Errorf("expected sanitized value to match reverse lookup, removed %d", n)
	}
}
