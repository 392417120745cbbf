// Package settings persists which toolchain applies to which directory scope.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the settings document stored in the toolchains directory.
const FileName = "settings.toml"

// Entry pairs a scope directory with a toolchain root.
type Entry struct {
	Scope     string
	Toolchain string
}

type document struct {
	Scopes map[string]string `toml:"scopes"`
}

// DB is an in-memory view of the settings document. Mutations are not
// persisted until Save.
type DB struct {
	scopes map[string]string
}

// New returns an empty store.
func New() *DB {
	return &DB{scopes: map[string]string{}}
}

// Load reads the store at path. A missing or unparsable file yields an empty
// store so first use never fails.
func Load(path string) *DB {
	db := New()
	contents, err := os.ReadFile(path)
	if err != nil {
		return db
	}
	var doc document
	if err := toml.Unmarshal(contents, &doc); err != nil {
		return db
	}
	for scope, root := range doc.Scopes {
		root = sanitize(root)
		if root == "" {
			continue
		}
		db.scopes[normalize(scope)] = root
	}
	return db
}

// Save writes the store to path atomically.
func (db *DB) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("prepare settings directory: %w", err)
	}

	buf, err := toml.Marshal(document{Scopes: db.scopes})
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "settings-*.toml")
	if err != nil {
		return fmt.Errorf("create temp settings: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(buf); err != nil {
		tmp.Close()
		return fmt.Errorf("write settings temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close settings temp: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace settings: %w", err)
	}
	return nil
}

// Insert maps scope to a toolchain root, replacing any previous entry.
func (db *DB) Insert(scope, toolchainRoot string) {
	db.scopes[normalize(scope)] = filepath.Clean(toolchainRoot)
}

// Remove deletes the entry for scope.
func (db *DB) Remove(scope string) {
	delete(db.scopes, normalize(scope))
}

// Get returns the toolchain root for scope.
func (db *DB) Get(scope string) (string, bool) {
	root, ok := db.scopes[normalize(scope)]
	return root, ok
}

// RemoveByToolchain deletes every scope pointing at toolchainRoot and
// returns how many were removed.
func (db *DB) RemoveByToolchain(toolchainRoot string) int {
	want := filepath.Clean(toolchainRoot)
	removed := 0
	for scope, root := range db.scopes {
		if samePath(root, want) {
			delete(db.scopes, scope)
			removed++
		}
	}
	return removed
}

// Entries returns all entries sorted by scope.
func (db *DB) Entries() []Entry {
	out := make([]Entry, 0, len(db.scopes))
	for scope, root := range db.scopes {
		out = append(out, Entry{Scope: scope, Toolchain: root})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Scope < out[j].Scope })
	return out
}

// Len reports the number of scopes.
func (db *DB) Len() int {
	return len(db.scopes)
}

func normalize(scope string) string {
	if abs, err := filepath.Abs(scope); err == nil {
		return abs
	}
	return filepath.Clean(scope)
}

// sanitize strips quoting and escape residue left by hand-edited documents.
func sanitize(value string) string {
	value = strings.TrimSpace(value)
	value = strings.Trim(value, `"'`)
	value = strings.TrimRight(value, `\`)
	if value == "" {
		return ""
	}
	return filepath.Clean(value)
}

func samePath(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}
