// Package workspace locates project roots by walking parent directories for
// a marker file or directory.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ErrNotFound is returned when no ancestor carries the marker.
var ErrNotFound = errors.New("workspace marker not found")

// Marker identifies a project root.
type Marker struct {
	Name string
	Dir  bool
}

// File returns a marker satisfied by a regular file named name.
func File(name string) Marker { return Marker{Name: name} }

// Dir returns a marker satisfied by a directory named name.
func Dir(name string) Marker { return Marker{Name: name, Dir: true} }

// Present reports whether dir contains the marker.
func (m Marker) Present(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, m.Name))
	if err != nil {
		return false
	}
	if m.Dir {
		return info.IsDir()
	}
	return info.Mode().IsRegular()
}

// Workspace is a resolved root with the immediate children that are projects
// in their own right.
type Workspace struct {
	Root    string
	Members []string
}

// ResolveRoot returns the outermost ancestor of start (inclusive) carrying
// the marker.
func ResolveRoot(start string, marker Marker) (Workspace, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return Workspace{}, fmt.Errorf("resolve %s: %w", start, err)
	}

	root := ""
	for {
		if marker.Present(dir) {
			root = dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	if root == "" {
		return Workspace{}, fmt.Errorf("%w: %s above %s", ErrNotFound, marker.Name, start)
	}

	members, err := members(root, marker)
	if err != nil {
		return Workspace{}, err
	}
	return Workspace{Root: root, Members: members}, nil
}

// ResolveFirst returns the nearest ancestor of start (inclusive) carrying
// the marker.
func ResolveFirst(start string, marker Marker) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", start, err)
	}
	for {
		if marker.Present(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: %s above %s", ErrNotFound, marker.Name, start)
		}
		dir = parent
	}
}

func members(root string, marker Marker) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read workspace root: %w", err)
	}
	var out []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		child := filepath.Join(root, entry.Name())
		if marker.Present(child) {
			out = append(out, child)
		}
	}
	sort.Strings(out)
	return out, nil
}
