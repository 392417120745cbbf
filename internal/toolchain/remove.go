package toolchain

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// removeWithin recursively deletes path only when it lies strictly inside
// one of roots. A root itself and anything above it is never removed.
func removeWithin(path string, roots ...string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	absRoots := make([]string, 0, len(roots))
	for _, root := range roots {
		if root == "" {
			continue
		}
		absRoot, err := filepath.Abs(root)
		if err != nil {
			return err
		}
		if isWithin(absPath, absRoot) {
			return os.RemoveAll(absPath)
		}
		absRoots = append(absRoots, absRoot)
	}
	return fmt.Errorf("%w: %s is not under %s", ErrOutsideScope, absPath, strings.Join(absRoots, " or "))
}

func isWithin(path, root string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(path))
	if err != nil {
		return false
	}
	if rel == "." || rel == ".." || filepath.IsAbs(rel) {
		return false
	}
	return !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
