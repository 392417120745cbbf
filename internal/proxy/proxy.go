package proxy

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"pyforge/internal/platform"
)

// ErrLink matches every *LinkError.
var ErrLink = errors.New("link failed")

// LinkError reports that no registration strategy succeeded.
type LinkError struct {
	Source string
	Link   string
	Err    error
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("register %s as %s: %v", e.Source, e.Link, e.Err)
}

func (e *LinkError) Unwrap() error { return e.Err }

func (e *LinkError) Is(target error) bool { return target == ErrLink }

// Register makes original reachable at link. It tries a symbolic link, then a
// hard link, then a byte copy when allowCopy is set.
func Register(facts platform.Facts, original, link string, allowCopy bool) error {
	source, err := resolveSource(original)
	if err != nil {
		return &LinkError{Source: original, Link: link, Err: err}
	}

	if err := os.MkdirAll(filepath.Dir(link), 0o755); err != nil {
		return &LinkError{Source: source, Link: link, Err: err}
	}

	symErr := facts.Symlink(source, link)
	if symErr == nil {
		return nil
	}
	if err := facts.Link(source, link); err == nil {
		return nil
	}
	if !allowCopy {
		return &LinkError{Source: source, Link: link, Err: symErr}
	}
	if err := copyFile(source, link); err != nil {
		return &LinkError{Source: source, Link: link, Err: errors.Join(symErr, err)}
	}
	return nil
}

// resolveSource follows original one level when it is a symlink, anchoring
// relative targets at original's directory.
func resolveSource(original string) (string, error) {
	info, err := os.Lstat(original)
	if err != nil {
		return "", err
	}
	if info.Mode()&os.ModeSymlink != 0 {
		target, err := os.Readlink(original)
		if err != nil {
			return "", err
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(original), target)
		}
		return filepath.Abs(target)
	}

	abs, err := filepath.Abs(original)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

func copyFile(src, dst string) error {
	source, err := os.Open(src)
	if err != nil {
		return err
	}
	defer source.Close()

	info, err := source.Stat()
	if err != nil {
		return err
	}

	dest, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(dest, source); err != nil {
		dest.Close()
		return err
	}
	return dest.Close()
}
