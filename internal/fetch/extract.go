package fetch

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

type archiveFormat string

const (
	archiveFormatTarZst archiveFormat = "tar.zst"
	archiveFormatTarGz  archiveFormat = "tar.gz"
)

func formatFromURL(rawURL string) (archiveFormat, error) {
	name := rawURL
	if parsed, err := url.Parse(rawURL); err == nil {
		name = parsed.Path
	}
	name = strings.ToLower(path.Base(name))
	switch {
	case strings.HasSuffix(name, ".tar.zst"):
		return archiveFormatTarZst, nil
	case strings.HasSuffix(name, ".tar.gz"), strings.HasSuffix(name, ".tgz"):
		return archiveFormatTarGz, nil
	default:
		return "", fmt.Errorf("%w: unsupported archive format for %s", ErrExtract, rawURL)
	}
}

func extract(format archiveFormat, r io.Reader, dest string) error {
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("%w: prepare extract dir: %v", ErrExtract, err)
	}

	switch format {
	case archiveFormatTarZst:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return fmt.Errorf("%w: zstd reader: %v", ErrExtract, err)
		}
		defer dec.Close()
		return untarStream(dec, dest)
	case archiveFormatTarGz:
		gz, err := gzip.NewReader(r)
		if err != nil {
			return fmt.Errorf("%w: gzip reader: %v", ErrExtract, err)
		}
		defer gz.Close()
		return untarStream(gz, dest)
	default:
		return fmt.Errorf("%w: unsupported archive format %q", ErrExtract, format)
	}
}

func untarStream(r io.Reader, dest string) error {
	tr := tar.NewReader(r)
	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: read tar header: %v", ErrExtract, err)
		}

		target, err := entryPath(dest, header.Name)
		if err != nil {
			return err
		}
		if err := checkParents(dest, target); err != nil {
			return err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, dirMode(header.Mode)); err != nil {
				return fmt.Errorf("%w: create dir %s: %v", ErrExtract, target, err)
			}
		case tar.TypeReg:
			if err := writeFile(tr, target, os.FileMode(header.Mode).Perm()); err != nil {
				return err
			}
		case tar.TypeSymlink:
			if err := writeSymlink(dest, target, header.Linkname); err != nil {
				return err
			}
		case tar.TypeLink:
			source, err := entryPath(dest, header.Linkname)
			if err != nil {
				return err
			}
			if err := checkParents(dest, source); err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("%w: prepare link %s: %v", ErrExtract, target, err)
			}
			_ = os.Remove(target)
			if err := os.Link(source, target); err != nil {
				return fmt.Errorf("%w: link %s: %v", ErrExtract, target, err)
			}
		default:
			// Devices, fifos and pax metadata are not part of runtime archives.
		}
	}
	return nil
}

func writeFile(r io.Reader, target string, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("%w: prepare file %s: %v", ErrExtract, target, err)
	}
	if isSymlink(target) {
		if err := os.Remove(target); err != nil {
			return fmt.Errorf("%w: replace symlink %s: %v", ErrExtract, target, err)
		}
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("%w: create file %s: %v", ErrExtract, target, err)
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return fmt.Errorf("%w: write file %s: %v", ErrExtract, target, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("%w: close file %s: %v", ErrExtract, target, err)
	}
	return nil
}

func writeSymlink(dest, target, linkname string) error {
	if !linkStaysWithin(dest, filepath.Dir(target), filepath.FromSlash(linkname)) {
		return fmt.Errorf("%w: symlink %s escapes %s", ErrExtract, target, dest)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("%w: prepare symlink %s: %v", ErrExtract, target, err)
	}
	_ = os.Remove(target)
	if err := os.Symlink(filepath.FromSlash(linkname), target); err != nil {
		return fmt.Errorf("%w: symlink %s: %v", ErrExtract, target, err)
	}
	return nil
}

func entryPath(dest, name string) (string, error) {
	target := filepath.Join(dest, filepath.FromSlash(name))
	if !within(dest, target) {
		return "", fmt.Errorf("%w: entry %q escapes %s", ErrExtract, name, dest)
	}
	return target, nil
}

// checkParents refuses target when an existing directory between dest and
// target is a symlink.
func checkParents(dest, target string) error {
	rel, err := filepath.Rel(dest, filepath.Dir(target))
	if err != nil {
		return fmt.Errorf("%w: entry %s: %v", ErrExtract, target, err)
	}
	if rel == "." {
		return nil
	}
	cur := dest
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		cur = filepath.Join(cur, part)
		info, err := os.Lstat(cur)
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: stat %s: %v", ErrExtract, cur, err)
		}
		if info.Mode()&os.ModeSymlink != 0 {
			return fmt.Errorf("%w: entry %s passes through symlink %s", ErrExtract, target, cur)
		}
	}
	return nil
}

// linkStaysWithin walks linkname from dir one component at a time. Every
// step must stay inside dest, and only the final component may be a symlink.
func linkStaysWithin(dest, dir, linkname string) bool {
	if filepath.IsAbs(linkname) {
		if !within(dest, linkname) {
			return false
		}
		rel, err := filepath.Rel(dir, linkname)
		if err != nil {
			return false
		}
		linkname = rel
	}
	parts := strings.Split(linkname, string(filepath.Separator))
	cur := dir
	for i, part := range parts {
		switch part {
		case "", ".":
			continue
		case "..":
			cur = filepath.Dir(cur)
		default:
			cur = filepath.Join(cur, part)
		}
		if !within(dest, cur) {
			return false
		}
		if i < len(parts)-1 && isSymlink(cur) {
			return false
		}
	}
	return true
}

func isSymlink(p string) bool {
	info, err := os.Lstat(p)
	return err == nil && info.Mode()&os.ModeSymlink != 0
}

func within(root, target string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(target))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func dirMode(mode int64) os.FileMode {
	perm := os.FileMode(mode).Perm()
	if perm == 0 {
		return 0o755
	}
	return perm | 0o700
}
