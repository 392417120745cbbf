// Package platform isolates the filesystem conventions that differ between
// Windows and Unix-family hosts.
package platform

import (
	"os"
	"runtime"
)

// Facts describes the host conventions a toolchain depends on.
type Facts struct {
	// GOOS is the operating system the facts describe.
	GOOS string
	// BinDir is the executables directory inside runtimes and environments.
	BinDir string
	// ExeSuffix is appended to executable names.
	ExeSuffix string
	// Symlink and Link create symbolic and hard links.
	Symlink func(oldname, newname string) error
	Link    func(oldname, newname string) error
}

// Current returns facts for the running host.
func Current() Facts {
	return ForOS(runtime.GOOS)
}

// ForOS returns facts for goos backed by the real link primitives.
func ForOS(goos string) Facts {
	f := Facts{
		GOOS:    goos,
		BinDir:  "bin",
		Symlink: os.Symlink,
		Link:    os.Link,
	}
	if goos == "windows" {
		f.BinDir = "Scripts"
		f.ExeSuffix = ".exe"
	}
	return f
}

// Exe appends the executable suffix to name.
func (f Facts) Exe(name string) string {
	return name + f.ExeSuffix
}

// SymlinksPreferred reports whether environments should be created with
// symlinked interpreters.
func (f Facts) SymlinksPreferred() bool {
	return f.GOOS != "windows"
}
