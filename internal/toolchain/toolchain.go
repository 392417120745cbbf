// Package toolchain installs, inspects and removes self-contained Python
// toolchains and resolves which one applies to a directory.
package toolchain

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
)

var (
	// ErrAlreadyExists is returned when an install target is already present.
	ErrAlreadyExists = errors.New("toolchain already exists")
	// ErrToolchainNotFound is returned when resolution finds no toolchain.
	ErrToolchainNotFound = errors.New("toolchain not found")
	// ErrParseChannel is returned for unparsable channel strings.
	ErrParseChannel = errors.New("invalid channel")
	// ErrUnsupported is returned for operations a toolchain cannot perform,
	// such as removing its own runtime.
	ErrUnsupported = errors.New("unsupported operation")
	// ErrOutsideScope guards recursive removal outside a designated root.
	ErrOutsideScope = errors.New("path outside permitted root")
	// ErrRuntimeMissing is returned when an archive does not contain the
	// expected interpreter.
	ErrRuntimeMissing = errors.New("runtime executable missing")
)

// RuntimeName is the generic name of the interpreter proxy.
const RuntimeName = "python"

// LocalToolchain is an installed toolchain directory.
type LocalToolchain struct {
	Root    string  `json:"root"`
	Name    string  `json:"name"`
	Channel Channel `json:"channel"`
}

// New describes the toolchain rooted at root. The name is the last path
// component, or "default" when there is none.
func New(root string, channel Channel) LocalToolchain {
	root = filepath.Clean(root)
	name := filepath.Base(root)
	if name == "." || name == string(filepath.Separator) {
		name = "default"
	}
	return LocalToolchain{Root: root, Name: name, Channel: channel}
}

// Bin is the directory holding tool proxies.
func (t LocalToolchain) Bin() string { return filepath.Join(t.Root, "bin") }

// Downloads holds the extracted runtime archive.
func (t LocalToolchain) Downloads() string { return filepath.Join(t.Root, "downloads") }

// Venvs holds the toolchain's virtual environments.
func (t LocalToolchain) Venvs() string { return filepath.Join(t.Root, "venvs") }

// Venv is the toolchain's own environment.
func (t LocalToolchain) Venv() string { return filepath.Join(t.Venvs(), t.Name) }

// Exists reports whether the root directory is present.
func (t LocalToolchain) Exists() bool {
	info, err := os.Stat(t.Root)
	return err == nil && info.IsDir()
}

// Tool returns the proxy for name; it may not exist.
func (t LocalToolchain) Tool(name string) LocalTool {
	return LocalTool{Name: name, Path: filepath.Join(t.Bin(), name)}
}

// Tools lists the registered proxies in bin, sorted by name.
func (t LocalToolchain) Tools() ([]LocalTool, error) {
	entries, err := os.ReadDir(t.Bin())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	tools := make([]LocalTool, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		tools = append(tools, t.Tool(entry.Name()))
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].Name < tools[j].Name })
	return tools, nil
}

// LocalTool is one executable proxy in a toolchain's bin directory.
type LocalTool struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Exists reports whether the proxy is present.
func (t LocalTool) Exists() bool {
	_, err := os.Lstat(t.Path)
	return err == nil
}

// Info is a read-only toolchain summary.
type Info struct {
	Name    string   `json:"name"`
	Channel string   `json:"channel"`
	Root    string   `json:"root"`
	Bin     string   `json:"bin"`
	Tools   []string `json:"tools"`
}

// Info summarises the toolchain.
func (t LocalToolchain) Info() (Info, error) {
	tools, err := t.Tools()
	if err != nil {
		return Info{}, err
	}
	names := make([]string, 0, len(tools))
	for _, tool := range tools {
		names = append(names, tool.Name)
	}
	return Info{
		Name:    t.Name,
		Channel: t.Channel.String(),
		Root:    t.Root,
		Bin:     t.Bin(),
		Tools:   names,
	}, nil
}
