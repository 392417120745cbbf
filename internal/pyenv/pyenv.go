// Package pyenv creates isolated Python environments and drives pip inside
// them.
package pyenv

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"pyforge/internal/platform"
)

// ErrCommand wraps a failed interpreter or pip invocation.
var ErrCommand = errors.New("command failed")

// Env is a virtual environment rooted at Dir.
type Env struct {
	Dir    string
	facts  platform.Facts
	runner CommandRunner
	log    zerolog.Logger
}

// Open returns a handle for an environment at dir without touching disk.
func Open(dir string, facts platform.Facts, runner CommandRunner, logger zerolog.Logger) *Env {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Env{
		Dir:    dir,
		facts:  facts,
		runner: runner,
		log:    logger.With().Str("component", "pyenv").Str("venv", dir).Logger(),
	}
}

// Create runs `interpreter -m venv dir`, linking the interpreter where the
// platform allows it.
func Create(ctx context.Context, interpreter, dir string, facts platform.Facts, runner CommandRunner, logger zerolog.Logger) (*Env, error) {
	env := Open(dir, facts, runner, logger)
	args := []string{"-m", "venv", dir}
	if facts.SymlinksPreferred() {
		args = append(args, "--symlinks")
	}
	if err := env.run(ctx, interpreter, args...); err != nil {
		return nil, fmt.Errorf("create environment %s: %w", dir, err)
	}
	return env, nil
}

// BinDir is the environment's executables directory.
func (e *Env) BinDir() string {
	return filepath.Join(e.Dir, e.facts.BinDir)
}

// Executable returns the path of an executable named name in the environment.
func (e *Env) Executable(name string) string {
	return filepath.Join(e.BinDir(), e.facts.Exe(name))
}

// Python is the environment's interpreter.
func (e *Env) Python() string {
	return e.Executable("python")
}

// Install runs pip install for each package.
func (e *Env) Install(ctx context.Context, packages ...string) error {
	return e.pip(ctx, append([]string{"install"}, packages...)...)
}

// Upgrade runs pip install --upgrade for each package.
func (e *Env) Upgrade(ctx context.Context, packages ...string) error {
	return e.pip(ctx, append([]string{"install", "--upgrade"}, packages...)...)
}

// Uninstall runs pip uninstall -y for each package.
func (e *Env) Uninstall(ctx context.Context, packages ...string) error {
	args := append([]string{"uninstall"}, packages...)
	return e.pip(ctx, append(args, "-y")...)
}

func (e *Env) pip(ctx context.Context, args ...string) error {
	return e.run(ctx, e.Python(), append([]string{"-m", "pip"}, args...)...)
}

func (e *Env) run(ctx context.Context, name string, args ...string) error {
	e.log.Debug().Str("cmd", name).Strs("args", args).Msg("exec")
	_, stderr, code, err := e.runner.Run(ctx, name, args...)
	if err != nil {
		msg := strings.TrimSpace(string(stderr))
		e.log.Error().Int32("exit_code", code).Str("stderr", msg).Msg("exec failed")
		if msg != "" {
			return fmt.Errorf("%w: %s %s: exit %d: %s", ErrCommand, filepath.Base(name), strings.Join(args, " "), code, msg)
		}
		return fmt.Errorf("%w: %s %s: %v", ErrCommand, filepath.Base(name), strings.Join(args, " "), err)
	}
	return nil
}
