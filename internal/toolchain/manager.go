package toolchain

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"pyforge/internal/lockfile"
	"pyforge/internal/platform"
	"pyforge/internal/proxy"
	"pyforge/internal/pyenv"
	"pyforge/internal/release"
	"pyforge/internal/settings"
)

// DefaultTools are installed into every new toolchain.
var DefaultTools = []string{"ruff", "mypy", "pytest"}

// ReleaseResolver picks a catalog release for a strategy.
type ReleaseResolver interface {
	Resolve(s release.Strategy) (release.Release, error)
}

// Acquirer downloads and unpacks a release into a directory.
type Acquirer interface {
	Acquire(ctx context.Context, rel release.Release, targetDir string) error
}

// Reporter observes install steps as they run.
type Reporter interface {
	Start(step string)
	Complete(step string, err error)
}

// NopReporter discards progress.
type NopReporter struct{}

func (NopReporter) Start(string)           {}
func (NopReporter) Complete(string, error) {}

// Install step names reported to a Reporter.
const (
	StepResolve     = "resolve release"
	StepDownload    = "download runtime"
	StepEnvironment = "create environment"
	StepRuntime     = "register runtime"
)

// ToolStep is the step name for installing a default tool.
func ToolStep(tool string) string {
	return "install " + tool
}

// InstallSteps lists the steps Install reports, in order.
func InstallSteps(tools []string) []string {
	steps := []string{StepResolve, StepDownload, StepEnvironment, StepRuntime}
	for _, tool := range tools {
		steps = append(steps, ToolStep(tool))
	}
	return steps
}

// ManagerConfig wires a Manager to its collaborators.
type ManagerConfig struct {
	// Home and ToolchainsDir bound every recursive removal.
	Home          string
	ToolchainsDir string
	SettingsFile  string
	LockFile      string
	Releases      ReleaseResolver
	Fetcher       Acquirer
	Runner        pyenv.CommandRunner
	Platform      platform.Facts
	DefaultTools  []string
	Reporter      Reporter
	Logger        zerolog.Logger
}

// Manager runs toolchain lifecycle operations.
type Manager struct {
	home          string
	toolchainsDir string
	settingsFile  string
	lockFile      string
	releases      ReleaseResolver
	fetcher       Acquirer
	runner        pyenv.CommandRunner
	facts         platform.Facts
	defaultTools  []string
	reporter      Reporter
	log           zerolog.Logger
}

// NewManager validates cfg and fills defaults.
func NewManager(cfg ManagerConfig) (*Manager, error) {
	if strings.TrimSpace(cfg.Home) == "" {
		return nil, errors.New("toolchain manager: home is required")
	}
	home, err := filepath.Abs(cfg.Home)
	if err != nil {
		return nil, fmt.Errorf("resolve home: %w", err)
	}

	toolchainsDir := cfg.ToolchainsDir
	if toolchainsDir == "" {
		toolchainsDir = filepath.Join(home, "toolchains")
	}
	toolchainsDir, err = filepath.Abs(toolchainsDir)
	if err != nil {
		return nil, fmt.Errorf("resolve toolchains dir: %w", err)
	}

	m := &Manager{
		home:          home,
		toolchainsDir: toolchainsDir,
		settingsFile:  cfg.SettingsFile,
		lockFile:      cfg.LockFile,
		releases:      cfg.Releases,
		fetcher:       cfg.Fetcher,
		runner:        cfg.Runner,
		facts:         cfg.Platform,
		defaultTools:  cfg.DefaultTools,
		reporter:      cfg.Reporter,
		log:           cfg.Logger.With().Str("component", "toolchain").Logger(),
	}
	if m.settingsFile == "" {
		m.settingsFile = filepath.Join(toolchainsDir, settings.FileName)
	}
	if m.lockFile == "" {
		m.lockFile = filepath.Join(toolchainsDir, ".lock")
	}
	if m.releases == nil {
		m.releases = release.NewResolver()
	}
	if m.fetcher == nil {
		return nil, errors.New("toolchain manager: fetcher is required")
	}
	if m.runner == nil {
		m.runner = pyenv.ExecRunner{}
	}
	if m.facts.BinDir == "" {
		m.facts = platform.Current()
	}
	if m.defaultTools == nil {
		m.defaultTools = DefaultTools
	}
	if m.reporter == nil {
		m.reporter = NopReporter{}
	}
	return m, nil
}

// WithReporter returns a copy of m that reports install steps to r.
func (m *Manager) WithReporter(r Reporter) *Manager {
	clone := *m
	if r == nil {
		r = NopReporter{}
	}
	clone.reporter = r
	return &clone
}

// ToolchainsDir is where toolchains are installed by default.
func (m *Manager) ToolchainsDir() string { return m.toolchainsDir }

// SettingsFile is the scope settings document.
func (m *Manager) SettingsFile() string { return m.settingsFile }

// DefaultToolNames returns the tools installed into new toolchains.
func (m *Manager) DefaultToolNames() []string {
	return append([]string(nil), m.defaultTools...)
}

// Install provisions a toolchain for channel at root. A partially created
// root is removed again on failure.
func (m *Manager) Install(ctx context.Context, channel Channel, root string) (tc LocalToolchain, err error) {
	root, err = filepath.Abs(root)
	if err != nil {
		return LocalToolchain{}, fmt.Errorf("resolve install target: %w", err)
	}
	if _, statErr := os.Lstat(root); statErr == nil {
		return LocalToolchain{}, fmt.Errorf("%w: %s", ErrAlreadyExists, root)
	}

	unlock, err := lockfile.Acquire(ctx, m.lockFile)
	if err != nil {
		return LocalToolchain{}, err
	}
	defer unlock()

	if _, statErr := os.Lstat(root); statErr == nil {
		return LocalToolchain{}, fmt.Errorf("%w: %s", ErrAlreadyExists, root)
	}

	tc = New(root, channel)
	log := m.log.With().Str("toolchain", tc.Name).Str("channel", channel.String()).Logger()
	log.Info().Str("root", root).Msg("installing toolchain")

	for _, dir := range []string{tc.Bin(), tc.Downloads(), tc.Venvs()} {
		if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
			err = fmt.Errorf("create %s: %w", dir, mkErr)
			return LocalToolchain{}, m.cleanupFailedInstall(root, err)
		}
	}

	if err = m.provision(ctx, tc, log); err != nil {
		log.Error().Err(err).Msg("install failed")
		return LocalToolchain{}, m.cleanupFailedInstall(root, err)
	}
	log.Info().Msg("toolchain ready")
	return tc, nil
}

func (m *Manager) provision(ctx context.Context, tc LocalToolchain, log zerolog.Logger) error {
	var rel release.Release
	err := m.step(StepResolve, func() error {
		var resolveErr error
		rel, resolveErr = m.releases.Resolve(tc.Channel.Strategy())
		return resolveErr
	})
	if err != nil {
		return err
	}
	log.Info().Str("release", rel.String()).Msg("resolved release")

	if err := m.step(StepDownload, func() error {
		return m.fetcher.Acquire(ctx, rel, tc.Downloads())
	}); err != nil {
		return err
	}

	interpreter := filepath.Join(tc.Downloads(), "python", "install", m.facts.BinDir,
		m.facts.Exe("python"+rel.Version.MinorString()))

	var env *pyenv.Env
	if err := m.step(StepEnvironment, func() error {
		if _, statErr := os.Stat(interpreter); statErr != nil {
			return fmt.Errorf("%w: %s", ErrRuntimeMissing, interpreter)
		}
		var createErr error
		env, createErr = pyenv.Create(ctx, interpreter, tc.Venv(), m.facts, m.runner, m.log)
		return createErr
	}); err != nil {
		return err
	}

	if err := m.step(StepRuntime, func() error {
		for _, alias := range runtimeAliases(rel.Version) {
			link := filepath.Join(tc.Bin(), m.facts.Exe(alias))
			if regErr := proxy.Register(m.facts, env.Python(), link, false); regErr != nil {
				log.Warn().Err(regErr).Str("alias", alias).Msg("link failed, copying runtime")
				if regErr := proxy.Register(m.facts, env.Python(), link, true); regErr != nil {
					return regErr
				}
			}
		}
		return nil
	}); err != nil {
		return err
	}

	for _, tool := range m.defaultTools {
		if err := m.step(ToolStep(tool), func() error {
			if installErr := env.Install(ctx, tool); installErr != nil {
				return installErr
			}
			link := filepath.Join(tc.Bin(), m.facts.Exe(tool))
			return proxy.Register(m.facts, env.Executable(tool), link, false)
		}); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manager) step(name string, fn func() error) error {
	m.reporter.Start(name)
	err := fn()
	m.reporter.Complete(name, err)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func (m *Manager) cleanupFailedInstall(root string, cause error) error {
	if err := removeWithin(root, m.home, m.toolchainsDir); err != nil {
		m.log.Error().Err(err).Str("root", root).Msg("cleanup failed")
		return errors.Join(cause, fmt.Errorf("cleanup %s: %w", root, err))
	}
	return cause
}

// List returns every toolchain directory under the toolchains dir.
func (m *Manager) List() ([]LocalToolchain, error) {
	entries, err := os.ReadDir(m.toolchainsDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read toolchains dir: %w", err)
	}
	var out []LocalToolchain
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		out = append(out, New(filepath.Join(m.toolchainsDir, entry.Name()), channelFromName(entry.Name())))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// AddTool installs a package into the toolchain and registers its
// executable.
func (m *Manager) AddTool(ctx context.Context, tc LocalToolchain, spec string) (LocalTool, error) {
	name := packageName(spec)
	if name == "" {
		return LocalTool{}, fmt.Errorf("invalid package %q", spec)
	}
	env := m.env(tc)
	if err := env.Install(ctx, spec); err != nil {
		return LocalTool{}, err
	}

	tool := tc.Tool(m.facts.Exe(name))
	if err := proxy.Register(m.facts, env.Executable(name), tool.Path, false); err != nil {
		if err := proxy.Register(m.facts, env.Executable(name), tool.Path, true); err != nil {
			return LocalTool{}, err
		}
	}
	m.log.Info().Str("toolchain", tc.Name).Str("tool", name).Msg("tool added")
	return tool, nil
}

// RemoveTool uninstalls a package and deletes its proxy. The runtime itself
// can only go away with Uninstall.
func (m *Manager) RemoveTool(ctx context.Context, tc LocalToolchain, name string) error {
	if IsRuntimeName(name) {
		return fmt.Errorf("%w: %s is the toolchain runtime; uninstall the toolchain instead", ErrUnsupported, name)
	}
	if err := m.env(tc).Uninstall(ctx, name); err != nil {
		return err
	}
	tool := tc.Tool(m.facts.Exe(name))
	if err := removeWithin(tool.Path, tc.Root); err != nil {
		return fmt.Errorf("remove proxy %s: %w", tool.Path, err)
	}
	m.log.Info().Str("toolchain", tc.Name).Str("tool", name).Msg("tool removed")
	return nil
}

// Update upgrades one tool, or every registered non-runtime tool and pip
// when tool is empty.
func (m *Manager) Update(ctx context.Context, tc LocalToolchain, tool string) error {
	env := m.env(tc)
	if tool != "" {
		return env.Upgrade(ctx, tool)
	}

	tools, err := tc.Tools()
	if err != nil {
		return fmt.Errorf("list tools: %w", err)
	}
	packages := []string{"pip"}
	for _, t := range tools {
		name := strings.TrimSuffix(t.Name, m.facts.ExeSuffix)
		if IsRuntimeName(name) || name == "pip" {
			continue
		}
		packages = append(packages, name)
	}
	for _, pkg := range packages {
		if err := env.Upgrade(ctx, pkg); err != nil {
			return err
		}
	}
	return nil
}

// Uninstall deletes the toolchain and every scope pointing at it.
func (m *Manager) Uninstall(ctx context.Context, tc LocalToolchain) error {
	unlock, err := lockfile.Acquire(ctx, m.lockFile)
	if err != nil {
		return err
	}
	defer unlock()

	canonical, err := filepath.EvalSymlinks(tc.Root)
	if err != nil {
		canonical = tc.Root
	}
	if err := removeWithin(tc.Root, m.home, m.toolchainsDir); err != nil {
		return fmt.Errorf("remove toolchain %s: %w", tc.Root, err)
	}

	db := settings.Load(m.settingsFile)
	n := db.RemoveByToolchain(tc.Root)
	if canonical != tc.Root {
		n += db.RemoveByToolchain(canonical)
	}
	if n > 0 {
		if err := db.Save(m.settingsFile); err != nil {
			return err
		}
		m.log.Info().Int("scopes", n).Msg("removed scope entries")
	}
	m.log.Info().Str("toolchain", tc.Name).Msg("toolchain uninstalled")
	return nil
}

// Use records tc as the toolchain for scope.
func (m *Manager) Use(ctx context.Context, tc LocalToolchain, scope string) error {
	if !tc.Exists() {
		return fmt.Errorf("%w: %s", ErrToolchainNotFound, tc.Root)
	}
	root, err := filepath.EvalSymlinks(tc.Root)
	if err != nil {
		return fmt.Errorf("canonicalize %s: %w", tc.Root, err)
	}

	unlock, err := lockfile.Acquire(ctx, m.lockFile)
	if err != nil {
		return err
	}
	defer unlock()

	db := settings.Load(m.settingsFile)
	db.Insert(scope, root)
	if err := db.Save(m.settingsFile); err != nil {
		return err
	}
	m.log.Info().Str("scope", scope).Str("toolchain", tc.Name).Msg("scope updated")
	return nil
}

func (m *Manager) env(tc LocalToolchain) *pyenv.Env {
	return pyenv.Open(tc.Venv(), m.facts, m.runner, m.log)
}

var runtimeNamePattern = regexp.MustCompile(`^python(\d+(\.\d+)?)?(\.exe)?$`)

// IsRuntimeName reports whether name is one of the interpreter aliases.
func IsRuntimeName(name string) bool {
	return runtimeNamePattern.MatchString(strings.ToLower(name))
}

func runtimeAliases(v release.Version) []string {
	return []string{
		RuntimeName,
		fmt.Sprintf("%s%d", RuntimeName, v.Major),
		RuntimeName + v.MinorString(),
	}
}

// packageName strips version specifiers and extras from a pip requirement.
func packageName(spec string) string {
	spec = strings.TrimSpace(spec)
	if i := strings.IndexAny(spec, "=<>!~[;@ "); i >= 0 {
		spec = spec[:i]
	}
	return spec
}

func channelFromName(name string) Channel {
	if ch, err := ParseChannel(name); err == nil {
		return ch
	}
	return DefaultChannel()
}
