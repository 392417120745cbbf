package cli

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"pyforge/internal/config"
	"pyforge/internal/fetch"
	"pyforge/internal/logx"
	"pyforge/internal/paths"
	"pyforge/internal/toolchain"
	"pyforge/internal/tui"
)

// session bundles everything a toolchain command needs.
type session struct {
	home     paths.HomePaths
	cfg      config.Config
	log      zerolog.Logger
	closer   io.Closer
	mode     tui.OutputMode
	manager  *toolchain.Manager
	resolver toolchain.Resolver
}

func openSession(cmd *cobra.Command) (*session, error) {
	hp, err := paths.Resolve()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(hp.ConfigFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", hp.ConfigFile, err)
	}
	hp = paths.ApplyConfig(hp, cfg)
	if err := hp.EnsureDirs(); err != nil {
		return nil, err
	}

	mode := tui.DetectMode(cmd.OutOrStdout(), noProgress, outputJSON)

	opts := logx.Options{Level: effectiveLogLevel(cfg)}
	if mode != tui.ModeTUI {
		opts.Console = cmd.ErrOrStderr()
	}
	if cfg.Logging.FileLoggingEnabled() {
		opts.LogsDir = hp.LogsDir
	}
	logger, closer, err := logx.New(opts)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("home", hp.Root).Str("mode", mode.String()).Msg("session opened")

	fetcher := fetch.New(&http.Client{Timeout: cfg.Download.Timeout.Duration}, logger)
	if cfg.Download.UserAgent != "" {
		fetcher.UserAgent = cfg.Download.UserAgent
	}

	manager, err := toolchain.NewManager(toolchain.ManagerConfig{
		Home:          hp.Root,
		ToolchainsDir: hp.ToolchainsDir,
		SettingsFile:  hp.SettingsFile,
		LockFile:      hp.LockFile,
		Fetcher:       fetcher,
		DefaultTools:  cfg.DefaultTools,
		Logger:        logger,
	})
	if err != nil {
		closer.Close()
		return nil, err
	}

	resolver := toolchain.NewResolver(hp.ToolchainsDir, hp.SettingsFile)
	resolver.Logger = logger.With().Str("component", "resolve").Logger()

	return &session{
		home:     hp,
		cfg:      cfg,
		log:      logger,
		closer:   closer,
		mode:     mode,
		manager:  manager,
		resolver: resolver,
	}, nil
}

func (s *session) Close() error {
	return s.closer.Close()
}

// resolve finds the effective toolchain for the working directory. An empty
// channel defers to manifests and scope settings.
func (s *session) resolve(channel string) (toolchain.LocalToolchain, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return toolchain.LocalToolchain{}, fmt.Errorf("get working directory: %w", err)
	}
	opts := toolchain.ResolveOptions{
		Start:    cwd,
		Override: strings.TrimSpace(os.Getenv(toolchain.OverrideEnv)),
	}
	if channel != "" {
		ch, err := toolchain.ParseChannel(channel)
		if err != nil {
			return toolchain.LocalToolchain{}, err
		}
		opts.Channel = &ch
	}
	tc, err := s.resolver.Resolve(opts)
	if err != nil {
		return toolchain.LocalToolchain{}, err
	}
	s.log.Debug().Str("toolchain", tc.Name).Str("root", tc.Root).Msg("resolved toolchain")
	return tc, nil
}

func effectiveLogLevel(cfg config.Config) string {
	if logLevel != "" {
		return logLevel
	}
	if env := strings.TrimSpace(os.Getenv(LogLevelEnv)); env != "" {
		return env
	}
	return cfg.Logging.Level
}
