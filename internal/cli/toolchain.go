package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"pyforge/internal/manifest"
	"pyforge/internal/platform"
	"pyforge/internal/toolchain"
	"pyforge/internal/tui"
	"pyforge/internal/workspace"
)

var errToolNotRegistered = errors.New("tool not registered")

var toolchainChannel string

func newToolchainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "toolchain",
		Aliases: []string{"tc"},
		Short:   "Install, inspect and select Python toolchains",
	}

	cmd.AddCommand(newToolchainInstallCmd())
	cmd.AddCommand(newToolchainListCmd())
	cmd.AddCommand(newToolchainInfoCmd())
	cmd.AddCommand(newToolchainAddCmd())
	cmd.AddCommand(newToolchainRemoveCmd())
	cmd.AddCommand(newToolchainRunCmd())
	cmd.AddCommand(newToolchainUpdateCmd())
	cmd.AddCommand(newToolchainUninstallCmd())
	cmd.AddCommand(newToolchainUseCmd())
	return cmd
}

func addChannelFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&toolchainChannel, "channel", "", "Toolchain channel (default or a version such as 3.12)")
}

func newToolchainInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install [channel] [target]",
		Short: "Download a Python runtime and provision a toolchain",
		Args:  cobra.MaximumNArgs(2),
		RunE:  runToolchainInstall,
	}
}

func newToolchainListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List installed toolchains",
		Args:  cobra.NoArgs,
		RunE:  runToolchainList,
	}
}

func newToolchainInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show the effective toolchain and its tools",
		Args:  cobra.NoArgs,
		RunE:  runToolchainInfo,
	}
	addChannelFlag(cmd)
	return cmd
}

func newToolchainAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <tool>",
		Short: "Install a package into the toolchain and expose its executable",
		Args:  cobra.ExactArgs(1),
		RunE:  runToolchainAdd,
	}
	addChannelFlag(cmd)
	return cmd
}

func newToolchainRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <tool>",
		Short: "Uninstall a package and drop its executable",
		Args:  cobra.ExactArgs(1),
		RunE:  runToolchainRemove,
	}
	addChannelFlag(cmd)
	return cmd
}

func newToolchainRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <tool> [args...]",
		Short: "Run a registered tool from the effective toolchain",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runToolchainRun,
	}
	addChannelFlag(cmd)
	// Everything after the tool name belongs to the tool.
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func newToolchainUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [tool]",
		Short: "Upgrade one tool, or pip and every registered tool",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runToolchainUpdate,
	}
	addChannelFlag(cmd)
	return cmd
}

func newToolchainUninstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Delete a toolchain and every scope that selects it",
		Args:  cobra.NoArgs,
		RunE:  runToolchainUninstall,
	}
	addChannelFlag(cmd)
	return cmd
}

func newToolchainUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use <channel>",
		Short: "Select a toolchain for the current workspace",
		Args:  cobra.ExactArgs(1),
		RunE:  runToolchainUse,
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func runToolchainInstall(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	channel := toolchain.DefaultChannel()
	if len(args) > 0 {
		parsed, err := toolchain.ParseChannel(args[0])
		if err != nil {
			return err
		}
		channel = parsed
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	target := s.home.Toolchain(channel.String())
	if len(args) > 1 {
		target, err = filepath.Abs(args[1])
		if err != nil {
			return fmt.Errorf("resolve target: %w", err)
		}
	}

	var tc toolchain.LocalToolchain
	switch s.mode {
	case tui.ModeTUI:
		steps := toolchain.InstallSteps(s.manager.DefaultToolNames())
		model := tui.NewInstallModel("Installing "+channel.String()+" toolchain", steps)
		err = tui.RunWithWork(cmd.OutOrStdout(), model, func(send func(tea.Msg)) error {
			var installErr error
			tc, installErr = s.manager.WithReporter(tui.NewInstallReporter(send)).Install(ctx, channel, target)
			return installErr
		})
	case tui.ModePlain:
		tc, err = s.manager.WithReporter(tui.NewPlainReporter(cmd.ErrOrStderr())).Install(ctx, channel, target)
	default:
		tc, err = s.manager.Install(ctx, channel, target)
	}
	if err != nil {
		return err
	}

	if outputJSON {
		info, err := tc.Info()
		if err != nil {
			return err
		}
		return writeJSON(cmd, info)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Installed %s toolchain at %s\n", channel, tc.Root)
	fmt.Fprintf(cmd.OutOrStdout(), "Add %s to PATH or run tools with `pyforge toolchain run`.\n", tc.Bin())
	return nil
}

type listEntry struct {
	Name    string `json:"name"`
	Channel string `json:"channel"`
	Root    string `json:"root"`
	Active  bool   `json:"active"`
}

func runToolchainList(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	toolchains, err := s.manager.List()
	if err != nil {
		return err
	}

	active := ""
	if tc, err := s.resolve(""); err == nil {
		active = filepath.Clean(tc.Root)
	}

	entries := make([]listEntry, 0, len(toolchains))
	for _, tc := range toolchains {
		entries = append(entries, listEntry{
			Name:    tc.Name,
			Channel: tc.Channel.String(),
			Root:    tc.Root,
			Active:  active != "" && sameRoot(active, tc.Root),
		})
	}

	if outputJSON {
		return writeJSON(cmd, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No toolchains installed. Run `pyforge toolchain install` to add one.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "\tNAME\tCHANNEL\tROOT")
	for _, e := range entries {
		marker := ""
		if e.Active {
			marker = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", marker, e.Name, e.Channel, e.Root)
	}
	return w.Flush()
}

func runToolchainInfo(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	tc, err := s.resolve(toolchainChannel)
	if err != nil {
		return err
	}
	info, err := tc.Info()
	if err != nil {
		return err
	}

	if outputJSON {
		return writeJSON(cmd, info)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Toolchain: %s\n", info.Name)
	fmt.Fprintf(out, "Channel:   %s\n", info.Channel)
	fmt.Fprintf(out, "Root:      %s\n", info.Root)
	fmt.Fprintf(out, "Bin:       %s\n", info.Bin)
	fmt.Fprintf(out, "Tools:     %s\n", tui.NonEmptyOrDash(strings.Join(info.Tools, ", ")))
	return nil
}

func runToolchainAdd(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	tc, err := s.resolve(toolchainChannel)
	if err != nil {
		return err
	}

	var tool toolchain.LocalTool
	err = withStatus(cmd, s, fmt.Sprintf("Installing %s into %s", args[0], tc.Name), func() error {
		var addErr error
		tool, addErr = s.manager.AddTool(commandContext(cmd), tc, args[0])
		return addErr
	})
	if err != nil {
		return err
	}

	if outputJSON {
		return writeJSON(cmd, map[string]string{"toolchain": tc.Name, "tool": tool.Name, "path": tool.Path})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s (%s)\n", tool.Name, tc.Name, tool.Path)
	return nil
}

func runToolchainRemove(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	tc, err := s.resolve(toolchainChannel)
	if err != nil {
		return err
	}

	err = withStatus(cmd, s, fmt.Sprintf("Removing %s from %s", args[0], tc.Name), func() error {
		return s.manager.RemoveTool(commandContext(cmd), tc, args[0])
	})
	if err != nil {
		return err
	}

	if outputJSON {
		return writeJSON(cmd, map[string]string{"toolchain": tc.Name, "removed": args[0]})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from %s\n", args[0], tc.Name)
	return nil
}

func runToolchainRun(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	tc, err := s.resolve(toolchainChannel)
	if err != nil {
		return err
	}

	facts := platform.Current()
	tool := tc.Tool(facts.Exe(args[0]))
	if !tool.Exists() {
		return fmt.Errorf("%w: %s in %s", errToolNotRegistered, args[0], tc.Name)
	}

	s.log.Debug().Str("tool", tool.Path).Strs("args", args[1:]).Msg("running tool")
	child := exec.CommandContext(ctx, tool.Path, args[1:]...)
	child.Stdin = cmd.InOrStdin()
	child.Stdout = cmd.OutOrStdout()
	child.Stderr = cmd.ErrOrStderr()
	child.Env = toolEnv(os.Environ(), tc)

	if err := child.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &exitError{code: exitErr.ExitCode()}
		}
		return fmt.Errorf("run %s: %w", args[0], err)
	}
	return nil
}

// toolEnv puts the toolchain's bin directory first on PATH and marks the
// toolchain as the override for nested pyforge calls.
func toolEnv(environ []string, tc toolchain.LocalToolchain) []string {
	out := make([]string, 0, len(environ)+2)
	path := tc.Bin()
	for _, kv := range environ {
		key, value, _ := strings.Cut(kv, "=")
		switch {
		case strings.EqualFold(key, "PATH"):
			if value != "" {
				path = tc.Bin() + string(os.PathListSeparator) + value
			}
		case key == toolchain.OverrideEnv:
		default:
			out = append(out, kv)
		}
	}
	return append(out, "PATH="+path, toolchain.OverrideEnv+"="+tc.Root)
}

func runToolchainUpdate(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	tc, err := s.resolve(toolchainChannel)
	if err != nil {
		return err
	}

	tool := ""
	if len(args) > 0 {
		tool = args[0]
	}
	label := "all tools"
	if tool != "" {
		label = tool
	}
	err = withStatus(cmd, s, fmt.Sprintf("Updating %s in %s", label, tc.Name), func() error {
		return s.manager.Update(commandContext(cmd), tc, tool)
	})
	if err != nil {
		return err
	}

	if outputJSON {
		return writeJSON(cmd, map[string]string{"toolchain": tc.Name, "updated": label})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated %s in %s\n", label, tc.Name)
	return nil
}

func runToolchainUninstall(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	tc, err := s.resolve(toolchainChannel)
	if err != nil {
		return err
	}

	err = withStatus(cmd, s, "Removing "+tc.Root, func() error {
		return s.manager.Uninstall(commandContext(cmd), tc)
	})
	if err != nil {
		return err
	}

	if outputJSON {
		return writeJSON(cmd, map[string]string{"uninstalled": tc.Name, "root": tc.Root})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Uninstalled %s (%s)\n", tc.Name, tc.Root)
	return nil
}

func runToolchainUse(cmd *cobra.Command, args []string) error {
	channel, err := toolchain.ParseChannel(args[0])
	if err != nil {
		return err
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	tc, err := s.resolver.FindChannel(channel)
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	scope, err := workspaceScope(cwd)
	if err != nil {
		return err
	}

	if err := s.manager.Use(commandContext(cmd), tc, scope); err != nil {
		return err
	}

	if outputJSON {
		return writeJSON(cmd, map[string]string{"scope": scope, "toolchain": tc.Name, "root": tc.Root})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Using %s for %s\n", tc.Name, scope)
	return nil
}

// workspaceScope returns the outermost project root above dir, or dir itself
// when no manifest is found.
func workspaceScope(dir string) (string, error) {
	ws, err := workspace.ResolveRoot(dir, workspace.File(manifest.FileName))
	if err != nil {
		if errors.Is(err, workspace.ErrNotFound) {
			return filepath.Abs(dir)
		}
		return "", err
	}
	return ws.Root, nil
}

func withStatus(cmd *cobra.Command, s *session, message string, fn func() error) error {
	if s.mode != tui.ModeTUI {
		return fn()
	}
	status := tui.StartStatus(cmd.ErrOrStderr(), message)
	defer status.Stop()
	return fn()
}

func sameRoot(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	ra, errA := filepath.EvalSymlinks(a)
	rb, errB := filepath.EvalSymlinks(b)
	return errA == nil && errB == nil && ra == rb
}
