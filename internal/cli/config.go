package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"pyforge/internal/config"
	"pyforge/internal/paths"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the pyforge configuration",
	}

	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigValidateCmd())
	cmd.AddCommand(newConfigPathsCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration in YAML",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}
}

func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check config.yaml for errors and warnings",
		Args:  cobra.NoArgs,
		RunE:  runConfigValidate,
	}
}

func newConfigPathsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print the home, toolchains and settings locations",
		Args:  cobra.NoArgs,
		RunE:  runConfigPaths,
	}
}

func loadConfig() (paths.HomePaths, config.Config, error) {
	hp, err := paths.Resolve()
	if err != nil {
		return paths.HomePaths{}, config.Config{}, err
	}
	cfg, err := config.Load(hp.ConfigFile)
	if err != nil {
		return paths.HomePaths{}, config.Config{}, err
	}
	return paths.ApplyConfig(hp, cfg), cfg, nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	_, cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if outputJSON {
		return writeJSON(cmd, cfg)
	}

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	if len(data) == 0 || data[len(data)-1] != '\n' {
		fmt.Fprintln(cmd.OutOrStdout())
	}
	return nil
}

func runConfigValidate(cmd *cobra.Command, _ []string) error {
	hp, cfg, err := loadConfig()
	if err != nil {
		return err
	}

	results := cfg.Validate()
	if outputJSON {
		if results == nil {
			results = []config.ValidationResult{}
		}
		if err := writeJSON(cmd, results); err != nil {
			return err
		}
		return cfg.Err()
	}

	if len(results) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", hp.ConfigFile)
		return nil
	}
	for _, r := range results {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s: %s\n", hp.ConfigFile, r.Level, r.Message)
	}
	return cfg.Err()
}

func runConfigPaths(cmd *cobra.Command, _ []string) error {
	hp, _, err := loadConfig()
	if err != nil {
		return err
	}

	if outputJSON {
		return writeJSON(cmd, map[string]string{
			"home":       hp.Root,
			"config":     hp.ConfigFile,
			"toolchains": hp.ToolchainsDir,
			"settings":   hp.SettingsFile,
			"logs":       hp.LogsDir,
		})
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Home:       %s\n", hp.Root)
	fmt.Fprintf(out, "Config:     %s\n", hp.ConfigFile)
	fmt.Fprintf(out, "Toolchains: %s\n", hp.ToolchainsDir)
	fmt.Fprintf(out, "Settings:   %s\n", hp.SettingsFile)
	fmt.Fprintf(out, "Logs:       %s\n", hp.LogsDir)
	return nil
}
