package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"pyforge/internal/config"
	"pyforge/internal/paths"
	"pyforge/internal/platform"
	"pyforge/internal/release"
	"pyforge/internal/settings"
	"pyforge/internal/toolchain"
	"pyforge/internal/tui"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the pyforge home, toolchains and scope settings",
		Args:  cobra.NoArgs,
		RunE:  runDoctor,
	}
}

type healthCheck struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "ok", "warning", "error"
	Summary string `json:"summary"`
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	hp, err := paths.Resolve()
	if err != nil {
		return err
	}

	var checks []healthCheck

	cfg, cfgErr := config.Load(hp.ConfigFile)
	checks = append(checks, checkConfig(cfg, cfgErr))
	if cfgErr == nil {
		hp = paths.ApplyConfig(hp, cfg)
	}

	checks = append(checks, checkCatalog(release.NewResolver()))
	checks = append(checks, checkToolchains(hp, platform.Current()))
	checks = append(checks, checkScopes(hp))
	checks = append(checks, checkLock(hp))

	return writeDoctorResult(cmd, hp.Root, checks)
}

func checkConfig(cfg config.Config, cfgErr error) healthCheck {
	if cfgErr != nil {
		return healthCheck{Name: "Config", Status: "error", Summary: cfgErr.Error()}
	}

	var warnings, errors int
	for _, v := range cfg.Validate() {
		switch v.Level {
		case "warning":
			warnings++
		case "error":
			errors++
		}
	}

	summary := "default tools: " + tui.NonEmptyOrDash(joinComma(cfg.DefaultTools))
	if errors > 0 {
		return healthCheck{Name: "Config", Status: "error", Summary: fmt.Sprintf("%s; %d errors", summary, errors)}
	}
	if warnings > 0 {
		return healthCheck{Name: "Config", Status: "warning", Summary: fmt.Sprintf("%s; %d warnings", summary, warnings)}
	}
	return healthCheck{Name: "Config", Status: "ok", Summary: summary}
}

func checkCatalog(r release.Resolver) healthCheck {
	rel, err := r.Resolve(release.Latest())
	if err != nil {
		return healthCheck{Name: "Catalog", Status: "error", Summary: err.Error()}
	}
	summary := fmt.Sprintf("latest %s for %s/%s", rel.Version, rel.OS, rel.Architecture)
	if unverified := r.Catalog.Unverified(); len(unverified) > 0 {
		return healthCheck{
			Name:    "Catalog",
			Status:  "warning",
			Summary: fmt.Sprintf("%s; %d of %d entries lack a published checksum (run gencatalog)", summary, len(unverified), len(r.Catalog)),
		}
	}
	return healthCheck{Name: "Catalog", Status: "ok", Summary: summary}
}

func checkToolchains(hp paths.HomePaths, facts platform.Facts) healthCheck {
	entries, err := os.ReadDir(hp.ToolchainsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return healthCheck{Name: "Toolchains", Status: "warning", Summary: "none installed"}
		}
		return healthCheck{Name: "Toolchains", Status: "error", Summary: err.Error()}
	}

	var total int
	var broken []string
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		total++
		tc := toolchain.New(filepath.Join(hp.ToolchainsDir, entry.Name()), toolchain.DefaultChannel())
		if !tc.Tool(facts.Exe(toolchain.RuntimeName)).Exists() {
			broken = append(broken, tc.Name)
		}
	}

	switch {
	case total == 0:
		return healthCheck{Name: "Toolchains", Status: "warning", Summary: "none installed"}
	case len(broken) > 0:
		return healthCheck{
			Name:    "Toolchains",
			Status:  "error",
			Summary: fmt.Sprintf("%d of %d missing a runtime: %s", len(broken), total, joinComma(broken)),
		}
	}
	return healthCheck{Name: "Toolchains", Status: "ok", Summary: fmt.Sprintf("%d installed", total)}
}

func checkScopes(hp paths.HomePaths) healthCheck {
	db := settings.Load(hp.SettingsFile)
	if db.Len() == 0 {
		return healthCheck{Name: "Scopes", Status: "ok", Summary: "no scopes configured"}
	}

	var stale []string
	for _, e := range db.Entries() {
		if ok, _ := paths.DirExists(e.Toolchain); !ok {
			stale = append(stale, e.Scope)
		}
	}
	if len(stale) > 0 {
		return healthCheck{
			Name:    "Scopes",
			Status:  "warning",
			Summary: fmt.Sprintf("%d of %d point at missing toolchains: %s", len(stale), db.Len(), joinComma(stale)),
		}
	}
	return healthCheck{Name: "Scopes", Status: "ok", Summary: fmt.Sprintf("%d configured", db.Len())}
}

func checkLock(hp paths.HomePaths) healthCheck {
	if ok, _ := paths.FileExists(hp.LockFile); ok {
		return healthCheck{
			Name:    "Lock",
			Status:  "warning",
			Summary: "held by another process, or stale: remove " + hp.LockFile + " if no pyforge is running",
		}
	}
	return healthCheck{Name: "Lock", Status: "ok", Summary: "free"}
}

func writeDoctorResult(cmd *cobra.Command, home string, checks []healthCheck) error {
	if outputJSON {
		return writeJSON(cmd, checks)
	}

	bold := lipgloss.NewStyle().Bold(true).Inline(true)
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Inline(true)
	yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Inline(true)
	red := lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Inline(true)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, bold.Render("PYFORGE HEALTH:")+" "+home)

	for _, c := range checks {
		var statusStr string
		switch c.Status {
		case "ok":
			statusStr = green.Render("OK")
		case "warning":
			statusStr = yellow.Render("WARN")
		case "error":
			statusStr = red.Render("ERROR")
		}
		fmt.Fprintf(out, "  %-12s %s    %s\n", c.Name+":", statusStr, c.Summary)
	}

	return nil
}

func joinComma(items []string) string {
	return strings.Join(items, ", ")
}
