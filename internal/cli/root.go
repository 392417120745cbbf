package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// LogLevelEnv sets the log level when --log-level is not given.
const LogLevelEnv = "PYFORGE_LOG_LEVEL"

// Version is set via ldflags at build time.
var Version = "dev"

var (
	outputJSON bool
	noProgress bool
	logLevel   string
)

// Execute runs the root cobra command and exits non-zero on failure.
func Execute(ctx context.Context) {
	err := newRootCmd().ExecuteContext(ctx)
	if err == nil {
		return
	}
	var exit *exitError
	if errors.As(err, &exit) {
		os.Exit(exit.code)
	}
	fmt.Fprintf(os.Stderr, "error: %s\n", describeError(err))
	fmt.Fprintf(os.Stderr, "  %v\n", err)
	os.Exit(1)
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "pyforge",
		Short:         "Install and manage standalone Python toolchains",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output machine-readable JSON")
	cmd.PersistentFlags().BoolVar(&noProgress, "no-progress", false, "Disable the interactive progress display")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")

	cmd.AddCommand(newToolchainCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newDoctorCmd())
	return cmd
}
