// Package cli provides the command-line interface for xrdscan.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/xrdscan/internal/cli/commands"
	"github.com/ccollicutt/xrdscan/internal/cli/plugins"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	return run(NewRootCommand(), os.Args[1:])
}

func run(rootCmd *cobra.Command, args []string) int {
	name, isPlugin := pluginCandidate(rootCmd, args)
	if isPlugin {
		if pluginPath, err := plugins.FindPlugin(name); err == nil {
			return plugins.Execute(pluginPath, args[1:])
		}
		// Not installed: let Cobra fail, then print the plugin hint
	}

	commands.ExitCode = 0
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		if isPlugin {
			_, _ = fmt.Fprintln(rootCmd.ErrOrStderr(), plugins.FormatNotFoundError(name))
			return 2
		}
		// SilenceErrors prevents Cobra from printing this itself
		_, _ = fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return 2
	}
	return commands.ExitCode
}

// pluginCandidate reports whether the first argument names a command that
// is not built in and so may be served by a plugin.
func pluginCandidate(rootCmd *cobra.Command, args []string) (string, bool) {
	if len(args) == 0 || args[0] == "" || args[0][0] == '-' {
		return "", false
	}
	return args[0], !isBuiltinCommand(rootCmd, args[0])
}

// isBuiltinCommand checks if a command name is a built-in cobra command.
func isBuiltinCommand(rootCmd *cobra.Command, name string) bool {
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == name || cmd.HasAlias(name) {
			return true
		}
	}
	return name == "help" || name == "completion"
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "xrdscan",
		Short: "Inspect and validate X-ray diffraction scan files",
		Long: `xrdscan decodes X-ray diffraction scan files and reports what they contain.

It supports:
  - Philips UDF text scans (SampleIdent header, fixed-step 2-theta axis)

For every file it reports the X axis (start, step, point count), the header
metadata in file order, and optionally count statistics. Reports can be
published to webhooks for LIMS ingestion.

CONFIGURATION:
  An optional YAML file given with --config sets default sources, output
  format, logging and webhooks. XRDSCAN_OUTPUT, XRDSCAN_LOG_LEVEL and
  XRDSCAN_LOG_FORMAT override it.

PLUGINS:
  xrdscan supports plugins for extended functionality. Plugins are standalone
  binaries named xrdscan-<command> that are automatically discovered and invoked.

  Plugin locations (searched in order):
    1. Same directory as the xrdscan binary
    2. ~/.xrdscan/plugins/
    3. Anywhere in PATH`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Path to an xrdscan YAML config file")

	// Add subcommands
	rootCmd.AddCommand(commands.NewInspectCommand())
	rootCmd.AddCommand(commands.NewDetectCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewFormatsCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
