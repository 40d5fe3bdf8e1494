// Package plugins provides exec-based plugin support for xrdscan.
// Plugins are separate binaries named xrdscan-<command> that are discovered
// and executed when an unknown command is invoked.
//
// This follows the same pattern used by kubectl and git for plugins.
package plugins

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// KnownPlugins lists plugin commands with a maintained implementation.
// These get a description in the not-found message.
var KnownPlugins = map[string]string{
	"export": "Converts decoded scans to two-column XY or CSV files for plotting tools.",
}

// binaryName is the plugin executable name for command.
func binaryName(command string) string {
	return "xrdscan-" + command
}

// ErrPluginNotFound is returned when no plugin binary can be located.
var ErrPluginNotFound = errors.New("plugin not found")

// FindPlugin searches for a plugin binary named xrdscan-<command> in the
// directory of the running binary, then in the user plugin directory,
// then in PATH. It returns the full path of the first executable found.
func FindPlugin(command string) (string, error) {
	pluginName := binaryName(command)

	var dirs []string
	if execPath, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Dir(execPath))
	}
	if dir, err := UserPluginDir(); err == nil {
		dirs = append(dirs, dir)
	}

	for _, dir := range dirs {
		candidate := filepath.Join(dir, pluginName)
		if isExecutable(candidate) {
			return candidate, nil
		}
	}

	if path, err := exec.LookPath(pluginName); err == nil {
		return path, nil
	}

	return "", ErrPluginNotFound
}

// UserPluginDir returns ~/.xrdscan/plugins.
func UserPluginDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".xrdscan", "plugins"), nil
}

// EnvBinary names the variable through which a plugin learns the path of
// the xrdscan binary that launched it, so it can call back into inspect.
const EnvBinary = "XRDSCAN_BINARY"

// Execute runs a plugin with the given arguments, wired to the current
// stdio, and returns the plugin's exit code.
func Execute(pluginPath string, args []string) int {
	cmd := exec.Command(pluginPath, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()
	if self, err := os.Executable(); err == nil {
		cmd.Env = append(cmd.Env, EnvBinary+"="+self)
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing plugin: %v\n", err)
		return 1
	}

	return 0
}

// FormatNotFoundError returns a helpful error message when a plugin is not found.
// If the command is a known plugin, includes information about where to get it.
func FormatNotFoundError(command string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("unknown command %q for \"xrdscan\"\n", command))

	// Check if this is a known plugin
	if info, ok := KnownPlugins[command]; ok {
		sb.WriteString(fmt.Sprintf("\n%q is available as a plugin.\n", command))
		sb.WriteString(info)
		sb.WriteString("\n\nInstall the plugin binary as one of:\n")
	} else {
		sb.WriteString("\nIf this is a plugin, install the binary as one of:\n")
	}

	name := binaryName(command)
	sb.WriteString(fmt.Sprintf("  - %s in the same directory as xrdscan\n", name))
	sb.WriteString(fmt.Sprintf("  - ~/.xrdscan/plugins/%s\n", name))
	sb.WriteString(fmt.Sprintf("  - %s anywhere in your PATH\n", name))

	sb.WriteString("\nRun 'xrdscan --help' for usage.")

	return sb.String()
}

// isExecutable checks if a file exists and is executable.
func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	return info.Mode().IsRegular() && info.Mode()&0111 != 0
}
