package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/xrdscan/internal/logging"
	"github.com/ccollicutt/xrdscan/pkg/detector"
	"github.com/ccollicutt/xrdscan/pkg/scan"
)

// DetectOptions holds command-line options for the detect command.
type DetectOptions struct {
	Output      string
	WriteConfig string
}

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	opts := &DetectOptions{}

	cmd := &cobra.Command{
		Use:   "detect <file>",
		Short: "Detect the format of a scan file",
		Long: `Probe a file against every known scan format and print the capabilities
of the format that matches.

Formats whose extension matches the file are probed first. Detection only
reads the start of the file; use inspect or validate to decode it fully.

Optionally generates a starter config file with --write-config.

Exit codes:
  0 - A format was detected
  1 - No known format matched

Example:
  xrdscan detect data/quartz.udf
  xrdscan detect -o json data/quartz.udf
  xrdscan detect -w xrdscan.yaml data/quartz.udf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().StringVarP(&opts.WriteConfig, "write-config", "w", "", "Write starter config to file (will not overwrite)")

	return cmd
}

func runDetect(cmd *cobra.Command, args []string, opts *DetectOptions) error {
	ExitCode = 0
	path := args[0]
	ctx := commandContext(cmd)

	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := logging.Setup(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", path)
	}

	result, err := detector.New(detector.WithLogger(logger)).DetectFromFile(ctx, path)
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}

	if opts.WriteConfig != "" {
		if err := writeStarterConfig(cmd.OutOrStdout(), result, opts.WriteConfig); err != nil {
			return err
		}
	}

	if !result.HasMatch() {
		ExitCode = 1
	}

	switch opts.Output {
	case "json":
		return outputDetectJSON(cmd.OutOrStdout(), result)
	case "text":
		return outputDetectText(cmd.OutOrStdout(), result)
	default:
		return fmt.Errorf("unknown output format %q (use text or json)", opts.Output)
	}
}

func outputDetectText(w io.Writer, result *detector.DetectionResult) error {
	fmt.Fprintln(w, "=== Format Detection ===")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "File: %s\n", result.Path)
	fmt.Fprintf(w, "Formats probed: %s\n", strings.Join(result.Probed, ", "))
	fmt.Fprintln(w)

	if !result.HasMatch() {
		fmt.Fprintln(w, "No known format detected.")
		return nil
	}

	writeFormatInfo(w, result.Format.Info)
	if !result.ExtensionMatch {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Note: the file extension does not match the detected format.")
	}

	return nil
}

func writeFormatInfo(w io.Writer, info scan.FormatInfo) {
	fmt.Fprintf(w, "Detected Format: %s (%s)\n", info.Name, info.ID)
	fmt.Fprintf(w, "Extensions:      %s\n", strings.Join(info.Extensions, ", "))
	fmt.Fprintf(w, "Binary:          %s\n", yesNo(info.Binary))
	fmt.Fprintf(w, "Multiple ranges: %s\n", yesNo(info.MultiRange))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// DetectJSON is the JSON form of a detection result.
type DetectJSON struct {
	File           string           `json:"file"`
	Format         *scan.FormatInfo `json:"format"`
	Probed         []string         `json:"probed"`
	ExtensionMatch bool             `json:"extension_match"`
}

func outputDetectJSON(w io.Writer, result *detector.DetectionResult) error {
	out := DetectJSON{
		File:           result.Path,
		Probed:         result.Probed,
		ExtensionMatch: result.ExtensionMatch,
	}
	if out.Probed == nil {
		out.Probed = []string{}
	}
	if result.HasMatch() {
		info := result.Format.Info
		out.Format = &info
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

// writeStarterConfig generates a starter config whose sources cover the
// detected file's directory.
func writeStarterConfig(w io.Writer, result *detector.DetectionResult, configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s (will not overwrite)", configPath)
	}

	if !result.HasMatch() {
		return fmt.Errorf("cannot generate config: no known format detected")
	}

	content := generateStarterConfig(result.Path, result.Format.Info)

	// #nosec G306 - config file doesn't need restrictive permissions
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(w, "Wrote starter config to: %s\n\n", configPath)
	return nil
}

// generateStarterConfig creates a YAML config template.
func generateStarterConfig(path string, info scan.FormatInfo) string {
	dir := filepath.Dir(path)
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}

	ext := "*"
	if len(info.Extensions) > 0 {
		ext = info.Extensions[0]
	}

	return fmt.Sprintf(`# xrdscan configuration
# Generated by: xrdscan detect
# Detected format: %s

sources:
  - %s
  # Add more files, directories or globs:
  # - /data/xrd/run-*/

output: text
stats: false
preview_points: 10

logging:
  level: warn
  format: text

# webhooks:
#   - name: lims
#     url: https://lims.example.com/hooks/xrd
#     token: ${LIMS_TOKEN}
#     trigger: on_failure
#     timeout: 10s
`, info.Name, filepath.Join(dir, "*."+ext))
}
