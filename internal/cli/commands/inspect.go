package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/xrdscan/internal/logging"
	"github.com/ccollicutt/xrdscan/pkg/chart"
	"github.com/ccollicutt/xrdscan/pkg/config"
	"github.com/ccollicutt/xrdscan/pkg/detector"
	"github.com/ccollicutt/xrdscan/pkg/input"
	"github.com/ccollicutt/xrdscan/pkg/output"
	"github.com/ccollicutt/xrdscan/pkg/scan"
	"github.com/ccollicutt/xrdscan/pkg/stats"
	"github.com/ccollicutt/xrdscan/pkg/webhook"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// InspectOptions holds command-line options for the inspect command.
type InspectOptions struct {
	Output  string
	Verbose bool
	Quiet   bool
	Stats   bool
	PlotDir string

	// Webhook options
	WebhookURL     string
	WebhookToken   string
	WebhookTrigger string
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	opts := &InspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect [file|dir|glob]...",
		Short: "Decode scan files and report their contents",
		Long: `Decode diffraction scan files and report the X axis, header metadata
and, optionally, count statistics for each one.

Arguments may be files, directories or glob patterns. With no arguments the
sources listed in the configuration file are used.

Exit codes:
  0 - Every file decoded
  1 - At least one file failed to decode
  2 - Configuration or usage error`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args, opts)
		},
	}

	// Flags
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output format (text|json), defaults to the config value")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show all metadata and the first points")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no details")
	cmd.Flags().BoolVar(&opts.Stats, "stats", false, "Add count statistics for each scan")
	cmd.Flags().StringVar(&opts.PlotDir, "plot-dir", "", "Write a PNG plot of each decoded scan to this directory")

	// Webhook flags
	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "Webhook endpoint URL")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")
	cmd.Flags().StringVar(&opts.WebhookTrigger, "webhook-trigger", "on_failure", "When to fire webhook (on_failure|always|never)")

	return cmd
}

func runInspect(cmd *cobra.Command, args []string, opts *InspectOptions) error {
	ExitCode = 0
	ctx := commandContext(cmd)

	cfg, configPath, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := logging.Setup(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())

	formatter, err := createFormatter(cfg, opts)
	if err != nil {
		return err
	}

	d := detector.New(detector.WithLogger(logger))
	files, err := resolveInputs(args, cfg, d, logger)
	if err != nil {
		return err
	}

	var plotNames map[string]string
	if opts.PlotDir != "" {
		if err := os.MkdirAll(opts.PlotDir, 0755); err != nil {
			return fmt.Errorf("creating plot directory: %w", err)
		}
		plotNames = chart.FileNames(files, "png")
		for _, path := range files {
			if name := plotNames[path]; name != chart.FileName(path, "png") {
				logger.Warn("plot name already taken, using suffix", "path", path, "plot", name)
			}
		}
	}

	start := time.Now()
	results := make([]*output.FileResult, 0, len(files))
	for _, path := range files {
		res, err := inspectFile(ctx, d, path, plotNames[path], cfg, opts)
		if err != nil {
			return err
		}
		if res.Failed() {
			logger.Warn("decode failed", "path", path, "error", res.Error)
		}
		results = append(results, res)
	}

	report := output.NewReport(results, configPath, start, time.Now())

	if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	// Send webhooks (errors logged but don't fail the run)
	sendWebhooks(ctx, cmd.ErrOrStderr(), cfg, opts, report)

	if report.HasFailures() {
		ExitCode = 1
	}

	return nil
}

// inspectFile decodes one file and, when plotName is set, writes its plot
// into the plot directory. Decode failures are recorded in the result;
// statistics and plot failures are returned as errors.
func inspectFile(ctx context.Context, d *detector.Detector, path, plotName string, cfg *config.Config, opts *InspectOptions) (*output.FileResult, error) {
	s, err := d.DecodeFile(ctx, path)
	if err != nil {
		return output.NewFailedResult(path, err), nil
	}

	res := output.NewFileResult(path, s, cfg.PreviewPoints)
	if opts.Stats || cfg.Stats {
		sum, err := stats.Summarize(s)
		if err != nil {
			return nil, fmt.Errorf("summarizing %s: %w", path, err)
		}
		res.Stats = &sum
	}

	if plotName != "" && s.Len() > 0 {
		out := filepath.Join(opts.PlotDir, plotName)
		if err := chart.Save(s, plotTitle(path, s), out); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// plotTitle prefers the sample name from the header over the file name.
func plotTitle(path string, s *scan.Scan) string {
	if v, ok := s.Metadata().Get("SampleIdent"); ok && v != "" {
		return v
	}
	return filepath.Base(path)
}

func createFormatter(cfg *config.Config, opts *InspectOptions) (output.Formatter, error) {
	name := opts.Output
	if name == "" {
		name = cfg.Output
	}

	formatter, ok := output.New(name, output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	})
	if !ok {
		return nil, fmt.Errorf("unknown output format %q (use text or json)", name)
	}
	return formatter, nil
}

// sendWebhooks sends the report to all configured webhooks.
// Errors are written to w but don't fail the run.
func sendWebhooks(ctx context.Context, w io.Writer, cfg *config.Config, opts *InspectOptions, report *output.Report) {
	webhooks := collectWebhooks(cfg, opts)

	if len(webhooks) == 0 {
		return
	}

	client := webhook.NewClient()

	for _, wh := range webhooks {
		if !shouldFireWebhook(wh.Trigger, report.HasFailures()) {
			continue
		}

		resp := client.Send(ctx, report, webhook.SendOptions{
			URL:     wh.URL,
			Token:   wh.Token,
			Timeout: wh.Timeout,
		})

		name := wh.Name
		if name == "" {
			name = wh.URL
		}

		if resp.Success() {
			_, _ = fmt.Fprintf(w, "Webhook %s: sent (%d, %s)\n", name, resp.StatusCode, resp.Duration)
		} else {
			_, _ = fmt.Fprintf(w, "Webhook %s: failed (%v)\n", name, resp.Error)
		}
	}
}

// collectWebhooks merges config file webhooks with CLI webhook.
func collectWebhooks(cfg *config.Config, opts *InspectOptions) []config.WebhookConfig {
	webhooks := make([]config.WebhookConfig, 0, len(cfg.Webhooks)+1)

	webhooks = append(webhooks, cfg.Webhooks...)

	if opts.WebhookURL != "" {
		trigger := config.WebhookTrigger(opts.WebhookTrigger)
		if trigger == "" {
			trigger = config.WebhookTriggerOnFailure
		}

		webhooks = append(webhooks, config.WebhookConfig{
			Name:    "cli",
			URL:     opts.WebhookURL,
			Token:   opts.WebhookToken,
			Trigger: trigger,
			Timeout: config.DefaultWebhookTimeout,
		})
	}

	return webhooks
}

// shouldFireWebhook determines if a webhook should fire based on trigger and failures.
func shouldFireWebhook(trigger config.WebhookTrigger, hasFailures bool) bool {
	switch trigger {
	case config.WebhookTriggerAlways:
		return true
	case config.WebhookTriggerNever:
		return false
	default:
		return hasFailures
	}
}

// commandContext returns the command's context, or Background when the
// command is run outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadConfig loads the file named by the --config flag, or the defaults
// when the flag is absent or empty.
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	var path string
	if f := cmd.Flags().Lookup("config"); f != nil {
		path = f.Value.String()
	}

	cfg, err := config.Load(commandContext(cmd), path)
	if err != nil {
		return nil, "", fmt.Errorf("loading config: %w", err)
	}
	return cfg, path, nil
}

// resolveInputs expands args, falling back to the configured sources.
func resolveInputs(args []string, cfg *config.Config, d *detector.Detector, logger *slog.Logger) ([]string, error) {
	patterns := args
	if len(patterns) == 0 {
		patterns = cfg.Sources
	}
	if len(patterns) == 0 {
		return nil, fmt.Errorf("no input files: pass files as arguments or set sources in the config file")
	}

	files, err := input.Expand(patterns, d.Extensions())
	if err != nil {
		return nil, fmt.Errorf("expanding inputs: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no scan files matched: %v", patterns)
	}

	logger.Debug("inputs resolved", "patterns", len(patterns), "files", len(files))
	return files, nil
}
