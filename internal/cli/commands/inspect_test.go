package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ccollicutt/xrdscan/pkg/config"
	"github.com/ccollicutt/xrdscan/pkg/detector"
	"github.com/ccollicutt/xrdscan/pkg/output"
)

func reportWithFailures(n int) *output.Report {
	var files []*output.FileResult
	for i := 0; i < n; i++ {
		files = append(files, output.NewFailedResult("bad.udf", errors.New("udf: corrupt header line")))
	}
	now := time.Now()
	return output.NewReport(files, "", now, now)
}

func TestShouldFireWebhook(t *testing.T) {
	tests := []struct {
		name        string
		trigger     config.WebhookTrigger
		hasFailures bool
		want        bool
	}{
		{"on_failure with failures", config.WebhookTriggerOnFailure, true, true},
		{"on_failure without failures", config.WebhookTriggerOnFailure, false, false},
		{"always with failures", config.WebhookTriggerAlways, true, true},
		{"always without failures", config.WebhookTriggerAlways, false, true},
		{"never with failures", config.WebhookTriggerNever, true, false},
		{"never without failures", config.WebhookTriggerNever, false, false},
		{"empty trigger with failures", "", true, true},
		{"empty trigger without failures", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shouldFireWebhook(tt.trigger, tt.hasFailures); got != tt.want {
				t.Errorf("shouldFireWebhook(%q, %v) = %v, want %v",
					tt.trigger, tt.hasFailures, got, tt.want)
			}
		})
	}
}

func TestCollectWebhooks(t *testing.T) {
	t.Run("config only", func(t *testing.T) {
		cfg := &config.Config{
			Webhooks: []config.WebhookConfig{
				{Name: "lims", URL: "https://lims.example.com/hook"},
				{Name: "archive", URL: "https://archive.example.com/hook"},
			},
		}

		if got := collectWebhooks(cfg, &InspectOptions{}); len(got) != 2 {
			t.Errorf("got %d webhooks, want 2", len(got))
		}
	})

	t.Run("cli only", func(t *testing.T) {
		opts := &InspectOptions{
			WebhookURL:     "https://cli.example.com/hook",
			WebhookToken:   "secret",
			WebhookTrigger: "always",
		}

		got := collectWebhooks(&config.Config{}, opts)
		if len(got) != 1 {
			t.Fatalf("got %d webhooks, want 1", len(got))
		}
		if got[0].Name != "cli" || got[0].Token != "secret" || got[0].Trigger != config.WebhookTriggerAlways {
			t.Errorf("cli webhook = %+v", got[0])
		}
		if got[0].Timeout != config.DefaultWebhookTimeout {
			t.Errorf("Timeout = %v, want %v", got[0].Timeout, config.DefaultWebhookTimeout)
		}
	})

	t.Run("default trigger", func(t *testing.T) {
		got := collectWebhooks(&config.Config{}, &InspectOptions{WebhookURL: "https://example.com/hook"})
		if len(got) != 1 {
			t.Fatalf("got %d webhooks, want 1", len(got))
		}
		if got[0].Trigger != config.WebhookTriggerOnFailure {
			t.Errorf("got trigger %q, want on_failure", got[0].Trigger)
		}
	})
}

func TestSendWebhooks_Triggers(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := &config.Config{
		Webhooks: []config.WebhookConfig{
			{Name: "on-failure", URL: server.URL, Trigger: config.WebhookTriggerOnFailure, Timeout: time.Second},
			{Name: "always", URL: server.URL, Trigger: config.WebhookTriggerAlways, Timeout: time.Second},
			{Name: "never", URL: server.URL, Trigger: config.WebhookTriggerNever, Timeout: time.Second},
		},
	}

	var log bytes.Buffer
	sendWebhooks(context.Background(), &log, cfg, &InspectOptions{}, reportWithFailures(0))
	if got := calls.Load(); got != 1 {
		t.Errorf("clean run fired %d webhooks, want 1", got)
	}

	calls.Store(0)
	sendWebhooks(context.Background(), &log, cfg, &InspectOptions{}, reportWithFailures(2))
	if got := calls.Load(); got != 2 {
		t.Errorf("failed run fired %d webhooks, want 2", got)
	}

	if !strings.Contains(log.String(), "Webhook always: sent (200") {
		t.Errorf("missing sent line in %q", log.String())
	}
}

func TestSendWebhooks_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	var log bytes.Buffer
	opts := &InspectOptions{WebhookURL: server.URL, WebhookTrigger: "always"}
	sendWebhooks(context.Background(), &log, &config.Config{}, opts, reportWithFailures(0))

	if !strings.Contains(log.String(), "Webhook cli: failed") {
		t.Errorf("expected failure line, got %q", log.String())
	}
}

func TestSendWebhooks_NoWebhooks(t *testing.T) {
	var log bytes.Buffer
	sendWebhooks(context.Background(), &log, &config.Config{}, &InspectOptions{}, reportWithFailures(1))

	if log.Len() != 0 {
		t.Errorf("expected no output, got %q", log.String())
	}
}

func TestRunInspect_WebhookFromFlags(t *testing.T) {
	var event string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		event = r.Header.Get("X-Xrdscan-Event")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	path := writeFile(t, t.TempDir(), "bad.udf", brokenUDF)

	cmd := NewInspectCommand()
	cmd.SetArgs([]string{"-q", "--webhook-url", server.URL, path})
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	if event != "inspect.failed" {
		t.Errorf("event = %q, want inspect.failed", event)
	}
	if !strings.Contains(errOut.String(), "Webhook cli: sent (204") {
		t.Errorf("stderr = %q", errOut.String())
	}
	if got := strings.TrimSpace(out.String()); got != "xrdscan: 1 files checked, 0 decoded, 1 failed" {
		t.Errorf("quiet output = %q", got)
	}
}

func TestCreateFormatter(t *testing.T) {
	cfg := &config.Config{Output: "json"}

	tests := []struct {
		flag     string
		wantName string
		wantErr  bool
	}{
		{"", "json", false},
		{"text", "text", false},
		{"json", "json", false},
		{"csv", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			f, err := createFormatter(cfg, &InspectOptions{Output: tt.flag})
			if (err != nil) != tt.wantErr {
				t.Fatalf("createFormatter(%q) error = %v, wantErr %v", tt.flag, err, tt.wantErr)
			}
			if err == nil && f.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", f.Name(), tt.wantName)
			}
		})
	}
}

func TestRunInspect_PlotDir(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "quartz.udf", goodUDF)
	plotDir := filepath.Join(dir, "plots")

	cmd := NewInspectCommand()
	cmd.SetArgs([]string{"-q", "--plot-dir", plotDir, path})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("inspect failed: %v", err)
	}

	info, err := os.Stat(filepath.Join(plotDir, "quartz.png"))
	if err != nil {
		t.Fatalf("plot not written: %v", err)
	}
	if info.Size() == 0 {
		t.Error("plot file is empty")
	}
}

func TestRunInspect_PlotNamesDoNotCollide(t *testing.T) {
	dir := t.TempDir()
	for _, run := range []string{"run1", "run2"} {
		if err := os.Mkdir(filepath.Join(dir, run), 0755); err != nil {
			t.Fatal(err)
		}
		writeFile(t, filepath.Join(dir, run), "quartz.udf", goodUDF)
	}
	plotDir := filepath.Join(dir, "plots")

	cmd := NewInspectCommand()
	cmd.SetArgs([]string{"-q", "--plot-dir", plotDir,
		filepath.Join(dir, "run1", "quartz.udf"),
		filepath.Join(dir, "run2", "quartz.udf"),
	})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("inspect failed: %v", err)
	}

	for _, name := range []string{"quartz.png", "quartz-2.png"} {
		if _, err := os.Stat(filepath.Join(plotDir, name)); err != nil {
			t.Errorf("plot %s not written: %v", name, err)
		}
	}
}

func TestRunInspect_JSONWithNonFiniteAxis(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "quartz.udf", goodUDF)
	nan := writeFile(t, dir, "nan.udf", "SampleIdent,x,/\nScanStepSize, NaN,/\nRawScan\n1/\n")

	cmd := NewInspectCommand()
	cmd.SetArgs([]string{"-o", "json", good, nan})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	if ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", ExitCode)
	}

	var report output.Report
	if err := json.Unmarshal(out.Bytes(), &report); err != nil {
		t.Fatalf("Output is not valid JSON: %v\n%s", err, out.String())
	}
	if report.Summary.FilesDecoded != 1 || report.Summary.FilesFailed != 1 {
		t.Errorf("Summary = %+v, want 1 decoded, 1 failed", report.Summary)
	}
	for _, f := range report.Files {
		if f.Path == nan && (!f.Failed() || f.ErrorLine != 2) {
			t.Errorf("nan.udf = %+v, want failure on line 2", f)
		}
	}
}

func TestResolveInputs_LogsToGivenLogger(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "quartz.udf", goodUDF)
	writeFile(t, dir, "notes.txt", "not a scan")

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	files, err := resolveInputs([]string{dir}, &config.Config{}, detector.New(), logger)
	if err != nil {
		t.Fatalf("resolveInputs() error = %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "quartz.udf" {
		t.Errorf("files = %v, want only quartz.udf", files)
	}
	if !strings.Contains(buf.String(), "inputs resolved") {
		t.Errorf("debug line missing from logger output: %q", buf.String())
	}
}
