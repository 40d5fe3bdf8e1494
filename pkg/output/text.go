package output

import (
	"context"
	"fmt"
	"io"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	fmt.Fprintf(w, "xrdscan: %d files checked, %d decoded, %d failed\n",
		report.Summary.FilesChecked,
		report.Summary.FilesDecoded,
		report.Summary.FilesFailed)
	return nil
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	fmt.Fprintln(w, "=== xrdscan Inspection Report ===")
	fmt.Fprintln(w)

	for _, file := range report.Files {
		if file.Failed() {
			f.formatFailed(file, w)
		} else {
			f.formatDecoded(file, w)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d files checked, %d decoded, %d failed, %d points\n",
		report.Summary.FilesChecked,
		report.Summary.FilesDecoded,
		report.Summary.FilesFailed,
		report.Summary.TotalPoints)

	if f.opts.Verbose {
		fmt.Fprintf(w, "Duration: %s\n", report.Metadata.Duration.Round(1e6))
	}

	return nil
}

func (f *TextFormatter) formatFailed(file *FileResult, w io.Writer) {
	fmt.Fprintf(w, "[FAILED] %s\n", file.Path)
	fmt.Fprintf(w, "  %s\n", file.Error)
}

func (f *TextFormatter) formatDecoded(file *FileResult, w io.Writer) {
	fmt.Fprintf(w, "[OK] %s (%s)\n", file.Path, file.Format)
	fmt.Fprintf(w, "  X: %.4f .. %.4f, step %.4f (%d points)\n",
		file.Axis.Start, file.End, file.Axis.Step, file.Axis.Count)

	if !f.opts.Verbose {
		fmt.Fprintf(w, "  Metadata: %d entries\n", len(file.Metadata))
	} else {
		fmt.Fprintf(w, "  Metadata:\n")
		for _, e := range file.Metadata {
			fmt.Fprintf(w, "    %s = %s\n", e.Key, e.Value)
		}
	}

	if s := file.Stats; s != nil {
		fmt.Fprintf(w, "  Counts: min %.0f, max %.0f, mean %.2f, median %.2f, stddev %.2f, sum %.0f\n",
			s.Min, s.Max, s.Mean, s.Median, s.StdDev, s.Sum)
		fmt.Fprintf(w, "  Peak at X = %.4f\n", s.PeakX)
	}

	if f.opts.Verbose && len(file.Preview) > 0 {
		fmt.Fprintf(w, "  First %d points:\n", len(file.Preview))
		for _, p := range file.Preview {
			fmt.Fprintf(w, "    %10.4f %10.0f\n", p.X, p.Y)
		}
	}
}
