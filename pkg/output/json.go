package output

import (
	"context"
	"encoding/json"
	"io"
)

// JSONFormatter writes reports as indented JSON documents.
type JSONFormatter struct {
	opts FormatOptions
}

// NewJSONFormatter creates a new JSON formatter with the given options.
func NewJSONFormatter(opts FormatOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Format renders the report as JSON. Quiet mode emits only the summary;
// preview points are included only in verbose mode.
func (f *JSONFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	switch {
	case f.opts.Quiet:
		return enc.Encode(report.Summary)
	case f.opts.Verbose:
		return enc.Encode(report)
	}

	out := *report
	out.Files = make([]*FileResult, len(report.Files))
	for i, file := range report.Files {
		trimmed := *file
		trimmed.Preview = nil
		out.Files[i] = &trimmed
	}
	return enc.Encode(&out)
}
