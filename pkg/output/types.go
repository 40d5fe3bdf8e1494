// Package output provides formatting and output generation for inspection results.
package output

import (
	"errors"
	"time"

	"github.com/ccollicutt/xrdscan/pkg/scan"
	"github.com/ccollicutt/xrdscan/pkg/stats"
	"github.com/ccollicutt/xrdscan/pkg/udf"
)

// Report is the complete inspection output.
type Report struct {
	// Summary provides aggregate statistics.
	Summary Summary

	// Files contains the result for each input file, in input order.
	Files []*FileResult

	// Metadata provides context about the run.
	Metadata Metadata
}

// Summary provides aggregate statistics.
type Summary struct {
	// FilesChecked is the number of input files.
	FilesChecked int

	// FilesDecoded is the number of files decoded without error.
	FilesDecoded int

	// FilesFailed is the number of files that could not be decoded.
	FilesFailed int

	// TotalPoints is the number of samples across all decoded files.
	TotalPoints int
}

// Metadata provides context about the run.
type Metadata struct {
	// ConfigFile is the path to the configuration file used, if any.
	ConfigFile string

	// Sources lists the files that were inspected.
	Sources []string

	// AnalyzedAt is when the run finished.
	AnalyzedAt time.Time

	// Duration is how long the run took.
	Duration time.Duration
}

// Point is one (x, y) pair of a scan.
type Point struct {
	X float64
	Y float64
}

// FileResult describes one decoded (or failed) file.
type FileResult struct {
	Path   string
	Format string

	// Error is set when decoding failed; ErrorLine is the offending line, if known.
	Error     string `json:",omitempty"`
	ErrorLine int    `json:",omitempty"`

	Axis     scan.StepAxis
	End      float64
	Metadata scan.Metadata
	Stats    *stats.Summary `json:",omitempty"`
	Preview  []Point        `json:",omitempty"`
}

// Failed returns true if the file could not be decoded.
func (f *FileResult) Failed() bool {
	return f.Error != ""
}

// NewFileResult summarizes a decoded scan. Up to preview points are copied
// into Preview.
func NewFileResult(path string, s *scan.Scan, preview int) *FileResult {
	res := &FileResult{
		Path:     path,
		Format:   s.Format(),
		Axis:     s.Axis(),
		End:      s.End(),
		Metadata: s.Metadata(),
	}

	n := min(preview, s.Len())
	for i := 0; i < n; i++ {
		res.Preview = append(res.Preview, Point{X: s.X(i), Y: s.Y(i)})
	}

	return res
}

// NewFailedResult records a file that could not be decoded.
func NewFailedResult(path string, err error) *FileResult {
	res := &FileResult{
		Path:  path,
		Error: err.Error(),
	}

	var fe *udf.FormatError
	if errors.As(err, &fe) {
		res.ErrorLine = fe.Line
	}

	return res
}

// NewReport creates a Report from per-file results.
func NewReport(files []*FileResult, configFile string, start, end time.Time) *Report {
	report := &Report{
		Files: files,
		Metadata: Metadata{
			ConfigFile: configFile,
			AnalyzedAt: end,
			Duration:   end.Sub(start),
		},
		Summary: Summary{
			FilesChecked: len(files),
		},
	}

	for _, f := range files {
		report.Metadata.Sources = append(report.Metadata.Sources, f.Path)
		if f.Failed() {
			report.Summary.FilesFailed++
			continue
		}
		report.Summary.FilesDecoded++
		report.Summary.TotalPoints += f.Axis.Count
	}

	return report
}

// HasFailures returns true if any file failed to decode.
func (r *Report) HasFailures() bool {
	return r.Summary.FilesFailed > 0
}
