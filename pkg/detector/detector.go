// Package detector identifies the format of diffraction data files by
// probing them against a list of known formats.
package detector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/ccollicutt/xrdscan/pkg/scan"
)

// ErrUnknownFormat is returned when no registered format recognizes a file.
var ErrUnknownFormat = errors.New("unknown file format")

// DetectionResult holds the result of probing a file.
type DetectionResult struct {
	Path           string   // File that was probed
	Format         *Format  // Matching format, nil if none
	Probed         []string // Format IDs tried, in order
	ExtensionMatch bool     // True if the file extension agrees with Format
}

// HasMatch returns true if a format recognized the file.
func (r *DetectionResult) HasMatch() bool {
	return r.Format != nil
}

// Detector probes streams against an ordered list of formats.
type Detector struct {
	formats []*Format
	logger  *slog.Logger
}

// Option configures the Detector.
type Option func(*Detector)

// WithFormats replaces the default format list.
func WithFormats(formats ...*Format) Option {
	return func(d *Detector) {
		if len(formats) > 0 {
			d.formats = formats
		}
	}
}

// WithLogger sets the logger handed to decoders.
func WithLogger(l *slog.Logger) Option {
	return func(d *Detector) {
		if l != nil {
			d.logger = l
		}
	}
}

// New creates a new Detector with default formats.
func New(opts ...Option) *Detector {
	d := &Detector{
		formats: DefaultFormats(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Formats returns the registered formats in probe order.
func (d *Detector) Formats() []*Format {
	return d.formats
}

// Extensions returns the file extensions of all registered formats,
// without duplicates, in registration order.
func (d *Detector) Extensions() []string {
	seen := make(map[string]bool)
	var exts []string
	for _, f := range d.formats {
		for _, e := range f.Info.Extensions {
			if !seen[e] {
				seen[e] = true
				exts = append(exts, e)
			}
		}
	}
	return exts
}

// Detect probes r against every format. Formats whose extension matches
// path are tried first. The stream position is unchanged afterwards.
func (d *Detector) Detect(ctx context.Context, r io.ReadSeeker, path string) (*DetectionResult, error) {
	result := &DetectionResult{Path: path}

	for _, f := range d.candidates(path) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result.Probed = append(result.Probed, f.Info.ID)
		if f.Detect(r) {
			result.Format = f
			result.ExtensionMatch = f.MatchesExtension(path)
			d.logger.Debug("format detected", "path", path, "format", f.Info.ID)
			return result, nil
		}
	}

	d.logger.Debug("no format matched", "path", path, "probed", result.Probed)
	return result, nil
}

// DetectFromFile opens path and probes it.
func (d *Detector) DetectFromFile(ctx context.Context, path string) (*DetectionResult, error) {
	// #nosec G304 - path is provided by user via CLI
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return d.Detect(ctx, file, path)
}

// DecodeFile detects the format of path and decodes it.
func (d *Detector) DecodeFile(ctx context.Context, path string) (*scan.Scan, error) {
	// #nosec G304 - path is provided by user via CLI
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	result, err := d.Detect(ctx, file, path)
	if err != nil {
		return nil, err
	}
	if !result.HasMatch() {
		return nil, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}

	s, err := result.Format.NewDecoder(d.logger).Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// candidates orders formats so that those matching the file extension
// come first, keeping registration order otherwise.
func (d *Detector) candidates(path string) []*Format {
	out := make([]*Format, len(d.formats))
	copy(out, d.formats)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchesExtension(path) && !out[j].MatchesExtension(path)
	})
	return out
}
