package udf

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ccollicutt/xrdscan/pkg/scan"
)

// Decoder reads UDF streams into scans.
// A Decoder holds no per-stream state and may be shared.
type Decoder struct {
	logger *slog.Logger
}

// Option configures the Decoder.
type Option func(*Decoder)

// WithLogger sets the logger used for debug tracing.
func WithLogger(l *slog.Logger) Option {
	return func(d *Decoder) {
		if l != nil {
			d.logger = l
		}
	}
}

// NewDecoder creates a Decoder. Logging is discarded unless WithLogger is given.
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode reads one UDF file from r.
// It returns ErrNotUDF if the signature is missing and a *FormatError if the
// file is corrupt. No scan is returned on error.
func (d *Decoder) Decode(r io.ReadSeeker) (*scan.Scan, error) {
	if !Detect(r) {
		return nil, ErrNotUDF
	}

	lr := newLineReader(r)

	axis, meta, err := d.parseHeader(lr)
	if err != nil {
		return nil, err
	}

	samples, err := d.parseSamples(lr)
	if err != nil {
		return nil, err
	}

	return scan.New(FormatID, scan.StepAxis{
		Start: axis.Start,
		Step:  axis.Step,
	}, samples, meta), nil
}

// DecodeFile opens path and decodes it.
func (d *Decoder) DecodeFile(path string) (*scan.Scan, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	s, err := d.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return s, nil
}

// Decode reads one UDF file from r with a default Decoder.
func Decode(r io.ReadSeeker) (*scan.Scan, error) {
	return NewDecoder().Decode(r)
}
