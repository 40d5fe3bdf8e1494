package detector

import (
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/ccollicutt/xrdscan/pkg/scan"
	"github.com/ccollicutt/xrdscan/pkg/udf"
)

// Decoder reads a single scan from a stream.
type Decoder interface {
	Decode(r io.ReadSeeker) (*scan.Scan, error)
}

// Format is a known file format that can be probed and decoded.
type Format struct {
	Info scan.FormatInfo

	// Detect reports whether the stream is in this format.
	// It must leave the stream position where it found it.
	Detect func(r io.ReadSeeker) bool

	// NewDecoder returns a decoder that logs to logger.
	NewDecoder func(logger *slog.Logger) Decoder
}

// MatchesExtension reports whether path carries one of the format's extensions.
func (f *Format) MatchesExtension(path string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return false
	}
	for _, e := range f.Info.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// DefaultFormats returns the built-in formats in probe order.
func DefaultFormats() []*Format {
	return []*Format{
		{
			Info:   udf.Info(),
			Detect: udf.Detect,
			NewDecoder: func(logger *slog.Logger) Decoder {
				return udf.NewDecoder(udf.WithLogger(logger))
			},
		},
	}
}
