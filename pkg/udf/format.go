// Package udf decodes the Philips UDF text format written by X-ray
// diffraction instruments.
//
// A UDF file is a header of "key, val1, ..., valN ,/" lines terminated by a
// RawScan line, followed by a block of integer counts:
//
//	SampleIdent,Sample5 ,/
//	Title1,Dat2rit program ,/
//	DataAngleRange,   5.0000, 120.0000,/
//	ScanStepSize,    0.020,/
//	RawScan
//	    6234,    6185,    5969,    6129
//	    442/
//
// DataAngleRange and ScanStepSize define the X axis; every other header
// line is kept as metadata. The file holds a single range.
package udf

import (
	"io"

	"github.com/ccollicutt/xrdscan/pkg/scan"
)

// Signature is the literal prefix every UDF file starts with.
const Signature = "SampleIdent"

// FormatID identifies the format in scans and detector results.
const FormatID = "philips_udf"

// Header keys with special meaning.
const (
	KeySentinel   = "RawScan"
	KeyAngleRange = "DataAngleRange"
	KeyStepSize   = "ScanStepSize"
)

// Info returns the capability descriptor of the format.
func Info() scan.FormatInfo {
	return scan.FormatInfo{
		ID:         FormatID,
		Name:       "Philips UDF Format",
		Extensions: []string{"udf"},
		Binary:     false,
		MultiRange: false,
	}
}

// Detect reports whether r starts with the UDF signature.
// It never returns an error: short or unreadable input is simply not UDF.
// The read position of r is restored before returning.
func Detect(r io.ReadSeeker) bool {
	origin, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return false
	}
	defer func() { _, _ = r.Seek(origin, io.SeekStart) }()

	head := make([]byte, len(Signature))
	if _, err := io.ReadFull(r, head); err != nil {
		return false
	}
	return string(head) == Signature
}
