package udf

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/ccollicutt/xrdscan/pkg/scan"
)

// KeyVal is one parsed header declaration.
type KeyVal struct {
	Key   string
	Value string
}

// AxisParams describes the fixed-step X axis declared in the header.
// Both fields stay zero unless the file sets them.
type AxisParams struct {
	Start float64
	Step  float64
}

// parseKeyVal splits a header line into key and value.
// The value sits between the first and the last comma; a line with exactly
// one comma is corrupt.
func parseKeyVal(line string) (KeyVal, bool) {
	first := strings.IndexByte(line, ',')
	if first < 0 {
		return KeyVal{Key: strings.TrimSpace(line)}, true
	}
	last := strings.LastIndexByte(line, ',')
	if last == first {
		return KeyVal{}, false
	}
	return KeyVal{
		Key:   strings.TrimSpace(line[:first]),
		Value: strings.TrimSpace(line[first+1 : last]),
	}, true
}

// parseHeader consumes header lines up to and including the RawScan line.
func (d *Decoder) parseHeader(lr *lineReader) (AxisParams, scan.Metadata, error) {
	var (
		axis AxisParams
		meta scan.Metadata
	)

	for {
		line, err := lr.next()
		if err == io.EOF {
			return axis, nil, &FormatError{Line: lr.line, Msg: "unexpected end of header"}
		}
		if err != nil {
			return axis, nil, fmt.Errorf("reading header: %w", err)
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		kv, ok := parseKeyVal(line)
		if !ok {
			return axis, nil, &FormatError{Line: lr.line, Msg: "corrupt header line"}
		}

		switch kv.Key {
		case KeySentinel:
			d.logger.Debug("header parsed",
				"line", lr.line,
				"entries", meta.Len(),
				"start", axis.Start,
				"step", axis.Step)
			return axis, meta, nil

		case KeyAngleRange:
			// Value is "start, end"; only start feeds the axis.
			start, _, _ := strings.Cut(kv.Value, ",")
			v, err := parseNumber(start)
			if err != nil {
				return axis, nil, &FormatError{Line: lr.line, Msg: "invalid " + KeyAngleRange, Err: err}
			}
			axis.Start = v

		case KeyStepSize:
			v, err := parseNumber(kv.Value)
			if err != nil {
				return axis, nil, &FormatError{Line: lr.line, Msg: "invalid " + KeyStepSize, Err: err}
			}
			axis.Step = v

		default:
			meta.Add(kv.Key, kv.Value)
		}
	}
}

// errNotFinite rejects the NaN and Inf spellings ParseFloat accepts.
var errNotFinite = errors.New("value is not a finite number")

// parseNumber parses an axis value. Only finite numbers are accepted.
func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errNotFinite
	}
	return v, nil
}
