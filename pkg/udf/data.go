package udf

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// parseSamples consumes the data block. It stops at end of input or after
// the first line containing '/', which may still carry values ("442/").
func (d *Decoder) parseSamples(lr *lineReader) ([]float64, error) {
	var samples []float64
	first := lr.line + 1

	for {
		line, err := lr.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading data block: %w", err)
		}

		samples, err = appendSamples(samples, line)
		if err != nil {
			var fe *FormatError
			if errors.As(err, &fe) {
				fe.Line = lr.line
			}
			return nil, err
		}

		if strings.IndexByte(line, '/') >= 0 {
			break
		}
	}

	d.logger.Debug("data block parsed",
		"first_line", first,
		"last_line", lr.line,
		"samples", len(samples))
	return samples, nil
}

// appendSamples validates one data line and appends its values to dst.
// Commas and whitespace are both separators. Only digits, whitespace and
// '/' are allowed; nothing after a '/' on the line is read.
//
// Errors are *FormatError without a line number; the caller fills it in.
// A digit run too long for a float64 is rejected with strconv.ErrRange
// rather than stored as +Inf.
func appendSamples(dst []float64, line string) ([]float64, error) {
	norm := strings.ReplaceAll(line, ",", " ")

	for i := 0; i < len(norm); i++ {
		c := norm[i]
		if !isDigit(c) && !isSpace(c) && c != '/' {
			return dst, &FormatError{
				Msg: "unexpected character in data block",
				Err: fmt.Errorf("character %q at column %d", c, i+1),
			}
		}
	}

	for _, tok := range strings.Fields(norm) {
		num, _, slash := strings.Cut(tok, "/")
		if num != "" {
			v, err := strconv.ParseFloat(num, 64)
			if err != nil {
				return dst, &FormatError{Msg: "invalid value in data block", Err: err}
			}
			dst = append(dst, v)
		}
		if slash {
			break
		}
	}

	return dst, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// isSpace matches the C locale whitespace set.
func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
