package udf

import (
	"errors"
	"fmt"
)

// ErrNotUDF is returned by Decode when the stream does not carry the
// UDF signature.
var ErrNotUDF = errors.New("udf: not a Philips UDF file")

// FormatError reports a recognized but corrupt UDF file.
type FormatError struct {
	// Line is the 1-based line number where decoding stopped (0 if unknown).
	Line int

	// Msg describes the problem.
	Msg string

	// Err is the underlying cause, if any.
	Err error
}

func (e *FormatError) Error() string {
	msg := "udf: "
	if e.Line > 0 {
		msg += fmt.Sprintf("line %d: ", e.Line)
	}
	msg += e.Msg
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FormatError) Unwrap() error { return e.Err }
