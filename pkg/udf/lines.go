package udf

import (
	"bufio"
	"io"
	"strings"
)

// lineReader yields lines without their terminator and counts them.
type lineReader struct {
	r    *bufio.Reader
	line int
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReader(r)}
}

// next returns the next line. A final line without a newline is still
// returned; io.EOF is only reported once nothing is left.
func (lr *lineReader) next() (string, error) {
	s, err := lr.r.ReadString('\n')
	if err != nil && (err != io.EOF || s == "") {
		return "", err
	}
	lr.line++
	return strings.TrimRight(s, "\r\n"), nil
}
