package udf

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func position(t *testing.T, r io.Seeker) int64 {
	t.Helper()
	pos, err := r.Seek(0, io.SeekCurrent)
	require.NoError(t, err)
	return pos
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"signature with header", "SampleIdent,Sample5 ,/\nRawScan\n", true},
		{"signature only", "SampleIdent", true},
		{"empty", "", false},
		{"too short", "SampleIden", false},
		{"wrong case", "sampleident,x,/", false},
		{"leading space", " SampleIdent,x,/", false},
		{"other format", "<?xml version=\"1.0\"?>", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := strings.NewReader(tt.input)
			assert.Equal(t, tt.want, Detect(r))
			assert.Zero(t, position(t, r), "Detect() must restore the read position")
		})
	}
}

func TestDetect_Idempotent(t *testing.T) {
	for _, input := range []string{"SampleIdent,a,/\n", "nope"} {
		r := strings.NewReader(input)
		assert.Equal(t, Detect(r), Detect(r), "Detect(%q) changed between calls", input)
	}
}

func TestDetect_RestoresNonZeroOffset(t *testing.T) {
	r := bytes.NewReader([]byte("xxxSampleIdent,a,/\n"))
	_, err := r.Seek(3, io.SeekStart)
	require.NoError(t, err)

	assert.True(t, Detect(r), "signature at offset 3")
	assert.Equal(t, int64(3), position(t, r))
}

// flakySeeker fails every Read but seeks normally.
type flakySeeker struct {
	pos int64
}

func (f *flakySeeker) Read([]byte) (int, error) {
	f.pos = 5
	return 0, errors.New("device not ready")
}

func (f *flakySeeker) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		f.pos = offset
	case io.SeekCurrent:
		f.pos += offset
	}
	return f.pos, nil
}

func TestDetect_ReadFailureIsNegative(t *testing.T) {
	r := &flakySeeker{}
	assert.False(t, Detect(r))
	assert.Zero(t, r.pos, "position after failed Detect()")
}

func TestInfo(t *testing.T) {
	info := Info()
	assert.Equal(t, "philips_udf", info.ID)
	assert.Equal(t, []string{"udf"}, info.Extensions)
	assert.False(t, info.Binary)
	assert.False(t, info.MultiRange)

	// Each call returns an independent descriptor.
	info.Extensions[0] = "changed"
	assert.Equal(t, "udf", Info().Extensions[0])
}
