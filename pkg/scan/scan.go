package scan

// Scan is a single-range scan with a fixed-step X axis.
// A Scan is immutable once built; callers own it after decoding.
type Scan struct {
	format string
	axis   StepAxis
	y      []float64
	meta   Metadata
}

// New assembles a Scan. The axis count is always taken from len(y),
// whatever count the caller passed in.
func New(format string, axis StepAxis, y []float64, meta Metadata) *Scan {
	axis.Count = len(y)
	return &Scan{
		format: format,
		axis:   axis,
		y:      y,
		meta:   meta,
	}
}

// Format returns the ID of the format the scan was decoded from.
func (s *Scan) Format() string { return s.format }

// Axis returns the X axis description.
func (s *Scan) Axis() StepAxis { return s.axis }

// Len returns the number of points.
func (s *Scan) Len() int { return len(s.y) }

// X returns the i-th X value.
func (s *Scan) X(i int) float64 { return s.axis.Value(i) }

// End returns the last X value, or the start when the scan is empty.
func (s *Scan) End() float64 { return s.axis.End() }

// Y returns the i-th Y value.
func (s *Scan) Y(i int) float64 { return s.y[i] }

// Values returns a copy of the Y samples.
func (s *Scan) Values() []float64 {
	out := make([]float64, len(s.y))
	copy(out, s.y)
	return out
}

// Metadata returns a copy of the header metadata.
func (s *Scan) Metadata() Metadata {
	out := make(Metadata, len(s.meta))
	copy(out, s.meta)
	return out
}
