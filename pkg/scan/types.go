// Package scan provides the in-memory representation of a decoded
// diffraction scan: a fixed-step X axis, the measured Y samples and the
// header metadata of the file it came from.
package scan

// FormatInfo describes the capabilities of a file format decoder.
type FormatInfo struct {
	ID         string   `json:"id"`         // Short identifier, e.g. philips_udf
	Name       string   `json:"name"`       // Human-readable name
	Extensions []string `json:"extensions"` // File extensions without the dot
	Binary     bool     `json:"binary"`     // True for binary formats
	MultiRange bool     `json:"multi_range"`
}

// Entry is a single metadata key/value pair.
type Entry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Metadata is an ordered list of header entries.
// Keys may repeat; insertion order is preserved.
type Metadata []Entry

// Add appends a key/value pair.
func (m *Metadata) Add(key, value string) {
	*m = append(*m, Entry{Key: key, Value: value})
}

// Get returns the last value recorded for key.
func (m Metadata) Get(key string) (string, bool) {
	for i := len(m) - 1; i >= 0; i-- {
		if m[i].Key == key {
			return m[i].Value, true
		}
	}
	return "", false
}

// Len returns the number of entries.
func (m Metadata) Len() int { return len(m) }

// StepAxis describes an evenly spaced axis without storing every point.
type StepAxis struct {
	Start float64 `json:"start"`
	Step  float64 `json:"step"`
	Count int     `json:"count"`
}

// Value returns the i-th point of the axis.
func (a StepAxis) Value(i int) float64 {
	return a.Start + float64(i)*a.Step
}

// End returns the last point of the axis, or Start for an empty axis.
func (a StepAxis) End() float64 {
	if a.Count == 0 {
		return a.Start
	}
	return a.Value(a.Count - 1)
}
