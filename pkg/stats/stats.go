// Package stats computes summary statistics over the Y samples of a scan.
package stats

import (
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"

	"github.com/ccollicutt/xrdscan/pkg/scan"
)

// Summary holds descriptive statistics of a scan's counts.
type Summary struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Sum    float64 `json:"sum"`

	// PeakX is the X position of the highest count.
	PeakX float64 `json:"peak_x"`
}

// Summarize computes a Summary. An empty scan yields a zero Summary.
func Summarize(s *scan.Scan) (Summary, error) {
	data := s.Values()
	sum := Summary{Count: len(data)}
	if len(data) == 0 {
		return sum, nil
	}

	var err error
	if sum.Min, err = stats.Min(data); err != nil {
		return sum, err
	}
	if sum.Max, err = stats.Max(data); err != nil {
		return sum, err
	}
	if sum.Mean, err = stats.Mean(data); err != nil {
		return sum, err
	}
	if sum.Median, err = stats.Median(data); err != nil {
		return sum, err
	}
	if sum.StdDev, err = stats.StandardDeviation(data); err != nil {
		return sum, err
	}
	if sum.Sum, err = stats.Sum(data); err != nil {
		return sum, err
	}

	sum.PeakX = s.X(floats.MaxIdx(data))
	return sum, nil
}
