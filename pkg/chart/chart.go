// Package chart renders decoded scans as diffraction pattern images.
package chart

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ccollicutt/xrdscan/pkg/scan"
)

// Default image size.
const (
	DefaultWidth  = 10 * vg.Inch
	DefaultHeight = 4 * vg.Inch
)

// ErrEmptyScan is returned when a scan has no points to draw.
var ErrEmptyScan = errors.New("chart: scan has no points")

// Points converts a scan into plotter points, one per sample.
func Points(s *scan.Scan) plotter.XYs {
	pts := make(plotter.XYs, s.Len())
	for i := range pts {
		pts[i].X = s.X(i)
		pts[i].Y = s.Y(i)
	}
	return pts
}

// New builds a counts-versus-2θ line plot of s.
func New(s *scan.Scan, title string) (*plot.Plot, error) {
	if s.Len() == 0 {
		return nil, ErrEmptyScan
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "2θ (°)"
	p.Y.Label.Text = "Counts"
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(Points(s))
	if err != nil {
		return nil, err
	}
	line.Width = vg.Points(1)
	p.Add(line)

	return p, nil
}

// Save renders s to path. The image format follows the file extension
// (png, svg, pdf, ...).
func Save(s *scan.Scan, title, path string) error {
	p, err := New(s, title)
	if err != nil {
		return err
	}
	if err := p.Save(DefaultWidth, DefaultHeight, path); err != nil {
		return fmt.Errorf("save plot %s: %w", path, err)
	}
	return nil
}

// FileName returns the image name for a scan file: its base name with the
// extension replaced by ext.
func FileName(scanPath, ext string) string {
	base := filepath.Base(scanPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "." + strings.TrimPrefix(ext, ".")
}

// FileNames assigns each scan path a distinct image name in one output
// directory. Paths that share a base name get a numeric suffix in input
// order: quartz.png, quartz-2.png, quartz-3.png.
func FileNames(paths []string, ext string) map[string]string {
	ext = strings.TrimPrefix(ext, ".")
	names := make(map[string]string, len(paths))
	used := make(map[string]bool, len(paths))

	for _, p := range paths {
		if _, ok := names[p]; ok {
			continue
		}
		name := FileName(p, ext)
		if used[name] {
			stem := strings.TrimSuffix(name, "."+ext)
			for n := 2; ; n++ {
				candidate := fmt.Sprintf("%s-%d.%s", stem, n, ext)
				if !used[candidate] {
					name = candidate
					break
				}
			}
		}
		used[name] = true
		names[p] = name
	}
	return names
}
