package viz

import (
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/golfsim/internal/ballistics"
)

// OverlaySeries is one labelled trajectory for Overlay.
type OverlaySeries struct {
	Label  string
	Color  string
	Points []ballistics.Point
}

// Resample evaluates a path at n evenly spaced x positions from 0 to maxX by
// linear interpolation along the first segment spanning each position.
// Positions the path never reaches, and heights below ground, read as zero.
func Resample(points []ballistics.Point, maxX float64, n int) []float64 {
	out := make([]float64, n)
	if n == 0 || len(points) < 2 {
		return out
	}
	for i := range out {
		x := maxX * float64(i) / float64(max(n-1, 1))
		for j := 1; j < len(points); j++ {
			a, b := points[j-1], points[j]
			lo, hi := math.Min(a.X, b.X), math.Max(a.X, b.X)
			if x < lo || x > hi {
				continue
			}
			y := a.Y
			if hi > lo {
				y = a.Y + (x-a.X)/(b.X-a.X)*(b.Y-a.Y)
			}
			out[i] = math.Max(y, 0)
			break
		}
	}
	return out
}

// Overlay plots every series against a shared x axis spanning the longest
// flight.
func Overlay(series []OverlaySeries, width, height int, caption string) string {
	if len(series) == 0 {
		return ""
	}

	maxX := 0.0
	for _, s := range series {
		for _, p := range s.Points {
			maxX = math.Max(maxX, p.X)
		}
	}
	if maxX <= 0 {
		maxX = 1
	}

	data := make([][]float64, len(series))
	colors := make([]asciigraph.AnsiColor, len(series))
	legends := make([]string, len(series))
	for i, s := range series {
		data[i] = Resample(s.Points, maxX, width)
		legends[i] = s.Label
		if c, ok := asciigraph.ColorNames[s.Color]; ok {
			colors[i] = c
		} else {
			colors[i] = asciigraph.Default
		}
	}

	return asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.LowerBound(0),
		asciigraph.Precision(1),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(legends...),
		asciigraph.Caption(caption),
	)
}

// HeightProfile plots the height of one flight against sample index.
func HeightProfile(tr *ballistics.Trajectory, width, height int, caption string) string {
	ys := make([]float64, tr.Len())
	for i, s := range tr.Samples {
		ys[i] = s.Y
	}
	if len(ys) == 0 {
		return ""
	}
	return asciigraph.Plot(ys,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}
