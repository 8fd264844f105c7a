package export

import (
	"fmt"
	"html"
	"math"
	"os"
	"strings"

	"github.com/san-kum/golfsim/internal/ballistics"
)

const (
	marginLeft   = 70.0
	marginRight  = 20.0
	marginTop    = 50.0
	marginBottom = 60.0
)

// Series is one labelled curve of a chart.
type Series struct {
	Label  string
	Color  string
	Dashed bool
	Points []ballistics.Point
}

// Chart is a static x/y line chart. Both axes start at zero, so the part of
// a flight below ground is clipped.
type Chart struct {
	Title  string
	XLabel string
	YLabel string
	Width  int
	Height int
	Series []Series
}

func NewChart(title string) *Chart {
	return &Chart{
		Title:  title,
		XLabel: "x (m)",
		YLabel: "y (m)",
		Width:  1000,
		Height: 600,
	}
}

func (c *Chart) Add(s Series) {
	c.Series = append(c.Series, s)
}

func (c *Chart) bounds() (maxX, maxY float64) {
	for _, s := range c.Series {
		for _, p := range s.Points {
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
		}
	}
	if maxX <= 0 {
		maxX = 1
	}
	if maxY <= 0 {
		maxY = 1
	}
	return maxX * 1.05, maxY * 1.1
}

// SVG renders the chart as a standalone SVG document.
func (c *Chart) SVG() string {
	w, h := float64(c.Width), float64(c.Height)
	plotW := w - marginLeft - marginRight
	plotH := h - marginTop - marginBottom
	maxX, maxY := c.bounds()

	px := func(x float64) float64 { return marginLeft + x/maxX*plotW }
	py := func(y float64) float64 { return marginTop + plotH - y/maxY*plotH }

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="sans-serif">
<rect width="100%%" height="100%%" fill="#ffffff"/>
<defs><clipPath id="plot"><rect x="%.1f" y="%.1f" width="%.1f" height="%.1f"/></clipPath></defs>
`, c.Width, c.Height, c.Width, c.Height, marginLeft, marginTop, plotW, plotH))

	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" text-anchor="middle" font-size="16">%s</text>
`, w/2, marginTop/2+6, html.EscapeString(c.Title)))

	sb.WriteString(`<g stroke="#dddddd" stroke-width="1" font-size="11" fill="#333333">
`)
	for _, v := range ticks(maxX) {
		x := px(v)
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/><text x="%.1f" y="%.1f" text-anchor="middle" stroke="none">%s</text>
`, x, marginTop, x, marginTop+plotH, x, marginTop+plotH+16, formatTick(v)))
	}
	for _, v := range ticks(maxY) {
		y := py(v)
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/><text x="%.1f" y="%.1f" text-anchor="end" stroke="none">%s</text>
`, marginLeft, y, marginLeft+plotW, y, marginLeft-6, y+4, formatTick(v)))
	}
	sb.WriteString("</g>\n")

	sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="#000000"/>
`, marginLeft, marginTop, plotW, plotH))
	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" text-anchor="middle" font-size="13">%s</text>
`, marginLeft+plotW/2, h-15, html.EscapeString(c.XLabel)))
	sb.WriteString(fmt.Sprintf(`<text x="18" y="%.1f" text-anchor="middle" font-size="13" transform="rotate(-90 18 %.1f)">%s</text>
`, marginTop+plotH/2, marginTop+plotH/2, html.EscapeString(c.YLabel)))

	sb.WriteString(`<g clip-path="url(#plot)" fill="none" stroke-width="1.5">
`)
	for _, s := range c.Series {
		if len(s.Points) < 2 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<path stroke="%s"%s d="M`, html.EscapeString(s.Color), dash(s.Dashed)))
		for i, p := range s.Points {
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", px(p.X), py(p.Y)))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", px(p.X), py(p.Y)))
			}
		}
		sb.WriteString("\"/>\n")
	}
	sb.WriteString("</g>\n")

	if len(c.Series) > 0 {
		c.writeLegend(&sb, marginLeft+plotW)
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

func (c *Chart) writeLegend(sb *strings.Builder, right float64) {
	longest := 0
	for _, s := range c.Series {
		longest = max(longest, len(s.Label))
	}
	boxW := 50 + float64(longest)*6.5
	boxH := 10 + 18*float64(len(c.Series))
	x0 := right - boxW - 10
	y0 := marginTop + 10

	sb.WriteString(fmt.Sprintf(`<g font-size="12"><rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="#ffffff" fill-opacity="0.85" stroke="#cccccc"/>
`, x0, y0, boxW, boxH))
	for i, s := range c.Series {
		y := y0 + 14 + 18*float64(i)
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1.5"%s/><text x="%.1f" y="%.1f">%s</text>
`, x0+8, y, x0+36, y, html.EscapeString(s.Color), dash(s.Dashed), x0+42, y+4, html.EscapeString(s.Label)))
	}
	sb.WriteString("</g>\n")
}

func dash(dashed bool) string {
	if dashed {
		return ` stroke-dasharray="6,4"`
	}
	return ""
}

// ticks returns round values from 0 up to max, about five of them.
func ticks(max float64) []float64 {
	step := niceStep(max / 5)
	var out []float64
	for v := 0.0; v <= max+1e-9; v += step {
		out = append(out, v)
	}
	return out
}

func niceStep(raw float64) float64 {
	if raw <= 0 {
		return 1
	}
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch f := raw / mag; {
	case f <= 1:
		return mag
	case f <= 2:
		return 2 * mag
	case f <= 5:
		return 5 * mag
	default:
		return 10 * mag
	}
}

func formatTick(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%g", math.Round(v*1000)/1000)
}

func WriteSVG(path string, c *Chart) error {
	return os.WriteFile(path, []byte(c.SVG()), 0644)
}
