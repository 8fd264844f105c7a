package viz

import (
	"strings"

	"github.com/san-kum/golfsim/internal/ballistics"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800 // Empty braille char
		}
	}
	return c
}

// Set lights the sub-pixel at (x, y), counted from the top-left corner.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	// Early bounds check for negative coordinates
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	subX := x % 2
	subY := y % 4

	c.Grid[row][col] |= rune(pixelMap[subY][subX])
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Scale maps world coordinates with 0 <= x <= maxX and 0 <= y <= maxY onto
// sub-pixels, with y growing upward.
type Scale struct {
	MaxX, MaxY float64
	w, h       int
}

func (c *Canvas) Scale(maxX, maxY float64) Scale {
	if maxX <= 0 {
		maxX = 1
	}
	if maxY <= 0 {
		maxY = 1
	}
	return Scale{MaxX: maxX, MaxY: maxY, w: c.Width*2 - 1, h: c.Height*4 - 1}
}

func (s Scale) Project(p ballistics.Point) (int, int) {
	px := int(p.X / s.MaxX * float64(s.w))
	py := s.h - int(p.Y/s.MaxY*float64(s.h))
	return px, py
}

// DrawPath joins consecutive points with lines. Points below ground or past
// the right edge fall off the canvas.
func (c *Canvas) DrawPath(points []ballistics.Point, s Scale) {
	for i := 1; i < len(points); i++ {
		x0, y0 := s.Project(points[i-1])
		x1, y1 := s.Project(points[i])
		c.DrawLine(x0, y0, x1, y1)
	}
	if len(points) == 1 {
		c.Set(s.Project(points[0]))
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
