package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/golfsim/internal/ballistics"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(100, 0)

	if c.Grid[0][0] != 0x2801 {
		t.Errorf("expected dot 1, got %U", c.Grid[0][0])
	}
	if c.Grid[0][1] != 0x2880 {
		t.Errorf("expected dot 8, got %U", c.Grid[0][1])
	}

	c.Clear()
	if c.Grid[0][0] != 0x2800 || c.Grid[0][1] != 0x2800 {
		t.Error("clear should blank every cell")
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(4, 3)
	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(lines))
	}
	for _, l := range lines {
		if n := len([]rune(l)); n != 4 {
			t.Errorf("expected 4 cells, got %d", n)
		}
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(10, 1)
	c.DrawLine(0, 0, 19, 0)
	for col, r := range c.Grid[0] {
		if r&0x09 != 0x09 {
			t.Errorf("cell %d not fully lit on the top row: %U", col, r)
		}
	}
}

func TestCanvasDrawPath(t *testing.T) {
	c := NewCanvas(10, 5)
	s := c.Scale(10, 10)

	x, y := s.Project(ballistics.Point{X: 0, Y: 0})
	if x != 0 || y != 19 {
		t.Errorf("origin projected to (%d, %d), want (0, 19)", x, y)
	}
	x, y = s.Project(ballistics.Point{X: 10, Y: 10})
	if x != 19 || y != 0 {
		t.Errorf("corner projected to (%d, %d), want (19, 0)", x, y)
	}

	c.DrawPath([]ballistics.Point{{X: 0, Y: 0}, {X: 5, Y: 10}, {X: 10, Y: 0}, {X: 11, Y: -2}}, s)
	if c.Grid[4][0] == 0x2800 {
		t.Error("expected the start of the path to be drawn")
	}
	if c.Grid[0][4] == 0x2800 && c.Grid[0][5] == 0x2800 {
		t.Error("expected the apex to be drawn")
	}
}
