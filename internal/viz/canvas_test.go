package viz

import (
	"strings"
	"testing"
)

func TestCanvasSetAndClear(t *testing.T) {
	c := NewCanvas(10, 5)

	c.Set(0, 0)
	if c.Grid[0][0] == 0x2800 {
		t.Error("expected a lit dot")
	}

	// Out-of-range sets are ignored.
	c.Set(-1, 0)
	c.Set(0, -1)
	c.Set(100, 100)

	c.Clear()
	for _, row := range c.Grid {
		for _, cell := range row {
			if cell != 0x2800 {
				t.Fatal("expected empty braille cells after clear")
			}
		}
	}
}

func TestCanvasPixelSize(t *testing.T) {
	c := NewCanvas(80, 36)
	w, h := c.PixelSize()
	if w != 160 || h != 144 {
		t.Errorf("expected 160x144 sub-pixels, got %dx%d", w, h)
	}
}

func TestDrawLineEndpoints(t *testing.T) {
	c := NewCanvas(20, 20)
	c.DrawLine(0, 0, 30, 30)

	if c.Grid[0][0] == 0x2800 {
		t.Error("line start not drawn")
	}
	// (30, 30) lives in cell (15, 7).
	if c.Grid[7][15] == 0x2800 {
		t.Error("line end not drawn")
	}
}

func TestDrawCircle(t *testing.T) {
	c := NewCanvas(20, 10)
	c.DrawCircle(20, 20, 8)

	// Cardinal points of the circle must be lit.
	for _, pt := range []struct{ x, y int }{{28, 20}, {12, 20}, {20, 28}, {20, 12}} {
		col, row := pt.x/2, pt.y/4
		if c.Grid[row][col] == 0x2800 {
			t.Errorf("cardinal point (%d, %d) not drawn", pt.x, pt.y)
		}
	}

	// Center stays empty for an outline.
	if c.Grid[5][10] != 0x2800 {
		t.Error("circle center should not be filled")
	}
}

func TestDrawCircleTinyRadius(t *testing.T) {
	c := NewCanvas(10, 10)
	c.DrawCircle(6, 6, 0)
	if c.Grid[1][3] == 0x2800 {
		t.Error("zero radius should light the center sub-pixel")
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(4, 3)
	lines := strings.Split(strings.TrimRight(c.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	for _, line := range lines {
		if len([]rune(line)) != 4 {
			t.Errorf("expected 4 runes per line, got %d", len([]rune(line)))
		}
	}
}
