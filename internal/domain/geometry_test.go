package domain

import "testing"

func TestGeometryCell(t *testing.T) {
	// 640x640 window, 50px cells, board centred
	g := Geometry{OriginX: 120, OriginY: 120, CellWidth: 50, CellHeight: 50}
	cases := []struct {
		px, py float64
		x, y   int
		ok     bool
	}{
		{120, 120, 0, 0, true},
		{169.9, 120, 0, 0, true},
		{170, 175, 1, 1, true},
		{519.9, 519.9, 7, 7, true},
		{520, 300, 0, 0, false},
		{300, 520, 0, 0, false},
		{119.9, 300, 0, 0, false},
		{300, 0, 0, 0, false},
		{120 + 9*50, 120 + 2*50, 0, 0, false},
	}
	for _, c := range cases {
		x, y, ok := g.Cell(c.px, c.py)
		if ok != c.ok || (ok && (x != c.x || y != c.y)) {
			t.Fatalf("Cell(%v, %v) = (%d, %d, %v), want (%d, %d, %v)", c.px, c.py, x, y, ok, c.x, c.y, c.ok)
		}
	}
}

func TestGeometryNonSquareCells(t *testing.T) {
	g := Geometry{OriginX: 2, OriginY: 1, CellWidth: 4, CellHeight: 2}
	x, y, ok := g.Cell(13, 6)
	if !ok || x != 2 || y != 2 {
		t.Fatalf("expected (2,2), got (%d,%d,%v)", x, y, ok)
	}
	if _, _, ok := (Geometry{}).Cell(1, 1); ok {
		t.Fatalf("zero geometry should reject every position")
	}
}
