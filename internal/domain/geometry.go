package domain

import "math"

// Geometry maps continuous pointer positions onto board cells.
type Geometry struct {
	OriginX    float64
	OriginY    float64
	CellWidth  float64
	CellHeight float64
}

// Cell returns the board cell under (px, py). ok is false when the
// position falls outside the board.
func (g Geometry) Cell(px, py float64) (x, y int, ok bool) {
	if g.CellWidth <= 0 || g.CellHeight <= 0 {
		return 0, 0, false
	}
	fx := math.Floor((px - g.OriginX) / g.CellWidth)
	fy := math.Floor((py - g.OriginY) / g.CellHeight)
	if fx < 0 || fx >= Size || fy < 0 || fy >= Size {
		return 0, 0, false
	}
	return int(fx), int(fy), true
}
