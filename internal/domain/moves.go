package domain

// Moves flags the cells where the side to move may place a disc.
type Moves [Size][Size]bool

// IsLegal reports whether player may place a disc at (x, y).
func IsLegal(b Board, x, y int, player Cell) bool {
	if !InBounds(x, y) || b[y][x] != Empty {
		return false
	}
	return ResolveCapture(b, x, y, player) != b
}

// LegalMoves returns the legal-move map for player.
func LegalMoves(b Board, player Cell) Moves {
	var m Moves
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			if b[y][x] == Empty {
				m[y][x] = IsLegal(b, x, y, player)
			}
		}
	}
	return m
}

// Any reports whether at least one move is flagged.
func (m Moves) Any() bool {
	return m != Moves{}
}

// Count returns the number of flagged cells.
func (m Moves) Count() int {
	n := 0
	for y := range m {
		for x := range m[y] {
			if m[y][x] {
				n++
			}
		}
	}
	return n
}
