package domain

// Cell represents a board cell state.
type Cell uint8

const (
	Empty Cell = iota
	White
	Black
)

// Size is the number of cells along each side of the board.
const Size = 8

// Board is a fixed 8x8 board indexed [y][x].
type Board [Size][Size]Cell

// String returns the display name of the side owning c.
func (c Cell) String() string {
	switch c {
	case White:
		return "WHITE"
	case Black:
		return "BLACK"
	default:
		return "EMPTY"
	}
}

// Opponent returns the other side. Empty has no opponent.
func (c Cell) Opponent() Cell {
	switch c {
	case White:
		return Black
	case Black:
		return White
	default:
		return Empty
	}
}

// directions lists the 8 compass offsets as (dx, dy).
var directions = [8][2]int{
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
}

// NewBoard returns the standard starting position.
func NewBoard() Board {
	var b Board
	b[3][3] = White
	b[3][4] = Black
	b[4][3] = Black
	b[4][4] = White
	return b
}

// InBounds reports whether (x, y) addresses a cell.
func InBounds(x, y int) bool {
	return x >= 0 && x < Size && y >= 0 && y < Size
}

// At returns the cell at (x, y), or Empty when out of range.
func (b Board) At(x, y int) Cell {
	if !InBounds(x, y) {
		return Empty
	}
	return b[y][x]
}

// ResolveCapture returns b with every opponent run bracketed from (x, y)
// flipped to player. The disc at (x, y) itself is not written.
func ResolveCapture(b Board, x, y int, player Cell) Board {
	out := b
	if !InBounds(x, y) {
		return out
	}
	opp := player.Opponent()
	if opp == Empty {
		return out
	}
	for _, d := range directions {
		cx, cy := x+d[0], y+d[1]
		run := 0
		for InBounds(cx, cy) && b[cy][cx] == opp {
			run++
			cx += d[0]
			cy += d[1]
		}
		if run == 0 || !InBounds(cx, cy) || b[cy][cx] != player {
			continue
		}
		for i := 1; i <= run; i++ {
			out[y+d[1]*i][x+d[0]*i] = player
		}
	}
	return out
}
