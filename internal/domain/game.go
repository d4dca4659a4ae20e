package domain

import "errors"

// Phase is the turn controller state derived from a Game.
type Phase uint8

const (
	Playing Phase = iota
	Skipped
	Ended
)

func (p Phase) String() string {
	switch p {
	case Skipped:
		return "skipped"
	case Ended:
		return "ended"
	default:
		return "playing"
	}
}

// Game holds the current state of a Reversi match.
type Game struct {
	Board Board
	Turn  Cell
	Skips int
	Over  bool
	Moves int
}

// TickResult describes what a single Tick changed.
type TickResult struct {
	// Skipped is the side that was forced to pass, Empty otherwise.
	Skipped Cell
	Ended   bool
	White   int
	Black   int
	Outcome Outcome
}

// Changed reports whether the tick advanced the turn controller.
func (r TickResult) Changed() bool {
	return r.Skipped != Empty || r.Ended
}

// Errors returned by domain operations.
var (
	ErrOutOfBounds = errors.New("out of bounds")
	ErrOccupied    = errors.New("cell occupied")
	ErrIllegalMove = errors.New("no discs to flip")
	ErrGameOver    = errors.New("game over")
)

// New returns a new game with Black to move.
func New() Game {
	return Game{Board: NewBoard(), Turn: Black}
}

// Phase returns the controller state.
func (g *Game) Phase() Phase {
	switch {
	case g.Over:
		return Ended
	case g.Skips == 1:
		return Skipped
	default:
		return Playing
	}
}

// LegalMoves returns the legal-move map for the side to move.
func (g *Game) LegalMoves() Moves {
	return LegalMoves(g.Board, g.Turn)
}

// Score returns the current disc counts.
func (g *Game) Score() (white, black int) {
	return CountDiscs(g.Board)
}

// Outcome judges the current disc counts. It is only final once Over is set.
func (g *Game) Outcome() Outcome {
	return Judge(g.Score())
}

// Tick advances the turn controller once, before input is accepted.
// A side without a legal move passes; two passes in a row end the game.
func (g *Game) Tick() TickResult {
	var res TickResult
	if g.Over {
		return res
	}
	if g.LegalMoves().Any() {
		g.Skips = 0
		return res
	}
	passed := g.Turn
	g.Turn = g.Turn.Opponent()
	if g.Skips == 0 {
		g.Skips = 1
		res.Skipped = passed
		return res
	}
	g.Skips = 2
	g.Over = true
	res.Ended = true
	res.White, res.Black = g.Score()
	res.Outcome = Judge(res.White, res.Black)
	return res
}

// Settle ticks until the side to move has a legal move or the game is over,
// returning every tick that changed state.
func (g *Game) Settle() []TickResult {
	var out []TickResult
	for {
		res := g.Tick()
		if !res.Changed() {
			return out
		}
		out = append(out, res)
		if res.Ended {
			return out
		}
	}
}

// Play places a disc for the side to move at (x, y).
func (g *Game) Play(x, y int) error {
	if g.Over {
		return ErrGameOver
	}
	if !InBounds(x, y) {
		return ErrOutOfBounds
	}
	if g.Board[y][x] != Empty {
		return ErrOccupied
	}
	if !IsLegal(g.Board, x, y, g.Turn) {
		return ErrIllegalMove
	}

	// Place the disc first, then propagate flips outward from it
	placed := g.Board
	placed[y][x] = g.Turn
	g.Board = ResolveCapture(placed, x, y, g.Turn)
	g.Moves++
	g.Turn = g.Turn.Opponent()
	g.Skips = 0
	return nil
}
