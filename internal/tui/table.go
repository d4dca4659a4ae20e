// Package tui plays Reversi in a terminal with mouse input.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/jaminalder/codex-reversi/internal/app"
	"github.com/jaminalder/codex-reversi/internal/domain"
)

// Board placement in screen cells. Each board cell is 4 columns by 2 rows.
const (
	originX    = 4
	originY    = 2
	cellWidth  = 4
	cellHeight = 2
)

var (
	boardStyle = tcell.StyleDefault.Background(tcell.NewRGBColor(8, 130, 59)).Foreground(tcell.ColorBlack)
	whiteStyle = boardStyle.Foreground(tcell.NewRGBColor(217, 217, 217)).Bold(true)
	blackStyle = boardStyle.Foreground(tcell.NewRGBColor(36, 36, 36)).Bold(true)
	hintStyle  = boardStyle.Foreground(tcell.NewRGBColor(120, 200, 150))
	textStyle  = tcell.StyleDefault
)

// Table owns one game and the screen it is drawn on.
type Table struct {
	screen  tcell.Screen
	game    domain.Game
	geom    domain.Geometry
	log     *zap.SugaredLogger
	status  string
	pressed bool
}

// New returns a table with a fresh game on screen.
func New(screen tcell.Screen, log *zap.SugaredLogger) *Table {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Table{
		screen: screen,
		game:   domain.New(),
		geom: domain.Geometry{
			OriginX:    originX,
			OriginY:    originY,
			CellWidth:  cellWidth,
			CellHeight: cellHeight,
		},
		log: log,
	}
}

// Game returns a copy of the current game.
func (t *Table) Game() domain.Game { return t.game }

// Status returns the last notice shown to the players.
func (t *Table) Status() string { return t.status }

// Run drives the table until the players quit or ctx is done. Every loop
// iteration is one tick: the turn controller runs before input is read.
func (t *Table) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-ctx.Done()
		_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()
	for {
		res := t.Tick()
		t.Draw()
		if res.Changed() {
			continue
		}
		ev := t.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if _, ok := ev.(*tcell.EventInterrupt); ok && ctx.Err() != nil {
			return ctx.Err()
		}
		if t.HandleEvent(ev) {
			return nil
		}
	}
}

// Tick advances the turn controller once and records any notice.
func (t *Table) Tick() domain.TickResult {
	res := t.game.Tick()
	switch {
	case res.Ended:
		summary := fmt.Sprintf("%d - %d, %s!", res.White, res.Black, res.Outcome)
		t.log.Infow(app.NoticeFinished)
		t.log.Infow(summary, "white", res.White, "black", res.Black)
		t.status = app.NoticeFinished + " " + summary
	case res.Skipped != domain.Empty:
		t.status = fmt.Sprintf("Skip %s!", res.Skipped)
		t.log.Infow(t.status)
	}
	return res
}

// HandleEvent applies one input event and reports whether to quit.
func (t *Table) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return true
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return true
		}
	case *tcell.EventMouse:
		down := ev.Buttons()&tcell.Button1 != 0
		if down && !t.pressed {
			x, y := ev.Position()
			t.click(float64(x), float64(y))
		}
		t.pressed = down
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return false
}

func (t *Table) click(px, py float64) {
	x, y, ok := t.geom.Cell(px, py)
	if !ok {
		return
	}
	side := t.game.Turn
	err := t.game.Play(x, y)
	switch {
	case err == nil:
		t.status = ""
		white, black := t.game.Score()
		t.log.Debugw("move", "side", side, "x", x, "y", y, "white", white, "black", black)
	case errors.Is(err, domain.ErrOccupied), errors.Is(err, domain.ErrIllegalMove):
		t.status = app.NoticeCantPut
		t.log.Infow(app.NoticeCantPut, "side", side, "x", x, "y", y)
	}
}

// Draw renders the board, legal-move hints, score and result.
func (t *Table) Draw() {
	s := t.screen
	s.Clear()

	var legal domain.Moves
	if !t.game.Over {
		legal = t.game.LegalMoves()
	}
	if t.game.Over {
		drawText(s, originX, 0, textStyle.Bold(true), t.game.Outcome().String()+"!")
	} else {
		drawText(s, originX, 0, textStyle, fmt.Sprintf("%s to move (%d options)", t.game.Turn, legal.Count()))
	}
	for y := 0; y < domain.Size; y++ {
		for x := 0; x < domain.Size; x++ {
			t.drawCell(x, y, legal[y][x])
		}
	}

	white, black := t.game.Score()
	bottom := originY + domain.Size*cellHeight + 1
	drawText(s, originX, bottom, textStyle, fmt.Sprintf("WHITE: %02d, BLACK: %02d", white, black))
	drawText(s, originX+24, bottom, textStyle.Dim(true), fmt.Sprintf("move %d", t.game.Moves))
	drawText(s, originX, bottom+1, textStyle, t.status)
	drawText(s, originX, bottom+2, textStyle.Dim(true), "click to place, q or Esc to quit")
	s.Show()
}

func (t *Table) drawCell(x, y int, hint bool) {
	col := originX + x*cellWidth
	row := originY + y*cellHeight
	for dy := 0; dy < cellHeight; dy++ {
		for dx := 0; dx < cellWidth; dx++ {
			r := ' '
			switch {
			case dy == 0 && dx == 0:
				r = '│'
			case dy == 1 && dx == 0:
				r = '┼'
			case dy == 1:
				r = '─'
			}
			t.screen.SetContent(col+dx, row+dy, r, nil, boardStyle)
		}
	}
	switch t.game.Board[y][x] {
	case domain.White:
		t.screen.SetContent(col+2, row, '●', nil, whiteStyle)
	case domain.Black:
		t.screen.SetContent(col+2, row, '●', nil, blackStyle)
	default:
		if hint {
			t.screen.SetContent(col+2, row, '·', nil, hintStyle)
		}
	}
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
