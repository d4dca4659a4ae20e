package web

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/google/uuid"

	"github.com/jaminalder/codex-reversi/internal/app"
	"github.com/jaminalder/codex-reversi/internal/domain"
)

type templates struct {
	base  *template.Template
	game  *template.Template
	board *template.Template
	index *template.Template
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"iter": func(n int) []int {
			a := make([]int, n)
			for i := range a {
				a[i] = i
			}
			return a
		},
		"cellClass": func(v boardView, x, y int) string {
			switch v.Board[y][x] {
			case domain.White:
				return "white"
			case domain.Black:
				return "black"
			}
			if v.Legal[y][x] {
				return "hint"
			}
			return "empty"
		},
		"cellSymbol": func(c domain.Cell) string {
			switch c {
			case domain.White:
				return "○"
			case domain.Black:
				return "●"
			default:
				return ""
			}
		},
	}
}

func loadTemplates() *templates {
	base := template.Must(template.New("base").Funcs(funcs()).Parse(`<!doctype html><html><head>
<meta charset="utf-8"/>
<title>Reversi</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://unpkg.com/htmx.org/dist/ext/sse.js"></script>
<style>
.grid{display:grid;grid-template-columns:repeat(8,50px);background:#085b3a;width:400px}
.grid button{width:50px;height:50px;border:1px solid #222;background:none;font-size:36px}
.white{color:#d9d9d9}.black{color:#242424}.hint{background:rgba(255,255,255,.1)!important}
</style>
</head><body>{{template "content" .}}</body></html>`))
	template.Must(base.New("board").Funcs(funcs()).Parse(boardTemplate))
	index := template.Must(template.Must(base.Clone()).New("content").Parse(`<h1>Reversi</h1><form action="/game" method="post"><button>Create</button></form>`))
	game := template.Must(template.Must(base.Clone()).New("content").Parse(`
<div hx-ext="sse" hx-sse="connect:/game/{{.ID}}/events">
  <div id="live" hx-sse="swap:board">{{template "board" .}}</div>
</div>`))
	board := template.Must(template.New("board_only").Funcs(funcs()).Parse(boardTemplate))
	return &templates{base: base, game: game, board: board, index: index}
}

func renderTemplate(t *template.Template, name string, data any) []byte {
	var buf bytes.Buffer
	if name == "" {
		_ = t.Execute(&buf, data)
	} else {
		_ = t.ExecuteTemplate(&buf, name, data)
	}
	return buf.Bytes()
}

const boardTemplate = `
<div id="board">
  {{if .Error}}<div class="alert">{{.Error}}</div>{{end}}
  {{if .Notice}}<div class="notice">{{.Notice}}</div>{{end}}
  {{if .Over}}<h2 class="result">{{.Outcome}}!</h2>{{else}}<div class="turn">{{.Turn}} to move</div>{{end}}
  <div class="grid">
  {{$v := .}}
  {{range $y := iter 8}}
    {{range $x := iter 8}}
      <form hx-post="/game/{{$v.ID}}/play" hx-target="#board" hx-swap="outerHTML" method="post">
        <input type="hidden" name="x" value="{{$x}}">
        <input type="hidden" name="y" value="{{$y}}">
        <button type="submit" class="{{cellClass $v $x $y}}">{{cellSymbol (index $v.Board $y $x)}}</button>
      </form>
    {{end}}
  {{end}}
  </div>
  <div class="score">{{printf "WHITE: %02d, BLACK: %02d" .White .Black}}</div>
</div>
`

// boardView is what the renderer consumes; it never mutates the game.
type boardView struct {
	ID      string
	Board   domain.Board
	Legal   domain.Moves
	Turn    domain.Cell
	Over    bool
	Outcome domain.Outcome
	White   int
	Black   int
	Notice  string
	Error   string
}

func newBoardView(gs app.GameState, errMsg string) boardView {
	v := boardView{
		ID:      gs.ID,
		Board:   gs.Game.Board,
		Turn:    gs.Game.Turn,
		Over:    gs.Game.Over,
		Outcome: gs.Game.Outcome(),
		Notice:  gs.Notice,
		Error:   errMsg,
	}
	if !v.Over {
		v.Legal = gs.Game.LegalMoves()
	}
	v.White, v.Black = gs.Game.Score()
	return v
}

// Helper to set cookie
func ensurePlayerCookie(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie("player_id"); err == nil && c.Value != "" {
		return c.Value
	}
	v := uuid.NewString()
	http.SetCookie(w, &http.Cookie{Name: "player_id", Value: v, Path: "/"})
	return v
}
