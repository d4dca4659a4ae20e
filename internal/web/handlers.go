package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/jaminalder/codex-reversi/internal/app"
	"github.com/jaminalder/codex-reversi/internal/domain"
)

type handlers struct {
	svc       *app.Service
	tpl       *templates
	log       *zap.SugaredLogger
	heartbeat time.Duration
}

func (h *handlers) renderBoard(gs app.GameState, errMsg string) []byte {
	return renderTemplate(h.tpl.board, "", newBoardView(gs, errMsg))
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(renderTemplate(h.tpl.index, "base", nil))
}

func (h *handlers) create(w http.ResponseWriter, r *http.Request) {
	gs, err := h.svc.CreateGame()
	if err != nil {
		h.log.Errorw("create game", zap.Error(err))
		http.Error(w, "failed to create", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/game/"+gs.ID, http.StatusSeeOther)
}

func (h *handlers) view(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	// ensure cookie and auto-claim seat
	pid := ensurePlayerCookie(w, r)
	_, _, _ = h.svc.Join(id, pid)

	gs, ok := h.svc.Get(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(renderTemplate(h.tpl.game, "base", newBoardView(*gs, "")))
}

func (h *handlers) join(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	pid := ensurePlayerCookie(w, r)
	_, gs, err := h.svc.Join(id, pid)
	if err != nil || gs == nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(h.renderBoard(*gs, ""))
}

func (h *handlers) play(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	pid := ensurePlayerCookie(w, r)
	_ = r.ParseForm()
	x := formCoord(r, "x")
	y := formCoord(r, "y")
	gs, err := h.svc.Play(id, pid, x, y)
	var errMsg string
	if err != nil {
		if errors.Is(err, app.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		if g, ok := h.svc.Get(id); ok {
			gs = g
		}
		errMsg = playError(err)
	}
	if gs == nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(h.renderBoard(*gs, errMsg))
}

// formCoord parses a board coordinate; anything unparsable is out of range.
func formCoord(r *http.Request, key string) int {
	v, err := strconv.Atoi(r.Form.Get(key))
	if err != nil {
		return -1
	}
	return v
}

func playError(err error) string {
	switch {
	case errors.Is(err, app.ErrNotYourTurn):
		return "Not your turn"
	case errors.Is(err, app.ErrNotAPlayer):
		return "You are a spectator"
	case errors.Is(err, domain.ErrOccupied), errors.Is(err, domain.ErrIllegalMove):
		return app.NoticeCantPut
	case errors.Is(err, domain.ErrOutOfBounds):
		// clicks off the board are ignored
		return ""
	case errors.Is(err, domain.ErrGameOver):
		return "Game is over"
	default:
		return "Invalid move"
	}
}

type stateResponse struct {
	ID         string            `json:"id"`
	Board      domain.Board      `json:"board"`
	Legal      domain.Moves      `json:"legal"`
	LegalCount int               `json:"legal_count"`
	Moves      int               `json:"moves"`
	Turn       string            `json:"turn"`
	Phase      string            `json:"phase"`
	Over       bool              `json:"over"`
	Score      map[string]int    `json:"score"`
	Outcome    string            `json:"outcome,omitempty"`
	Notice     string            `json:"notice,omitempty"`
	Seats      map[string]string `json:"seats"`
}

func newStateResponse(gs app.GameState) stateResponse {
	v := newBoardView(gs, "")
	resp := stateResponse{
		ID:         gs.ID,
		Board:      v.Board,
		Legal:      v.Legal,
		LegalCount: v.Legal.Count(),
		Moves:      gs.Game.Moves,
		Turn:       gs.Game.Turn.String(),
		Phase:      gs.Game.Phase().String(),
		Over:       gs.Game.Over,
		Score:      map[string]int{"white": v.White, "black": v.Black},
		Notice:     gs.Notice,
		Seats:      map[string]string{"black": gs.Black, "white": gs.White},
	}
	if resp.Over {
		resp.Outcome = v.Outcome.String()
	}
	return resp
}

func (h *handlers) state(w http.ResponseWriter, r *http.Request) {
	gs, ok := h.svc.Get(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(newStateResponse(*gs)); err != nil {
		h.log.Errorw("encode state", "game", gs.ID, zap.Error(err))
	}
}

func (h *handlers) events(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	ctx := r.Context()
	ch, unsub, err := h.svc.Subscribe(ctx, id)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer unsub()
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()
	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = io.WriteString(w, ": ping\n\n")
			flusher.Flush()
		case gs, ok := <-ch:
			if !ok {
				return
			}
			writeEvent(w, "board", h.renderBoard(gs, ""))
			flusher.Flush()
		}
	}
}

// writeEvent writes one SSE event, prefixing every payload line with data:.
func writeEvent(w io.Writer, event string, payload []byte) {
	_, _ = fmt.Fprintf(w, "event: %s\n", event)
	for _, line := range strings.Split(string(payload), "\n") {
		_, _ = fmt.Fprintf(w, "data: %s\n", line)
	}
	_, _ = io.WriteString(w, "\n")
}
