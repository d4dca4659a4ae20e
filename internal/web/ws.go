package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// stream pushes the JSON state over a websocket: once on connect, then on
// every change until either side goes away.
func (h *handlers) stream(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ch, unsub, err := h.svc.Subscribe(r.Context(), id)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer unsub()
	gs, ok := h.svc.Get(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnw("websocket upgrade", "game", id, zap.Error(err))
		return
	}
	defer conn.Close()

	// The read side only detects the peer closing the socket
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := conn.WriteJSON(newStateResponse(*gs)); err != nil {
		h.log.Debugw("websocket write", "game", id, zap.Error(err))
		return
	}
	for {
		select {
		case <-r.Context().Done():
			return
		case <-closed:
			return
		case st, ok := <-ch:
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "too slow"))
				return
			}
			if err := conn.WriteJSON(newStateResponse(st)); err != nil {
				h.log.Debugw("websocket write", "game", id, zap.Error(err))
				return
			}
		}
	}
}
