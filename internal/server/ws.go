package server

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/udisondev/zzzcalc/internal/calc"
	"github.com/udisondev/zzzcalc/internal/marginal"
	"github.com/udisondev/zzzcalc/internal/model"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// wsAnswer is the reply to one build snapshot on the live socket.
type wsAnswer struct {
	Preview   calc.Preview    `json:"preview"`
	Marginals marginal.Result `json:"marginals"`
}

type wsError struct {
	Error string `json:"error"`
}

// handleWS upgrades the connection and recomputes on every incoming build
// document. One message in, one answer out; a malformed document gets an
// error frame and the session keeps going.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "remote_addr", r.RemoteAddr, "err", err)
		return
	}
	defer conn.Close()

	slog.Info("websocket session opened", "remote_addr", r.RemoteAddr)

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Warn("websocket session aborted", "remote_addr", r.RemoteAddr, "err", err)
			}
			return
		}

		b, err := model.DecodeDocument(raw)
		if err != nil {
			if werr := conn.WriteJSON(wsError{Error: err.Error()}); werr != nil {
				return
			}
			continue
		}

		answer := wsAnswer{
			Preview:   calc.ComputePreview(b),
			Marginals: analyze(b),
		}
		if err := conn.WriteJSON(answer); err != nil {
			return
		}
	}
}
