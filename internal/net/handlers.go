package net

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Routes builds the HTTP surface around the hub. clientDir, when
// non-empty, is served at the site root.
func (h *Hub) Routes(clientDir string) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("/join", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		join := h.Join(r.URL.Query().Get("username"))
		w.Header().Set("Content-Type", "application/json")
		w.Write(mustJSON(join))
	})

	mux.HandleFunc("/leaderboard", func(w http.ResponseWriter, r *http.Request) {
		if h.scores == nil {
			http.Error(w, "leaderboard disabled", http.StatusNotFound)
			return
		}
		top, err := h.scores.Top(r.Context(), 10)
		if err != nil {
			h.logger.Error().Err(err).Msg("leaderboard query failed")
			http.Error(w, "leaderboard unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(mustJSON(leaderboardResponse{Entries: top}))
	})

	mux.HandleFunc("/scenes", func(w http.ResponseWriter, r *http.Request) {
		if h.scenes == nil {
			http.Error(w, "no scene tables", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(mustJSON(h.scenes.Scenes()))
	})

	mux.HandleFunc("/ws", h.handleWS)

	if clientDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(clientDir)))
	}
	return mux
}

func (h *Hub) handleWS(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("id")
	if sessionID == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug().Err(err).Str("session", sessionID).Msg("upgrade failed")
		return
	}

	sub, s, ok := h.Subscribe(sessionID, conn)
	if !ok {
		message := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "unknown session")
		conn.WriteMessage(websocket.CloseMessage, message)
		conn.Close()
		return
	}

	initial := stateMessage{Type: "state", State: s.bridge.Snapshot(), ServerTime: h.clock.Now().UnixMilli()}
	if err := sub.write(mustJSON(initial)); err != nil {
		h.Disconnect(sessionID)
		return
	}

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			h.Disconnect(sessionID)
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			h.logger.Debug().Err(err).Str("session", sessionID).Msg("discarding malformed message")
			continue
		}

		if reason := h.Dispatch(sessionID, msg); reason != "" {
			if err := sub.write(mustJSON(errorMessage{Type: "error", Reason: reason})); err != nil {
				h.Disconnect(sessionID)
				return
			}
		}
	}
}
