package net

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/ardifarizky/uas-pti/internal/game"
	"github.com/ardifarizky/uas-pti/internal/leaderboard"
	"github.com/ardifarizky/uas-pti/internal/scene"
)

const (
	writeWait   = 10 * time.Second
	saveTimeout = 5 * time.Second
)

// Hub owns all live sessions and their subscriber connections. Each
// session is an independent game world; the hub routes commands into it
// and pushes state snapshots back out over the session's websocket.
type Hub struct {
	mu          sync.Mutex
	sessions    map[string]*session
	subscribers map[string]*subscriber

	cfg    SessionConfig
	clock  game.Clock
	scenes *scene.Registry
	scores leaderboard.Store
	logger zerolog.Logger
}

type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *subscriber) write(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

// NewHub creates a hub with no sessions. scores may be nil, in which
// case final results are logged but not persisted.
func NewHub(cfg SessionConfig, clock game.Clock, scenes *scene.Registry, scores leaderboard.Store, logger zerolog.Logger) *Hub {
	if clock == nil {
		clock = game.SystemClock{}
	}
	return &Hub{
		sessions:    make(map[string]*session),
		subscribers: make(map[string]*subscriber),
		cfg:         cfg,
		clock:       clock,
		scenes:      scenes,
		scores:      scores,
		logger:      logger,
	}
}

// Join creates a fresh session for the username and returns its id with
// the initial state.
func (h *Hub) Join(username string) joinResponse {
	id := uuid.NewString()
	s := newSession(id, username, h.cfg, h.clock, h.logger)

	h.mu.Lock()
	h.sessions[id] = s
	h.mu.Unlock()
	s.unsubscribe = s.bridge.Subscribe(func(st game.State) {
		h.pushState(id, st)
	})

	h.logger.Info().Str("session", id).Str("username", username).Msg("session joined")
	return joinResponse{ID: id, State: s.bridge.Snapshot()}
}

// Subscribe attaches a websocket to an existing session. State changes
// stream to the connection until it drops or the session ends. A second
// subscription replaces the first.
func (h *Hub) Subscribe(sessionID string, conn *websocket.Conn) (*subscriber, *session, bool) {
	h.mu.Lock()
	s, ok := h.sessions[sessionID]
	if !ok {
		h.mu.Unlock()
		return nil, nil, false
	}
	if existing, ok := h.subscribers[sessionID]; ok {
		existing.conn.Close()
	}
	sub := &subscriber{conn: conn}
	h.subscribers[sessionID] = sub
	h.mu.Unlock()
	return sub, s, true
}

// Disconnect tears down a session and its subscriber. The game world is
// gone afterwards; rejoining starts over.
func (h *Hub) Disconnect(sessionID string) {
	h.mu.Lock()
	s, ok := h.sessions[sessionID]
	if ok {
		delete(h.sessions, sessionID)
	}
	sub, subOK := h.subscribers[sessionID]
	if subOK {
		delete(h.subscribers, sessionID)
	}
	h.mu.Unlock()

	if ok {
		s.close()
		h.logger.Info().Str("session", sessionID).Msg("session closed")
	}
	if subOK {
		sub.conn.Close()
	}
}

// SessionCount reports the number of live sessions.
func (h *Hub) SessionCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// Close tears down every session.
func (h *Hub) Close() {
	h.mu.Lock()
	ids := make([]string, 0, len(h.sessions))
	for id := range h.sessions {
		ids = append(ids, id)
	}
	h.mu.Unlock()
	for _, id := range ids {
		h.Disconnect(id)
	}
}

// pushState streams a snapshot to the session's subscriber and runs the
// end-of-game check.
func (h *Hub) pushState(sessionID string, st game.State) {
	h.mu.Lock()
	sub := h.subscribers[sessionID]
	h.mu.Unlock()

	if sub != nil {
		msg := stateMessage{Type: "state", State: st, ServerTime: h.clock.Now().UnixMilli()}
		if err := sub.write(mustJSON(msg)); err != nil {
			h.logger.Debug().Err(err).Str("session", sessionID).Msg("state push failed")
		}
	}

	if stat, over := st.Stats.FailedStat(); over {
		h.finishGame(sessionID, stat, st)
	}
}

// finishGame records the final score once per session and notifies the
// subscriber. The session stays alive so the client can reset or leave.
func (h *Hub) finishGame(sessionID, failedStat string, st game.State) {
	h.mu.Lock()
	s, ok := h.sessions[sessionID]
	if !ok || s.saved {
		h.mu.Unlock()
		return
	}
	s.saved = true
	username := s.username
	sub := h.subscribers[sessionID]
	h.mu.Unlock()

	h.logger.Info().
		Str("session", sessionID).
		Str("failedStat", failedStat).
		Int("score", st.Score).
		Int("day", st.GameTime.Day).
		Msg("game over")

	if h.scores != nil {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		entry := leaderboard.Entry{Identity: sessionID, Username: username, Score: st.Score}
		if err := h.scores.Save(ctx, entry); err != nil {
			h.logger.Error().Err(err).Str("session", sessionID).Msg("final score not saved")
		}
	}

	if sub != nil {
		msg := gameOverMessage{
			Type:       "gameOver",
			FailedStat: failedStat,
			FinalScore: st.Score,
			Day:        st.GameTime.Day,
		}
		if err := sub.write(mustJSON(msg)); err != nil {
			h.logger.Debug().Err(err).Str("session", sessionID).Msg("game over push failed")
		}
	}
}

// Dispatch applies one client command to a session's world. The returned
// reason is empty on success and names the rejection otherwise; commands
// that are silent no-ops in the store succeed here.
func (h *Hub) Dispatch(sessionID string, msg clientMessage) string {
	h.mu.Lock()
	s, ok := h.sessions[sessionID]
	h.mu.Unlock()
	if !ok {
		return "unknown session"
	}
	bridge := s.bridge

	switch msg.Type {
	case "createQuest":
		switch {
		case msg.Template != "":
			spec, ok := game.FromTemplate(msg.Template, msg.X, msg.Y)
			if !ok {
				return "unknown template"
			}
			bridge.CreateQuest(spec)
		case msg.Spec != nil:
			bridge.CreateQuest(*msg.Spec)
		default:
			return "missing quest payload"
		}
	case "startQuest":
		bridge.StartQuest(msg.QuestID)
	case "cancelQuest":
		bridge.CancelQuest(msg.QuestID)
	case "removeQuest":
		bridge.RemoveQuest(msg.QuestID)
	case "completeQuest":
		if !bridge.StartQuestCompletion(msg.QuestID) {
			return "completion rejected"
		}
	case "startLocalQuest":
		if h.scenes == nil {
			return "no scene tables"
		}
		quest, ok := h.scenes.LocalQuest(msg.QuestKey)
		if !ok {
			return "unknown local quest"
		}
		if !bridge.StartLocalQuest(quest) {
			return "completion rejected"
		}
	case "useItem":
		bridge.UseItem(msg.ItemID)
	case "addItem":
		bridge.AddItem(msg.ItemID, msg.Quantity)
	case "removeItem":
		bridge.RemoveItem(msg.ItemID, msg.Quantity)
	case "modifyStats":
		if msg.Delta == nil {
			return "missing delta"
		}
		bridge.ModifyStats(*msg.Delta)
	case "sleep":
		bridge.Sleep()
	case "resetGame":
		h.mu.Lock()
		s.saved = false
		h.mu.Unlock()
		bridge.ResetGame()
	case "updatePosition":
		bridge.UpdatePosition(msg.X, msg.Y)
	case "updateScene":
		if h.scenes != nil {
			if _, ok := h.scenes.Scene(msg.Scene); !ok {
				return "unknown scene"
			}
		}
		bridge.UpdateScene(msg.Scene)
	default:
		return "unknown message type"
	}
	return ""
}
