package net

import (
	"encoding/json"

	"github.com/ardifarizky/uas-pti/internal/game"
	"github.com/ardifarizky/uas-pti/internal/leaderboard"
)

// Client to server message. Type selects the command; the remaining
// fields are read per type and ignored otherwise.
type clientMessage struct {
	Type string `json:"type"`

	// Quest commands.
	QuestID  int             `json:"questId,omitempty"`
	QuestKey string          `json:"questKey,omitempty"`
	Template string          `json:"template,omitempty"`
	Spec     *game.QuestSpec `json:"spec,omitempty"`

	// Inventory commands.
	ItemID   string `json:"itemId,omitempty"`
	Quantity int    `json:"quantity,omitempty"`

	// Stat commands.
	Delta *game.Stats `json:"delta,omitempty"`

	// Movement.
	X     float64 `json:"x,omitempty"`
	Y     float64 `json:"y,omitempty"`
	Scene string  `json:"scene,omitempty"`
}

// Server to client envelopes.
type stateMessage struct {
	Type       string     `json:"type"`
	State      game.State `json:"state"`
	ServerTime int64      `json:"serverTime"`
}

type gameOverMessage struct {
	Type       string `json:"type"`
	FailedStat string `json:"failedStat"`
	FinalScore int    `json:"finalScore"`
	Day        int    `json:"day"`
}

type errorMessage struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

type joinResponse struct {
	ID    string     `json:"id"`
	State game.State `json:"state"`
}

type leaderboardResponse struct {
	Entries []leaderboard.Entry `json:"entries"`
}

func mustJSON(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		return []byte(`{"type":"error","reason":"encode failed"}`)
	}
	return data
}
