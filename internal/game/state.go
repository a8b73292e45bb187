package game

import "time"

// Clock supplies the current time to components that stamp or expire
// state. Tests substitute a deterministic implementation.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time { return time.Now() }

// State is the complete game state owned by the Store. Snapshots handed to
// subscribers and callers are deep copies; mutating one never touches the
// authoritative state.
type State struct {
	GameTime  GameTime  `json:"gameTime"`
	Stats     Stats     `json:"stats"`
	Score     int       `json:"score"`
	Quests    QuestLog  `json:"quests"`
	Inventory Inventory `json:"inventory"`
}

func newState() State {
	return State{
		GameTime:  DefaultGameTime(),
		Stats:     DefaultStats(),
		Quests:    newQuestLog(),
		Inventory: newInventory(),
	}
}

func (s State) clone() State {
	out := s
	out.Quests = s.Quests.clone()
	out.Inventory = s.Inventory.clone()
	return out
}
