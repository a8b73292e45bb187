package game

import (
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// QuestWithDistance annotates a quest with its exact Euclidean distance
// from a probe point.
type QuestWithDistance struct {
	Quest
	Distance float64 `json:"distance"`
}

// Position is the avatar's session-scoped location. Not persisted and not
// part of the game state proper.
type Position struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Scene string `json:"scene"`
}

// Bridge is the synchronization façade between the store and its two
// consumers, the simulation loop and the UI layer. Both read and mutate
// state exclusively through it, so neither depends on the other. It also
// tracks session-scoped fields (position, scene) that gameplay state
// never sees.
//
// A Bridge with a nil store tolerates every call: commands become logged
// no-ops and queries return zero values, covering the window before the
// store is wired up.
type Bridge struct {
	store  *Store
	quests *QuestScheduler
	clock  Clock
	logger zerolog.Logger

	mu       sync.Mutex
	position Position
}

// NewBridge constructs the façade. Consumers receive it at setup time;
// there is no package-level instance.
func NewBridge(store *Store, quests *QuestScheduler, clock Clock, logger zerolog.Logger) *Bridge {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Bridge{
		store:    store,
		quests:   quests,
		clock:    clock,
		logger:   logger,
		position: Position{Scene: "MainScene"},
	}
}

func (b *Bridge) ready(op string) bool {
	if b == nil {
		return false
	}
	if b.store == nil {
		b.logger.Warn().Str("op", op).Msg("command ignored: store not wired")
		return false
	}
	return true
}

// Snapshot returns a copy of the full game state.
func (b *Bridge) Snapshot() State {
	if b == nil || b.store == nil {
		return State{}
	}
	return b.store.Snapshot()
}

// Subscribe registers a state-change callback; the returned function
// removes it.
func (b *Bridge) Subscribe(fn func(State)) func() {
	if b == nil || b.store == nil {
		return func() {}
	}
	return b.store.Subscribe(fn)
}

// Stats returns the current stats.
func (b *Bridge) Stats() Stats { return b.Snapshot().Stats }

// GameTime returns the current game clock.
func (b *Bridge) GameTime() GameTime { return b.Snapshot().GameTime }

// Score returns the current score.
func (b *Bridge) Score() int { return b.Snapshot().Score }

// AvailableQuests returns the Available bucket.
func (b *Bridge) AvailableQuests() []Quest { return b.Snapshot().Quests.Available }

// ActiveQuests returns the Active bucket.
func (b *Bridge) ActiveQuests() []Quest { return b.Snapshot().Quests.Active }

// CompletedQuests returns the Completed bucket.
func (b *Bridge) CompletedQuests() []Quest { return b.Snapshot().Quests.Completed }

// Inventory returns the item counts and running effects.
func (b *Bridge) Inventory() Inventory { return b.Snapshot().Inventory }

// ActiveEffects returns the currently recorded effects. Expired entries
// may linger until the next sweep; HasSpeedBoost is exact.
func (b *Bridge) ActiveEffects() []ActiveEffect { return b.Snapshot().Inventory.ActiveEffects }

// Scene returns the scene the avatar currently occupies.
func (b *Bridge) Scene() string { return b.Position().Scene }

// Position returns the session position and scene.
func (b *Bridge) Position() Position {
	if b == nil {
		return Position{}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.position
}

// UpdatePosition records the avatar's location, rounded to integers. Pure
// session metadata; gameplay stats are untouched.
func (b *Bridge) UpdatePosition(x, y float64) {
	if b == nil {
		return
	}
	b.mu.Lock()
	b.position.X = int(math.Round(x))
	b.position.Y = int(math.Round(y))
	b.mu.Unlock()
}

// UpdateScene records the scene the avatar currently occupies.
func (b *Bridge) UpdateScene(name string) {
	if b == nil || name == "" {
		return
	}
	b.mu.Lock()
	b.position.Scene = name
	b.mu.Unlock()
}

// ModifyStats applies a clamped stat delta.
func (b *Bridge) ModifyStats(delta Stats) {
	if b.ready("modifyStats") {
		b.store.ModifyStats(delta)
	}
}

// IncreaseScore adds points to the score.
func (b *Bridge) IncreaseScore(points int) {
	if b.ready("increaseScore") {
		b.store.IncreaseScore(points)
	}
}

// SetScore overwrites the score.
func (b *Bridge) SetScore(points int) {
	if b.ready("setScore") {
		b.store.SetScore(points)
	}
}

// Sleep ends the current day and applies the overnight recharge.
func (b *Bridge) Sleep() {
	if b.ready("sleep") {
		b.store.Sleep()
	}
}

// ResetGame restores the initial state.
func (b *Bridge) ResetGame() {
	if b.ready("resetGame") {
		b.store.ResetGame()
	}
}

// CreateQuest adds an Available quest from a spec.
func (b *Bridge) CreateQuest(spec QuestSpec) Quest {
	if !b.ready("createQuest") {
		return Quest{}
	}
	return b.store.CreateQuest(spec)
}

// StartQuest moves an Available quest to Active.
func (b *Bridge) StartQuest(id int) {
	if b.ready("startQuest") {
		b.store.StartQuest(id)
	}
}

// CancelQuest moves an Active quest back to Available.
func (b *Bridge) CancelQuest(id int) {
	if b.ready("cancelQuest") {
		b.store.CancelQuest(id)
	}
}

// RemoveQuest deletes a quest from any bucket.
func (b *Bridge) RemoveQuest(id int) {
	if b.ready("removeQuest") {
		b.store.RemoveQuest(id)
	}
}

// AddItem adds quantity of an item to the inventory.
func (b *Bridge) AddItem(itemID string, qty int) {
	if b.ready("addItem") {
		b.store.AddItem(itemID, qty)
	}
}

// RemoveItem removes quantity of an item, reporting whether it happened.
func (b *Bridge) RemoveItem(itemID string, qty int) bool {
	if !b.ready("removeItem") {
		return false
	}
	return b.store.RemoveItem(itemID, qty)
}

// UseItem consumes one unit of an item and applies its registered effect.
func (b *Bridge) UseItem(itemID string) {
	if b.ready("useItem") {
		b.store.UseItem(itemID)
	}
}

// RemoveEffect deletes one active effect by id.
func (b *Bridge) RemoveEffect(effectID string) {
	if b.ready("removeEffect") {
		b.store.RemoveEffect(effectID)
	}
}

// StartQuestCompletion runs the completion protocol for an Active catalog
// quest. False means rejected: daily gate, pending cooldown, or not
// active.
func (b *Bridge) StartQuestCompletion(id int) bool {
	if b == nil || b.quests == nil {
		return false
	}
	return b.quests.StartQuestCompletion(id)
}

// StartLocalQuest runs the completion protocol for a scene-local quest.
func (b *Bridge) StartLocalQuest(quest LocalQuest) bool {
	if b == nil || b.quests == nil {
		return false
	}
	return b.quests.StartLocalQuest(quest)
}

// IsQuestOnCooldown reports whether a completion delay is pending for a
// catalog quest.
func (b *Bridge) IsQuestOnCooldown(id int) bool {
	if b == nil || b.quests == nil {
		return false
	}
	return b.quests.IsOnCooldown(QuestKey(id))
}

// QuestCooldownRemaining reports the seconds left on a catalog quest's
// pending completion, rounded up.
func (b *Bridge) QuestCooldownRemaining(id int) int {
	if b == nil || b.quests == nil {
		return 0
	}
	return b.quests.CooldownRemaining(QuestKey(id))
}

// QuestCooldownDuration reports the total delay chosen for a catalog
// quest's pending completion.
func (b *Bridge) QuestCooldownDuration(id int) time.Duration {
	if b == nil || b.quests == nil {
		return 0
	}
	return b.quests.CooldownDuration(QuestKey(id))
}

// IsQuestCompletedToday reports the once-per-day gate for a catalog quest.
func (b *Bridge) IsQuestCompletedToday(id int) bool {
	if b == nil || b.quests == nil {
		return false
	}
	return b.quests.CompletedToday(QuestKey(id))
}

// HasSpeedBoost reports whether the speed-boost effect is live right now.
// Polled by the simulation loop every frame.
func (b *Bridge) HasSpeedBoost() bool {
	if b == nil || b.store == nil {
		return false
	}
	return b.store.HasActiveEffect(EffectSpeedBoost)
}

// QuestsNear returns the active quests within radius of (x, y), each
// annotated with its exact distance. Order is unspecified.
func (b *Bridge) QuestsNear(x, y, radius float64) []QuestWithDistance {
	if b == nil || b.store == nil {
		return nil
	}
	var nearby []QuestWithDistance
	for _, quest := range b.store.Snapshot().Quests.Active {
		distance := math.Hypot(x-quest.X, y-quest.Y)
		if distance <= radius {
			nearby = append(nearby, QuestWithDistance{Quest: quest, Distance: distance})
		}
	}
	return nearby
}

// GameOver reports whether a need stat has bottomed out and which one.
func (b *Bridge) GameOver() (string, bool) {
	if b == nil || b.store == nil {
		return "", false
	}
	return b.store.Snapshot().Stats.FailedStat()
}
