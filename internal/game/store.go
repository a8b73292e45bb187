package game

import (
	"math"
	"sync"

	"github.com/rs/zerolog"
)

// Store is the single source of truth for the game state. Every mutation
// is a named method that commits a pure state transition under one mutex,
// then notifies subscribers with a snapshot copy. Reducers never perform
// I/O or scheduling; timers live with the callers that own them.
//
// Malformed input (unknown item, invalid lifecycle transition) is a
// silent no-op: the mutation is skipped and subscribers are not notified.
type Store struct {
	mu      sync.Mutex
	state   State
	clock   Clock
	logger  zerolog.Logger
	items   map[string]ItemDefinition
	subs    map[uint64]func(State)
	nextSub uint64
}

// NewStore constructs a store holding the default initial state.
func NewStore(clock Clock, logger zerolog.Logger) *Store {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Store{
		state:  newState(),
		clock:  clock,
		logger: logger,
		items:  newItemDefinitions(),
		subs:   make(map[uint64]func(State)),
	}
}

// Subscribe registers a callback invoked after every committed mutation
// with the new state. Snapshots are copies and must be treated as
// read-only. The returned function removes the subscription.
func (s *Store) Subscribe(fn func(State)) func() {
	if s == nil || fn == nil {
		return func() {}
	}
	s.mu.Lock()
	s.nextSub++
	id := s.nextSub
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// commit runs mutate under the store lock and, if it reports a change,
// notifies subscribers outside the lock with a fresh snapshot.
func (s *Store) commit(mutate func(*State) bool) {
	if s == nil {
		return
	}
	s.mu.Lock()
	changed := mutate(&s.state)
	var snapshot State
	var subs []func(State)
	if changed {
		snapshot = s.state.clone()
		subs = make([]func(State), 0, len(s.subs))
		for _, fn := range s.subs {
			subs = append(subs, fn)
		}
	}
	s.mu.Unlock()
	for _, fn := range subs {
		fn(snapshot)
	}
}

// UpdateTime replaces the game clock.
func (s *Store) UpdateTime(t GameTime) {
	s.commit(func(st *State) bool {
		if st.GameTime == t {
			return false
		}
		st.GameTime = t
		return true
	})
}

// AdvanceTime moves the game clock one minute forward, rolling minutes
// into hours and hours into days.
func (s *Store) AdvanceTime() {
	s.commit(func(st *State) bool {
		st.GameTime = st.GameTime.advanceMinute()
		return true
	})
}

// DecayStats applies the periodic drain to the four need stats.
func (s *Store) DecayStats() {
	s.commit(func(st *State) bool {
		st.Stats = st.Stats.decay()
		return true
	})
}

// ModifyStats applies a clamped delta to the stats. Need stats stay in
// [0,100]; money stays non-negative.
func (s *Store) ModifyStats(delta Stats) {
	s.commit(func(st *State) bool {
		next := st.Stats.apply(delta)
		if next == st.Stats {
			return false
		}
		st.Stats = next
		return true
	})
}

// IncreaseScore adds points to the score. The score never decreases
// except through ResetGame, so non-positive amounts are ignored.
func (s *Store) IncreaseScore(points int) {
	if points <= 0 {
		return
	}
	s.commit(func(st *State) bool {
		st.Score += points
		return true
	})
}

// SetScore overwrites the score. Negative values are ignored.
func (s *Store) SetScore(points int) {
	if points < 0 {
		return
	}
	s.commit(func(st *State) bool {
		if st.Score == points {
			return false
		}
		st.Score = points
		return true
	})
}

// Sleep ends the day: the clock jumps to the next morning, sleep
// recharges by a flat amount, and a quarter of the meal stat burns off.
// Independent of the periodic decay.
func (s *Store) Sleep() {
	s.commit(func(st *State) bool {
		st.GameTime = GameTime{Day: st.GameTime.Day + 1, Hour: wakeUpHour, Minute: 0}
		st.Stats.Sleep = clampStat(st.Stats.Sleep + sleepRecharge)
		st.Stats.Meal = clampStat(st.Stats.Meal - math.Floor(st.Stats.Meal*0.25))
		return true
	})
}

// ResetGame restores every default: day 1 08:00, full stats, zero score,
// empty quest buckets with the id counter back at 1, empty inventory.
func (s *Store) ResetGame() {
	s.commit(func(st *State) bool {
		*st = newState()
		return true
	})
}

// CreateQuest adds an Available quest built from the spec and returns it.
func (s *Store) CreateQuest(spec QuestSpec) Quest {
	var created Quest
	now := s.clock.Now()
	s.commit(func(st *State) bool {
		created = st.Quests.newQuest(spec, now)
		return true
	})
	return created
}

// StartQuest moves an Available quest to Active. Any other starting
// bucket makes this a logged no-op.
func (s *Store) StartQuest(id int) {
	s.commit(func(st *State) bool {
		available, quest, ok := take(st.Quests.Available, id)
		if !ok {
			s.logger.Debug().Int("questId", id).Msg("start ignored: quest not available")
			return false
		}
		quest.IsActive = true
		st.Quests.Available = available
		st.Quests.Active = append(st.Quests.Active, quest)
		return true
	})
}

// CancelQuest moves an Active quest back to Available.
func (s *Store) CancelQuest(id int) {
	s.commit(func(st *State) bool {
		active, quest, ok := take(st.Quests.Active, id)
		if !ok {
			s.logger.Debug().Int("questId", id).Msg("cancel ignored: quest not active")
			return false
		}
		quest.IsActive = false
		st.Quests.Active = active
		st.Quests.Available = append(st.Quests.Available, quest)
		return true
	})
}

// CompleteQuest moves an Active quest to Completed and applies its
// rewards: stat changes first, then the score increase. The whole
// transition commits atomically.
func (s *Store) CompleteQuest(id int) {
	now := s.clock.Now()
	s.commit(func(st *State) bool {
		active, quest, ok := take(st.Quests.Active, id)
		if !ok {
			s.logger.Debug().Int("questId", id).Msg("complete ignored: quest not active")
			return false
		}
		quest.IsActive = false
		quest.IsCompleted = true
		quest.CompletedAt = now
		st.Quests.Active = active
		st.Quests.Completed = append(st.Quests.Completed, quest)
		st.Stats = st.Stats.apply(quest.StatChanges)
		if quest.ScoreIncrease > 0 {
			st.Score += quest.ScoreIncrease
		}
		return true
	})
}

// RemoveQuest deletes a quest from whichever bucket holds it. Idempotent.
func (s *Store) RemoveQuest(id int) {
	s.commit(func(st *State) bool {
		changed := false
		if available, _, ok := take(st.Quests.Available, id); ok {
			st.Quests.Available = available
			changed = true
		}
		if active, _, ok := take(st.Quests.Active, id); ok {
			st.Quests.Active = active
			changed = true
		}
		if completed, _, ok := take(st.Quests.Completed, id); ok {
			st.Quests.Completed = completed
			changed = true
		}
		return changed
	})
}

// ClearCompletedQuests empties the completed bucket.
func (s *Store) ClearCompletedQuests() {
	s.commit(func(st *State) bool {
		if len(st.Quests.Completed) == 0 {
			return false
		}
		st.Quests.Completed = nil
		return true
	})
}

// ClearAllQuests empties every bucket and resets the id counter to 1.
func (s *Store) ClearAllQuests() {
	s.commit(func(st *State) bool {
		st.Quests = newQuestLog()
		return true
	})
}

// AddItem increments an item count, creating the entry if absent.
func (s *Store) AddItem(itemID string, qty int) {
	s.commit(func(st *State) bool {
		if itemID == "" || qty <= 0 {
			return false
		}
		st.Inventory.add(itemID, qty)
		return true
	})
}

// RemoveItem decrements an item count, deleting the entry at zero.
// Reports whether anything was removed.
func (s *Store) RemoveItem(itemID string, qty int) bool {
	removed := false
	s.commit(func(st *State) bool {
		removed = st.Inventory.remove(itemID, qty)
		return removed
	})
	return removed
}

// UseItem consumes one unit of an item and applies its registered
// effect: a timed buff (replacing a running instance of the same id), an
// immediate stat delta, or both. Unknown ids and empty quantities are
// silent no-ops.
func (s *Store) UseItem(itemID string) {
	now := s.clock.Now()
	s.commit(func(st *State) bool {
		if st.Inventory.Items[itemID] <= 0 {
			s.logger.Debug().Str("itemId", itemID).Msg("use ignored: item not held")
			return false
		}
		def, ok := s.items[itemID]
		if ok {
			if def.Effect != nil {
				st.Inventory.pushEffect(ActiveEffect{
					ID:       def.Effect.ID,
					Name:     def.Effect.Name,
					Duration: def.Effect.Duration.Milliseconds(),
					Start:    now.UnixMilli(),
				})
			}
			if def.StatChanges != nil {
				st.Stats = st.Stats.apply(*def.StatChanges)
			}
		}
		st.Inventory.remove(itemID, 1)
		return true
	})
}

// RemoveEffect deletes one active effect by id.
func (s *Store) RemoveEffect(effectID string) {
	s.commit(func(st *State) bool {
		return st.Inventory.dropEffect(effectID)
	})
}

// PruneEffects drops every expired effect. Called periodically so that
// expiry becomes observable within one sweep interval.
func (s *Store) PruneEffects() {
	now := s.clock.Now()
	s.commit(func(st *State) bool {
		return st.Inventory.pruneEffects(now)
	})
}

// HasActiveEffect reports whether the effect is present and still inside
// its duration window, whether or not the sweep has run.
func (s *Store) HasActiveEffect(effectID string) bool {
	if s == nil {
		return false
	}
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Inventory.hasEffect(effectID, now)
}
