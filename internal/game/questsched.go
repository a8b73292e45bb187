package game

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ardifarizky/uas-pti/internal/sched"
)

// Completion delay bounds. Every accepted completion waits a uniformly
// random whole number of seconds in [min,max].
const (
	cooldownMinSeconds = 5
	cooldownMaxSeconds = 15
)

// QuestKey derives the cooldown/daily key for a catalog quest id. Scene
// quests use their own string keys, so both kinds share one namespace.
func QuestKey(id int) string {
	return fmt.Sprintf("quest-%d", id)
}

// LocalQuest is a scene-bound quest that is not tracked by the catalog.
// Completing one applies its rewards directly.
type LocalQuest struct {
	Key           string  `json:"key" yaml:"key"`
	Title         string  `json:"title" yaml:"title"`
	Description   string  `json:"description" yaml:"description"`
	X             float64 `json:"x" yaml:"x"`
	Y             float64 `json:"y" yaml:"y"`
	StatChanges   Stats   `json:"statChanges" yaml:"stat_changes"`
	ScoreIncrease int     `json:"scoreIncrease" yaml:"score_increase"`
}

// QuestCooldown tracks one in-flight completion delay.
type QuestCooldown struct {
	Start    time.Time
	End      time.Time
	Duration time.Duration
}

type pendingCooldown struct {
	QuestCooldown
	cancel sched.CancelFunc
}

type dailyKey struct {
	key string
	day int
}

// QuestScheduler orchestrates quest completion: the once-per-day gate,
// the at-most-one-pending-cooldown rule, the randomized delay, and the
// deferred reward application. It watches the store for day rollovers and
// purges stale daily marks. Close cancels every pending completion; none
// fires afterwards.
type QuestScheduler struct {
	store     *Store
	scheduler sched.Scheduler
	clock     Clock
	logger    zerolog.Logger
	rng       *rand.Rand

	mu        sync.Mutex
	closed    bool
	day       int
	cooldowns map[string]pendingCooldown
	daily     map[dailyKey]struct{}

	unsubscribe func()
}

// NewQuestScheduler wires a scheduler to the store. rng may be nil, in
// which case a time-seeded source is used.
func NewQuestScheduler(store *Store, scheduler sched.Scheduler, clock Clock, logger zerolog.Logger, rng *rand.Rand) *QuestScheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	qs := &QuestScheduler{
		store:     store,
		scheduler: scheduler,
		clock:     clock,
		logger:    logger,
		rng:       rng,
		cooldowns: make(map[string]pendingCooldown),
		daily:     make(map[dailyKey]struct{}),
	}
	if store != nil {
		qs.day = store.Snapshot().GameTime.Day
		qs.unsubscribe = store.Subscribe(qs.observeDay)
	}
	return qs
}

// observeDay purges daily marks from other days whenever the store's day
// changes. Day is contractually monotonic; marks for the new day survive.
func (qs *QuestScheduler) observeDay(st State) {
	qs.mu.Lock()
	defer qs.mu.Unlock()
	day := st.GameTime.Day
	if day == qs.day {
		return
	}
	qs.logger.Debug().Int("from", qs.day).Int("to", day).Msg("game day changed")
	qs.day = day
	for key := range qs.daily {
		if key.day != day {
			delete(qs.daily, key)
		}
	}
}

// StartQuestCompletion begins completing an Active catalog quest. Returns
// false without touching any state when the quest is not active, was
// already completed today, or already has a completion pending.
func (qs *QuestScheduler) StartQuestCompletion(id int) bool {
	if qs == nil || qs.store == nil {
		return false
	}
	quest, ok := find(qs.store.Snapshot().Quests.Active, id)
	if !ok {
		qs.logger.Debug().Int("questId", id).Msg("completion rejected: quest not active")
		return false
	}
	return qs.begin(QuestKey(id), quest.Title, func() {
		qs.store.CompleteQuest(id)
	})
}

// StartLocalQuest begins completing a scene-local quest, which bypasses
// the catalog and applies its rewards directly when the delay fires.
func (qs *QuestScheduler) StartLocalQuest(quest LocalQuest) bool {
	if qs == nil || qs.store == nil || quest.Key == "" {
		return false
	}
	return qs.begin(quest.Key, quest.Title, func() {
		qs.store.ModifyStats(quest.StatChanges)
		if quest.ScoreIncrease > 0 {
			qs.store.IncreaseScore(quest.ScoreIncrease)
		}
	})
}

// begin runs the shared completion protocol for a quest key.
func (qs *QuestScheduler) begin(key, title string, apply func()) bool {
	now := qs.clock.Now()

	qs.mu.Lock()
	if qs.closed {
		qs.mu.Unlock()
		return false
	}
	if _, done := qs.daily[dailyKey{key: key, day: qs.day}]; done {
		qs.mu.Unlock()
		qs.logger.Debug().Str("quest", key).Msg("completion rejected: already completed today")
		return false
	}
	if _, pending := qs.cooldowns[key]; pending {
		qs.mu.Unlock()
		qs.logger.Debug().Str("quest", key).Msg("completion rejected: cooldown pending")
		return false
	}

	seconds := cooldownMinSeconds + qs.rng.Intn(cooldownMaxSeconds-cooldownMinSeconds+1)
	delay := time.Duration(seconds) * time.Second
	cooldown := QuestCooldown{Start: now, End: now.Add(delay), Duration: delay}
	cancel := qs.scheduler.After(delay, func() {
		qs.finish(key, apply)
	})
	qs.cooldowns[key] = pendingCooldown{QuestCooldown: cooldown, cancel: cancel}
	qs.mu.Unlock()

	qs.logger.Info().Str("quest", title).Int("delaySeconds", seconds).Msg("quest completion started")
	return true
}

// finish applies the deferred rewards, marks the daily completion, and
// drops the cooldown. Nothing happens if the scheduler was closed after
// the timer was armed.
func (qs *QuestScheduler) finish(key string, apply func()) {
	qs.mu.Lock()
	if qs.closed {
		qs.mu.Unlock()
		return
	}
	if _, ok := qs.cooldowns[key]; !ok {
		qs.mu.Unlock()
		return
	}
	delete(qs.cooldowns, key)
	qs.daily[dailyKey{key: key, day: qs.day}] = struct{}{}
	qs.mu.Unlock()

	apply()
}

// IsOnCooldown reports whether a completion delay is running for the key.
func (qs *QuestScheduler) IsOnCooldown(key string) bool {
	if qs == nil {
		return false
	}
	now := qs.clock.Now()
	qs.mu.Lock()
	defer qs.mu.Unlock()
	cd, ok := qs.cooldowns[key]
	return ok && now.Before(cd.End)
}

// CooldownRemaining reports the whole seconds left on a pending
// completion, rounded up. Zero when nothing is pending.
func (qs *QuestScheduler) CooldownRemaining(key string) int {
	if qs == nil {
		return 0
	}
	now := qs.clock.Now()
	qs.mu.Lock()
	defer qs.mu.Unlock()
	cd, ok := qs.cooldowns[key]
	if !ok {
		return 0
	}
	remaining := cd.End.Sub(now)
	if remaining <= 0 {
		return 0
	}
	return int(math.Ceil(remaining.Seconds()))
}

// CooldownDuration reports the total delay chosen for a pending
// completion, zero when nothing is pending.
func (qs *QuestScheduler) CooldownDuration(key string) time.Duration {
	if qs == nil {
		return 0
	}
	qs.mu.Lock()
	defer qs.mu.Unlock()
	return qs.cooldowns[key].Duration
}

// CompletedToday reports whether the key is gated for the current day.
func (qs *QuestScheduler) CompletedToday(key string) bool {
	if qs == nil {
		return false
	}
	qs.mu.Lock()
	defer qs.mu.Unlock()
	_, done := qs.daily[dailyKey{key: key, day: qs.day}]
	return done
}

// Close cancels every pending completion and detaches from the store. No
// completion callback fires after Close returns.
func (qs *QuestScheduler) Close() {
	if qs == nil {
		return
	}
	qs.mu.Lock()
	if qs.closed {
		qs.mu.Unlock()
		return
	}
	qs.closed = true
	pending := make([]sched.CancelFunc, 0, len(qs.cooldowns))
	for key, cd := range qs.cooldowns {
		pending = append(pending, cd.cancel)
		delete(qs.cooldowns, key)
	}
	unsubscribe := qs.unsubscribe
	qs.unsubscribe = nil
	qs.mu.Unlock()

	for _, cancel := range pending {
		cancel()
	}
	if unsubscribe != nil {
		unsubscribe()
	}
}
