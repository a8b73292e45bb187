package game

import (
	"time"

	"github.com/ardifarizky/uas-pti/internal/sched"
)

// Default cadences for the background tickers. One stat tick advances the
// game clock a single in-game minute.
const (
	DefaultStatTickInterval    = 100 * time.Millisecond
	DefaultEffectSweepInterval = 250 * time.Millisecond
	DefaultScoreTickInterval   = 10 * time.Second
	DefaultScoreTickPoints     = 10
)

// Ticker is a handle to a background cadence started on a scheduler.
type Ticker struct {
	cancel sched.CancelFunc
}

// Stop halts the cadence. Safe to call more than once.
func (t *Ticker) Stop() {
	if t == nil || t.cancel == nil {
		return
	}
	t.cancel()
}

// StartStatClock begins the fixed tick that advances game time by one
// minute and then drains the need stats. Both changes flow through the
// store's clamped mutations, additive with quest and item effects.
func StartStatClock(store *Store, scheduler sched.Scheduler, interval time.Duration) *Ticker {
	if store == nil || scheduler == nil {
		return &Ticker{}
	}
	if interval <= 0 {
		interval = DefaultStatTickInterval
	}
	cancel := scheduler.Every(interval, func() {
		store.AdvanceTime()
		store.DecayStats()
	})
	return &Ticker{cancel: cancel}
}

// StartScoreTicker begins the wall-clock score drip. It accrues
// unconditionally while the session lives, cooldown windows included.
func StartScoreTicker(store *Store, scheduler sched.Scheduler, interval time.Duration, points int) *Ticker {
	if store == nil || scheduler == nil {
		return &Ticker{}
	}
	if interval <= 0 {
		interval = DefaultScoreTickInterval
	}
	if points <= 0 {
		points = DefaultScoreTickPoints
	}
	cancel := scheduler.Every(interval, func() {
		store.IncreaseScore(points)
	})
	return &Ticker{cancel: cancel}
}

// StartEffectSweep begins the expiry sweep that removes finished effects,
// making expiration observable within one sweep interval.
func StartEffectSweep(store *Store, scheduler sched.Scheduler, interval time.Duration) *Ticker {
	if store == nil || scheduler == nil {
		return &Ticker{}
	}
	if interval <= 0 {
		interval = DefaultEffectSweepInterval
	}
	cancel := scheduler.Every(interval, func() {
		store.PruneEffects()
	})
	return &Ticker{cancel: cancel}
}
