package net

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/ardifarizky/uas-pti/internal/game"
	"github.com/ardifarizky/uas-pti/internal/sched"
)

// SessionConfig carries the simulation cadences a new session starts
// with. Zero values fall back to the game package defaults.
type SessionConfig struct {
	StatTickInterval    time.Duration
	EffectSweepInterval time.Duration
	ScoreTickInterval   time.Duration
	ScoreTickPoints     int
}

// session is one player's running game world: its own store, quest
// scheduler and background tickers. Sessions never share state.
type session struct {
	id       string
	username string
	bridge   *game.Bridge
	store    *game.Store
	quests   *game.QuestScheduler
	timers   sched.Scheduler
	tickers  []*game.Ticker

	unsubscribe func()
	saved       bool
}

func newSession(id, username string, cfg SessionConfig, clock game.Clock, logger zerolog.Logger) *session {
	logger = logger.With().Str("session", id).Logger()
	timers := sched.NewReal()
	store := game.NewStore(clock, logger)
	quests := game.NewQuestScheduler(store, timers, clock, logger, nil)
	bridge := game.NewBridge(store, quests, clock, logger)

	s := &session{
		id:       id,
		username: username,
		bridge:   bridge,
		store:    store,
		quests:   quests,
		timers:   timers,
	}
	// Coffee is the starter item, enough to try the speed boost once.
	store.AddItem(game.ItemCoffee, 1)
	s.tickers = []*game.Ticker{
		game.StartStatClock(store, timers, cfg.StatTickInterval),
		game.StartScoreTicker(store, timers, cfg.ScoreTickInterval, cfg.ScoreTickPoints),
		game.StartEffectSweep(store, timers, cfg.EffectSweepInterval),
	}
	return s
}

// close stops every background cadence and detaches the session from its
// store. Idempotent.
func (s *session) close() {
	for _, t := range s.tickers {
		t.Stop()
	}
	s.quests.Close()
	s.timers.Close()
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}
