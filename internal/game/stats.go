package game

import "math"

// Stat bounds and starting values. The need stats live on a 0–100 scale;
// money is only bounded below.
const (
	statMin = 0.0
	statMax = 100.0

	defaultMeal        = 100.0
	defaultSleep       = 100.0
	defaultHappiness   = 100.0
	defaultCleanliness = 100.0
	defaultMoney       = 1000.0
)

// Per-tick decay applied by the stat clock. Meal, sleep and cleanliness
// drain faster than happiness.
const (
	decayMeal        = 0.1
	decaySleep       = 0.1
	decayHappiness   = 0.05
	decayCleanliness = 0.1
)

// Sleeping recharges sleep by a flat amount and burns a quarter of the
// current meal stat, then starts the next day at this hour.
const (
	sleepRecharge = 30.0
	wakeUpHour    = 8
)

// Stats holds the avatar's depleting needs plus money. The same struct
// doubles as a delta payload for ModifyStats and quest rewards, where a
// zero field means "no change".
type Stats struct {
	Meal        float64 `json:"meal" yaml:"meal"`
	Sleep       float64 `json:"sleep" yaml:"sleep"`
	Happiness   float64 `json:"happiness" yaml:"happiness"`
	Cleanliness float64 `json:"cleanliness" yaml:"cleanliness"`
	Money       float64 `json:"money" yaml:"money"`
}

// DefaultStats returns the stats a fresh game starts with.
func DefaultStats() Stats {
	return Stats{
		Meal:        defaultMeal,
		Sleep:       defaultSleep,
		Happiness:   defaultHappiness,
		Cleanliness: defaultCleanliness,
		Money:       defaultMoney,
	}
}

// apply adds the delta to every field and clamps the result. The bounded
// fields land in [0,100]; money never drops below zero.
func (s Stats) apply(delta Stats) Stats {
	return Stats{
		Meal:        clampStat(s.Meal + delta.Meal),
		Sleep:       clampStat(s.Sleep + delta.Sleep),
		Happiness:   clampStat(s.Happiness + delta.Happiness),
		Cleanliness: clampStat(s.Cleanliness + delta.Cleanliness),
		Money:       math.Max(0, s.Money+delta.Money),
	}
}

// decay applies the periodic drain to the four need stats.
func (s Stats) decay() Stats {
	return s.apply(Stats{
		Meal:        -decayMeal,
		Sleep:       -decaySleep,
		Happiness:   -decayHappiness,
		Cleanliness: -decayCleanliness,
	})
}

// FailedStat reports the first need stat that reached zero, if any. Money
// running out does not end the game.
func (s Stats) FailedStat() (string, bool) {
	switch {
	case s.Meal <= 0:
		return "meal", true
	case s.Sleep <= 0:
		return "sleep", true
	case s.Happiness <= 0:
		return "happiness", true
	case s.Cleanliness <= 0:
		return "cleanliness", true
	}
	return "", false
}

func clampStat(v float64) float64 {
	if v < statMin {
		return statMin
	}
	if v > statMax {
		return statMax
	}
	return v
}

// GameTime tracks in-game days on a 24h clock. Day starts at 1.
type GameTime struct {
	Day    int `json:"day" yaml:"day"`
	Hour   int `json:"hour" yaml:"hour"`
	Minute int `json:"minute" yaml:"minute"`
}

// DefaultGameTime returns day 1, 08:00.
func DefaultGameTime() GameTime {
	return GameTime{Day: 1, Hour: wakeUpHour, Minute: 0}
}

// advanceMinute moves the clock one minute forward, rolling minutes into
// hours and hours into days.
func (t GameTime) advanceMinute() GameTime {
	t.Minute++
	if t.Minute >= 60 {
		t.Minute = 0
		t.Hour++
	}
	if t.Hour >= 24 {
		t.Hour = 0
		t.Day++
	}
	return t
}
