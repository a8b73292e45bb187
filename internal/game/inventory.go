package game

import "time"

// EffectSpeedBoost is the temporary movement multiplier granted by coffee.
// The simulation loop polls for it through Bridge.HasSpeedBoost.
const EffectSpeedBoost = "speed_boost"

// ActiveEffect is a temporary buff with an explicit start and duration.
// Durations travel as milliseconds, matching the client's clock math.
type ActiveEffect struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Duration int64  `json:"duration"`
	Start    int64  `json:"startTime"`
}

// activeAt reports whether the effect is still running at now.
func (e ActiveEffect) activeAt(now time.Time) bool {
	return now.UnixMilli()-e.Start < e.Duration
}

// Inventory owns item counts and the currently running effects. An item
// with quantity zero has no entry at all.
type Inventory struct {
	Items         map[string]int `json:"items"`
	ActiveEffects []ActiveEffect `json:"activeEffects"`
}

func newInventory() Inventory {
	return Inventory{Items: make(map[string]int)}
}

func (inv Inventory) clone() Inventory {
	out := Inventory{Items: make(map[string]int, len(inv.Items))}
	for id, qty := range inv.Items {
		out.Items[id] = qty
	}
	out.ActiveEffects = append([]ActiveEffect(nil), inv.ActiveEffects...)
	return out
}

// add increments an item count, creating the entry if absent.
func (inv *Inventory) add(itemID string, qty int) {
	if qty <= 0 {
		return
	}
	inv.Items[itemID] += qty
}

// remove decrements an item count, deleting the entry when it reaches
// zero. Reports whether anything was removed.
func (inv *Inventory) remove(itemID string, qty int) bool {
	if qty <= 0 {
		return false
	}
	current, ok := inv.Items[itemID]
	if !ok {
		return false
	}
	if current <= qty {
		delete(inv.Items, itemID)
	} else {
		inv.Items[itemID] = current - qty
	}
	return true
}

// pushEffect adds a timed effect, replacing any running instance with the
// same id. Re-use restarts the clock rather than stacking.
func (inv *Inventory) pushEffect(effect ActiveEffect) {
	inv.dropEffect(effect.ID)
	inv.ActiveEffects = append(inv.ActiveEffects, effect)
}

func (inv *Inventory) dropEffect(effectID string) bool {
	for i, e := range inv.ActiveEffects {
		if e.ID == effectID {
			inv.ActiveEffects = append(inv.ActiveEffects[:i], inv.ActiveEffects[i+1:]...)
			return true
		}
	}
	return false
}

// pruneEffects removes every effect that has run out by now. Reports
// whether anything expired.
func (inv *Inventory) pruneEffects(now time.Time) bool {
	kept := inv.ActiveEffects[:0]
	changed := false
	for _, e := range inv.ActiveEffects {
		if e.activeAt(now) {
			kept = append(kept, e)
		} else {
			changed = true
		}
	}
	inv.ActiveEffects = kept
	return changed
}

// hasEffect reports whether an effect with the given id is running at now.
func (inv Inventory) hasEffect(effectID string, now time.Time) bool {
	for _, e := range inv.ActiveEffects {
		if e.ID == effectID && e.activeAt(now) {
			return true
		}
	}
	return false
}
