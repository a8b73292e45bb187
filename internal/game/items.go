package game

import "time"

// Item ids form a closed set resolved at startup. Using an item whose id
// is not registered is a silent no-op.
const (
	ItemCoffee   = "coffee"
	ItemSandwich = "sandwich"
	ItemSoda     = "soda"
)

// EffectTemplate describes the timed buff a consumable grants.
type EffectTemplate struct {
	ID       string
	Name     string
	Duration time.Duration
}

// ItemDefinition maps a consumable to what using it does: either a timed
// effect, an immediate stat delta, or both.
type ItemDefinition struct {
	ID          string
	Name        string
	Effect      *EffectTemplate
	StatChanges *Stats
}

// newItemDefinitions builds the consumable registry. Adding an item means
// adding an entry here; there is no dynamic dispatch on raw id strings.
func newItemDefinitions() map[string]ItemDefinition {
	return map[string]ItemDefinition{
		ItemCoffee: {
			ID:   ItemCoffee,
			Name: "Coffee",
			Effect: &EffectTemplate{
				ID:       EffectSpeedBoost,
				Name:     "Speed Boost",
				Duration: 10 * time.Second,
			},
		},
		ItemSandwich: {
			ID:          ItemSandwich,
			Name:        "Sandwich",
			StatChanges: &Stats{Meal: 25},
		},
		ItemSoda: {
			ID:          ItemSoda,
			Name:        "Soda",
			StatChanges: &Stats{Meal: 10, Happiness: 5},
		},
	}
}
