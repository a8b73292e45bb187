package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAddAndRemoveItems(t *testing.T) {
	store, _ := newTestStore(t)

	store.AddItem(ItemSoda, 3)
	store.AddItem(ItemSoda, 2)
	require.Equal(t, 5, store.Snapshot().Inventory.Items[ItemSoda])

	require.True(t, store.RemoveItem(ItemSoda, 4))
	require.Equal(t, 1, store.Snapshot().Inventory.Items[ItemSoda])

	// Removing at or past zero deletes the entry outright.
	require.True(t, store.RemoveItem(ItemSoda, 5))
	_, held := store.Snapshot().Inventory.Items[ItemSoda]
	require.False(t, held)

	require.False(t, store.RemoveItem(ItemSoda, 1))
}

func TestUseCoffeeGrantsSpeedBoost(t *testing.T) {
	store, clock := newTestStore(t)
	store.AddItem(ItemCoffee, 1)

	store.UseItem(ItemCoffee)

	st := store.Snapshot()
	_, held := st.Inventory.Items[ItemCoffee]
	require.False(t, held)
	require.Len(t, st.Inventory.ActiveEffects, 1)

	effect := st.Inventory.ActiveEffects[0]
	require.Equal(t, EffectSpeedBoost, effect.ID)
	require.Equal(t, int64(10000), effect.Duration)
	require.Equal(t, clock.now.UnixMilli(), effect.Start)
	require.True(t, store.HasActiveEffect(EffectSpeedBoost))
}

func TestSpeedBoostExpiresAfterDuration(t *testing.T) {
	store, clock := newTestStore(t)
	store.AddItem(ItemCoffee, 1)
	store.UseItem(ItemCoffee)

	clock.now = clock.now.Add(9999 * time.Millisecond)
	require.True(t, store.HasActiveEffect(EffectSpeedBoost))

	clock.now = clock.now.Add(time.Millisecond)
	require.False(t, store.HasActiveEffect(EffectSpeedBoost))

	// Sweep removes the expired record.
	store.PruneEffects()
	require.Empty(t, store.Snapshot().Inventory.ActiveEffects)
}

func TestRepeatUseReplacesEffectInsteadOfStacking(t *testing.T) {
	store, clock := newTestStore(t)
	store.AddItem(ItemCoffee, 2)

	store.UseItem(ItemCoffee)
	firstStart := store.Snapshot().Inventory.ActiveEffects[0].Start

	clock.now = clock.now.Add(4 * time.Second)
	store.UseItem(ItemCoffee)

	effects := store.Snapshot().Inventory.ActiveEffects
	require.Len(t, effects, 1)
	require.Equal(t, firstStart+4000, effects[0].Start)
}

func TestUseItemWithoutStockIsNoOp(t *testing.T) {
	store, _ := newTestStore(t)

	store.UseItem(ItemCoffee)

	st := store.Snapshot()
	require.Empty(t, st.Inventory.ActiveEffects)
	require.Equal(t, DefaultStats(), st.Stats)
}

func TestUseFoodAppliesStatChanges(t *testing.T) {
	store, _ := newTestStore(t)
	store.ModifyStats(Stats{Meal: -50, Happiness: -20})
	store.AddItem(ItemSandwich, 1)
	store.AddItem(ItemSoda, 1)

	store.UseItem(ItemSandwich)
	st := store.Snapshot()
	require.InDelta(t, 75, st.Stats.Meal, 1e-9)
	require.Empty(t, st.Inventory.ActiveEffects)

	store.UseItem(ItemSoda)
	st = store.Snapshot()
	require.InDelta(t, 85, st.Stats.Meal, 1e-9)
	require.InDelta(t, 85, st.Stats.Happiness, 1e-9)
}

func TestRemoveEffect(t *testing.T) {
	store, _ := newTestStore(t)
	store.AddItem(ItemCoffee, 1)
	store.UseItem(ItemCoffee)

	store.RemoveEffect(EffectSpeedBoost)

	require.False(t, store.HasActiveEffect(EffectSpeedBoost))
	require.Empty(t, store.Snapshot().Inventory.ActiveEffects)
}
