package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/ardifarizky/uas-pti/internal/sched"
)

func newTestBridge(t *testing.T) (*Bridge, *Store, *sched.Manual) {
	t.Helper()
	manual := sched.NewManual(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	store := NewStore(manual, zerolog.Nop())
	qs := NewQuestScheduler(store, manual, manual, zerolog.Nop(), rand.New(rand.NewSource(1)))
	t.Cleanup(qs.Close)
	return NewBridge(store, qs, manual, zerolog.Nop()), store, manual
}

func TestBridgeQueriesMirrorStore(t *testing.T) {
	bridge, store, _ := newTestBridge(t)
	quest := store.CreateQuest(QuestSpec{Title: "Walk"})
	store.IncreaseScore(40)

	require.Equal(t, 40, bridge.Score())
	require.Equal(t, GameTime{Day: 1, Hour: 8, Minute: 0}, bridge.GameTime())
	require.Len(t, bridge.AvailableQuests(), 1)
	require.Equal(t, quest.ID, bridge.AvailableQuests()[0].ID)
	require.Empty(t, bridge.ActiveQuests())
}

func TestBridgeCommandsReachStore(t *testing.T) {
	bridge, store, _ := newTestBridge(t)

	quest := bridge.CreateQuest(QuestSpec{Title: "Shop", ScoreIncrease: 20})
	bridge.StartQuest(quest.ID)
	bridge.ModifyStats(Stats{Happiness: -30})
	bridge.AddItem(ItemCoffee, 1)
	bridge.UseItem(ItemCoffee)

	st := store.Snapshot()
	require.Len(t, st.Quests.Active, 1)
	require.InDelta(t, 70, st.Stats.Happiness, 1e-9)
	require.True(t, bridge.HasSpeedBoost())
}

func TestUpdatePositionRoundsToIntegers(t *testing.T) {
	bridge, _, _ := newTestBridge(t)

	bridge.UpdatePosition(12.7, 99.2)
	pos := bridge.Position()
	require.Equal(t, 13, pos.X)
	require.Equal(t, 99, pos.Y)

	bridge.UpdateScene("BeachScene")
	require.Equal(t, "BeachScene", bridge.Position().Scene)

	// Empty scene names are ignored.
	bridge.UpdateScene("")
	require.Equal(t, "BeachScene", bridge.Position().Scene)
}

func TestQuestsNearAnnotatesExactDistances(t *testing.T) {
	bridge, store, _ := newTestBridge(t)
	near := store.CreateQuest(QuestSpec{Title: "Near", X: 3, Y: 4})
	far := store.CreateQuest(QuestSpec{Title: "Far", X: 500, Y: 500})
	idle := store.CreateQuest(QuestSpec{Title: "Idle", X: 1, Y: 1})
	store.StartQuest(near.ID)
	store.StartQuest(far.ID)
	_ = idle // stays Available, never reported

	found := bridge.QuestsNear(0, 0, 10)
	require.Len(t, found, 1)
	require.Equal(t, near.ID, found[0].ID)
	require.InDelta(t, 5, found[0].Distance, 1e-9)

	require.Empty(t, bridge.QuestsNear(0, 0, 1))
}

func TestBridgeCooldownQueries(t *testing.T) {
	bridge, store, manual := newTestBridge(t)
	quest := store.CreateQuest(QuestSpec{Title: "Chores", ScoreIncrease: 10})
	bridge.StartQuest(quest.ID)

	require.False(t, bridge.IsQuestOnCooldown(quest.ID))
	require.True(t, bridge.StartQuestCompletion(quest.ID))
	require.True(t, bridge.IsQuestOnCooldown(quest.ID))

	duration := bridge.QuestCooldownDuration(quest.ID)
	require.Equal(t, int(duration/time.Second), bridge.QuestCooldownRemaining(quest.ID))

	manual.Advance(duration)
	require.False(t, bridge.IsQuestOnCooldown(quest.ID))
	require.True(t, bridge.IsQuestCompletedToday(quest.ID))
	require.Equal(t, 10, bridge.Score())
}

func TestGameOverReportsFailedStat(t *testing.T) {
	bridge, _, _ := newTestBridge(t)

	stat, over := bridge.GameOver()
	require.False(t, over)
	require.Empty(t, stat)

	bridge.ModifyStats(Stats{Happiness: -100})
	stat, over = bridge.GameOver()
	require.True(t, over)
	require.Equal(t, "happiness", stat)
}

func TestBridgeToleratesMissingStore(t *testing.T) {
	bridge := NewBridge(nil, nil, nil, zerolog.Nop())

	bridge.ModifyStats(Stats{Meal: 10})
	bridge.UseItem(ItemCoffee)
	require.False(t, bridge.StartQuestCompletion(1))
	require.False(t, bridge.RemoveItem(ItemCoffee, 1))
	require.Zero(t, bridge.Score())
	require.Empty(t, bridge.QuestsNear(0, 0, 100))

	_, over := bridge.GameOver()
	require.False(t, over)
}
