package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateQuestFillsDefaults(t *testing.T) {
	store, clock := newTestStore(t)

	quest := store.CreateQuest(QuestSpec{})

	require.Equal(t, 1, quest.ID)
	require.Equal(t, "Untitled Quest", quest.Title)
	require.Equal(t, "Complete this quest", quest.Description)
	require.Equal(t, "house", quest.Destination)
	require.Equal(t, clock.now, quest.CreatedAt)
	require.False(t, quest.IsActive)
	require.False(t, quest.IsCompleted)
	require.Equal(t, 2, store.Snapshot().Quests.NextID)
}

func TestQuestIDsAreMonotonic(t *testing.T) {
	store, _ := newTestStore(t)

	first := store.CreateQuest(QuestSpec{Title: "A"})
	second := store.CreateQuest(QuestSpec{Title: "B"})
	store.RemoveQuest(first.ID)
	third := store.CreateQuest(QuestSpec{Title: "C"})

	require.Equal(t, 1, first.ID)
	require.Equal(t, 2, second.ID)
	require.Equal(t, 3, third.ID)
}

func TestQuestLifecycle(t *testing.T) {
	store, clock := newTestStore(t)
	quest := store.CreateQuest(QuestSpec{
		Title:         "Beach Cleanup",
		StatChanges:   Stats{Happiness: 10, Cleanliness: -5},
		ScoreIncrease: 50,
	})

	store.StartQuest(quest.ID)
	st := store.Snapshot()
	require.Empty(t, st.Quests.Available)
	require.Len(t, st.Quests.Active, 1)
	require.True(t, st.Quests.Active[0].IsActive)

	store.CompleteQuest(quest.ID)
	st = store.Snapshot()
	require.Empty(t, st.Quests.Active)
	require.Len(t, st.Quests.Completed, 1)

	done := st.Quests.Completed[0]
	require.False(t, done.IsActive)
	require.True(t, done.IsCompleted)
	require.Equal(t, clock.now, done.CompletedAt)
	require.Equal(t, 50, st.Score)
	require.InDelta(t, 100, st.Stats.Happiness, 1e-9)
	require.InDelta(t, 95, st.Stats.Cleanliness, 1e-9)
}

func TestCompleteQuestAppliesRewardsExactlyOnce(t *testing.T) {
	store, _ := newTestStore(t)
	quest := store.CreateQuest(QuestSpec{Title: "Chores", ScoreIncrease: 50})
	store.StartQuest(quest.ID)

	store.CompleteQuest(quest.ID)
	store.CompleteQuest(quest.ID)

	st := store.Snapshot()
	require.Equal(t, 50, st.Score)
	require.Len(t, st.Quests.Completed, 1)
}

func TestCompleteRequiresActive(t *testing.T) {
	store, _ := newTestStore(t)
	quest := store.CreateQuest(QuestSpec{Title: "Skipped", ScoreIncrease: 25})

	store.CompleteQuest(quest.ID)

	st := store.Snapshot()
	require.Zero(t, st.Score)
	require.Len(t, st.Quests.Available, 1)
	require.Empty(t, st.Quests.Completed)
}

func TestCancelQuestReturnsToAvailable(t *testing.T) {
	store, _ := newTestStore(t)
	quest := store.CreateQuest(QuestSpec{Title: "Hike"})
	store.StartQuest(quest.ID)

	store.CancelQuest(quest.ID)

	st := store.Snapshot()
	require.Empty(t, st.Quests.Active)
	require.Len(t, st.Quests.Available, 1)
	require.False(t, st.Quests.Available[0].IsActive)
}

func TestRemoveQuestFromAnyBucket(t *testing.T) {
	store, _ := newTestStore(t)
	a := store.CreateQuest(QuestSpec{Title: "A"})
	b := store.CreateQuest(QuestSpec{Title: "B"})
	c := store.CreateQuest(QuestSpec{Title: "C"})
	store.StartQuest(b.ID)
	store.StartQuest(c.ID)
	store.CompleteQuest(c.ID)

	store.RemoveQuest(a.ID)
	store.RemoveQuest(b.ID)
	store.RemoveQuest(c.ID)
	store.RemoveQuest(c.ID) // already gone, stays a no-op

	st := store.Snapshot()
	require.Empty(t, st.Quests.Available)
	require.Empty(t, st.Quests.Active)
	require.Empty(t, st.Quests.Completed)
}

func TestClearCompletedQuests(t *testing.T) {
	store, _ := newTestStore(t)
	quest := store.CreateQuest(QuestSpec{Title: "Done"})
	store.StartQuest(quest.ID)
	store.CompleteQuest(quest.ID)
	keep := store.CreateQuest(QuestSpec{Title: "Keep"})

	store.ClearCompletedQuests()

	st := store.Snapshot()
	require.Empty(t, st.Quests.Completed)
	require.Len(t, st.Quests.Available, 1)
	require.Equal(t, keep.ID, st.Quests.Available[0].ID)
	require.Equal(t, 3, st.Quests.NextID)
}

func TestClearAllQuestsResetsCounter(t *testing.T) {
	store, _ := newTestStore(t)
	store.CreateQuest(QuestSpec{Title: "A"})
	store.CreateQuest(QuestSpec{Title: "B"})

	store.ClearAllQuests()

	st := store.Snapshot()
	require.Equal(t, 1, st.Quests.NextID)
	require.Equal(t, 1, store.CreateQuest(QuestSpec{Title: "Fresh"}).ID)
}
