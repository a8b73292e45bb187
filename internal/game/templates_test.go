package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromTemplatePlacesQuest(t *testing.T) {
	spec, ok := FromTemplate("cooking", 400, 300)
	require.True(t, ok)
	require.Equal(t, "Cooking Session", spec.Title)
	require.Equal(t, "house", spec.Destination)
	require.InDelta(t, 400, spec.X, 1e-9)
	require.InDelta(t, 300, spec.Y, 1e-9)
	require.InDelta(t, 25, spec.StatChanges.Meal, 1e-9)
	require.Equal(t, 75, spec.ScoreIncrease)

	_, ok = FromTemplate("unknown", 0, 0)
	require.False(t, ok)
}

func TestFromTemplateAtUsesCommonLocation(t *testing.T) {
	spec, ok := FromTemplateAt("beachRelax", "beachEntrance")
	require.True(t, ok)
	require.Equal(t, "beach", spec.Destination)
	require.InDelta(t, 25, spec.X, 1e-9)
	require.InDelta(t, 980, spec.Y, 1e-9)

	_, ok = FromTemplateAt("beachRelax", "nowhere")
	require.False(t, ok)
}

func TestTemplatesCreateValidQuests(t *testing.T) {
	store, _ := newTestStore(t)

	for name := range QuestTemplates {
		spec, ok := FromTemplate(name, 100, 100)
		require.True(t, ok, name)
		quest := store.CreateQuest(spec)
		require.NotEmpty(t, quest.Title, name)
		require.NotEmpty(t, quest.Description, name)
		require.NotEmpty(t, quest.Destination, name)
	}

	require.Len(t, store.Snapshot().Quests.Available, len(QuestTemplates))
}
