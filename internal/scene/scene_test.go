package scene

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedTables(t *testing.T) {
	reg, err := Load()
	require.NoError(t, err)
	require.Len(t, reg.Scenes(), 5)

	main, ok := reg.Scene("MainScene")
	require.True(t, ok)
	require.Equal(t, "map", main.Tilemap)
	require.InDelta(t, 528, main.Spawn.X, 1e-9)
	require.Len(t, main.Portals, 4)

	house, ok := reg.Scene("HouseScene")
	require.True(t, ok)
	require.NotNil(t, house.SleepZone)
	require.Len(t, house.LocalQuests, 3)

	beach, ok := reg.Scene("BeachScene")
	require.True(t, ok)
	require.NotNil(t, beach.ShopZone)
}

func TestPortalAt(t *testing.T) {
	reg, err := Load()
	require.NoError(t, err)
	main, _ := reg.Scene("MainScene")

	portal, ok := main.PortalAt(523, 538)
	require.True(t, ok)
	require.Equal(t, "HouseScene", portal.Target)

	// Edge of the 32x32 door zone still counts.
	portal, ok = main.PortalAt(523+16, 538-16)
	require.True(t, ok)
	require.Equal(t, "HouseScene", portal.Target)

	_, ok = main.PortalAt(523+17, 538)
	require.False(t, ok)
}

func TestLocalQuestLookup(t *testing.T) {
	reg, err := Load()
	require.NoError(t, err)

	quest, ok := reg.LocalQuest("beach_collect_shells")
	require.True(t, ok)
	require.Equal(t, "Kumpulkan Kerang", quest.Title)
	require.InDelta(t, 20, quest.StatChanges.Happiness, 1e-9)
	require.Equal(t, 80, quest.ScoreIncrease)

	_, ok = reg.LocalQuest("nope")
	require.False(t, ok)
}

func TestLoadRejectsBadTables(t *testing.T) {
	cases := map[string]string{
		"empty":           "scenes: []",
		"duplicate scene": "scenes:\n  - key: A\n  - key: A",
		"bad portal":      "scenes:\n  - key: A\n    portals:\n      - { x: 0, y: 0, width: 1, height: 1, target: Missing }",
		"duplicate quest": "scenes:\n  - key: A\n    local_quests:\n      - { key: q }\n      - { key: q }",
	}
	for name, raw := range cases {
		_, err := load([]byte(raw))
		require.Error(t, err, name)
	}
}
