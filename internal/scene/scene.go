// Package scene holds the static world tables: the scenes the avatar can
// occupy, how they connect, and the local quests each one offers. The
// tables are data, embedded as YAML, so rebalancing a quest or moving a
// portal never touches Go code.
package scene

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ardifarizky/uas-pti/internal/game"
)

//go:embed scenes.yaml
var rawScenes []byte

// Point is a map coordinate.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Zone is an axis-aligned interaction region centred on X, Y.
type Zone struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Contains reports whether the point lies inside the zone.
func (z Zone) Contains(x, y float64) bool {
	halfW, halfH := z.Width/2, z.Height/2
	return x >= z.X-halfW && x <= z.X+halfW && y >= z.Y-halfH && y <= z.Y+halfH
}

// Portal is a zone that moves the avatar to another scene.
type Portal struct {
	Zone   `yaml:",inline"`
	Target string `json:"target" yaml:"target"`
}

// Scene is one named map with its spawn point, outgoing portals and the
// quests that live only there.
type Scene struct {
	Key         string            `json:"key" yaml:"key"`
	Tilemap     string            `json:"tilemap" yaml:"tilemap"`
	Spawn       Point             `json:"spawn" yaml:"spawn"`
	Portals     []Portal          `json:"portals" yaml:"portals"`
	SleepZone   *Zone             `json:"sleepZone,omitempty" yaml:"sleep_zone"`
	ShopZone    *Zone             `json:"shopZone,omitempty" yaml:"shop_zone"`
	LocalQuests []game.LocalQuest `json:"localQuests,omitempty" yaml:"local_quests"`
}

// PortalAt returns the first portal containing the point, if any.
func (s *Scene) PortalAt(x, y float64) (Portal, bool) {
	for _, p := range s.Portals {
		if p.Contains(x, y) {
			return p, true
		}
	}
	return Portal{}, false
}

// Registry resolves scene keys and quest keys against the loaded tables.
// Immutable after Load.
type Registry struct {
	order  []string
	scenes map[string]*Scene
	quests map[string]game.LocalQuest
}

type sceneFile struct {
	Scenes []*Scene `yaml:"scenes"`
}

// Load parses and validates the embedded scene tables.
func Load() (*Registry, error) {
	return load(rawScenes)
}

func load(raw []byte) (*Registry, error) {
	var file sceneFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse scene tables: %w", err)
	}
	if len(file.Scenes) == 0 {
		return nil, fmt.Errorf("scene tables are empty")
	}

	reg := &Registry{
		scenes: make(map[string]*Scene, len(file.Scenes)),
		quests: make(map[string]game.LocalQuest),
	}
	for _, sc := range file.Scenes {
		if sc.Key == "" {
			return nil, fmt.Errorf("scene with empty key")
		}
		if _, dup := reg.scenes[sc.Key]; dup {
			return nil, fmt.Errorf("duplicate scene key %q", sc.Key)
		}
		reg.scenes[sc.Key] = sc
		reg.order = append(reg.order, sc.Key)
		for _, q := range sc.LocalQuests {
			if q.Key == "" {
				return nil, fmt.Errorf("scene %q: local quest with empty key", sc.Key)
			}
			if _, dup := reg.quests[q.Key]; dup {
				return nil, fmt.Errorf("duplicate local quest key %q", q.Key)
			}
			reg.quests[q.Key] = q
		}
	}
	for _, sc := range file.Scenes {
		for _, p := range sc.Portals {
			if _, ok := reg.scenes[p.Target]; !ok {
				return nil, fmt.Errorf("scene %q: portal targets unknown scene %q", sc.Key, p.Target)
			}
		}
	}
	return reg, nil
}

// Scene returns the scene with the given key.
func (r *Registry) Scene(key string) (*Scene, bool) {
	sc, ok := r.scenes[key]
	return sc, ok
}

// Scenes returns every scene in table order.
func (r *Registry) Scenes() []*Scene {
	out := make([]*Scene, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.scenes[key])
	}
	return out
}

// LocalQuest resolves a scene-local quest by its key, whichever scene
// owns it.
func (r *Registry) LocalQuest(key string) (game.LocalQuest, bool) {
	q, ok := r.quests[key]
	return q, ok
}
