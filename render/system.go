package render

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/ssu/ecs"
	"github.com/milk9111/ssu/ecs/component"
)

// RenderSystem draws every entity with a transform and a sprite, ordered by
// render layer then entity id.
type RenderSystem struct {
	entities []ecs.Entity
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil {
		return
	}
	r.entities = r.entities[:0]
	ecs.ForEach2(w, component.TransformComponent, SpriteComponent, func(e ecs.Entity, _ *component.Transform, _ *SpriteRenderer) {
		r.entities = append(r.entities, e)
	})
	sort.SliceStable(r.entities, func(i, j int) bool {
		li, lj := layerOf(w, r.entities[i]), layerOf(w, r.entities[j])
		if li != lj {
			return li < lj
		}
		return r.entities[i].ID < r.entities[j].ID
	})

	for _, e := range r.entities {
		t, _ := ecs.Get(w, e, component.TransformComponent)
		s, _ := ecs.Get(w, e, SpriteComponent)
		if t == nil || s == nil {
			continue
		}
		var geo ebiten.GeoM
		sx, sy := t.ScaleX, t.ScaleY
		if sx == 0 {
			sx = 1
		}
		if sy == 0 {
			sy = 1
		}
		geo.Scale(sx, sy)
		geo.Translate(t.X, t.Y)
		s.Draw(screen, geo)
	}
}

func layerOf(w *ecs.World, e ecs.Entity) int {
	if layer, ok := ecs.Get(w, e, component.RenderLayerComponent); ok && layer != nil {
		return layer.Index
	}
	return 0
}
