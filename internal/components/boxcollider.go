package components

import (
	"dreamgate/internal/engine"
	"dreamgate/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type BoxCollider struct {
	engine.BaseComponent
	Size   rl.Vector3
	Offset rl.Vector3
}

func NewBoxCollider(size rl.Vector3) *BoxCollider {
	return &BoxCollider{
		Size:   size,
		Offset: rl.Vector3{},
	}
}

// GetAABB returns the collider's box in world space, scaled by the owning
// object's world scale.
func (b *BoxCollider) GetAABB() physics.AABB {
	g := b.GetGameObject()
	if g == nil {
		return physics.NewAABBFromCenter(b.Offset, b.Size)
	}
	scale := g.WorldScale()
	size := rl.Vector3{
		X: b.Size.X * scale.X,
		Y: b.Size.Y * scale.Y,
		Z: b.Size.Z * scale.Z,
	}
	center := rl.Vector3Add(g.WorldPosition(), b.Offset)
	return physics.NewAABBFromCenter(center, size)
}

// SubtreeBounds unions the collider boxes of an object and all of its
// descendants, so a multi-mesh asset resolves to one hit volume. Returns
// false when the subtree carries no collider at all.
func SubtreeBounds(g *engine.GameObject) (physics.AABB, bool) {
	var bounds physics.AABB
	found := false

	if col := engine.GetComponent[*BoxCollider](g); col != nil {
		bounds = col.GetAABB()
		found = true
	}
	for _, child := range g.Children {
		childBounds, ok := SubtreeBounds(child)
		if !ok {
			continue
		}
		if found {
			bounds = bounds.Union(childBounds)
		} else {
			bounds = childBounds
			found = true
		}
	}
	return bounds, found
}
