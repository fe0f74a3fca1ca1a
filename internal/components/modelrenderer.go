package components

import (
	"dreamgate/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type ModelRenderer struct {
	engine.BaseComponent
	Model rl.Model
	Color rl.Color
	// Tint multiplies Color at draw time; the interaction system brightens it
	// on hover.
	Tint   rl.Color
	shader rl.Shader
	owned  bool // true if this renderer must unload the model itself
}

func NewModelRenderer(model rl.Model, color rl.Color) *ModelRenderer {
	return &ModelRenderer{
		Model: model,
		Color: color,
		Tint:  rl.White,
		owned: true,
	}
}

// NewSharedModelRenderer wraps a model owned by the asset cache; Unload
// leaves it alone.
func NewSharedModelRenderer(model rl.Model, color rl.Color) *ModelRenderer {
	r := NewModelRenderer(model, color)
	r.owned = false
	return r
}

func (m *ModelRenderer) SetShader(shader rl.Shader) {
	m.shader = shader
	m.Model.Materials.Shader = shader
	m.Model.Materials.Maps.Color = m.Color
}

func (m *ModelRenderer) Draw() {
	g := m.GetGameObject()
	if g == nil || !g.Active {
		return
	}

	// World transform, not local: grabbed props render as children of a
	// moving hand node.
	scale := g.WorldScale()
	scaleMatrix := rl.MatrixScale(scale.X, scale.Y, scale.Z)

	rot := g.WorldRotation()
	rotX := rl.MatrixRotateX(rot.X * rl.Deg2rad)
	rotY := rl.MatrixRotateY(rot.Y * rl.Deg2rad)
	rotZ := rl.MatrixRotateZ(rot.Z * rl.Deg2rad)
	rotMatrix := rl.MatrixMultiply(rl.MatrixMultiply(rotX, rotY), rotZ)

	pos := g.WorldPosition()
	transMatrix := rl.MatrixTranslate(pos.X, pos.Y, pos.Z)

	// Combine: scale -> rotate -> translate
	m.Model.Transform = rl.MatrixMultiply(rl.MatrixMultiply(scaleMatrix, rotMatrix), transMatrix)

	rl.DrawModel(m.Model, rl.Vector3Zero(), 1.0, rl.ColorTint(m.Color, m.Tint))
}

func (m *ModelRenderer) Unload() {
	if m.owned {
		rl.UnloadModel(m.Model)
	}
}
