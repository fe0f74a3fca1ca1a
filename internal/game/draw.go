package game

import (
	"dreamgate/internal/components"
	"dreamgate/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func (g *Game) Draw() {
	camera := g.camera.GetRaylibCamera()

	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(18, 18, 28, 255))

	rl.BeginMode3D(camera)
	rl.DrawModel(g.groundModel, rl.Vector3Zero(), 1.0, rl.LightGray)
	for _, obj := range g.scene.GameObjects {
		drawObject(obj)
	}
	rl.EndMode3D()

	g.hud.Draw()
	rl.DrawFPS(int32(rl.GetScreenWidth())-100, 10)
	rl.EndDrawing()
}

func drawObject(obj *engine.GameObject) {
	if !obj.Active {
		return
	}
	if r := engine.GetComponent[*components.ModelRenderer](obj); r != nil {
		r.Draw()
	}
	for _, child := range obj.Children {
		drawObject(child)
	}
}
