package components

import (
	"math"

	"dreamgate/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Camera struct {
	engine.BaseComponent
	FOV        float32
	Near       float32
	Far        float32
	Projection rl.CameraProjection
}

func NewCamera() *Camera {
	return &Camera{
		FOV:        70.0,
		Near:       0.1,
		Far:        1000.0,
		Projection: rl.CameraPerspective,
	}
}

func (c *Camera) GetRaylibCamera() rl.Camera3D {
	g := c.GetGameObject()
	if g == nil {
		return rl.Camera3D{}
	}

	eyePos := g.WorldPosition()

	// Look for a LookProvider on this object or any ancestor
	var lookProvider engine.LookProvider
	for obj := g; obj != nil; obj = obj.Parent {
		if lp := findLookProvider(obj); lp != nil {
			lookProvider = lp
			break
		}
	}

	var target rl.Vector3
	if lookProvider != nil {
		x, y, z := lookProvider.GetLookDirection()
		if g.Parent == nil {
			eyePos.Y += lookProvider.GetEyeHeight()
		}
		target = rl.Vector3Add(eyePos, rl.Vector3{X: x, Y: y, Z: z})
	} else {
		// Default: look forward along the object's yaw
		rot := g.WorldRotation()
		yawRad := float64(rot.Y) * math.Pi / 180.0
		forward := rl.Vector3{
			X: float32(-math.Sin(yawRad)),
			Y: 0,
			Z: float32(-math.Cos(yawRad)),
		}
		target = rl.Vector3Add(eyePos, forward)
	}

	return rl.Camera3D{
		Position:   eyePos,
		Target:     target,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       c.FOV,
		Projection: c.Projection,
	}
}

func findLookProvider(g *engine.GameObject) engine.LookProvider {
	for _, c := range g.Components() {
		if lp, ok := c.(engine.LookProvider); ok {
			return lp
		}
	}
	return nil
}
