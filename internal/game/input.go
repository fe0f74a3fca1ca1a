package game

import (
	"dreamgate/internal/components"
	"dreamgate/internal/interaction"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// FrameInput is everything the simulation consumes in one frame.
type FrameInput struct {
	Rig     components.RigInput
	Sources map[interaction.SourceID]interaction.SourceInput
}

// InputProvider produces one FrameInput per frame. The desktop provider
// polls mouse+keyboard; a tracked-device binding would pose the hand nodes
// and fill in the hand sources instead.
type InputProvider interface {
	Poll() FrameInput
}

// DesktopInput drives the rig and a single virtual hand from mouse+keyboard:
// WASD moves, mouse looks, Space jumps, Q/E snap-turn, left click or F
// activates, right mouse holds a grab.
type DesktopInput struct {
	rig *components.RigController
}

func NewDesktopInput(rig *components.RigController) *DesktopInput {
	return &DesktopInput{rig: rig}
}

func (d *DesktopInput) Poll() FrameInput {
	var in FrameInput

	if rl.IsKeyDown(rl.KeyW) {
		in.Rig.Move.Y += 1
	}
	if rl.IsKeyDown(rl.KeyS) {
		in.Rig.Move.Y -= 1
	}
	if rl.IsKeyDown(rl.KeyD) {
		in.Rig.Move.X += 1
	}
	if rl.IsKeyDown(rl.KeyA) {
		in.Rig.Move.X -= 1
	}
	if rl.IsKeyDown(rl.KeyQ) {
		in.Rig.Turn = -1
	}
	if rl.IsKeyDown(rl.KeyE) {
		in.Rig.Turn = 1
	}
	in.Rig.Jump = rl.IsKeyPressed(rl.KeySpace)

	mouseDelta := rl.GetMouseDelta()
	in.Rig.Look = rl.Vector2{X: mouseDelta.X * 0.1, Y: mouseDelta.Y * 0.1}

	// Desktop hover ray: camera center along the view direction.
	rigNode := d.rig.GetGameObject()
	origin := rigNode.WorldPosition()
	origin.Y += d.rig.EyeHeight
	lx, ly, lz := d.rig.GetLookDirection()

	in.Sources = map[interaction.SourceID]interaction.SourceInput{
		interaction.SourceDesktop: {
			Origin:          origin,
			Direction:       rl.Vector3{X: lx, Y: ly, Z: lz},
			ActivatePressed: rl.IsMouseButtonPressed(rl.MouseLeftButton) || rl.IsKeyPressed(rl.KeyF),
			GrabPressed:     rl.IsMouseButtonPressed(rl.MouseRightButton),
			GrabReleased:    rl.IsMouseButtonReleased(rl.MouseRightButton),
		},
	}
	return in
}
