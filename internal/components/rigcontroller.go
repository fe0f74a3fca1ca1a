package components

import (
	"math"

	"dreamgate/internal/engine"
	"dreamgate/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// RigInput is one frame of locomotion input, already merged from whichever
// device is driving the rig. Out-of-range values are clamped, never rejected.
type RigInput struct {
	Move rl.Vector2 // X = strafe (+right), Y = forward; normalized
	Turn float32    // snap-turn axis in [-1, 1]
	Look rl.Vector2 // smooth look delta in degrees (desktop mouse)
	Jump bool       // discrete jump trigger
}

// RigController moves the player rig: smooth locomotion in the rig's yaw
// basis, discrete snap turns with a cooldown to avoid motion sickness, and a
// ballistic jump arc. Every proposed displacement goes through the collider
// store before it touches the transform.
type RigController struct {
	engine.BaseComponent

	Store *physics.Store

	MoveSpeed    float32
	SnapAngle    float32 // degrees per snap
	SnapCooldown float32 // seconds between snaps
	SnapDeadzone float32
	Gravity      float32
	JumpStrength float32
	EyeHeight    float32
	BodySize     rl.Vector3

	Pitch float32

	velocityY    float32
	grounded     bool
	snapCooldown float32
}

func NewRigController(store *physics.Store) *RigController {
	return &RigController{
		Store:        store,
		MoveSpeed:    3.0,
		SnapAngle:    30.0,
		SnapCooldown: 0.3,
		SnapDeadzone: 0.6,
		Gravity:      9.81,
		JumpStrength: 4.5,
		EyeHeight:    1.7,
		BodySize:     rl.Vector3{X: 0.6, Y: 1.8, Z: 0.6},
	}
}

// Step advances the rig one frame. The rig transform's Position is the feet
// center; the camera hangs EyeHeight above it.
func (r *RigController) Step(in RigInput, deltaTime float32) {
	g := r.GetGameObject()
	if g == nil {
		return
	}

	in = clampInput(in)

	// Smooth look (desktop mouse); VR headset yaw comes through snap turns
	g.Transform.Rotation.Y -= in.Look.X
	r.Pitch -= in.Look.Y
	if r.Pitch > 89 {
		r.Pitch = 89
	}
	if r.Pitch < -89 {
		r.Pitch = -89
	}

	// Snap turn
	if r.snapCooldown > 0 {
		r.snapCooldown -= deltaTime
	}
	if r.snapCooldown <= 0 && abs32(in.Turn) > r.SnapDeadzone {
		if in.Turn > 0 {
			g.Transform.Rotation.Y -= r.SnapAngle
		} else {
			g.Transform.Rotation.Y += r.SnapAngle
		}
		r.snapCooldown = r.SnapCooldown
	}

	// Jump
	if in.Jump && r.grounded {
		r.velocityY = r.JumpStrength
		r.grounded = false
	}
	r.velocityY -= r.Gravity * deltaTime

	// Proposed displacement: move vector rotated into the rig's yaw basis
	forward, right := r.basis()
	proposed := rl.Vector3{
		X: (forward.X*in.Move.Y + right.X*in.Move.X) * r.MoveSpeed * deltaTime,
		Y: r.velocityY * deltaTime,
		Z: (forward.Z*in.Move.Y + right.Z*in.Move.X) * r.MoveSpeed * deltaTime,
	}

	corrected := proposed
	if r.Store != nil {
		corrected = r.Store.Resolve(r.bodyBox(), proposed)
	}
	g.Transform.Position = rl.Vector3Add(g.Transform.Position, corrected)

	// Landing: any upward correction of a downward move means we hit ground
	// or a platform top.
	if corrected.Y > proposed.Y+1e-6 || (proposed.Y <= 0 && corrected.Y == 0 && r.velocityY < 0) {
		r.velocityY = 0
		r.grounded = true
	} else if corrected.Y < proposed.Y-1e-6 && r.velocityY > 0 {
		// Bumped a ceiling
		r.velocityY = 0
	} else if corrected.Y < -1e-6 {
		r.grounded = false
	}
}

// bodyBox is the rig's collision volume: feet at Transform.Position.Y.
func (r *RigController) bodyBox() physics.AABB {
	g := r.GetGameObject()
	center := g.Transform.Position
	center.Y += r.BodySize.Y / 2
	return physics.NewAABBFromCenter(center, r.BodySize)
}

func (r *RigController) basis() (forward, right rl.Vector3) {
	yawRad := float64(r.GetGameObject().Transform.Rotation.Y) * math.Pi / 180
	forward = rl.Vector3{
		X: float32(-math.Sin(yawRad)),
		Y: 0,
		Z: float32(-math.Cos(yawRad)),
	}
	// right = forward x up, so +X is screen-right at yaw 0
	right = rl.Vector3{
		X: float32(math.Cos(yawRad)),
		Y: 0,
		Z: float32(-math.Sin(yawRad)),
	}
	return
}

func (r *RigController) Grounded() bool {
	return r.grounded
}

func (r *RigController) VelocityY() float32 {
	return r.velocityY
}

// GetLookDirection implements engine.LookProvider.
func (r *RigController) GetLookDirection() (x, y, z float32) {
	g := r.GetGameObject()
	if g == nil {
		return 0, 0, -1
	}
	yawRad := float64(g.Transform.Rotation.Y) * math.Pi / 180
	pitchRad := float64(r.Pitch) * math.Pi / 180
	x = float32(-math.Sin(yawRad) * math.Cos(pitchRad))
	y = float32(math.Sin(pitchRad))
	z = float32(-math.Cos(yawRad) * math.Cos(pitchRad))
	return
}

// GetEyeHeight implements engine.LookProvider.
func (r *RigController) GetEyeHeight() float32 {
	return r.EyeHeight
}

func clampInput(in RigInput) RigInput {
	moveLen := float32(math.Sqrt(float64(in.Move.X*in.Move.X + in.Move.Y*in.Move.Y)))
	if moveLen > 1 {
		in.Move.X /= moveLen
		in.Move.Y /= moveLen
	}
	if in.Turn > 1 {
		in.Turn = 1
	}
	if in.Turn < -1 {
		in.Turn = -1
	}
	return in
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
