package engine

import (
	"math"
	"sync/atomic"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Transform struct {
	Position rl.Vector3
	Rotation rl.Vector3 // Euler angles in degrees
	Scale    rl.Vector3
}

var nextUID uint64

type GameObject struct {
	UID        uint64
	Name       string
	Tags       []string
	Transform  Transform
	Active     bool
	Scene      *Scene
	Parent     *GameObject
	Children   []*GameObject
	components []Component
	started    bool
}

func NewGameObject(name string) *GameObject {
	return &GameObject{
		UID:    atomic.AddUint64(&nextUID, 1),
		Name:   name,
		Active: true,
		Transform: Transform{
			Position: rl.Vector3{},
			Rotation: rl.Vector3{},
			Scale:    rl.Vector3{X: 1, Y: 1, Z: 1},
		},
		components: make([]Component, 0),
		Children:   make([]*GameObject, 0),
	}
}

func (g *GameObject) AddComponent(c Component) {
	c.SetGameObject(g)
	g.components = append(g.components, c)
}

// GetComponent returns a component using a type assertion helper
func GetComponent[T Component](g *GameObject) T {
	var zero T
	for _, c := range g.components {
		if typed, ok := c.(T); ok {
			return typed
		}
	}
	return zero
}

func (g *GameObject) Start() {
	if g.started {
		return
	}
	for _, c := range g.components {
		c.Start()
	}
	g.started = true
}

func (g *GameObject) Update(deltaTime float32) {
	if !g.Active {
		return
	}
	for _, c := range g.components {
		c.Update(deltaTime)
	}
	for _, child := range g.Children {
		child.Update(deltaTime)
	}
}

func (g *GameObject) Components() []Component {
	return g.components
}

func (g *GameObject) HasTag(tag string) bool {
	for _, t := range g.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (g *GameObject) AddChild(child *GameObject) {
	child.Parent = g
	g.Children = append(g.Children, child)
}

// RemoveChild detaches child from this object. Removing a child that is not
// attached is a no-op.
func (g *GameObject) RemoveChild(child *GameObject) {
	for i, c := range g.Children {
		if c == child {
			g.Children = append(g.Children[:i], g.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

// Detach removes this object from its current parent, if any.
func (g *GameObject) Detach() {
	if g.Parent != nil {
		g.Parent.RemoveChild(g)
	}
}

// rotationMatrix builds the rotation matrix for Euler angles in degrees,
// applied X then Y then Z (same convention everywhere in the engine).
func rotationMatrix(euler rl.Vector3) rl.Matrix {
	rx := float64(euler.X) * math.Pi / 180
	ry := float64(euler.Y) * math.Pi / 180
	rz := float64(euler.Z) * math.Pi / 180
	rotX := rl.MatrixRotateX(float32(rx))
	rotY := rl.MatrixRotateY(float32(ry))
	rotZ := rl.MatrixRotateZ(float32(rz))
	return rl.MatrixMultiply(rl.MatrixMultiply(rotX, rotY), rotZ)
}

func (g *GameObject) WorldPosition() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Position
	}
	parentPos := g.Parent.WorldPosition()
	parentRot := g.Parent.WorldRotation()
	parentScale := g.Parent.WorldScale()

	// Scale local position by parent's world scale
	scaled := rl.Vector3{
		X: g.Transform.Position.X * parentScale.X,
		Y: g.Transform.Position.Y * parentScale.Y,
		Z: g.Transform.Position.Z * parentScale.Z,
	}

	rotated := rl.Vector3Transform(scaled, rotationMatrix(parentRot))
	return rl.Vector3Add(parentPos, rotated)
}

func (g *GameObject) WorldRotation() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Rotation
	}
	return rl.Vector3Add(g.Parent.WorldRotation(), g.Transform.Rotation)
}

func (g *GameObject) WorldScale() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Scale
	}
	ps := g.Parent.WorldScale()
	return rl.Vector3{
		X: ps.X * g.Transform.Scale.X,
		Y: ps.Y * g.Transform.Scale.Y,
		Z: ps.Z * g.Transform.Scale.Z,
	}
}

// InverseTransformPoint converts a world-space point into this object's local
// space. A child of g whose Transform.Position is set to the returned value
// sits exactly at the given world point.
func (g *GameObject) InverseTransformPoint(world rl.Vector3) rl.Vector3 {
	pos := g.WorldPosition()
	rot := g.WorldRotation()
	scale := g.WorldScale()

	rel := rl.Vector3Subtract(world, pos)
	unrotated := rl.Vector3Transform(rel, rl.MatrixInvert(rotationMatrix(rot)))

	out := unrotated
	if scale.X != 0 {
		out.X /= scale.X
	}
	if scale.Y != 0 {
		out.Y /= scale.Y
	}
	if scale.Z != 0 {
		out.Z /= scale.Z
	}
	return out
}

// InverseTransformRotation converts world-space Euler angles into this
// object's local space. Rotations compose additively up the parent chain, so
// the inverse is a subtraction.
func (g *GameObject) InverseTransformRotation(world rl.Vector3) rl.Vector3 {
	return rl.Vector3Subtract(world, g.WorldRotation())
}

// SetWorldPose sets the local transform so that the object ends up at the
// given world position and rotation under its current parent. Used when
// reparenting a grabbed object so it does not visually jump.
func (g *GameObject) SetWorldPose(position, rotation rl.Vector3) {
	if g.Parent == nil {
		g.Transform.Position = position
		g.Transform.Rotation = rotation
		return
	}
	g.Transform.Position = g.Parent.InverseTransformPoint(position)
	g.Transform.Rotation = g.Parent.InverseTransformRotation(rotation)
}
