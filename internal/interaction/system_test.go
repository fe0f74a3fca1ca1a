package interaction

import (
	"testing"

	"dreamgate/internal/components"
	"dreamgate/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProp(name string, pos rl.Vector3, capability Capability) (*engine.GameObject, *Interactable) {
	obj := engine.NewGameObject(name)
	obj.Transform.Position = pos
	obj.AddComponent(components.NewBoxCollider(rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5}))

	it := NewInteractable(capability)
	obj.AddComponent(it)
	return obj, it
}

func rayAt(target rl.Vector3) SourceInput {
	origin := rl.Vector3{X: target.X, Y: target.Y, Z: target.Z + 2}
	return SourceInput{Origin: origin, Direction: rl.Vector3{Z: -1}}
}

func TestHoverEnterExitOnce(t *testing.T) {
	sys := NewSystem()
	_, it := newProp("Crate", rl.Vector3{Y: 1, Z: -2}, CanGrab)
	sys.Register(it)

	enters, exits := 0, 0
	it.OnHoverEnter = func() { enters++ }
	it.OnHoverExit = func() { exits++ }

	in := rayAt(rl.Vector3{Y: 1, Z: -2})
	sys.UpdateSource(SourceDesktop, in)
	sys.UpdateSource(SourceDesktop, in)
	sys.UpdateSource(SourceDesktop, in)

	assert.Equal(t, 1, enters, "re-hovering the same target must stay silent")
	assert.Equal(t, 0, exits)
	assert.Same(t, it, sys.Hovered(SourceDesktop))

	// Look away
	sys.UpdateSource(SourceDesktop, SourceInput{Origin: in.Origin, Direction: rl.Vector3{Y: 1}})
	assert.Equal(t, 1, exits)
	assert.Nil(t, sys.Hovered(SourceDesktop))
}

func TestHoverPicksClosest(t *testing.T) {
	sys := NewSystem()
	_, near := newProp("Near", rl.Vector3{Y: 1, Z: -2}, CanGrab)
	_, far := newProp("Far", rl.Vector3{Y: 1, Z: -4}, CanGrab)
	sys.Register(near)
	sys.Register(far)

	sys.UpdateSource(SourceDesktop, SourceInput{
		Origin:    rl.Vector3{Y: 1, Z: 0},
		Direction: rl.Vector3{Z: -1},
	})
	assert.Same(t, near, sys.Hovered(SourceDesktop))
}

func TestHoverSkipsDisabledAndDistant(t *testing.T) {
	sys := NewSystem()
	_, it := newProp("Crate", rl.Vector3{Y: 1, Z: -2}, CanGrab)
	it.Enabled = false
	sys.Register(it)

	sys.UpdateSource(SourceDesktop, rayAt(rl.Vector3{Y: 1, Z: -2}))
	assert.Nil(t, sys.Hovered(SourceDesktop), "disabled interactables are not hover targets")

	_, distant := newProp("Distant", rl.Vector3{Y: 1, Z: -20}, CanGrab)
	sys.Register(distant)
	sys.UpdateSource(SourceDesktop, SourceInput{Origin: rl.Vector3{Y: 1}, Direction: rl.Vector3{Z: -1}})
	assert.Nil(t, sys.Hovered(SourceDesktop), "targets beyond MaxDistance are ignored")
}

func TestHoverZeroDirection(t *testing.T) {
	sys := NewSystem()
	_, it := newProp("Crate", rl.Vector3{}, CanGrab)
	sys.Register(it)

	sys.UpdateSource(SourceDesktop, SourceInput{Origin: rl.Vector3{Z: 2}})
	assert.Nil(t, sys.Hovered(SourceDesktop))
}

func TestActivateRequiresCapability(t *testing.T) {
	sys := NewSystem()
	_, button := newProp("Button", rl.Vector3{Y: 1, Z: -2}, CanActivate)
	_, crate := newProp("Crate", rl.Vector3{Y: 1, Z: -6}, CanGrab)
	sys.Register(button)
	sys.Register(crate)

	activated := 0
	button.OnActivate = func(source SourceID) {
		activated++
		assert.Equal(t, SourceDesktop, source)
	}
	crate.OnActivate = func(SourceID) { t.Error("grab-only object must not activate") }

	in := rayAt(rl.Vector3{Y: 1, Z: -2})
	in.ActivatePressed = true
	sys.UpdateSource(SourceDesktop, in)
	assert.Equal(t, 1, activated)

	// Held button does not re-fire without a new edge
	sys.UpdateSource(SourceDesktop, rayAt(rl.Vector3{Y: 1, Z: -2}))
	assert.Equal(t, 1, activated)

	crateRay := rayAt(rl.Vector3{Y: 1, Z: -6})
	crateRay.ActivatePressed = true
	sys.UpdateSource(SourceDesktop, crateRay)
	assert.Equal(t, 1, activated)
}

func TestTrackedGrabReparentsWithoutJump(t *testing.T) {
	sys := NewSystem()
	scene := engine.NewScene("Test")

	hand := engine.NewGameObject("RightHand")
	hand.Transform.Position = rl.Vector3{X: 0.25, Y: 1.3, Z: -0.4}
	hand.Transform.Rotation = rl.Vector3{Y: 45}
	sys.SetSourceNode(SourceRightHand, hand)

	obj, it := newProp("Crate", rl.Vector3{Y: 1, Z: -2}, CanGrab)
	scene.AddGameObject(obj)
	sys.Register(it)

	grabs := 0
	it.OnGrab = func(source SourceID) {
		grabs++
		assert.Equal(t, SourceRightHand, source)
	}

	in := rayAt(rl.Vector3{Y: 1, Z: -2})
	sys.UpdateSource(SourceRightHand, in)

	in.GrabPressed = true
	sys.UpdateSource(SourceRightHand, in)

	require.Same(t, it, sys.Grabbed(SourceRightHand))
	assert.Equal(t, 1, grabs)
	assert.Same(t, hand, obj.Parent, "grabbed object must hang under the hand node")
	assert.Nil(t, scene.FindByName("Crate"), "grabbed scene root must leave the root list")

	world := obj.WorldPosition()
	assert.InDelta(t, 0, float64(world.X), 1e-3)
	assert.InDelta(t, 1, float64(world.Y), 1e-3)
	assert.InDelta(t, -2, float64(world.Z), 1e-3)
}

func TestGrabReleaseRoundTrip(t *testing.T) {
	sys := NewSystem()
	scene := engine.NewScene("Test")

	hand := engine.NewGameObject("Hand")
	hand.Transform.Position = rl.Vector3{X: 0.25, Y: 1.3, Z: -0.4}
	sys.SetSourceNode(SourceLeftHand, hand)

	pedestal := engine.NewGameObject("Pedestal")
	pedestal.Transform.Position = rl.Vector3{X: 1, Z: -2}
	pedestal.Transform.Rotation = rl.Vector3{Y: 30}
	scene.AddGameObject(pedestal)

	obj, it := newProp("Gem", rl.Vector3{X: 0.2, Y: 1, Z: 0}, CanGrab)
	pedestal.AddChild(obj)
	sys.Register(it)

	var releasedAt rl.Vector3
	released := 0
	it.OnRelease = func(source SourceID, worldPosition rl.Vector3) {
		released++
		releasedAt = worldPosition
	}

	target := obj.WorldPosition()
	in := rayAt(target)
	sys.UpdateSource(SourceLeftHand, in)
	in.GrabPressed = true
	sys.UpdateSource(SourceLeftHand, in)
	require.Same(t, it, sys.Grabbed(SourceLeftHand))

	// Carry the object somewhere else
	hand.Transform.Position = rl.Vector3{X: 2, Y: 1.5, Z: -3}
	dropPos := obj.WorldPosition()

	in.GrabPressed = false
	in.GrabReleased = true
	sys.UpdateSource(SourceLeftHand, in)

	assert.Nil(t, sys.Grabbed(SourceLeftHand))
	assert.Equal(t, 1, released)
	assert.Same(t, pedestal, obj.Parent, "release must restore the original parent")

	assert.InDelta(t, float64(dropPos.X), float64(releasedAt.X), 1e-3)
	assert.InDelta(t, float64(dropPos.Y), float64(releasedAt.Y), 1e-3)
	assert.InDelta(t, float64(dropPos.Z), float64(releasedAt.Z), 1e-3)

	// World pose is preserved through the reattachment
	after := obj.WorldPosition()
	assert.InDelta(t, float64(dropPos.X), float64(after.X), 1e-3)
	assert.InDelta(t, float64(dropPos.Y), float64(after.Y), 1e-3)
	assert.InDelta(t, float64(dropPos.Z), float64(after.Z), 1e-3)
}

func TestDesktopCarryAtHoldDistance(t *testing.T) {
	sys := NewSystem()

	obj, it := newProp("Crate", rl.Vector3{Y: 1, Z: -2}, CanGrab)
	sys.Register(it)

	var releasedAt rl.Vector3
	it.OnRelease = func(_ SourceID, worldPosition rl.Vector3) { releasedAt = worldPosition }

	in := SourceInput{Origin: rl.Vector3{Y: 1}, Direction: rl.Vector3{Z: -1}}
	sys.UpdateSource(SourceDesktop, in)
	in.GrabPressed = true
	sys.UpdateSource(SourceDesktop, in)

	require.Same(t, it, sys.Grabbed(SourceDesktop))
	assert.Nil(t, obj.Parent, "desktop grab must not reparent")

	// Object sits HoldDistance in front of the camera
	pos := obj.Transform.Position
	assert.InDelta(t, 0, float64(pos.X), 1e-4)
	assert.InDelta(t, 1, float64(pos.Y), 1e-4)
	assert.InDelta(t, -1.5, float64(pos.Z), 1e-4)

	// Camera moves; the carried object follows
	in.GrabPressed = false
	in.Origin = rl.Vector3{X: 2, Y: 1}
	sys.UpdateSource(SourceDesktop, in)
	pos = obj.Transform.Position
	assert.InDelta(t, 2, float64(pos.X), 1e-4)
	assert.InDelta(t, -1.5, float64(pos.Z), 1e-4)

	in.GrabReleased = true
	sys.UpdateSource(SourceDesktop, in)
	assert.Nil(t, sys.Grabbed(SourceDesktop))
	assert.InDelta(t, 2, float64(releasedAt.X), 1e-4)
	assert.InDelta(t, -1.5, float64(releasedAt.Z), 1e-4)
}

func TestRemoveSourceForcesRelease(t *testing.T) {
	sys := NewSystem()
	scene := engine.NewScene("Test")

	hand := engine.NewGameObject("Hand")
	sys.SetSourceNode(SourceRightHand, hand)

	obj, it := newProp("Crate", rl.Vector3{Y: 1, Z: -2}, CanGrab)
	scene.AddGameObject(obj)
	sys.Register(it)

	released := 0
	it.OnRelease = func(SourceID, rl.Vector3) { released++ }

	in := rayAt(rl.Vector3{Y: 1, Z: -2})
	sys.UpdateSource(SourceRightHand, in)
	in.GrabPressed = true
	sys.UpdateSource(SourceRightHand, in)
	require.Same(t, it, sys.Grabbed(SourceRightHand))

	sys.RemoveSource(SourceRightHand)

	assert.Equal(t, 1, released)
	assert.Nil(t, obj.Parent)
	assert.NotNil(t, scene.FindByName("Crate"), "object must return to the scene root list")
	assert.Empty(t, hand.Children, "nothing may stay attached to a removed source")
}

func TestUnregisterHeldObject(t *testing.T) {
	sys := NewSystem()

	obj, it := newProp("Crate", rl.Vector3{Y: 1, Z: -2}, CanGrab)
	sys.Register(it)

	released := 0
	it.OnRelease = func(SourceID, rl.Vector3) { released++ }

	in := rayAt(rl.Vector3{Y: 1, Z: -2})
	sys.UpdateSource(SourceDesktop, in)
	in.GrabPressed = true
	sys.UpdateSource(SourceDesktop, in)
	require.Same(t, it, sys.Grabbed(SourceDesktop))

	sys.Unregister(it)

	assert.Equal(t, 1, released)
	assert.Nil(t, sys.Grabbed(SourceDesktop))

	// Gone from the active set: no more hovering
	sys.UpdateSource(SourceDesktop, rayAt(rl.Vector3{Y: 1, Z: -2}))
	assert.Nil(t, sys.Hovered(SourceDesktop))
	_ = obj
}

func TestClearReleasesEverything(t *testing.T) {
	sys := NewSystem()
	hand := engine.NewGameObject("Hand")
	sys.SetSourceNode(SourceLeftHand, hand)

	obj, it := newProp("Crate", rl.Vector3{Y: 1, Z: -2}, CanGrab)
	sys.Register(it)

	exits := 0
	it.OnHoverExit = func() { exits++ }

	in := rayAt(rl.Vector3{Y: 1, Z: -2})
	sys.UpdateSource(SourceLeftHand, in)
	in.GrabPressed = true
	sys.UpdateSource(SourceLeftHand, in)

	sys.Clear()

	assert.Nil(t, sys.Grabbed(SourceLeftHand))
	assert.Nil(t, obj.Parent)

	sys.UpdateSource(SourceLeftHand, rayAt(rl.Vector3{Y: 1, Z: -2}))
	assert.Nil(t, sys.Hovered(SourceLeftHand), "cleared registry must be empty")
}

func TestRegisterDuplicateAndNil(t *testing.T) {
	sys := NewSystem()
	_, it := newProp("Crate", rl.Vector3{Y: 1, Z: -2}, CanGrab)

	sys.Register(nil)
	sys.Register(it)
	sys.Register(it)

	// A single Unregister empties the set
	sys.Unregister(it)
	sys.UpdateSource(SourceDesktop, rayAt(rl.Vector3{Y: 1, Z: -2}))
	assert.Nil(t, sys.Hovered(SourceDesktop))
}

func TestHoverResumesAfterRelease(t *testing.T) {
	sys := NewSystem()

	obj, it := newProp("Crate", rl.Vector3{Y: 1, Z: -2}, CanGrab)
	sys.Register(it)

	enters := 0
	it.OnHoverEnter = func() { enters++ }

	in := rayAt(rl.Vector3{Y: 1, Z: -2})
	sys.UpdateSource(SourceDesktop, in)
	assert.Equal(t, 1, enters)

	in.GrabPressed = true
	sys.UpdateSource(SourceDesktop, in)
	assert.Nil(t, sys.Hovered(SourceDesktop), "a held object is not simultaneously hovered")

	// Drop it where it was carried and look at it again
	in.GrabPressed = false
	in.GrabReleased = true
	sys.UpdateSource(SourceDesktop, in)

	look := rayAt(obj.WorldPosition())
	sys.UpdateSource(SourceDesktop, look)
	assert.Equal(t, 2, enters)
	assert.Same(t, it, sys.Hovered(SourceDesktop))
}
