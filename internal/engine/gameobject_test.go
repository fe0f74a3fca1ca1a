package engine

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestNewGameObject(t *testing.T) {
	obj := NewGameObject("TestObject")

	if obj.Name != "TestObject" {
		t.Errorf("Expected name 'TestObject', got '%s'", obj.Name)
	}

	if obj.UID == 0 {
		t.Error("UID should not be 0")
	}

	if obj.components == nil {
		t.Error("components slice should be initialized")
	}
}

func TestGameObjectUniqueUIDs(t *testing.T) {
	obj1 := NewGameObject("First")
	obj2 := NewGameObject("Second")

	if obj1.UID == obj2.UID {
		t.Error("GameObjects should have unique UIDs")
	}
}

func TestGameObjectHasTag(t *testing.T) {
	obj := NewGameObject("Test")
	obj.Tags = []string{"prop", "grabbable"}

	if !obj.HasTag("prop") {
		t.Error("HasTag should return true for existing tag")
	}

	if obj.HasTag("portal") {
		t.Error("HasTag should return false for non-existent tag")
	}
}

func TestGameObjectParentChild(t *testing.T) {
	parent := NewGameObject("Parent")
	child := NewGameObject("Child")

	parent.AddChild(child)

	if child.Parent != parent {
		t.Error("Child.Parent should be set")
	}

	if len(parent.Children) != 1 {
		t.Errorf("Expected 1 child, got %d", len(parent.Children))
	}
}

func TestGameObjectRemoveChild(t *testing.T) {
	parent := NewGameObject("Parent")
	child := NewGameObject("Child")

	parent.AddChild(child)
	parent.RemoveChild(child)

	if child.Parent != nil {
		t.Error("Child.Parent should be nil after removal")
	}
	if len(parent.Children) != 0 {
		t.Errorf("Expected 0 children, got %d", len(parent.Children))
	}

	// Removing again must be a no-op
	parent.RemoveChild(child)
}

func TestDetachWithoutParent(t *testing.T) {
	obj := NewGameObject("Loose")
	obj.Detach() // must not panic
}

func TestWorldPositionComposition(t *testing.T) {
	parent := NewGameObject("Parent")
	parent.Transform.Position = rl.Vector3{X: 1, Y: 2, Z: 3}

	child := NewGameObject("Child")
	child.Transform.Position = rl.Vector3{X: 0.5, Y: 0, Z: 0}
	parent.AddChild(child)

	world := child.WorldPosition()
	if world.X != 1.5 || world.Y != 2 || world.Z != 3 {
		t.Errorf("Expected (1.5, 2, 3), got (%v, %v, %v)", world.X, world.Y, world.Z)
	}
}

func TestInverseTransformPointRoundTrip(t *testing.T) {
	parent := NewGameObject("Parent")
	parent.Transform.Position = rl.Vector3{X: 2, Y: 1, Z: -3}
	parent.Transform.Rotation = rl.Vector3{Y: 47}
	parent.Transform.Scale = rl.Vector3{X: 2, Y: 2, Z: 2}

	child := NewGameObject("Child")
	child.Transform.Position = rl.Vector3{X: 0.7, Y: -0.2, Z: 1.1}
	parent.AddChild(child)

	world := child.WorldPosition()
	local := parent.InverseTransformPoint(world)

	const tol = 1e-4
	if absDiff(local.X, 0.7) > tol || absDiff(local.Y, -0.2) > tol || absDiff(local.Z, 1.1) > tol {
		t.Errorf("Round trip failed: got (%v, %v, %v)", local.X, local.Y, local.Z)
	}
}

func TestSetWorldPosePreservesWorldPosition(t *testing.T) {
	oldParent := NewGameObject("OldParent")
	oldParent.Transform.Position = rl.Vector3{X: 5, Y: 0, Z: 0}
	obj := NewGameObject("Obj")
	obj.Transform.Position = rl.Vector3{X: 1, Y: 1, Z: 0}
	oldParent.AddChild(obj)

	worldBefore := obj.WorldPosition()
	rotBefore := obj.WorldRotation()

	newParent := NewGameObject("NewParent")
	newParent.Transform.Position = rl.Vector3{X: -2, Y: 3, Z: 1}
	newParent.Transform.Rotation = rl.Vector3{Y: 90}

	oldParent.RemoveChild(obj)
	newParent.AddChild(obj)
	obj.SetWorldPose(worldBefore, rotBefore)

	worldAfter := obj.WorldPosition()
	const tol = 1e-4
	if absDiff(worldAfter.X, worldBefore.X) > tol ||
		absDiff(worldAfter.Y, worldBefore.Y) > tol ||
		absDiff(worldAfter.Z, worldBefore.Z) > tol {
		t.Errorf("World position changed on reparent: before (%v, %v, %v) after (%v, %v, %v)",
			worldBefore.X, worldBefore.Y, worldBefore.Z, worldAfter.X, worldAfter.Y, worldAfter.Z)
	}
}

func absDiff(a, b float32) float32 {
	d := a - b
	if d < 0 {
		return -d
	}
	return d
}
