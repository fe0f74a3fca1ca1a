package engine

import "testing"

type spinComponent struct {
	BaseComponent
	starts  int
	updates int
}

func (s *spinComponent) Start()                   { s.starts++ }
func (s *spinComponent) Update(deltaTime float32) { s.updates++ }

type otherComponent struct {
	BaseComponent
}

func TestAddComponentSetsOwner(t *testing.T) {
	obj := NewGameObject("Obj")
	spin := &spinComponent{}
	obj.AddComponent(spin)

	if spin.GetGameObject() != obj {
		t.Error("AddComponent should set the owning game object")
	}
}

func TestGetComponentByType(t *testing.T) {
	obj := NewGameObject("Obj")
	spin := &spinComponent{}
	obj.AddComponent(spin)
	obj.AddComponent(&otherComponent{})

	if got := GetComponent[*spinComponent](obj); got != spin {
		t.Error("GetComponent should find the component by type")
	}
	if len(obj.Components()) != 2 {
		t.Errorf("Expected 2 components, got %d", len(obj.Components()))
	}
}

func TestGetComponentMissing(t *testing.T) {
	obj := NewGameObject("Obj")
	obj.AddComponent(&otherComponent{})

	if got := GetComponent[*spinComponent](obj); got != nil {
		t.Error("GetComponent should return nil for a missing type")
	}
}

func TestStartRunsOnce(t *testing.T) {
	obj := NewGameObject("Obj")
	spin := &spinComponent{}
	obj.AddComponent(spin)

	obj.Start()
	obj.Start()
	if spin.starts != 1 {
		t.Errorf("Start should run once, got %d", spin.starts)
	}
}

func TestUpdateSkipsInactive(t *testing.T) {
	obj := NewGameObject("Obj")
	spin := &spinComponent{}
	obj.AddComponent(spin)

	obj.Update(0.016)
	obj.Active = false
	obj.Update(0.016)

	if spin.updates != 1 {
		t.Errorf("Inactive objects should not update, got %d updates", spin.updates)
	}
}

func TestUpdateReachesChildren(t *testing.T) {
	parent := NewGameObject("Parent")
	child := NewGameObject("Child")
	spin := &spinComponent{}
	child.AddComponent(spin)
	parent.AddChild(child)

	parent.Update(0.016)
	if spin.updates != 1 {
		t.Errorf("Update should recurse into children, got %d", spin.updates)
	}
}
