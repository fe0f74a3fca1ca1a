package interaction

import (
	"dreamgate/internal/components"
	"dreamgate/internal/engine"
	"dreamgate/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// SourceInput is one frame of interaction input for a single source.
// The ray is the source's world transform and forward axis; for the desktop
// source it is the camera center and view direction.
type SourceInput struct {
	Origin    rl.Vector3
	Direction rl.Vector3

	ActivatePressed bool // discrete edge
	GrabPressed     bool // discrete edge
	GrabReleased    bool // discrete edge
}

// savedAttachment records where a grabbed object came from so release can
// restore its parent space exactly.
type savedAttachment struct {
	parent   *engine.GameObject
	scene    *engine.Scene // set when the object was a scene root
	localPos rl.Vector3
	localRot rl.Vector3
}

type sourceState struct {
	node    *engine.GameObject // tracked transform; nil for desktop
	hovered *Interactable
	grabbed *Interactable
	saved   savedAttachment
}

// System owns the active set of interactables and the per-source interaction
// state. All per-frame state lives on the instance, keyed by source, so
// concurrent sessions in tests stay isolated.
type System struct {
	MaxDistance  float32
	HoldDistance float32 // desktop carry offset in front of the camera

	registry []*Interactable
	sources  map[SourceID]*sourceState
}

func NewSystem() *System {
	return &System{
		MaxDistance:  5.0,
		HoldDistance: 1.5,
		sources:      make(map[SourceID]*sourceState),
	}
}

// SetSourceNode binds a tracked transform node to a source. Grabbed objects
// are reparented under this node. The desktop source has no node and is
// driven purely by its input ray.
func (s *System) SetSourceNode(id SourceID, node *engine.GameObject) {
	s.state(id).node = node
}

// Register adds an interactable to the active set. Registering the same
// interactable twice is a no-op.
func (s *System) Register(it *Interactable) {
	if it == nil {
		return
	}
	for _, existing := range s.registry {
		if existing == it {
			return
		}
	}
	s.registry = append(s.registry, it)
}

// Unregister removes an interactable, force-releasing it from any source that
// holds it and closing out any open hover.
func (s *System) Unregister(it *Interactable) {
	for i, existing := range s.registry {
		if existing == it {
			s.registry = append(s.registry[:i], s.registry[i+1:]...)
			break
		}
	}
	for id, st := range s.sources {
		if st.grabbed == it {
			s.forceRelease(id, st)
		}
		if st.hovered == it {
			st.hovered = nil
			it.hoverExit()
		}
	}
}

// RemoveSource tears down a source mid-session. Anything it is holding is
// restored to its original parent first so no object stays attached to a dead
// node.
func (s *System) RemoveSource(id SourceID) {
	st, ok := s.sources[id]
	if !ok {
		return
	}
	if st.grabbed != nil {
		s.forceRelease(id, st)
	}
	if st.hovered != nil {
		st.hovered.hoverExit()
		st.hovered = nil
	}
	delete(s.sources, id)
}

// ReleaseAll force-releases every grabbed object and clears every hover.
// Part of the level unload barrier.
func (s *System) ReleaseAll() {
	for id, st := range s.sources {
		if st.grabbed != nil {
			s.forceRelease(id, st)
		}
		if st.hovered != nil {
			st.hovered.hoverExit()
			st.hovered = nil
		}
	}
}

// Clear drops the whole active set after releasing everything. Called on
// level unload.
func (s *System) Clear() {
	s.ReleaseAll()
	s.registry = nil
}

func (s *System) Hovered(id SourceID) *Interactable {
	return s.state(id).hovered
}

func (s *System) Grabbed(id SourceID) *Interactable {
	return s.state(id).grabbed
}

// UpdateSource runs one source's interaction frame: hover detection, then
// activate/grab/release edges, then the desktop carry reposition.
func (s *System) UpdateSource(id SourceID, in SourceInput) {
	st := s.state(id)

	s.updateHover(st, in)

	switch {
	case st.grabbed == nil && in.GrabPressed && st.hovered != nil && st.hovered.Capability.Has(CanGrab):
		s.beginGrab(id, st)
	case st.grabbed != nil && in.GrabReleased:
		s.endGrab(id, st)
	case st.grabbed == nil && in.ActivatePressed && st.hovered != nil && st.hovered.Capability.Has(CanActivate):
		st.hovered.activate(id)
	}

	if st.grabbed != nil && st.node == nil {
		s.carryDesktop(st, in)
	}
}

// updateHover recasts the hover ray and fires enter/exit only on transitions:
// re-hovering the same target frame after frame is silent.
func (s *System) updateHover(st *sourceState, in SourceInput) {
	target := s.pick(st, in)
	if target == st.hovered {
		return
	}
	if st.hovered != nil {
		st.hovered.hoverExit()
	}
	st.hovered = target
	if target != nil {
		target.hoverEnter()
	}
}

// pick returns the closest enabled interactable hit by the ray, ignoring
// whatever this source is currently holding.
func (s *System) pick(st *sourceState, in SourceInput) *Interactable {
	if in.Direction == (rl.Vector3{}) {
		return nil
	}

	var closest *Interactable
	closestDist := s.MaxDistance

	for _, it := range s.registry {
		if !it.Enabled || it == st.grabbed {
			continue
		}
		node := it.Node()
		if node == nil || !node.Active {
			continue
		}
		bounds, ok := components.SubtreeBounds(node)
		if !ok {
			continue
		}
		hit, ok := physics.RaycastAABB(in.Origin, in.Direction, bounds, s.MaxDistance)
		if ok && hit.Distance <= closestDist {
			closest = it
			closestDist = hit.Distance
		}
	}
	return closest
}

func (s *System) beginGrab(id SourceID, st *sourceState) {
	it := st.hovered
	node := it.Node()
	if node == nil {
		return
	}

	worldPos := node.WorldPosition()
	worldRot := node.WorldRotation()

	st.saved = savedAttachment{
		parent:   node.Parent,
		scene:    node.Scene,
		localPos: node.Transform.Position,
		localRot: node.Transform.Rotation,
	}
	st.grabbed = it
	st.hovered = nil
	it.hoverExit()

	if st.node != nil {
		// Tracked source: reparent under the hand node and convert the
		// captured world pose into its space so the object doesn't jump.
		detach(node)
		st.node.AddChild(node)
		node.SetWorldPose(worldPos, worldRot)
	}
	// Desktop: the object stays in its own parent space and gets repositioned
	// every frame by carryDesktop.

	it.grab(id)
}

func (s *System) endGrab(id SourceID, st *sourceState) {
	it := st.grabbed
	node := it.Node()
	st.grabbed = nil

	if node == nil {
		return
	}

	worldPos := node.WorldPosition()
	worldRot := node.WorldRotation()

	if st.node != nil {
		st.node.RemoveChild(node)
		reattach(node, st.saved)
		node.SetWorldPose(worldPos, worldRot)
	}
	st.saved = savedAttachment{}

	it.release(id, worldPos)
}

// forceRelease is endGrab without an input edge: source destruction, level
// unload, or unregistration of a held object.
func (s *System) forceRelease(id SourceID, st *sourceState) {
	s.endGrab(id, st)
}

// carryDesktop holds the grabbed object at a fixed offset in front of the
// camera, converting that world-space target into the object's current
// parent's local space each frame.
func (s *System) carryDesktop(st *sourceState, in SourceInput) {
	node := st.grabbed.Node()
	if node == nil {
		return
	}
	dir := rl.Vector3Normalize(in.Direction)
	target := rl.Vector3Add(in.Origin, rl.Vector3Scale(dir, s.HoldDistance))
	if node.Parent != nil {
		node.Transform.Position = node.Parent.InverseTransformPoint(target)
	} else {
		node.Transform.Position = target
	}
}

func (s *System) state(id SourceID) *sourceState {
	st, ok := s.sources[id]
	if !ok {
		st = &sourceState{}
		s.sources[id] = st
	}
	return st
}

// detach removes a node from its parent, or from the scene root list when it
// has no parent. Detaching an already-detached node is a no-op.
func detach(node *engine.GameObject) {
	if node.Parent != nil {
		node.Parent.RemoveChild(node)
		return
	}
	if node.Scene != nil {
		node.Scene.RemoveGameObject(node)
	}
}

func reattach(node *engine.GameObject, saved savedAttachment) {
	if saved.parent != nil {
		saved.parent.AddChild(node)
		return
	}
	if saved.scene != nil {
		saved.scene.AddGameObject(node)
	}
}
