// Package interaction implements per-source hover, activate, and grab
// handling over the scene graph. Each input source (two tracked hands plus a
// desktop virtual hand) runs its own small state machine:
// Idle → Hovering → (Activating | Grabbing) → Idle.
package interaction

import (
	"dreamgate/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// SourceID names an input source.
type SourceID int

const (
	SourceLeftHand SourceID = iota
	SourceRightHand
	SourceDesktop
)

func (s SourceID) String() string {
	switch s {
	case SourceLeftHand:
		return "left-hand"
	case SourceRightHand:
		return "right-hand"
	case SourceDesktop:
		return "desktop"
	default:
		return "unknown"
	}
}

// Capability is the set of interactions an object supports.
type Capability uint8

const (
	CanActivate Capability = 1 << iota
	CanGrab
)

// CanBoth marks objects that are both activatable and grabbable.
const CanBoth = CanActivate | CanGrab

func (c Capability) Has(want Capability) bool {
	return c&want != 0
}

// Interactable marks a scene object as hoverable, activatable, or grabbable.
// Attach it to the object's root node; hit testing covers the whole subtree,
// so multi-mesh assets resolve to their owning Interactable. All callback
// slots are optional.
type Interactable struct {
	engine.BaseComponent

	Capability Capability
	Enabled    bool

	OnActivate   func(source SourceID)
	OnGrab       func(source SourceID)
	OnRelease    func(source SourceID, worldPosition rl.Vector3)
	OnHoverEnter func()
	OnHoverExit  func()
}

func NewInteractable(capability Capability) *Interactable {
	return &Interactable{
		Capability: capability,
		Enabled:    true,
	}
}

// Node returns the scene object this interactable wraps.
func (it *Interactable) Node() *engine.GameObject {
	return it.GetGameObject()
}

func (it *Interactable) hoverEnter() {
	if it.OnHoverEnter != nil {
		it.OnHoverEnter()
	}
}

func (it *Interactable) hoverExit() {
	if it.OnHoverExit != nil {
		it.OnHoverExit()
	}
}

func (it *Interactable) activate(source SourceID) {
	if it.OnActivate != nil {
		it.OnActivate(source)
	}
}

func (it *Interactable) grab(source SourceID) {
	if it.OnGrab != nil {
		it.OnGrab(source)
	}
}

func (it *Interactable) release(source SourceID, worldPosition rl.Vector3) {
	if it.OnRelease != nil {
		it.OnRelease(source, worldPosition)
	}
}
