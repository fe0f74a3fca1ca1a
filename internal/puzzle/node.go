// Package puzzle drives the objective graph of a level: each node walks
// Locked → Active → Solved exactly once, and a manager activates nodes either
// in registration order or by dependency satisfaction.
package puzzle

type State int

const (
	Locked State = iota
	Active
	Solved
)

func (s State) String() string {
	switch s {
	case Locked:
		return "locked"
	case Active:
		return "active"
	case Solved:
		return "solved"
	default:
		return "invalid"
	}
}

// Node is one objective. Concrete objectives embed Base and override the
// lifecycle hooks they need.
type Node interface {
	ID() string
	Dependencies() []string
	State() State

	// Init runs once when the manager starts, before any activation.
	Init()
	// OnActivate runs exactly once on the Locked→Active edge. This is where
	// an objective typically spawns its world geometry.
	OnActivate()
	// Update runs every frame, only while Active.
	Update(deltaTime float32)
	// OnSolved runs exactly once on the Active→Solved edge.
	OnSolved()

	// Solve requests the Active→Solved transition. Idempotent: calling it
	// while Locked or already Solved is a silent no-op.
	Solve()

	bind(m *Manager, self Node)
	activate()
}

// Base carries the identity and lifecycle state shared by all objectives.
// Embed it and override the hooks:
//
//	type LeverPuzzle struct {
//	    puzzle.Base
//	}
//
//	func (p *LeverPuzzle) OnActivate() { ... }
type Base struct {
	id   string
	deps []string

	state   State
	manager *Manager
	self    Node
}

func NewBase(id string, deps ...string) Base {
	return Base{id: id, deps: deps}
}

func (b *Base) ID() string { return b.id }

func (b *Base) Dependencies() []string { return b.deps }

func (b *Base) State() State { return b.state }

func (b *Base) Init() {}

func (b *Base) OnActivate() {}

func (b *Base) Update(deltaTime float32) {}

func (b *Base) OnSolved() {}

// Solve moves the node to Solved and notifies the manager. Concurrent
// trigger conditions may both call Solve in the same frame; only the first
// one transitions.
func (b *Base) Solve() {
	if b.state != Active {
		return
	}
	b.state = Solved
	if b.self != nil {
		b.self.OnSolved()
	}
	if b.manager != nil {
		b.manager.nodeSolved(b.self)
	}
}

// bind wires the node into its manager. self is the outer node so that
// overridden hooks are reached through the embedded Base.
func (b *Base) bind(m *Manager, self Node) {
	b.manager = m
	b.self = self
}

func (b *Base) activate() {
	if b.state != Locked {
		return
	}
	b.state = Active
	if b.self != nil {
		b.self.OnActivate()
	}
}
