package puzzle

import (
	"fmt"

	"dreamgate/internal/events"

	"github.com/charmbracelet/log"
)

// Mode is the activation policy, inferred once at Init from the registered
// nodes' dependency sets.
type Mode int

const (
	// Linear activates nodes in registration order, one at a time. Chosen
	// when no node declares dependencies.
	Linear Mode = iota
	// Graph activates root nodes immediately and unlocks a node the instant
	// all of its dependencies are solved.
	Graph
)

// ErrUnknownDependency marks a dependency id that matches no registered node.
var ErrUnknownDependency = fmt.Errorf("puzzle: unknown dependency")

// Manager sequences the level's objectives and emits a single completion
// event when the last one solves.
type Manager struct {
	bus *events.Bus

	nodes []Node
	byID  map[string]Node

	mode        Mode
	initialized bool
	completed   bool
	nextLinear  int
	solvedCount int
}

func NewManager(bus *events.Bus) *Manager {
	return &Manager{
		bus:  bus,
		byID: make(map[string]Node),
	}
}

// Register adds a node. Registration order matters in Linear mode.
// Registering a duplicate id replaces nothing and is ignored with a warning.
func (m *Manager) Register(n Node) {
	if n == nil {
		return
	}
	if _, exists := m.byID[n.ID()]; exists {
		log.Warn("duplicate puzzle node ignored", "id", n.ID())
		return
	}
	n.bind(m, n)
	m.nodes = append(m.nodes, n)
	m.byID[n.ID()] = n
}

// Mode returns the activation policy. Only meaningful after Init.
func (m *Manager) Mode() Mode { return m.mode }

// Init validates the dependency graph, infers the activation mode, runs every
// node's one-time Init hook, and activates the initial node set. A dependency
// id that matches no registered node is a configuration error surfaced here,
// not a runtime crash later.
func (m *Manager) Init() error {
	if m.initialized {
		return nil
	}

	hasDeps := false
	for _, n := range m.nodes {
		for _, dep := range n.Dependencies() {
			hasDeps = true
			if _, ok := m.byID[dep]; !ok {
				return fmt.Errorf("%w: node %q depends on %q", ErrUnknownDependency, n.ID(), dep)
			}
		}
	}
	if hasDeps {
		m.mode = Graph
	} else {
		m.mode = Linear
	}
	m.initialized = true

	for _, n := range m.nodes {
		n.Init()
	}

	switch m.mode {
	case Linear:
		if len(m.nodes) > 0 {
			m.activateNode(m.nodes[0])
			m.nextLinear = 1
		}
	case Graph:
		for _, n := range m.nodes {
			if len(n.Dependencies()) == 0 {
				m.activateNode(n)
			}
		}
	}
	return nil
}

// Update forwards the frame tick to every currently Active node.
func (m *Manager) Update(deltaTime float32) {
	for _, n := range m.nodes {
		if n.State() == Active {
			n.Update(deltaTime)
		}
	}
}

func (m *Manager) NodeCount() int { return len(m.nodes) }

func (m *Manager) SolvedCount() int { return m.solvedCount }

func (m *Manager) Completed() bool { return m.completed }

func (m *Manager) Find(id string) Node { return m.byID[id] }

func (m *Manager) activateNode(n Node) {
	if n.State() != Locked {
		return
	}
	n.activate()
	log.Info("objective activated", "id", n.ID())
	if m.bus != nil {
		m.bus.Publish(events.Event{Kind: events.PuzzleActivated, PuzzleID: n.ID()})
	}
}

// nodeSolved is called by Base.Solve after a node transitions to Solved.
// It propagates activation and checks for completion.
func (m *Manager) nodeSolved(n Node) {
	m.solvedCount++
	log.Info("objective solved", "id", n.ID())
	if m.bus != nil {
		m.bus.Publish(events.Event{Kind: events.PuzzleSolved, PuzzleID: n.ID()})
	}

	switch m.mode {
	case Linear:
		if m.nextLinear < len(m.nodes) {
			m.activateNode(m.nodes[m.nextLinear])
			m.nextLinear++
		}
	case Graph:
		// Re-scan all Locked nodes rather than keeping a reverse-dependency
		// index; puzzle counts are small.
		for _, candidate := range m.nodes {
			if candidate.State() != Locked {
				continue
			}
			if m.depsSolved(candidate) {
				m.activateNode(candidate)
			}
		}
	}

	if m.solvedCount == len(m.nodes) && !m.completed {
		m.completed = true
		log.Info("all objectives solved")
		if m.bus != nil {
			m.bus.Publish(events.Event{Kind: events.GameComplete})
		}
	}
}

func (m *Manager) depsSolved(n Node) bool {
	for _, dep := range n.Dependencies() {
		if d, ok := m.byID[dep]; !ok || d.State() != Solved {
			return false
		}
	}
	return true
}

// Clear drops every node. Part of the level unload barrier; the next level
// registers a fresh objective set.
func (m *Manager) Clear() {
	m.nodes = nil
	m.byID = make(map[string]Node)
	m.initialized = false
	m.completed = false
	m.nextLinear = 0
	m.solvedCount = 0
	m.mode = Linear
}
