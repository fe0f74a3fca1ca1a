package puzzle

import (
	"dreamgate/internal/events"
	"dreamgate/internal/interaction"
	"dreamgate/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// FetchObjective asks the player to carry a grabbable prop into a target
// zone. It solves on the release edge: the drop's world position has to land
// inside the zone box.
type FetchObjective struct {
	Base

	Item *interaction.Interactable
	Zone physics.AABB

	bus   *events.Bus
	label string
}

func NewFetchObjective(id string, item *interaction.Interactable, zone physics.AABB, bus *events.Bus, label string, deps ...string) *FetchObjective {
	return &FetchObjective{
		Base:  NewBase(id, deps...),
		Item:  item,
		Zone:  zone,
		bus:   bus,
		label: label,
	}
}

func (f *FetchObjective) OnActivate() {
	if f.Item != nil {
		f.Item.Enabled = true
		f.Item.OnRelease = func(source interaction.SourceID, worldPosition rl.Vector3) {
			if f.Zone.ContainsPoint(worldPosition) {
				f.Solve()
			}
		}
	}
	f.notify(f.label)
}

func (f *FetchObjective) OnSolved() {
	if f.Item != nil {
		f.Item.OnRelease = nil
	}
}

func (f *FetchObjective) notify(msg string) {
	if f.bus != nil && msg != "" {
		f.bus.Publish(events.Event{Kind: events.Notification, Message: msg})
	}
}

// SwitchObjective asks the player to activate a set of switches. Each switch
// counts once; re-activating a pressed switch is a no-op. Solves when all
// switches have been pressed.
type SwitchObjective struct {
	Base

	Switches []*interaction.Interactable

	bus     *events.Bus
	label   string
	pressed map[*interaction.Interactable]bool
}

func NewSwitchObjective(id string, switches []*interaction.Interactable, bus *events.Bus, label string, deps ...string) *SwitchObjective {
	return &SwitchObjective{
		Base:     NewBase(id, deps...),
		Switches: switches,
		bus:      bus,
		label:    label,
		pressed:  make(map[*interaction.Interactable]bool),
	}
}

func (s *SwitchObjective) OnActivate() {
	for _, sw := range s.Switches {
		sw := sw
		sw.Enabled = true
		sw.OnActivate = func(source interaction.SourceID) {
			if s.pressed[sw] {
				return
			}
			s.pressed[sw] = true
			if len(s.pressed) == len(s.Switches) {
				s.Solve()
			}
		}
	}
	if s.bus != nil && s.label != "" {
		s.bus.Publish(events.Event{Kind: events.Notification, Message: s.label})
	}
}

func (s *SwitchObjective) OnSolved() {
	for _, sw := range s.Switches {
		sw.OnActivate = nil
	}
}
