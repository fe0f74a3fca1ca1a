// Package level parses the JSON level descriptors produced by the authoring
// collaborator and instantiates them as live scene content. The runtime only
// validates the structural fields it consumes; authorial intent is not its
// problem.
package level

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrMissingSpawn marks a level descriptor without a spawn pose. There is no
// sane default rig position, so this is fatal for the load.
var ErrMissingSpawn = errors.New("level: descriptor has no spawn pose")

// Descriptor is the on-disk level format.
type Descriptor struct {
	Name        string       `json:"name"`
	Environment Environment  `json:"environment"`
	Spawn       *SpawnPose   `json:"spawn"`
	Decorations []Decoration `json:"decorations,omitempty"`
	Props       []Prop       `json:"props,omitempty"`
	Portals     []Portal     `json:"portals,omitempty"`
	Objectives  []Objective  `json:"objectives,omitempty"`
}

type Environment struct {
	GroundY    float32 `json:"groundY"`
	GroundSize float32 `json:"groundSize,omitempty"`
	SkyColor   string  `json:"skyColor,omitempty"`
}

// SpawnPose is where the player rig starts. Required.
type SpawnPose struct {
	Position [3]float32 `json:"position"`
	Yaw      float32    `json:"yaw"`
}

// Decoration is primitive set dressing: a box or sphere with no behavior.
// Solid decorations register static colliders.
type Decoration struct {
	Name     string     `json:"name"`
	Shape    string     `json:"shape"` // "box" (default) or "sphere"
	Position [3]float32 `json:"position"`
	Rotation [3]float32 `json:"rotation,omitempty"`
	Size     [3]float32 `json:"size"`
	Color    string     `json:"color,omitempty"`
	Solid    bool       `json:"solid,omitempty"`
}

// Prop references an external binary 3D asset. Grabbable props are never
// solid: a carried object cannot also be static level geometry.
type Prop struct {
	Name        string     `json:"name"`
	Model       string     `json:"model"`
	Position    [3]float32 `json:"position"`
	Rotation    [3]float32 `json:"rotation,omitempty"`
	Scale       float32    `json:"scale,omitempty"`
	Color       string     `json:"color,omitempty"`
	Grabbable   bool       `json:"grabbable,omitempty"`
	Activatable bool       `json:"activatable,omitempty"`
	Solid       bool       `json:"solid,omitempty"`
	Animated    bool       `json:"animated,omitempty"`
}

// Portal is a walk-in trigger volume that transitions to another level.
type Portal struct {
	Position    [3]float32 `json:"position"`
	Size        [3]float32 `json:"size,omitempty"`
	TargetLevel string     `json:"targetLevel"`
	Label       string     `json:"label,omitempty"`
}

// Objective declares one puzzle node. Type selects the built-in behavior;
// DependsOn switches the manager into graph mode when non-empty anywhere.
type Objective struct {
	ID        string   `json:"id"`
	Type      string   `json:"type"` // "fetch" or "switches"
	Label     string   `json:"label,omitempty"`
	DependsOn []string `json:"dependsOn,omitempty"`
	Item      string   `json:"item,omitempty"`     // fetch: prop name to carry
	Zone      *Zone    `json:"zone,omitempty"`     // fetch: drop target
	Switches  []string `json:"switches,omitempty"` // switches: prop names
}

type Zone struct {
	Center [3]float32 `json:"center"`
	Size   [3]float32 `json:"size"`
}

// LoadDescriptor reads and validates a level file.
func LoadDescriptor(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("level: read %s: %w", path, err)
	}
	var desc Descriptor
	if err := json.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("level: parse %s: %w", path, err)
	}
	if err := desc.Validate(); err != nil {
		return nil, fmt.Errorf("level: %s: %w", path, err)
	}
	return &desc, nil
}

// Validate checks the structural fields the runtime depends on. Everything
// else is the authoring tool's business.
func (d *Descriptor) Validate() error {
	if d.Spawn == nil {
		return ErrMissingSpawn
	}

	props := make(map[string]bool, len(d.Props))
	for _, p := range d.Props {
		if p.Name == "" {
			return errors.New("prop with empty name")
		}
		if props[p.Name] {
			return fmt.Errorf("duplicate prop name %q", p.Name)
		}
		props[p.Name] = true
	}

	ids := make(map[string]bool, len(d.Objectives))
	for _, o := range d.Objectives {
		if o.ID == "" {
			return errors.New("objective with empty id")
		}
		if ids[o.ID] {
			return fmt.Errorf("duplicate objective id %q", o.ID)
		}
		ids[o.ID] = true

		switch o.Type {
		case "fetch":
			if o.Item == "" || !props[o.Item] {
				return fmt.Errorf("objective %q: fetch item %q is not a declared prop", o.ID, o.Item)
			}
			if o.Zone == nil {
				return fmt.Errorf("objective %q: fetch needs a zone", o.ID)
			}
		case "switches":
			if len(o.Switches) == 0 {
				return fmt.Errorf("objective %q: switches list is empty", o.ID)
			}
			for _, sw := range o.Switches {
				if !props[sw] {
					return fmt.Errorf("objective %q: switch %q is not a declared prop", o.ID, sw)
				}
			}
		default:
			return fmt.Errorf("objective %q: unknown type %q", o.ID, o.Type)
		}
	}

	for _, o := range d.Objectives {
		for _, dep := range o.DependsOn {
			if !ids[dep] {
				return fmt.Errorf("objective %q: dependency %q matches no objective", o.ID, dep)
			}
		}
	}

	for _, p := range d.Portals {
		if p.TargetLevel == "" {
			return errors.New("portal with empty targetLevel")
		}
	}
	return nil
}
